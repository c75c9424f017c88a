// SPDX-License-Identifier: MIT

package stopper

import (
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// DefaultFrequency evaluates every 10 epochs.
	DefaultFrequency = 10

	// DefaultPatience stops after two evaluations without improvement.
	DefaultPatience = 2

	// DefaultMetric is the metric compared across evaluations.
	DefaultMetric = "hits_at_k"

	// DefaultRelativeDelta is the minimum relative improvement.
	DefaultRelativeDelta = 0.01

	// DefaultLargerIsBetter treats larger metric values as better.
	DefaultLargerIsBetter = true

	// DefaultChecks runs the evaluator's time-consuming checks on the first
	// evaluation only.
	DefaultChecks = ChecksFirst

	// DefaultCleanup removes the checkpoint after restoring it.
	DefaultCleanup = true

	// ValidationPrefix tags tracked evaluation metrics.
	ValidationPrefix = "validation"
)

// Checks selects the evaluations that request time-consuming checks.
type Checks int

const (
	// ChecksFirst requests them on the first evaluation.
	ChecksFirst Checks = iota
	// ChecksAlways requests them on every evaluation.
	ChecksAlways
	// ChecksNever never requests them.
	ChecksNever
)

// DefaultCheckpointDir holds inferred checkpoint files.
var DefaultCheckpointDir = filepath.Join(os.TempDir(), "kgtriples", "checkpoints")

// Callback observes a stopper after an evaluation at epoch.
type Callback func(s *EarlyStopper, result float64, epoch int)

// Options configures an EarlyStopper.
type Options struct {
	frequency      int
	patience       int
	metric         string
	relativeDelta  float64
	largerIsBetter bool

	batchSize int
	sliceSize int
	checks    Checks

	checkpointPath string
	checkpointDir  string
	cleanup        bool

	tracker    Tracker
	onResult   []Callback
	onContinue []Callback
	onStopped  []Callback
	logger     *slog.Logger
}

// Option configures an EarlyStopper.
type Option func(*Options)

// WithFrequency evaluates every n epochs. Panics if n ≤ 0.
func WithFrequency(n int) Option {
	if n <= 0 {
		panic("stopper: WithFrequency(n<=0)")
	}

	return func(o *Options) { o.frequency = n }
}

// WithPatience sets the evaluations tolerated without improvement.
// Panics if n ≤ 0.
func WithPatience(n int) Option {
	if n <= 0 {
		panic("stopper: WithPatience(n<=0)")
	}

	return func(o *Options) { o.patience = n }
}

// WithMetric selects the compared metric.
func WithMetric(name string) Option {
	return func(o *Options) { o.metric = name }
}

// WithRelativeDelta sets the minimum relative improvement. Panics if d < 0.
func WithRelativeDelta(d float64) Option {
	if d < 0 {
		panic("stopper: WithRelativeDelta(d<0)")
	}

	return func(o *Options) { o.relativeDelta = d }
}

// WithLargerIsBetter sets the metric direction.
func WithLargerIsBetter(larger bool) Option {
	return func(o *Options) { o.largerIsBetter = larger }
}

// WithEvaluationSizes presets the evaluation batch and slice sizes.
func WithEvaluationSizes(batch, slice int) Option {
	return func(o *Options) { o.batchSize, o.sliceSize = batch, slice }
}

// WithTimeConsumingChecks selects when the evaluator runs its expensive
// consistency checks. Panics on an unknown mode.
func WithTimeConsumingChecks(c Checks) Option {
	if c < ChecksFirst || c > ChecksNever {
		panic("stopper: WithTimeConsumingChecks(unknown mode)")
	}

	return func(o *Options) { o.checks = c }
}

// WithCheckpointPath fixes the best-state file.
func WithCheckpointPath(path string) Option {
	return func(o *Options) { o.checkpointPath = path }
}

// WithCheckpointDir places the inferred best-state file in dir.
func WithCheckpointDir(dir string) Option {
	return func(o *Options) { o.checkpointDir = dir }
}

// WithCleanup toggles removing the checkpoint after it was restored.
func WithCleanup(enable bool) Option {
	return func(o *Options) { o.cleanup = enable }
}

// WithTracker logs every evaluation result.
func WithTracker(t Tracker) Option {
	return func(o *Options) { o.tracker = t }
}

// WithResultCallback runs cb after every evaluation.
func WithResultCallback(cb Callback) Option {
	return func(o *Options) { o.onResult = append(o.onResult, cb) }
}

// WithContinueCallback runs cb when training continues.
func WithContinueCallback(cb Callback) Option {
	return func(o *Options) { o.onContinue = append(o.onContinue, cb) }
}

// WithStoppedCallback runs cb when training is stopped.
func WithStoppedCallback(cb Callback) Option {
	return func(o *Options) { o.onStopped = append(o.onStopped, cb) }
}

// WithLogger sets the logger; nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

func gatherOptions(opts []Option) Options {
	o := Options{
		frequency:      DefaultFrequency,
		patience:       DefaultPatience,
		metric:         DefaultMetric,
		relativeDelta:  DefaultRelativeDelta,
		largerIsBetter: DefaultLargerIsBetter,
		checks:         DefaultChecks,
		checkpointDir:  DefaultCheckpointDir,
		cleanup:        DefaultCleanup,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
