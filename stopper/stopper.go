// SPDX-License-Identifier: MIT

package stopper

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/google/uuid"

	"github.com/katalvlaran/kgtriples/triples"
)

// EarlyStopper evaluates a model periodically and decides when training
// should stop. It is not safe for concurrent use.
type EarlyStopper struct {
	model      ModelState
	evaluator  Evaluator
	training   triples.Factory
	evaluation triples.Factory

	opts    Options
	logic   *Logic
	results   []float64
	evaluated bool
	stopped   bool
	path      string
}

// NewEarlyStopper wires a stopper. Without WithCheckpointPath the best
// state goes to best-model-weights-<uuid>.state in the checkpoint dir.
func NewEarlyStopper(model ModelState, evaluator Evaluator, training, evaluation triples.Factory, opts ...Option) *EarlyStopper {
	o := gatherOptions(opts)
	s := &EarlyStopper{
		model:      model,
		evaluator:  evaluator,
		training:   training,
		evaluation: evaluation,
		opts:       o,
		logic:      NewLogic(o.patience, o.relativeDelta, o.largerIsBetter),
		path:       o.checkpointPath,
	}
	if s.path == "" {
		s.path = filepath.Join(o.checkpointDir, fmt.Sprintf("best-model-weights-%s.state", uuid.NewString()))
		o.logger.Info("inferred checkpoint path for best model weights", slog.String("path", s.path))
	}
	if st, err := os.Stat(s.path); err == nil && st.Mode().IsRegular() {
		o.logger.Warn("checkpoint path already exists and will be overwritten", slog.String("path", s.path))
	}

	return s
}

// ShouldEvaluate reports whether epoch is an evaluation epoch.
func (s *EarlyStopper) ShouldEvaluate(epoch int) bool {
	return epoch > 0 && epoch%s.opts.frequency == 0
}

func (s *EarlyStopper) timeConsumingChecks() bool {
	switch s.opts.checks {
	case ChecksAlways:
		return true
	case ChecksNever:
		return false
	}

	return !s.evaluated
}

// ShouldStop evaluates the model and reports whether training should stop.
// On stop the best state is loaded back into the model.
func (s *EarlyStopper) ShouldStop(ctx context.Context, epoch int) (bool, error) {
	res, err := s.evaluator.Evaluate(ctx, EvaluateRequest{
		Model:                 s.model,
		AdditionalFilter:      s.training.MappedTriples(),
		Mapped:                s.evaluation.MappedTriples(),
		BatchSize:             s.opts.batchSize,
		SliceSize:             s.opts.sliceSize,
		DoTimeConsumingChecks: s.timeConsumingChecks(),
	})
	s.evaluated = true
	if err != nil {
		return false, fmt.Errorf("ShouldStop: evaluate epoch %d: %w", epoch, err)
	}
	if sr, ok := s.evaluator.(SizeReporter); ok {
		s.opts.batchSize, s.opts.sliceSize = sr.BatchSize(), sr.SliceSize()
	}
	if s.opts.tracker != nil {
		s.opts.tracker.LogMetrics(res.FlatMap(), epoch, ValidationPrefix)
	}
	result, err := res.Metric(s.opts.metric)
	if err != nil {
		return false, fmt.Errorf("ShouldStop: %w", err)
	}

	s.results = append(s.results, result)
	for _, cb := range s.opts.onResult {
		cb(s, result, epoch)
	}

	stop, err := s.logic.ReportResult(result, epoch)
	if err != nil {
		return false, fmt.Errorf("ShouldStop: %w", err)
	}
	s.stopped = stop
	if stop {
		return true, s.stop(result, epoch)
	}

	if s.logic.IsBest() {
		if err := s.save(); err != nil {
			return false, fmt.Errorf("ShouldStop: %w", err)
		}
		s.opts.logger.Info("new best result",
			slog.Int("epoch", epoch), slog.Float64("metric", result), slog.String("path", s.path))
	}
	for _, cb := range s.opts.onContinue {
		cb(s, result, epoch)
	}

	return false, nil
}

func (s *EarlyStopper) stop(result float64, epoch int) error {
	best, _ := s.logic.BestEpoch()
	s.opts.logger.Info("stopping early",
		slog.Int("epoch", epoch), slog.Float64("best_metric", s.logic.BestMetric()), slog.Int("best_epoch", best))
	for _, cb := range s.opts.onStopped {
		cb(s, result, epoch)
	}

	s.opts.logger.Info("re-loading weights from best epoch", slog.String("path", s.path))
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stop: %s: %w", s.path, ErrNoCheckpoint)
	}
	if err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	err = s.model.LoadState(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("stop: load state: %w", err)
	}
	if s.opts.cleanup {
		if err := os.Remove(s.path); err != nil {
			return fmt.Errorf("stop: clean up: %w", err)
		}
		s.opts.logger.Debug("cleaned up checkpoint", slog.String("path", s.path))
	}

	return nil
}

func (s *EarlyStopper) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	err = s.model.SaveState(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("save: %s: %w", s.path, err)
	}

	return nil
}

// CheckpointPath returns the best-state file.
func (s *EarlyStopper) CheckpointPath() string { return s.path }

// Results returns every evaluated metric value in order.
func (s *EarlyStopper) Results() []float64 { return slices.Clone(s.results) }

// NumberResults returns the number of evaluations.
func (s *EarlyStopper) NumberResults() int { return len(s.results) }

// Stopped reports whether the stopper ever decided to stop.
func (s *EarlyStopper) Stopped() bool { return s.stopped }

// BestMetric returns the best result so far.
func (s *EarlyStopper) BestMetric() float64 { return s.logic.BestMetric() }

// BestEpoch returns the epoch of the best result, if any.
func (s *EarlyStopper) BestEpoch() (int, bool) { return s.logic.BestEpoch() }

// RemainingPatience returns the evaluations left without improvement.
func (s *EarlyStopper) RemainingPatience() int { return s.logic.RemainingPatience() }
