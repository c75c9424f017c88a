// SPDX-License-Identifier: MIT

package splitting

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/kgtriples/metrics"
)

// Method selects how the training-coverage constraint is enforced.
type Method string

const (
	// MethodCoverage seeds training with a cover of every ID.
	MethodCoverage Method = "coverage"

	// MethodCleanup moves offending evaluation triples back into training.
	MethodCleanup Method = "cleanup"
)

// ParseMethod resolves a method name; the empty string selects DefaultMethod.
func ParseMethod(name string) (Method, error) {
	switch Method(name) {
	case "":
		return DefaultMethod, nil
	case MethodCoverage, MethodCleanup:
		return Method(name), nil
	}

	return "", fmt.Errorf("%q: %w", name, ErrUnknownMethod)
}

// Defaults.
const (
	// DefaultMethod is the coverage-seeded split.
	DefaultMethod = MethodCoverage

	// DefaultRandomizedCleanup moves offending triples all at once.
	DefaultRandomizedCleanup = false

	// DefaultEpsilon is the tolerance used when checking that ratios sum to 1.
	DefaultEpsilon = 1e-6
)

// Options holds the split configuration. Use the With* helpers.
type Options struct {
	seed              uint64
	method            Method
	randomizedCleanup bool
	logger            *slog.Logger
	metrics           *metrics.Collectors
}

// Option configures a split.
type Option func(*Options)

// WithSeed fixes the random stream; 0 selects rng.DefaultSeed.
func WithSeed(seed uint64) Option {
	return func(o *Options) { o.seed = seed }
}

// WithMethod selects the coverage strategy.
// Panics on an unknown method (programmer error); use ParseMethod for input.
func WithMethod(m Method) Option {
	if _, err := ParseMethod(string(m)); err != nil {
		panic(err)
	}
	return func(o *Options) {
		if m == "" {
			m = DefaultMethod
		}
		o.method = m
	}
}

// WithRandomizedCleanup moves one random offending triple at a time
// (MethodCleanup only).
func WithRandomizedCleanup(enable bool) Option {
	return func(o *Options) { o.randomizedCleanup = enable }
}

// WithLogger sets the logger; nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics reports coverage moves to c.
func WithMetrics(c *metrics.Collectors) Option {
	return func(o *Options) { o.metrics = c }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		method:            DefaultMethod,
		randomizedCleanup: DefaultRandomizedCleanup,
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
