// SPDX-License-Identifier: MIT

package stopper

import (
	"context"
	"fmt"
	"io"
	"maps"

	"github.com/katalvlaran/kgtriples/triples"
)

// EvaluateRequest carries the arguments of one evaluation pass.
type EvaluateRequest struct {
	Model ModelState
	// AdditionalFilter are known true triples (the training triples)
	// excluded from the rankings.
	AdditionalFilter triples.MappedTriples
	// Mapped are the triples to evaluate.
	Mapped triples.MappedTriples
	// BatchSize and SliceSize are 0 until the evaluator reported them.
	BatchSize int
	SliceSize int
	// DoTimeConsumingChecks follows WithTimeConsumingChecks.
	DoTimeConsumingChecks bool
}

// Evaluator scores a model on a set of triples.
type Evaluator interface {
	Evaluate(ctx context.Context, req EvaluateRequest) (MetricResults, error)
}

// SizeReporter is implemented by evaluators that tune their batch and slice
// sizes on the first pass; the stopper reuses them afterwards.
type SizeReporter interface {
	BatchSize() int
	SliceSize() int
}

// MetricResults are the results of one evaluation.
type MetricResults interface {
	Metric(name string) (float64, error)
	FlatMap() map[string]float64
}

// ModelState persists and restores model weights.
type ModelState interface {
	SaveState(w io.Writer) error
	LoadState(r io.Reader) error
}

// Tracker records metrics of a training run.
type Tracker interface {
	LogMetrics(metrics map[string]float64, step int, prefix string)
}

// MapResults is a MetricResults backed by a flat map.
type MapResults map[string]float64

// Metric implements MetricResults.
func (m MapResults) Metric(name string) (float64, error) {
	v, ok := m[name]
	if !ok {
		return 0, fmt.Errorf("metric %q: %w", name, ErrUnknownMetric)
	}

	return v, nil
}

// FlatMap implements MetricResults.
func (m MapResults) FlatMap() map[string]float64 { return maps.Clone(m) }
