// SPDX-License-Identifier: MIT

package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace is used when New is called with an empty namespace.
const DefaultNamespace = "kgtriples"

// Drop reasons reported through TriplesDropped.
const (
	ReasonUnknownLabel    = "unknown_label"
	ReasonInverseConflict = "inverse_conflict"
	ReasonRestriction     = "restriction"
)

// Collectors contains the data-plumbing metrics.
type Collectors struct {
	// Data quality
	TriplesDropped *prometheus.CounterVec

	// Instance production
	BatchesProduced   *prometheus.CounterVec
	SubgraphExhausted prometheus.Counter

	// Splitting
	CoverageMoves prometheus.Counter
}

// New creates collectors under namespace.
func New(namespace string) *Collectors {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	return &Collectors{
		TriplesDropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "triples",
				Name:      "dropped_total",
				Help:      "Total number of triples dropped during label mapping or restriction",
			},
			[]string{"reason"},
		),

		BatchesProduced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "instances",
				Name:      "batches_total",
				Help:      "Total number of training batches produced",
			},
			[]string{"kind"},
		),

		SubgraphExhausted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "instances",
				Name:      "subgraph_exhausted_total",
				Help:      "Total number of times a subgraph node had no unpicked edge left",
			},
		),

		CoverageMoves: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "splitting",
				Name:      "coverage_moves_total",
				Help:      "Total number of triples moved into the training part to keep coverage",
			},
		),
	}
}

// Register registers every collector with reg. Already-registered
// collectors are not an error.
func (c *Collectors) Register(reg prometheus.Registerer) error {
	for _, col := range []prometheus.Collector{
		c.TriplesDropped,
		c.BatchesProduced,
		c.SubgraphExhausted,
		c.CoverageMoves,
	} {
		if err := reg.Register(col); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}

	return nil
}

// Dropped adds n to the dropped-triples counter for reason.
func (c *Collectors) Dropped(reason string, n int) {
	if c == nil || n <= 0 {
		return
	}
	c.TriplesDropped.WithLabelValues(reason).Add(float64(n))
}

// Batch counts one produced batch of the given kind.
func (c *Collectors) Batch(kind string) {
	if c == nil {
		return
	}
	c.BatchesProduced.WithLabelValues(kind).Inc()
}

// Exhausted counts one subgraph exhaustion event.
func (c *Collectors) Exhausted() {
	if c == nil {
		return
	}
	c.SubgraphExhausted.Inc()
}

// Moved adds n to the coverage-move counter.
func (c *Collectors) Moved(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.CoverageMoves.Add(float64(n))
}
