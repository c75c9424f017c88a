// SPDX-License-Identifier: MIT

package stopper

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// IsImprovement reports whether current beats best and is not within the
// relative tolerance delta of it. The tolerance is relative to the larger
// magnitude of the two values.
func IsImprovement(best, current float64, largerIsBetter bool, delta float64) bool {
	better := current < best
	if largerIsBetter {
		better = current > best
	}

	return better && !scalar.EqualWithinRel(current, best, delta)
}

// Logic is the patience state machine of early stopping.
// The zero value is not usable; use NewLogic.
type Logic struct {
	patience       int
	relativeDelta  float64
	largerIsBetter bool

	bestEpoch  int
	hasBest    bool
	bestMetric float64
	remaining  int
}

// NewLogic starts with full patience and the worst possible best metric.
func NewLogic(patience int, relativeDelta float64, largerIsBetter bool) *Logic {
	l := &Logic{
		patience:       patience,
		relativeDelta:  relativeDelta,
		largerIsBetter: largerIsBetter,
		remaining:      patience,
		bestMetric:     math.Inf(1),
	}
	if largerIsBetter {
		l.bestMetric = math.Inf(-1)
	}

	return l
}

// IsImprovement reports whether metric would improve on the best result.
func (l *Logic) IsImprovement(metric float64) bool {
	return IsImprovement(l.bestMetric, metric, l.largerIsBetter, l.relativeDelta)
}

// ReportResult records metric at epoch and reports whether patience ran out.
func (l *Logic) ReportResult(metric float64, epoch int) (bool, error) {
	if l.hasBest && epoch <= l.bestEpoch {
		return false, fmt.Errorf("epoch %d after best epoch %d: %w", epoch, l.bestEpoch, ErrEpochOrder)
	}
	if l.IsImprovement(metric) {
		l.bestEpoch, l.hasBest = epoch, true
		l.bestMetric = metric
		l.remaining = l.patience
	} else {
		l.remaining--
	}

	return l.remaining <= 0, nil
}

// IsBest reports whether the last reported result is the best so far.
func (l *Logic) IsBest() bool { return l.remaining == l.patience }

// BestEpoch returns the epoch of the best result, if any.
func (l *Logic) BestEpoch() (int, bool) { return l.bestEpoch, l.hasBest }

// BestMetric returns the best result so far (±Inf before any report).
func (l *Logic) BestMetric() float64 { return l.bestMetric }

// RemainingPatience returns the reports left without improvement.
func (l *Logic) RemainingPatience() int { return l.remaining }

// Patience returns the configured patience.
func (l *Logic) Patience() int { return l.patience }
