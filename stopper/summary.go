// SPDX-License-Identifier: MIT

package stopper

import (
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// Summary is the resumable state of an EarlyStopper.
type Summary struct {
	Frequency         int       `yaml:"frequency"`
	Patience          int       `yaml:"patience"`
	RemainingPatience int       `yaml:"remaining_patience"`
	RelativeDelta     float64   `yaml:"relative_delta"`
	Metric            string    `yaml:"metric"`
	LargerIsBetter    bool      `yaml:"larger_is_better"`
	Results           []float64 `yaml:"results"`
	Stopped           bool      `yaml:"stopped"`
	BestEpoch         *int      `yaml:"best_epoch"`
	BestMetric        float64   `yaml:"best_metric"`
}

// Summary snapshots the stopper state.
func (s *EarlyStopper) Summary() Summary {
	sum := Summary{
		Frequency:         s.opts.frequency,
		Patience:          s.logic.Patience(),
		RemainingPatience: s.logic.RemainingPatience(),
		RelativeDelta:     s.opts.relativeDelta,
		Metric:            s.opts.metric,
		LargerIsBetter:    s.opts.largerIsBetter,
		Results:           slices.Clone(s.results),
		Stopped:           s.stopped,
		BestMetric:        s.logic.BestMetric(),
	}
	if e, ok := s.logic.BestEpoch(); ok {
		sum.BestEpoch = &e
	}

	return sum
}

// Restore overwrites the stopper state with sum.
func (s *EarlyStopper) Restore(sum Summary) {
	s.opts.frequency = sum.Frequency
	s.opts.relativeDelta = sum.RelativeDelta
	s.opts.metric = sum.Metric
	s.opts.largerIsBetter = sum.LargerIsBetter
	s.results = slices.Clone(sum.Results)
	s.evaluated = len(sum.Results) > 0
	s.stopped = sum.Stopped

	s.logic = NewLogic(sum.Patience, sum.RelativeDelta, sum.LargerIsBetter)
	s.logic.bestMetric = sum.BestMetric
	s.logic.remaining = sum.RemainingPatience
	if sum.BestEpoch != nil {
		s.logic.bestEpoch, s.logic.hasBest = *sum.BestEpoch, true
	}
}

// WriteYAML encodes the summary.
func (sum Summary) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(sum); err != nil {
		return fmt.Errorf("summary: %w", err)
	}

	return enc.Close()
}

// ReadSummary decodes a summary written by WriteYAML.
func ReadSummary(r io.Reader) (Summary, error) {
	var sum Summary
	if err := yaml.NewDecoder(r).Decode(&sum); err != nil {
		return Summary{}, fmt.Errorf("summary: %w", err)
	}

	return sum, nil
}
