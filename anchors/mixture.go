// SPDX-License-Identifier: MIT

package anchors

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/kgtriples/splitting"
)

// MixtureSelection runs Selections in order; each sees the anchors of the
// previous ones as known, so the order matters.
type MixtureSelection struct {
	Selections []Selection
}

// NewMixture splits num anchors over the named single-step selections by
// ratios (nil means uniform) and builds each from cfg.
func NewMixture(names []string, ratios []float64, num int, cfg Config) (*MixtureSelection, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("mixture: no selections: %w", ErrInvalidConfig)
	}
	if ratios == nil {
		ratios = make([]float64, len(names))
		floats.AddConst(1/float64(len(names)), ratios)
	}
	norm, err := splitting.NormalizeRatios(ratios)
	if err != nil {
		return nil, fmt.Errorf("mixture: %w: %w", ErrInvalidConfig, err)
	}
	if len(norm) != len(names) {
		return nil, fmt.Errorf("mixture: %d ratios for %d selections: %w", len(norm), len(names), ErrInvalidConfig)
	}
	sizes := splitting.AbsoluteSizes(num, norm)

	m := &MixtureSelection{Selections: make([]Selection, len(names))}
	for i, name := range names {
		sub := cfg
		sub.NumAnchors = sizes[i]
		s, err := build(name, sub)
		if err != nil {
			return nil, fmt.Errorf("mixture: %w", err)
		}
		m.Selections[i] = s
	}

	return m, nil
}

// NumAnchors implements Selection.
func (m *MixtureSelection) NumAnchors() int {
	n := 0
	for _, s := range m.Selections {
		n += s.NumAnchors()
	}

	return n
}

// Select implements Selection.
func (m *MixtureSelection) Select(edgeIndex [][2]int64, known []int64) []int64 {
	anchors := known
	for _, s := range m.Selections {
		anchors = s.Select(edgeIndex, anchors)
	}

	return anchors
}
