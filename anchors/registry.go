// SPDX-License-Identifier: MIT

package anchors

import (
	"fmt"
	"maps"
	"slices"
)

// Registered selection names.
const (
	NameDegree   = "degree"
	NamePageRank = "pagerank"
	NameRandom   = "random"
	NameMixture  = "mixture"

	// DefaultName is used when New receives "".
	DefaultName = NameDegree
)

// Config enumerates every option a registered selection understands.
type Config struct {
	// NumAnchors defaults to DefaultNumAnchors when 0.
	NumAnchors int

	// pagerank
	Damping   float64
	Tolerance float64

	// random
	Seed uint64

	// mixture
	Mixture []string
	Ratios  []float64
}

var registry = map[string]func(Config) (Selection, error){
	NameDegree: func(c Config) (Selection, error) {
		return DegreeSelection{Num: c.NumAnchors}, nil
	},
	NamePageRank: func(c Config) (Selection, error) {
		return PageRankSelection{Num: c.NumAnchors, Damping: c.Damping, Tolerance: c.Tolerance}, nil
	},
	NameRandom: func(c Config) (Selection, error) {
		return RandomSelection{Num: c.NumAnchors, Seed: c.Seed}, nil
	},
}

// Names lists the registered selections in sorted order.
func Names() []string {
	return slices.Sorted(slices.Values(append(slices.Collect(maps.Keys(registry)), NameMixture)))
}

// New builds the selection registered under name.
func New(name string, cfg Config) (Selection, error) {
	if name == "" {
		name = DefaultName
	}
	if cfg.NumAnchors < 0 {
		return nil, fmt.Errorf("num anchors %d: %w", cfg.NumAnchors, ErrInvalidConfig)
	}
	if cfg.NumAnchors == 0 {
		cfg.NumAnchors = DefaultNumAnchors
	}
	if name == NameMixture {
		m, err := NewMixture(cfg.Mixture, cfg.Ratios, cfg.NumAnchors, cfg)
		if err != nil {
			return nil, err
		}
		return m, nil
	}

	return build(name, cfg)
}

// build resolves a single-step selection with cfg.NumAnchors as given.
func build(name string, cfg Config) (Selection, error) {
	mk, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%q (known: %v): %w", name, Names(), ErrUnknownSelection)
	}

	return mk(cfg)
}
