// SPDX-License-Identifier: MIT

package sampling

import (
	"fmt"
	"maps"
	"slices"
)

// Registered sampler names.
const (
	NameBasic     = "basic"
	NameBernoulli = "bernoulli"

	// DefaultName is used when New receives "".
	DefaultName = NameBasic
)

var registry = map[string]func(Config) (Sampler, error){
	NameBasic: func(c Config) (Sampler, error) {
		s, err := NewBasicSampler(c)
		if err != nil {
			return nil, err
		}
		return s, nil
	},
	NameBernoulli: func(c Config) (Sampler, error) {
		s, err := NewBernoulliSampler(c)
		if err != nil {
			return nil, err
		}
		return s, nil
	},
}

// Names lists the registered samplers in sorted order.
func Names() []string { return slices.Sorted(maps.Keys(registry)) }

// New builds the sampler registered under name.
func New(name string, cfg Config) (Sampler, error) {
	if name == "" {
		name = DefaultName
	}
	mk, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%q (known: %v): %w", name, Names(), ErrUnknownSampler)
	}

	return mk(cfg)
}
