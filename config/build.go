// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/katalvlaran/kgtriples/anchors"
	"github.com/katalvlaran/kgtriples/instances"
	"github.com/katalvlaran/kgtriples/splitting"
	"github.com/katalvlaran/kgtriples/triples"
)

// ParseLogLevel accepts debug, info, warn and error (any case).
func ParseLogLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("level %q: %w", s, ErrInvalidConfig)
	}

	return l, nil
}

// LoadOptions returns the text-loading options of the dataset.
func (c *Config) LoadOptions() triples.LoadOptions {
	lo := triples.LoadOptions{Delimiter: c.Dataset.Delimiter, Comment: c.Dataset.Comment}
	if len(c.Dataset.ColumnRemapping) == 3 {
		copy(lo.ColumnRemapping[:], c.Dataset.ColumnRemapping)
	}

	return lo
}

// FactoryOptions returns the factory options of the dataset.
func (c *Config) FactoryOptions(logger *slog.Logger) []triples.Option {
	return []triples.Option{
		triples.WithInverseTriples(c.Dataset.CreateInverseTriples),
		triples.WithCompactIDs(c.Dataset.CompactIDs),
		triples.WithInverseRelationFilter(c.Dataset.FilterInverses),
		triples.WithLogger(logger),
	}
}

// SplitOptions returns the splitting options. The method must be valid.
func (c *Config) SplitOptions(logger *slog.Logger) ([]splitting.Option, error) {
	m, err := splitting.ParseMethod(c.Split.Method)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return []splitting.Option{
		splitting.WithSeed(c.Split.Seed),
		splitting.WithMethod(m),
		splitting.WithRandomizedCleanup(c.Split.RandomizeCleanup),
		splitting.WithLogger(logger),
	}, nil
}

// InstanceOptions returns the LCWA and sLCWA options.
func (c *Config) InstanceOptions(logger *slog.Logger) ([]instances.Option, error) {
	target, err := triples.ParseColumn(c.Instances.Target)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Instances.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size %d: %w", c.Instances.BatchSize, ErrInvalidConfig)
	}

	return []instances.Option{
		instances.WithTarget(target),
		instances.WithRowCache(max(c.Instances.RowCache, 0)),
		instances.WithBatchSize(c.Instances.BatchSize),
		instances.WithDropLast(c.Instances.DropLast),
		instances.WithSamplerName(c.Sampler.Name),
		instances.WithNumNegsPerPos(c.Sampler.NumNegsPerPos),
		instances.WithFilteredNegatives(c.Sampler.Filtered),
		instances.WithLogger(logger),
	}, nil
}

// Selection builds the configured anchor selection.
func (c *Config) Selection() (anchors.Selection, error) {
	return anchors.New(c.Anchors.Selection, anchors.Config{
		NumAnchors: c.Anchors.NumAnchors,
		Damping:    c.Anchors.Damping,
		Seed:       c.Anchors.Seed,
		Mixture:    c.Anchors.Mixture,
		Ratios:     c.Anchors.Ratios,
	})
}
