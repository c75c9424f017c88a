// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/kgtriples/anchors"
	"github.com/katalvlaran/kgtriples/instances"
	"github.com/katalvlaran/kgtriples/sampling"
	"github.com/katalvlaran/kgtriples/splitting"
	"github.com/katalvlaran/kgtriples/triples"
)

// ErrInvalidConfig is returned by Load and Validate.
var ErrInvalidConfig = errors.New("config: invalid config")

// EnvPrefix prefixes the environment overrides.
const EnvPrefix = "KGTRIPLES_"

type Config struct {
	LogLevel  string          `yaml:"log_level"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Split     SplitConfig     `yaml:"split"`
	Instances InstancesConfig `yaml:"instances"`
	Sampler   SamplerConfig   `yaml:"sampler"`
	Anchors   AnchorsConfig   `yaml:"anchors"`
}

type DatasetConfig struct {
	Delimiter            string `yaml:"delimiter"`
	Comment              string `yaml:"comment"`
	ColumnRemapping      []int  `yaml:"column_remapping"`
	CreateInverseTriples bool   `yaml:"create_inverse_triples"`
	CompactIDs           bool   `yaml:"compact_ids"`
	FilterInverses       bool   `yaml:"filter_inverse_relations"`
}

type SplitConfig struct {
	Ratios           []float64 `yaml:"ratios"`
	Seed             uint64    `yaml:"seed"`
	Method           string    `yaml:"method"`
	RandomizeCleanup bool      `yaml:"randomize_cleanup"`
}

type InstancesConfig struct {
	Kind      string `yaml:"kind"`
	Target    string `yaml:"target"`
	BatchSize int    `yaml:"batch_size"`
	DropLast  bool   `yaml:"drop_last"`
	Workers   int    `yaml:"workers"`
	Seed      uint64 `yaml:"seed"`
	RowCache  int    `yaml:"row_cache"`
}

type SamplerConfig struct {
	Name          string `yaml:"name"`
	NumNegsPerPos int    `yaml:"num_negs_per_pos"`
	Filtered      bool   `yaml:"filtered"`
}

type AnchorsConfig struct {
	Selection  string    `yaml:"selection"`
	NumAnchors int       `yaml:"num_anchors"`
	Seed       uint64    `yaml:"seed"`
	Damping    float64   `yaml:"damping"`
	Mixture    []string  `yaml:"mixture"`
	Ratios     []float64 `yaml:"ratios"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Dataset: DatasetConfig{
			Delimiter:            "\t",
			CreateInverseTriples: triples.DefaultCreateInverseTriples,
			CompactIDs:           triples.DefaultCompactIDs,
			FilterInverses:       triples.DefaultInverseRelationFilter,
		},
		Split: SplitConfig{
			Ratios: []float64{0.8, 0.1, 0.1},
			Seed:   42,
			Method: string(splitting.DefaultMethod),
		},
		Instances: InstancesConfig{
			Kind:      string(instances.KindBatched),
			Target:    instances.DefaultTarget.String(),
			BatchSize: 256,
			DropLast:  instances.DefaultDropLast,
			Workers:   1,
			Seed:      42,
		},
		Sampler: SamplerConfig{
			Name:          sampling.DefaultName,
			NumNegsPerPos: sampling.DefaultNumNegsPerPos,
		},
		Anchors: AnchorsConfig{
			Selection:  anchors.DefaultName,
			NumAnchors: anchors.DefaultNumAnchors,
			Damping:    anchors.DefaultDamping,
		},
	}
}

// Load reads path over the defaults; "" skips the file. Environment
// overrides are applied last and the result is validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := cfg.applyEnvironment(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnvironment() error {
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvPrefix + "SPLIT_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSPLIT_SEED=%q: %w", EnvPrefix, v, ErrInvalidConfig)
		}
		c.Split.Seed = n
	}
	if v := os.Getenv(EnvPrefix + "WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sWORKERS=%q: %w", EnvPrefix, v, ErrInvalidConfig)
		}
		c.Instances.Workers = n
	}
	if v := os.Getenv(EnvPrefix + "CREATE_INVERSE_TRIPLES"); v != "" {
		c.Dataset.CreateInverseTriples = strings.EqualFold(v, "true")
	}

	return nil
}

// Validate checks ranges and resolves every registry name.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		add("log_level: %w", err)
	}
	if r := c.Dataset.ColumnRemapping; r != nil {
		if p := slices.Sorted(slices.Values(r)); !slices.Equal(p, []int{0, 1, 2}) {
			add("dataset.column_remapping %v is not a permutation of 0,1,2", r)
		}
	}
	if _, err := splitting.NormalizeRatios(c.Split.Ratios); err != nil {
		add("split.ratios: %w", err)
	}
	if _, err := splitting.ParseMethod(c.Split.Method); err != nil {
		add("split.method: %w", err)
	}
	switch instances.Kind(c.Instances.Kind) {
	case instances.KindBatched, instances.KindSubGraph:
	default:
		add("instances.kind %q: %w", c.Instances.Kind, instances.ErrUnknownKind)
	}
	if _, err := triples.ParseColumn(c.Instances.Target); err != nil {
		add("instances.target: %w", err)
	}
	if c.Instances.BatchSize <= 0 {
		add("instances.batch_size %d must be > 0", c.Instances.BatchSize)
	}
	if c.Instances.Workers <= 0 {
		add("instances.workers %d must be > 0", c.Instances.Workers)
	}
	if c.Instances.RowCache < 0 {
		add("instances.row_cache %d must be ≥ 0", c.Instances.RowCache)
	}
	if !slices.Contains(sampling.Names(), c.Sampler.Name) {
		add("sampler.name %q: %w", c.Sampler.Name, sampling.ErrUnknownSampler)
	}
	if c.Sampler.NumNegsPerPos <= 0 {
		add("sampler.num_negs_per_pos %d must be > 0", c.Sampler.NumNegsPerPos)
	}
	if _, err := c.Selection(); err != nil {
		add("anchors: %w", err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}
