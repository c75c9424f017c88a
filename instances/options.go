// SPDX-License-Identifier: MIT

package instances

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/kgtriples/metrics"
	"github.com/katalvlaran/kgtriples/sampling"
	"github.com/katalvlaran/kgtriples/triples"
)

const (
	// DefaultTarget predicts tails.
	DefaultTarget = triples.ColumnTail

	// DefaultBatchSize is the sLCWA batch size.
	DefaultBatchSize = 1

	// DefaultDropLast drops the final undersized batch.
	DefaultDropLast = true

	// DefaultMaxRejections bounds the random edge draws at one subgraph node
	// before its unpicked edges are enumerated.
	DefaultMaxRejections = 8

	// DefaultLoaderBuffer is the channel capacity of a Loader.
	DefaultLoaderBuffer = 4
)

// Options configures both instance kinds. Builders ignore options they do
// not understand (e.g. WithTarget for sLCWA).
type Options struct {
	// LCWA
	target   triples.Column
	weighter LossWeighter
	rowCache int

	// sLCWA
	batchSize     int
	dropLast      bool
	sampler       sampling.Sampler
	samplerName   string
	numNegsPerPos int
	filtered      bool
	posWeighter   LossWeighter
	negWeighter   LossWeighter
	maxRejections int

	// shared
	numEntities  int
	numRelations int
	logger       *slog.Logger
	metrics      *metrics.Collectors
}

// Option configures an instance builder.
type Option func(*Options)

// WithTarget selects the predicted column of LCWA instances.
// Panics on a column outside head/relation/tail.
func WithTarget(col triples.Column) Option {
	if col < triples.ColumnHead || col > triples.ColumnTail {
		panic(fmt.Sprintf("instances: WithTarget(%d): %v", col, ErrInvalidTarget))
	}

	return func(o *Options) { o.target = col }
}

// WithLossWeighter weights LCWA rows.
func WithLossWeighter(w LossWeighter) Option {
	return func(o *Options) { o.weighter = w }
}

// WithRowCache keeps up to size dense LCWA rows in an LRU cache; 0 disables it.
// Panics if size < 0.
func WithRowCache(size int) Option {
	if size < 0 {
		panic("instances: WithRowCache(size<0)")
	}

	return func(o *Options) { o.rowCache = size }
}

// WithBatchSize sets the sLCWA batch size. Panics if b ≤ 0.
func WithBatchSize(b int) Option {
	if b <= 0 {
		panic("instances: WithBatchSize(b<=0)")
	}

	return func(o *Options) { o.batchSize = b }
}

// WithDropLast toggles dropping the final undersized batched-sLCWA batch.
func WithDropLast(drop bool) Option {
	return func(o *Options) { o.dropLast = drop }
}

// WithSampler uses s for negatives. It takes precedence over WithSamplerName.
func WithSampler(s sampling.Sampler) Option {
	return func(o *Options) { o.sampler = s }
}

// WithSamplerName resolves the negative sampler from the sampling registry,
// with the positives as known triples.
func WithSamplerName(name string) Option {
	return func(o *Options) { o.samplerName = name }
}

// WithNumNegsPerPos sets the negatives per positive of a registry sampler.
func WithNumNegsPerPos(k int) Option {
	return func(o *Options) { o.numNegsPerPos = k }
}

// WithFilteredNegatives enables the validity mask of a registry sampler.
func WithFilteredNegatives(enable bool) Option {
	return func(o *Options) { o.filtered = enable }
}

// WithPositiveWeighter weights positive triples.
func WithPositiveWeighter(w LossWeighter) Option {
	return func(o *Options) { o.posWeighter = w }
}

// WithNegativeWeighter weights negative triples.
func WithNegativeWeighter(w LossWeighter) Option {
	return func(o *Options) { o.negWeighter = w }
}

// WithMaxRejections bounds random draws per subgraph step. Panics if n ≤ 0.
func WithMaxRejections(n int) Option {
	if n <= 0 {
		panic("instances: WithMaxRejections(n<=0)")
	}

	return func(o *Options) { o.maxRejections = n }
}

// WithNumEntities declares the entity space; by default it is inferred
// from the triples (max ID + 1).
func WithNumEntities(n int) Option {
	return func(o *Options) { o.numEntities = n }
}

// WithNumRelations declares the relation space; by default it is inferred.
func WithNumRelations(n int) Option {
	return func(o *Options) { o.numRelations = n }
}

// WithLogger sets the logger; nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics counts produced batches and subgraph exhaustion.
func WithMetrics(c *metrics.Collectors) Option {
	return func(o *Options) { o.metrics = c }
}

func gatherOptions(opts []Option) Options {
	o := Options{
		target:        DefaultTarget,
		batchSize:     DefaultBatchSize,
		dropLast:      DefaultDropLast,
		samplerName:   sampling.DefaultName,
		maxRejections: DefaultMaxRejections,
		numEntities:   -1,
		numRelations:  -1,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// fromFactory prepends the factory's counts, logger and metrics so explicit
// options still win.
func fromFactory(src triples.Factory, opts []Option) []Option {
	info := src.Info()
	base := []Option{
		WithNumEntities(info.NumEntities),
		WithNumRelations(info.NumRelations),
		WithLogger(src.Logger()),
		WithMetrics(src.Metrics()),
	}

	return append(base, opts...)
}

// spaces resolves the declared counts, inferring missing ones from mapped.
func (o Options) spaces(mapped triples.MappedTriples) (numEntities, numRelations int) {
	numEntities, numRelations = o.numEntities, o.numRelations
	if numEntities < 0 {
		numEntities = maxID(mapped, triples.ColumnHead, triples.ColumnTail)
	}
	if numRelations < 0 {
		numRelations = maxID(mapped, triples.ColumnRelation)
	}

	return numEntities, numRelations
}

func maxID(m triples.MappedTriples, cols ...triples.Column) int {
	n := 0
	for _, t := range m {
		for _, c := range cols {
			n = max(n, int(t[c])+1)
		}
	}

	return n
}
