// SPDX-License-Identifier: MIT

package triples

import (
	"log/slog"

	"github.com/katalvlaran/kgtriples/metrics"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultCreateInverseTriples disables inverse materialisation.
	DefaultCreateInverseTriples = false

	// DefaultCompactIDs renumbers caller-supplied label maps to 0..n-1.
	DefaultCompactIDs = true

	// DefaultInverseRelationFilter drops rows whose relation label already
	// carries InverseSuffix.
	DefaultInverseRelationFilter = true

	// InverseSuffix marks the label of a synthetic inverse relation.
	InverseSuffix = "_inverse"

	// DefaultUnknownLabel is substituted by LabelTriples for unknown IDs.
	DefaultUnknownLabel = "[UNKNOWN]"
)

// Options holds factory configuration. Constructors ignore the options
// they do not understand (e.g. WithEntityToID for a core factory).
type Options struct {
	createInverse bool
	metadata      Metadata
	inverter      RelationInverter
	inverterName  string
	logger        *slog.Logger
	metrics       *metrics.Collectors

	// CreateCoreTriplesFactory
	numEntities  int
	numRelations int

	// FromLabeledTriples
	entityToID     map[string]int64
	relationToID   map[string]int64
	compactIDs     bool
	filterInverses bool
}

// Option configures a factory constructor.
type Option func(*Options)

// WithInverseTriples toggles inverse-triple materialisation.
func WithInverseTriples(enable bool) Option {
	return func(o *Options) { o.createInverse = enable }
}

// WithMetadata attaches provenance metadata (copied).
func WithMetadata(m map[string]any) Option {
	return func(o *Options) { o.metadata = o.metadata.With(m) }
}

// WithInverter selects the relation inverter instance.
// Panics on nil (programmer error).
func WithInverter(inv RelationInverter) Option {
	if inv == nil {
		panic("triples: WithInverter(nil)")
	}
	return func(o *Options) { o.inverter, o.inverterName = inv, "" }
}

// WithInverterName selects a registered relation inverter by name. Unknown
// names surface as ErrUnknownInverter from the constructor.
func WithInverterName(name string) Option {
	return func(o *Options) { o.inverter, o.inverterName = nil, name }
}

// WithLogger sets the logger; nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics reports dropped triples to c.
func WithMetrics(c *metrics.Collectors) Option {
	return func(o *Options) { o.metrics = c }
}

// WithNumEntities overrides the inferred entity count
// (CreateCoreTriplesFactory only). Panics on negative values.
func WithNumEntities(n int) Option {
	if n < 0 {
		panic("triples: WithNumEntities(n<0)")
	}
	return func(o *Options) { o.numEntities = n }
}

// WithNumRelations overrides the inferred real relation count
// (CreateCoreTriplesFactory only). Panics on negative values.
func WithNumRelations(n int) Option {
	if n < 0 {
		panic("triples: WithNumRelations(n<0)")
	}
	return func(o *Options) { o.numRelations = n }
}

// WithEntityToID supplies a fixed entity label map (FromLabeledTriples).
// Rows with entities outside the map are dropped.
func WithEntityToID(m map[string]int64) Option {
	return func(o *Options) { o.entityToID = m }
}

// WithRelationToID supplies a fixed relation label map (FromLabeledTriples).
// Rows with relations outside the map are dropped.
func WithRelationToID(m map[string]int64) Option {
	return func(o *Options) { o.relationToID = m }
}

// WithCompactIDs toggles renumbering of label maps to 0..n-1.
func WithCompactIDs(enable bool) Option {
	return func(o *Options) { o.compactIDs = enable }
}

// WithInverseRelationFilter toggles dropping of rows whose relation label
// ends with InverseSuffix.
func WithInverseRelationFilter(enable bool) Option {
	return func(o *Options) { o.filterInverses = enable }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		createInverse:  DefaultCreateInverseTriples,
		logger:         slog.Default(),
		numEntities:    -1,
		numRelations:   -1,
		compactIDs:     DefaultCompactIDs,
		filterInverses: DefaultInverseRelationFilter,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// resolveInverter returns the configured inverter for numReal relations.
func (o Options) resolveInverter(numReal int) (RelationInverter, error) {
	if o.inverter != nil {
		return o.inverter, nil
	}

	return NewInverter(o.inverterName, numReal)
}
