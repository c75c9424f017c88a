// SPDX-License-Identifier: MIT

package triples

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/katalvlaran/kgtriples/metrics"
)

// CoreTriplesFactory owns an ID-based triple matrix together with its
// KGInfo, provenance metadata and relation inverter.
//
// A factory is immutable: every transformation returns a new factory that
// shares counts, metadata and inverter with its source and holds its own
// triple matrix. The matrix passed to a constructor is retained without a
// copy and must not be mutated afterwards.
type CoreTriplesFactory struct {
	mapped   MappedTriples
	info     KGInfo
	metadata Metadata
	inverter RelationInverter
	logger   *slog.Logger
	metrics  *metrics.Collectors
}

// NewCoreTriplesFactory validates mapped against the declared counts.
// numRelations is the real relation count, excluding inverses.
//
// Errors:
//   - ErrInvalidArgument  negative counts
//   - ErrIDOutOfRange     an ID <0, a head/tail ≥ numEntities or a relation ≥ numRelations
//   - ErrUnknownInverter  WithInverterName named an unregistered inverter
//
// Complexity: O(n).
func NewCoreTriplesFactory(mapped MappedTriples, numEntities, numRelations int, opts ...Option) (*CoreTriplesFactory, error) {
	o := gatherOptions(opts...)

	return newCore(mapped, numEntities, numRelations, o)
}

func newCore(mapped MappedTriples, numEntities, numRelations int, o Options) (*CoreTriplesFactory, error) {
	if numEntities < 0 || numRelations < 0 {
		return nil, fmt.Errorf("num_entities=%d num_relations=%d: %w", numEntities, numRelations, ErrInvalidArgument)
	}
	if err := validateRange(mapped, numEntities, numRelations); err != nil {
		return nil, err
	}
	inv, err := o.resolveInverter(numRelations)
	if err != nil {
		return nil, err
	}
	if mapped == nil {
		mapped = MappedTriples{}
	}

	return &CoreTriplesFactory{
		mapped:   mapped,
		info:     NewKGInfo(numEntities, numRelations, o.createInverse),
		metadata: o.metadata,
		inverter: inv,
		logger:   o.logger,
		metrics:  o.metrics,
	}, nil
}

// CreateCoreTriplesFactory infers the counts as 1 + the largest observed ID
// unless WithNumEntities / WithNumRelations are given.
func CreateCoreTriplesFactory(mapped MappedTriples, opts ...Option) (*CoreTriplesFactory, error) {
	o := gatherOptions(opts...)
	numEntities, numRelations := o.numEntities, o.numRelations
	if numEntities < 0 {
		numEntities = numIDs(mapped, ColumnHead, ColumnTail)
	}
	if numRelations < 0 {
		numRelations = numIDs(mapped, ColumnRelation)
	}

	return newCore(mapped, numEntities, numRelations, o)
}

// numIDs returns 1 + the largest ID in the given columns, 0 when empty.
func numIDs(m MappedTriples, cols ...Column) int {
	n := 0
	for _, t := range m {
		for _, c := range cols {
			if int(t[c])+1 > n {
				n = int(t[c]) + 1
			}
		}
	}

	return n
}

// validateRange reports the per-column min/max when any ID is out of range.
func validateRange(m MappedTriples, numEntities, numRelations int) error {
	if len(m) == 0 {
		return nil
	}
	lo, hi := m[0], m[0]
	for _, t := range m[1:] {
		for c := range t {
			lo[c] = min(lo[c], t[c])
			hi[c] = max(hi[c], t[c])
		}
	}
	ne, nr := int64(numEntities), int64(numRelations)
	if lo[0] < 0 || lo[1] < 0 || lo[2] < 0 || hi[0] >= ne || hi[2] >= ne || hi[1] >= nr {
		return fmt.Errorf("min=%v max=%v while num_entities=%d num_relations=%d: %w",
			lo, hi, numEntities, numRelations, ErrIDOutOfRange)
	}

	return nil
}

// derive builds a factory over mapped sharing everything else with f.
// mapped must already lie within f's ID ranges.
func (f *CoreTriplesFactory) derive(mapped MappedTriples, md Metadata, createInverse bool) *CoreTriplesFactory {
	if mapped == nil {
		mapped = MappedTriples{}
	}

	return &CoreTriplesFactory{
		mapped:   mapped,
		info:     NewKGInfo(f.info.NumEntities, f.info.RealNumRelations, createInverse),
		metadata: md,
		inverter: f.inverter,
		logger:   f.logger,
		metrics:  f.metrics,
	}
}

// MappedTriples returns the triple matrix. The slice is shared; callers must
// not modify it.
func (f *CoreTriplesFactory) MappedTriples() MappedTriples { return f.mapped }

// NumTriples returns the number of rows.
func (f *CoreTriplesFactory) NumTriples() int { return len(f.mapped) }

// Info returns the counts and inverse policy.
func (f *CoreTriplesFactory) Info() KGInfo { return f.info }

// NumEntities returns the entity count.
func (f *CoreTriplesFactory) NumEntities() int { return f.info.NumEntities }

// NumRelations returns the relation count, inverses included.
func (f *CoreTriplesFactory) NumRelations() int { return f.info.NumRelations }

// RealNumRelations returns the relation count without inverses.
func (f *CoreTriplesFactory) RealNumRelations() int { return f.info.RealNumRelations }

// CreateInverseTriples reports the inverse policy.
func (f *CoreTriplesFactory) CreateInverseTriples() bool { return f.info.CreateInverseTriples }

// Metadata returns the provenance record.
func (f *CoreTriplesFactory) Metadata() Metadata { return f.metadata }

// Inverter returns the relation inverter.
func (f *CoreTriplesFactory) Inverter() RelationInverter { return f.inverter }

// Logger returns the factory logger.
func (f *CoreTriplesFactory) Logger() *slog.Logger { return f.logger }

// Metrics returns the attached collectors, possibly nil.
func (f *CoreTriplesFactory) Metrics() *metrics.Collectors { return f.metrics }

// EdgeIndex returns the (head, tail) pair of every triple.
func (f *CoreTriplesFactory) EdgeIndex() [][2]int64 {
	out := make([][2]int64, len(f.mapped))
	for i, t := range f.mapped {
		out[i] = [2]int64{t[0], t[2]}
	}

	return out
}

// RelationCounts returns the number of triples per real relation ID.
func (f *CoreTriplesFactory) RelationCounts() []int {
	counts := make([]int, f.info.RealNumRelations)
	for _, t := range f.mapped {
		counts[t[1]]++
	}

	return counts
}

// GetInverseRelationID returns the materialised inverse ID of relation.
// Fails with ErrInversesNotCreated when the factory does not create inverses.
func (f *CoreTriplesFactory) GetInverseRelationID(relation int64) (int64, error) {
	if !f.info.CreateInverseTriples {
		return 0, ErrInversesNotCreated
	}
	if relation < 0 || relation >= int64(f.info.RealNumRelations) {
		return 0, fmt.Errorf("relation %d of %d: %w", relation, f.info.RealNumRelations, ErrIDOutOfRange)
	}

	return f.inverter.Inverse(relation), nil
}

// AddInverseTriplesIfNecessary returns mapped unchanged when inverses are
// disabled. Otherwise it returns the forward-mapped triples followed by the
// flipped triples tagged with their inverse relation IDs.
//
// Use it when building training instances, never for evaluation triples.
func (f *CoreTriplesFactory) AddInverseTriplesIfNecessary(mapped MappedTriples) MappedTriples {
	if !f.info.CreateInverseTriples {
		return mapped
	}
	f.logger.Info("creating inverse triples", "triples", len(mapped))

	return materialise(f.inverter, mapped)
}

// Equal compares counts, inverse policy and the triple matrix (row order
// included). Metadata is not compared.
func (f *CoreTriplesFactory) Equal(other *CoreTriplesFactory) bool {
	if f == nil || other == nil {
		return f == other
	}

	return f.info == other.info && f.mapped.Equal(other.mapped)
}

// String renders the counts, the triple count and the sorted metadata.
func (f *CoreTriplesFactory) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CoreTriplesFactory(%s, num_triples=%d", f.info, len(f.mapped))
	if f.metadata.Len() > 0 {
		fmt.Fprintf(&b, ", %s", f.metadata)
	}
	b.WriteString(")")

	return b.String()
}
