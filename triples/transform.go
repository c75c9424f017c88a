// SPDX-License-Identifier: MIT

package triples

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/katalvlaran/kgtriples/condense"
	"github.com/katalvlaran/kgtriples/metrics"
	"github.com/katalvlaran/kgtriples/splitting"
)

// Metadata keys written by transformations.
const (
	MetaPath                = "path"
	MetaEntityRestriction   = "entity_restriction"
	MetaRelationRestriction = "relation_restriction"
)

// CloneOptions tune CloneAndExchangeTriples.
type CloneOptions struct {
	// ExtraMetadata is merged into the kept metadata; its values win.
	ExtraMetadata map[string]any
	// DropMetadata discards the source metadata before merging.
	DropMetadata bool
	// CreateInverseTriples overrides the inverse policy when non-nil.
	CreateInverseTriples *bool
}

// MostFrequentRelations returns the IDs of the n relations with the most
// triples, most frequent first. Ties are broken by ascending ID; n is
// clamped to the number of distinct relations present.
//
// Complexity: O(n + R log R).
func (f *CoreTriplesFactory) MostFrequentRelations(n int) []int64 {
	f.logger.Info("applying relation frequency cutoff", "n", n, "factory", f.String())
	counts := f.RelationCounts()
	ids := make([]int64, 0, len(counts))
	for r, c := range counts {
		if c > 0 {
			ids = append(ids, int64(r))
		}
	}
	slices.SortFunc(ids, func(a, b int64) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	return ids[:min(max(n, 0), len(ids))]
}

// MostFrequentRelationsFraction keeps int(NumRelations*frac) relations.
// NumRelations includes inverse relations when they are enabled; the result
// is clamped like MostFrequentRelations. frac must lie in (0, 1).
func (f *CoreTriplesFactory) MostFrequentRelationsFraction(frac float64) ([]int64, error) {
	if !(frac > 0 && frac < 1) {
		return nil, fmt.Errorf("fraction %g not in (0, 1): %w", frac, ErrInvalidArgument)
	}

	return f.MostFrequentRelations(int(float64(f.info.NumRelations) * frac)), nil
}

// CloneAndExchangeTriples returns a factory sharing counts and inverter with
// f, holding mapped instead of f's triples. mapped is validated against
// f's counts.
func (f *CoreTriplesFactory) CloneAndExchangeTriples(mapped MappedTriples, opts CloneOptions) (*CoreTriplesFactory, error) {
	if err := validateRange(mapped, f.info.NumEntities, f.info.RealNumRelations); err != nil {
		return nil, err
	}

	return f.clone(mapped, opts), nil
}

func (f *CoreTriplesFactory) clone(mapped MappedTriples, opts CloneOptions) *CoreTriplesFactory {
	md := f.metadata
	if opts.DropMetadata {
		md = Metadata{}
	}
	createInverse := f.info.CreateInverseTriples
	if opts.CreateInverseTriples != nil {
		createInverse = *opts.CreateInverseTriples
	}

	return f.derive(mapped, md.With(opts.ExtraMetadata), createInverse)
}

// MakeCondenser builds a condenser from f's triples without applying it.
// IDs of f's declared spaces that no triple uses are dropped.
func (f *CoreTriplesFactory) MakeCondenser(entities, relations bool) condense.TripleCondenser {
	return condense.MakeTripleBounded(f.mapped.Rows(), f.info.NumEntities, f.info.RealNumRelations, entities, relations)
}

// ApplyCondenser renumbers f's triples and shrinks its counts. The identity
// condenser returns f itself.
func (f *CoreTriplesFactory) ApplyCondenser(tc condense.TripleCondenser) (*CoreTriplesFactory, error) {
	if !tc.Active() {
		return f, nil
	}
	rows, err := tc.Apply(f.mapped.Rows())
	if err != nil {
		return nil, err
	}
	numRelations := tc.Relations.ApplyToNum(f.info.RealNumRelations)
	inv := f.inverter
	if off, ok := inv.(OffsetInverter); ok {
		off.NumReal = int64(numRelations)
		inv = off
	}

	return &CoreTriplesFactory{
		mapped:   MappedTriples(rows),
		info:     NewKGInfo(tc.Entities.ApplyToNum(f.info.NumEntities), numRelations, f.info.CreateInverseTriples),
		metadata: f.metadata,
		inverter: inv,
		logger:   f.logger,
		metrics:  f.metrics,
	}, nil
}

// Condense drops the entity and/or relation IDs that no triple uses.
// Returns f itself when nothing needs renumbering.
func (f *CoreTriplesFactory) Condense(entities, relations bool) (*CoreTriplesFactory, error) {
	return f.ApplyCondenser(f.MakeCondenser(entities, relations))
}

var falseFlag = false

// partClone wraps split part i. Parts after the training part never create
// inverse triples; evaluation code handles inverses itself.
func (f *CoreTriplesFactory) partClone(i int, rows [][3]int64) *CoreTriplesFactory {
	if i == 0 {
		return f.clone(MappedTriples(rows), CloneOptions{})
	}

	return f.clone(MappedTriples(rows), CloneOptions{CreateInverseTriples: &falseFlag})
}

func (f *CoreTriplesFactory) splitOptions(opts []splitting.Option) []splitting.Option {
	base := []splitting.Option{splitting.WithLogger(f.logger), splitting.WithMetrics(f.metrics)}

	return append(base, opts...)
}

// Split partitions f transductively. Part 0 (training) keeps f's inverse
// policy and contains every entity and relation of f; the other parts
// never create inverse triples.
func (f *CoreTriplesFactory) Split(ratios []float64, opts ...splitting.Option) ([]*CoreTriplesFactory, error) {
	parts, err := splitting.Split(f.mapped.Rows(), ratios, f.splitOptions(opts)...)
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}
	out := make([]*CoreTriplesFactory, len(parts))
	for i, p := range parts {
		out[i] = f.partClone(i, p)
	}

	return out, nil
}

// SplitSemiInductive partitions f by entity groups; see
// splitting.SplitSemiInductive.
func (f *CoreTriplesFactory) SplitSemiInductive(ratios []float64, opts ...splitting.Option) ([]*CoreTriplesFactory, error) {
	parts, err := splitting.SplitSemiInductive(f.mapped.Rows(), ratios, f.splitOptions(opts)...)
	if err != nil {
		return nil, fmt.Errorf("semi-inductive split: %w", err)
	}
	out := make([]*CoreTriplesFactory, len(parts))
	for i, p := range parts {
		out[i] = f.partClone(i, p)
	}

	return out, nil
}

// SplitFullyInductive returns the training graph, the inference graph and
// the evaluation parts. The training graph is condensed on its own; one
// condenser built from the inference graph is applied to the inference
// graph and every evaluation part, so their entity IDs agree.
func (f *CoreTriplesFactory) SplitFullyInductive(trainRatio float64, evalRatios []float64, opts ...splitting.Option) ([]*CoreTriplesFactory, error) {
	parts, err := splitting.SplitFullyInductive(f.mapped.Rows(), trainRatio, evalRatios, f.splitOptions(opts)...)
	if err != nil {
		return nil, fmt.Errorf("fully-inductive split: %w", err)
	}
	training, err := f.clone(MappedTriples(parts[0]), CloneOptions{}).Condense(true, false)
	if err != nil {
		return nil, err
	}
	tc := condense.MakeTripleBounded(parts[1], f.info.NumEntities, f.info.RealNumRelations, true, false)
	out := []*CoreTriplesFactory{training}
	for i, p := range parts[1:] {
		cf := f.clone(MappedTriples(p), CloneOptions{})
		if i > 0 {
			cf = f.clone(MappedTriples(p), CloneOptions{CreateInverseTriples: &falseFlag})
		}
		cf, err = cf.ApplyCondenser(tc)
		if err != nil {
			return nil, fmt.Errorf("evaluation part %d: %w", i, err)
		}
		out = append(out, cf)
	}

	return out, nil
}

// Merge concatenates the triples of f and others (no deduplication). All
// operands must agree on entity count, relation count and inverse policy.
func (f *CoreTriplesFactory) Merge(others ...*CoreTriplesFactory) (*CoreTriplesFactory, error) {
	if len(others) == 0 {
		return f, nil
	}
	total := len(f.mapped)
	for i, o := range others {
		if err := f.compatible(i, o); err != nil {
			return nil, err
		}
		total += len(o.mapped)
	}
	mapped := make(MappedTriples, 0, total)
	mapped = append(mapped, f.mapped...)
	for _, o := range others {
		mapped = append(mapped, o.mapped...)
	}

	return f.clone(mapped, CloneOptions{}), nil
}

func (f *CoreTriplesFactory) compatible(i int, o *CoreTriplesFactory) error {
	switch {
	case o.info.NumEntities != f.info.NumEntities:
		return fmt.Errorf("others[%d]: num_entities %d vs. %d: %w", i, f.info.NumEntities, o.info.NumEntities, ErrConfigMismatch)
	case o.info.NumRelations != f.info.NumRelations:
		return fmt.Errorf("others[%d]: num_relations %d vs. %d: %w", i, f.info.NumRelations, o.info.NumRelations, ErrConfigMismatch)
	case o.info.CreateInverseTriples != f.info.CreateInverseTriples:
		return fmt.Errorf("others[%d]: create_inverse_triples %t vs. %t: %w", i,
			f.info.CreateInverseTriples, o.info.CreateInverseTriples, ErrConfigMismatch)
	}

	return nil
}

// Restriction selects triples by entity and relation IDs. A nil slice
// means "no filter on this axis"; an empty non-nil slice selects nothing
// (or everything, when inverted).
type Restriction struct {
	Entities        []int64
	Relations       []int64
	InvertEntities  bool
	InvertRelations bool
}

func idSet(ids []int64) map[int64]struct{} {
	s := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}

	return s
}

// restrictMask marks the rows kept by r. Entities: head and tail must both
// pass; relations: the relation must pass.
func restrictMask(m MappedTriples, r Restriction) []bool {
	keep := make([]bool, len(m))
	ents, rels := idSet(r.Entities), idSet(r.Relations)
	for i, t := range m {
		ok := true
		if r.Entities != nil {
			_, h := ents[t[0]]
			_, tl := ents[t[2]]
			ok = h != r.InvertEntities && tl != r.InvertEntities
		}
		if ok && r.Relations != nil {
			_, rel := rels[t[1]]
			ok = rel != r.InvertRelations
		}
		keep[i] = ok
	}

	return keep
}

// NewWithRestriction keeps the triples selected by r. The ID mappings are
// not changed. When nothing is filtered out it returns f itself; otherwise
// the restriction is recorded in the metadata of the new factory.
func (f *CoreTriplesFactory) NewWithRestriction(r Restriction) *CoreTriplesFactory {
	return f.restrict(r, r.Entities, r.Relations)
}

// restrict filters by r, recording entityMeta/relationMeta in metadata.
func (f *CoreTriplesFactory) restrict(r Restriction, entityMeta, relationMeta any) *CoreTriplesFactory {
	if r.Entities == nil && r.Relations == nil {
		return f
	}
	extra := map[string]any{}
	if r.Entities != nil {
		extra[MetaEntityRestriction] = entityMeta
		f.logger.Info("restricting entities", "selected", len(r.Entities), "inverted", r.InvertEntities, "total", f.info.NumEntities)
	}
	if r.Relations != nil {
		extra[MetaRelationRestriction] = relationMeta
		f.logger.Info("restricting relations", "selected", len(r.Relations), "inverted", r.InvertRelations, "total", f.info.RealNumRelations)
	}

	mask := restrictMask(f.mapped, r)
	kept := make(MappedTriples, 0, len(f.mapped))
	for i, t := range f.mapped {
		if mask[i] {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(f.mapped) {
		return f
	}
	f.logger.Info("keeping triples", "kept", len(kept), "total", len(f.mapped))
	f.metrics.Dropped(metrics.ReasonRestriction, len(f.mapped)-len(kept))

	return f.clone(kept, CloneOptions{ExtraMetadata: extra})
}

// MaskForRelations marks the triples whose relation is in relations (or not
// in it, when invert is set).
func (f *CoreTriplesFactory) MaskForRelations(relations []int64, invert bool) []bool {
	rels := idSet(relations)
	mask := make([]bool, len(f.mapped))
	for i, t := range f.mapped {
		_, ok := rels[t[1]]
		mask[i] = ok != invert
	}

	return mask
}
