// SPDX-License-Identifier: MIT

package triples

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/katalvlaran/kgtriples/labeling"
	"github.com/katalvlaran/kgtriples/metrics"
)

// TriplesFactory is a CoreTriplesFactory with entity and relation
// labelings. Every ID used by its triples has a label.
//
// The transformations of CoreTriplesFactory are overridden so that derived
// factories keep (or condense) the labelings.
type TriplesFactory struct {
	*CoreTriplesFactory
	entities  *labeling.Labeling
	relations *labeling.Labeling
}

// Factory is the read side shared by both factory kinds; instance builders
// consume it.
type Factory interface {
	MappedTriples() MappedTriples
	Info() KGInfo
	Metadata() Metadata
	AddInverseTriplesIfNecessary(MappedTriples) MappedTriples
	Logger() *slog.Logger
	Metrics() *metrics.Collectors
}

var (
	_ Factory = (*CoreTriplesFactory)(nil)
	_ Factory = (*TriplesFactory)(nil)
)

// NewTriplesFactory validates mapped against labelings built from the two
// label maps. Counts are the labelings' MaxID.
func NewTriplesFactory(mapped MappedTriples, entityToID, relationToID map[string]int64, opts ...Option) (*TriplesFactory, error) {
	ents, rels := labeling.New(entityToID), labeling.New(relationToID)
	core, err := NewCoreTriplesFactory(mapped, ents.MaxID(), rels.MaxID(), opts...)
	if err != nil {
		return nil, err
	}

	return &TriplesFactory{CoreTriplesFactory: core, entities: ents, relations: rels}, nil
}

// CreateEntityMapping assigns IDs to the sorted unique head and tail labels.
func CreateEntityMapping(rows []LabeledTriple) map[string]int64 {
	set := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		set[r[0]] = struct{}{}
		set[r[2]] = struct{}{}
	}
	out := make(map[string]int64, len(set))
	for i, label := range slices.Sorted(maps.Keys(set)) {
		out[label] = int64(i)
	}

	return out
}

// CreateRelationMapping assigns IDs to the unique relation labels, sorted by
// their label with InverseSuffix stripped, plain labels before suffixed
// ones. A relation and its suffixed counterpart therefore get adjacent IDs.
func CreateRelationMapping(relations []string) map[string]int64 {
	set := make(map[string]struct{}, len(relations))
	for _, r := range relations {
		set[r] = struct{}{}
	}
	labels := slices.Collect(maps.Keys(set))
	slices.SortFunc(labels, func(a, b string) int {
		sa, ia := strings.CutSuffix(a, InverseSuffix)
		sb, ib := strings.CutSuffix(b, InverseSuffix)
		if c := strings.Compare(sa, sb); c != 0 {
			return c
		}
		switch {
		case ia == ib:
			return 0
		case ia:
			return 1
		}
		return -1
	})
	out := make(map[string]int64, len(labels))
	for i, label := range labels {
		out[label] = int64(i)
	}

	return out
}

// MapTriplesToIDs maps labeled rows through the two label maps. Rows with
// any unknown label are dropped with a warning and counted; the result is
// sorted and deduplicated, so row order is NOT preserved.
func MapTriplesToIDs(rows []LabeledTriple, entityToID, relationToID map[string]int64, logger *slog.Logger, mc *metrics.Collectors) MappedTriples {
	if logger == nil {
		logger = slog.Default()
	}
	if len(rows) == 0 {
		logger.Warn("provided empty triples to map")
		return MappedTriples{}
	}
	out := make(MappedTriples, 0, len(rows))
	var noEntity, noRelation, dropped int
	for _, r := range rows {
		h, okH := entityToID[r[0]]
		rel, okR := relationToID[r[1]]
		t, okT := entityToID[r[2]]
		if !okH {
			noEntity++
		}
		if !okT {
			noEntity++
		}
		if !okR {
			noRelation++
		}
		if !okH || !okR || !okT {
			dropped++
			continue
		}
		out = append(out, Triple{h, rel, t})
	}
	if dropped > 0 {
		logger.Warn("excluding triples with unknown labels",
			"entities", noEntity, "relations", noRelation, "dropped", dropped, "total", len(rows))
		mc.Dropped(metrics.ReasonUnknownLabel, dropped)
	}

	return out.Unique()
}

// FromLabeledTriples builds a labeled factory from label-based rows.
//
// Stages:
//  1. unless WithInverseRelationFilter(false), drop rows whose relation
//     label ends with InverseSuffix (warn + count);
//  2. derive entity/relation maps unless supplied, compact them to 0..n-1
//     unless WithCompactIDs(false);
//  3. map rows to IDs (unknown labels dropped, rows deduplicated).
func FromLabeledTriples(rows []LabeledTriple, opts ...Option) (*TriplesFactory, error) {
	o := gatherOptions(opts...)
	if o.filterInverses {
		rows = filterInverseCandidates(rows, o)
	}

	entityToID := o.entityToID
	if entityToID == nil {
		entityToID = CreateEntityMapping(rows)
	}
	if o.compactIDs {
		entityToID, _ = labeling.Compact(entityToID)
	}
	relationToID := o.relationToID
	if relationToID == nil {
		rels := make([]string, len(rows))
		for i, r := range rows {
			rels[i] = r[1]
		}
		relationToID = CreateRelationMapping(rels)
	}
	if o.compactIDs {
		relationToID, _ = labeling.Compact(relationToID)
	}

	mapped := MapTriplesToIDs(rows, entityToID, relationToID, o.logger, o.metrics)
	ents, rels := labeling.New(entityToID), labeling.New(relationToID)
	core, err := newCore(mapped, ents.MaxID(), rels.MaxID(), o)
	if err != nil {
		return nil, err
	}

	return &TriplesFactory{CoreTriplesFactory: core, entities: ents, relations: rels}, nil
}

func filterInverseCandidates(rows []LabeledTriple, o Options) []LabeledTriple {
	kept := make([]LabeledTriple, 0, len(rows))
	for _, r := range rows {
		if !strings.HasSuffix(r[1], InverseSuffix) {
			kept = append(kept, r)
		}
	}
	if dropped := len(rows) - len(kept); dropped > 0 {
		o.logger.Warn("some triples already carry the inverse relation suffix; dropping them so inverses are re-created consistently",
			"suffix", InverseSuffix, "dropped", dropped, "total", len(rows))
		o.metrics.Dropped(metrics.ReasonInverseConflict, dropped)
	}

	return kept
}

// WithLabels attaches labelings to f. Every entity and relation ID used by
// f's triples must be covered, else ErrUncoveredIDs lists the missing IDs.
func (f *CoreTriplesFactory) WithLabels(entityToID, relationToID map[string]int64) (*TriplesFactory, error) {
	ents, rels := labeling.New(entityToID), labeling.New(relationToID)
	for _, axis := range []struct {
		name string
		used []int64
		l    *labeling.Labeling
	}{
		{"entity", f.mapped.Entities(), ents},
		{"relation", f.mapped.Relations(), rels},
	} {
		var missing []int64
		for _, id := range axis.used {
			if _, ok := axis.l.LabelOf(id); !ok {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%s ids %v: %w", axis.name, missing, ErrUncoveredIDs)
		}
	}

	return &TriplesFactory{CoreTriplesFactory: f, entities: ents, relations: rels}, nil
}

// ToCore drops the labelings.
func (f *TriplesFactory) ToCore() *CoreTriplesFactory { return f.CoreTriplesFactory }

// EntityLabeling returns the entity labeling.
func (f *TriplesFactory) EntityLabeling() *labeling.Labeling { return f.entities }

// RelationLabeling returns the relation labeling.
func (f *TriplesFactory) RelationLabeling() *labeling.Labeling { return f.relations }

// EntityToID returns a copy of the entity label map.
func (f *TriplesFactory) EntityToID() map[string]int64 { return f.entities.LabelToID() }

// RelationToID returns a copy of the relation label map.
func (f *TriplesFactory) RelationToID() map[string]int64 { return f.relations.LabelToID() }

// LabelTriples converts ID-based triples back to labels. Unknown IDs get
// unknownEntity / unknownRelation; an empty unknownRelation reuses
// unknownEntity.
func (f *TriplesFactory) LabelTriples(mapped MappedTriples, unknownEntity, unknownRelation string) []LabeledTriple {
	if unknownRelation == "" {
		unknownRelation = unknownEntity
	}
	heads := f.entities.Label(mapped.Column(ColumnHead), unknownEntity)
	rels := f.relations.Label(mapped.Column(ColumnRelation), unknownRelation)
	tails := f.entities.Label(mapped.Column(ColumnTail), unknownEntity)
	out := make([]LabeledTriple, len(mapped))
	for i := range out {
		out[i] = LabeledTriple{heads[i], rels[i], tails[i]}
	}

	return out
}

// Triples reconstructs all labeled triples.
func (f *TriplesFactory) Triples() []LabeledTriple {
	f.logger.Warn("reconstructing all label-based triples; this is expensive and rarely needed")

	return f.LabelTriples(f.mapped, DefaultUnknownLabel, "")
}

// MapTriples maps labeled rows with f's own label maps; see MapTriplesToIDs.
func (f *TriplesFactory) MapTriples(rows []LabeledTriple) MappedTriples {
	return MapTriplesToIDs(rows, f.entities.LabelToID(), f.relations.LabelToID(), f.logger, f.metrics)
}

func labelsToIDs(l *labeling.Labeling, axis string, labels []string) ([]int64, error) {
	ids, found := l.IDs(labels)
	for i, ok := range found {
		if !ok {
			return nil, fmt.Errorf("%s %q: %w", axis, labels[i], ErrUnknownLabel)
		}
	}

	return ids, nil
}

// EntitiesToIDs converts entity labels to IDs; unknown labels fail with
// ErrUnknownLabel.
func (f *TriplesFactory) EntitiesToIDs(labels []string) ([]int64, error) {
	return labelsToIDs(f.entities, "entity", labels)
}

// RelationsToIDs converts relation labels to IDs; unknown labels fail with
// ErrUnknownLabel.
func (f *TriplesFactory) RelationsToIDs(labels []string) ([]int64, error) {
	return labelsToIDs(f.relations, "relation", labels)
}

// GetInverseRelationIDByLabel resolves relation and returns its inverse ID.
func (f *TriplesFactory) GetInverseRelationIDByLabel(relation string) (int64, error) {
	ids, err := f.RelationsToIDs([]string{relation})
	if err != nil {
		return 0, err
	}

	return f.GetInverseRelationID(ids[0])
}

// MaskForRelationLabels is MaskForRelations over relation labels.
func (f *TriplesFactory) MaskForRelationLabels(relations []string, invert bool) ([]bool, error) {
	ids, err := f.RelationsToIDs(relations)
	if err != nil {
		return nil, err
	}

	return f.MaskForRelations(ids, invert), nil
}

// Equal additionally compares the labelings.
func (f *TriplesFactory) Equal(other *TriplesFactory) bool {
	if f == nil || other == nil {
		return f == other
	}

	return f.CoreTriplesFactory.Equal(other.CoreTriplesFactory) &&
		f.entities.Equal(other.entities) &&
		f.relations.Equal(other.relations)
}

// String renders like CoreTriplesFactory.String.
func (f *TriplesFactory) String() string {
	return "TriplesFactory" + strings.TrimPrefix(f.CoreTriplesFactory.String(), "CoreTriplesFactory")
}
