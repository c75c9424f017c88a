// SPDX-License-Identifier: MIT

package triples

import (
	"fmt"

	"github.com/katalvlaran/kgtriples/condense"
	"github.com/katalvlaran/kgtriples/labeling"
	"github.com/katalvlaran/kgtriples/splitting"
)

// wrap attaches f's labelings to a derived core factory.
func (f *TriplesFactory) wrap(core *CoreTriplesFactory) *TriplesFactory {
	if core == f.CoreTriplesFactory {
		return f
	}

	return &TriplesFactory{CoreTriplesFactory: core, entities: f.entities, relations: f.relations}
}

func (f *TriplesFactory) wrapAll(cores []*CoreTriplesFactory) []*TriplesFactory {
	out := make([]*TriplesFactory, len(cores))
	for i, c := range cores {
		out[i] = f.wrap(c)
	}

	return out
}

// CloneAndExchangeTriples keeps the labelings; see
// CoreTriplesFactory.CloneAndExchangeTriples.
func (f *TriplesFactory) CloneAndExchangeTriples(mapped MappedTriples, opts CloneOptions) (*TriplesFactory, error) {
	core, err := f.CoreTriplesFactory.CloneAndExchangeTriples(mapped, opts)
	if err != nil {
		return nil, err
	}

	return f.wrap(core), nil
}

// ApplyCondenser renumbers triples and labelings together.
func (f *TriplesFactory) ApplyCondenser(tc condense.TripleCondenser) (*TriplesFactory, error) {
	if !tc.Active() {
		return f, nil
	}
	core, err := f.CoreTriplesFactory.ApplyCondenser(tc)
	if err != nil {
		return nil, err
	}

	return &TriplesFactory{
		CoreTriplesFactory: core,
		entities:           labeling.New(tc.Entities.ApplyToMap(f.entities.IDToLabel())),
		relations:          labeling.New(tc.Relations.ApplyToMap(f.relations.IDToLabel())),
	}, nil
}

// Condense drops unused IDs and their labels.
func (f *TriplesFactory) Condense(entities, relations bool) (*TriplesFactory, error) {
	return f.ApplyCondenser(f.MakeCondenser(entities, relations))
}

// Split keeps the labelings on every part.
func (f *TriplesFactory) Split(ratios []float64, opts ...splitting.Option) ([]*TriplesFactory, error) {
	parts, err := f.CoreTriplesFactory.Split(ratios, opts...)
	if err != nil {
		return nil, err
	}

	return f.wrapAll(parts), nil
}

// SplitSemiInductive keeps the labelings on every part.
func (f *TriplesFactory) SplitSemiInductive(ratios []float64, opts ...splitting.Option) ([]*TriplesFactory, error) {
	parts, err := f.CoreTriplesFactory.SplitSemiInductive(ratios, opts...)
	if err != nil {
		return nil, err
	}

	return f.wrapAll(parts), nil
}

// SplitFullyInductive condenses the training graph's labeling on its own and
// the inference-side labeling once for the inference graph and every
// evaluation part.
func (f *TriplesFactory) SplitFullyInductive(trainRatio float64, evalRatios []float64, opts ...splitting.Option) ([]*TriplesFactory, error) {
	parts, err := splitting.SplitFullyInductive(f.mapped.Rows(), trainRatio, evalRatios, f.splitOptions(opts)...)
	if err != nil {
		return nil, fmt.Errorf("fully-inductive split: %w", err)
	}
	training, err := f.wrap(f.clone(MappedTriples(parts[0]), CloneOptions{})).Condense(true, false)
	if err != nil {
		return nil, err
	}
	tc := condense.MakeTripleBounded(parts[1], f.info.NumEntities, f.info.RealNumRelations, true, false)
	out := []*TriplesFactory{training}
	for i, p := range parts[1:] {
		co := CloneOptions{}
		if i > 0 {
			co.CreateInverseTriples = &falseFlag
		}
		tf, err := f.wrap(f.clone(MappedTriples(p), co)).ApplyCondenser(tc)
		if err != nil {
			return nil, fmt.Errorf("evaluation part %d: %w", i, err)
		}
		out = append(out, tf)
	}

	return out, nil
}

// Merge additionally requires identical labelings (ErrLabelingMismatch).
func (f *TriplesFactory) Merge(others ...*TriplesFactory) (*TriplesFactory, error) {
	cores := make([]*CoreTriplesFactory, len(others))
	for i, o := range others {
		if !o.entities.Equal(f.entities) {
			return nil, fmt.Errorf("others[%d]: entity labeling: %w", i, ErrLabelingMismatch)
		}
		if !o.relations.Equal(f.relations) {
			return nil, fmt.Errorf("others[%d]: relation labeling: %w", i, ErrLabelingMismatch)
		}
		cores[i] = o.CoreTriplesFactory
	}
	core, err := f.CoreTriplesFactory.Merge(cores...)
	if err != nil {
		return nil, err
	}

	return f.wrap(core), nil
}

// NewWithRestriction keeps the labelings; see
// CoreTriplesFactory.NewWithRestriction.
func (f *TriplesFactory) NewWithRestriction(r Restriction) *TriplesFactory {
	return f.wrap(f.CoreTriplesFactory.NewWithRestriction(r))
}

// LabelRestriction is a Restriction expressed with labels.
type LabelRestriction struct {
	Entities        []string
	Relations       []string
	InvertEntities  bool
	InvertRelations bool
}

// NewWithLabelRestriction resolves the labels and restricts. The metadata
// records the labels as given.
func (f *TriplesFactory) NewWithLabelRestriction(lr LabelRestriction) (*TriplesFactory, error) {
	r := Restriction{InvertEntities: lr.InvertEntities, InvertRelations: lr.InvertRelations}
	var err error
	if lr.Entities != nil {
		if r.Entities, err = f.EntitiesToIDs(lr.Entities); err != nil {
			return nil, err
		}
	}
	if lr.Relations != nil {
		if r.Relations, err = f.RelationsToIDs(lr.Relations); err != nil {
			return nil, err
		}
	}

	return f.wrap(f.restrict(r, lr.Entities, lr.Relations)), nil
}
