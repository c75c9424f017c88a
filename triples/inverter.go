// SPDX-License-Identifier: MIT

package triples

import (
	"fmt"
	"slices"
)

// RelationInverter maps real relation IDs onto the materialised relation
// space, in which every real relation has a forward and an inverse ID.
type RelationInverter interface {
	// Forward returns the materialised ID of real relation r.
	Forward(r int64) int64
	// Inverse returns the materialised ID of the inverse of real relation r.
	Inverse(r int64) int64
	// Real maps a materialised ID back to its real relation and reports
	// whether it denotes the inverse direction.
	Real(id int64) (r int64, inverse bool)
}

// DefaultInverter interleaves directions: forward 2r, inverse 2r+1.
type DefaultInverter struct{}

// Forward implements RelationInverter.
func (DefaultInverter) Forward(r int64) int64 { return 2 * r }

// Inverse implements RelationInverter.
func (DefaultInverter) Inverse(r int64) int64 { return 2*r + 1 }

// Real implements RelationInverter.
func (DefaultInverter) Real(id int64) (int64, bool) { return id / 2, id%2 == 1 }

// OffsetInverter keeps forward IDs and appends inverses: forward r,
// inverse r+NumReal.
type OffsetInverter struct {
	NumReal int64
}

// Forward implements RelationInverter.
func (OffsetInverter) Forward(r int64) int64 { return r }

// Inverse implements RelationInverter.
func (o OffsetInverter) Inverse(r int64) int64 { return r + o.NumReal }

// Real implements RelationInverter.
func (o OffsetInverter) Real(id int64) (int64, bool) {
	if id >= o.NumReal {
		return id - o.NumReal, true
	}

	return id, false
}

// Registered inverter names.
const (
	InverterDefault = "default"
	InverterOffset  = "offset"
)

var inverters = map[string]func(numReal int) RelationInverter{
	InverterDefault: func(int) RelationInverter { return DefaultInverter{} },
	InverterOffset:  func(n int) RelationInverter { return OffsetInverter{NumReal: int64(n)} },
}

// InverterNames lists the registered inverter names in sorted order.
func InverterNames() []string {
	names := make([]string, 0, len(inverters))
	for n := range inverters {
		names = append(names, n)
	}
	slices.Sort(names)

	return names
}

// NewInverter resolves a registered inverter; "" selects InverterDefault.
func NewInverter(name string, numRealRelations int) (RelationInverter, error) {
	if name == "" {
		name = InverterDefault
	}
	mk, ok := inverters[name]
	if !ok {
		return nil, fmt.Errorf("%q (known: %v): %w", name, InverterNames(), ErrUnknownInverter)
	}

	return mk(numRealRelations), nil
}

// materialise returns forward triples followed by flipped inverse triples.
func materialise(inv RelationInverter, m MappedTriples) MappedTriples {
	out := make(MappedTriples, 2*len(m))
	for i, t := range m {
		out[i] = Triple{t[0], inv.Forward(t[1]), t[2]}
		out[len(m)+i] = Triple{t[2], inv.Inverse(t[1]), t[0]}
	}

	return out
}
