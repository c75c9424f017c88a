// SPDX-License-Identifier: MIT

package condense

// TripleCondenser condenses the entity axis (head and tail) and the relation
// axis of a triple matrix independently.
type TripleCondenser struct {
	Entities  Condenser
	Relations Condenser
}

// MakeTriple builds condensers from the IDs present in rows.
// Complexity: O(n log n).
func MakeTriple(rows [][3]int64, entities, relations bool) TripleCondenser {
	return MakeTripleBounded(rows, 0, 0, entities, relations)
}

// MakeTripleBounded is MakeTriple over declared entity and relation spaces;
// see MakeBounded.
func MakeTripleBounded(rows [][3]int64, numEntities, numRelations int, entities, relations bool) TripleCondenser {
	var tc TripleCondenser
	if entities {
		ids := make([]int64, 0, 2*len(rows))
		for _, r := range rows {
			ids = append(ids, r[0], r[2])
		}
		tc.Entities = MakeBounded(ids, numEntities, true)
	}
	if relations {
		ids := make([]int64, len(rows))
		for i, r := range rows {
			ids[i] = r[1]
		}
		tc.Relations = MakeBounded(ids, numRelations, true)
	}

	return tc
}

// Active reports whether either axis renumbers anything.
func (tc TripleCondenser) Active() bool {
	return tc.Entities.Active() || tc.Relations.Active()
}

// Apply renumbers every triple. The identity returns rows unchanged.
func (tc TripleCondenser) Apply(rows [][3]int64) ([][3]int64, error) {
	if !tc.Active() {
		return rows, nil
	}
	out := make([][3]int64, len(rows))
	for i, r := range rows {
		var err error
		out[i] = r
		if tc.Entities.Active() {
			if out[i][0], err = tc.Entities.lookup(r[0]); err != nil {
				return nil, err
			}
			if out[i][2], err = tc.Entities.lookup(r[2]); err != nil {
				return nil, err
			}
		}
		if tc.Relations.Active() {
			if out[i][1], err = tc.Relations.lookup(r[1]); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
