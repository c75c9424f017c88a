// SPDX-License-Identifier: MIT

package triples

import "fmt"

// KGInfo holds the entity and relation counts of a graph together with its
// inverse-triple policy.
//
// Invariant: NumRelations == RealNumRelations * (2 if CreateInverseTriples else 1).
type KGInfo struct {
	NumEntities          int
	RealNumRelations     int
	NumRelations         int
	CreateInverseTriples bool
}

// NewKGInfo derives NumRelations from the real relation count.
func NewKGInfo(numEntities, numRelations int, createInverseTriples bool) KGInfo {
	n := numRelations
	if createInverseTriples {
		n *= 2
	}

	return KGInfo{
		NumEntities:          numEntities,
		RealNumRelations:     numRelations,
		NumRelations:         n,
		CreateInverseTriples: createInverseTriples,
	}
}

// String renders the counts in key=value form.
func (i KGInfo) String() string {
	return fmt.Sprintf("num_entities=%d, num_relations=%d, create_inverse_triples=%t",
		i.NumEntities, i.NumRelations, i.CreateInverseTriples)
}
