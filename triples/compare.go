// SPDX-License-Identifier: MIT

package triples

import "fmt"

// ConcatTriples concatenates the triples of several factories.
func ConcatTriples[F Factory](factories ...F) MappedTriples {
	n := 0
	for _, f := range factories {
		n += len(f.MappedTriples())
	}
	out := make(MappedTriples, 0, n)
	for _, f := range factories {
		out = append(out, f.MappedTriples()...)
	}

	return out
}

func tripleSet(m MappedTriples) map[Triple]struct{} {
	s := make(map[Triple]struct{}, len(m))
	for _, t := range m {
		s[t] = struct{}{}
	}

	return s
}

// SplitsSteps counts the triples that must move to turn split a into split
// b: the size of the symmetric difference of the two training parts.
// Only the training parts are compared.
func SplitsSteps[F Factory](a, b []F) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%d vs. %d parts: %w", len(a), len(b), ErrConfigMismatch)
	}
	if len(a) == 0 {
		return 0, nil
	}
	sa, sb := tripleSet(a[0].MappedTriples()), tripleSet(b[0].MappedTriples())
	steps := 0
	for t := range sa {
		if _, ok := sb[t]; !ok {
			steps++
		}
	}
	for t := range sb {
		if _, ok := sa[t]; !ok {
			steps++
		}
	}

	return steps, nil
}

// SplitsSimilarity returns 1 - SplitsSteps(a, b) / (triples in a).
func SplitsSimilarity[F Factory](a, b []F) (float64, error) {
	steps, err := SplitsSteps(a, b)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, f := range a {
		n += len(f.MappedTriples())
	}
	if n == 0 {
		return 1, nil
	}

	return 1 - float64(steps)/float64(n), nil
}
