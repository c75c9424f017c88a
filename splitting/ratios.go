// SPDX-License-Identifier: MIT

package splitting

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// NormalizeRatios turns a ratio list into one that sums to 1.
//
//   - a single value r means the two-way split [r, 1-r];
//   - k-1 values summing below 1 get the remainder appended as part k;
//   - k values summing to 1 are returned as-is.
//
// Every ratio must lie in (0, 1].
func NormalizeRatios(ratios []float64) ([]float64, error) {
	if len(ratios) == 0 {
		return nil, fmt.Errorf("empty: %w", ErrInvalidRatios)
	}
	for i, r := range ratios {
		if !(r > 0 && r <= 1) {
			return nil, fmt.Errorf("ratio[%d]=%g: %w", i, r, ErrInvalidRatios)
		}
	}
	out := append([]float64(nil), ratios...)
	s := floats.Sum(out)
	switch {
	case s > 1+DefaultEpsilon:
		return nil, fmt.Errorf("sum %g > 1: %w", s, ErrInvalidRatios)
	case s < 1-DefaultEpsilon:
		out = append(out, 1-s)
	}

	return out, nil
}

// AbsoluteSizes converts normalised ratios into part sizes summing to n.
// The last part absorbs the rounding remainder.
func AbsoluteSizes(n int, ratios []float64) []int {
	sizes := make([]int, len(ratios))
	used := 0
	for i := 0; i < len(ratios)-1; i++ {
		sizes[i] = int(ratios[i] * float64(n))
		used += sizes[i]
	}
	if len(sizes) > 0 {
		sizes[len(sizes)-1] = max(n-used, 0)
	}

	return sizes
}
