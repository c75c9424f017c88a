// SPDX-License-Identifier: MIT

package splitting

import "errors"

var (
	// ErrInvalidRatios is returned for non-positive ratios, ratios summing
	// above 1, or an empty ratio list.
	ErrInvalidRatios = errors.New("splitting: invalid ratios")

	// ErrCoverage is returned when the cover of all entities and relations
	// needs more triples than the training part may hold.
	ErrCoverage = errors.New("splitting: cannot cover all ids in the training part")

	// ErrUnknownMethod is returned by ParseMethod for unregistered names.
	ErrUnknownMethod = errors.New("splitting: unknown method")
)
