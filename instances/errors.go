// SPDX-License-Identifier: MIT

package instances

import "errors"

var (
	// ErrInvalidTarget is returned for a target outside head/relation/tail.
	ErrInvalidTarget = errors.New("instances: invalid target column")

	// ErrIndexOutOfRange is returned by Item/Batch for unknown instance indices.
	ErrIndexOutOfRange = errors.New("instances: index out of range")

	// ErrUnknownKind is returned by SLCWAFromFactory for unregistered kinds.
	ErrUnknownKind = errors.New("instances: unknown sLCWA kind")

	// ErrWeighterColumns is returned when a loss weighter receives more than
	// one nil column or columns of different lengths.
	ErrWeighterColumns = errors.New("instances: invalid weighter columns")
)
