// SPDX-License-Identifier: MIT
// Package triples: sentinel error set.
// All constructors and transformations return these sentinels, wrapped with
// fmt.Errorf("ctx: %w", ErrX) when the offending values matter. Callers
// match with errors.Is. Data-quality problems (unknown labels, inverse-suffix
// conflicts) are NOT errors: the rows are dropped, logged and counted.

package triples

import "errors"

var (
	// ErrBadShape is returned when a triple matrix is not (n, 3).
	ErrBadShape = errors.New("triples: invalid shape")

	// ErrBadDType is returned for floating-point, complex or otherwise
	// non-integer ID matrices.
	ErrBadDType = errors.New("triples: non-integer ids")

	// ErrIDOutOfRange is returned when an ID is negative or not below the
	// declared entity/relation count.
	ErrIDOutOfRange = errors.New("triples: id out of range")

	// ErrConfigMismatch is returned when operands disagree on entity count,
	// relation count or the inverse-triple flag, or when an explicit count
	// contradicts a labeling.
	ErrConfigMismatch = errors.New("triples: configuration mismatch")

	// ErrInversesNotCreated is returned when an inverse relation ID is
	// requested from a factory that does not create inverse triples.
	ErrInversesNotCreated = errors.New("triples: inverse triples have not been created")

	// ErrUncoveredIDs is returned by WithLabels when used IDs have no label.
	ErrUncoveredIDs = errors.New("triples: ids not covered by labeling")

	// ErrLabelingMismatch is returned when merging labeled factories whose
	// labelings differ.
	ErrLabelingMismatch = errors.New("triples: labeling mismatch")

	// ErrUnknownLabel is returned by strict label→ID conversions.
	ErrUnknownLabel = errors.New("triples: unknown label")

	// ErrInvalidLabel is returned when a label cannot be stored in a
	// tab-separated label file (it contains a tab or a line break).
	ErrInvalidLabel = errors.New("triples: label not representable as TSV")

	// ErrUnknownInverter is returned by NewInverter for unregistered names.
	ErrUnknownInverter = errors.New("triples: unknown relation inverter")

	// ErrInvalidArgument is returned for out-of-domain scalar arguments,
	// e.g. a relation fraction outside (0, 1).
	ErrInvalidArgument = errors.New("triples: invalid argument")
)
