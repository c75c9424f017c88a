// SPDX-License-Identifier: MIT

package condense

import "errors"

var (
	// ErrUnmappedID is returned when a condenser is applied to an ID it
	// drops or does not know. It signals that the condenser was built from a
	// different ID universe than the one being transformed.
	ErrUnmappedID = errors.New("condense: id is not part of the condensation")

	// ErrBadMapping is returned by NewFromMapping for values outside [-1, len)
	// or retained IDs that are not numbered 0..k-1.
	ErrBadMapping = errors.New("condense: invalid condensation")
)
