// SPDX-License-Identifier: MIT

package stopper

import "errors"

var (
	// ErrEpochOrder is returned when a result is reported for an epoch not
	// after the best epoch.
	ErrEpochOrder = errors.New("stopper: cannot report more than one metric for one epoch")

	// ErrUnknownMetric is returned by MapResults for missing metrics.
	ErrUnknownMetric = errors.New("stopper: unknown metric")

	// ErrNoCheckpoint is returned when stopping finds no best-state checkpoint.
	ErrNoCheckpoint = errors.New("stopper: no checkpoint")
)
