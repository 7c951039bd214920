// SPDX-License-Identifier: EPL-2.0

package synth

import "errors"

var (
	// ErrInvalidFrequency is returned when a generator frequency is not positive.
	ErrInvalidFrequency = errors.New("frequency must be positive")

	// ErrInvalidCallsPerTick is returned when calls per tick is less than 1.
	ErrInvalidCallsPerTick = errors.New("calls per tick must be at least 1")
)
