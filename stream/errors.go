// SPDX-License-Identifier: EPL-2.0

package stream

import "errors"

var (
	// ErrTooManyChannels rejects sources with more than two channels.
	ErrTooManyChannels = errors.New("stream supports at most 2 channels")
	// ErrStalled ends a stream whose decoder keeps returning no samples
	// without an error.
	ErrStalled = errors.New("decoder stopped producing samples")
)
