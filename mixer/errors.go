// SPDX-License-Identifier: EPL-2.0

package mixer

import "errors"

var (
	// ErrQueueFull means the sources did not fit in the add queue. Nothing
	// was queued.
	ErrQueueFull = errors.New("mixer: add queue is full")
	ErrClosed    = errors.New("mixer: closed")
	ErrNilSource = errors.New("mixer: nil source")
)
