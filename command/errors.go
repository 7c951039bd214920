// SPDX-License-Identifier: EPL-2.0

package command

import "errors"

var (
	ErrEmptyCommand   = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")
	ErrSyntax         = errors.New("syntax error")
	ErrInvalidNote    = errors.New("invalid note")
	ErrInvalidOctave  = errors.New("octave out of range")
	ErrInvalidHarmony = errors.New("harmonics must be at least 1")
)
