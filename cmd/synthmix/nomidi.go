// SPDX-License-Identifier: EPL-2.0

//go:build !midi

package main

import (
	"context"

	"github.com/pion/logging"

	"github.com/ik5/synthmix/command"
)

func startMIDI(_ context.Context, _ chan<- command.Command, factory logging.LoggerFactory) func() {
	factory.NewLogger("midi").Debug("built without MIDI support")
	return func() {}
}
