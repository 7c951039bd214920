// SPDX-License-Identifier: EPL-2.0

//go:build midi

package main

import (
	"context"
	"errors"

	"github.com/pion/logging"

	"github.com/ik5/synthmix/command"
)

// startMIDI feeds notes from the default MIDI input into cmds. A missing
// device is logged, not fatal.
func startMIDI(ctx context.Context, cmds chan<- command.Command, factory logging.LoggerFactory) func() {
	log := factory.NewLogger("midi")

	m, err := command.OpenMIDI(command.DefaultNoteOn(), log)
	if err != nil {
		log.Warnf("MIDI disabled: %v", err)
		return func() {}
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := m.Run(ctx, cmds); err != nil && !errors.Is(err, context.Canceled) {
			log.Errorf("MIDI input stopped: %v", err)
		}
	}()

	return func() {
		cancel()
		<-done
		if err := m.Close(); err != nil {
			log.Warnf("close MIDI: %v", err)
		}
	}
}
