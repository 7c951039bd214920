// SPDX-License-Identifier: EPL-2.0

//go:build midi

package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pion/logging"
	"github.com/rakyll/portmidi"
)

var ErrNoMIDIDevice = errors.New("no MIDI input device")

const midiPoll = 5 * time.Millisecond

// MIDI reads note-on events from the default PortMidi input device.
type MIDI struct {
	stream   *portmidi.Stream
	template NoteOn
	log      logging.LeveledLogger
}

// OpenMIDI opens the default input. Every incoming note copies template,
// so waveform, harmonics, envelope and filter come from it.
func OpenMIDI(template NoteOn, log logging.LeveledLogger) (*MIDI, error) {
	if err := portmidi.Initialize(); err != nil {
		return nil, fmt.Errorf("portmidi: %w", err)
	}

	id := portmidi.DefaultInputDeviceID()
	if id < 0 {
		_ = portmidi.Terminate()
		return nil, ErrNoMIDIDevice
	}

	s, err := portmidi.NewInputStream(id, 1024)
	if err != nil {
		_ = portmidi.Terminate()
		return nil, fmt.Errorf("portmidi: open input %d: %w", id, err)
	}

	if info := portmidi.Info(id); info != nil {
		log.Infof("MIDI input %q", info.Name)
	}
	return &MIDI{stream: s, template: template, log: log}, nil
}

// Run polls the device and sends a NoteOn for every key press until ctx is
// done.
func (m *MIDI) Run(ctx context.Context, out chan<- Command) error {
	ticker := time.NewTicker(midiPoll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		events, err := m.stream.Read(64)
		if err != nil {
			return fmt.Errorf("portmidi: read: %w", err)
		}
		for _, ev := range events {
			n, ok := FromMIDI(ev.Status, ev.Data1, ev.Data2, m.template)
			if !ok {
				continue
			}
			select {
			case out <- n:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func (m *MIDI) Close() error {
	err := m.stream.Close()
	if terr := portmidi.Terminate(); err == nil {
		err = terr
	}
	if err != nil {
		return fmt.Errorf("portmidi: %w", err)
	}
	return nil
}
