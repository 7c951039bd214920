// SPDX-License-Identifier: EPL-2.0

package command

import (
	"fmt"

	"github.com/ik5/synthmix/synth"
)

// Command is something the engine can execute.
type Command interface {
	fmt.Stringer
	command()
}

// NoteOn plays a note as a stack of harmonics. Harmonic i (from 1) sounds
// at i times the fundamental with volume Volume/i.
type NoteOn struct {
	Octave int
	Note   int // semitone, 0 = C
	// Frequency overrides the note table when positive. It is the octave 0
	// frequency and is still shifted by Octave.
	Frequency float64
	Waveform  synth.Waveform
	Harmonics int
	Envelope  synth.Envelope
	Filter    synth.Filter
	// Volume scales every harmonic. Zero means full volume.
	Volume float64
}

// PlayFile streams an audio file.
type PlayFile struct {
	Path string
}

// Stats reports the mixer counters.
type Stats struct{}

// Quit stops the program.
type Quit struct{}

func (NoteOn) command()   {}
func (PlayFile) command() {}
func (Stats) command()    {}
func (Quit) command()     {}

// DefaultNoteOn is a note with the front end defaults: triangle wave, one
// harmonic, no attack and a one second decay, octave 1.
func DefaultNoteOn() NoteOn {
	return NoteOn{
		Octave:    1,
		Waveform:  synth.Triangle{},
		Harmonics: 1,
		Envelope:  synth.AttackDecay{Attack: 0, Decay: 1},
		Filter:    synth.NoFilter{},
	}
}

// Fundamental returns the frequency of the first harmonic.
func (n NoteOn) Fundamental() (float64, error) {
	if n.Frequency > 0 {
		if n.Octave < 0 || n.Octave > MaxOctave {
			return 0, fmt.Errorf("%w: %d", ErrInvalidOctave, n.Octave)
		}
		return n.Frequency * float64(uint(1)<<n.Octave), nil
	}
	return NoteFrequency(n.Note, n.Octave)
}

// Generators builds one generator per harmonic. callsPerTick is the
// number of output channels.
func (n NoteOn) Generators(callsPerTick int) ([]*synth.Generator, error) {
	if n.Harmonics < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHarmony, n.Harmonics)
	}

	f0, err := n.Fundamental()
	if err != nil {
		return nil, err
	}

	volume := n.Volume
	if volume == 0 {
		volume = 1
	}

	gens := make([]*synth.Generator, 0, n.Harmonics)
	for i := 1; i <= n.Harmonics; i++ {
		g, err := synth.NewGenerator(n.Waveform, f0*float64(i), n.Envelope, volume/float64(i), n.Filter,
			synth.WithCallsPerTick(callsPerTick))
		if err != nil {
			return nil, fmt.Errorf("harmonic %d: %w", i, err)
		}
		gens = append(gens, g)
	}

	return gens, nil
}

func (n NoteOn) String() string {
	name := NoteName(n.Note, n.Octave)
	if n.Frequency > 0 {
		name = fmt.Sprintf("%gHz@%d", n.Frequency, n.Octave)
	}
	return fmt.Sprintf("note %s, %v, %d harmonics, %v, filter %v", name, n.Waveform, n.Harmonics, n.Envelope, n.Filter)
}

func (p PlayFile) String() string { return "play " + p.Path }
func (Stats) String() string      { return "stats" }
func (Quit) String() string       { return "quit" }
