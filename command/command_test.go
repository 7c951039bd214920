// SPDX-License-Identifier: EPL-2.0

package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/synthmix/command"
	"github.com/ik5/synthmix/synth"
)

func TestNoteFrequency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		note, octave int
		want         float64
	}{
		{0, 0, 16.35},
		{11, 0, 30.87},
		{9, 4, 440},
		{9, 1, 55},
		{0, 10, 16.35 * 1024},
	}
	for _, tt := range tests {
		got, err := command.NoteFrequency(tt.note, tt.octave)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-9, "%s", command.NoteName(tt.note, tt.octave))
	}

	_, err := command.NoteFrequency(12, 1)
	assert.ErrorIs(t, err, command.ErrInvalidNote)
	_, err = command.NoteFrequency(0, 11)
	assert.ErrorIs(t, err, command.ErrInvalidOctave)
}

func TestParseNote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in           string
		note, octave int
	}{
		{"C", 0, 1},
		{"a4", 9, 4},
		{"A#3", 10, 3},
		{"Bb2", 10, 2},
		{"Db", 1, 1},
		{"Cb5", 11, 5},
		{"B#0", 0, 0},
	}
	for _, tt := range tests {
		note, octave, err := command.ParseNote(tt.in, 1)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.note, note, tt.in)
		assert.Equal(t, tt.octave, octave, tt.in)
	}

	for _, bad := range []string{"", "H2", "C#x", "A-1"} {
		_, _, err := command.ParseNote(bad, 1)
		assert.Error(t, err, bad)
	}
	_, _, err := command.ParseNote("A11", 1)
	assert.ErrorIs(t, err, command.ErrInvalidOctave)
}

func TestNoteOn_Generators(t *testing.T) {
	t.Parallel()

	n := command.DefaultNoteOn()
	n.Note, n.Octave, n.Harmonics = 9, 2, 3

	gens, err := n.Generators(2)
	require.NoError(t, err)
	require.Len(t, gens, 3)

	for i, g := range gens {
		h := float64(i + 1)
		assert.InDelta(t, 27.5*4*h, g.Frequency(), 1e-9)
		assert.InDelta(t, 1/h, g.Volume(), 1e-12)
		assert.Equal(t, 2, g.CallsPerTick())
		assert.Equal(t, synth.Triangle{}, g.Waveform())
		assert.Equal(t, synth.AttackDecay{Attack: 0, Decay: 1}, g.Envelope())
	}
}

func TestNoteOn_FrequencyOverrideAndVolume(t *testing.T) {
	t.Parallel()

	n := command.DefaultNoteOn()
	n.Frequency = 100
	n.Octave = 1
	n.Harmonics = 2
	n.Volume = 0.5

	gens, err := n.Generators(1)
	require.NoError(t, err)
	assert.InDelta(t, 200, gens[0].Frequency(), 1e-9)
	assert.InDelta(t, 400, gens[1].Frequency(), 1e-9)
	assert.InDelta(t, 0.25, gens[1].Volume(), 1e-12)
}

func TestNoteOn_GeneratorsErrors(t *testing.T) {
	t.Parallel()

	n := command.DefaultNoteOn()
	n.Harmonics = 0
	_, err := n.Generators(2)
	assert.ErrorIs(t, err, command.ErrInvalidHarmony)

	n = command.DefaultNoteOn()
	n.Note = 12
	_, err = n.Generators(2)
	assert.ErrorIs(t, err, command.ErrInvalidNote)

	n = command.DefaultNoteOn()
	_, err = n.Generators(0)
	assert.ErrorIs(t, err, synth.ErrInvalidCallsPerTick)

	n = command.DefaultNoteOn()
	n.Envelope = nil
	_, err = n.Generators(2)
	assert.Error(t, err)
}

func TestFromMIDI(t *testing.T) {
	t.Parallel()

	tmpl := command.DefaultNoteOn()
	tmpl.Harmonics = 4
	tmpl.Frequency = 50

	n, ok := command.FromMIDI(0x91, 69, 127, tmpl)
	require.True(t, ok)
	assert.Equal(t, 9, n.Note)
	assert.Equal(t, 4, n.Octave)
	assert.Equal(t, 4, n.Harmonics)
	assert.Zero(t, n.Frequency)
	assert.InDelta(t, 1, n.Volume, 1e-12)

	for _, ev := range [][3]int64{
		{0x90, 60, 0},   // note on with zero velocity is a release
		{0x80, 60, 100}, // note off
		{0xB0, 7, 100},  // control change
		{0x90, 5, 100},  // below octave 0
	} {
		_, ok := command.FromMIDI(ev[0], ev[1], ev[2], tmpl)
		assert.False(t, ok, "%#x %d %d", ev[0], ev[1], ev[2])
	}
}

func TestCommand_String(t *testing.T) {
	t.Parallel()

	n := command.DefaultNoteOn()
	n.Note, n.Octave = 10, 3
	assert.Equal(t, "note A#3, Triangle, 1 harmonics, Attack 0s / Decay 1s, filter None", n.String())
	assert.Equal(t, "play a b.ogg", command.PlayFile{Path: "a b.ogg"}.String())
	assert.Equal(t, "stats", command.Stats{}.String())
	assert.Equal(t, "quit", command.Quit{}.String())
}
