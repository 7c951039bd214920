// SPDX-License-Identifier: EPL-2.0

package command

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxOctave bounds octave numbers. Octave 10 already puts B above 30 kHz.
const MaxOctave = 10

// Notes holds the octave 0 frequencies in Hz, C first.
var Notes = [12]float64{
	16.35, // C
	17.32, // C# / Db
	18.35, // D
	19.45, // D# / Eb
	20.60, // E
	21.83, // F
	23.12, // F# / Gb
	24.50, // G
	25.96, // G# / Ab
	27.50, // A
	29.14, // A# / Bb
	30.87, // B
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var naturals = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// NoteFrequency returns the frequency of semitone note (0 = C) in octave.
func NoteFrequency(note, octave int) (float64, error) {
	if note < 0 || note >= len(Notes) {
		return 0, fmt.Errorf("%w: semitone %d", ErrInvalidNote, note)
	}
	if octave < 0 || octave > MaxOctave {
		return 0, fmt.Errorf("%w: %d", ErrInvalidOctave, octave)
	}
	return Notes[note] * float64(uint(1)<<octave), nil
}

// NoteName formats a semitone and octave as scientific pitch, e.g. "A#3".
func NoteName(note, octave int) string {
	if note < 0 || note >= len(noteNames) {
		return fmt.Sprintf("?%d", octave)
	}
	return noteNames[note] + strconv.Itoa(octave)
}

// ParseNote reads a note in scientific pitch notation: a letter A-G, an
// optional '#' or 'b', and an optional octave that defaults to
// defaultOctave. Accidentals wrap inside the octave, so "Cb" is B and "B#"
// is C of the same octave.
func ParseNote(s string, defaultOctave int) (note, octave int, err error) {
	if s == "" {
		return 0, 0, fmt.Errorf("%w: empty", ErrInvalidNote)
	}

	base, ok := naturals[strings.ToUpper(s[:1])[0]]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidNote, s)
	}
	rest := s[1:]

	switch {
	case strings.HasPrefix(rest, "#"):
		base++
		rest = rest[1:]
	case strings.HasPrefix(rest, "b"):
		base--
		rest = rest[1:]
	}
	note = (base + 12) % 12

	octave = defaultOctave
	if rest != "" {
		octave, err = strconv.Atoi(rest)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidNote, s)
		}
	}
	if octave < 0 || octave > MaxOctave {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidOctave, octave)
	}

	return note, octave, nil
}
