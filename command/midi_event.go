// SPDX-License-Identifier: EPL-2.0

package command

const midiNoteOn = 0x90

// FromMIDI turns a MIDI channel message into a NoteOn based on template.
// Only note-on messages with a non-zero velocity produce a note; velocity
// sets the volume. MIDI note 60 is C4.
func FromMIDI(status, data1, data2 int64, template NoteOn) (NoteOn, bool) {
	if status&0xF0 != midiNoteOn || data2 == 0 {
		return NoteOn{}, false
	}
	if data1 < 0 || data1 > 127 {
		return NoteOn{}, false
	}

	octave := int(data1/12) - 1
	if octave < 0 || octave > MaxOctave {
		return NoteOn{}, false
	}

	n := template
	n.Frequency = 0
	n.Note = int(data1 % 12)
	n.Octave = octave
	n.Volume = float64(data2) / 127
	return n, true
}
