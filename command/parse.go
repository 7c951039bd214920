// SPDX-License-Identifier: EPL-2.0

package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ik5/synthmix/synth"
)

// Parse reads one line of the text command language:
//
//	note A#3 wave=square:0.25 harmonics=3 env=ad:0.1:1 lpf=800
//	note C freq=20 wave=noise env=flat:0.5
//	play loops/drums.ogg
//	stats
//	quit
//
// Missing note options take the DefaultNoteOn values.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrEmptyCommand
	}

	switch verb := strings.ToLower(fields[0]); verb {
	case "note", "n":
		n, err := parseNote(fields[1:])
		if err != nil {
			return nil, err
		}
		return n, nil
	case "play", "p":
		path := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
		if path == "" {
			return nil, fmt.Errorf("%w: play needs a file path", ErrSyntax)
		}
		return PlayFile{Path: path}, nil
	case "stats":
		return Stats{}, nil
	case "quit", "exit":
		return Quit{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, verb)
	}
}

func parseNote(args []string) (NoteOn, error) {
	n := DefaultNoteOn()
	if len(args) == 0 {
		return n, fmt.Errorf("%w: note needs a pitch, e.g. A4", ErrSyntax)
	}

	var err error
	n.Note, n.Octave, err = ParseNote(args[0], n.Octave)
	if err != nil {
		return n, err
	}

	for _, arg := range args[1:] {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return n, fmt.Errorf("%w: expected key=value, got %q", ErrSyntax, arg)
		}

		switch strings.ToLower(key) {
		case "wave", "w":
			n.Waveform, err = parseWave(value)
		case "harmonics", "h":
			n.Harmonics, err = strconv.Atoi(value)
			if err == nil && n.Harmonics < 1 {
				err = fmt.Errorf("%w: %d", ErrInvalidHarmony, n.Harmonics)
			}
		case "env", "e":
			n.Envelope, err = parseEnvelope(value)
		case "lpf":
			n.Filter, err = parseFilter(value, func(f float64) synth.Filter { return synth.LowPass{Cutoff: f} })
		case "hpf":
			n.Filter, err = parseFilter(value, func(f float64) synth.Filter { return synth.HighPass{Cutoff: f} })
		case "bpf":
			n.Filter, err = parseFilter(value, func(f float64) synth.Filter { return synth.BandPass{Center: f} })
		case "notch":
			n.Filter, err = parseFilter(value, func(f float64) synth.Filter { return synth.Notch{Center: f} })
		case "freq", "f":
			n.Frequency, err = parsePositive(value)
		case "vol", "v":
			n.Volume, err = parsePositive(value)
		default:
			err = fmt.Errorf("%w: unknown note option %q", ErrSyntax, key)
		}
		if err != nil {
			return n, fmt.Errorf("%s: %w", arg, err)
		}
	}

	return n, nil
}

// params splits "name:a:b" and parses the numbers.
func params(s string) (string, []float64, error) {
	parts := strings.Split(s, ":")
	nums := make([]float64, 0, len(parts)-1)
	for _, p := range parts[1:] {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %q is not a number", ErrSyntax, p)
		}
		nums = append(nums, v)
	}
	return strings.ToLower(parts[0]), nums, nil
}

func nth(nums []float64, i int, def float64) float64 {
	if i < len(nums) {
		return nums[i]
	}
	return def
}

func parseWave(s string) (synth.Waveform, error) {
	name, nums, err := params(s)
	if err != nil {
		return nil, err
	}

	switch name {
	case "sine", "sin":
		return synth.Sine{Phase: nth(nums, 0, 0)}, nil
	case "saw", "sawtooth":
		return synth.Saw{}, nil
	case "square", "sq", "pulse":
		return synth.Square{Duty: nth(nums, 0, 0.5)}, nil
	case "triangle", "tri":
		return synth.Triangle{}, nil
	case "overdrive", "od":
		return synth.SineOverdrive{Drive: nth(nums, 0, 0.5)}, nil
	case "noise":
		return synth.Noise{}, nil
	}
	return nil, fmt.Errorf("%w: unknown waveform %q", ErrSyntax, name)
}

func parseEnvelope(s string) (synth.Envelope, error) {
	name, nums, err := params(s)
	if err != nil {
		return nil, err
	}

	switch name {
	case "ad":
		return synth.AttackDecay{Attack: nth(nums, 0, 0), Decay: nth(nums, 1, 1)}, nil
	case "flat", "none":
		return synth.Flat{Duration: nth(nums, 0, 1)}, nil
	case "tremolo", "sine":
		return synth.Tremolo{Rate: nth(nums, 0, 5), Duration: nth(nums, 1, 1)}, nil
	}
	return nil, fmt.Errorf("%w: unknown envelope %q", ErrSyntax, name)
}

func parseFilter(s string, build func(float64) synth.Filter) (synth.Filter, error) {
	f, err := parsePositive(s)
	if err != nil {
		return nil, err
	}
	return build(f), nil
}

func parsePositive(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !(v > 0) {
		return 0, fmt.Errorf("%w: want a positive number, got %q", ErrSyntax, s)
	}
	return v, nil
}
