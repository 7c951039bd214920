// SPDX-License-Identifier: EPL-2.0

package output

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ik5/synthmix/audio"
	"github.com/pion/logging"
)

var (
	ErrUnknownBackend     = errors.New("unknown audio backend")
	ErrBackendUnavailable = errors.New("audio backend not built in")
	ErrUnknownFormat      = errors.New("unknown sample format")
)

// Kind names an output backend.
type Kind string

const (
	Oto  Kind = "oto"
	Beep Kind = "beep"
	Null Kind = "null"
)

// Format is the sample encoding handed to the device.
type Format string

const (
	Float32 Format = "float32"
	Int16   Format = "int16"
)

const DefaultBuffer = 50 * time.Millisecond

// Player drives a device that pulls samples from a source.
type Player interface {
	Start() error
	Close() error
}

// Options configure an output. Zero values pick DefaultBuffer and Float32.
type Options struct {
	Buffer time.Duration
	Format Format
	Logger logging.LeveledLogger
}

func (o Options) withDefaults() Options {
	if o.Buffer <= 0 {
		o.Buffer = DefaultBuffer
	}
	if o.Format == "" {
		o.Format = Float32
	}
	if o.Logger == nil {
		o.Logger = logging.NewDefaultLoggerFactory().NewLogger("output")
	}
	return o
}

// ParseKind accepts a backend name in any case.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Oto, Beep, Null:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}

// ParseFormat accepts "float32" or "int16".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Float32, Int16:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Open creates a player of the given kind pulling from src. The player is
// not started.
func Open(kind Kind, src audio.Source, opts Options) (Player, error) {
	opts = opts.withDefaults()
	if _, err := ParseFormat(string(opts.Format)); err != nil {
		return nil, err
	}

	var (
		p   Player
		err error
	)
	switch kind {
	case Oto:
		p, err = openOto(src, opts)
	case Beep:
		p, err = openBeep(src, opts)
	case Null:
		p = NewNullPlayer(src, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
	if err != nil {
		opts.Logger.Errorf("open %s output: %v", kind, err)
		return nil, fmt.Errorf("open %s output: %w", kind, err)
	}

	opts.Logger.Infof("%s output: %d Hz, %d ch, %s, buffer %v", kind, src.SampleRate(), src.Channels(), opts.Format, opts.Buffer)
	return p, nil
}

// bufferFrames converts a buffer duration to frames at rate.
func bufferFrames(d time.Duration, rate int) int {
	return max(int(d.Seconds()*float64(rate)), 1)
}
