// SPDX-License-Identifier: EPL-2.0

package synthmix

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pion/logging"

	"github.com/ik5/synthmix/audio"
	"github.com/ik5/synthmix/command"
	"github.com/ik5/synthmix/mixer"
	"github.com/ik5/synthmix/stream"
)

var (
	// ErrQuit is returned by Exec for a Quit command.
	ErrQuit = errors.New("quit requested")
	// ErrNilCommand is returned by Exec for a nil command.
	ErrNilCommand = errors.New("nil command")
)

// Options configure an Engine. Zero values pick 48000 Hz stereo and the
// mixer and stream defaults.
type Options struct {
	SampleRate int
	Channels   int

	MaxVoices int
	QueueSize int

	PacketSize int
	Prefetch   int

	Registry      *audio.Registry
	LoggerFactory logging.LoggerFactory
}

func (o Options) withDefaults() Options {
	if o.SampleRate <= 0 {
		o.SampleRate = 48000
	}
	if o.Channels <= 0 {
		o.Channels = 2
	}
	if o.Registry == nil {
		o.Registry = stream.DefaultRegistry()
	}
	if o.LoggerFactory == nil {
		o.LoggerFactory = logging.NewDefaultLoggerFactory()
	}
	return o
}

// Engine turns commands into voices on a mixer. The mixer is the audio
// source an output pulls.
type Engine struct {
	opts Options
	mix  *mixer.Mixer
	log  logging.LeveledLogger

	// streamed files live until the engine closes, not until Exec returns
	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once
}

// New creates an engine and its mixer.
func New(opts Options) (*Engine, error) {
	opts = opts.withDefaults()
	if opts.Channels > 2 {
		return nil, fmt.Errorf("%w: %d", stream.ErrTooManyChannels, opts.Channels)
	}

	mix := mixer.New(opts.SampleRate, opts.Channels,
		mixer.WithMaxVoices(opts.MaxVoices),
		mixer.WithQueueSize(opts.QueueSize),
		mixer.WithLogger(opts.LoggerFactory.NewLogger("mixer")),
	)

	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		opts:   opts,
		mix:    mix,
		log:    opts.LoggerFactory.NewLogger("engine"),
		ctx:    ctx,
		cancel: cancel,
	}
	e.log.Infof("engine ready: %d Hz, %d channels", opts.SampleRate, opts.Channels)

	return e, nil
}

// Exec runs one command and returns a line describing the result.
func (e *Engine) Exec(ctx context.Context, cmd command.Command) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch c := cmd.(type) {
	case command.NoteOn:
		return e.noteOn(c)
	case command.PlayFile:
		return e.playFile(c)
	case command.Stats:
		return e.mix.Stats().String(), nil
	case command.Quit:
		return "", ErrQuit
	case nil:
		return "", ErrNilCommand
	default:
		return "", fmt.Errorf("%w: %v", command.ErrUnknownCommand, cmd)
	}
}

func (e *Engine) noteOn(n command.NoteOn) (string, error) {
	gens, err := n.Generators(e.mix.Channels())
	if err != nil {
		e.log.Warnf("%v: %v", n, err)
		return "", err
	}

	voices := make([]mixer.SoundSource, len(gens))
	for i, g := range gens {
		voices[i] = g
	}
	if err := e.mix.AddAll(voices...); err != nil {
		return "", fmt.Errorf("%v: %w", n, err)
	}

	return fmt.Sprintf("playing %v", n), nil
}

func (e *Engine) playFile(p command.PlayFile) (string, error) {
	f, err := stream.Open(e.ctx, p.Path, stream.Options{
		SampleRate: e.mix.SampleRate(),
		Channels:   e.mix.Channels(),
		PacketSize: e.opts.PacketSize,
		Prefetch:   e.opts.Prefetch,
		Registry:   e.opts.Registry,
		Logger:     e.opts.LoggerFactory.NewLogger("stream"),
	})
	if err != nil {
		return "", err
	}

	if err := e.mix.Add(f); err != nil {
		f.Close()
		return "", fmt.Errorf("play %s: %w", p.Path, err)
	}

	return fmt.Sprintf("streaming %v", f), nil
}

// Mixer returns the mixer to hand to an output.
func (e *Engine) Mixer() *mixer.Mixer {
	return e.mix
}

func (e *Engine) Stats() mixer.Stats {
	return e.mix.Stats()
}

// Close stops every stream and releases the voices. Stop the output first.
func (e *Engine) Close() error {
	var err error
	e.closeOnce.Do(func() {
		e.cancel()
		err = e.mix.Close()
		e.log.Info("engine closed")
	})
	return err
}
