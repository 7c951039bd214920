// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/ik5/synthmix/audio"
	"github.com/pion/logging"
)

const (
	// DefaultPacketSize is the number of samples decoded per packet.
	DefaultPacketSize = 4096
	// DefaultPrefetch is how many decoded packets wait ahead of playback.
	DefaultPrefetch = 4

	// maxEmptyReads is how many (0, nil) reads in a row end the stream
	// with ErrStalled.
	maxEmptyReads = 64
)

// Status is the outcome of a Pull.
type Status int

const (
	// StatusOK means the sample is valid.
	StatusOK Status = iota
	// StatusPending means the next packet is still being decoded. It is
	// transient; the sample is silence.
	StatusPending
	// StatusEnded means the stream is exhausted or failed. It is terminal.
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusPending:
		return "pending"
	case StatusEnded:
		return "ended"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Options control decoding and output conformance. Zero values pick
// defaults: the source's own rate and channel count, DefaultPacketSize,
// DefaultPrefetch and DefaultRegistry.
type Options struct {
	SampleRate int
	Channels   int
	PacketSize int // samples per packet
	Prefetch   int // decoded packets buffered ahead

	Registry *audio.Registry
	Logger   logging.LeveledLogger
}

func (o Options) withDefaults() Options {
	if o.PacketSize <= 0 {
		o.PacketSize = DefaultPacketSize
	}
	if o.Prefetch <= 0 {
		o.Prefetch = DefaultPrefetch
	}
	if o.Registry == nil {
		o.Registry = DefaultRegistry()
	}
	if o.Logger == nil {
		o.Logger = logging.NewDefaultLoggerFactory().NewLogger("stream")
	}
	return o
}

// File is a streamed audio file voice. Pull, Sample and IsActive belong to
// the audio thread; Err, Underruns and Close may be called from anywhere.
type File struct {
	name     string
	src      audio.Source
	closer   io.Closer
	channels int
	log      logging.LeveledLogger

	packets chan []float32
	free    chan []float32
	cancel  context.CancelFunc
	done    chan struct{}

	// audio thread state
	cur         []float32
	sampleIndex int
	packetIndex int
	ended       bool

	underruns atomic.Uint64
	closeOnce sync.Once

	mu  sync.Mutex
	err error
}

// Open picks a decoder by the file extension, decodes the header and starts
// prefetching. The returned File owns the open file.
func Open(ctx context.Context, path string, opts Options) (*File, error) {
	opts = opts.withDefaults()

	dec, err := opts.Registry.Lookup(path)
	if err != nil {
		opts.Logger.Errorf("open %s: %v", path, err)
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	fh, err := os.Open(path)
	if err != nil {
		opts.Logger.Errorf("open %s: %v", path, err)
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	src, err := dec.Decode(fh)
	if err != nil {
		_ = fh.Close()
		opts.Logger.Errorf("decode %s: %v", path, err)
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	f, err := newFile(ctx, filepath.Base(path), src, fh, opts)
	if err != nil {
		_ = src.Close()
		_ = fh.Close()
		opts.Logger.Errorf("%s: %v", path, err)
		return nil, err
	}
	return f, nil
}

// New streams an already decoded source. The File closes src when done;
// src is also closed when New fails.
func New(ctx context.Context, src audio.Source, opts Options) (*File, error) {
	opts = opts.withDefaults()

	f, err := newFile(ctx, "source", src, nil, opts)
	if err != nil {
		_ = src.Close()
		opts.Logger.Errorf("stream source: %v", err)
		return nil, err
	}
	return f, nil
}

func newFile(ctx context.Context, name string, src audio.Source, closer io.Closer, opts Options) (*File, error) {
	if ch := src.Channels(); ch > 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooManyChannels, ch)
	}

	conformed, err := conform(src, opts.SampleRate, opts.Channels)
	if err != nil {
		return nil, err
	}

	channels := conformed.Channels()
	size := max(opts.PacketSize-opts.PacketSize%channels, channels)

	// one packet being filled and one being played on top of the queue
	buffers := opts.Prefetch + 2
	f := &File{
		name:     name,
		src:      conformed,
		closer:   closer,
		channels: channels,
		log:      opts.Logger,
		packets:  make(chan []float32, opts.Prefetch),
		free:     make(chan []float32, buffers),
		done:     make(chan struct{}),
	}
	for range buffers {
		f.free <- make([]float32, size)
	}

	ctx, f.cancel = context.WithCancel(ctx)
	go f.prefetch(ctx)

	f.log.Debugf("%s: %d Hz, %d ch, packets of %d", name, conformed.SampleRate(), channels, size)
	return f, nil
}

// conform resamples and remixes src to rate and channels. Zero keeps the
// source value.
func conform(src audio.Source, rate, channels int) (audio.Source, error) {
	if channels == 1 && src.Channels() == 2 {
		src = audio.NewMonoMixer(src)
	}

	if rate > 0 && src.SampleRate() != rate {
		r, err := audio.NewResampler(src, rate)
		if err != nil {
			return nil, fmt.Errorf("conform: %w", err)
		}
		src = r
	}

	if channels == 2 && src.Channels() == 1 {
		u, err := audio.NewUpmixer(src, 2)
		if err != nil {
			return nil, fmt.Errorf("conform: %w", err)
		}
		src = u
	}

	return src, nil
}

func (f *File) prefetch(ctx context.Context) {
	defer close(f.done)
	defer f.release()
	defer close(f.packets)

	empty := 0
	for {
		var buf []float32
		select {
		case <-ctx.Done():
			return
		case buf = <-f.free:
		}

		n, err := f.src.ReadSamples(buf[:cap(buf)])
		// drop a trailing partial frame so channels never swap
		n -= n % f.channels

		if n > 0 {
			empty = 0
			select {
			case f.packets <- buf[:n]:
			case <-ctx.Done():
				return
			}
		} else {
			f.free <- buf
		}

		switch {
		case err == io.EOF:
			f.log.Debugf("%s: end of stream", f.name)
			return
		case err != nil:
			f.fail(err)
			return
		case n == 0:
			empty++
			if empty >= maxEmptyReads {
				f.fail(ErrStalled)
				return
			}
		}
	}
}

func (f *File) fail(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()

	f.log.Errorf("%s: decode: %v", f.name, err)
}

func (f *File) release() {
	if err := f.src.Close(); err != nil {
		f.log.Warnf("%s: close decoder: %v", f.name, err)
	}
	if f.closer == nil {
		return
	}
	if err := f.closer.Close(); err != nil {
		f.log.Warnf("%s: close file: %v", f.name, err)
	}
}

// next swaps in the next decoded packet if one is ready.
func (f *File) next() bool {
	select {
	case p, ok := <-f.packets:
		if !ok {
			f.ended = true
			return false
		}
		if f.cur != nil {
			f.free <- f.cur[:cap(f.cur)]
			f.packetIndex++
		}
		f.cur = p
		f.sampleIndex = 0
		return true
	default:
		return false
	}
}

// Pull returns the next sample of the stream.
func (f *File) Pull() (float32, Status) {
	if f.ended {
		return 0, StatusEnded
	}

	if f.sampleIndex >= len(f.cur) && !f.next() {
		if f.ended {
			return 0, StatusEnded
		}
		f.underruns.Add(1)
		return 0, StatusPending
	}

	v := f.cur[f.sampleIndex]
	f.sampleIndex++
	return v, StatusOK
}

// Sample implements the mixer voice interface. The stream already runs at
// the output rate, so sampleRate is not used.
func (f *File) Sample(int) float32 {
	v, _ := f.Pull()
	return v
}

// IsActive reports false once the stream has ended. A stream waiting on
// its decoder is still active.
func (f *File) IsActive(int) bool {
	if f.ended {
		return false
	}
	if f.sampleIndex >= len(f.cur) {
		f.next()
	}
	return !f.ended
}

// Position returns the packet being played and the sample offset inside it.
func (f *File) Position() (packet, sample int) {
	return f.packetIndex, f.sampleIndex
}

func (f *File) SampleRate() int { return f.src.SampleRate() }
func (f *File) Channels() int   { return f.channels }
func (f *File) Name() string    { return f.name }

// Underruns counts pulls that found no decoded packet.
func (f *File) Underruns() uint64 { return f.underruns.Load() }

// Err returns the decode error that ended the stream, if any.
func (f *File) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.err
}

// Close stops prefetching. It does not wait: the decoder goroutine releases
// the file on its way out, and Done is closed once it has.
func (f *File) Close() error {
	f.closeOnce.Do(f.cancel)
	return nil
}

// Done is closed when the decoder goroutine has exited and released the
// file.
func (f *File) Done() <-chan struct{} { return f.done }

func (f *File) String() string {
	return fmt.Sprintf("File %s (%d ch @ %d Hz)", f.name, f.channels, f.src.SampleRate())
}
