// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/pion/logging"
)

const (
	DefaultMaxVoices = 256
	DefaultQueueSize = 64
)

// SoundSource is a voice the mixer can play. Generators and streamed files
// both implement it.
type SoundSource interface {
	// Sample returns the next value and advances the voice.
	Sample(sampleRate int) float32
	// IsActive reports whether the voice still has anything to play. Once
	// false the mixer drops the voice.
	IsActive(sampleRate int) bool
}

// Option configures a Mixer.
type Option func(*Mixer)

// WithMaxVoices caps how many voices play at once. Queued sources wait
// while the list is full.
func WithMaxVoices(n int) Option {
	return func(m *Mixer) {
		if n > 0 {
			m.maxVoices = n
		}
	}
}

// WithQueueSize sets how many added sources may wait for the audio side.
func WithQueueSize(n int) Option {
	return func(m *Mixer) {
		if n > 0 {
			m.queueSize = n
		}
	}
}

// WithLogger sets the logger for control side messages. The audio side
// never logs.
func WithLogger(log logging.LeveledLogger) Option {
	return func(m *Mixer) {
		if log != nil {
			m.log = log
		}
	}
}

// Mixer owns the live voices. It implements audio.Source so an output can
// pull it directly.
type Mixer struct {
	sampleRate int
	channels   int
	maxVoices  int
	queueSize  int
	log        logging.LeveledLogger

	queue chan SoundSource

	// audio side only
	voices []SoundSource

	active   atomic.Int64
	queued   atomic.Int64
	added    atomic.Uint64
	rejected atomic.Uint64
	finished atomic.Uint64
	passes   atomic.Uint64

	closeMu sync.RWMutex
	closed  bool
	addMu   sync.Mutex
}

// New creates a mixer for an output running at sampleRate with channels
// interleaved channels.
func New(sampleRate, channels int, opts ...Option) *Mixer {
	m := &Mixer{
		sampleRate: sampleRate,
		channels:   max(channels, 1),
		maxVoices:  DefaultMaxVoices,
		queueSize:  DefaultQueueSize,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = logging.NewDefaultLoggerFactory().NewLogger("mixer")
	}

	m.queue = make(chan SoundSource, m.queueSize)
	m.voices = make([]SoundSource, 0, m.maxVoices)

	return m
}

// Add hands src to the audio side. It never blocks.
func (m *Mixer) Add(src SoundSource) error {
	return m.AddAll(src)
}

// AddAll queues every source or none of them, so a chord never starts
// partly. It never blocks.
func (m *Mixer) AddAll(srcs ...SoundSource) error {
	for _, src := range srcs {
		if src == nil {
			return ErrNilSource
		}
	}

	m.closeMu.RLock()
	defer m.closeMu.RUnlock()

	if m.closed {
		return ErrClosed
	}

	// the audio side only takes from the queue, so the free space counted
	// here can only grow until addMu is released
	m.addMu.Lock()
	defer m.addMu.Unlock()

	if free := cap(m.queue) - len(m.queue); free < len(srcs) {
		m.rejected.Add(uint64(len(srcs)))
		m.log.Warnf("queue full (%d), dropping %d sources", m.queueSize, len(srcs))
		return fmt.Errorf("%w: %d free, %d needed", ErrQueueFull, free, len(srcs))
	}

	for _, src := range srcs {
		// the audio side owns src once it is queued, describe it first
		m.log.Debugf("adding %v", src)
		m.queued.Add(1)
		m.queue <- src
		m.added.Add(1)
	}
	return nil
}

// Drain moves queued sources into the voice list until the queue is empty
// or the list is full. Sources left in the queue wait for a free slot.
// Audio side only.
func (m *Mixer) Drain() {
loop:
	for len(m.voices) < cap(m.voices) {
		select {
		case src := <-m.queue:
			m.queued.Add(-1)
			m.voices = append(m.voices, src)
		default:
			break loop
		}
	}
	m.active.Store(int64(len(m.voices)))
}

// Next runs one mix pass: every active voice contributes one sample and
// inactive voices are dropped, keeping the order of the rest. Audio side
// only.
func (m *Mixer) Next() float32 {
	var acc float32

	kept := 0
	for _, v := range m.voices {
		if !v.IsActive(m.sampleRate) {
			m.retire(v)
			continue
		}
		acc += v.Sample(m.sampleRate)
		m.voices[kept] = v
		kept++
	}

	if kept != len(m.voices) {
		clear(m.voices[kept:])
		m.voices = m.voices[:kept]
		m.active.Store(int64(kept))
	}
	m.passes.Add(1)

	return acc
}

func (m *Mixer) retire(v SoundSource) {
	m.finished.Add(1)
	closeSource(v)
}

// ReadSamples fills dst with mixed samples, one pass per value. The
// channels of a frame are consecutive passes, which is why voices count
// calls per tick.
func (m *Mixer) ReadSamples(dst []float32) (int, error) {
	m.Drain()
	for i := range dst {
		dst[i] = m.Next()
	}
	return len(dst), nil
}

func (m *Mixer) SampleRate() int { return m.sampleRate }
func (m *Mixer) Channels() int   { return m.channels }
func (m *Mixer) BufSize() int    { return m.maxVoices * m.channels }

// Close stops accepting sources and releases queued ones. Voices already
// playing are released by the audio side as it drops them; call Close after
// the output has stopped pulling to release those too.
func (m *Mixer) Close() error {
	m.closeMu.Lock()
	if m.closed {
		m.closeMu.Unlock()
		return nil
	}
	m.closed = true
	m.closeMu.Unlock()

	released := 0
	for {
		select {
		case src := <-m.queue:
			m.queued.Add(-1)
			closeSource(src)
			released++
		default:
			for i, v := range m.voices {
				closeSource(v)
				m.voices[i] = nil
				released++
			}
			m.voices = m.voices[:0]
			m.active.Store(0)
			m.log.Infof("closed, released %d sources", released)
			return nil
		}
	}
}

func closeSource(src SoundSource) {
	if c, ok := src.(io.Closer); ok {
		_ = c.Close()
	}
}

// Stats is a snapshot of mixer counters.
type Stats struct {
	Active   int    // voices in the play list
	Queued   int    // sources waiting for the audio side
	Added    uint64 // sources accepted by Add
	Rejected uint64 // sources refused with ErrQueueFull
	Finished uint64 // voices dropped after going inactive
	Passes   uint64 // mix passes run
}

func (s Stats) String() string {
	return fmt.Sprintf("%d voices, %d queued, %d added, %d rejected, %d finished, %d passes",
		s.Active, s.Queued, s.Added, s.Rejected, s.Finished, s.Passes)
}

// Stats may be called from any goroutine.
func (m *Mixer) Stats() Stats {
	return Stats{
		Active:   int(m.active.Load()),
		Queued:   int(m.queued.Load()),
		Added:    m.added.Load(),
		Rejected: m.rejected.Load(),
		Finished: m.finished.Load(),
		Passes:   m.passes.Load(),
	}
}
