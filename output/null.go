// SPDX-License-Identifier: EPL-2.0

package output

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/ik5/synthmix/audio"
	"github.com/pion/logging"
)

// NullPlayer pulls from a source at real-time pace and discards the
// samples. It stands in for a device on machines without one.
type NullPlayer struct {
	src    audio.Source
	period time.Duration
	buf    []float32
	log    logging.LeveledLogger

	frames atomic.Uint64

	mu      sync.Mutex
	started bool
	stop    chan struct{}
	done    chan struct{}
}

// NewNullPlayer pulls one opts.Buffer worth of frames every opts.Buffer.
func NewNullPlayer(src audio.Source, opts Options) *NullPlayer {
	opts = opts.withDefaults()
	frames := bufferFrames(opts.Buffer, src.SampleRate())

	return &NullPlayer{
		src:    src,
		period: opts.Buffer,
		buf:    make([]float32, frames*src.Channels()),
		log:    opts.Logger,
	}
}

func (np *NullPlayer) Start() error {
	np.mu.Lock()
	defer np.mu.Unlock()

	if np.started {
		return nil
	}
	np.started = true
	np.stop = make(chan struct{})
	np.done = make(chan struct{})
	go np.run(np.stop, np.done)
	return nil
}

func (np *NullPlayer) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(np.period)
	defer ticker.Stop()

	channels := np.src.Channels()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		n, err := np.src.ReadSamples(np.buf)
		np.frames.Add(uint64(n / channels))
		if err != nil {
			np.log.Debugf("null output: source stopped: %v", err)
			return
		}
	}
}

// Frames counts the frames pulled so far.
func (np *NullPlayer) Frames() uint64 {
	return np.frames.Load()
}

// Close stops pulling and waits for the pump to exit, so the source is no
// longer read once Close returns.
func (np *NullPlayer) Close() error {
	np.mu.Lock()
	defer np.mu.Unlock()

	if !np.started {
		return nil
	}
	np.started = false
	close(np.stop)
	<-np.done
	return nil
}
