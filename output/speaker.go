// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package output

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/ik5/synthmix/audio"
	"github.com/pion/logging"
)

// SpeakerPlayer plays a source through the gopxl/beep speaker.
type SpeakerPlayer struct {
	streamer *Streamer
	log      logging.LeveledLogger

	mu      sync.Mutex
	started bool
	closed  bool
}

func openBeep(src audio.Source, opts Options) (Player, error) {
	if ch := src.Channels(); ch < 1 || ch > 2 {
		return nil, fmt.Errorf("beep speaker plays 1 or 2 channels, got %d", ch)
	}

	rate := beep.SampleRate(src.SampleRate())
	if err := speaker.Init(rate, rate.N(opts.Buffer)); err != nil {
		return nil, fmt.Errorf("beep speaker: %w", err)
	}

	return &SpeakerPlayer{
		streamer: NewStreamer(src),
		log:      opts.Logger,
	}, nil
}

func (sp *SpeakerPlayer) Start() error {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if sp.started || sp.closed {
		return nil
	}
	speaker.Play(sp.streamer)
	sp.started = true
	return nil
}

func (sp *SpeakerPlayer) Close() error {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if sp.closed {
		return nil
	}
	sp.closed = true
	speaker.Clear()
	speaker.Close()

	if err := sp.streamer.Err(); err != nil {
		sp.log.Warnf("source stopped: %v", err)
	}
	return nil
}
