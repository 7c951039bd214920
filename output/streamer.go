// SPDX-License-Identifier: EPL-2.0

package output

import (
	"io"

	"github.com/gopxl/beep"
	"github.com/ik5/synthmix/audio"
)

// Streamer adapts a mono or stereo audio.Source to beep.Streamer. Mono is
// played on both speakers.
type Streamer struct {
	src      audio.Source
	channels int
	buf      []float32
	err      error
	done     bool
}

var _ beep.Streamer = (*Streamer)(nil)

func NewStreamer(src audio.Source) *Streamer {
	return &Streamer{
		src:      src,
		channels: src.Channels(),
		buf:      make([]float32, 512*src.Channels()),
	}
}

// Format reports the source format for beep consumers.
func (s *Streamer) Format() beep.Format {
	return beep.Format{
		SampleRate:  beep.SampleRate(s.src.SampleRate()),
		NumChannels: min(s.channels, 2),
		Precision:   4,
	}
}

func (s *Streamer) Stream(samples [][2]float64) (int, bool) {
	if s.done {
		return 0, false
	}

	want := len(samples) * s.channels
	if cap(s.buf) < want {
		s.buf = make([]float32, want)
	}
	buf := s.buf[:want]

	n, err := s.src.ReadSamples(buf)
	frames := n / s.channels
	for i := range frames {
		frame := buf[i*s.channels : (i+1)*s.channels]
		l := float64(frame[0])
		r := l
		if s.channels > 1 {
			r = float64(frame[1])
		}
		samples[i] = [2]float64{l, r}
	}

	if err != nil {
		s.done = true
		if err != io.EOF {
			s.err = err
		}
		return frames, frames > 0
	}
	return frames, true
}

// Err returns the source error that stopped the stream. io.EOF is not an
// error.
func (s *Streamer) Err() error {
	return s.err
}
