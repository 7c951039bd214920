// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds test doubles shared by the synthmix packages.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// ErrMock is returned by sources configured to fail.
var ErrMock = errors.New("audiotest: mock failure")

// MockSource produces frames from a waveform callback. It satisfies
// audio.Source without importing it.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int // frames to produce in total
	pos        int
	waveform   func(frame, channel int) float32

	// FailAt makes ReadSamples return ErrMock once pos reaches it. Zero
	// disables the failure.
	FailAt int
	// MaxFrames caps the frames returned by one ReadSamples call. Zero means
	// no cap.
	MaxFrames int

	Closed bool
}

// NewMockSource creates a source of frames frames. waveform receives the
// frame index and the channel.
func NewMockSource(sampleRate, channels, frames int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

// NewRampSource produces frame/denom on every channel, a predictable value
// for ordering checks.
func NewRampSource(sampleRate, channels, frames int, denom float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		return float32(frame) / denom
	})
}

func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 {
		return value
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.Closed = true
	return nil
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.FailAt > 0 && m.pos >= m.FailAt {
		return 0, ErrMock
	}
	if m.pos >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.pos)
	if m.MaxFrames > 0 {
		n = min(n, m.MaxFrames)
	}
	if m.FailAt > 0 {
		n = min(n, m.FailAt-m.pos)
	}

	for f := range n {
		for c := range m.channels {
			dst[f*m.channels+c] = m.waveform(m.pos+f, c)
		}
	}
	m.pos += n

	if m.pos >= m.frames {
		return n * m.channels, io.EOF
	}
	return n * m.channels, nil
}

// MockVoice is a mixer voice that returns Value for Lifetime samples and then
// reports itself inactive.
type MockVoice struct {
	Value    float32
	Lifetime int

	Calls  int
	Closed bool
}

func (v *MockVoice) Sample(int) float32 {
	v.Calls++
	return v.Value
}

func (v *MockVoice) IsActive(int) bool { return v.Calls < v.Lifetime }

func (v *MockVoice) Close() error {
	v.Closed = true
	return nil
}
