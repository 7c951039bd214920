// SPDX-License-Identifier: EPL-2.0

package output_test

import (
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/synthmix/internal/audiotest"
	"github.com/ik5/synthmix/output"
)

func TestStreamerFormat(t *testing.T) {
	s := output.NewStreamer(audiotest.NewConstantSource(44100, 1, 10, 0))
	f := s.Format()

	assert.Equal(t, beep.SampleRate(44100), f.SampleRate)
	assert.Equal(t, 1, f.NumChannels)
	assert.Equal(t, 4, f.Precision)
}

func TestStreamerMonoOnBothSpeakers(t *testing.T) {
	s := output.NewStreamer(audiotest.NewRampSource(48000, 1, 100, 100))

	samples := make([][2]float64, 4)
	n, ok := s.Stream(samples)
	require.True(t, ok)
	require.Equal(t, 4, n)

	for i, frame := range samples {
		assert.InDelta(t, float64(i)/100, frame[0], 1e-6)
		assert.Equal(t, frame[0], frame[1])
	}
}

func TestStreamerStereo(t *testing.T) {
	src := audiotest.NewMockSource(48000, 2, 100, func(_, ch int) float32 {
		if ch == 0 {
			return 0.25
		}
		return -0.25
	})
	s := output.NewStreamer(src)

	samples := make([][2]float64, 8)
	n, ok := s.Stream(samples)
	require.True(t, ok)
	require.Equal(t, 8, n)
	for _, frame := range samples {
		assert.Equal(t, [2]float64{0.25, -0.25}, frame)
	}
}

func TestStreamerDrainsAtEOF(t *testing.T) {
	s := output.NewStreamer(audiotest.NewConstantSource(48000, 1, 3, 0.5))

	samples := make([][2]float64, 8)
	n, ok := s.Stream(samples)
	require.True(t, ok)
	require.Equal(t, 3, n)

	n, ok = s.Stream(samples)
	require.False(t, ok)
	require.Zero(t, n)
	require.NoError(t, s.Err())
}

func TestStreamerError(t *testing.T) {
	src := audiotest.NewConstantSource(48000, 1, 10, 0.5)
	src.FailAt = 2
	s := output.NewStreamer(src)

	samples := make([][2]float64, 4)
	n, ok := s.Stream(samples)
	require.True(t, ok)
	require.Equal(t, 2, n)

	n, ok = s.Stream(samples)
	require.False(t, ok)
	require.Zero(t, n)
	require.ErrorIs(t, s.Err(), audiotest.ErrMock)
}
