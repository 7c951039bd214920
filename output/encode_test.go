// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ik5/synthmix/internal/audiotest"
)

func TestPCMReaderFloat32(t *testing.T) {
	src := audiotest.NewConstantSource(48000, 1, 100, 0.5)
	r := newPCMReader(src, Float32, 16)

	p := make([]byte, 16)
	n, err := r.Read(p)
	require.NoError(t, err)
	require.Equal(t, 16, n)

	for i := range 4 {
		got := math.Float32frombits(binary.LittleEndian.Uint32(p[4*i:]))
		require.Equal(t, float32(0.5), got)
	}
}

func TestPCMReaderInt16(t *testing.T) {
	src := audiotest.NewConstantSource(48000, 2, 100, 0.5)
	r := newPCMReader(src, Int16, 16)

	p := make([]byte, 8)
	n, err := r.Read(p)
	require.NoError(t, err)
	require.Equal(t, 8, n)

	for i := range 4 {
		require.Equal(t, int16(16383), int16(binary.LittleEndian.Uint16(p[2*i:])))
	}
}

func TestPCMReaderWholeFrames(t *testing.T) {
	src := audiotest.NewConstantSource(48000, 2, 100, 0.5)
	r := newPCMReader(src, Float32, 16)

	// 10 bytes hold one stereo float32 frame and a partial one
	n, err := r.Read(make([]byte, 10))
	require.NoError(t, err)
	require.Equal(t, 8, n)

	n, err = r.Read(make([]byte, 7))
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestPCMReaderPadsAfterEnd(t *testing.T) {
	src := audiotest.NewConstantSource(48000, 1, 2, 0.5)
	r := newPCMReader(src, Float32, 4)

	p := make([]byte, 16)
	n, err := r.Read(p)
	require.NoError(t, err)
	require.Equal(t, 16, n)
	require.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(p[0:])))
	require.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(p[4:])))
	require.Equal(t, make([]byte, 8), p[8:])
	require.ErrorIs(t, r.Err(), io.EOF)

	for i := range p {
		p[i] = 0xff
	}
	n, err = r.Read(p)
	require.NoError(t, err)
	require.Equal(t, 16, n)
	require.Equal(t, make([]byte, 16), p)
}

func TestPCMReaderKeepsFirstError(t *testing.T) {
	src := audiotest.NewConstantSource(48000, 1, 100, 0.5)
	src.FailAt = 1
	r := newPCMReader(src, Int16, 4)

	p := make([]byte, 8)
	_, err := r.Read(p)
	require.NoError(t, err)
	require.NoError(t, r.Err())

	_, err = r.Read(p)
	require.NoError(t, err)
	require.ErrorIs(t, r.Err(), audiotest.ErrMock)
	require.Equal(t, make([]byte, 8), p)
}

func TestPCMReaderGrowsBuffer(t *testing.T) {
	src := audiotest.NewConstantSource(48000, 1, 1000, -1)
	r := newPCMReader(src, Int16, 1)

	p := make([]byte, 256)
	n, err := r.Read(p)
	require.NoError(t, err)
	require.Equal(t, 256, n)
	require.Equal(t, int16(-32767), int16(binary.LittleEndian.Uint16(p[254:])))

	allocs := testing.AllocsPerRun(100, func() {
		_, _ = r.Read(p)
	})
	require.Zero(t, allocs, "grown buffer is reused")
}

func BenchmarkPCMReaderFloat32(b *testing.B) {
	src := audiotest.NewConstantSource(48000, 2, math.MaxInt32, 0.25)
	r := newPCMReader(src, Float32, 1024)
	p := make([]byte, 1024*2*4)

	b.ReportAllocs()
	for b.Loop() {
		_, _ = r.Read(p)
	}
}
