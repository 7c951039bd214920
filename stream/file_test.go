// SPDX-License-Identifier: EPL-2.0

package stream_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ik5/synthmix/audio"
	"github.com/ik5/synthmix/internal/audiotest"
	"github.com/ik5/synthmix/stream"
	"github.com/pion/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietOptions() stream.Options {
	f := logging.NewDefaultLoggerFactory()
	f.DefaultLogLevel = logging.LogLevelDisabled
	return stream.Options{Logger: f.NewLogger("stream")}
}

// pullAll pulls until StatusEnded, retrying pending pulls.
func pullAll(t *testing.T, f *stream.File) []float32 {
	t.Helper()

	var out []float32
	deadline := time.Now().Add(5 * time.Second)
	for {
		v, st := f.Pull()
		switch st {
		case stream.StatusOK:
			out = append(out, v)
		case stream.StatusPending:
			require.True(t, time.Now().Before(deadline), "stream stuck pending")
			time.Sleep(time.Millisecond)
		case stream.StatusEnded:
			return out
		}
	}
}

func waitDone(t *testing.T, f *stream.File) {
	t.Helper()

	select {
	case <-f.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("decoder goroutine did not exit")
	}
}

// gatedSource blocks every read until the test releases it.
type gatedSource struct {
	*audiotest.MockSource
	gate chan struct{}
}

func (g *gatedSource) ReadSamples(dst []float32) (int, error) {
	<-g.gate
	return g.MockSource.ReadSamples(dst)
}

// stalledSource never produces anything and never ends.
type stalledSource struct{ *audiotest.MockSource }

func (stalledSource) ReadSamples([]float32) (int, error) { return 0, nil }

func TestNew_RejectsMoreThanTwoChannels(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(44100, 3, 100, 0.1)
	f, err := stream.New(context.Background(), src, quietOptions())
	require.ErrorIs(t, err, stream.ErrTooManyChannels)
	assert.Nil(t, f)
	assert.True(t, src.Closed, "rejected source is closed")
}

func TestOpen_RejectsThreeChannelWAV(t *testing.T) {
	t.Parallel()

	path := audiotest.WriteWAV(t, 8000, 3, []int{1, 2, 3, 4, 5, 6})
	f, err := stream.Open(context.Background(), path, quietOptions())
	require.ErrorIs(t, err, stream.ErrTooManyChannels)
	assert.Nil(t, f)
}

func TestOpen_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	garbage := filepath.Join(dir, "broken.wav")
	require.NoError(t, os.WriteFile(garbage, []byte("not audio at all, just some text"), 0o600))

	tests := []struct {
		name string
		path string
		want error
	}{
		{"unknown extension", filepath.Join(dir, "song.flac"), audio.ErrUnknownFormat},
		{"missing file", filepath.Join(dir, "missing.ogg"), os.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := stream.Open(context.Background(), tt.path, quietOptions())
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, f)
		})
	}

	f, err := stream.Open(context.Background(), garbage, quietOptions())
	require.Error(t, err)
	assert.Nil(t, f)
}

func TestOpen_OrderedNormalisedSamples(t *testing.T) {
	t.Parallel()

	pcm := []int{0, 16384, -16384, -32768, 8192, 32767, 1, -1}
	path := audiotest.WriteWAV(t, 8000, 1, pcm)

	opts := quietOptions()
	opts.PacketSize = 3
	f, err := stream.Open(context.Background(), path, opts)
	require.NoError(t, err)
	defer f.Close()

	got := pullAll(t, f)
	require.Len(t, got, len(pcm))
	for i, v := range pcm {
		assert.Equal(t, float32(v)/32768, got[i], "sample %d", i)
	}

	assert.False(t, f.IsActive(8000))
	_, st := f.Pull()
	assert.Equal(t, stream.StatusEnded, st)
	waitDone(t, f)
	assert.NoError(t, f.Err())
}

func TestFile_EndReleasesSource(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(8000, 1, 10, 10)
	f, err := stream.New(context.Background(), src, quietOptions())
	require.NoError(t, err)

	assert.True(t, f.IsActive(8000))
	got := pullAll(t, f)
	assert.Len(t, got, 10)
	assert.False(t, f.IsActive(8000))
	assert.Zero(t, f.Sample(8000))

	waitDone(t, f)
	assert.True(t, src.Closed)
}

func TestFile_PendingIsTransient(t *testing.T) {
	t.Parallel()

	src := &gatedSource{
		MockSource: audiotest.NewConstantSource(8000, 1, 4, 0.5),
		gate:       make(chan struct{}),
	}
	f, err := stream.New(context.Background(), src, quietOptions())
	require.NoError(t, err)
	defer f.Close()

	v, st := f.Pull()
	assert.Equal(t, stream.StatusPending, st)
	assert.Zero(t, v)
	assert.True(t, f.IsActive(8000))
	assert.Equal(t, uint64(1), f.Underruns())

	close(src.gate)
	got := pullAll(t, f)
	assert.Equal(t, []float32{0.5, 0.5, 0.5, 0.5}, got)
}

func TestFile_Position(t *testing.T) {
	t.Parallel()

	opts := quietOptions()
	opts.PacketSize = 4
	f, err := stream.New(context.Background(), audiotest.NewRampSource(8000, 1, 10, 10), opts)
	require.NoError(t, err)
	defer f.Close()

	pulled := 0
	deadline := time.Now().Add(5 * time.Second)
	for pulled < 6 {
		_, st := f.Pull()
		require.NotEqual(t, stream.StatusEnded, st)
		require.True(t, time.Now().Before(deadline))
		if st == stream.StatusOK {
			pulled++
		}
	}

	packet, sample := f.Position()
	assert.Equal(t, 1, packet)
	assert.Equal(t, 2, sample)
}

func TestFile_ConformsToOutput(t *testing.T) {
	t.Parallel()

	opts := quietOptions()
	opts.SampleRate = 48000
	opts.Channels = 2
	src := audiotest.NewSineSource(24000, 1, 2400, 440)

	f, err := stream.New(context.Background(), src, opts)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, 48000, f.SampleRate())
	assert.Equal(t, 2, f.Channels())

	got := pullAll(t, f)
	require.Zero(t, len(got)%2)
	assert.InDelta(t, 2*2400*2, len(got), 8)
	for i := 0; i < len(got); i += 2 {
		require.Equal(t, got[i], got[i+1], "frame %d", i/2)
	}
}

func TestFile_StereoDownmix(t *testing.T) {
	t.Parallel()

	opts := quietOptions()
	opts.Channels = 1
	src := audiotest.NewMockSource(8000, 2, 5, func(_, c int) float32 {
		return []float32{0.2, 0.6}[c]
	})

	f, err := stream.New(context.Background(), src, opts)
	require.NoError(t, err)
	defer f.Close()

	got := pullAll(t, f)
	require.Len(t, got, 5)
	for _, v := range got {
		assert.InDelta(t, 0.4, v, 1e-6)
	}
}

func TestFile_DecodeErrorEndsStream(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 1, 100, 0.25)
	src.FailAt = 6
	f, err := stream.New(context.Background(), src, quietOptions())
	require.NoError(t, err)

	got := pullAll(t, f)
	assert.Len(t, got, 6)
	waitDone(t, f)
	assert.ErrorIs(t, f.Err(), audiotest.ErrMock)
	assert.False(t, f.IsActive(8000))
}

func TestFile_StalledDecoder(t *testing.T) {
	t.Parallel()

	src := stalledSource{audiotest.NewConstantSource(8000, 1, 1, 0)}
	f, err := stream.New(context.Background(), src, quietOptions())
	require.NoError(t, err)

	assert.Empty(t, pullAll(t, f))
	waitDone(t, f)
	assert.ErrorIs(t, f.Err(), stream.ErrStalled)
}

func TestFile_CloseStopsPrefetch(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(48000, 2, 1<<30, 220)
	f, err := stream.New(context.Background(), src, quietOptions())
	require.NoError(t, err)

	require.NoError(t, f.Close())
	require.NoError(t, f.Close())
	waitDone(t, f)
	assert.True(t, src.Closed)

	pullAll(t, f)
	assert.False(t, f.IsActive(48000))
}

func TestFile_ContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	src := audiotest.NewSineSource(48000, 1, 1<<30, 220)
	f, err := stream.New(ctx, src, quietOptions())
	require.NoError(t, err)

	cancel()
	waitDone(t, f)
	assert.NoError(t, f.Err())
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]string{"aif", "aiff", "mp3", "oga", "ogg", "wav", "wave"},
		stream.DefaultRegistry().Formats())
}

func TestStatus_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ok", stream.StatusOK.String())
	assert.Equal(t, "pending", stream.StatusPending.String())
	assert.Equal(t, "ended", stream.StatusEnded.String())
	assert.Equal(t, "Status(7)", stream.Status(7).String())
}

var _ io.Closer = (*stream.File)(nil)
