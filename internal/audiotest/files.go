// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/aiff"
	"github.com/go-audio/wav"
)

// WriteWAV writes interleaved 16-bit samples as a PCM WAV file in a test
// temp directory and returns its path.
func WriteWAV(t testing.TB, sampleRate, channels int, samples []int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	if err := enc.Write(intBuffer(sampleRate, channels, samples)); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close wav encoder: %v", err)
	}

	return path
}

// WriteAIFF is WriteWAV for AIFF files.
func WriteAIFF(t testing.TB, sampleRate, channels int, samples []int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tone.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	enc := aiff.NewEncoder(f, sampleRate, 16, channels)
	if err := enc.Write(intBuffer(sampleRate, channels, samples)); err != nil {
		t.Fatalf("write aiff: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close aiff encoder: %v", err)
	}

	return path
}

func intBuffer(sampleRate, channels int, samples []int) *goaudio.IntBuffer {
	return &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           samples,
		SourceBitDepth: 16,
	}
}
