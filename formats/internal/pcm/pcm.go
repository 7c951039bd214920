// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer decoders to audio.Source.
package pcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/synthmix/utils"
)

var ErrUnsupportedBitDepth = errors.New("unsupported PCM bit depth")

// Reader is the part of the go-audio wav and aiff decoders the source needs.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source reads integer PCM from a go-audio decoder and normalises it to
// float32.
type Source struct {
	dec        Reader
	format     *goaudio.Format
	bitDepth   int
	intBuf     *goaudio.IntBuffer
	sampleRate int
	channels   int
}

// NewSource wraps dec. bitDepth selects the normalisation divisor.
func NewSource(dec Reader, bitDepth int) (*Source, error) {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid PCM format %+v", format)
	}

	return &Source{
		dec:        dec,
		format:     format,
		bitDepth:   bitDepth,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		intBuf: &goaudio.IntBuffer{
			Data:           make([]int, 4096),
			Format:         format,
			SourceBitDepth: bitDepth,
		},
	}, nil
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return cap(s.intBuf.Data) }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.intBuf.Data) < len(dst) {
		s.intBuf.Data = make([]int, len(dst))
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("pcm: %w", err)
		}
		return 0, io.EOF
	}

	data := s.intBuf.Data[:n]
	switch s.bitDepth {
	case 16:
		for i, v := range data {
			dst[i] = utils.Int16ToFloat32(int16(v))
		}
	case 24:
		for i, v := range data {
			dst[i] = float32(v) / (1 << 23)
		}
	case 32:
		for i, v := range data {
			dst[i] = float32(float64(v) / (1 << 31))
		}
	}

	if err != nil && err != io.EOF {
		return n, fmt.Errorf("pcm: %w", err)
	}
	if n < len(dst) {
		return n, io.EOF
	}
	return n, err
}

// ReadSeeker returns r as an io.ReadSeeker, buffering it in memory when it
// cannot seek. go-audio decoders need to seek between chunks.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}
	return bytes.NewReader(data), nil
}
