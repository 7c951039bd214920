// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/ik5/synthmix/audio"
	"github.com/ik5/synthmix/utils"
)

// pcmReader is the io.Reader a byte-oriented device pulls. It reads whole
// frames from src and encodes them little-endian. A source that ends or
// fails is padded with silence so the device keeps running.
type pcmReader struct {
	src      audio.Source
	format   Format
	channels int
	buf      []float32
	err      error
}

func newPCMReader(src audio.Source, format Format, frames int) *pcmReader {
	return &pcmReader{
		src:      src,
		format:   format,
		channels: src.Channels(),
		buf:      make([]float32, frames*src.Channels()),
	}
}

func (r *pcmReader) bytesPerSample() int {
	if r.format == Int16 {
		return 2
	}
	return 4
}

func (r *pcmReader) Read(p []byte) (int, error) {
	width := r.bytesPerSample()
	frameBytes := width * r.channels
	samples := (len(p) / frameBytes) * r.channels
	if samples == 0 {
		return 0, nil
	}
	// a device asking for more than the configured buffer grows it once;
	// the larger buffer is kept for every later call
	if cap(r.buf) < samples {
		r.buf = make([]float32, samples)
	}
	buf := r.buf[:samples]

	n := 0
	if r.err == nil {
		var err error
		n, err = r.src.ReadSamples(buf)
		if err != nil {
			// keep the first error, later reads are silence
			r.err = err
		}
	}
	clear(buf[n:])

	out := p[:samples*width]
	if r.format == Int16 {
		for i, v := range buf {
			binary.LittleEndian.PutUint16(out[2*i:], uint16(utils.Float32ToInt16(v)))
		}
	} else {
		for i, v := range buf {
			binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
		}
	}

	return len(out), nil
}

// Err returns the error that ended the source, io.EOF included.
func (r *pcmReader) Err() error {
	return r.err
}

var _ io.Reader = (*pcmReader)(nil)
