// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/synthmix/utils"
)

// maxEmptyReads bounds how often a source may return (0, nil) in a row
// before the resampler gives up on the current read.
const maxEmptyReads = 8

// Resampler streams src at another sample rate using Catmull-Rom
// interpolation over a four frame window. Channel count is preserved.
// When downsampling a one-pole low-pass smooths the input first.
type Resampler struct {
	src      Source
	rate     int
	step     float64 // source frames consumed per output frame
	channels int

	// window[1] is the frame at the read position, window[0] the one before,
	// window[2] and window[3] the two after.
	window [4][]float32
	valid  [4]bool
	primed bool
	frac   float64

	in  []float32
	eof bool

	smooth bool
	seeded bool
	alpha  float32
	state  []float32
}

// NewResampler wraps src so it produces samples at dstRate.
func NewResampler(src Source, dstRate int) (*Resampler, error) {
	if dstRate <= 0 || src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d -> %d", ErrInvalidSampleRate, src.SampleRate(), dstRate)
	}

	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		rate:     dstRate,
		step:     step,
		channels: channels,
		in:       make([]float32, channels),
		smooth:   step > 1,
		alpha:    0.5,
		state:    make([]float32, channels),
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r, nil
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame reads one frame into frame and reports whether it got one.
func (r *Resampler) readFrame(frame []float32) (bool, error) {
	for range maxEmptyReads {
		n, err := r.src.ReadSamples(r.in)
		got := n == r.channels
		if got {
			copy(frame, r.in)
			r.lowPass(frame)
		}

		if err == io.EOF {
			r.eof = true
			return got, nil
		}
		if err != nil {
			return got, fmt.Errorf("resample: %w", err)
		}
		if got {
			return true, nil
		}
	}
	return false, nil
}

func (r *Resampler) lowPass(frame []float32) {
	if !r.smooth {
		return
	}
	// start from the first frame to avoid a fade-in transient
	if !r.seeded {
		copy(r.state, frame)
		r.seeded = true
	}
	for c := range frame {
		frame[c] = r.alpha*frame[c] + (1-r.alpha)*r.state[c]
		r.state[c] = frame[c]
	}
}

func (r *Resampler) prime() error {
	r.primed = true
	for i := 1; i < len(r.window) && !r.eof; i++ {
		ok, err := r.readFrame(r.window[i])
		if err != nil {
			return err
		}
		r.valid[i] = ok
		if !ok {
			break
		}
	}
	if !r.valid[1] {
		return io.EOF
	}
	return nil
}

// advance moves the window forward by one source frame.
func (r *Resampler) advance() error {
	w := r.window
	r.window = [4][]float32{w[1], w[2], w[3], w[0]}
	r.valid = [4]bool{r.valid[1], r.valid[2], r.valid[3], false}

	if !r.eof {
		ok, err := r.readFrame(r.window[3])
		if err != nil {
			return err
		}
		r.valid[3] = ok
	}
	if !r.valid[1] {
		return io.EOF
	}
	return nil
}

// ReadSamples produces interleaved samples at the target rate. dst length
// must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.frac >= 1 {
			r.frac--
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		// the last frame can only be emitted exactly, there is nothing after it
		if !r.valid[1] || (!r.valid[2] && r.frac > 0) {
			return written * r.channels, io.EOF
		}

		x := float32(r.frac)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			y1 := r.window[1][c]
			y0, y2 := y1, y1
			if r.valid[0] {
				y0 = r.window[0][c]
			}
			if r.valid[2] {
				y2 = r.window[2][c]
			}
			y3 := y2
			if r.valid[3] {
				y3 = r.window[3][c]
			}
			out[c] = utils.CubicInterpolate(y0, y1, y2, y3, x)
		}

		written++
		r.frac += r.step
	}

	return written * r.channels, nil
}
