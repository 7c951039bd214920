// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Upmixer copies a mono source to every channel of a multi-channel frame,
// so a mono file can be pulled by an interleaved stereo output at the right
// speed.
type Upmixer struct {
	src      Source
	channels int
	tmp      []float32
}

// NewUpmixer wraps a mono src and presents it with the given channel count.
func NewUpmixer(src Source, channels int) (*Upmixer, error) {
	if src.Channels() != 1 {
		return nil, fmt.Errorf("%w: got %d channels", ErrNotMono, src.Channels())
	}
	if channels < 1 {
		return nil, fmt.Errorf("upmix to %d channels: %w", channels, ErrInvalidDstSize)
	}

	return &Upmixer{
		src:      src,
		channels: channels,
		tmp:      make([]float32, 2048),
	}, nil
}

func (u *Upmixer) SampleRate() int { return u.src.SampleRate() }
func (u *Upmixer) Channels() int   { return u.channels }
func (u *Upmixer) BufSize() int    { return u.src.BufSize() * u.channels }

func (u *Upmixer) Close() error {
	if err := u.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// ReadSamples fills dst with whole interleaved frames. dst length must be a
// multiple of the channel count.
func (u *Upmixer) ReadSamples(dst []float32) (int, error) {
	if len(dst)%u.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	frames := len(dst) / u.channels
	if frames == 0 {
		return 0, nil
	}
	if cap(u.tmp) < frames {
		u.tmp = make([]float32, frames)
	}
	in := u.tmp[:frames]

	n, err := u.src.ReadSamples(in)
	for f, v := range in[:n] {
		out := dst[f*u.channels : (f+1)*u.channels]
		for c := range out {
			out[c] = v
		}
	}

	return n * u.channels, err
}
