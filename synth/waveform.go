// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Waveform is the oscillator shape of a Generator.
type Waveform interface {
	fmt.Stringer

	// eval returns the raw oscillator value at phase position phi (t·f).
	eval(phi, freq float64, rng *rand.PCG) float64
}

// Sine is a sine wave. Phase is given in degrees and is divided by the
// oscillator frequency before it is added to the angle.
type Sine struct {
	Phase float64
}

// Saw is a rising sawtooth in [-1, 1).
type Saw struct{}

// Square is a pulse wave that outputs 1 when the phase fraction exceeds Duty
// and 0 otherwise.
type Square struct {
	Duty float64
}

// Triangle is a symmetric triangle wave in [-1, 1].
type Triangle struct{}

// SineOverdrive is a soft clipped sine. Drive of 0 is a gentle saturation,
// drive of 1 is close to a square wave.
type SineOverdrive struct {
	Drive float64
}

// Noise is white noise. The generator seeds its PRNG from its frequency, so
// two generators with the same frequency produce the same sequence.
type Noise struct{}

func (w Sine) eval(phi, freq float64, _ *rand.PCG) float64 {
	return math.Sin(2*math.Pi*phi + w.Phase/(360*freq))
}

func (Saw) eval(phi, _ float64, _ *rand.PCG) float64 {
	return saw(phi)
}

func (w Square) eval(phi, _ float64, _ *rand.PCG) float64 {
	_, frac := math.Modf(phi)
	if frac > w.Duty {
		return 1
	}
	return 0
}

func (Triangle) eval(phi, _ float64, _ *rand.PCG) float64 {
	return 2*math.Abs(saw(phi)) - 1
}

func (w SineOverdrive) eval(phi, _ float64, _ *rand.PCG) float64 {
	k := 1 + 9*w.Drive
	return math.Tanh(k*math.Sin(2*math.Pi*phi)) / math.Tanh(k)
}

func (Noise) eval(_, _ float64, rng *rand.PCG) float64 {
	// top 16 bits as a signed PCM value
	v := int16(rng.Uint64() >> 48)
	return float64(v) / 32768
}

func saw(phi float64) float64 {
	return 2 * (phi - math.Floor(0.5+phi))
}

func (w Sine) String() string { return fmt.Sprintf("Sine (%gdeg)", w.Phase) }
func (Saw) String() string    { return "Sawtooth" }
func (w Square) String() string {
	return fmt.Sprintf("Square (%g%%)", math.Round(w.Duty*100))
}
func (Triangle) String() string { return "Triangle" }
func (w SineOverdrive) String() string {
	return fmt.Sprintf("Sine overdrive (%g%%)", math.Round(w.Drive*100))
}
func (Noise) String() string { return "Noise" }
