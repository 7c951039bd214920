// SPDX-License-Identifier: EPL-2.0

package synth

import "fmt"

// Filter scales a generator's amplitude based on its frequency.
type Filter interface {
	fmt.Stringer

	gain(freq float64) float64
}

// NoFilter leaves the signal unchanged.
type NoFilter struct{}

// LowPass attenuates generators whose frequency is above Cutoff. This is an
// amplitude approximation: above the cutoff the gain is 1 + Cutoff − f, which
// turns negative (phase inverted) once f exceeds Cutoff by more than 1 Hz.
type LowPass struct {
	Cutoff float64
}

// HighPass is accepted for command compatibility and has no effect.
type HighPass struct {
	Cutoff float64
}

// BandPass is accepted for command compatibility and has no effect.
type BandPass struct {
	Center float64
}

// Notch is accepted for command compatibility and has no effect.
type Notch struct {
	Center float64
}

func (NoFilter) gain(float64) float64 { return 1 }

func (f LowPass) gain(freq float64) float64 {
	if freq <= f.Cutoff {
		return 1
	}
	return 1 + f.Cutoff - freq
}

func (HighPass) gain(float64) float64 { return 1 }
func (BandPass) gain(float64) float64 { return 1 }
func (Notch) gain(float64) float64    { return 1 }

func (NoFilter) String() string   { return "None" }
func (f LowPass) String() string  { return fmt.Sprintf("LowPass (%gHz)", f.Cutoff) }
func (f HighPass) String() string { return fmt.Sprintf("HighPass (%gHz)", f.Cutoff) }
func (f BandPass) String() string { return fmt.Sprintf("BandPass (%gHz)", f.Center) }
func (f Notch) String() string    { return fmt.Sprintf("Notch (%gHz)", f.Center) }
