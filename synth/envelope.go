// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"fmt"
	"math"
)

// Envelope shapes a generator's amplitude over time and decides how long the
// generator stays alive. Both are evaluated at the same time t in seconds.
type Envelope interface {
	fmt.Stringer

	level(t float64) float64
	active(t float64) bool
}

// Flat holds full amplitude for Duration seconds.
type Flat struct {
	Duration float64
}

// AttackDecay ramps linearly from 0 to 1 over Attack seconds, then falls
// linearly back to 0 over Decay seconds.
//
// A non-positive Decay after an attack falls at one unit per second. Without
// an attack the level is 1 − t/Decay from the start.
type AttackDecay struct {
	Attack float64
	Decay  float64
}

// Tremolo modulates the amplitude with a sine of Rate Hz and fades it out
// linearly over Duration seconds.
type Tremolo struct {
	Rate     float64
	Duration float64
}

func (Flat) level(float64) float64 { return 1 }

func (e Flat) active(t float64) bool { return t <= e.Duration }

func (e AttackDecay) level(t float64) float64 {
	if e.Attack > 0 {
		if t < e.Attack {
			return t / e.Attack
		}
		if e.Decay <= 0 {
			return 1 - (t - e.Attack)
		}
		return 1 - (t-e.Attack)/e.Decay
	}
	// 1 - t/0 would put NaN or Inf into the mix
	if e.Decay <= 0 {
		return 0
	}
	return 1 - t/e.Decay
}

func (e AttackDecay) active(t float64) bool {
	if e.Attack <= 0 {
		return t <= e.Decay
	}
	return t <= e.Attack+e.Decay
}

func (e Tremolo) level(t float64) float64 {
	if e.Duration <= 0 {
		return 0
	}
	return (math.Sin(2*math.Pi*t*e.Rate) + 1) / 2 * (1 - t/e.Duration)
}

func (e Tremolo) active(t float64) bool { return t <= e.Duration }

func (e Flat) String() string { return fmt.Sprintf("Flat (%gs)", e.Duration) }
func (e AttackDecay) String() string {
	return fmt.Sprintf("Attack %gs / Decay %gs", e.Attack, e.Decay)
}
func (e Tremolo) String() string {
	return fmt.Sprintf("Tremolo (%gHz, %gs)", e.Rate, e.Duration)
}
