// SPDX-License-Identifier: EPL-2.0

// Package synth provides procedural oscillator voices.
//
// A Generator combines a Waveform, a Filter and an Envelope and produces one
// sample per call to Sample. Time is derived from an internal tick counter,
// never from the wall clock, so output is fully deterministic:
//
//	gen, err := synth.NewGenerator(synth.Sine{}, 440,
//	    synth.AttackDecay{Attack: 0.1, Decay: 1},
//	    0.5, synth.NoFilter{})
//	if err != nil {
//	    return err
//	}
//	for gen.IsActive(48000) {
//	    v := gen.Sample(48000)
//	    // ...
//	}
//
// # Ticks and Calls
//
// The tick counter advances once every CallsPerTick calls to Sample. With the
// default of 2, a caller that pulls one value per channel of a stereo frame
// gets one time step per frame. A mono caller should use WithCallsPerTick(1).
//
// # Variants
//
// Waveform, Filter and Envelope are closed sets: each is an interface with an
// unexported method, implemented only by the types in this package.
//
// Waveforms:
//   - Sine: sin(2π·φ + phase/(360·f))
//   - Saw: 2·(φ − floor(0.5 + φ)), range [-1, 1)
//   - Square: 1 when frac(φ) > duty, otherwise 0
//   - Triangle: 2·|saw| − 1
//   - SineOverdrive: tanh-saturated sine, harder with higher drive
//   - Noise: seeded pseudo random values in [-1, 1)
//
// Envelopes:
//   - Flat: constant 1 for Duration seconds
//   - AttackDecay: linear ramp up then linear decay
//   - Tremolo: sine amplitude modulation fading to zero over Duration
//
// Filters only scale amplitude. LowPass attenuates oscillators above the
// cutoff as 1 + cutoff − f; the other filter kinds are accepted and pass the
// signal through.
package synth
