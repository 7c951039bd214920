// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"fmt"
	"math/rand/v2"
)

// DefaultCallsPerTick advances time once per interleaved stereo frame.
const DefaultCallsPerTick = 2

// Generator is an oscillator voice. It is not safe for concurrent use; the
// mixer owns it once it has been added.
type Generator struct {
	wave   Waveform
	freq   float64
	env    Envelope
	volume float64
	filter Filter

	callsPerTick int
	calls        int
	tick         uint64

	rng rand.PCG
}

// Option configures a Generator.
type Option func(*Generator)

// WithCallsPerTick sets how many Sample calls make up one tick. Use the
// output channel count so every channel of a frame shares one time step.
func WithCallsPerTick(n int) Option {
	return func(g *Generator) {
		g.callsPerTick = n
	}
}

// NewGenerator creates an oscillator at freq Hz. A nil filter means
// NoFilter; a nil envelope is rejected because it defines the voice lifetime.
func NewGenerator(wave Waveform, freq float64, env Envelope, volume float64, filter Filter, opts ...Option) (*Generator, error) {
	if !(freq > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrequency, freq)
	}
	if wave == nil {
		wave = Sine{}
	}
	if env == nil {
		return nil, fmt.Errorf("generator at %vHz: envelope is required", freq)
	}
	if filter == nil {
		filter = NoFilter{}
	}

	g := &Generator{
		wave:         wave,
		freq:         freq,
		env:          env,
		volume:       volume,
		filter:       filter,
		callsPerTick: DefaultCallsPerTick,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.callsPerTick < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCallsPerTick, g.callsPerTick)
	}

	g.rng.Seed(uint64(freq), 0)

	return g, nil
}

// Sample returns the current value and advances the call counter.
func (g *Generator) Sample(sampleRate int) float32 {
	t := g.elapsed(sampleRate)
	v := g.wave.eval(t*g.freq, g.freq, &g.rng) *
		g.filter.gain(g.freq) *
		g.env.level(t) *
		g.volume

	g.calls++
	if g.calls >= g.callsPerTick {
		g.calls = 0
		g.tick++
	}

	return float32(v)
}

// IsActive reports whether the envelope window is still open. Once it
// returns false it stays false.
func (g *Generator) IsActive(sampleRate int) bool {
	return g.env.active(g.elapsed(sampleRate))
}

// Elapsed returns the generator time in seconds at sampleRate.
func (g *Generator) Elapsed(sampleRate int) float64 {
	return g.elapsed(sampleRate)
}

func (g *Generator) elapsed(sampleRate int) float64 {
	return float64(g.tick) / float64(sampleRate)
}

func (g *Generator) Frequency() float64 { return g.freq }
func (g *Generator) Volume() float64    { return g.volume }
func (g *Generator) Tick() uint64       { return g.tick }
func (g *Generator) CallsPerTick() int  { return g.callsPerTick }
func (g *Generator) Waveform() Waveform { return g.wave }
func (g *Generator) Envelope() Envelope { return g.env }
func (g *Generator) Filter() Filter     { return g.filter }

func (g *Generator) String() string {
	return fmt.Sprintf("%s %.2fHz vol %.3f, %s, filter %s", g.wave, g.freq, g.volume, g.env, g.filter)
}
