// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttackDecay_Shape(t *testing.T) {
	t.Parallel()

	env := AttackDecay{Attack: 0.1, Decay: 0.2}

	assert.InDelta(t, 0.0, env.level(0), 1e-9)
	assert.InDelta(t, 0.5, env.level(0.05), 1e-9)
	assert.InDelta(t, 1.0, env.level(0.1), 1e-9)
	assert.InDelta(t, 0.5, env.level(0.2), 1e-9)
	assert.InDelta(t, 0.0, env.level(0.3), 1e-9)

	assert.True(t, env.active(0))
	assert.True(t, env.active(0.3))
	assert.False(t, env.active(0.3001))
}

func TestAttackDecay_NoDecayFallsOneUnitPerSecond(t *testing.T) {
	t.Parallel()

	env := AttackDecay{Attack: 0.5, Decay: 0}

	assert.InDelta(t, 1.0, env.level(0.5), 1e-9)
	assert.InDelta(t, 0.75, env.level(0.75), 1e-9)
	assert.True(t, env.active(0.5))
	assert.False(t, env.active(0.51))
}

func TestAttackDecay_NoAttack(t *testing.T) {
	t.Parallel()

	env := AttackDecay{Attack: 0, Decay: 2}

	assert.InDelta(t, 1.0, env.level(0), 1e-9)
	assert.InDelta(t, 0.5, env.level(1), 1e-9)
	assert.InDelta(t, 0.0, env.level(2), 1e-9)
	assert.True(t, env.active(2))
	assert.False(t, env.active(2.01))
}

func TestAttackDecay_ZeroLengthIsSilent(t *testing.T) {
	t.Parallel()

	env := AttackDecay{}

	assert.Equal(t, 0.0, env.level(0))
	assert.True(t, env.active(0), "window includes t=0")
	assert.False(t, env.active(1e-6))
}

func TestFlat(t *testing.T) {
	t.Parallel()

	env := Flat{Duration: 1}

	for _, ts := range []float64{0, 0.25, 0.999, 1} {
		assert.Equal(t, 1.0, env.level(ts))
		assert.True(t, env.active(ts))
	}
	assert.False(t, env.active(1.0001))
}

func TestTremolo(t *testing.T) {
	t.Parallel()

	env := Tremolo{Rate: 1, Duration: 2}

	assert.InDelta(t, 0.5, env.level(0), 1e-9)
	// sin peak at a quarter period, faded by 1 - 0.25/2
	assert.InDelta(t, 0.875, env.level(0.25), 1e-9)
	assert.InDelta(t, 0.0, env.level(2), 1e-9)
	assert.True(t, env.active(2))
	assert.False(t, env.active(2.001))

	assert.Equal(t, 0.0, Tremolo{Rate: 3}.level(0), "zero duration must not divide by zero")
}

// TestEnvelope_LivenessFlipsOnce sweeps time forward and checks no envelope
// comes back to life after it ended.
func TestEnvelope_LivenessFlipsOnce(t *testing.T) {
	t.Parallel()

	envs := []Envelope{
		Flat{Duration: 0.5},
		AttackDecay{Attack: 0.1, Decay: 0.2},
		AttackDecay{Attack: 0, Decay: 0.4},
		AttackDecay{Attack: 0.3, Decay: 0},
		Tremolo{Rate: 7, Duration: 0.6},
	}

	for _, env := range envs {
		t.Run(env.String(), func(t *testing.T) {
			t.Parallel()

			transitions := 0
			prev := env.active(0)
			require.True(t, prev, "every envelope starts active")

			for tick := 1; tick <= 48000; tick++ {
				cur := env.active(float64(tick) / 48000)
				if cur != prev {
					transitions++
					require.False(t, cur, "envelope reactivated at tick %d", tick)
				}
				prev = cur
			}
			assert.Equal(t, 1, transitions)
		})
	}
}

func TestEnvelope_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Flat (1s)", Flat{Duration: 1}.String())
	assert.Equal(t, "Attack 0.1s / Decay 1s", AttackDecay{Attack: 0.1, Decay: 1}.String())
	assert.Equal(t, "Tremolo (5Hz, 2s)", Tremolo{Rate: 5, Duration: 2}.String())
}
