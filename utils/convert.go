// SPDX-License-Identifier: EPL-2.0

package utils

// pcm16Scale is the magnitude of the most negative int16 value.
const pcm16Scale = 32768.0

// Float32ToInt16 clamps x to [-1, 1] and scales it to a signed 16-bit sample.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// Int16ToFloat32 normalizes a signed 16-bit PCM sample to [-1, 1) by
// dividing by the maximum magnitude.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / pcm16Scale
}
