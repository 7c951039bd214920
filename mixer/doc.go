// SPDX-License-Identifier: EPL-2.0

// Package mixer sums a changing set of voices into one sample stream.
//
// Two goroutines touch a Mixer. The control side calls Add, which never
// blocks: sources go into a bounded queue and Add fails with ErrQueueFull
// when the audio side is not keeping up. The audio side calls ReadSamples
// (or Drain and Next), which takes queued sources into a fixed-capacity
// voice list, sums every active voice and drops the ones that finished.
// Nothing on the audio side allocates, locks or logs.
//
//	mix := mixer.New(48000, 2, mixer.WithMaxVoices(128))
//	gen, _ := synth.NewGenerator(synth.Sine{}, 440, synth.Flat{Duration: 1}, 0.5, nil)
//	_ = mix.Add(gen)
//	player, _ := output.Open(output.Oto, mix, output.Options{})
//
// The sum is neither scaled nor clipped.
package mixer
