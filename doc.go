// SPDX-License-Identifier: EPL-2.0

// Package synthmix is a real-time mixing engine for oscillator tones and
// streamed audio files.
//
// An Engine owns a mixer.Mixer and turns command.Command values into voices
// on it. The mixer is an audio.Source, so any output pulls it directly:
//
//	eng, _ := synthmix.New(synthmix.Options{SampleRate: 48000, Channels: 2})
//	defer eng.Close()
//
//	player, _ := output.Open(output.Oto, eng.Mixer(), output.Options{})
//	defer player.Close()
//	player.Start()
//
//	cmd, _ := command.Parse("note A4 wave=square:0.25 harmonics=3")
//	eng.Exec(ctx, cmd)
//
// # Voices
//
// A note becomes one synth.Generator per harmonic. A file becomes a
// stream.File that decodes ahead on its own goroutine and is resampled and
// remixed to the output format. Both satisfy mixer.SoundSource and are
// dropped by the mixer once they report themselves inactive.
//
// # Threads
//
// Exec and Add run on the control side. The output's audio thread is the
// only caller of Mixer.ReadSamples, which never blocks, allocates or logs.
//
// # Formats
//
// Files are decoded by the codecs registered in stream.DefaultRegistry:
//   - WAV and AIFF, 16-bit PCM, via formats/wav and formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
package synthmix
