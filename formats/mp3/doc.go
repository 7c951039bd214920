// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III files with
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo, mono files included, so the source
// reports two channels. Samples are divided by 32768.
//
//	src, err := mp3.Decoder{}.Decode(file)
//	buf := make([]float32, 4096) // 2048 stereo frames
//	n, err := src.ReadSamples(buf)
package mp3
