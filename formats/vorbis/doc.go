// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files with github.com/jfreymuth/oggvorbis.
//
//	file, _ := os.Open("pads/warm.ogg")
//	defer file.Close()
//	src, err := vorbis.Decoder{}.Decode(file)
//
// The decoder already yields interleaved float32 in [-1, 1], so ReadSamples
// decodes straight into the caller's buffer. Requests are trimmed to whole
// frames; a buffer shorter than one frame reads nothing.
package vorbis
