// SPDX-License-Identifier: EPL-2.0

// Package wav decodes PCM 16-bit WAV files into an audio.Source using
// github.com/go-audio/wav.
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrOnlyPCM16bitSupported) {
//	    // 8-bit, 24-bit and float WAV files are rejected
//	}
//
// Samples are divided by 32768, so a full-scale negative sample is -1 and a
// full-scale positive one is just below 1. Any channel count the file
// declares is passed through; the stream package rejects more than two.
//
// Non-seekable readers are buffered in memory because the WAV chunk layout
// is walked with seeks.
package wav
