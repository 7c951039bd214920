// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes 16-bit PCM AIFF files with github.com/go-audio/aiff.
//
//	src, err := aiff.Decoder{}.Decode(file)
//
// AIFF stores big-endian samples; go-audio takes care of byte order and the
// source normalises by 32768 like the other codecs. Readers that cannot
// seek are buffered in memory.
package aiff
