// SPDX-License-Identifier: EPL-2.0

// Package stream plays compressed audio files as mixer voices.
//
// A File decodes on its own goroutine into a small ring of fixed-size
// packets. The audio thread only takes finished packets off a channel, so
// Pull never blocks, allocates or touches the file:
//
//	f, err := stream.Open(ctx, "loops/drums.ogg", stream.Options{
//	    SampleRate: 48000,
//	    Channels:   2,
//	})
//	if err != nil {
//	    return err
//	}
//	mix.Add(f)
//
// The decoded stream is conformed to the output: resampled when the file
// rate differs and mixed down or up to the requested channel count, so an
// interleaved pull plays at the right speed.
//
// Pull distinguishes a packet that is not decoded yet (StatusPending, the
// sample is silence and the file stays active) from the end of the stream
// or a decode error (StatusEnded, the file becomes inactive and the mixer
// drops it).
package stream
