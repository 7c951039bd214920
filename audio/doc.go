// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM stream primitives the mixer is built on.
//
// # Source Interface
//
// Every decoder and stream adapter implements Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 values in [-1, 1]. ReadSamples returns
// io.EOF once the stream is finished; n may be non-zero on the same call.
// The mixer itself is a Source, which is how audio outputs pull it.
//
// # Conforming a stream to the output
//
// A file rarely matches the output format. The adapters here fix rate and
// channel count without allocating per read:
//
//	src, _ := audio.NewResampler(decoded, 48000) // Catmull-Rom, low-passed when downsampling
//	mono := audio.NewMonoMixer(src)              // average all channels
//	stereo, _ := audio.NewUpmixer(mono, 2)       // duplicate mono into every channel
//
// # Format Registry
//
// Registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("ogg", vorbis.Decoder{})
//	dec, err := registry.Lookup("pads/warm.ogg")
//
// Keys are case insensitive and may carry the leading dot.
package audio
