// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"github.com/ik5/synthmix/audio"
	"github.com/ik5/synthmix/formats/aiff"
	"github.com/ik5/synthmix/formats/mp3"
	"github.com/ik5/synthmix/formats/vorbis"
	"github.com/ik5/synthmix/formats/wav"
)

// DefaultRegistry returns a registry with every bundled codec.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	return r
}
