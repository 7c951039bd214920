// SPDX-License-Identifier: EPL-2.0

//go:build headless

package output

import "github.com/ik5/synthmix/audio"

func openOto(audio.Source, Options) (Player, error) {
	return nil, ErrBackendUnavailable
}

func openBeep(audio.Source, Options) (Player, error) {
	return nil, ErrBackendUnavailable
}
