// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package output

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/synthmix/audio"
	"github.com/pion/logging"
)

// OtoPlayer plays a source through ebitengine/oto. oto pulls from its own
// goroutine; that goroutine is the audio thread.
type OtoPlayer struct {
	ctx    *oto.Context
	player *oto.Player
	reader *pcmReader
	log    logging.LeveledLogger

	mu      sync.Mutex
	started bool
}

func openOto(src audio.Source, opts Options) (Player, error) {
	format := oto.FormatFloat32LE
	if opts.Format == Int16 {
		format = oto.FormatSignedInt16LE
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   src.SampleRate(),
		ChannelCount: src.Channels(),
		Format:       format,
		BufferSize:   opts.Buffer,
	})
	if err != nil {
		return nil, fmt.Errorf("oto context: %w", err)
	}
	<-ready

	reader := newPCMReader(src, opts.Format, bufferFrames(opts.Buffer, src.SampleRate()))
	return &OtoPlayer{
		ctx:    ctx,
		player: ctx.NewPlayer(reader),
		reader: reader,
		log:    opts.Logger,
	}, nil
}

func (op *OtoPlayer) Start() error {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.started || op.player == nil {
		return nil
	}
	op.player.Play()
	op.started = true
	return nil
}

func (op *OtoPlayer) Close() error {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.player == nil {
		return nil
	}
	if err := op.reader.Err(); err != nil {
		op.log.Debugf("source stopped: %v", err)
	}
	err := op.player.Close()
	op.player = nil
	op.started = false
	if err != nil {
		return fmt.Errorf("oto player: %w", err)
	}
	return nil
}
