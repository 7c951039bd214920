// SPDX-License-Identifier: EPL-2.0

// Command synthmix is an interactive synthesizer. Notes and files typed at
// the prompt are mixed and played on the configured audio backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/c-bata/go-prompt"
	"github.com/pion/logging"

	"github.com/ik5/synthmix"
	"github.com/ik5/synthmix/command"
	"github.com/ik5/synthmix/internal/config"
	"github.com/ik5/synthmix/mixer"
	"github.com/ik5/synthmix/output"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "synthmix:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	factory := cfg.LoggerFactory(nil)
	log := factory.NewLogger("cmd")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kind, err := output.ParseKind(cfg.Backend)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	eng, err := synthmix.New(synthmix.Options{
		SampleRate:    cfg.SampleRate,
		Channels:      cfg.Channels,
		MaxVoices:     cfg.MaxVoices,
		QueueSize:     cfg.QueueSize,
		PacketSize:    cfg.PacketSize,
		Prefetch:      cfg.Prefetch,
		LoggerFactory: factory,
	})
	if err != nil {
		return err
	}
	defer eng.Close()

	player, err := output.Open(kind, eng.Mixer(), output.Options{
		Buffer: cfg.Buffer,
		Format: format,
		Logger: factory.NewLogger("output"),
	})
	if err != nil {
		return err
	}
	// the output stops pulling before the engine releases its voices
	defer player.Close()

	if err := player.Start(); err != nil {
		return fmt.Errorf("start output: %w", err)
	}

	cmds := make(chan command.Command, mixer.DefaultQueueSize)

	if cfg.File != "" {
		cmds <- command.PlayFile{Path: cfg.File}
	}

	stopMIDI := startMIDI(ctx, cmds, factory)
	defer stopMIDI()

	go readCommands(ctx, cmds)

	return loop(ctx, eng, cmds, log)
}

func loop(ctx context.Context, eng *synthmix.Engine, cmds <-chan command.Command, log logging.LeveledLogger) error {
	for {
		select {
		case <-ctx.Done():
			log.Info("interrupted")
			return nil
		case cmd := <-cmds:
			reply, err := eng.Exec(ctx, cmd)
			switch {
			case errors.Is(err, synthmix.ErrQuit):
				return nil
			case err != nil:
				fmt.Println("error:", err)
			case reply != "":
				fmt.Println(reply)
			}
		}
	}
}

// readCommands runs the prompt until quit. A line that does not parse is
// reported and skipped.
func readCommands(ctx context.Context, out chan<- command.Command) {
	var history []string
	for {
		line := strings.TrimSpace(prompt.Input("synthmix> ", complete,
			prompt.OptionTitle("synthmix"),
			prompt.OptionHistory(history),
		))
		if ctx.Err() != nil {
			return
		}
		if line == "" {
			continue
		}
		history = append(history, line)

		cmd, err := command.Parse(line)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}

		select {
		case out <- cmd:
		case <-ctx.Done():
			return
		}
		if _, ok := cmd.(command.Quit); ok {
			return
		}
	}
}

var verbs = []prompt.Suggest{
	{Text: "note", Description: "note A#3 wave=square:0.25 harmonics=3 env=ad:0.1:1 lpf=800"},
	{Text: "play", Description: "stream a wav, aiff, mp3 or ogg file"},
	{Text: "stats", Description: "show mixer counters"},
	{Text: "quit", Description: "stop playing and exit"},
}

var noteOptions = []prompt.Suggest{
	{Text: "wave=", Description: "sine[:phase] saw square[:duty] triangle overdrive[:drive] noise"},
	{Text: "harmonics=", Description: "number of harmonics"},
	{Text: "env=", Description: "ad:attack:decay flat:duration tremolo:rate:duration"},
	{Text: "lpf=", Description: "low pass cutoff in Hz"},
	{Text: "hpf=", Description: "high pass cutoff in Hz"},
	{Text: "bpf=", Description: "band pass center in Hz"},
	{Text: "notch=", Description: "notch center in Hz"},
	{Text: "freq=", Description: "octave 0 frequency, overrides the note"},
	{Text: "vol=", Description: "volume"},
}

func complete(d prompt.Document) []prompt.Suggest {
	word := d.GetWordBeforeCursor()
	fields := strings.Fields(d.TextBeforeCursor())

	switch {
	case len(fields) == 0 || (len(fields) == 1 && word != ""):
		return prompt.FilterHasPrefix(verbs, word, true)
	case fields[0] == "note" || fields[0] == "n":
		if len(fields) == 1 || (len(fields) == 2 && word != "") {
			return nil
		}
		return prompt.FilterHasPrefix(noteOptions, word, true)
	}
	return nil
}
