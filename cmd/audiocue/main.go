// SPDX-License-Identifier: EPL-2.0

// Command audiocue plays an audio file with volume, speed and pan applied,
// or renders the result into a WAV file.
//
//	audiocue [flags] <input.{wav|aiff|mp3|ogg|flac}>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ik5/audiocue/engine"
	"github.com/ik5/audiocue/internal/config"
	"github.com/ik5/audiocue/player"
	"github.com/ik5/audiocue/sound"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("audiocue failed")
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	volume := flag.Float64("volume", cfg.Volume, "volume multiplier, 1 is unity")
	speed := flag.Float64("speed", cfg.Speed, "speed multiplier, 1 is unity")
	panLR := flag.Float64("pan", cfg.PanLR, "left/right pan from -1 (left) to 1 (right)")
	panFB := flag.Float64("fb", cfg.PanFB, "front/back pan from -1 (rear) to 1 (front), 4 channel files only")
	singleAxis := flag.Bool("single-axis", cfg.SingleAxis, "pan left/right only")
	duration := flag.Duration("duration", cfg.Duration, "stop after this long, 0 plays everything")
	out := flag.String("out", cfg.Output, "render into this WAV file instead of playing")
	rate := flag.Int("rate", cfg.SampleRate, "device sample rate, 0 uses the file's")
	channels := flag.Int("channels", cfg.Channels, "device channels, 0 uses the file's")
	buffer := flag.Duration("buffer", cfg.Buffer, "device buffer length, 0 lets the driver decide")
	level := flag.String("log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	prof := flag.String("profile", "", "write a cpu or mem profile into the current directory")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <input.{wav|aiff|mp3|ogg|flac}>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := setupLogging(*level); err != nil {
		return err
	}

	switch *prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile %q", *prof)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		return errors.New("expected exactly one input file")
	}
	path := flag.Arg(0)

	opts := []player.Option{player.WithLogger(log.Logger)}
	if *singleAxis {
		opts = append(opts, player.WithSingleAxisPan())
	}
	if *duration > 0 {
		opts = append(opts, player.WithFinishAfter(*duration))
	}

	p, err := player.Open(path, float32(*volume), float32(*speed), sound.Pan{LR: float32(*panLR), FB: float32(*panFB)}, opts...)
	if err != nil {
		return err
	}
	log.Info().Str("file", path).Stringer("player", p).Msg("loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *out != "" {
		return render(ctx, p, *out)
	}

	return play(ctx, p, engine.OtoOptions{
		SampleRate: orDefault(*rate, p.SampleRate()),
		Channels:   orDefault(*channels, p.Channels()),
		BufferSize: *buffer,
	})
}

func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	return nil
}

func orDefault(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func render(ctx context.Context, p *player.Player, path string) error {
	f, err := os.Create(path)
	if err != nil {
		_ = p.Close()
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	e := engine.NewWAV(f, engine.WithLogger(log.Logger))
	if err := p.PlayBlocking(ctx, e); err != nil {
		return errors.Join(err, e.Close())
	}

	// the stage ended; wait for the header to be written
	if err := e.Wait(ctx); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	log.Info().Str("file", path).Msg("wrote")
	return nil
}

func play(ctx context.Context, p *player.Player, opts engine.OtoOptions) error {
	e, err := engine.StartOto(opts, engine.WithLogger(log.Logger))
	if err != nil {
		_ = p.Close()
		return err
	}
	defer e.Close()

	err = p.PlayBlocking(ctx, e)
	if errors.Is(err, context.Canceled) {
		log.Info().Msg("interrupted")
		return nil
	}
	if err != nil {
		return err
	}

	// let the device drain what the stage already produced
	for e.Playing() > 0 {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(20 * time.Millisecond):
		}
	}

	return nil
}
