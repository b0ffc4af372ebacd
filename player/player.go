// SPDX-License-Identifier: EPL-2.0

package player

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/ik5/audiocue/formats"
	"github.com/ik5/audiocue/sound"
	"github.com/rs/zerolog"
)

// Engine takes ownership of a stage and pulls it on its own goroutine.
type Engine interface {
	Play(s sound.Stage) error
}

// Player is an assembled, controllable chain.
type Player struct {
	id       uuid.UUID
	stage    *sound.Controllable
	ctl      *sound.Controller
	notifier *sound.CompletionNotifier
	twoAxis  bool
	log      zerolog.Logger

	handedOff atomic.Bool
}

// New wraps src into a playback chain with the given initial settings.
// It fails when src has a channel layout that cannot be panned or when
// speed is not positive.
func New(volume, speed float32, pan sound.Pan, src sound.Stage, opts ...Option) (*Player, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	var (
		s   sound.Stage = sound.NewPausable(src)
		err error
	)

	if o.singleAxis {
		s, err = sound.NewPanned(s, pan.LR)
	} else {
		s, err = sound.NewPanned2D(s, pan)
	}
	if err != nil {
		return nil, fmt.Errorf("pan stage: %w", err)
	}

	s = sound.NewAdjustableVolume(s, volume)

	if s, err = sound.NewAdjustableSpeed(s, speed); err != nil {
		return nil, fmt.Errorf("speed stage: %w", err)
	}

	if o.finishAfter > 0 {
		s = sound.NewFinishAfter(s, o.finishAfter)
	}

	var notifier *sound.CompletionNotifier
	if o.completion {
		notifier = sound.NewCompletionNotifier(s)
		s = notifier
	}

	stage := sound.NewControllable(s)
	id := uuid.New()

	p := &Player{
		id:       id,
		stage:    stage,
		ctl:      stage.Controller(),
		notifier: notifier,
		twoAxis:  !o.singleAxis,
		log:      o.logger.With().Str("player", id.String()).Logger(),
	}

	p.log.Debug().
		Float32("volume", volume).
		Float32("speed", speed).
		Float32("pan_lr", pan.LR).
		Float32("pan_fb", pan.FB).
		Int("channels", stage.Channels()).
		Int("rate", stage.SampleRate()).
		Msg("player assembled")

	return p, nil
}

// Open decodes the file at path and builds a player from it. Decoding
// failures are returned as *formats.DecodeError.
func Open(path string, volume, speed float32, pan sound.Pan, opts ...Option) (*Player, error) {
	src, err := formats.Open(path)
	if err != nil {
		return nil, err
	}

	p, err := New(volume, speed, pan, sound.FromSource(src), opts...)
	if err != nil {
		_ = src.Close()
		return nil, err
	}

	return p, nil
}

func (p *Player) ID() uuid.UUID   { return p.id }
func (p *Player) Channels() int   { return p.stage.Channels() }
func (p *Player) SampleRate() int { return p.stage.SampleRate() }

// Controller returns the handle that adjusts the running chain.
func (p *Player) Controller() *sound.Controller { return p.ctl }

// Done is closed when playback ends. It is nil for players built
// WithoutCompletion.
func (p *Player) Done() <-chan struct{} {
	if p.notifier == nil {
		return nil
	}
	return p.notifier.Done()
}

func (p *Player) AdjustVolume(volume float32) error {
	p.log.Debug().Float32("volume", volume).Msg("adjust volume")
	return p.ctl.SetVolume(volume)
}

func (p *Player) AdjustSpeed(speed float32) error {
	p.log.Debug().Float32("speed", speed).Msg("adjust speed")
	return p.ctl.SetSpeed(speed)
}

func (p *Player) AdjustPan(pan sound.Pan) error {
	p.log.Debug().Float32("pan_lr", pan.LR).Float32("pan_fb", pan.FB).Msg("adjust pan")
	return p.ctl.SetPan(pan)
}

func (p *Player) SetPaused(paused bool) error {
	p.log.Debug().Bool("paused", paused).Msg("set paused")
	return p.ctl.SetPaused(paused)
}

// The chain built by New always has every control, so the getters
// ignore ErrNoControl.

func (p *Player) Volume() float32 {
	v, _ := p.ctl.Volume()
	return v
}

func (p *Player) Speed() float32 {
	v, _ := p.ctl.Speed()
	return v
}

func (p *Player) Pan() sound.Pan {
	v, _ := p.ctl.Pan()
	return v
}

func (p *Player) Paused() bool {
	v, _ := p.ctl.Paused()
	return v
}

func (p *Player) String() string {
	pan := p.Pan()
	axes := fmt.Sprintf("lr: %g, fb: %g", pan.LR, pan.FB)
	if !p.twoAxis {
		axes = fmt.Sprintf("lr: %g", pan.LR)
	}

	return fmt.Sprintf("Player{volume: %g, speed: %g, pan: {%s}, frames: %d channel, %d Hz}",
		p.Volume(), p.Speed(), axes, p.Channels(), p.SampleRate())
}

// Play hands the chain to e and returns without waiting. Afterwards the
// player is only a control handle.
func (p *Player) Play(e Engine) error {
	if !p.handedOff.CompareAndSwap(false, true) {
		return ErrAlreadyPlaying
	}

	if err := e.Play(p.stage); err != nil {
		p.handedOff.Store(false)
		return fmt.Errorf("engine refused player: %w", err)
	}

	p.log.Debug().Msg("handed to engine")
	return nil
}

// PlayBlocking hands the chain to e and waits until playback ends or ctx
// is done. It returns the error playback ended with, if any.
func (p *Player) PlayBlocking(ctx context.Context, e Engine) error {
	if p.notifier == nil {
		return ErrNoCompletion
	}

	if err := p.Play(e); err != nil {
		return err
	}

	select {
	case <-p.notifier.Done():
		p.log.Debug().Msg("playback finished")
		return p.notifier.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the source of a player that was never handed to an
// engine. Once played, the engine owns the source.
func (p *Player) Close() error {
	if !p.handedOff.CompareAndSwap(false, true) {
		return nil
	}
	return p.stage.Close()
}
