// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/audiocue/audio"
	"github.com/ik5/audiocue/sound"
	"github.com/ik5/audiocue/utils"
	"github.com/rs/zerolog"
)

// OtoOptions describes the output device format.
type OtoOptions struct {
	SampleRate int
	Channels   int
	// BufferSize is the device buffer length; zero lets oto decide.
	BufferSize time.Duration
}

// Oto plays stages on the default audio device. Several stages can play at
// once; oto mixes them.
//
// oto allows a single context per process, so StartOto must only be called
// once.
type Oto struct {
	otoCtx     *oto.Context
	sampleRate int
	channels   int
	cfg        Config
	log        zerolog.Logger

	mu     sync.Mutex
	voices []*voice
	closed bool
}

// voice is one stage playing on the device.
type voice struct {
	player *oto.Player
	pcm    *pcmReader
}

// StartOto opens the audio device and waits until it is ready.
func StartOto(opts OtoOptions, options ...Option) (*Oto, error) {
	if opts.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d Hz", audio.ErrInvalidRate, opts.SampleRate)
	}
	if opts.Channels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrChannelMismatch, opts.Channels)
	}

	cfg := applyOptions(options...)

	op := &oto.NewContextOptions{
		SampleRate:   opts.SampleRate,
		ChannelCount: opts.Channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   opts.BufferSize,
	}

	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	o := &Oto{
		otoCtx:     otoCtx,
		sampleRate: opts.SampleRate,
		channels:   opts.Channels,
		cfg:        cfg,
		log:        cfg.Logger.With().Str("engine", "oto").Logger(),
	}
	o.log.Debug().Int("rate", opts.SampleRate).Int("channels", opts.Channels).Msg("audio output initialized")

	return o, nil
}

// adapt converts the stage output to the device format.
func adapt(src audio.Source, sampleRate, channels int) (audio.Source, error) {
	if src.Channels() != channels && channels != 1 {
		return nil, fmt.Errorf("%w: %d channels on a %d channel device", ErrChannelMismatch, src.Channels(), channels)
	}

	if src.SampleRate() != sampleRate {
		r, err := audio.NewResampler(src, sampleRate)
		if err != nil {
			return nil, err
		}
		src = r
	}

	if src.Channels() != channels {
		src = audio.NewMonoMixer(src)
	}

	return src, nil
}

// Play starts s on the device and returns immediately. While s is paused
// the device plays silence.
func (o *Oto) Play(s sound.Stage) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrClosed
	}

	src, err := adapt(sound.ToSource(s), o.sampleRate, o.channels)
	if err != nil {
		return err
	}

	o.reap()

	pcm := newPCMReader(src, o.log)
	v := &voice{player: o.otoCtx.NewPlayer(pcm), pcm: pcm}
	v.player.Play()
	o.voices = append(o.voices, v)

	o.log.Debug().
		Int("rate", s.SampleRate()).
		Int("channels", s.Channels()).
		Int("voices", len(o.voices)).
		Msg("stage started")

	return nil
}

// Playing reports how many stages are still playing.
func (o *Oto) Playing() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.reap()
	return len(o.voices)
}

// reap closes voices whose stage ended and whose audio has drained.
// o.mu must be held.
func (o *Oto) reap() {
	kept := o.voices[:0]
	for _, v := range o.voices {
		if v.pcm.ended() && !v.player.IsPlaying() {
			if err := v.close(); err != nil {
				o.log.Warn().Err(err).Msg("closing finished voice")
			}
			continue
		}
		kept = append(kept, v)
	}
	clear(o.voices[len(kept):])
	o.voices = kept
}

func (v *voice) close() error {
	return errors.Join(v.player.Close(), v.pcm.src.Close(), v.pcm.err())
}

// Close stops every voice and suspends the device.
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil
	}
	o.closed = true

	var errs []error
	for _, v := range o.voices {
		v.player.Pause()
		errs = append(errs, v.close())
	}
	o.voices = nil
	errs = append(errs, o.otoCtx.Suspend())

	o.log.Debug().Msg("audio output closed")

	return errors.Join(errs...)
}

// pcmReader encodes a Source as signed 16-bit little-endian PCM for oto.
type pcmReader struct {
	src      audio.Source
	channels int
	buf      []float32
	log      zerolog.Logger

	done    atomic.Bool
	mu      sync.Mutex
	readErr error
}

func newPCMReader(src audio.Source, log zerolog.Logger) *pcmReader {
	return &pcmReader{
		src:      src,
		channels: src.Channels(),
		log:      log,
	}
}

func (r *pcmReader) ended() bool { return r.done.Load() }

func (r *pcmReader) err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readErr
}

func (r *pcmReader) Read(p []byte) (int, error) {
	if r.done.Load() {
		return 0, io.EOF
	}

	samples := len(p) / 2
	samples -= samples % r.channels
	if samples == 0 {
		return 0, nil
	}

	if cap(r.buf) < samples {
		r.buf = make([]float32, samples)
	}
	buf := r.buf[:samples]

	n, err := r.src.ReadSamples(buf)
	for i, v := range buf[:n] {
		binary.LittleEndian.PutUint16(p[2*i:], uint16(utils.Float32ToInt16(v)))
	}

	if err != nil {
		if !errors.Is(err, io.EOF) {
			r.log.Error().Err(err).Msg("stage failed during playback")
			r.mu.Lock()
			r.readErr = err
			r.mu.Unlock()
		}
		r.done.Store(true)
		return 2 * n, io.EOF
	}

	return 2 * n, nil
}
