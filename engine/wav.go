// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"errors"
	"io"
	"sync/atomic"

	"github.com/ik5/audiocue/formats/wav"
	"github.com/ik5/audiocue/sound"
	"github.com/rs/zerolog"
)

// WAV is an engine rendering a single stage into a 16-bit PCM WAV file in
// the stage's own format.
type WAV struct {
	w   io.WriteSeeker
	cfg Config
	run *runner
	log zerolog.Logger

	used atomic.Bool
}

// NewWAV returns an engine writing to w. The WAV header is finalized when
// the stage ends, so w must support seeking back to its start.
func NewWAV(w io.WriteSeeker, opts ...Option) *WAV {
	cfg := applyOptions(opts...)

	return &WAV{
		w:   w,
		cfg: cfg,
		run: newRunner(),
		log: cfg.Logger.With().Str("engine", "wav").Logger(),
	}
}

// Play starts rendering s. A WAV file holds one stream, so any further
// call returns ErrBusy.
func (e *WAV) Play(s sound.Stage) error {
	if !e.used.CompareAndSwap(false, true) {
		return ErrBusy
	}

	return e.run.start(func(ctx context.Context) error {
		out := wav.NewWriter(e.w, s.SampleRate(), s.Channels())
		e.log.Debug().Int("channels", s.Channels()).Int("rate", s.SampleRate()).Msg("rendering")

		written := 0
		err := pump(ctx, s, e.cfg, func(block []int16) error {
			written += len(block)
			return out.WriteInt16(block)
		})
		err = errors.Join(err, out.Close(), sound.Close(s))

		e.log.Debug().Err(err).Int("samples", written).Msg("render done")

		return err
	})
}

// Wait blocks until rendering ends.
func (e *WAV) Wait(ctx context.Context) error {
	return e.run.wait(ctx)
}

// Close stops rendering. The output is finalized with whatever was written.
func (e *WAV) Close() error {
	return e.run.close()
}
