// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/ik5/audiocue/sound"
	"github.com/rs/zerolog"
)

// Memory is an engine that collects the samples of the stages it plays.
// Stages are played one after another; their samples are appended.
type Memory struct {
	cfg Config
	run *runner
	log zerolog.Logger

	mu         sync.Mutex
	samples    []int16
	channels   int
	sampleRate int
}

func NewMemory(opts ...Option) *Memory {
	cfg := applyOptions(opts...)

	return &Memory{
		cfg: cfg,
		run: newRunner(),
		log: cfg.Logger.With().Str("engine", "memory").Logger(),
	}
}

// Play starts pulling s. It returns ErrBusy while a previous stage is
// still playing.
func (m *Memory) Play(s sound.Stage) error {
	return m.run.start(func(ctx context.Context) error {
		m.mu.Lock()
		m.channels, m.sampleRate = s.Channels(), s.SampleRate()
		m.mu.Unlock()

		m.log.Debug().Int("channels", s.Channels()).Int("rate", s.SampleRate()).Msg("stage started")

		err := pump(ctx, s, m.cfg, func(block []int16) error {
			m.mu.Lock()
			m.samples = append(m.samples, block...)
			m.mu.Unlock()
			return nil
		})
		err = errors.Join(err, sound.Close(s))

		if err != nil {
			m.log.Warn().Err(err).Msg("stage ended with error")
		} else {
			m.log.Debug().Msg("stage finished")
		}

		return err
	})
}

// Wait blocks until the current stage ends and returns the error it ended
// with.
func (m *Memory) Wait(ctx context.Context) error {
	return m.run.wait(ctx)
}

// Samples returns a copy of everything collected so far.
func (m *Memory) Samples() []int16 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.samples)
}

// Format returns the channel count and sample rate of the last stage.
func (m *Memory) Format() (channels, sampleRate int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.channels, m.sampleRate
}

// Close stops the running stage.
func (m *Memory) Close() error {
	return m.run.close()
}
