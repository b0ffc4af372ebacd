// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds settings shared by every engine.
type Config struct {
	Logger zerolog.Logger
	// PauseBackoff is how long an engine waits before pulling a paused
	// stage again.
	PauseBackoff time.Duration
	// BlockSize is the number of samples pulled per batch.
	BlockSize int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the settings used when no option is given.
func DefaultConfig() Config {
	return Config{
		Logger:       log.Logger,
		PauseBackoff: 10 * time.Millisecond,
		BlockSize:    4096,
	}
}

// WithLogger sets the logger engines report to.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// WithPauseBackoff sets the wait between pulls of a paused stage.
func WithPauseBackoff(d time.Duration) Option {
	return func(cfg *Config) {
		if d > 0 {
			cfg.PauseBackoff = d
		}
	}
}

// WithBlockSize sets the batch size in samples.
func WithBlockSize(samples int) Option {
	return func(cfg *Config) {
		if samples > 0 {
			cfg.BlockSize = samples
		}
	}
}

func applyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
