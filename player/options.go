// SPDX-License-Identifier: EPL-2.0

package player

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type options struct {
	singleAxis  bool
	finishAfter time.Duration
	completion  bool
	logger      zerolog.Logger
}

// Option configures a Player.
type Option func(*options)

func defaultOptions() options {
	return options{
		completion: true,
		logger:     log.Logger,
	}
}

// WithSingleAxisPan pans left/right only; the FB part of the pan is ignored.
func WithSingleAxisPan() Option {
	return func(o *options) {
		o.singleAxis = true
	}
}

// WithFinishAfter ends playback after d even if the source is longer.
func WithFinishAfter(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.finishAfter = d
		}
	}
}

// WithoutCompletion leaves out the completion notifier. Such a player can
// only be played fire-and-forget.
func WithoutCompletion() Option {
	return func(o *options) {
		o.completion = false
	}
}

// WithLogger sets the logger. The default is the global zerolog logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
