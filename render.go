// SPDX-License-Identifier: EPL-2.0

package audiocue

import (
	"context"
	"fmt"

	"github.com/ik5/audiocue/audio"
	"github.com/ik5/audiocue/engine"
	"github.com/ik5/audiocue/player"
	"github.com/ik5/audiocue/sound"
	"github.com/rs/zerolog"
)

// Render is a convenience function that runs src through a full player
// chain and collects the output as interleaved 16-bit PCM.
//
// The chain is the one built by player.New: pause, pan, volume and speed,
// then any extra options such as player.WithFinishAfter. Sample rate and
// channel count of the result are those of src.
//
// Parameters:
//   - ctx: Cancels rendering
//   - src: The decoded audio to process; it is closed when rendering ends
//   - volume: Volume multiplier, 1.0 is unity
//   - speed: Speed multiplier, 1.0 is unity
//   - pan: Initial pan of both axes
//
// Returns the rendered samples, or the error that stopped rendering. A
// cancelled ctx returns ctx.Err().
//
// Example:
//
//	src, _ := formats.Open("speech.flac")
//	pcm, err := audiocue.Render(ctx, src, 1.0, 1.5, sound.Pan{LR: 0.25})
func Render(ctx context.Context, src audio.Source, volume, speed float32, pan sound.Pan, opts ...player.Option) ([]int16, error) {
	opts = append([]player.Option{player.WithLogger(zerolog.Nop())}, opts...)

	p, err := player.New(volume, speed, pan, sound.FromSource(src), opts...)
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("render: %w", err)
	}

	mem := engine.NewMemory(engine.WithLogger(zerolog.Nop()))
	defer mem.Close()

	if err := p.Play(mem); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if err := mem.Wait(ctx); err != nil {
		return nil, err
	}

	return mem.Samples(), nil
}
