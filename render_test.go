// SPDX-License-Identifier: EPL-2.0

package audiocue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ik5/audiocue/internal/audiotest"
	"github.com/ik5/audiocue/player"
	"github.com/ik5/audiocue/sound"
)

func TestRender_Identity(t *testing.T) {
	t.Parallel()

	pcm := []int16{0, 1, -1, 32767, -32768, 1000, -1000, 12}
	src := audiotest.NewPCMSource(44100, 2, pcm)

	got, err := Render(context.Background(), src, 1, 1, sound.Pan{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if len(got) != len(pcm) {
		t.Fatalf("Render() returned %d samples, want %d", len(got), len(pcm))
	}
	for i := range pcm {
		if got[i] != pcm[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], pcm[i])
		}
	}

	if !src.Closed() {
		t.Error("source not closed after Render()")
	}
}

func TestRender_Settings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		volume float32
		speed  float32
		pan    sound.Pan
		in     []int16
		ch     int
		want   []int16
	}{
		{name: "volume", volume: 0.5, speed: 1, in: []int16{100, -100}, ch: 1, want: []int16{50, -50}},
		{name: "pan right", volume: 1, speed: 1, pan: sound.Pan{LR: 1}, in: []int16{100, 100}, ch: 2, want: []int16{200, 0}},
		{name: "rear", volume: 1, speed: 1, pan: sound.Pan{FB: -1}, in: []int16{100, 100, 100, 100}, ch: 4, want: []int16{0, 0, 200, 200}},
		{name: "double speed", volume: 1, speed: 2, in: []int16{1, 2, 3, 4, 5, 6}, ch: 1, want: []int16{1, 3, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Render(context.Background(), audiotest.NewPCMSource(8000, tt.ch, tt.in), tt.volume, tt.speed, tt.pan)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Render() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Render() = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestRender_FinishAfter(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(1000, 1, 1000, 0.5)

	got, err := Render(context.Background(), src, 1, 1, sound.Pan{}, player.WithFinishAfter(250*time.Millisecond))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(got) != 250 {
		t.Errorf("Render() returned %d samples, want 250", len(got))
	}
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	six := audiotest.NewSilentSource(8000, 6, 10)
	if _, err := Render(context.Background(), six, 1, 1, sound.Pan{}); !errors.Is(err, sound.ErrUnsupportedLayout) {
		t.Errorf("Render() error = %v, want ErrUnsupportedLayout", err)
	}
	if !six.Closed() {
		t.Error("source not closed after a failed Render()")
	}

	boom := errors.New("truncated")
	broken := audiotest.NewPCMSource(8000, 1, []int16{1, 2, 3}).FailAfter(1, boom)
	if _, err := Render(context.Background(), broken, 1, 1, sound.Pan{}); !errors.Is(err, boom) {
		t.Errorf("Render() error = %v, want %v", err, boom)
	}
}

func TestRender_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// long enough that rendering cannot finish before Wait sees ctx
	src := audiotest.NewSineSource(48000, 2, 48000*600, 440)
	if _, err := Render(ctx, src, 1, 1, sound.Pan{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
}

func BenchmarkRender(b *testing.B) {
	for b.Loop() {
		src := audiotest.NewSineSource(44100, 2, 44100, 440)
		if _, err := Render(context.Background(), src, 0.8, 1.25, sound.Pan{LR: 0.3}); err != nil {
			b.Fatal(err)
		}
	}
}
