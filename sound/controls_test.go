// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPausable(t *testing.T) {
	t.Parallel()

	src := newScripted(1, samples(1, 2)...)
	p := NewPausable(src)

	p.SetPaused(true)
	for range 3 {
		n, err := p.Next()
		require.NoError(t, err)
		assert.Equal(t, Paused(), n)
	}
	assert.Zero(t, src.pulls, "paused stage pulled its source")

	p.SetPaused(false)
	assert.Equal(t, []int16{1, 2}, values(drain(t, p)))
}

func TestAdjustableVolume(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		volume float32
		in     []int16
		want   []int16
	}{
		{name: "unity", volume: 1, in: []int16{1, -1, math.MaxInt16, math.MinInt16}, want: []int16{1, -1, math.MaxInt16, math.MinInt16}},
		{name: "half", volume: 0.5, in: []int16{100, -100, 3}, want: []int16{50, -50, 1}},
		{name: "mute", volume: 0, in: []int16{100, -100}, want: []int16{0, 0}},
		{name: "saturate", volume: 4, in: []int16{10000, -10000}, want: []int16{math.MaxInt16, math.MinInt16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := NewAdjustableVolume(newScripted(1, samples(tt.in...)...), tt.volume)
			assert.Equal(t, tt.want, values(drain(t, v)))
		})
	}
}

func TestAdjustableVolume_PassesMarkers(t *testing.T) {
	t.Parallel()

	v := NewAdjustableVolume(newScripted(1, Paused(), MetadataChanged(), Sample(10), Finished()), 2)
	assert.Equal(t, []Next{Paused(), MetadataChanged(), Sample(20), Finished()}, drain(t, v))
}

func sineFrames(frames, channels int) []int16 {
	out := make([]int16, frames*channels)
	for i := range frames {
		for ch := range channels {
			out[i*channels+ch] = int16(10000 * math.Sin(float64(i)*0.05+float64(ch)))
		}
	}
	return out
}

func TestAdjustableSpeed_UnitySpeedIsExact(t *testing.T) {
	t.Parallel()

	for channels := 1; channels <= 4; channels++ {
		in := sineFrames(257, channels)

		s, err := NewAdjustableSpeed(NewMemory(44100, channels, in), 1)
		require.NoError(t, err)
		assert.Equal(t, in, values(drain(t, s)), "channels=%d", channels)
	}
}

func TestAdjustableSpeed_Double(t *testing.T) {
	t.Parallel()

	in := []int16{0, 0, 1, 10, 2, 20, 3, 30, 4, 40, 5, 50, 6, 60, 7, 70, 8, 80, 9, 90}

	s, err := NewAdjustableSpeed(NewMemory(8000, 2, in), 2)
	require.NoError(t, err)

	// every other frame, at whole positions
	assert.Equal(t, []int16{0, 0, 2, 20, 4, 40, 6, 60, 8, 80}, values(drain(t, s)))
	assert.Equal(t, 8000, s.SampleRate())
}

func TestAdjustableSpeed_HugeSpeedFinishes(t *testing.T) {
	t.Parallel()

	s, err := NewAdjustableSpeed(NewMemory(8000, 1, []int16{1, 2, 3, 4}), 1e30)
	require.NoError(t, err)
	assert.Equal(t, []int16{1}, values(drain(t, s)))

	s, err = NewAdjustableSpeed(NewMemory(8000, 2, []int16{1, 10, 2, 20, 3, 30}), 1)
	require.NoError(t, err)

	first := []int16{}
	for range 2 {
		n, err := s.Next()
		require.NoError(t, err)
		first = append(first, n.Sample)
	}
	assert.Equal(t, []int16{1, 10}, first)

	// the new speed applies after the frame already scheduled
	require.NoError(t, s.SetSpeed(math.MaxFloat32))
	assert.Equal(t, []int16{2, 20}, values(drain(t, s)))
}

func TestAdjustableSpeed_Half(t *testing.T) {
	t.Parallel()

	s, err := NewAdjustableSpeed(NewMemory(8000, 1, []int16{0, 100, 200, 300}), 0.5)
	require.NoError(t, err)

	out := values(drain(t, s))
	require.Len(t, out, 8)

	assert.Equal(t, []int16{0, 100, 200, 300}, []int16{out[0], out[2], out[4], out[6]})
	// linear data interpolates linearly between interior frames
	assert.Equal(t, int16(150), out[3])
}

func TestAdjustableSpeed_ShortInput(t *testing.T) {
	t.Parallel()

	empty, err := NewAdjustableSpeed(NewMemory(8000, 2, nil), 1.5)
	require.NoError(t, err)
	assert.Equal(t, []Next{Finished()}, drain(t, empty))

	one, err := NewAdjustableSpeed(NewMemory(8000, 2, []int16{7, 8}), 1)
	require.NoError(t, err)
	assert.Equal(t, []int16{7, 8}, values(drain(t, one)))

	// trailing partial frame is dropped
	partial, err := NewAdjustableSpeed(NewMemory(8000, 2, []int16{7, 8, 9}), 1)
	require.NoError(t, err)
	assert.Equal(t, []int16{7, 8}, values(drain(t, partial)))
}

func TestAdjustableSpeed_MarkersMidFrame(t *testing.T) {
	t.Parallel()

	src := newScripted(2, Sample(1), Paused(), Sample(2), MetadataChanged(), Sample(3), Sample(4), Finished())
	s, err := NewAdjustableSpeed(src, 1)
	require.NoError(t, err)

	want := []Next{Paused(), MetadataChanged(), Sample(1), Sample(2), Sample(3), Sample(4), Finished()}
	assert.Equal(t, want, drain(t, s))
}

func TestAdjustableSpeed_Errors(t *testing.T) {
	t.Parallel()

	for _, speed := range []float32{0, -1, float32(math.NaN()), float32(math.Inf(1))} {
		_, err := NewAdjustableSpeed(newScripted(1), speed)
		assert.ErrorIs(t, err, ErrInvalidSpeed, "speed=%v", speed)
	}

	s, err := NewAdjustableSpeed(newScripted(1), 1)
	require.NoError(t, err)
	assert.ErrorIs(t, s.SetSpeed(-2), ErrInvalidSpeed)
	assert.Equal(t, float32(1), s.Speed())

	boom := errors.New("read failed")
	s, err = NewAdjustableSpeed(newScripted(1, samples(1, 2, 3)...).failAt(1, boom), 1)
	require.NoError(t, err)

	_, err = s.Next()
	assert.Same(t, boom, err)

	_, err = s.Next()
	assert.ErrorIs(t, err, ErrContractViolation)
}

func TestAdjustableSpeed_AfterFinished(t *testing.T) {
	t.Parallel()

	src := newScripted(1, samples(1)...)
	s, err := NewAdjustableSpeed(src, 1)
	require.NoError(t, err)

	drain(t, s)
	pulls := src.pulls

	_, err = s.Next()
	assert.ErrorIs(t, err, ErrContractViolation)
	assert.Equal(t, pulls, src.pulls, "inner pulled after Finished")
}

func TestFinishAfter(t *testing.T) {
	t.Parallel()

	in := make([]int16, 2*100)
	for i := range in {
		in[i] = int16(i)
	}

	// 10ms at 1kHz stereo is 10 frames
	f := NewFinishAfter(NewMemory(1000, 2, in), 10*time.Millisecond)
	assert.Equal(t, in[:20], values(drain(t, f)))

	_, err := f.Next()
	assert.ErrorIs(t, err, ErrContractViolation)

	// a shorter inner stage ends first
	short := NewFinishAfter(NewMemory(1000, 1, []int16{1, 2}), time.Second)
	assert.Equal(t, []int16{1, 2}, values(drain(t, short)))

	zero := NewFinishAfter(NewMemory(1000, 1, []int16{1, 2}), 0)
	assert.Equal(t, []Next{Finished()}, drain(t, zero))
}

func TestFinishAfter_MarkersDoNotCount(t *testing.T) {
	t.Parallel()

	src := newScripted(1, Paused(), Sample(1), MetadataChanged(), Sample(2), Sample(3), Finished())
	src.sampleRate = 1000

	f := NewFinishAfter(src, 2*time.Millisecond)
	assert.Equal(t, []Next{Paused(), Sample(1), MetadataChanged(), Sample(2), Finished()}, drain(t, f))
}

func TestCompletionNotifier(t *testing.T) {
	t.Parallel()

	c := NewCompletionNotifier(NewMemory(8000, 1, []int16{1, 2}))

	select {
	case <-c.Done():
		t.Fatal("Done closed before the stream ended")
	default:
	}

	drain(t, c)

	select {
	case <-c.Done():
	default:
		t.Fatal("Done not closed after Finished")
	}
	assert.NoError(t, c.Err())
}

func TestCompletionNotifier_FiresOnce(t *testing.T) {
	t.Parallel()

	c := NewCompletionNotifier(newScripted(1, Finished(), Finished()))

	for range 2 {
		n, err := c.Next()
		require.NoError(t, err)
		assert.Equal(t, Finished(), n)
	}

	// a second close would have panicked
	<-c.Done()
}

func TestCompletionNotifier_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("device gone")
	c := NewCompletionNotifier(newScripted(1, samples(1)...).failAt(0, boom))

	assert.NoError(t, c.Err())

	_, err := c.Next()
	require.ErrorIs(t, err, boom)

	<-c.Done()
	assert.ErrorIs(t, c.Err(), boom)
}
