// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"math"

	"github.com/ik5/audiocue/utils"
)

// AdjustableSpeed plays its inner stage faster or slower by resampling
// frames with cubic interpolation. Sample rate and channel count stay the
// same, so pitch follows speed. At speed 1 samples pass through unchanged.
//
// Markers that arrive while a frame is being loaded are passed through;
// the partial frame is kept and loading resumes on the next pull.
type AdjustableSpeed struct {
	inner    Stage
	speed    float32
	channels int

	// window[1] is the frame at the current position, window[2] the next
	window [4][]float32
	valid  [4]bool
	pos    float64

	// frames to shift into the window before the next output frame
	need    int
	pending []int16
	fill    int
	eof     bool

	// channel of the next output sample
	out int

	done ended
}

// NewAdjustableSpeed wraps inner at the given speed.
func NewAdjustableSpeed(inner Stage, speed float32) (*AdjustableSpeed, error) {
	if !validSpeed(speed) {
		return nil, ErrInvalidSpeed
	}

	channels := inner.Channels()
	s := &AdjustableSpeed{
		inner:    inner,
		speed:    speed,
		channels: channels,
		need:     3,
		pending:  make([]int16, channels),
	}
	for i := range s.window {
		s.window[i] = make([]float32, channels)
	}

	return s, nil
}

func validSpeed(speed float32) bool {
	return speed > 0 && !math.IsInf(float64(speed), 1)
}

func (s *AdjustableSpeed) Channels() int   { return s.channels }
func (s *AdjustableSpeed) SampleRate() int { return s.inner.SampleRate() }
func (s *AdjustableSpeed) OnBatchStart()   { s.inner.OnBatchStart() }
func (s *AdjustableSpeed) Inner() Stage    { return s.inner }
func (s *AdjustableSpeed) Speed() float32  { return s.speed }

// SetSpeed changes the speed from the next output frame on.
func (s *AdjustableSpeed) SetSpeed(speed float32) error {
	if !validSpeed(speed) {
		return ErrInvalidSpeed
	}
	s.speed = speed
	return nil
}

// shift moves the window one frame forward, taking pending as the newest
// frame when ok is set.
func (s *AdjustableSpeed) shift(ok bool) {
	oldest := s.window[0]
	copy(s.window[:], s.window[1:])
	copy(s.valid[:], s.valid[1:])
	s.window[3] = oldest
	s.valid[3] = ok

	if ok {
		for ch, v := range s.pending {
			oldest[ch] = float32(v)
		}
	}
}

// load fills the window. It returns a marker to pass through, or ok once
// the window is ready.
func (s *AdjustableSpeed) load() (Next, bool, error) {
	for s.need > 0 {
		if s.eof && s.need > len(s.window) {
			// the window is empty after this many shifts
			s.need = len(s.window)
		}

		for !s.eof && s.fill < s.channels {
			n, err := s.inner.Next()
			if err != nil {
				return n, false, err
			}

			switch n.Kind {
			case KindSample:
				s.pending[s.fill] = n.Sample
				s.fill++
			case KindFinished:
				// a trailing partial frame is dropped
				s.eof = true
			default:
				return n, false, nil
			}
		}

		s.shift(!s.eof)
		s.fill = 0
		s.need--
	}

	return Next{}, true, nil
}

func (s *AdjustableSpeed) Next() (Next, error) {
	if err := s.done.check(); err != nil {
		return Next{}, err
	}

	if s.out == 0 {
		n, ok, err := s.load()
		if !ok {
			return s.done.mark(n, err)
		}
		if !s.valid[1] {
			return s.done.mark(Finished(), nil)
		}
	}

	v := s.interpolate(s.out)

	s.out++
	if s.out == s.channels {
		s.out = 0
		s.pos += float64(s.speed)
		whole := math.Floor(s.pos)
		s.need = int(min(whole, math.MaxInt32))
		s.pos -= whole
	}

	return Sample(v), nil
}

func (s *AdjustableSpeed) interpolate(ch int) int16 {
	return utils.SaturateInt16(utils.CubicWindow(&s.window, &s.valid, ch, float32(s.pos)))
}
