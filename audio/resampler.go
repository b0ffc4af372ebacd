// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audiocue/utils"
)

// maxEmptyReads bounds how many (0, nil) reads are tolerated while a frame
// is being assembled.
const maxEmptyReads = 64

// Resampler streams from src to a target sample rate using cubic
// interpolation. Works on interleaved samples; preserves channel count.
// When downsampling a one-pole low-pass filter runs over the input frames.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames consumed per output frame
	channels int

	// window[0] = t-1, window[1] = t0, window[2] = t+1, window[3] = t+2
	window [4][]float32
	valid  [4]bool
	primed bool
	eof    bool

	// fractional position between window[1] and window[2]
	pos float64

	lowPass bool
	alpha   float32
	state   []float32
	warm    bool
}

// NewResampler wraps src so that it reads at dstRate.
func NewResampler(src Source, dstRate int) (*Resampler, error) {
	if dstRate <= 0 || src.SampleRate() <= 0 {
		return nil, ErrInvalidRate
	}

	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		lowPass:  step > 1.0,
		alpha:    float32(1.0 / step),
		state:    make([]float32, channels),
	}

	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r, nil
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("resampler close: %w", err)
	}

	return nil
}

// readFrame fills dst with exactly one frame. It reports false when the
// source ended before a whole frame was available.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	filled, empty := 0, 0
	for filled < len(dst) {
		n, err := r.src.ReadSamples(dst[filled:])
		filled += n

		if err == io.EOF {
			r.eof = true
			return filled == len(dst), nil
		}
		if err != nil {
			return false, fmt.Errorf("resampler read: %w", err)
		}

		if n == 0 {
			empty++
			if empty > maxEmptyReads {
				return false, io.ErrNoProgress
			}
		}
	}

	return true, nil
}

// advance shifts the window by one frame and loads the next source frame
// into the last slot.
func (r *Resampler) advance() error {
	last := r.window[0]
	copy(r.window[:], r.window[1:])
	copy(r.valid[:], r.valid[1:])
	r.window[3] = last
	r.valid[3] = false

	if r.eof {
		return nil
	}

	ok, err := r.readFrame(r.window[3])
	if err != nil || !ok {
		return err
	}
	r.valid[3] = true

	if r.lowPass {
		frame := r.window[3]
		if !r.warm {
			// seed with the first frame to avoid a fade-in transient
			copy(r.state, frame)
			r.warm = true
		}
		for c := range frame {
			frame[c] = r.alpha*frame[c] + (1-r.alpha)*r.state[c]
			r.state[c] = frame[c]
		}
	}

	return nil
}

// ReadSamples produces dst samples at the target rate.
// dst length must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		r.primed = true
		for range 3 {
			if err := r.advance(); err != nil {
				return 0, err
			}
		}
	}

	written := 0
	for written < len(dst) {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written, err
			}
		}

		if !r.valid[1] {
			return written, io.EOF
		}

		x := float32(r.pos)
		for c := range r.channels {
			dst[written+c] = utils.CubicWindow(&r.window, &r.valid, c, x)
		}

		written += r.channels
		r.pos += r.step
	}

	return written, nil
}
