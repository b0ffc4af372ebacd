// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"io"

	"github.com/ik5/audiocue/audio"
	"github.com/ik5/audiocue/utils"
)

// Read pulls samples from s into dst until it is full. It returns
// ErrPaused when the chain reports Paused and io.EOF once it finished;
// samples read before that are counted in n. MetadataChanged is skipped.
func Read(s Stage, dst []int16) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	s.OnBatchStart()

	i := 0
	for i < len(dst) {
		n, err := s.Next()
		if err != nil {
			return i, err
		}

		switch n.Kind {
		case KindSample:
			dst[i] = n.Sample
			i++
		case KindPaused:
			return i, ErrPaused
		case KindFinished:
			return i, io.EOF
		}
	}

	return i, nil
}

// stageSource adapts a Stage to audio.Source for block based consumers.
type stageSource struct {
	s    Stage
	pad  int
	done bool
	err  error
}

// ToSource returns an audio.Source reading s. While s is paused the source
// yields silence so a device keeps running; the silence always adds up to
// whole frames, carried over into the next read when dst is shorter than
// a frame. Closing it closes the chain.
func ToSource(s Stage) audio.Source {
	return &stageSource{s: s}
}

func (r *stageSource) SampleRate() int { return r.s.SampleRate() }
func (r *stageSource) Channels() int   { return r.s.Channels() }
func (r *stageSource) Close() error    { return Close(r.s) }

func (r *stageSource) BufSize() int {
	ch := r.s.Channels()
	return 4096 - 4096%ch
}

func (r *stageSource) ReadSamples(dst []float32) (int, error) {
	if r.done {
		return 0, r.err
	}
	if len(dst) == 0 {
		return 0, nil
	}

	ch := r.s.Channels()

	// silence owed from a frame split across reads
	i := min(r.pad, len(dst))
	clear(dst[:i])
	r.pad -= i

	r.s.OnBatchStart()

	for i < len(dst) {
		n, err := r.s.Next()
		if err != nil {
			r.done, r.err = true, err
			return i, err
		}

		switch n.Kind {
		case KindSample:
			dst[i] = utils.Int16ToFloat32(n.Sample)
			i++
		case KindPaused:
			// whole frames keep the channel order intact
			room := len(dst) - i
			silence := room / ch * ch
			if silence == 0 {
				silence, r.pad = room, ch-room
			}
			clear(dst[i : i+silence])
			return i + silence, nil
		case KindFinished:
			r.done, r.err = true, io.EOF
			return i, io.EOF
		}
	}

	return i, nil
}
