// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audiocue/audio"
	"github.com/ik5/audiocue/utils"
)

// maxEmptyReads bounds consecutive (0, nil) reads from a source.
const maxEmptyReads = 64

// sourceStage adapts a block-reading audio.Source to a Stage.
type sourceStage struct {
	src audio.Source
	buf []float32
	n   int
	off int
	eof bool

	done ended
}

// FromSource returns a Stage yielding the samples of src converted to
// 16-bit PCM. Closing the stage closes src.
func FromSource(src audio.Source) Stage {
	size := src.BufSize()
	if ch := src.Channels(); ch > 0 {
		size = max(size-size%ch, ch)
	}

	return &sourceStage{
		src: src,
		buf: make([]float32, max(size, 1)),
	}
}

func (s *sourceStage) Channels() int   { return s.src.Channels() }
func (s *sourceStage) SampleRate() int { return s.src.SampleRate() }
func (s *sourceStage) OnBatchStart()   {}
func (s *sourceStage) Close() error    { return s.src.Close() }

func (s *sourceStage) Next() (Next, error) {
	if err := s.done.check(); err != nil {
		return Next{}, err
	}

	empty := 0
	for s.off == s.n {
		if s.eof {
			return s.done.mark(Finished(), nil)
		}

		n, err := s.src.ReadSamples(s.buf)
		s.n, s.off = n, 0

		switch {
		case errors.Is(err, io.EOF):
			s.eof = true
		case err != nil:
			return s.done.mark(Next{}, fmt.Errorf("source read: %w", err))
		case n == 0:
			empty++
			if empty > maxEmptyReads {
				return s.done.mark(Next{}, ErrStalled)
			}
		}
	}

	v := utils.Float32ToInt16(s.buf[s.off])
	s.off++

	return Sample(v), nil
}

// Memory is a Stage over interleaved samples held in memory.
type Memory struct {
	samples    []int16
	channels   int
	sampleRate int
	pos        int

	done ended
}

// NewMemory returns a stage that yields samples and then Finished.
// The slice is not copied.
func NewMemory(sampleRate, channels int, samples []int16) *Memory {
	return &Memory{
		samples:    samples,
		channels:   channels,
		sampleRate: sampleRate,
	}
}

func (m *Memory) Channels() int   { return m.channels }
func (m *Memory) SampleRate() int { return m.sampleRate }
func (m *Memory) OnBatchStart()   {}

func (m *Memory) Next() (Next, error) {
	if err := m.done.check(); err != nil {
		return Next{}, err
	}
	if m.pos >= len(m.samples) {
		return m.done.mark(Finished(), nil)
	}

	v := m.samples[m.pos]
	m.pos++

	return Sample(v), nil
}
