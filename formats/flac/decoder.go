// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audiocue/audio"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

var (
	ErrNoChannels          = errors.New("FLAC stream has no channels")
	ErrUnsupportedBitDepth = errors.New("unsupported FLAC bit depth")
)

// frameReader is an interface for flac.Stream to allow testing
type frameReader interface {
	ParseNext() (*frame.Frame, error)
}

type source struct {
	dec        frameReader
	closer     io.Closer
	sampleRate int
	channels   int
	scale      float32

	// interleaved samples of the current frame not yet returned
	pending []float32
	off     int
	done    bool
}

func newSource(dec frameReader, sampleRate, channels, bitDepth int) *source {
	return &source{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		scale:      1 / float32(int64(1)<<(bitDepth-1)),
	}
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 }

func (s *source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// fill decodes the next frame into pending.
func (s *source) fill() error {
	f, err := s.dec.ParseNext()
	if err != nil {
		return err
	}

	size := int(f.BlockSize) * s.channels
	if cap(s.pending) < size {
		s.pending = make([]float32, size)
	}
	s.pending = s.pending[:size]
	s.off = 0

	for i := range int(f.BlockSize) {
		for ch := range s.channels {
			s.pending[i*s.channels+ch] = float32(f.Subframes[ch].Samples[i]) * s.scale
		}
	}

	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	n := 0
	for n < len(dst) {
		if s.off == len(s.pending) {
			if s.done {
				break
			}
			if err := s.fill(); err != nil {
				if err == io.EOF {
					s.done = true
					continue
				}
				return n, fmt.Errorf("flac read: %w", err)
			}
		}

		c := copy(dst[n:], s.pending[s.off:])
		s.off += c
		n += c
	}

	if s.done && s.off == len(s.pending) {
		return n, io.EOF
	}

	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("flac decode: %w", err)
	}

	info := stream.Info
	if info.NChannels == 0 {
		return nil, ErrNoChannels
	}
	if info.BitsPerSample < 4 || info.BitsPerSample > 32 {
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, info.BitsPerSample)
	}

	src := newSource(stream, int(info.SampleRate), int(info.NChannels), int(info.BitsPerSample))
	src.closer = stream

	return src, nil
}
