// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Writer streams interleaved 16-bit PCM into a WAV file. The header is
// finalized by Close, which needs to seek back to the start of w.
type Writer struct {
	enc    *wav.Encoder
	buf    *goaudio.IntBuffer
	wrote  bool
	closed bool
}

// NewWriter starts a 16-bit PCM WAV stream on w.
func NewWriter(w io.WriteSeeker, sampleRate, channels int) *Writer {
	format := &goaudio.Format{NumChannels: channels, SampleRate: sampleRate}

	return &Writer{
		enc: wav.NewEncoder(w, sampleRate, 16, channels, formatPCM),
		buf: &goaudio.IntBuffer{Format: format, SourceBitDepth: 16},
	}
}

// WriteInt16 appends samples to the stream.
func (w *Writer) WriteInt16(samples []int16) error {
	if w.closed {
		return ErrWriterClosed
	}
	if len(samples) == 0 {
		return nil
	}

	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]
	for i, s := range samples {
		w.buf.Data[i] = int(s)
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("wav write: %w", err)
	}
	w.wrote = true

	return nil
}

// Close writes the final chunk sizes. It does not close the underlying
// writer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if !w.wrote {
		// an empty stream still needs its header
		w.buf.Data = w.buf.Data[:0]
		if err := w.enc.Write(w.buf); err != nil {
			return fmt.Errorf("wav write: %w", err)
		}
	}

	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("wav close: %w", err)
	}

	return nil
}

// WriteWAV16 writes a complete 16-bit PCM WAV file holding samples.
func WriteWAV16(w io.WriteSeeker, sampleRate, channels int, samples []int16) error {
	wr := NewWriter(w, sampleRate, channels)
	if err := wr.WriteInt16(samples); err != nil {
		return err
	}

	return wr.Close()
}
