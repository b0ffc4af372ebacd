// SPDX-License-Identifier: EPL-2.0

// Package formats opens audio files by extension using the decoders under
// formats/.
package formats

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audiocue/audio"
	"github.com/ik5/audiocue/formats/aiff"
	"github.com/ik5/audiocue/formats/flac"
	"github.com/ik5/audiocue/formats/mp3"
	"github.com/ik5/audiocue/formats/vorbis"
	"github.com/ik5/audiocue/formats/wav"
)

// ErrUnsupportedFormat is returned for extensions with no registered decoder.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// DecodeError reports a file that could not be opened or decoded.
type DecodeError struct {
	Path   string
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("decode %s (%s): %v", e.Path, e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// NewRegistry returns a registry with every built-in decoder.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("flac", flac.Decoder{})

	return reg
}

var defaultRegistry = NewRegistry()

// Default returns the registry used by Open.
func Default() *audio.Registry { return defaultRegistry }

// fileSource owns the file a decoded Source reads from.
type fileSource struct {
	audio.Source
	f *os.File
}

func (s *fileSource) Close() error {
	err := s.Source.Close()

	// some decoders close the reader themselves
	if ferr := s.f.Close(); ferr != nil && !errors.Is(ferr, os.ErrClosed) {
		err = errors.Join(err, ferr)
	}

	return err
}

// Open decodes the file at path with the default registry, choosing the
// decoder by extension. The returned Source closes the file.
func Open(path string) (audio.Source, error) {
	return OpenWith(defaultRegistry, path)
}

// OpenWith is Open with a caller supplied registry.
func OpenWith(reg *audio.Registry, path string) (audio.Source, error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	dec, ok := reg.Get(format)
	if !ok {
		return nil, &DecodeError{Path: path, Format: format, Err: ErrUnsupportedFormat}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Format: format, Err: err}
	}

	src, err := dec.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, &DecodeError{Path: path, Format: format, Err: err}
	}

	return &fileSource{Source: src, f: f}, nil
}

// Decode decodes r with the decoder registered for format.
func Decode(format string, r io.Reader) (audio.Source, error) {
	dec, ok := defaultRegistry.Get(format)
	if !ok {
		return nil, &DecodeError{Format: format, Err: ErrUnsupportedFormat}
	}

	src, err := dec.Decode(r)
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}

	return src, nil
}
