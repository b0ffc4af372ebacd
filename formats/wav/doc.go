// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes 16-bit PCM WAV files using
// github.com/go-audio/wav.
//
// Decoding accepts any channel count and sample rate. Input that cannot
// seek is buffered in memory first.
//
//	src, err := wav.Decoder{}.Decode(file)
//
// Writing streams samples and patches the header on Close, so the
// destination must be an io.WriteSeeker (an *os.File in practice):
//
//	w := wav.NewWriter(file, 44100, 2)
//	_ = w.WriteInt16(samples)
//	_ = w.Close()
package wav
