// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC files using github.com/mewkiz/flac.
//
// Frames are decoded one at a time and interleaved, so memory use does not
// depend on the file length. Any bit depth between 4 and 32 is scaled to
// float32 in [-1,1].
//
//	src, err := flac.Decoder{}.Decode(file)
//	defer src.Close()
package flac
