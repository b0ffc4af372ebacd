// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files using github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo, so the returned source reports two
// channels regardless of the channel mode stored in the file.
//
//	src, err := mp3.Decoder{}.Decode(file)
package mp3
