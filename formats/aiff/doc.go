// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes 16-bit PCM AIFF files using github.com/go-audio/aiff.
//
//	src, err := aiff.Decoder{}.Decode(file)
//
// go-audio needs to seek, so input that is not an io.ReadSeeker is read
// into memory before decoding.
package aiff
