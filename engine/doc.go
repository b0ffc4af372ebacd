// SPDX-License-Identifier: EPL-2.0

// Package engine contains playback engines: things that take a finished
// sound.Stage and pull it to completion on their own goroutines.
//
// Oto plays to the default audio device, WAV renders into a 16-bit PCM WAV
// file and Memory collects the samples in a slice.
package engine
