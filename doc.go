// SPDX-License-Identifier: EPL-2.0

// Package audiocue plays audio files through a chain of adjustable effects.
//
// A decoded file is turned into a pull-based chain of stages (package sound):
// pause, pan, volume and speed, plus optional completion notification and a
// duration limit. The chain is assembled by package player and pulled by a
// playback engine from package engine, which either plays it on the audio
// device, renders it into a WAV file or collects the samples in memory.
//
// # Supported Formats
//
// Decoding is done by the formats subpackages and picked by file extension
// in formats.Open:
//   - WAV (PCM 16-bit) via formats/wav
//   - AIFF (PCM 16-bit) via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - FLAC via formats/flac
//
// # Quick Start
//
// Play a file on the default device until it ends:
//
//	p, err := player.Open("song.mp3", 1.0, 1.0, sound.Pan{LR: -0.5})
//	if err != nil {
//	    return err
//	}
//
//	out, err := engine.StartOto(engine.OtoOptions{
//	    SampleRate: p.SampleRate(),
//	    Channels:   p.Channels(),
//	})
//	if err != nil {
//	    return err
//	}
//	defer out.Close()
//
//	err = p.PlayBlocking(ctx, out)
//
// Volume, speed, pan and pause can be changed while the file plays, from any
// goroutine:
//
//	p.AdjustVolume(0.5)
//	p.AdjustPan(sound.Pan{LR: 1})
//	p.SetPaused(true)
//
// # Panning
//
// Pan has two axes. LR scales left channels by 1+LR and right channels by
// 1-LR. FB then scales the front channels of a 4 channel file by 1+FB and the
// rear channels by 1-FB. Channel positions by channel count:
//
//	1: center
//	2: left, right
//	3: left, right, center
//	4: left-front, right-front, left-rear, right-rear
//
// Other layouts are rejected when the chain is built.
//
// # Offline Rendering
//
// Render runs a decoded source through the same chain and returns the
// processed 16-bit PCM:
//
//	src, _ := formats.Open("voice.wav")
//	pcm, err := audiocue.Render(ctx, src, 0.8, 1.0, sound.Pan{})
package audiocue
