// SPDX-License-Identifier: EPL-2.0

// Package sound implements a pull-based chain of audio stages.
//
// A Stage yields one unit at a time: a 16-bit sample, or one of the
// MetadataChanged, Paused and Finished markers. Effects wrap an inner stage
// and transform what it yields, so a chain is built by nesting:
//
//	src := sound.FromSource(decoded)
//	p, err := sound.NewPanned2D(sound.NewPausable(src), sound.Pan{LR: 0.5})
//	v := sound.NewAdjustableVolume(p, 0.8)
//
// Samples are interleaved; the n-th sample of a stream belongs to channel
// n % Channels(). Channel count and sample rate never change for the
// lifetime of a chain.
//
// Controls (pause, volume, speed, pan) are found by walking the chain with
// Find, so they stay reachable however deep the stage implementing them sits.
// Stages are not safe for concurrent use. A chain that is pulled on one
// goroutine and adjusted from another is wrapped in a Controllable and
// adjusted through its Controller.
package sound
