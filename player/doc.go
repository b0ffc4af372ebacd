// SPDX-License-Identifier: EPL-2.0

// Package player assembles a decoded source into a controllable playback
// chain and hands it to an engine.
//
// The chain is built in a fixed order:
//
//	source -> pause -> pan -> volume -> speed [-> finish after] [-> completion] -> controllable
//
// Pan acts on the decoded samples, so volume and speed work on the panned
// signal. Volume, speed, pan and pause stay adjustable after the chain has
// been handed to an engine.
package player
