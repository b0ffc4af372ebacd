// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"fmt"

	"github.com/ik5/audiocue/utils"
)

// Pan holds the two pan axes. LR runs from -1 (full left) to +1 (full
// right); FB from -1 (rear) to +1 (front). Zero is centered. Values are not
// clamped, so out of range values over or under attenuate.
type Pan struct {
	LR float32
	FB float32
}

// Position is the speaker position a channel maps to.
type Position uint8

const (
	Center Position = iota
	Left
	Right
	LeftFront
	RightFront
	LeftRear
	RightRear
)

var positionNames = [...]string{
	Center:     "center",
	Left:       "left",
	Right:      "right",
	LeftFront:  "left-front",
	RightFront: "right-front",
	LeftRear:   "left-rear",
	RightRear:  "right-rear",
}

func (p Position) String() string {
	if int(p) < len(positionNames) {
		return positionNames[p]
	}
	return fmt.Sprintf("Position(%d)", uint8(p))
}

// lrGain is the left/right factor applied at p.
func (p Position) lrGain(lr float32) float32 {
	switch p {
	case Left, LeftFront, LeftRear:
		return 1 + lr
	case Right, RightFront, RightRear:
		return 1 - lr
	}
	return 1
}

// fbGain is the front/back factor applied at p.
func (p Position) fbGain(fb float32) float32 {
	switch p {
	case LeftFront, RightFront:
		return 1 + fb
	case LeftRear, RightRear:
		return 1 - fb
	}
	return 1
}

// layouts maps a channel count to the position of each channel.
var layouts = [...][]Position{
	1: {Center},
	2: {Left, Right},
	3: {Left, Right, Center},
	4: {LeftFront, RightFront, LeftRear, RightRear},
}

func layout(channels int) ([]Position, error) {
	if channels < 1 || channels >= len(layouts) {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedLayout, channels)
	}
	return layouts[channels], nil
}

// Classify returns the position of channel (0-based) in a stream with the
// given channel count.
func Classify(channels, channel int) (Position, error) {
	positions, err := layout(channels)
	if err != nil {
		return Center, err
	}
	if channel < 0 || channel >= channels {
		return Center, fmt.Errorf("%w: channel %d of %d", ErrUnsupportedLayout, channel, channels)
	}
	return positions[channel], nil
}

// Panned scales each sample by the pan gain of the channel it belongs to.
//
// The left/right gain is applied first and the result narrowed to int16.
// In two-axis mode the front/back gain is then applied to that already
// panned value and narrowed again; it only affects 4-channel layouts.
// Markers pass through and do not advance the channel counter.
type Panned struct {
	inner     Stage
	pan       Pan
	twoAxis   bool
	positions []Position
	channel   int
}

// NewPanned returns a single-axis pan stage. Only LR is applied; FB set
// through SetPan is remembered but ignored.
func NewPanned(inner Stage, lr float32) (*Panned, error) {
	return newPanned(inner, Pan{LR: lr}, false)
}

// NewPanned2D returns a pan stage applying both axes.
func NewPanned2D(inner Stage, pan Pan) (*Panned, error) {
	return newPanned(inner, pan, true)
}

func newPanned(inner Stage, pan Pan, twoAxis bool) (*Panned, error) {
	positions, err := layout(inner.Channels())
	if err != nil {
		return nil, err
	}

	return &Panned{
		inner:     inner,
		pan:       pan,
		twoAxis:   twoAxis,
		positions: positions,
	}, nil
}

func (p *Panned) Channels() int   { return p.inner.Channels() }
func (p *Panned) SampleRate() int { return p.inner.SampleRate() }
func (p *Panned) OnBatchStart()   { p.inner.OnBatchStart() }
func (p *Panned) Inner() Stage    { return p.inner }
func (p *Panned) SetPan(pan Pan)  { p.pan = pan }
func (p *Panned) Pan() Pan        { return p.pan }
func (p *Panned) TwoAxis() bool   { return p.twoAxis }

func (p *Panned) Next() (Next, error) {
	n, err := p.inner.Next()
	if err != nil || n.Kind != KindSample {
		return n, err
	}

	pos := p.positions[p.channel]
	p.channel++
	if p.channel == len(p.positions) {
		p.channel = 0
	}

	v := utils.ScaleInt16(n.Sample, pos.lrGain(p.pan.LR))
	if p.twoAxis {
		v = utils.ScaleInt16(v, pos.fbGain(p.pan.FB))
	}

	return Sample(v), nil
}
