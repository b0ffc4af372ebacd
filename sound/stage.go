// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"fmt"
	"io"
)

// Kind tells what a pulled unit carries.
type Kind uint8

const (
	KindSample Kind = iota
	KindMetadataChanged
	KindPaused
	KindFinished
)

func (k Kind) String() string {
	switch k {
	case KindSample:
		return "sample"
	case KindMetadataChanged:
		return "metadata-changed"
	case KindPaused:
		return "paused"
	case KindFinished:
		return "finished"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Next is one unit pulled from a Stage. Sample is only meaningful when
// Kind is KindSample.
type Next struct {
	Kind   Kind
	Sample int16
}

func Sample(v int16) Next     { return Next{Kind: KindSample, Sample: v} }
func MetadataChanged() Next   { return Next{Kind: KindMetadataChanged} }
func Paused() Next            { return Next{Kind: KindPaused} }
func Finished() Next          { return Next{Kind: KindFinished} }
func (n Next) IsSample() bool { return n.Kind == KindSample }

func (n Next) String() string {
	if n.Kind == KindSample {
		return fmt.Sprintf("sample(%d)", n.Sample)
	}
	return n.Kind.String()
}

// Stage produces interleaved 16-bit samples one unit at a time.
//
// Channels and SampleRate are positive and constant. Next is never called
// concurrently. After Next returns Finished or a non-nil error the stage
// must not be pulled again; stages in this package answer such a pull with
// ErrContractViolation.
//
// OnBatchStart is called before a burst of Next calls. Wrappers forward it
// to their inner stage.
type Stage interface {
	Channels() int
	SampleRate() int
	Next() (Next, error)
	OnBatchStart()
}

// Wrapper is implemented by stages that wrap exactly one inner stage.
type Wrapper interface {
	Inner() Stage
}

// PauseControl is implemented by stages that can be paused.
type PauseControl interface {
	SetPaused(paused bool)
	Paused() bool
}

// VolumeControl is implemented by stages that scale amplitude.
type VolumeControl interface {
	SetVolume(volume float32)
	Volume() float32
}

// SpeedControl is implemented by stages that change playback speed.
type SpeedControl interface {
	SetSpeed(speed float32) error
	Speed() float32
}

// PanControl is implemented by stages that pan between channels.
type PanControl interface {
	SetPan(pan Pan)
	Pan() Pan
}

// Find returns the outermost stage in the chain starting at s that
// implements T.
func Find[T any](s Stage) (T, bool) {
	for s != nil {
		if c, ok := s.(T); ok {
			return c, true
		}

		w, ok := s.(Wrapper)
		if !ok {
			break
		}
		s = w.Inner()
	}

	var zero T
	return zero, false
}

func SetPaused(s Stage, paused bool) error {
	c, ok := Find[PauseControl](s)
	if !ok {
		return fmt.Errorf("pause: %w", ErrNoControl)
	}
	c.SetPaused(paused)
	return nil
}

func SetVolume(s Stage, volume float32) error {
	c, ok := Find[VolumeControl](s)
	if !ok {
		return fmt.Errorf("volume: %w", ErrNoControl)
	}
	c.SetVolume(volume)
	return nil
}

func SetSpeed(s Stage, speed float32) error {
	c, ok := Find[SpeedControl](s)
	if !ok {
		return fmt.Errorf("speed: %w", ErrNoControl)
	}
	return c.SetSpeed(speed)
}

func SetPan(s Stage, pan Pan) error {
	c, ok := Find[PanControl](s)
	if !ok {
		return fmt.Errorf("pan: %w", ErrNoControl)
	}
	c.SetPan(pan)
	return nil
}

// Close closes the first stage in the chain that implements io.Closer,
// usually the source at the bottom. It is a no-op when there is none.
func Close(s Stage) error {
	c, ok := Find[io.Closer](s)
	if !ok {
		return nil
	}
	return c.Close()
}

// ended is embedded by stages that guard against being pulled after they
// finished or failed.
type ended bool

func (e *ended) check() error {
	if *e {
		return ErrContractViolation
	}
	return nil
}

// mark records the end of the stream when n or err terminates it and
// returns them unchanged.
func (e *ended) mark(n Next, err error) (Next, error) {
	if err != nil || n.Kind == KindFinished {
		*e = true
	}
	return n, err
}
