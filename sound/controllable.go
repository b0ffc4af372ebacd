// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"fmt"
	"sync"
)

// Controllable guards a chain with a mutex so it can be pulled on one
// goroutine and adjusted through its Controller on others.
//
// It does not implement Wrapper, so controls inside the chain are only
// reachable through the lock.
type Controllable struct {
	mu         sync.Mutex
	inner      Stage
	channels   int
	sampleRate int
}

func NewControllable(inner Stage) *Controllable {
	return &Controllable{
		inner:      inner,
		channels:   inner.Channels(),
		sampleRate: inner.SampleRate(),
	}
}

func (c *Controllable) Channels() int   { return c.channels }
func (c *Controllable) SampleRate() int { return c.sampleRate }

func (c *Controllable) Next() (Next, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.inner.Next()
}

func (c *Controllable) OnBatchStart() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inner.OnBatchStart()
}

// Close closes the chain's source.
func (c *Controllable) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Close(c.inner)
}

// Controller returns a handle adjusting the chain.
func (c *Controllable) Controller() *Controller {
	return &Controller{c: c}
}

// Controller adjusts a running chain. All methods are safe for concurrent
// use with each other and with pulls on the Controllable.
type Controller struct {
	c *Controllable
}

func (c *Controller) with(fn func(Stage) error) error {
	c.c.mu.Lock()
	defer c.c.mu.Unlock()

	return fn(c.c.inner)
}

func (c *Controller) SetPaused(paused bool) error {
	return c.with(func(s Stage) error { return SetPaused(s, paused) })
}

func (c *Controller) SetVolume(volume float32) error {
	return c.with(func(s Stage) error { return SetVolume(s, volume) })
}

func (c *Controller) SetSpeed(speed float32) error {
	return c.with(func(s Stage) error { return SetSpeed(s, speed) })
}

func (c *Controller) SetPan(pan Pan) error {
	return c.with(func(s Stage) error { return SetPan(s, pan) })
}

// get reads a control value under the chain lock.
func get[C, V any](c *Controller, name string, fn func(C) V) (V, error) {
	var v V
	err := c.with(func(s Stage) error {
		ctl, ok := Find[C](s)
		if !ok {
			return fmt.Errorf("%s: %w", name, ErrNoControl)
		}
		v = fn(ctl)
		return nil
	})
	return v, err
}

func (c *Controller) Paused() (bool, error) {
	return get(c, "pause", PauseControl.Paused)
}

func (c *Controller) Volume() (float32, error) {
	return get(c, "volume", VolumeControl.Volume)
}

func (c *Controller) Speed() (float32, error) {
	return get(c, "speed", SpeedControl.Speed)
}

func (c *Controller) Pan() (Pan, error) {
	return get(c, "pan", PanControl.Pan)
}
