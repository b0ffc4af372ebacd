// SPDX-License-Identifier: EPL-2.0

package sound

// Pausable yields Paused without pulling its inner stage while paused.
type Pausable struct {
	inner  Stage
	paused bool
}

func NewPausable(inner Stage) *Pausable {
	return &Pausable{inner: inner}
}

func (p *Pausable) Channels() int         { return p.inner.Channels() }
func (p *Pausable) SampleRate() int       { return p.inner.SampleRate() }
func (p *Pausable) OnBatchStart()         { p.inner.OnBatchStart() }
func (p *Pausable) Inner() Stage          { return p.inner }
func (p *Pausable) SetPaused(paused bool) { p.paused = paused }
func (p *Pausable) Paused() bool          { return p.paused }

func (p *Pausable) Next() (Next, error) {
	if p.paused {
		return Paused(), nil
	}
	return p.inner.Next()
}
