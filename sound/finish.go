// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"math"
	"sync"
	"time"
)

// FinishAfter ends the stream once it has yielded a given duration of
// samples, or earlier when the inner stage finishes.
type FinishAfter struct {
	inner     Stage
	remaining int

	done ended
}

// NewFinishAfter limits inner to d. The limit is rounded to whole frames.
func NewFinishAfter(inner Stage, d time.Duration) *FinishAfter {
	frames := int(math.Round(d.Seconds() * float64(inner.SampleRate())))

	return &FinishAfter{
		inner:     inner,
		remaining: max(frames, 0) * inner.Channels(),
	}
}

func (f *FinishAfter) Channels() int   { return f.inner.Channels() }
func (f *FinishAfter) SampleRate() int { return f.inner.SampleRate() }
func (f *FinishAfter) OnBatchStart()   { f.inner.OnBatchStart() }
func (f *FinishAfter) Inner() Stage    { return f.inner }

func (f *FinishAfter) Next() (Next, error) {
	if err := f.done.check(); err != nil {
		return Next{}, err
	}
	if f.remaining == 0 {
		return f.done.mark(Finished(), nil)
	}

	n, err := f.inner.Next()
	if err == nil && n.Kind == KindSample {
		f.remaining--
	}

	return f.done.mark(n, err)
}

// CompletionNotifier closes its Done channel the first time the stream
// ends, either by Finished or by an error.
type CompletionNotifier struct {
	inner Stage
	ch    chan struct{}
	once  sync.Once
	err   error
}

func NewCompletionNotifier(inner Stage) *CompletionNotifier {
	return &CompletionNotifier{
		inner: inner,
		ch:    make(chan struct{}),
	}
}

func (c *CompletionNotifier) Channels() int   { return c.inner.Channels() }
func (c *CompletionNotifier) SampleRate() int { return c.inner.SampleRate() }
func (c *CompletionNotifier) OnBatchStart()   { c.inner.OnBatchStart() }
func (c *CompletionNotifier) Inner() Stage    { return c.inner }

// Done is closed once the stream has ended.
func (c *CompletionNotifier) Done() <-chan struct{} { return c.ch }

// Err returns the error that ended the stream, if any. It is only
// meaningful after Done is closed.
func (c *CompletionNotifier) Err() error {
	select {
	case <-c.ch:
		return c.err
	default:
		return nil
	}
}

func (c *CompletionNotifier) Next() (Next, error) {
	n, err := c.inner.Next()
	if err != nil || n.Kind == KindFinished {
		c.once.Do(func() {
			c.err = err
			close(c.ch)
		})
	}
	return n, err
}
