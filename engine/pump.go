// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/ik5/audiocue/sound"
)

// pump pulls s until it finishes, fails or ctx is cancelled, handing every
// batch of samples to sink. Paused stages are polled every backoff.
func pump(ctx context.Context, s sound.Stage, cfg Config, sink func([]int16) error) error {
	ch := s.Channels()
	buf := make([]int16, max(cfg.BlockSize-cfg.BlockSize%ch, ch))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := sound.Read(s, buf)
		if n > 0 {
			if serr := sink(buf[:n]); serr != nil {
				return serr
			}
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, sound.ErrPaused):
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cfg.PauseBackoff):
			}
		default:
			return err
		}
	}
}

// runner runs one job at a time on its own goroutine.
type runner struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	done   chan struct{}
	err    error
	closed bool
}

func newRunner() *runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &runner{ctx: ctx, cancel: cancel}
}

// start runs job unless one is still running.
func (r *runner) start(job func(ctx context.Context) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if r.done != nil {
		select {
		case <-r.done:
		default:
			return ErrBusy
		}
	}

	done := make(chan struct{})
	r.done = done
	r.err = nil

	go func() {
		err := job(r.ctx)

		r.mu.Lock()
		r.err = err
		r.mu.Unlock()
		close(done)
	}()

	return nil
}

// wait blocks until the current job ends and returns its error.
func (r *runner) wait(ctx context.Context) error {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// close cancels the running job and waits for it.
func (r *runner) close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	r.cancel()

	err := r.wait(context.Background())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
