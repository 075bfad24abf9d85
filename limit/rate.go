/*
 * MIT License
 *
 * Copyright (c) 2026 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package limit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// rateLimiter admits up to budget Acquire calls per window; consumed
// quota is forgotten on Handle.Release (Release is a no-op) and the
// window resets the counter to zero rather than accumulating credit.
// An optional ramp grows budget over successive windows.
type rateLimiter struct {
	budget int64
	window time.Duration
	ramp   *Ramp

	used   int64
	mu     sync.Mutex
	waiter chan struct{}

	cancel context.CancelFunc
}

// NewRate returns a Limiter that allows up to budget acquisitions per
// window; an optional ramp grows budget over time the same way a
// concurrency ramp grows permits. window <= 0 defaults to one second.
func NewRate(ctx context.Context, budget int64, window time.Duration, ramp *Ramp) (Limiter, error) {
	if budget <= 0 {
		return PassThrough(), nil
	}
	if window <= 0 {
		window = time.Second
	}
	if ramp != nil {
		if err := ramp.Validate(); err != nil {
			return nil, err
		}
	}

	r := &rateLimiter{
		budget: budget,
		window: window,
		ramp:   ramp,
		waiter: make(chan struct{}),
	}
	if ramp != nil {
		r.budget = ramp.Min
	}

	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	go r.tick(cctx)

	return r, nil
}

func (r *rateLimiter) tick(ctx context.Context) {
	ticker := time.NewTicker(r.window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.mu.Lock()
			atomic.StoreInt64(&r.used, 0)

			if r.ramp != nil {
				b := atomic.LoadInt64(&r.budget) + r.ramp.Step
				if b >= r.ramp.Max {
					b = r.ramp.Max
				}
				atomic.StoreInt64(&r.budget, b)
				if b == r.ramp.Max && r.ramp.Reset {
					atomic.StoreInt64(&r.budget, r.ramp.Min)
				}
			}

			close(r.waiter)
			r.waiter = make(chan struct{})
			r.mu.Unlock()
		}
	}
}

func (r *rateLimiter) Acquire(ctx context.Context) (Handle, error) {
	for {
		budget := atomic.LoadInt64(&r.budget)
		if atomic.AddInt64(&r.used, 1) <= budget {
			return noopHandle{}, nil
		}
		atomic.AddInt64(&r.used, -1)

		r.mu.Lock()
		w := r.waiter
		r.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-w:
		}
	}
}

// Close stops the refill task.
func (r *rateLimiter) Close() {
	r.cancel()
}
