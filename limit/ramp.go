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
	"time"

	"golang.org/x/sync/semaphore"
)

// rampLimiter is a counting semaphore whose capacity climbs from Ramp.Min to
// Ramp.Max over Ramp.Period. The semaphore is sized to Max; the difference
// between Max and the currently advertised budget is held back by acquiring
// it at construction. A background task grows the budget by releasing up to
// Step held permits per tick and, on reset, acquires (and never releases)
// Max-Min permits again against the same semaphore.
type rampLimiter struct {
	sem    *semaphore.Weighted
	cancel context.CancelFunc
}

// NewRamp returns a concurrency Limiter that starts at ramp.Min permits and
// climbs to ramp.Max over ramp.Period, optionally resetting back to Min and
// repeating. The background ramp task is tied to ctx and exits when ctx is
// done or Close is called.
func NewRamp(ctx context.Context, ramp Ramp) (Limiter, error) {
	if err := ramp.Validate(); err != nil {
		return nil, err
	}

	if ramp.Max <= 0 {
		return PassThrough(), nil
	}

	sem := semaphore.NewWeighted(ramp.Max)
	held := ramp.Max - ramp.Min
	if held > 0 {
		_ = sem.Acquire(context.Background(), held)
	}

	cctx, cancel := context.WithCancel(ctx)
	r := &rampLimiter{sem: sem, cancel: cancel}

	if ramp.Min < ramp.Max {
		go r.run(cctx, ramp, held)
	}

	return r, nil
}

func (r *rampLimiter) run(ctx context.Context, ramp Ramp, held int64) {
	interval := ramp.tickInterval()
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			step := ramp.Step
			if step > held {
				step = held
			}
			if step > 0 {
				r.sem.Release(step)
				held -= step
			}

			if held == 0 {
				if !ramp.Reset {
					return
				}
				grown := ramp.Max - ramp.Min
				if grown <= 0 {
					continue
				}
				if err := r.sem.Acquire(ctx, grown); err != nil {
					return
				}
				held = grown
			}
		}
	}
}

func (r *rampLimiter) Acquire(ctx context.Context) (Handle, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return &fixedHandle{sem: r.sem}, nil
}

// Close stops the background ramp task. It does not release outstanding
// permits held by callers.
func (r *rampLimiter) Close() {
	r.cancel()
}
