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

// Package limit provides permit-issuing abstractions - fixed concurrency,
// ramped concurrency, rate limiting, and composites of these - used to
// govern request dispatch.
package limit

import (
	"context"
	"time"
)

// Handle represents a held permit. Release returns it to the issuing
// Limiter, except for rate-limit permits which are forgotten on release
// since they represent consumed quota rather than contended concurrency.
type Handle interface {
	Release()
}

// Limiter issues Handles, suspending Acquire until a permit is available or
// the context is done.
type Limiter interface {
	Acquire(ctx context.Context) (Handle, error)
}

// Ramp describes how a numeric budget moves from Min to Max over Period,
// advancing by Step every tick, optionally resetting back to Min once Max is
// reached and repeating.
type Ramp struct {
	Min     int64
	Max     int64
	Step    int64
	Period  time.Duration
	Reset   bool
}

// Validate enforces the structural invariants: Min <= Max, Step >= 1, and a
// positive Period whenever the ramp actually has room to climb.
func (r Ramp) Validate() error {
	if r.Min > r.Max {
		return ErrInvalidRamp.Error()
	}
	if r.Step < 1 {
		return ErrInvalidRamp.Error()
	}
	if r.Min < r.Max && r.Period <= 0 {
		return ErrInvalidRamp.Error()
	}
	return nil
}

func (r Ramp) ticks() int64 {
	span := r.Max - r.Min
	if span <= 0 {
		return 1
	}
	n := span / r.Step
	if span%r.Step != 0 {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (r Ramp) tickInterval() time.Duration {
	n := r.ticks()
	if n <= 0 {
		n = 1
	}
	return r.Period / time.Duration(n)
}
