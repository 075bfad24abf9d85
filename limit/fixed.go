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

	"golang.org/x/sync/semaphore"
)

// passThrough is the zero-cost Limiter used when no limit is configured; it
// acquires instantly and its Handle.Release is a no-op.
type passThrough struct{}

func (passThrough) Acquire(_ context.Context) (Handle, error) { return noopHandle{}, nil }

type noopHandle struct{}

func (noopHandle) Release() {}

// PassThrough returns a Limiter that never blocks.
func PassThrough() Limiter { return passThrough{} }

// fixed is a counting semaphore with n permits, built on
// golang.org/x/sync/semaphore so contended acquisition respects ctx
// cancellation without a bespoke condition variable.
type fixed struct {
	sem *semaphore.Weighted
}

// Fixed returns a Limiter backed by a counting semaphore of n permits.
// n <= 0 returns a pass-through limiter (infinite permits).
func Fixed(n int64) Limiter {
	if n <= 0 {
		return PassThrough()
	}
	return &fixed{sem: semaphore.NewWeighted(n)}
}

func (f *fixed) Acquire(ctx context.Context) (Handle, error) {
	if err := f.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return &fixedHandle{sem: f.sem}, nil
}

type fixedHandle struct {
	sem *semaphore.Weighted
}

func (h *fixedHandle) Release() {
	h.sem.Release(1)
}
