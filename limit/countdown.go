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

import "github.com/sabouaram/ortgo/atomic"

// Countdown is an atomic counter with an optional upper bound. Advance
// reserves the next sequence number via compare-and-swap so that, across
// any number of concurrent callers, the multiset of returned values is
// exactly {0, 1, ..., bound-1} with no duplicates and no value skipped.
type Countdown struct {
	next  atomic.Value[int64]
	bound int64 // <= 0 means unbounded
}

// NewCountdown returns a Countdown that yields bound sequence numbers
// starting at 0. bound <= 0 means unbounded.
func NewCountdown(bound int64) *Countdown {
	c := &Countdown{next: atomic.NewValue[int64](), bound: bound}
	c.next.Store(0)
	return c
}

// Advance atomically reserves and returns the next sequence number, and
// true, unless the bound has been reached, in which case it returns
// (0, false) without consuming a slot.
func (c *Countdown) Advance() (int64, bool) {
	for {
		cur := c.next.Load()
		if c.bound > 0 && cur >= c.bound {
			return 0, false
		}
		if c.next.CompareAndSwap(cur, cur+1) {
			return cur, true
		}
	}
}

// Exhausted reports whether the bound has been reached. Always false for an
// unbounded Countdown.
func (c *Countdown) Exhausted() bool {
	if c.bound <= 0 {
		return false
	}
	return c.next.Load() >= c.bound
}
