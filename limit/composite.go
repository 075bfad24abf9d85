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

import "context"

// composite acquires from every underlying Limiter before it is considered
// satisfied; if a later acquisition fails or is cancelled, permits already
// taken from earlier limiters are released in reverse order.
type composite struct {
	limiters []Limiter
}

// Composite combines two or more Limiters into one; acquisition succeeds
// only when all underlying acquisitions succeed.
func Composite(limiters ...Limiter) Limiter {
	filtered := make([]Limiter, 0, len(limiters))
	for _, l := range limiters {
		if l != nil {
			filtered = append(filtered, l)
		}
	}
	if len(filtered) == 0 {
		return PassThrough()
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &composite{limiters: filtered}
}

func (c *composite) Acquire(ctx context.Context) (Handle, error) {
	held := make([]Handle, 0, len(c.limiters))

	for _, l := range c.limiters {
		h, err := l.Acquire(ctx)
		if err != nil {
			for i := len(held) - 1; i >= 0; i-- {
				held[i].Release()
			}
			return nil, err
		}
		held = append(held, h)
	}

	return &compositeHandle{held: held}, nil
}

type compositeHandle struct {
	held []Handle
}

func (h *compositeHandle) Release() {
	for i := len(h.held) - 1; i >= 0; i-- {
		h.held[i].Release()
	}
}
