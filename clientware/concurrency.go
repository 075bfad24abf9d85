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

package clientware

import (
	"context"

	"github.com/sabouaram/ortgo/limit"
	"github.com/sabouaram/ortgo/ort"
)

type concurrencyLimitCaller struct {
	inner ort.Caller
	lim   limit.Limiter
}

// ConcurrencyLimit acquires a permit from lim before each call to inner and
// holds it for the call's duration.
func ConcurrencyLimit(inner ort.Caller, lim limit.Limiter) ort.Caller {
	if lim == nil {
		return inner
	}
	return &concurrencyLimitCaller{inner: inner, lim: lim}
}

func (c *concurrencyLimitCaller) Ort(ctx context.Context, spec ort.Spec) (ort.Reply, error) {
	h, err := c.lim.Acquire(ctx)
	if err != nil {
		return ort.Reply{}, err
	}
	defer h.Release()

	return c.inner.Ort(ctx, spec)
}
