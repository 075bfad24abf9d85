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
	"sync"

	"github.com/sabouaram/ortgo/ort"
)

type recycleCaller struct {
	factory ort.Factory
	every   uint64

	mu    sync.Mutex
	inner ort.Caller
	count uint64
}

// Recycle rebuilds the inner connection every N-th call, before dispatching
// that call. Rebuilding is serialized by a mutex.
func Recycle(factory ort.Factory, initial ort.Caller, every uint64) ort.Caller {
	if every == 0 {
		return initial
	}
	return &recycleCaller{factory: factory, inner: initial, every: every}
}

func (r *recycleCaller) Ort(ctx context.Context, spec ort.Spec) (ort.Reply, error) {
	r.mu.Lock()
	r.count++
	if r.count%r.every == 0 {
		if c, ok := r.inner.(ort.Closer); ok {
			_ = c.Close()
		}
		if fresh, err := r.factory.Dial(ctx); err == nil {
			r.inner = fresh
		}
	}
	inner := r.inner
	r.mu.Unlock()

	return inner.Ort(ctx, spec)
}
