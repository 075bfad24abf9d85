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
	"time"

	"github.com/sabouaram/ortgo/ort"
)

type timeoutCaller struct {
	inner   ort.Caller
	timeout time.Duration
}

// Timeout wraps inner in a per-call deadline. On expiry it returns
// ErrRequestTimeout without cancelling the underlying in-flight operation
// beyond detaching from it - the caller simply stops waiting.
func Timeout(inner ort.Caller, timeout time.Duration) ort.Caller {
	if timeout <= 0 {
		return inner
	}
	return &timeoutCaller{inner: inner, timeout: timeout}
}

func (t *timeoutCaller) Ort(ctx context.Context, spec ort.Spec) (ort.Reply, error) {
	cctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	type res struct {
		reply ort.Reply
		err   error
	}
	done := make(chan res, 1)

	go func() {
		reply, err := t.inner.Ort(cctx, spec)
		done <- res{reply: reply, err: err}
	}()

	select {
	case <-cctx.Done():
		return ort.Reply{}, ErrRequestTimeout.Error(cctx.Err())
	case r := <-done:
		return r.reply, r.err
	}
}

// Close delegates to inner when it holds a closeable connection, so that
// Reconnect's rebuild-on-failure path tears down the stale transport
// instead of leaking it.
func (t *timeoutCaller) Close() error {
	if c, ok := t.inner.(ort.Closer); ok {
		return c.Close()
	}
	return nil
}
