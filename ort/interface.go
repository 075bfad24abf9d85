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

// Package ort defines the request/response abstraction shared by every
// client and server transport: a Spec describes the response a caller
// wants, a Reply carries it back.
package ort

import (
	"context"
	"time"
)

// Spec is an immutable request descriptor: the latency the caller wants the
// response delayed by, and the size of the payload it should carry.
type Spec struct {
	Latency      time.Duration
	ResponseSize uint32
}

// Reply is an immutable response payload whose length equals the Spec's
// requested ResponseSize.
type Reply struct {
	Data []byte
}

// Caller sends one Spec and returns the Reply or an error. It is the
// contract every client middleware layer and every client transport
// implements identically, so layers compose regardless of what lies
// underneath them.
type Caller interface {
	Ort(ctx context.Context, spec Spec) (Reply, error)
}

// CallerFunc adapts a function to the Caller interface.
type CallerFunc func(ctx context.Context, spec Spec) (Reply, error)

func (f CallerFunc) Ort(ctx context.Context, spec Spec) (Reply, error) {
	return f(ctx, spec)
}

// Factory builds a fresh Caller, e.g. by dialing a connection. Reconnect
// middleware holds a Factory rather than a live Caller so it can rebuild
// the inner connection after a failure.
type Factory interface {
	Dial(ctx context.Context) (Caller, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(ctx context.Context) (Caller, error)

func (f FactoryFunc) Dial(ctx context.Context) (Caller, error) {
	return f(ctx)
}

// Closer is implemented by Callers that hold an underlying connection that
// should be torn down when no longer needed (e.g. on reconnect or recycle).
type Closer interface {
	Close() error
}
