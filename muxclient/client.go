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

// Package muxclient implements the per-connection client driver for the
// muxed TCP protocol: callers write request frames under a write lock, a
// background goroutine owns the read half, and a mutex guards the
// monotonically increasing id sequence and the id-to-waiter map used to
// demultiplex out-of-order replies.
package muxclient

import (
	"context"
	"io"
	"net"
	"sync"

	liberr "github.com/sabouaram/ortgo/errors"
	"github.com/sabouaram/ortgo/ort"
	"github.com/sabouaram/ortgo/wire"
)

const (
	ErrConnClosed liberr.CodeError = liberr.CodeError(iota + 4300)
	ErrUnknownReplyID
	ErrIDExhausted
)

func init() {
	if liberr.ExistInMapMessage(ErrConnClosed) {
		panic("code error for 'ErrConnClosed' already exists")
	}
	liberr.RegisterIdFctMessage(ErrConnClosed, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrConnClosed:
		return "mux client connection is closed"
	case ErrUnknownReplyID:
		return "received a reply for an id that is not in flight"
	case ErrIDExhausted:
		return "mux client id space is exhausted"
	}
	return liberr.NullMessage
}

type pending struct {
	ch chan result
}

type result struct {
	reply ort.Reply
	err   error
}

// Client is a single muxed TCP connection's request dispatcher. It
// satisfies ort.Caller: every Ort call allocates the next id, writes the
// request frame, and awaits the matching reply independently of any other
// call in flight on the same connection.
type Client struct {
	conn net.Conn

	mu      sync.Mutex
	nextID  uint64
	waiters map[uint64]pending
	closed  bool
	closeErr error

	writeMu sync.Mutex
}

// Dial connects to addr, writes the handshake preface, and starts the
// background read loop that demultiplexes replies.
func Dial(ctx context.Context, addr string) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	if err := wire.WritePreface(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	c := &Client{
		conn:    conn,
		nextID:  1,
		waiters: make(map[uint64]pending),
	}

	go c.readLoop()

	return c, nil
}

// Ort sends spec as a request frame and blocks until the matching reply
// frame arrives, ctx is done, or the connection fails.
func (c *Client) Ort(ctx context.Context, spec ort.Spec) (ort.Reply, error) {
	c.mu.Lock()
	if c.closed {
		err := c.closeErr
		c.mu.Unlock()
		if err == nil {
			err = ErrConnClosed.Error()
		}
		return ort.Reply{}, err
	}

	if c.nextID == wire.MaxID {
		c.mu.Unlock()
		_ = c.conn.Close()
		return ort.Reply{}, ErrIDExhausted.Error()
	}

	id := c.nextID
	c.nextID++

	p := pending{ch: make(chan result, 1)}
	c.waiters[id] = p
	c.mu.Unlock()

	c.writeMu.Lock()
	err := wire.WriteFrame(c.conn, id, wire.EncodeSpec(spec))
	c.writeMu.Unlock()

	if err != nil {
		c.mu.Lock()
		delete(c.waiters, id)
		c.mu.Unlock()
		return ort.Reply{}, err
	}

	select {
	case <-ctx.Done():
		return ort.Reply{}, ctx.Err()
	case res := <-p.ch:
		return res.reply, res.err
	}
}

// Close tears down the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) readLoop() {
	for {
		f, err := wire.ReadFrame(c.conn)
		if err != nil {
			c.fail(err)
			return
		}

		c.mu.Lock()
		p, ok := c.waiters[f.ID]
		if ok {
			delete(c.waiters, f.ID)
		}
		c.mu.Unlock()

		if !ok {
			c.fail(ErrUnknownReplyID.Error())
			return
		}

		p.ch <- result{reply: wire.DecodeReply(f.Payload)}
	}
}

func (c *Client) fail(err error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.closed = true
	if err == io.EOF {
		err = ErrConnClosed.Error()
	}
	c.closeErr = err

	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()

	for _, p := range waiters {
		p.ch <- result{err: err}
	}

	_ = c.conn.Close()
}
