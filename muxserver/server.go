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

// Package muxserver implements the per-connection server driver for the
// muxed TCP protocol: preface verification, strictly-increasing request id
// enforcement, a bounded in-flight queue, and out-of-order response
// dispatch back to the write half.
package muxserver

import (
	"context"
	"io"
	"net"
	"sync"
	"time"

	liberr "github.com/sabouaram/ortgo/errors"
	"github.com/sabouaram/ortgo/ort"
	"github.com/sabouaram/ortgo/wire"
)

const (
	ErrOutOfOrder liberr.CodeError = liberr.CodeError(iota + 4310)
)

func init() {
	if liberr.ExistInMapMessage(ErrOutOfOrder) {
		panic("code error for 'ErrOutOfOrder' already exists")
	}
	liberr.RegisterIdFctMessage(ErrOutOfOrder, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrOutOfOrder:
		return "request id is not strictly increasing relative to the previous request on this connection"
	}
	return liberr.NullMessage
}

// DefaultBufferCapacity caps the number of requests a single connection may
// have in flight at once when no explicit capacity is configured.
const DefaultBufferCapacity = 100_000

// Server drives one accepted connection: it verifies the preface, reads
// frames enforcing strictly increasing ids, and dispatches each request to
// impl concurrently, forwarding whichever reply completes first.
type Server struct {
	BufferCapacity int
	Impl           ort.Caller
}

type outgoing struct {
	id      uint64
	payload []byte
}

// Serve runs until the connection closes, an error occurs, or drain is
// closed (new reads stop and in-flight responses are awaited before
// returning).
func (s *Server) Serve(ctx context.Context, conn net.Conn, drain <-chan struct{}) error {
	defer conn.Close()

	if err := wire.ReadPreface(conn); err != nil {
		return err
	}

	cap := s.BufferCapacity
	if cap <= 0 {
		cap = DefaultBufferCapacity
	}

	sem := make(chan struct{}, cap)
	out := make(chan outgoing, cap)

	writeDone := make(chan error, 1)
	go func() {
		writeDone <- s.writeLoop(conn, out)
	}()

	var (
		wg      sync.WaitGroup
		lastID  uint64
		readErr error
	)

	stopWatch := make(chan struct{})
	defer close(stopWatch)
	go func() {
		select {
		case <-drain:
			_ = conn.SetReadDeadline(time.Now())
		case <-stopWatch:
		}
	}()

readLoop:
	for {
		select {
		case <-drain:
			break readLoop
		default:
		}

		f, err := wire.ReadFrame(conn)
		if err != nil {
			select {
			case <-drain:
			default:
				if err != io.EOF {
					readErr = err
				}
			}
			break
		}

		if f.ID <= lastID {
			readErr = ErrOutOfOrder.Error()
			break
		}
		lastID = f.ID

		spec, err := wire.DecodeSpec(f.Payload)
		if err != nil {
			readErr = err
			break
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(id uint64, spec ort.Spec) {
			defer wg.Done()
			defer func() { <-sem }()

			reply, err := s.Impl.Ort(ctx, spec)
			if err != nil {
				reply = ort.Reply{}
			}

			select {
			case out <- outgoing{id: id, payload: wire.EncodeReply(reply)}:
			case <-ctx.Done():
			}
		}(f.ID, spec)
	}

	wg.Wait()
	close(out)
	<-writeDone

	return readErr
}

func (s *Server) writeLoop(conn net.Conn, out <-chan outgoing) error {
	for o := range out {
		if err := wire.WriteFrame(conn, o.id, o.payload); err != nil {
			return err
		}
	}
	return nil
}
