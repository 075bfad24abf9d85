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

package tcp

import (
	"context"
	"net"
	"sync"

	"github.com/sabouaram/ortgo/muxserver"
	"github.com/sabouaram/ortgo/ort"
)

// ListenAndServe accepts connections on addr, driving each one with a
// muxserver.Server until drain is closed, at which point it stops
// accepting and waits until every outstanding Serve call has returned.
func ListenAndServe(ctx context.Context, addr string, impl ort.Caller, bufferCapacity int, drain <-chan struct{}) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	go func() {
		<-drain
		_ = ln.Close()
	}()

	srv := &muxserver.Server{Impl: impl, BufferCapacity: bufferCapacity}
	var served sync.WaitGroup

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-drain:
				served.Wait()
				return nil
			default:
				return err
			}
		}

		served.Add(1)
		go func() {
			defer served.Done()
			_ = srv.Serve(ctx, conn, drain)
		}()
	}
}
