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

// Package replier implements the server-side ort.Caller: given a Spec, it
// sleeps for the requested (or locally sampled, whichever is greater)
// latency while concurrently generating the requested number of random
// response bytes.
package replier

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/sabouaram/ortgo/ort"
	"github.com/sabouaram/ortgo/percentile"
)

// Replier samples an additional latency from its own distribution and
// takes the maximum of that and the caller's requested latency, so a
// configured server-side floor can never be undercut by a client request.
type Replier struct {
	Latency percentile.Distribution[int64]
}

// New returns a Replier whose server-side latency floor is sampled from
// latency; a nil latency adds no floor.
func New(latency percentile.Distribution[int64]) *Replier {
	return &Replier{Latency: latency}
}

func (r *Replier) Ort(ctx context.Context, spec ort.Spec) (ort.Reply, error) {
	wait := spec.Latency
	if r.Latency != nil {
		sampled := time.Duration(r.Latency.Sample()) * time.Millisecond
		if sampled > wait {
			wait = sampled
		}
	}

	data := make([]byte, spec.ResponseSize)
	filled := make(chan struct{})

	go func() {
		_, _ = rand.Read(data)
		close(filled)
	}()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ort.Reply{}, ctx.Err()
	case <-timer.C:
	}

	<-filled

	return ort.Reply{Data: data}, nil
}
