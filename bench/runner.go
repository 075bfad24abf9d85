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

// Package bench implements the Runner: the top-level coordinator that
// spawns client workers against a connect stack, draws request shapes from
// configured distributions, and drives them through a shared limiter and
// request countdown.
package bench

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/sabouaram/ortgo/errors/pool"
	"github.com/sabouaram/ortgo/limit"
	"github.com/sabouaram/ortgo/ort"
	"github.com/sabouaram/ortgo/percentile"
)

// Config describes one load run: the connect stack, the limiter governing
// dispatch, the distributions requests are sampled from, and the worker and
// quota shape of the run.
type Config struct {
	// Factory builds one Caller per worker by dialing the target.
	Factory ort.Factory

	// Limiter gates every dispatched request. A nil Limiter acquires
	// instantly.
	Limiter limit.Limiter

	// Latency and Size shape each sampled Spec. Nil distributions sample
	// as the zero value.
	Latency percentile.Distribution[int64]
	Size    percentile.Distribution[uint64]

	// Clients is the number of parallel worker connections. Zero defaults
	// to runtime.NumCPU().
	Clients int

	// TotalRequests bounds the number of requests issued across all
	// workers combined. Zero means unbounded.
	TotalRequests int64

	// PerClientRequests additionally bounds the number of requests any
	// single worker issues. Zero means unbounded.
	PerClientRequests int64
}

// Runner coordinates a fixed pool of client workers against Config.
type Runner struct {
	cfg        Config
	total      *limit.Countdown
	dialErrors pool.Pool
}

// New prepares a Runner from cfg. It does not dial any connections or spawn
// any workers; call Run to do that.
func New(cfg Config) *Runner {
	return &Runner{
		cfg:        cfg,
		total:      limit.NewCountdown(cfg.TotalRequests),
		dialErrors: pool.New(),
	}
}

// DialErrors reports every worker's Factory.Dial failure from the most
// recent Run, joined into a single error, or nil if every worker connected.
// A worker that fails to dial stops immediately without issuing requests;
// this lets a caller distinguish "ran, but fewer clients connected than
// requested" from a clean run.
func (r *Runner) DialErrors() error {
	return r.dialErrors.Error()
}

// Run spawns Config.Clients worker tasks (or runtime.NumCPU() if zero) and
// blocks until every worker has stopped issuing requests: because the total
// or per-client countdown is exhausted, because ctx is done, or because the
// worker failed to connect. In-flight per-request tasks are not forcibly
// cancelled; each worker waits for the requests it dispatched before closing
// its connection, so Run returns only once every dispatched call has
// returned.
func (r *Runner) Run(ctx context.Context) {
	clients := r.cfg.Clients
	if clients <= 0 {
		clients = runtime.NumCPU()
	}

	var wg sync.WaitGroup
	wg.Add(clients)
	for i := 0; i < clients; i++ {
		go func() {
			defer wg.Done()
			r.worker(ctx)
		}()
	}
	wg.Wait()
}

func (r *Runner) worker(ctx context.Context) {
	caller, err := r.cfg.Factory.Dial(ctx)
	if err != nil {
		r.dialErrors.Add(err)
		return
	}
	defer func() {
		if c, ok := caller.(ort.Closer); ok {
			_ = c.Close()
		}
	}()

	perClient := limit.NewCountdown(r.cfg.PerClientRequests)

	var inflight sync.WaitGroup
	defer inflight.Wait()

	for {
		if ctx.Err() != nil {
			return
		}
		if _, ok := r.total.Advance(); !ok {
			return
		}
		if _, ok := perClient.Advance(); !ok {
			return
		}

		spec := r.sample()

		var handle limit.Handle
		if r.cfg.Limiter != nil {
			h, err := r.cfg.Limiter.Acquire(ctx)
			if err != nil {
				return
			}
			handle = h
		}

		inflight.Add(1)
		go r.dispatch(ctx, caller, spec, handle, &inflight)
	}
}

// dispatch invokes one request on a detached task; the metrics middleware
// wrapping caller (if any) is what records latency and failure, not Runner
// itself.
func (r *Runner) dispatch(ctx context.Context, caller ort.Caller, spec ort.Spec, handle limit.Handle, inflight *sync.WaitGroup) {
	defer inflight.Done()
	if handle != nil {
		defer handle.Release()
	}

	_, _ = caller.Ort(ctx, spec)
}

// sample draws one Spec's latency and size from the configured
// distributions, which carry values in milliseconds and bytes
// respectively.
func (r *Runner) sample() ort.Spec {
	spec := ort.Spec{}
	if r.cfg.Latency != nil {
		spec.Latency = time.Duration(r.cfg.Latency.Sample()) * time.Millisecond
	}
	if r.cfg.Size != nil {
		spec.ResponseSize = uint32(r.cfg.Size.Sample())
	}
	return spec
}
