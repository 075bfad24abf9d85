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

// Package metrics implements the shared latency histogram and failure
// counter recorded by client middleware and exposed both as a JSON summary
// (/report.json) and as Prometheus collectors.
package metrics

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// bucketBounds are cumulative upper bounds, in milliseconds, of a
// log-spaced histogram running from 1ms to roughly two minutes (the last
// finite bound is below 120000ms), plus an overflow bucket. Fixed bucket
// boundaries keep recording O(1) and memory bounded regardless of request
// volume, trading exactness for the five reported percentiles.
var bucketBounds = buildBounds()

func buildBounds() []float64 {
	bounds := make([]float64, 0, 64)
	v := 1.0
	for v < 120_000 {
		bounds = append(bounds, v)
		v *= 1.1
	}
	bounds = append(bounds, math.MaxFloat64)
	return bounds
}

// Histogram is a concurrency-safe summary of request latencies (millisecond
// resolution) paired with a failure counter. It is shared across all client
// tasks and is write-mostly: Record holds the mutex only long enough to
// bump one bucket and the running totals, and RecordFailure is a lock-free
// atomic increment.
type Histogram struct {
	mu      sync.Mutex
	buckets []int64
	count   int64
	sum     float64
	sumSq   float64
	min     float64
	max     float64

	failures int64
}

// New returns an empty Histogram.
func New() *Histogram {
	return &Histogram{
		buckets: make([]int64, len(bucketBounds)),
		min:     math.MaxFloat64,
	}
}

// Record adds one latency sample, in milliseconds, saturating at the
// histogram's configured maximum bucket boundary.
func (h *Histogram) Record(ms float64) {
	idx := sort.SearchFloat64s(bucketBounds, ms)

	h.mu.Lock()
	h.buckets[idx]++
	h.count++
	h.sum += ms
	h.sumSq += ms * ms
	if ms < h.min {
		h.min = ms
	}
	if ms > h.max {
		h.max = ms
	}
	h.mu.Unlock()
}

// RecordFailure increments the failure counter. A failed request also
// contributes its elapsed time to the latency histogram via Record.
func (h *Histogram) RecordFailure() {
	atomic.AddInt64(&h.failures, 1)
}

// Failures returns the number of recorded failures.
func (h *Histogram) Failures() int64 {
	return atomic.LoadInt64(&h.failures)
}

// Snapshot is a point-in-time copy of the histogram's summary statistics,
// used to render /report.json.
type Snapshot struct {
	Count       int64
	Min         float64
	Max         float64
	Sum         float64
	Avg         float64
	StdDev      float64
	Percentiles []PercentileValue
}

// PercentileValue pairs a requested percentile with its estimated value.
type PercentileValue struct {
	Percentile float64
	Value      float64
}

// reportPercentiles are the fixed percentiles rendered into /report.json.
var reportPercentiles = []float64{50, 75, 90, 99, 99.9}

// Snapshot computes the current summary statistics and percentile
// estimates from the bucket counts.
func (h *Histogram) Snapshot() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := Snapshot{Count: h.count, Sum: h.sum}

	if h.count == 0 {
		s.Min, s.Max = 0, 0
	} else {
		s.Min, s.Max = h.min, h.max
		s.Avg = h.sum / float64(h.count)
		variance := h.sumSq/float64(h.count) - s.Avg*s.Avg
		if variance > 0 {
			s.StdDev = math.Sqrt(variance)
		}
	}

	s.Percentiles = make([]PercentileValue, 0, len(reportPercentiles))
	for _, p := range reportPercentiles {
		s.Percentiles = append(s.Percentiles, PercentileValue{Percentile: p, Value: h.quantileLocked(p)})
	}

	return s
}

func (h *Histogram) quantileLocked(p float64) float64 {
	if h.count == 0 {
		return 0
	}

	target := int64(math.Ceil(float64(h.count) * p / 100))
	var cum int64
	for i, c := range h.buckets {
		cum += c
		if cum >= target {
			if i == len(bucketBounds)-1 {
				return h.max
			}
			return bucketBounds[i]
		}
	}
	return h.max
}

// describe/collect implement prometheus.Collector so the histogram can be
// registered alongside other process metrics exposed by the admin server.
var (
	latencyDesc = prometheus.NewDesc(
		"ort_request_latency_milliseconds",
		"Summary of request latencies recorded by client middleware.",
		nil, nil,
	)
	failureDesc = prometheus.NewDesc(
		"ort_request_failures_total",
		"Count of requests that completed with an error.",
		nil, nil,
	)
)

func (h *Histogram) Describe(ch chan<- *prometheus.Desc) {
	ch <- latencyDesc
	ch <- failureDesc
}

func (h *Histogram) Collect(ch chan<- prometheus.Metric) {
	snap := h.Snapshot()

	buckets := make(map[float64]uint64, len(bucketBounds))
	h.mu.Lock()
	var cum uint64
	for i, b := range bucketBounds {
		cum += uint64(h.buckets[i])
		buckets[b] = cum
	}
	h.mu.Unlock()

	ch <- prometheus.MustNewConstHistogram(latencyDesc, uint64(snap.Count), snap.Sum, buckets)
	ch <- prometheus.MustNewConstMetric(failureDesc, prometheus.CounterValue, float64(h.Failures()))
}
