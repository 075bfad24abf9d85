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

	"github.com/sabouaram/ortgo/metrics"
	"github.com/sabouaram/ortgo/ort"
)

type metricsCaller struct {
	inner ort.Caller
	hist  *metrics.Histogram
}

// Metrics records elapsed call time (milliseconds, saturating at the
// histogram's configured maximum) to hist on every call, and increments
// hist's failure counter on error. Both success and failure contribute to
// the latency histogram.
func Metrics(inner ort.Caller, hist *metrics.Histogram) ort.Caller {
	return &metricsCaller{inner: inner, hist: hist}
}

func (m *metricsCaller) Ort(ctx context.Context, spec ort.Spec) (ort.Reply, error) {
	start := time.Now()
	reply, err := m.inner.Ort(ctx, spec)
	elapsed := time.Since(start)

	m.hist.Record(float64(elapsed.Milliseconds()))
	if err != nil {
		m.hist.RecordFailure()
	}

	return reply, err
}

// Close delegates to inner when it holds a closeable connection.
func (m *metricsCaller) Close() error {
	if c, ok := m.inner.(ort.Closer); ok {
		return c.Close()
	}
	return nil
}
