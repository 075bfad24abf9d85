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

// StackConfig parameterizes Stack's canonical middleware composition.
type StackConfig struct {
	RequestTimeout time.Duration
	Reconnect      ReconnectConfig
	Histogram      *metrics.Histogram
}

// Stack wraps transport, a raw connection factory, into the canonical
// composition reconnect(metrics(timeout(transport))): timeout and metrics
// apply to every call on a live connection, reconnect supervises the
// connection's lifecycle around them.
func Stack(transport ort.Factory, cfg StackConfig) ort.Factory {
	return ort.FactoryFunc(func(ctx context.Context) (ort.Caller, error) {
		inner := ort.FactoryFunc(func(ctx context.Context) (ort.Caller, error) {
			caller, err := transport.Dial(ctx)
			if err != nil {
				return nil, err
			}
			wrapped := Timeout(caller, cfg.RequestTimeout)
			if cfg.Histogram != nil {
				wrapped = Metrics(wrapped, cfg.Histogram)
			}
			return wrapped, nil
		})
		return Reconnect(inner, cfg.Reconnect), nil
	})
}
