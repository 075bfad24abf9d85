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

// Package http implements the HTTP/1.1 client and server transport: a GET
// request with latency_ms and size query parameters, and a server handler
// that sleeps then returns that many random bytes.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/http2"

	"github.com/sabouaram/ortgo/ort"
)

// Client calls a single HTTP target's "/" endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient returns a Client targeting baseURL ("http://host:port"). The
// underlying transport is configured by golang.org/x/net/http2 to use
// HTTP/2 on TLS connections; cleartext http:// targets are spoken to over
// HTTP/1.1, as h2c is not enabled.
func NewClient(baseURL string, connectTimeout time.Duration) *Client {
	transport := &http.Transport{}
	_ = http2.ConfigureTransport(transport)

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   0,
		},
		baseURL: baseURL,
	}
}

func (c *Client) Ort(ctx context.Context, spec ort.Spec) (ort.Reply, error) {
	url := fmt.Sprintf("%s/?latency_ms=%d&size=%d", c.baseURL, spec.Latency.Milliseconds(), spec.ResponseSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ort.Reply{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ort.Reply{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ort.Reply{}, fmt.Errorf("http transport: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return ort.Reply{}, err
	}

	return ort.Reply{Data: data}, nil
}

func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
