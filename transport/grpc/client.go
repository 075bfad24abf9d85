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

package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/durationpb"

	"github.com/sabouaram/ortgo/ort"
)

// Factory dials new gRPC connections against a fixed authority.
type Factory struct {
	Addr string
}

func (f Factory) Dial(ctx context.Context) (ort.Caller, error) {
	conn, err := grpc.NewClient(f.Addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)),
	)
	if err != nil {
		return nil, err
	}

	return &client{conn: conn}, nil
}

type client struct {
	conn *grpc.ClientConn
}

func (c *client) Ort(ctx context.Context, spec ort.Spec) (ort.Reply, error) {
	req := &ResponseSpec{
		RequestedLatency: durationpb.New(spec.Latency),
		Success:          &ResponseSpecSuccess{Size: spec.ResponseSize},
	}

	reply := new(ResponseReply)
	if err := c.conn.Invoke(ctx, "/ort.Ort/Get", req, reply, grpc.CallContentSubtype(codecName)); err != nil {
		return ort.Reply{}, err
	}

	return ort.Reply{Data: reply.Data}, nil
}

func (c *client) Close() error {
	return c.conn.Close()
}
