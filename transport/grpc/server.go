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

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sabouaram/ortgo/ort"
)

// server adapts an ort.Caller to the OrtServer contract: a Success outcome
// is forwarded to the caller as a Spec, an Error outcome returns the mapped
// status directly without invoking the caller at all.
type server struct {
	impl ort.Caller
}

// NewServer wraps impl for registration via RegisterOrtServer.
func NewServer(impl ort.Caller) OrtServer {
	return &server{impl: impl}
}

func (s *server) Get(ctx context.Context, req *ResponseSpec) (*ResponseReply, error) {
	if req.Error != nil {
		return nil, status.Error(codes.Code(req.Error.Code), req.Error.Message)
	}

	spec := ort.Spec{}
	if req.RequestedLatency != nil {
		spec.Latency = req.RequestedLatency.AsDuration()
	}
	if req.Success != nil {
		spec.ResponseSize = req.Success.Size
	}

	reply, err := s.impl.Ort(ctx, spec)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &ResponseReply{Data: reply.Data}, nil
}
