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
)

// OrtServer is the service implementation registered against a grpc.Server.
type OrtServer interface {
	Get(ctx context.Context, req *ResponseSpec) (*ResponseReply, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: "ort.Ort",
	HandlerType: (*OrtServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Get",
			Handler:    getHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ort.proto",
}

func getHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ResponseSpec)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(OrtServer).Get(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ort.Ort/Get"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OrtServer).Get(ctx, req.(*ResponseSpec))
	}

	return interceptor(ctx, in, info, handler)
}

// RegisterOrtServer registers impl against s using the hand-maintained
// service descriptor above (see messages.go for why this skips protoc).
func RegisterOrtServer(s *grpc.Server, impl OrtServer) {
	s.RegisterService(&serviceDesc, impl)
}
