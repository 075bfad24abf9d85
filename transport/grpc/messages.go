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

// Package grpc implements the gRPC target surface: a single unary Get
// method carrying a ResponseSpec and returning a ResponseReply.
//
// The wire messages below are hand-maintained rather than protoc-generated
// (this module's build does not invoke protoc); ort.proto alongside this
// file is the canonical schema they track, and the codec in codec.go moves
// them over the grpc-go transport as JSON rather than the protobuf wire
// format a protoc-gen-go build would normally produce. durationpb is still
// used for the one field (RequestedLatency) that maps directly onto a
// protobuf well-known type without needing generated code.
package grpc

import (
	"google.golang.org/protobuf/types/known/durationpb"
)

// ResponseSpec is the request message of the Get method: an optional
// latency, a oneof describing either a successful response of a given size
// or an error to return, and an optional opaque data field. The server
// does not read the data field; a reply carries only the generated payload.
type ResponseSpec struct {
	RequestedLatency *durationpb.Duration `json:"requestedLatency,omitempty"`

	Success *ResponseSpecSuccess `json:"success,omitempty"`
	Error   *ResponseSpecError   `json:"error,omitempty"`

	Data []byte `json:"data,omitempty"`
}

// ResponseSpecSuccess is the Success arm of ResponseSpec's oneof.
type ResponseSpecSuccess struct {
	Size uint32 `json:"size"`
}

// ResponseSpecError is the Error arm of ResponseSpec's oneof.
type ResponseSpecError struct {
	Code    uint32 `json:"code"`
	Message string `json:"message"`
}

// ResponseReply is the response message of the Get method.
type ResponseReply struct {
	Data []byte `json:"data,omitempty"`
}
