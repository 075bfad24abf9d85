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

package wire

import (
	"encoding/binary"
	"time"

	"github.com/sabouaram/ortgo/ort"
)

// SpecLen is the fixed on-wire length of an encoded Spec: 4 bytes of
// millisecond latency followed by 4 bytes of response size.
const SpecLen = 8

// EncodeSpec lays out a Spec as 4-byte ms latency followed by 4-byte size.
func EncodeSpec(s ort.Spec) []byte {
	buf := make([]byte, SpecLen)
	binary.BigEndian.PutUint32(buf[0:4], uint32(s.Latency/time.Millisecond))
	binary.BigEndian.PutUint32(buf[4:8], s.ResponseSize)
	return buf
}

// DecodeSpec reverses EncodeSpec.
func DecodeSpec(b []byte) (ort.Spec, error) {
	if len(b) != SpecLen {
		return ort.Spec{}, ErrFrameTooLarge.Error()
	}

	ms := binary.BigEndian.Uint32(b[0:4])
	size := binary.BigEndian.Uint32(b[4:8])

	return ort.Spec{
		Latency:      time.Duration(ms) * time.Millisecond,
		ResponseSize: size,
	}, nil
}

// EncodeReply returns the reply payload exactly as carried on the wire:
// raw bytes, length defined by the frame header.
func EncodeReply(r ort.Reply) []byte {
	return r.Data
}

// DecodeReply wraps raw frame payload bytes back into a Reply.
func DecodeReply(b []byte) ort.Reply {
	return ort.Reply{Data: b}
}
