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
	"io"
)

// HeaderLen is the size, in bytes, of a frame header: an 8-byte big-endian
// request id followed by a 4-byte big-endian payload length.
const HeaderLen = 8 + 4

// MaxPayload bounds a single frame's payload to guard against a malformed
// or hostile length field causing an unbounded allocation.
const MaxPayload = 64 << 20

// Frame is a {id, payload} envelope. Ids are strictly increasing per
// connection starting at 1; MaxID is never issued.
type Frame struct {
	ID      uint64
	Payload []byte
}

// WriteFrame writes id and payload as one frame: 8-byte id, 4-byte length,
// then the payload bytes.
func WriteFrame(w io.Writer, id uint64, payload []byte) error {
	var hdr [HeaderLen]byte
	binary.BigEndian.PutUint64(hdr[0:8], id)
	binary.BigEndian.PutUint32(hdr[8:12], uint32(len(payload)))

	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	_, err := w.Write(payload)
	return err
}

// ReadFrame reads one frame from r.
func ReadFrame(r io.Reader) (Frame, error) {
	var hdr [HeaderLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if err == io.EOF {
			return Frame{}, io.EOF
		}
		return Frame{}, ErrShortRead.Error(err)
	}

	id := binary.BigEndian.Uint64(hdr[0:8])
	length := binary.BigEndian.Uint32(hdr[8:12])

	if length > MaxPayload {
		return Frame{}, ErrFrameTooLarge.Error()
	}

	payload := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return Frame{}, ErrShortRead.Error(err)
		}
	}

	return Frame{ID: id, Payload: payload}, nil
}
