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

// Package wire implements the on-the-wire codec for the custom TCP
// multiplexing protocol: a fixed handshake preface, a length-prefixed
// request-id-tagged frame format, and the Spec/Reply payload layouts
// carried inside frames.
package wire

import (
	liberr "github.com/sabouaram/ortgo/errors"
)

// Preface is the fixed 23-byte ASCII handshake every muxed TCP connection
// begins with. A connection missing or mismatching these bytes is closed.
const Preface = "ort.olix0r.net/load\r\n\r\n"

// MaxID bounds the ids a mux connection issues: ids run from 1 to MaxID-1
// and MaxID itself is never issued. Reaching it closes the connection
// cleanly rather than wrapping.
const MaxID uint64 = ^uint64(0)

const (
	ErrShortRead liberr.CodeError = liberr.CodeError(iota + 4200)
	ErrBadPreface
	ErrFrameTooLarge
)

func init() {
	if liberr.ExistInMapMessage(ErrShortRead) {
		panic("code error for 'ErrShortRead' already exists")
	}
	liberr.RegisterIdFctMessage(ErrShortRead, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrShortRead:
		return "connection closed before a full frame could be read"
	case ErrBadPreface:
		return "connection preface did not match the expected handshake"
	case ErrFrameTooLarge:
		return "frame payload length exceeds the configured maximum"
	}

	return liberr.NullMessage
}
