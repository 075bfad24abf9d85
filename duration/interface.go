/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

// Package duration parses the human-readable duration strings accepted by
// this system's CLI and distribution flags: a bare "0", or a positive
// integer followed by "ms" or "s". Any other bare number is rejected rather
// than guessed at, since a suffix-less value is ambiguous between
// milliseconds and seconds for anything but zero.
//
// Example usage:
//
//	d, _ := duration.Parse("250ms")
//	std := d.Time() // 250 * time.Millisecond
package duration

import (
	"time"
)

type Duration time.Duration

// Parse parses s using the grammar described in the package doc: a bare
// "0", or an unsigned integer suffixed with "ms" or "s".
func Parse(s string) (Duration, error) {
	return parseString(s)
}

// ParseByte parses p the same way Parse parses a string.
func ParseByte(p []byte) (Duration, error) {
	return parseString(string(p))
}
