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

package duration

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMissingUnit is returned by parseString when a non-zero numeric value
// is given without a "s" or "ms" suffix. A bare "0" is the only value
// accepted without a unit, since it is unambiguous regardless of scale.
var ErrMissingUnit = fmt.Errorf("duration: non-zero value requires a unit suffix (s or ms)")

// parseString accepts the two forms this system's CLI contracts are built
// around: a bare "0", or a positive integer followed by "ms" or "s". Any
// other bare number is rejected rather than silently guessed at.
func parseString(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)

	if s == "0" {
		return 0, nil
	}

	switch {
	case strings.HasSuffix(s, "ms"):
		n, e := strconv.ParseUint(strings.TrimSuffix(s, "ms"), 10, 64)
		if e != nil {
			return 0, fmt.Errorf("duration: invalid milliseconds value %q: %w", s, e)
		}
		return Duration(time.Duration(n) * time.Millisecond), nil
	case strings.HasSuffix(s, "s"):
		n, e := strconv.ParseUint(strings.TrimSuffix(s, "s"), 10, 64)
		if e != nil {
			return 0, fmt.Errorf("duration: invalid seconds value %q: %w", s, e)
		}
		return Duration(time.Duration(n) * time.Second), nil
	default:
		if _, e := strconv.ParseUint(s, 10, 64); e == nil {
			return 0, ErrMissingUnit
		}
		return 0, fmt.Errorf("duration: invalid value %q", s)
	}
}

