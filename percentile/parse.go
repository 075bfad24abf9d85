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

package percentile

import (
	"strconv"
	"strings"
)

// Parse accepts "v" (equivalent to Min=v,Max=v), "p=v", or a comma-separated list
// "p1=v1,p2=v2,...". Percentiles are given as plain decimal numbers in
// [0,100]; values are parsed with the given value parser.
func Parse[T Numeric](s string, parseValue func(string) (T, error)) (Distribution[T], error) {
	s = strings.TrimSpace(s)

	if !strings.Contains(s, "=") {
		v, e := parseValue(s)
		if e != nil {
			return nil, ErrInvalidValue.Error(e)
		}
		return Single[T](v), nil
	}

	fields := strings.Split(s, ",")
	pts := make([]Point[T], 0, len(fields))

	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}

		kv := strings.SplitN(f, "=", 2)
		if len(kv) != 2 {
			return nil, ErrInvalidValue.Error()
		}

		pf, e := strconv.ParseFloat(strings.TrimSpace(kv[0]), 64)
		if e != nil || pf < 0 || pf > 100 {
			return nil, ErrInvalidPercentile.Error(e)
		}

		v, e := parseValue(strings.TrimSpace(kv[1]))
		if e != nil {
			return nil, ErrInvalidValue.Error(e)
		}

		pts = append(pts, Point[T]{Percentile: Percentile(pf * 10000), Value: v})
	}

	return Build[T](pts)
}
