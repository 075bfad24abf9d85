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
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
)

type distribution[T Numeric] struct {
	pts []Point[T]
}

// Build constructs a Distribution from a sequence of (percentile, value)
// pairs. It sorts by percentile, fills Min/Max when absent (Min defaults to
// the zero value, Max carries the highest explicit value), and fails with
// ErrUnordered if values are not monotonically non-decreasing once sorted.
func Build[T Numeric](pairs []Point[T]) (Distribution[T], error) {
	if len(pairs) == 0 {
		return nil, ErrInvalidValue.Error()
	}

	pts := make([]Point[T], len(pairs))
	copy(pts, pairs)

	sort.Slice(pts, func(i, j int) bool {
		return pts[i].Percentile < pts[j].Percentile
	})

	for _, p := range pts {
		if p.Percentile > Max {
			return nil, ErrInvalidPercentile.Error(fmt.Errorf("percentile %d exceeds max %d", p.Percentile, Max))
		}
	}

	if pts[0].Percentile != Min {
		var zero T
		pts = append([]Point[T]{{Percentile: Min, Value: zero}}, pts...)
	}

	if pts[len(pts)-1].Percentile != Max {
		pts = append(pts, Point[T]{Percentile: Max, Value: pts[len(pts)-1].Value})
	}

	for i := 1; i < len(pts); i++ {
		if pts[i].Value < pts[i-1].Value {
			return nil, ErrUnordered.Error()
		}
	}

	return &distribution[T]{pts: pts}, nil
}

// Single returns a Distribution equivalent to Min=v, Max=v. It passes both
// points to Build explicitly, so Build does not prepend its implicit
// Min=zero point and v is kept at the low end.
func Single[T Numeric](v T) Distribution[T] {
	d, _ := Build[T]([]Point[T]{{Percentile: Min, Value: v}, {Percentile: Max, Value: v}})
	return d
}

func (d *distribution[T]) Get(p Percentile) T {
	if p <= d.pts[0].Percentile {
		return d.pts[0].Value
	}

	last := d.pts[len(d.pts)-1]
	if p >= last.Percentile {
		return last.Value
	}

	for i := 1; i < len(d.pts); i++ {
		if d.pts[i].Percentile == p {
			return d.pts[i].Value
		}

		if d.pts[i].Percentile > p {
			lo, hi := d.pts[i-1], d.pts[i]
			span := float64(hi.Percentile - lo.Percentile)
			frac := float64(p-lo.Percentile) / span
			return lo.Value + T(float64(hi.Value-lo.Value)*frac)
		}
	}

	return last.Value
}

func (d *distribution[T]) Sample() T {
	p := Percentile(rand.Int63n(int64(Max) + 1))
	return d.Get(p)
}

func (d *distribution[T]) Min() T {
	return d.pts[0].Value
}

func (d *distribution[T]) Max() T {
	return d.pts[len(d.pts)-1].Value
}

func (d *distribution[T]) Points() []Point[T] {
	out := make([]Point[T], len(d.pts))
	copy(out, d.pts)
	return out
}

func (d *distribution[T]) String() string {
	if len(d.pts) == 1 {
		return formatValue(d.pts[0].Value)
	}

	parts := make([]string, 0, len(d.pts))
	for _, p := range d.pts {
		parts = append(parts, fmt.Sprintf("%s=%s", formatPercentile(p.Percentile), formatValue(p.Value)))
	}

	return strings.Join(parts, ",")
}

func formatValue[T Numeric](v T) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 64)
}

func formatPercentile(p Percentile) string {
	return strconv.FormatFloat(float64(p)/10000, 'f', -1, 64)
}
