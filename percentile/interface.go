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

// Package percentile implements a fixed-point percentile scale and a
// piecewise-linear distribution built over it, used to shape sampled
// latencies and response sizes.
package percentile

import (
	liberr "github.com/sabouaram/ortgo/errors"
)

const (
	// Min is the lowest valid Percentile (the 0th percentile).
	Min Percentile = 0
	// Max is the highest valid Percentile, expressed with four decimal
	// digits of precision past percent (100.0000% == 1_000_000).
	Max Percentile = 1_000_000
)

// Percentile is a fixed-point ratio in [Min, Max].
type Percentile uint32

// Point pairs a Percentile with the sampled value it carries.
type Point[T Numeric] struct {
	Percentile Percentile
	Value      T
}

// Numeric is the set of value types a Distribution may carry.
type Numeric interface {
	~int64 | ~uint64 | ~float64
}

// Distribution is an ordered, piecewise-linear mapping from Percentile to a
// sampled value. Min and Max keys are always present and values are
// monotonically non-decreasing in percentile order.
type Distribution[T Numeric] interface {
	// Get returns the value at percentile p, interpolating linearly between
	// the nearest lower and higher explicit points when p is not itself a
	// key of the distribution.
	Get(p Percentile) T

	// Sample draws a uniform random percentile in [Min, Max] and returns
	// the interpolated value at that point.
	Sample() T

	// Min returns the value associated with the Min percentile.
	Min() T

	// Max returns the value associated with the Max percentile.
	Max() T

	// Points returns the explicit (percentile, value) pairs, sorted by
	// percentile ascending.
	Points() []Point[T]

	// String renders the distribution back into its parseable form.
	String() string
}

const (
	ErrInvalidPercentile liberr.CodeError = liberr.CodeError(iota + 4000)
	ErrInvalidValue
	ErrUnordered
)

func init() {
	if liberr.ExistInMapMessage(ErrInvalidPercentile) {
		panic("code error for 'ErrInvalidPercentile' already exists")
	}
	liberr.RegisterIdFctMessage(ErrInvalidPercentile, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrInvalidPercentile:
		return "percentile is out of the valid [0,100] range"
	case ErrInvalidValue:
		return "value cannot be parsed for the given percentile"
	case ErrUnordered:
		return "distribution values are not monotonically non-decreasing"
	}

	return liberr.NullMessage
}
