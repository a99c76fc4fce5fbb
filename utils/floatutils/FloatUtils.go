// Package floatutils provides utilities for working with floats
package floatutils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// Linspace returns n evenly spaced values over [start, stop], both ends
// included
func Linspace(start, stop float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, stop)
}

// Arange returns the values start, start+step, ... strictly below stop.
// Values are computed as start + i*step so that rounding error does not
// accumulate.
func Arange(start, stop, step float64) ([]float64, error) {
	if step <= 0 {
		return nil, fmt.Errorf("arange: step must be positive, got %v", step)
	}

	var values []float64
	for i := 0; ; i++ {
		v := start + float64(i)*step
		if v >= stop {
			break
		}
		values = append(values, v)
	}
	return values, nil
}
