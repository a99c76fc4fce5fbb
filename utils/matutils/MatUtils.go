// Package matutils implements utility function for working with mat.Matrix
// structs
package matutils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Format formats a matrix for printing
func Format(X mat.Matrix) string {
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	return fmt.Sprintf("%v", fa)
}

// MaxVec finds and returns the index of the maximum value in a vector.
// If multiple equal max values exist, only the first one is returned.
func MaxVec(values mat.Vector) int {
	max, idx := values.AtVec(0), 0
	numActions := values.Len()

	for i := 0; i < numActions; i++ {
		if values.AtVec(i) > max {
			max = values.AtVec(i)
			idx = i
		}
	}
	return idx
}

// MaxAbsDiff returns the largest element-wise absolute difference
// between two vectors of equal length
func MaxAbsDiff(a, b mat.Vector) float64 {
	if a.Len() != b.Len() {
		panic(fmt.Sprintf("maxAbsDiff: lengths %d and %d differ", a.Len(),
			b.Len()))
	}

	diff := 0.0
	for i := 0; i < a.Len(); i++ {
		diff = math.Max(diff, math.Abs(a.AtVec(i)-b.AtVec(i)))
	}
	return diff
}

// Reshape returns the vector v laid out as a matrix of r rows and c
// columns in row-major order
func Reshape(v mat.Vector, r, c int) *mat.Dense {
	if r*c != v.Len() {
		panic(fmt.Sprintf("reshape: cannot reshape vector of length %d to "+
			"shape (%d, %d)", v.Len(), r, c))
	}

	data := make([]float64, v.Len())
	for i := range data {
		data[i] = v.AtVec(i)
	}
	return mat.NewDense(r, c, data)
}
