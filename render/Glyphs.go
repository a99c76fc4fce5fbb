// Package render draws the policies and values of solved worlds, in the
// terminal, as HTML heat maps, and as PNG images
package render

import (
	"fmt"
	"strconv"

	env "github.com/samuelfneumann/gomdp/environment"
)

// Arrows maps the Left, Right, Up, and Down actions shared by the
// corridor, river swim, and grid worlds to their grid directions. Row 0
// is drawn at the top, so Up has a negative dy.
var Arrows = map[int][2]float64{
	0: {-1, 0},
	1: {1, 0},
	2: {0, -1},
	3: {0, 1},
}

// Directed is implemented by worlds whose actions do not follow Arrows
type Directed interface {
	Directions() map[int][2]float64
}

// Directions returns the grid direction of each action of w
func Directions(w env.World) map[int][2]float64 {
	if d, ok := w.(Directed); ok {
		return d.Directions()
	}
	return Arrows
}

// DefaultLabels labels each of numActions actions with its index
func DefaultLabels(numActions int) map[int]string {
	labels := make(map[int]string, numActions)
	for a := 0; a < numActions; a++ {
		labels[a] = strconv.Itoa(a)
	}
	return labels
}

// Glyphs returns the label of the action taken in each state by policy.
// Actions with no label are labelled by their index.
func Glyphs(policy []int, labels map[int]string) []string {
	glyphs := make([]string, len(policy))
	for s, a := range policy {
		if l, ok := labels[a]; ok {
			glyphs[s] = l
		} else {
			glyphs[s] = strconv.Itoa(a)
		}
	}
	return glyphs
}

// checkGrid returns an error if n values cannot be laid out on the grid
// of w
func checkGrid(w env.World, n int) (rows, cols int, err error) {
	rows, cols = w.Dims()
	if rows*cols != n {
		return 0, 0, fmt.Errorf("%d values cannot fill the %d x %d grid of %v",
			n, rows, cols, w)
	}
	return rows, cols, nil
}
