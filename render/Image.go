package render

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
	env "github.com/samuelfneumann/gomdp/environment"
	"github.com/samuelfneumann/gomdp/utils/floatutils"
)

// DefaultCellSize is the default width and height of a state, in pixels
const DefaultCellSize int = 64

// PolicyImage draws the grid of w with each state shaded by its value in
// v and an arrow in the direction of the action policy takes. Actions
// with no direction are drawn as a dot. The start state is outlined.
func PolicyImage(w env.World, policy []int, v []float64,
	cellSize int) (image.Image, error) {
	rows, cols, err := checkGrid(w, len(policy))
	if err != nil {
		return nil, fmt.Errorf("policyImage: %v", err)
	}
	if len(v) != len(policy) {
		return nil, fmt.Errorf("policyImage: %d values for %d states",
			len(v), len(policy))
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("policyImage: cell size must be positive, "+
			"got %d", cellSize)
	}

	size := float64(cellSize)
	dc := gg.NewContext(cols*cellSize, rows*cellSize)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, value := range v {
		lo = math.Min(lo, value)
		hi = math.Max(hi, value)
	}

	dirs := Directions(w)
	for s, a := range policy {
		x, y := float64(s%cols)*size, float64(s/cols)*size

		// Shade from white (lowest value) to green (highest value)
		shade := 0.0
		if hi > lo {
			shade = floatutils.Clip((v[s]-lo)/(hi-lo), 0, 1)
		}
		dc.DrawRectangle(x, y, size, size)
		dc.SetRGB(1-0.6*shade, 1-0.2*shade, 1-0.6*shade)
		dc.Fill()

		dc.DrawRectangle(x, y, size, size)
		dc.SetRGB(0.3, 0.3, 0.3)
		dc.SetLineWidth(1)
		dc.Stroke()

		cx, cy := x+size/2, y+size/2
		dir, ok := dirs[a]
		dc.SetRGB(0.1, 0.1, 0.4)
		if !ok || (dir[0] == 0 && dir[1] == 0) {
			dc.DrawCircle(cx, cy, size/10)
			dc.Fill()
			continue
		}
		drawArrow(dc, cx, cy, dir, size*0.35)
	}

	start := w.Start()
	dc.DrawRectangle(float64(start%cols)*size+2, float64(start/cols)*size+2,
		size-4, size-4)
	dc.SetRGB(0.8, 0.1, 0.1)
	dc.SetLineWidth(3)
	dc.Stroke()

	return dc.Image(), nil
}

// SavePolicyPNG draws the policy image of w and saves it to filename
func SavePolicyPNG(filename string, w env.World, policy []int,
	v []float64) error {
	img, err := PolicyImage(w, policy, v, DefaultCellSize)
	if err != nil {
		return fmt.Errorf("savePolicyPNG: %w", err)
	}

	if err := gg.SavePNG(filename, img); err != nil {
		return fmt.Errorf("savePolicyPNG: %v", err)
	}
	return nil
}

// drawArrow draws an arrow of length length centred on (cx, cy) pointing
// in direction dir
func drawArrow(dc *gg.Context, cx, cy float64, dir [2]float64,
	length float64) {
	norm := math.Hypot(dir[0], dir[1])
	dx, dy := dir[0]/norm, dir[1]/norm

	x1, y1 := cx-dx*length/2, cy-dy*length/2
	x2, y2 := cx+dx*length/2, cy+dy*length/2

	dc.SetLineWidth(3)
	dc.DrawLine(x1, y1, x2, y2)
	dc.Stroke()

	// Arrow head
	head := length / 3
	angle := math.Atan2(dy, dx)
	for _, side := range []float64{-1, 1} {
		theta := angle + math.Pi - side*math.Pi/6
		dc.DrawLine(x2, y2, x2+head*math.Cos(theta), y2+head*math.Sin(theta))
	}
	dc.Stroke()
}
