package render

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"
	env "github.com/samuelfneumann/gomdp/environment"
)

// Terminal prints worlds as grids of text, row 0 first
type Terminal struct {
	w  io.Writer
	au aurora.Aurora
}

// NewTerminal returns a Terminal printing to w. If color is false, no
// ANSI escape codes are written.
func NewTerminal(w io.Writer, color bool) *Terminal {
	return &Terminal{w: w, au: aurora.NewAurora(color)}
}

// PrintPolicy prints the action policy takes in each state of w, with
// the start state highlighted
func (t *Terminal) PrintPolicy(w env.World, policy []int) error {
	glyphs := Glyphs(policy, w.Labels())
	start := w.Start()

	return t.printGrid(w, len(policy), func(s int) aurora.Value {
		cell := fmt.Sprintf("%3s ", glyphs[s])
		if s == start {
			return t.au.Green(cell)
		}
		return t.au.Blue(cell)
	})
}

// PrintValues prints the value of each state of w
func (t *Terminal) PrintValues(w env.World, v []float64) error {
	return t.printGrid(w, len(v), func(s int) aurora.Value {
		return t.signed(v[s])
	})
}

// PrintRewards prints the reward of each state of a world that
// describes its rewards per state. States without a reward print as 0.
func (t *Terminal) PrintRewards(w env.World, rewards map[int]float64) error {
	return t.printGrid(w, w.NumStates(), func(s int) aurora.Value {
		return t.signed(rewards[s])
	})
}

func (t *Terminal) signed(x float64) aurora.Value {
	cell := fmt.Sprintf("%8.3f ", x)
	switch {
	case x > 0:
		return t.au.Green(cell)
	case x < 0:
		return t.au.Red(cell)
	default:
		return t.au.White(cell)
	}
}

func (t *Terminal) printGrid(w env.World, n int,
	cell func(s int) aurora.Value) error {
	rows, cols, err := checkGrid(w, n)
	if err != nil {
		return fmt.Errorf("printGrid: %v", err)
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if _, err := fmt.Fprint(t.w, cell(y*cols+x)); err != nil {
				return err
			}
			if _, err := fmt.Fprint(t.w, t.au.White("|")); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(t.w); err != nil {
			return err
		}
	}
	return nil
}
