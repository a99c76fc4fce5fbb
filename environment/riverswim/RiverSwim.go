// Package riverswim implements the river swim world: a row of states
// with a small reward at the left bank and a large reward at the right
// bank, where swimming right fights the current
package riverswim

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/gomdp/environment"
	"github.com/samuelfneumann/gomdp/mdp"
	"github.com/samuelfneumann/gomdp/utils/intutils"
	"gorgonia.org/tensor"
)

// Actions available in the river
const (
	Left int = iota
	Right
)

// Default parameters of the river swim world
const (
	DefaultWidth  int     = 7
	DefaultProb   float64 = 0.8
	DefaultGamma  float64 = 0.9
	DefaultBigR   float64 = 5
	DefaultSmallR float64 = 1
	StartState    int     = 1

	// Drift is the probability that swimming right is pushed back one
	// state by the current
	Drift float64 = 0.05
)

// RiverSwim is a row of width states. Swimming left always succeeds.
// Swimming right moves right with probability prob, is pushed back left
// with probability min(Drift, 1-prob), and otherwise stays in place.
// Arriving in the leftmost state pays smallR and arriving in the
// rightmost state pays bigR.
type RiverSwim struct {
	width  int
	bigR   float64
	smallR float64
}

// New returns a new RiverSwim world
func New(width int, bigR, smallR float64) (*RiverSwim, error) {
	if width < 2 {
		return nil, fmt.Errorf("new: width must be at least 2, got %d", width)
	}
	return &RiverSwim{width, bigR, smallR}, nil
}

// Build returns the transition and reward tensors of the river when
// swimming right succeeds with probability prob
func (r *RiverSwim) Build(prob float64) (T, R *tensor.Dense, err error) {
	if err := environment.ValidateProb(prob); err != nil {
		return nil, nil, fmt.Errorf("build: %v", err)
	}

	n := r.width
	drift := math.Min(Drift, 1-prob)
	stay := 1 - prob - drift

	T = mdp.NewTransitions(2, n)
	for s := 0; s < n; s++ {
		mdp.AddTransition(T, Left, s, clip(s-1, n), 1.0)

		mdp.AddTransition(T, Right, s, clip(s+1, n), prob)
		mdp.AddTransition(T, Right, s, clip(s-1, n), drift)
		mdp.AddTransition(T, Right, s, s, stay)
	}

	R, err = mdp.StateRewards(T, r.rewards())
	if err != nil {
		return nil, nil, fmt.Errorf("build: %v", err)
	}
	return T, R, nil
}

// rewards returns the reward paid for arriving in each state
func (r *RiverSwim) rewards() map[int]float64 {
	return map[int]float64{
		0:           r.smallR,
		r.width - 1: r.bigR,
	}
}

// clip keeps a state index within the river
func clip(s, n int) int {
	return intutils.Min(intutils.Max(s, 0), n-1)
}

// NumStates returns the number of states in the river
func (r *RiverSwim) NumStates() int {
	return r.width
}

// NumActions returns the number of actions in the river
func (r *RiverSwim) NumActions() int {
	return 2
}

// Dims returns the dimensions of the river, a single row
func (r *RiverSwim) Dims() (rows, cols int) {
	return 1, r.width
}

// Start returns StartState, or the last state in a river too narrow to
// hold it
func (r *RiverSwim) Start() int {
	if StartState >= r.width {
		return r.width - 1
	}
	return StartState
}

// Labels returns arrows for the left and right actions
func (r *RiverSwim) Labels() map[int]string {
	return map[int]string{Left: "←", Right: "→"}
}

func (r *RiverSwim) String() string {
	return fmt.Sprintf("RiverSwim | Width: %d  |  Big Reward: %.2f  |  "+
		"Small Reward: %.2f", r.width, r.bigR, r.smallR)
}
