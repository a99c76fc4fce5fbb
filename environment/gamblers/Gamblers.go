// Package gamblers implements the gambler's world: a three row grid in
// which the agent walks along the middle row and may stop to gamble on
// reaching a large reward below or landing in a dead end above
package gamblers

import (
	"fmt"

	"github.com/samuelfneumann/gomdp/environment"
	"github.com/samuelfneumann/gomdp/mdp"
	"gorgonia.org/tensor"
)

// Actions available in the gambler's world
const (
	Stay int = iota
	Continue
	Wait
	Finish
)

const (
	// Height is the number of rows of the gambler's world
	Height int = 3

	// GoalProb is the probability used for whichever of continuing or
	// finishing is not varied
	GoalProb float64 = 0.8

	DefaultWidth  int     = 5
	DefaultProb   float64 = 0.72
	DefaultGamma  float64 = 0.9
	DefaultBigR   float64 = 5
	DefaultSmallR float64 = 1
)

// Gamblers is a Height x width grid. States of the top row (0 to
// width-1) are dead ends, paying smallR apart from the corners. States
// of the bottom row (2*width to 3*width-1) are goals, paying bigR apart
// from the corners. The middle row starts at state width, which pays
// smallR, and ends at state 2*width-1, which pays bigR. All of these
// states are absorbing.
//
// From the interior of the middle row, Continue moves one state right
// with the continuation probability and one state left otherwise, and
// Finish drops to the goal below with the finishing probability and
// rises to the dead end above otherwise. Stay and Wait leave the agent
// in place.
type Gamblers struct {
	width  int
	bigR   float64
	smallR float64

	// varyContinuation determines whether the probability passed to
	// Build is the continuation probability (with GoalProb the
	// finishing probability) or the finishing probability (with
	// GoalProb the continuation probability)
	varyContinuation bool
}

// New returns a new gambler's world
func New(width int, bigR, smallR float64, varyContinuation bool) (*Gamblers,
	error) {
	if width < 3 {
		return nil, fmt.Errorf("new: width must be at least 3, got %d", width)
	}
	return &Gamblers{width, bigR, smallR, varyContinuation}, nil
}

// Build returns the transition and reward tensors of the world using
// prob as the varied probability
func (g *Gamblers) Build(prob float64) (T, R *tensor.Dense, err error) {
	if err := environment.ValidateProb(prob); err != nil {
		return nil, nil, fmt.Errorf("build: %v", err)
	}

	contProb, finishProb := prob, GoalProb
	if !g.varyContinuation {
		contProb, finishProb = GoalProb, prob
	}

	w := g.width
	T = mdp.NewTransitions(4, Height*w)

	for s := w + 1; s < 2*w-1; s++ {
		mdp.SetTransition(T, Continue, s, s-1, 1-contProb)
		mdp.AddTransition(T, Continue, s, s+1, contProb)

		mdp.SetTransition(T, Finish, s, s-w, 1-finishProb)
		mdp.AddTransition(T, Finish, s, s+w, finishProb)
	}

	for s := 0; s < Height*w; s++ {
		mdp.SetTransition(T, Stay, s, s, 1.0)
		mdp.SetTransition(T, Wait, s, s, 1.0)
	}

	for _, s := range g.terminals() {
		if err := mdp.MakeAbsorbing(T, s); err != nil {
			return nil, nil, fmt.Errorf("build: %v", err)
		}
	}

	R, err = mdp.StateRewards(T, g.Rewards())
	if err != nil {
		return nil, nil, fmt.Errorf("build: %v", err)
	}
	return T, R, nil
}

// terminals returns the absorbing states: the whole top and bottom
// rows and both ends of the middle row
func (g *Gamblers) terminals() []int {
	w := g.width
	terminals := []int{w, 2*w - 1}
	for s := 0; s < w; s++ {
		terminals = append(terminals, s, 2*w+s)
	}
	return terminals
}

// Goals returns the states that pay a reward
func (g *Gamblers) Goals() []int {
	w := g.width
	goals := []int{w, 2*w - 1}
	for i := 1; i < w-1; i++ {
		goals = append(goals, i, 2*w+i)
	}
	return goals
}

// Rewards returns the reward paid for arriving in each state
func (g *Gamblers) Rewards() map[int]float64 {
	w := g.width
	rewards := make(map[int]float64, Height*w)
	for s := 0; s < Height*w; s++ {
		rewards[s] = 0
	}

	rewards[w] = g.smallR
	rewards[2*w-1] = g.bigR
	for i := 1; i < w-1; i++ {
		rewards[i] = g.smallR
		rewards[2*w+i] = g.bigR
	}
	return rewards
}

// NumStates returns the number of states in the world
func (g *Gamblers) NumStates() int {
	return Height * g.width
}

// NumActions returns the number of actions in the world
func (g *Gamblers) NumActions() int {
	return 4
}

// Dims returns the rows and columns of the world
func (g *Gamblers) Dims() (rows, cols int) {
	return Height, g.width
}

// Start returns the first interior state of the middle row
func (g *Gamblers) Start() int {
	return g.width + 1
}

// Labels returns a label for each action
func (g *Gamblers) Labels() map[int]string {
	return map[int]string{Stay: "·", Continue: "→", Wait: "○", Finish: "↓"}
}

// Directions returns the grid direction, as (dx, dy), of each action
// that moves the agent. Stay and Wait have no direction.
func (g *Gamblers) Directions() map[int][2]float64 {
	return map[int][2]float64{Continue: {1, 0}, Finish: {0, 1}}
}

func (g *Gamblers) String() string {
	return fmt.Sprintf("Gamblers | Width: %d  |  Big Reward: %.2f  |  "+
		"Small Reward: %.2f  |  Vary Continuation: %v", g.width, g.bigR,
		g.smallR, g.varyContinuation)
}
