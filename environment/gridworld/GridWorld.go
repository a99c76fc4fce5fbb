// Package gridworld implements 2D gridworlds
package gridworld

import (
	"fmt"
	"sort"

	"github.com/samuelfneumann/gomdp/environment"
	"github.com/samuelfneumann/gomdp/mdp"
	"gorgonia.org/tensor"
)

// Actions available in a GridWorld
const (
	Left int = iota
	Right
	Up
	Down
)

// NumActions is the number of actions in a GridWorld
const NumActions int = 4

// TransitionMode determines what happens when an action fails
type TransitionMode string

const (
	// Simple transitions leave the agent in place when an action fails
	Simple TransitionMode = "Simple"

	// Full transitions move the agent in one of the three other
	// directions, chosen uniformly, when an action fails
	Full TransitionMode = "Full"
)

// GridWorld represents a gridworld with r rows and c columns.
//
// A gridworld is represented as a flattened matrix: the cell in row y
// and column x is state y*c + x. Row 0 is the top row, so Up moves
// from row y to row y-1. Moves off the grid leave the agent in place.
// Each state pays a reward when it is entered, and absorbing states
// end an episode.
type GridWorld struct {
	r, c      int
	rewards   map[int]float64
	absorbing []int
	mode      TransitionMode
	start     int
}

// New creates a new gridworld with r rows and c columns, paying
// rewards[s] for entering state s, with the given absorbing states.
// Rollouts start in state start.
func New(r, c int, rewards map[int]float64, absorbing []int,
	mode TransitionMode, start int) (*GridWorld, error) {
	if r < 1 || c < 1 {
		return nil, fmt.Errorf("new: grid must have at least one row and "+
			"column, got (%d, %d)", r, c)
	}
	if mode != Simple && mode != Full {
		return nil, fmt.Errorf("new: no such transition mode %v", mode)
	}

	for s := range rewards {
		if s < 0 || s >= r*c {
			return nil, fmt.Errorf("new: reward state %d not in [0, %d)", s,
				r*c)
		}
	}
	for _, s := range absorbing {
		if s < 0 || s >= r*c {
			return nil, fmt.Errorf("new: absorbing state %d not in [0, %d)",
				s, r*c)
		}
	}
	if start < 0 || start >= r*c {
		return nil, fmt.Errorf("new: start state %d not in [0, %d)", start,
			r*c)
	}

	rewardsCopy := make(map[int]float64, len(rewards))
	for s, reward := range rewards {
		rewardsCopy[s] = reward
	}
	absorbingCopy := append([]int(nil), absorbing...)
	sort.Ints(absorbingCopy)

	return &GridWorld{r, c, rewardsCopy, absorbingCopy, mode, start}, nil
}

// Build returns the transition and reward tensors of the gridworld when
// actions succeed with probability prob
func (g *GridWorld) Build(prob float64) (T, R *tensor.Dense, err error) {
	if err := environment.ValidateProb(prob); err != nil {
		return nil, nil, fmt.Errorf("build: %v", err)
	}

	T = mdp.NewTransitions(NumActions, g.r*g.c)
	for s := 0; s < g.r*g.c; s++ {
		for a := 0; a < NumActions; a++ {
			mdp.AddTransition(T, a, s, g.move(s, a), prob)

			switch g.mode {
			case Simple:
				mdp.AddTransition(T, a, s, s, 1-prob)

			case Full:
				slip := (1 - prob) / float64(NumActions-1)
				for other := 0; other < NumActions; other++ {
					if other != a {
						mdp.AddTransition(T, a, s, g.move(s, other), slip)
					}
				}
			}
		}
	}

	for _, s := range g.absorbing {
		if err := mdp.MakeAbsorbing(T, s); err != nil {
			return nil, nil, fmt.Errorf("build: %v", err)
		}
	}

	R, err = mdp.StateRewards(T, g.rewards)
	if err != nil {
		return nil, nil, fmt.Errorf("build: %v", err)
	}
	return T, R, nil
}

// move returns the state reached by moving from state s in the
// direction of action a
func (g *GridWorld) move(s, a int) int {
	x, y := g.Coordinates(s)

	switch a {
	case Left:
		if newX := x - 1; newX >= 0 {
			x = newX
		}

	case Right:
		if newX := x + 1; newX < g.c {
			x = newX
		}

	case Up:
		if newY := y - 1; newY >= 0 {
			y = newY
		}

	case Down:
		if newY := y + 1; newY < g.r {
			y = newY
		}
	}
	return cToInd(x, y, g.c)
}

// Coordinates converts state s to its (x, y) coordinates
func (g *GridWorld) Coordinates(s int) (x, y int) {
	y = s / g.c
	x = s - (y * g.c)
	return x, y
}

// State converts coordinates (x, y) to a state
func (g *GridWorld) State(x, y int) int {
	return cToInd(x, y, g.c)
}

func cToInd(x, y, c int) int {
	return y*c + x
}

// Rewards returns a copy of the reward paid for entering each state
func (g *GridWorld) Rewards() map[int]float64 {
	rewards := make(map[int]float64, len(g.rewards))
	for s, r := range g.rewards {
		rewards[s] = r
	}
	return rewards
}

// NumStates returns the number of states in the gridworld
func (g *GridWorld) NumStates() int {
	return g.r * g.c
}

// NumActions returns the number of actions in the gridworld
func (g *GridWorld) NumActions() int {
	return NumActions
}

// Dims gets the rows and columns of the GridWorld
func (g *GridWorld) Dims() (r, c int) {
	return g.r, g.c
}

// Start returns the starting state
func (g *GridWorld) Start() int {
	return g.start
}

// Labels returns arrows for each direction
func (g *GridWorld) Labels() map[int]string {
	return map[int]string{Left: "←", Right: "→", Up: "↑", Down: "↓"}
}

func (g *GridWorld) String() string {
	str := "GridWorld | Bounds: (%d, %d)  |  Mode: %v  |  Absorbing: %v"
	return fmt.Sprintf(str, g.r, g.c, g.mode, g.absorbing)
}
