// Package environment outlines the interfaces and structs needed to
// implement worlds that can be solved as finite MDPs.
//
// A World builds the transition and reward tensors of an MDP. Every
// World must produce a transition tensor of shape
// (actions, states, states) in which each T[a, s, :] is a probability
// distribution, and a reward tensor of shape (states, actions, states).
// Worlds usually describe rewards per state and convert them with
// mdp.StateRewards, and end episodes at goals, cliffs, or dead ends
// with mdp.MakeAbsorbing.
package environment

import (
	"fmt"

	"github.com/samuelfneumann/gomdp/timestep"
	"gorgonia.org/tensor"
)

// Starter implements a distribution of starting states and samples
// starting states for rollouts
type Starter interface {
	Start() int
}

// Ender determines when a rollout should end. If the rollout should end
// at the argument TimeStep, End sets its StepType to timestep.Last and
// returns true.
type Ender interface {
	End(*timestep.TimeStep) bool
}

// World implements a family of MDPs over a fixed state and action space,
// parameterized by the probability that an action succeeds
type World interface {
	fmt.Stringer

	// Build returns the transition and reward tensors of the world when
	// actions succeed with probability prob
	Build(prob float64) (T, R *tensor.Dense, err error)

	NumStates() int
	NumActions() int

	// Dims returns the rows and columns of the grid the states are laid
	// out on, with state y*cols + x in row y and column x
	Dims() (rows, cols int)

	// Start returns the state rollouts start from
	Start() int

	// Labels returns a short label for each action
	Labels() map[int]string
}

// Spaces returns the state and action spaces of a World as the
// consecutive integers starting from zero
func Spaces(w World) (states, actions []int) {
	states = make([]int, w.NumStates())
	for i := range states {
		states[i] = i
	}
	actions = make([]int, w.NumActions())
	for i := range actions {
		actions[i] = i
	}
	return states, actions
}

// ValidateProb returns an error if prob is not a probability
func ValidateProb(prob float64) error {
	if !(prob >= 0 && prob <= 1) {
		return fmt.Errorf("probability must be in [0, 1], got %v", prob)
	}
	return nil
}
