// Package corridor implements a one dimensional corridor world in which
// the agent walks left or right towards a reward at the right end
package corridor

import (
	"fmt"

	"github.com/samuelfneumann/gomdp/environment"
	"github.com/samuelfneumann/gomdp/mdp"
	"gorgonia.org/tensor"
)

// Actions available in the corridor
const (
	Left int = iota
	Right
)

const (
	DefaultGamma   float64 = 0.8
	DefaultProb    float64 = 0.8
	TerminalReward float64 = 10.0
	MinLength      int     = 2
)

// Corridor is a row of length states. Moving left or right succeeds
// with some probability and otherwise leaves the agent in place. The
// right end is absorbing. Stepping right from the second to last state
// into the last state pays a reward.
type Corridor struct {
	length int
	reward float64
}

// New returns a new Corridor of length states paying TerminalReward
func New(length int) (*Corridor, error) {
	return NewWithReward(length, TerminalReward)
}

// NewWithReward returns a new Corridor of length states paying reward
// for arriving at the right end
func NewWithReward(length int, reward float64) (*Corridor, error) {
	if length < MinLength {
		return nil, fmt.Errorf("new: length must be at least %d, got %d",
			MinLength, length)
	}
	return &Corridor{length, reward}, nil
}

// Build returns the transition and reward tensors of the corridor when
// moving succeeds with probability prob.
//
// Under Left, the end states stay in place with probability 1 and
// every other state stays with probability 1-prob and moves one state
// left with probability prob. Under Right, the last state stays in
// place with probability 1 and every other state stays with probability
// 1-prob and moves one state right with probability prob. The only
// reward is paid for (length-2, Right, length-1).
func (c *Corridor) Build(prob float64) (T, R *tensor.Dense, err error) {
	if err := environment.ValidateProb(prob); err != nil {
		return nil, nil, fmt.Errorf("build: %v", err)
	}

	n := c.length
	T = mdp.NewTransitions(2, n)

	// Left: absorbing at both ends
	mdp.SetTransition(T, Left, 0, 0, 1.0)
	mdp.SetTransition(T, Left, n-1, n-1, 1.0)
	for s := 1; s < n-1; s++ {
		mdp.SetTransition(T, Left, s, s, 1-prob)
		mdp.SetTransition(T, Left, s, s-1, prob)
	}

	// Right: absorbing at the right end
	for s := 0; s < n-1; s++ {
		mdp.SetTransition(T, Right, s, s, 1-prob)
		mdp.SetTransition(T, Right, s, s+1, prob)
	}
	mdp.SetTransition(T, Right, n-1, n-1, 1.0)

	R = mdp.NewRewards(n, 2)
	mdp.SetReward(R, n-2, Right, n-1, c.reward)

	return T, R, nil
}

// NumStates returns the number of states in the corridor
func (c *Corridor) NumStates() int {
	return c.length
}

// NumActions returns the number of actions in the corridor
func (c *Corridor) NumActions() int {
	return 2
}

// Dims returns the dimensions of the corridor, a single row
func (c *Corridor) Dims() (rows, cols int) {
	return 1, c.length
}

// Start returns the leftmost state
func (c *Corridor) Start() int {
	return 0
}

// Labels returns arrows for the left and right actions
func (c *Corridor) Labels() map[int]string {
	return map[int]string{Left: "←", Right: "→"}
}

func (c *Corridor) String() string {
	return fmt.Sprintf("Corridor | Length: %d  |  Reward: %.2f", c.length,
		c.reward)
}
