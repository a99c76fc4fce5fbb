package mdp

import (
	"fmt"
)

// Solution is the outcome of solving an MDP
type Solution struct {
	V      []float64 // value of each state
	Policy []int     // greedy action position of each state
	Sweeps int       // number of value iteration sweeps performed
}

// Value returns the value of the state at position state
func (s Solution) Value(state int) float64 {
	return s.V[state]
}

// Action returns the greedy action position of the state at position
// state
func (s Solution) Action(state int) int {
	return s.Policy[state]
}

func (s Solution) String() string {
	return fmt.Sprintf("Solution | V: %.4f  |  Policy: %v  |  Sweeps: %d",
		s.V, s.Policy, s.Sweeps)
}
