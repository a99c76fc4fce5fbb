package mdp

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gorgonia.org/tensor"
)

// Tolerance is the absolute tolerance allowed when checking that a
// transition row sums to one
const Tolerance float64 = 1e-8

// NewTransitions returns a zero transition tensor of shape
// (numActions, numStates, numStates). Entry (a, s, s') holds the
// probability of moving from state s to state s' when taking action a.
func NewTransitions(numActions, numStates int) *tensor.Dense {
	backing := make([]float64, numActions*numStates*numStates)
	return tensor.New(
		tensor.WithShape(numActions, numStates, numStates),
		tensor.WithBacking(backing),
	)
}

// NewRewards returns a zero reward tensor of shape
// (numStates, numActions, numStates). Entry (s, a, s') holds the reward
// for the transition s -> s' under action a.
func NewRewards(numStates, numActions int) *tensor.Dense {
	backing := make([]float64, numStates*numActions*numStates)
	return tensor.New(
		tensor.WithShape(numStates, numActions, numStates),
		tensor.WithBacking(backing),
	)
}

// transitionDims returns the number of actions and states described by
// a transition tensor
func transitionDims(T *tensor.Dense) (actions, states int, err error) {
	if T == nil {
		return 0, 0, fmt.Errorf("%w: nil transition tensor", ErrShapeMismatch)
	}
	if T.Dtype() != tensor.Float64 {
		return 0, 0, fmt.Errorf("%w: transition dtype %v, want %v",
			ErrShapeMismatch, T.Dtype(), tensor.Float64)
	}

	shape := T.Shape()
	if len(shape) != 3 || shape[1] != shape[2] {
		return 0, 0, fmt.Errorf("%w: transition shape %v is not "+
			"(actions, states, states)", ErrShapeMismatch, shape)
	}
	return shape[0], shape[1], nil
}

// row returns the slice of T holding the next-state distribution of
// state s under action a. The returned slice aliases T.
func row(data []float64, a, s, numStates int) []float64 {
	start := (a*numStates + s) * numStates
	return data[start : start+numStates]
}

// Transition returns T[a, s, next]
func Transition(T *tensor.Dense, a, s, next int) float64 {
	_, states, err := transitionDims(T)
	if err != nil {
		panic(fmt.Sprintf("transition: %v", err))
	}
	return row(T.Data().([]float64), a, s, states)[next]
}

// SetTransition sets T[a, s, next] = p
func SetTransition(T *tensor.Dense, a, s, next int, p float64) {
	_, states, err := transitionDims(T)
	if err != nil {
		panic(fmt.Sprintf("setTransition: %v", err))
	}
	row(T.Data().([]float64), a, s, states)[next] = p
}

// AddTransition adds p to T[a, s, next]. Several outcomes of an action
// that land on the same next state accumulate their probability.
func AddTransition(T *tensor.Dense, a, s, next int, p float64) {
	_, states, err := transitionDims(T)
	if err != nil {
		panic(fmt.Sprintf("addTransition: %v", err))
	}
	row(T.Data().([]float64), a, s, states)[next] += p
}

// Reward returns R[s, a, next]
func Reward(R *tensor.Dense, s, a, next int) float64 {
	shape := R.Shape()
	return R.Data().([]float64)[(s*shape[1]+a)*shape[2]+next]
}

// SetReward sets R[s, a, next] = r
func SetReward(R *tensor.Dense, s, a, next int, r float64) {
	shape := R.Shape()
	R.Data().([]float64)[(s*shape[1]+a)*shape[2]+next] = r
}

// MakeAbsorbing turns state into an absorbing state: under every action
// the state transitions to itself with probability 1.
func MakeAbsorbing(T *tensor.Dense, state int) error {
	actions, states, err := transitionDims(T)
	if err != nil {
		return &Error{Op: "makeAbsorbing", Err: err}
	}
	if state < 0 || state >= states {
		return &Error{
			Op:  "makeAbsorbing",
			Err: fmt.Errorf("%w: state %d not in [0, %d)", ErrInvalidSpace, state, states),
		}
	}

	data := T.Data().([]float64)
	for a := 0; a < actions; a++ {
		r := row(data, a, state, states)
		for i := range r {
			r[i] = 0.0
		}
		r[state] = 1.0
	}
	return nil
}

// IsAbsorbing returns whether state transitions to itself with
// probability 1 under every action
func IsAbsorbing(T *tensor.Dense, state int) bool {
	actions, states, err := transitionDims(T)
	if err != nil || state < 0 || state >= states {
		return false
	}

	data := T.Data().([]float64)
	for a := 0; a < actions; a++ {
		if row(data, a, state, states)[state] != 1.0 {
			return false
		}
	}
	return true
}

// CheckStochastic returns an error if any (action, state) row of T has
// a negative entry or does not sum to 1 within Tolerance
func CheckStochastic(T *tensor.Dense) error {
	actions, states, err := transitionDims(T)
	if err != nil {
		return &Error{Op: "checkStochastic", Err: err}
	}

	data := T.Data().([]float64)
	for a := 0; a < actions; a++ {
		for s := 0; s < states; s++ {
			r := row(data, a, s, states)
			if min := floats.Min(r); min < 0 {
				return &Error{
					Op: "checkStochastic",
					Err: fmt.Errorf("%w: T[%d, %d] has negative entry %v",
						ErrProbability, a, s, min),
				}
			}
			if sum := floats.Sum(r); !scalar.EqualWithinAbs(sum, 1.0, Tolerance) {
				return &Error{
					Op: "checkStochastic",
					Err: fmt.Errorf("%w: T[%d, %d] sums to %v",
						ErrProbability, a, s, sum),
				}
			}
		}
	}
	return nil
}

// StateRewards builds a reward tensor from per-state rewards, paying
// rewards[s'] whenever a transition arrives in s'. States missing from
// rewards pay nothing. Transitions leaving an absorbing state of T pay
// nothing, so that the reward for reaching a terminal state is received
// once.
func StateRewards(T *tensor.Dense, rewards map[int]float64) (*tensor.Dense, error) {
	actions, states, err := transitionDims(T)
	if err != nil {
		return nil, &Error{Op: "stateRewards", Err: err}
	}
	for s := range rewards {
		if s < 0 || s >= states {
			return nil, &Error{
				Op:  "stateRewards",
				Err: fmt.Errorf("%w: state %d not in [0, %d)", ErrInvalidSpace, s, states),
			}
		}
	}

	R := NewRewards(states, actions)
	for s := 0; s < states; s++ {
		if IsAbsorbing(T, s) {
			continue
		}
		for a := 0; a < actions; a++ {
			for next, r := range rewards {
				SetReward(R, s, a, next, r)
			}
		}
	}
	return R, nil
}
