// Package mdp implements finite Markov Decision Processes over discrete
// state and action spaces and solves them with value iteration.
//
// An MDP is built from a transition tensor T of shape
// (actions, states, states) and a reward tensor R of shape
// (states, actions, states). Each MDP exclusively owns copies of its
// tensors together with its value function and policy, so that distinct
// MDPs can be solved concurrently without locking.
package mdp

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/gomdp/utils/matutils"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
	"gorgonia.org/tensor"
)

// MDP is a finite Markov Decision Process together with the state of
// its value iteration solver.
//
// States and actions are identified by integers but addressed by their
// position in the state and action spaces: V[i] and Policy()[i] belong
// to the i-th state, and Policy()[i] is the position of an action.
type MDP struct {
	states  []int
	actions []int

	transitions *tensor.Dense
	rewards     *tensor.Dense
	t, r        []float64 // backing data of transitions and rewards

	gamma     float64
	theta     float64
	maxSweeps int
	update    UpdateType

	v      *mat.VecDense
	policy []int

	state int // position of the current state, used for rollouts
}

// New creates a new MDP with the default solver Config
func New(states, actions []int, T, R *tensor.Dense, gamma float64) (*MDP,
	error) {
	return NewWithConfig(states, actions, T, R, gamma, DefaultConfig())
}

// NewWithConfig creates a new MDP over the argument states and actions.
// T must have shape (len(actions), len(states), len(states)) and every
// T[a, s, :] must be a probability distribution. R must have shape
// (len(states), len(actions), len(states)). The discount gamma must be
// in [0, 1). Zero fields of c are replaced by their defaults.
//
// The value function and policy start at zero and the current state
// starts at the first state.
func NewWithConfig(states, actions []int, T, R *tensor.Dense, gamma float64,
	c Config) (*MDP, error) {
	c = c.withDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := distinct("states", states); err != nil {
		return nil, &Error{Op: "new", Err: err}
	}
	if err := distinct("actions", actions); err != nil {
		return nil, &Error{Op: "new", Err: err}
	}

	if math.IsNaN(gamma) || gamma < 0 || gamma >= 1 {
		return nil, &Error{
			Op:  "new",
			Err: fmt.Errorf("%w: got %v", ErrInvalidDiscount, gamma),
		}
	}

	numStates, numActions := len(states), len(actions)

	tActions, tStates, err := transitionDims(T)
	if err != nil {
		return nil, &Error{Op: "new", Err: err}
	}
	if tActions != numActions || tStates != numStates {
		return nil, &Error{
			Op: "new",
			Err: fmt.Errorf("%w: transition shape %v, want (%d, %d, %d)",
				ErrShapeMismatch, T.Shape(), numActions, numStates, numStates),
		}
	}

	if R == nil || R.Dtype() != tensor.Float64 {
		return nil, &Error{
			Op:  "new",
			Err: fmt.Errorf("%w: reward tensor must be float64", ErrShapeMismatch),
		}
	}
	if !R.Shape().Eq(tensor.Shape{numStates, numActions, numStates}) {
		return nil, &Error{
			Op: "new",
			Err: fmt.Errorf("%w: reward shape %v, want (%d, %d, %d)",
				ErrShapeMismatch, R.Shape(), numStates, numActions, numStates),
		}
	}

	if err := CheckStochastic(T); err != nil {
		return nil, err
	}

	transitions := T.Clone().(*tensor.Dense)
	rewards := R.Clone().(*tensor.Dense)

	return &MDP{
		states:      append([]int(nil), states...),
		actions:     append([]int(nil), actions...),
		transitions: transitions,
		rewards:     rewards,
		t:           transitions.Data().([]float64),
		r:           rewards.Data().([]float64),
		gamma:       gamma,
		theta:       c.Theta,
		maxSweeps:   c.MaxSweeps,
		update:      c.Update,
		v:           mat.NewVecDense(numStates, nil),
		policy:      make([]int, numStates),
		state:       0,
	}, nil
}

// distinct returns an error if ids is empty or holds a repeated id
func distinct(name string, ids []int) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: no %s", ErrInvalidSpace, name)
	}

	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s repeat id %d", ErrInvalidSpace, name, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// ActionValues returns the one-step Bellman backup of every action in
// the state at position state under the current value function:
//
//	Q[a] = Σ_s' T[a, state, s'] * (R[state, a, s'] + γ * V[s'])
//
// ActionValues does not modify the MDP.
func (m *MDP) ActionValues(state int) *mat.VecDense {
	if state < 0 || state >= len(m.states) {
		panic(fmt.Sprintf("actionValues: state %d not in [0, %d)", state,
			len(m.states)))
	}
	return m.backup(state, m.v.RawVector().Data)
}

// backup computes the action values of state s using the value function v
func (m *MDP) backup(s int, v []float64) *mat.VecDense {
	numStates, numActions := len(m.states), len(m.actions)
	values := mat.NewVecDense(numActions, nil)

	for a := 0; a < numActions; a++ {
		probs := row(m.t, a, s, numStates)
		start := (s*numActions + a) * numStates
		rewards := m.r[start : start+numStates]

		var q float64
		for next, p := range probs {
			if p == 0 {
				continue
			}
			q += p * (rewards[next] + m.gamma*v[next])
		}
		values.SetVec(a, q)
	}
	return values
}

// ValueIteration runs value iteration until the largest change of the
// value function over a full sweep of the states is below theta. It
// returns the number of sweeps performed. If the value function has not
// settled after the configured maximum number of sweeps, an error
// satisfying IsNonConvergence is returned.
//
// Each sweep visits states in order, and for each state sets the policy
// to the first action of maximal value and the value function to that
// maximal value. With the InPlace update the new value of a state is
// seen by the states after it in the same sweep. With the Synchronous
// update every backup of a sweep reads the previous sweep's values.
func (m *MDP) ValueIteration() (int, error) {
	for sweep := 1; sweep <= m.maxSweeps; sweep++ {
		if delta := m.sweep(); delta < m.theta {
			return sweep, nil
		}
	}

	return m.maxSweeps, &Error{
		Op: "valueIteration",
		Err: fmt.Errorf("%w: change still at least %v after %d sweeps",
			ErrNonConvergence, m.theta, m.maxSweeps),
	}
}

// sweep performs a single sweep over all states and returns the largest
// absolute change in the value function
func (m *MDP) sweep() float64 {
	old := mat.VecDenseCopyOf(m.v)

	source := m.v.RawVector().Data
	if m.update == Synchronous {
		source = old.RawVector().Data
	}

	for s := range m.states {
		values := m.backup(s, source)
		best := matutils.MaxVec(values)

		m.policy[s] = best
		m.v.SetVec(s, values.AtVec(best))
	}

	return matutils.MaxAbsDiff(old, m.v)
}

// Solve runs value iteration and returns the resulting value function
// and greedy policy. If value iteration does not converge, the
// partially converged Solution is returned together with the error.
func (m *MDP) Solve() (Solution, error) {
	sweeps, err := m.ValueIteration()
	return Solution{
		V:      m.V().RawVector().Data,
		Policy: m.Policy(),
		Sweeps: sweeps,
	}, err
}

// Reset restores the current state to the first state. The value
// function and policy are not modified.
func (m *MDP) Reset() {
	m.state = 0
}

// State returns the position of the current state
func (m *MDP) State() int {
	return m.state
}

// SetState sets the current state to the state at position state
func (m *MDP) SetState(state int) error {
	if state < 0 || state >= len(m.states) {
		return &Error{
			Op:  "setState",
			Err: fmt.Errorf("%w: state %d not in [0, %d)", ErrInvalidSpace, state, len(m.states)),
		}
	}
	m.state = state
	return nil
}

// Step takes the action at position action from the current state,
// sampling the next state from the transition tensor using src. The
// current state is moved to the next state, and the next state and the
// reward of the transition are returned.
func (m *MDP) Step(action int, src rand.Source) (next int, reward float64,
	err error) {
	numStates, numActions := len(m.states), len(m.actions)
	if action < 0 || action >= numActions {
		return m.state, 0, &Error{
			Op:  "step",
			Err: fmt.Errorf("%w: action %d not in [0, %d)", ErrInvalidSpace, action, numActions),
		}
	}

	probs := row(m.t, action, m.state, numStates)
	next = int(distuv.NewCategorical(probs, src).Rand())
	reward = m.r[(m.state*numActions+action)*numStates+next]

	m.state = next
	return next, reward, nil
}

// States returns a copy of the state space
func (m *MDP) States() []int {
	return append([]int(nil), m.states...)
}

// Actions returns a copy of the action space
func (m *MDP) Actions() []int {
	return append([]int(nil), m.actions...)
}

// Gamma returns the discount factor
func (m *MDP) Gamma() float64 {
	return m.gamma
}

// Theta returns the convergence threshold of value iteration
func (m *MDP) Theta() float64 {
	return m.theta
}

// V returns a copy of the current value function
func (m *MDP) V() *mat.VecDense {
	return mat.VecDenseCopyOf(m.v)
}

// Policy returns a copy of the current greedy policy
func (m *MDP) Policy() []int {
	return append([]int(nil), m.policy...)
}

// Transitions returns a copy of the transition tensor
func (m *MDP) Transitions() *tensor.Dense {
	return m.transitions.Clone().(*tensor.Dense)
}

// Rewards returns a copy of the reward tensor
func (m *MDP) Rewards() *tensor.Dense {
	return m.rewards.Clone().(*tensor.Dense)
}

func (m *MDP) String() string {
	str := "MDP | States: %d  |  Actions: %d  |  Discount: %.3f  |  " +
		"Update: %v"
	return fmt.Sprintf(str, len(m.states), len(m.actions), m.gamma, m.update)
}
