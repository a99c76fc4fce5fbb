// Package experiment implements functionality for studying how an
// agent's beliefs about a world change its optimal behaviour.
//
// An Experiment holds the parameters that generated an MDP from a World
// and exclusively owns that MDP. Changing the discount factor (Myopic),
// the assumed probability that actions succeed (Confident), or the
// rewards (Reward) discards the MDP and builds a new one. The old MDP
// is never modified.
package experiment

import (
	"fmt"

	env "github.com/samuelfneumann/gomdp/environment"
	"github.com/samuelfneumann/gomdp/mdp"
	"gorgonia.org/tensor"
)

// Experiment owns an MDP built from a World
type Experiment struct {
	world  env.World
	prob   float64
	gamma  float64
	config mdp.Config

	T, R *tensor.Dense
	mdp  *mdp.MDP
}

// New creates a new Experiment on world w, in which actions succeed
// with probability prob and rewards are discounted by gamma. The MDP of
// the Experiment is solved with the solver configuration c.
func New(w env.World, prob, gamma float64, c mdp.Config) (*Experiment,
	error) {
	T, R, err := w.Build(prob)
	if err != nil {
		return nil, fmt.Errorf("new: could not build world %v: %w", w, err)
	}

	e := &Experiment{world: w, prob: prob, gamma: gamma, config: c}
	if err := e.rebuild(T, R, gamma); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	return e, nil
}

// rebuild replaces the MDP of the Experiment with a new MDP using
// transitions T, rewards R, and discount gamma. The Experiment is left
// unchanged if the new MDP cannot be created.
func (e *Experiment) rebuild(T, R *tensor.Dense, gamma float64) error {
	states, actions := env.Spaces(e.world)
	m, err := mdp.NewWithConfig(states, actions, T, R, gamma, e.config)
	if err != nil {
		return err
	}

	e.T, e.R, e.gamma = T, R, gamma
	e.mdp = m
	return nil
}

// Myopic replaces the MDP with one using the same transitions and
// rewards but discount factor gamma. Lower discounts model an agent that
// is more impatient.
func (e *Experiment) Myopic(gamma float64) error {
	if err := e.rebuild(e.T, e.R, gamma); err != nil {
		return fmt.Errorf("myopic: %w", err)
	}
	return nil
}

// Confident replaces the MDP with one built from the world assuming
// actions succeed with probability prob, keeping the discount factor.
// A probability below the world's true probability models an
// underconfident agent, and one above it an overconfident agent.
func (e *Experiment) Confident(prob float64) error {
	T, R, err := e.world.Build(prob)
	if err != nil {
		return fmt.Errorf("confident: could not build world %v: %w", e.world,
			err)
	}

	if err := e.rebuild(T, R, e.gamma); err != nil {
		return fmt.Errorf("confident: %w", err)
	}
	e.prob = prob
	return nil
}

// Reward replaces the MDP with one using the same transitions and
// discount factor but rewards R, which must have shape
// (states, actions, states)
func (e *Experiment) Reward(R *tensor.Dense) error {
	if R == nil {
		return fmt.Errorf("reward: %w", &mdp.Error{Op: "new", Err: mdp.ErrShapeMismatch})
	}

	R = R.Clone().(*tensor.Dense)
	if err := e.rebuild(e.T, R, e.gamma); err != nil {
		return fmt.Errorf("reward: %w", err)
	}
	return nil
}

// Solve solves the MDP of the Experiment
func (e *Experiment) Solve() (mdp.Solution, error) {
	return e.mdp.Solve()
}

// MDP returns the MDP currently owned by the Experiment
func (e *Experiment) MDP() *mdp.MDP {
	return e.mdp
}

// World returns the world the Experiment studies
func (e *Experiment) World() env.World {
	return e.world
}

// Prob returns the probability that actions succeed in the current MDP
func (e *Experiment) Prob() float64 {
	return e.prob
}

// Gamma returns the discount factor of the current MDP
func (e *Experiment) Gamma() float64 {
	return e.gamma
}

func (e *Experiment) String() string {
	return fmt.Sprintf("Experiment | %v  |  Prob: %.3f  |  Gamma: %.3f",
		e.world, e.prob, e.gamma)
}
