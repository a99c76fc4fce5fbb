package experiment

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	env "github.com/samuelfneumann/gomdp/environment"
	"github.com/samuelfneumann/gomdp/mdp"
	ts "github.com/samuelfneumann/gomdp/timestep"
)

// Rollout runs a single episode in the Experiment's MDP, starting from
// the world's start state and following the MDP's current greedy
// policy. The policy is zero everywhere until the MDP is solved. The
// episode ends when an absorbing state is reached or after steps
// transitions. Next states are sampled using seed.
//
// The returned trajectory begins with the first TimeStep, whose Action
// is -1, and ends with a TimeStep for which Last() is true.
func (e *Experiment) Rollout(steps int, seed uint64) ([]ts.TimeStep, error) {
	return e.RolloutFrom(env.NewSingleStart(e.world.Start()), steps, seed)
}

// RolloutFrom is like Rollout, but starts the episode in a state
// sampled from starter
func (e *Experiment) RolloutFrom(starter env.Starter, steps int,
	seed uint64) ([]ts.TimeStep, error) {
	if steps < 0 {
		return nil, fmt.Errorf("rollout: steps must be non-negative, got %d",
			steps)
	}

	m := e.mdp
	m.Reset()
	if err := m.SetState(starter.Start()); err != nil {
		return nil, fmt.Errorf("rollout: %w", err)
	}

	T := e.T
	ender := env.Enders{
		env.NewFunctionEnder(func(state int) bool {
			return mdp.IsAbsorbing(T, state)
		}, ts.TerminalStateReached),
		env.NewStepLimit(steps),
	}

	policy := m.Policy()
	source := rand.NewSource(seed)

	step := ts.New(ts.First, 0, m.Gamma(), m.State(), -1, 0)
	ender.End(&step)
	trajectory := []ts.TimeStep{step}

	for !step.Last() {
		action := policy[m.State()]
		next, reward, err := m.Step(action, source)
		if err != nil {
			return trajectory, fmt.Errorf("rollout: %w", err)
		}

		step = ts.New(ts.Mid, reward, m.Gamma(), next, action, step.Number+1)
		ender.End(&step)
		trajectory = append(trajectory, step)
	}

	return trajectory, nil
}

// DiscountedReturn returns the discounted sum of rewards of a
// trajectory produced by Rollout. The reward of the TimeStep numbered n
// is discounted by Discount^(n-1).
func DiscountedReturn(trajectory []ts.TimeStep) float64 {
	var total float64
	for _, step := range trajectory {
		if step.Number == 0 {
			continue
		}
		total += math.Pow(step.Discount, float64(step.Number-1)) * step.Reward
	}
	return total
}
