// Package timestep implements timesteps of a rollout through an MDP
package timestep

import (
	"fmt"
)

// StepType denotes the type of step that a TimeStep can be, either a
// first step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes why a rollout ended
type EndType int

const (
	Unknown EndType = iota
	TerminalStateReached
	Timeout
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Timeout:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// TimeStep packages together a single timestep of a rollout. Action is
// the action taken to arrive at State, and is -1 on the first step.
type TimeStep struct {
	StepType
	Reward   float64
	Discount float64
	State    int
	Action   int
	Number   int
	endType  EndType
}

// New returns a new TimeStep
func New(t StepType, r, d float64, state, action, n int) TimeStep {
	return TimeStep{t, r, d, state, action, n, Unknown}
}

// SetEnd sets the reason the rollout ended at this TimeStep
func (t *TimeStep) SetEnd(e EndType) {
	t.endType = e
}

// EndType returns the reason the rollout ended at this TimeStep, which
// is Unknown for steps that did not end a rollout
func (t *TimeStep) EndType() EndType {
	return t.endType
}

// First returns whether a TimeStep is the first in a rollout
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in a rollout
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in a rollout
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  State: %d  |  Reward:  %.2f  |  " +
		"Discount: %.2f  |  Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.State, t.Reward, t.Discount, t.Number)
}
