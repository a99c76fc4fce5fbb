package environment

import (
	"github.com/samuelfneumann/gomdp/timestep"
)

// FunctionEnder ends a rollout whenever a function of the current state
// returns true.
type FunctionEnder struct {
	end     func(state int) bool
	endType timestep.EndType
}

// NewFunctionEnder returns a new FunctionEnder which ends rollouts with
// end type endType when f returns true.
func NewFunctionEnder(f func(state int) bool, endType timestep.EndType) Ender {
	return &FunctionEnder{f, endType}
}

// End determines whether or not the current rollout should be ended,
// returning a boolean to indicate termination. If the rollout should be
// ended, End() will modify the timestep so that its StepType field is
// timestep.Last and its EndType is the appropriate ending type.
func (f *FunctionEnder) End(t *timestep.TimeStep) bool {
	if f.end(t.State) {
		t.StepType = timestep.Last
		t.SetEnd(f.endType)
		return true
	}
	return false
}

// Enders combines several Enders into one, which ends a rollout as soon
// as any of its Enders does
type Enders []Ender

// End calls End on each Ender in order until one of them ends the
// rollout
func (e Enders) End(t *timestep.TimeStep) bool {
	for _, ender := range e {
		if ender.End(t) {
			return true
		}
	}
	return false
}
