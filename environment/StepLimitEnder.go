package environment

import "github.com/samuelfneumann/gomdp/timestep"

// StepLimit implements the Ender interface to end rollouts at specific
// timestep limits
type StepLimit struct {
	episodeSteps int
}

// NewStepLimit creates and returns a new step limit
func NewStepLimit(episodeSteps int) StepLimit {
	return StepLimit{episodeSteps}
}

// End determines whether or not the current rollout should be ended,
// returning a boolean to indicate termination. If the rollout should be
// ended End() will modify the timestep so that its StepType field is
// timestep.Last and its EndType is timestep.Timeout
func (s StepLimit) End(t *timestep.TimeStep) bool {
	if t.Number >= s.episodeSteps {
		t.StepType = timestep.Last
		t.SetEnd(timestep.Timeout)
		return true
	}
	return false
}
