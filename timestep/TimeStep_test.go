package timestep

import "testing"

func TestTimeStep(t *testing.T) {
	step := New(First, 0, 0.9, 2, -1, 0)
	if !step.First() || step.Mid() || step.Last() {
		t.Errorf("first step %v", step)
	}
	if step.EndType() != Unknown {
		t.Errorf("end type %v, want %v", step.EndType(), Unknown)
	}

	step.StepType = Last
	step.SetEnd(Timeout)
	if !step.Last() || step.EndType() != Timeout {
		t.Errorf("last step %v ended with %v", step, step.EndType())
	}

	if Timeout.String() != "Timeout" || Mid.String() != "Mid" {
		t.Errorf("strings %v, %v", Timeout, Mid)
	}
}
