package environment

import (
	"testing"

	ts "github.com/samuelfneumann/gomdp/timestep"
)

func TestCategoricalStarter(t *testing.T) {
	s, err := NewCategoricalStarter([]float64{0, 0, 1, 0}, 1)
	if err != nil {
		t.Fatalf("newCategoricalStarter: %v", err)
	}
	for i := 0; i < 10; i++ {
		if got := s.Start(); got != 2 {
			t.Fatalf("start = %d, want 2", got)
		}
	}

	u, err := NewUniformStarter(3, 1)
	if err != nil {
		t.Fatalf("newUniformStarter: %v", err)
	}
	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		state := u.Start()
		if state < 0 || state >= 3 {
			t.Fatalf("start = %d, outside [0, 3)", state)
		}
		seen[state] = true
	}
	if len(seen) != 3 {
		t.Errorf("uniform starter only started in %v", seen)
	}

	for name, weights := range map[string][]float64{
		"empty":    nil,
		"negative": {1, -1},
		"zero":     {0, 0},
	} {
		if _, err := NewCategoricalStarter(weights, 1); err == nil {
			t.Errorf("%v weights: expected error", name)
		}
	}

	if got := NewSingleStart(7).Start(); got != 7 {
		t.Errorf("single start = %d, want 7", got)
	}
}

func TestEnders(t *testing.T) {
	ender := Enders{
		NewFunctionEnder(func(state int) bool { return state == 3 },
			ts.TerminalStateReached),
		NewStepLimit(5),
	}

	step := ts.New(ts.Mid, 0, 0.9, 1, 0, 2)
	if ender.End(&step) || step.Last() {
		t.Errorf("step %v ended early", step)
	}

	step = ts.New(ts.Mid, 0, 0.9, 3, 0, 5)
	if !ender.End(&step) || !step.Last() ||
		step.EndType() != ts.TerminalStateReached {
		t.Errorf("step %v ended with %v, want %v", step, step.EndType(),
			ts.TerminalStateReached)
	}

	step = ts.New(ts.Mid, 0, 0.9, 1, 0, 5)
	if !ender.End(&step) || step.EndType() != ts.Timeout {
		t.Errorf("step %v ended with %v, want %v", step, step.EndType(),
			ts.Timeout)
	}
}

func TestValidateProb(t *testing.T) {
	for _, p := range []float64{0, 0.5, 1} {
		if err := ValidateProb(p); err != nil {
			t.Errorf("validateProb(%v): %v", p, err)
		}
	}
	for _, p := range []float64{-0.1, 1.1} {
		if err := ValidateProb(p); err == nil {
			t.Errorf("validateProb(%v): expected error", p)
		}
	}
}
