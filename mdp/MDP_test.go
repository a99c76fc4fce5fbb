package mdp

import (
	"errors"
	"math"
	"sync"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gorgonia.org/tensor"
)

// corridor returns the transition and reward tensors of a corridor of n
// states in which moves succeed with probability p and stepping into
// the right end pays reward
func corridor(n int, p, reward float64) (T, R *tensor.Dense) {
	T = NewTransitions(2, n)
	SetTransition(T, 0, 0, 0, 1)
	SetTransition(T, 0, n-1, n-1, 1)
	for s := 1; s < n-1; s++ {
		SetTransition(T, 0, s, s, 1-p)
		SetTransition(T, 0, s, s-1, p)
	}
	for s := 0; s < n-1; s++ {
		SetTransition(T, 1, s, s, 1-p)
		SetTransition(T, 1, s, s+1, p)
	}
	SetTransition(T, 1, n-1, n-1, 1)

	R = NewRewards(n, 2)
	SetReward(R, n-2, 1, n-1, reward)
	return T, R
}

func spaces(states, actions int) ([]int, []int) {
	s := make([]int, states)
	for i := range s {
		s[i] = i
	}
	a := make([]int, actions)
	for i := range a {
		a[i] = i
	}
	return s, a
}

func newCorridor(t testing.TB, n int, p, gamma float64, c Config) *MDP {
	T, R := corridor(n, p, 10)
	states, actions := spaces(n, 2)
	m, err := NewWithConfig(states, actions, T, R, gamma, c)
	if err != nil {
		t.Fatalf("could not create corridor MDP: %v", err)
	}
	return m
}

func TestCorridor(t *testing.T) {
	m := newCorridor(t, 5, 0.8, 0.8, DefaultConfig())

	solution, err := m.Solve()
	if err != nil {
		t.Fatalf("solve: %v", err)
	}

	for s := 0; s < 4; s++ {
		if solution.Action(s) != 1 {
			t.Errorf("policy[%d] = %d, want 1 (right)", s, solution.Action(s))
		}
	}

	v := solution.V
	if v[4] != 0 {
		t.Errorf("V[4] = %v, want 0", v[4])
	}
	if !(v[3] > v[2] && v[2] > v[1] && v[1] > v[0] && v[0] > 0) {
		t.Errorf("values not strictly decreasing away from the goal: %v", v)
	}

	// V[3] = 0.8 * 10 + 0.2 * 0.8 * V[3]
	if want := 8 / 0.84; math.Abs(v[3]-want) > 1e-3 {
		t.Errorf("V[3] = %v, want %v", v[3], want)
	}
}

func TestBellmanResidual(t *testing.T) {
	for _, update := range []UpdateType{InPlace, Synchronous} {
		for _, p := range []float64{0.1, 0.5, 0.8, 1.0} {
			c := DefaultConfig()
			c.Update = update
			m := newCorridor(t, 7, p, 0.9, c)
			if _, err := m.Solve(); err != nil {
				t.Fatalf("%v, p = %v: solve: %v", update, p, err)
			}

			// Bound on the Bellman residual after the last sweep: the last
			// sweep changed no value by theta or more, so a further
			// backup changes no value by more than gamma * theta
			bound := m.Theta()
			v := m.V()
			for s := range m.States() {
				q := m.ActionValues(s)
				best := floats.Max(q.RawVector().Data)
				if diff := math.Abs(best - v.AtVec(s)); diff > bound {
					t.Errorf("%v, p = %v: |max Q - V| = %v at state %d, "+
						"want at most %v", update, p, diff, s, bound)
				}
			}
		}
	}
}

func TestResolveIdempotent(t *testing.T) {
	m := newCorridor(t, 6, 0.7, 0.9, DefaultConfig())
	first, err := m.Solve()
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	second, err := m.Solve()
	if err != nil {
		t.Fatalf("second solve: %v", err)
	}

	if second.Sweeps != 1 {
		t.Errorf("second solve took %d sweeps, want 1", second.Sweeps)
	}
	for s := range first.V {
		if math.Abs(first.V[s]-second.V[s]) >= m.Theta() {
			t.Errorf("V[%d] changed from %v to %v", s, first.V[s],
				second.V[s])
		}
		if first.Policy[s] != second.Policy[s] {
			t.Errorf("policy[%d] changed from %d to %d", s, first.Policy[s],
				second.Policy[s])
		}
	}
}

func TestSynchronousAgreesWithInPlace(t *testing.T) {
	c := DefaultConfig()
	c.Theta = 1e-8
	inPlace := newCorridor(t, 8, 0.6, 0.95, c)
	c.Update = Synchronous
	synchronous := newCorridor(t, 8, 0.6, 0.95, c)

	a, err := inPlace.Solve()
	if err != nil {
		t.Fatalf("in place: %v", err)
	}
	b, err := synchronous.Solve()
	if err != nil {
		t.Fatalf("synchronous: %v", err)
	}

	for s := range a.V {
		if math.Abs(a.V[s]-b.V[s]) > 1e-5 {
			t.Errorf("V[%d]: in place %v, synchronous %v", s, a.V[s], b.V[s])
		}
		if a.Policy[s] != b.Policy[s] {
			t.Errorf("policy[%d]: in place %d, synchronous %d", s,
				a.Policy[s], b.Policy[s])
		}
	}
}

func TestTieBreak(t *testing.T) {
	// Three actions, all leading to the same state with the same reward
	T := NewTransitions(3, 2)
	for a := 0; a < 3; a++ {
		SetTransition(T, a, 0, 1, 1)
		SetTransition(T, a, 1, 1, 1)
	}
	R := NewRewards(2, 3)
	SetReward(R, 0, 1, 1, 5)
	SetReward(R, 0, 2, 1, 5)

	states, actions := spaces(2, 3)
	m, err := New(states, actions, T, R, 0.5)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	solution, err := m.Solve()
	if err != nil {
		t.Fatalf("solve: %v", err)
	}

	if solution.Action(0) != 1 {
		t.Errorf("policy[0] = %d, want 1", solution.Action(0))
	}
	if solution.Action(1) != 0 {
		t.Errorf("policy[1] = %d, want 0", solution.Action(1))
	}
}

func TestMyopia(t *testing.T) {
	// Action 0 pays 1 now and stays, action 1 pays nothing now but leads
	// to a state paying 10 forever
	T := NewTransitions(2, 2)
	SetTransition(T, 0, 0, 0, 1)
	SetTransition(T, 1, 0, 1, 1)
	SetTransition(T, 0, 1, 1, 1)
	SetTransition(T, 1, 1, 1, 1)

	R := NewRewards(2, 2)
	SetReward(R, 0, 0, 0, 1)
	SetReward(R, 1, 0, 1, 10)
	SetReward(R, 1, 1, 1, 10)

	states, actions := spaces(2, 2)
	tests := []struct {
		gamma float64
		want  int
	}{
		{0, 0},
		{0.9, 1},
	}

	for _, test := range tests {
		m, err := New(states, actions, T, R, test.gamma)
		if err != nil {
			t.Fatalf("gamma = %v: new: %v", test.gamma, err)
		}
		solution, err := m.Solve()
		if err != nil {
			t.Fatalf("gamma = %v: solve: %v", test.gamma, err)
		}
		if solution.Action(0) != test.want {
			t.Errorf("gamma = %v: policy[0] = %d, want %d", test.gamma,
				solution.Action(0), test.want)
		}
	}

	// With no lookahead every value is the best immediate reward
	m, _ := New(states, actions, T, R, 0)
	solution, _ := m.Solve()
	if solution.V[0] != 1 || solution.V[1] != 10 {
		t.Errorf("gamma = 0: V = %v, want [1 10]", solution.V)
	}
}

func TestTwoStateCorridor(t *testing.T) {
	for _, reward := range []float64{0, 10} {
		T, R := corridor(2, 0.8, reward)
		states, actions := spaces(2, 2)
		m, err := New(states, actions, T, R, 0.8)
		if err != nil {
			t.Fatalf("reward %v: new: %v", reward, err)
		}
		solution, err := m.Solve()
		if err != nil {
			t.Fatalf("reward %v: solve: %v", reward, err)
		}

		if solution.V[1] != 0 {
			t.Errorf("reward %v: V[1] = %v, want 0", reward, solution.V[1])
		}
		want := 0.8 * reward / (1 - 0.2*0.8)
		if math.Abs(solution.V[0]-want) > 1e-3 {
			t.Errorf("reward %v: V[0] = %v, want %v", reward, solution.V[0],
				want)
		}
	}
}

func TestNonConvergence(t *testing.T) {
	c := DefaultConfig()
	c.MaxSweeps = 1
	m := newCorridor(t, 5, 0.8, 0.8, c)

	solution, err := m.Solve()
	if !IsNonConvergence(err) {
		t.Fatalf("solve: got error %v, want non-convergence", err)
	}

	var mdpErr *Error
	if !errors.As(err, &mdpErr) || mdpErr.Op != "valueIteration" {
		t.Errorf("error %v is not a valueIteration *Error", err)
	}
	if solution.Sweeps != 1 {
		t.Errorf("sweeps = %d, want 1", solution.Sweeps)
	}
}

func TestNewErrors(t *testing.T) {
	T, R := corridor(3, 0.8, 10)
	states, actions := spaces(3, 2)

	badRow := T.Clone().(*tensor.Dense)
	SetTransition(badRow, 1, 0, 0, 0.5)

	negative := NewTransitions(2, 3)
	for a := 0; a < 2; a++ {
		for s := 0; s < 3; s++ {
			SetTransition(negative, a, s, s, 1)
		}
	}
	SetTransition(negative, 0, 1, 1, 1.5)
	SetTransition(negative, 0, 1, 0, -0.5)

	tests := []struct {
		name    string
		states  []int
		actions []int
		T, R    *tensor.Dense
		gamma   float64
		want    error
	}{
		{"nil transitions", states, actions, nil, R, 0.9, ErrShapeMismatch},
		{"nil rewards", states, actions, T, nil, 0.9, ErrShapeMismatch},
		{"too few states", states[:2], actions, T, R, 0.9, ErrShapeMismatch},
		{"reward shape", states, actions, T, NewRewards(3, 3), 0.9,
			ErrShapeMismatch},
		{"float32 transitions", states, actions,
			tensor.New(tensor.WithShape(2, 3, 3), tensor.Of(tensor.Float32)),
			R, 0.9, ErrShapeMismatch},
		{"row sum", states, actions, badRow, R, 0.9, ErrProbability},
		{"negative entry", states, actions, negative, R, 0.9, ErrProbability},
		{"no states", nil, actions, T, R, 0.9, ErrInvalidSpace},
		{"repeated action", states, []int{1, 1}, T, R, 0.9, ErrInvalidSpace},
		{"gamma one", states, actions, T, R, 1, ErrInvalidDiscount},
		{"negative gamma", states, actions, T, R, -0.1, ErrInvalidDiscount},
	}

	for _, test := range tests {
		_, err := New(test.states, test.actions, test.T, test.R, test.gamma)
		if !errors.Is(err, test.want) {
			t.Errorf("%v: got error %v, want %v", test.name, err, test.want)
		}
	}
}

func TestNewCopiesTensors(t *testing.T) {
	T, R := corridor(4, 0.8, 10)
	states, actions := spaces(4, 2)
	m, err := New(states, actions, T, R, 0.8)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	before, _ := m.Solve()

	SetReward(R, 2, 1, 3, 1000)
	SetTransition(T, 1, 2, 3, 0)

	m2, _ := New(states, actions, m.Transitions(), m.Rewards(), 0.8)
	after, _ := m2.Solve()
	for s := range before.V {
		if before.V[s] != after.V[s] {
			t.Errorf("V[%d] changed from %v to %v after mutating caller "+
				"tensors", s, before.V[s], after.V[s])
		}
	}
}

func TestAbsorbing(t *testing.T) {
	T, _ := corridor(5, 0.8, 10)
	if err := MakeAbsorbing(T, 2); err != nil {
		t.Fatalf("makeAbsorbing: %v", err)
	}

	for a := 0; a < 2; a++ {
		for next := 0; next < 5; next++ {
			want := 0.0
			if next == 2 {
				want = 1
			}
			if got := Transition(T, a, 2, next); got != want {
				t.Errorf("T[%d, 2, %d] = %v, want %v", a, next, got, want)
			}
		}
	}

	if !IsAbsorbing(T, 2) || !IsAbsorbing(T, 4) {
		t.Error("states 2 and 4 should be absorbing")
	}
	if IsAbsorbing(T, 1) {
		t.Error("state 1 should not be absorbing")
	}
	if err := CheckStochastic(T); err != nil {
		t.Errorf("checkStochastic: %v", err)
	}
	if err := MakeAbsorbing(T, 5); !errors.Is(err, ErrInvalidSpace) {
		t.Errorf("makeAbsorbing(5): got error %v, want %v", err,
			ErrInvalidSpace)
	}
}

func TestStateRewards(t *testing.T) {
	T, _ := corridor(4, 0.8, 0)
	R, err := StateRewards(T, map[int]float64{0: -1, 3: 5})
	if err != nil {
		t.Fatalf("stateRewards: %v", err)
	}

	if got := Reward(R, 2, 1, 3); got != 5 {
		t.Errorf("R[2, 1, 3] = %v, want 5", got)
	}
	if got := Reward(R, 1, 0, 0); got != -1 {
		t.Errorf("R[1, 0, 0] = %v, want -1", got)
	}
	if got := Reward(R, 1, 0, 2); got != 0 {
		t.Errorf("R[1, 0, 2] = %v, want 0", got)
	}

	// State 3 is absorbing, so staying there pays nothing
	if got := Reward(R, 3, 1, 3); got != 0 {
		t.Errorf("R[3, 1, 3] = %v, want 0", got)
	}

	if _, err := StateRewards(T, map[int]float64{4: 1}); !errors.Is(err,
		ErrInvalidSpace) {
		t.Errorf("out of range reward: got error %v, want %v", err,
			ErrInvalidSpace)
	}
}

func TestStep(t *testing.T) {
	m := newCorridor(t, 5, 1, 0.8, DefaultConfig())
	if _, err := m.Solve(); err != nil {
		t.Fatalf("solve: %v", err)
	}

	src := rand.NewSource(1)
	var total float64
	for i := 0; i < 4; i++ {
		next, reward, err := m.Step(m.Policy()[m.State()], src)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if next != i+1 {
			t.Errorf("step %d: next state %d, want %d", i, next, i+1)
		}
		total += reward
	}
	if total != 10 {
		t.Errorf("total reward %v, want 10", total)
	}

	m.Reset()
	if m.State() != 0 {
		t.Errorf("state after reset = %d, want 0", m.State())
	}
	if _, _, err := m.Step(2, src); !errors.Is(err, ErrInvalidSpace) {
		t.Errorf("step with invalid action: got error %v, want %v", err,
			ErrInvalidSpace)
	}
	if err := m.SetState(5); !errors.Is(err, ErrInvalidSpace) {
		t.Errorf("setState(5): got error %v, want %v", err, ErrInvalidSpace)
	}
}

func TestConcurrentSolves(t *testing.T) {
	want, err := newCorridor(t, 10, 0.7, 0.9, DefaultConfig()).Solve()
	if err != nil {
		t.Fatalf("solve: %v", err)
	}

	var wg sync.WaitGroup
	solutions := make([]Solution, 8)
	errs := make([]error, 8)
	for i := range solutions {
		m := newCorridor(t, 10, 0.7, 0.9, DefaultConfig())
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			solutions[i], errs[i] = m.Solve()
		}(i)
	}
	wg.Wait()

	for i, got := range solutions {
		if errs[i] != nil {
			t.Errorf("solve %d: %v", i, errs[i])
			continue
		}
		if !floats.Equal(got.V, want.V) {
			t.Errorf("solve %d: V = %v, want %v", i, got.V, want.V)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		c     Config
		valid bool
	}{
		{DefaultConfig(), true},
		{Config{}.withDefaults(), true},
		{Config{Theta: -1, MaxSweeps: 1, Update: InPlace}, false},
		{Config{Theta: 1, MaxSweeps: -1, Update: InPlace}, false},
		{Config{Theta: 1, MaxSweeps: 1, Update: "Jacobi"}, false},
	}

	for _, test := range tests {
		if err := test.c.Validate(); (err == nil) != test.valid {
			t.Errorf("%+v: validate returned %v", test.c, err)
		}
	}
}

func BenchmarkValueIteration(b *testing.B) {
	for i := 0; i < b.N; i++ {
		m := newCorridor(b, 50, 0.8, 0.95, DefaultConfig())
		if _, err := m.ValueIteration(); err != nil {
			b.Fatal(err)
		}
	}
}
