package gridworld

import (
	"math"
	"testing"

	"github.com/samuelfneumann/gomdp/mdp"
)

func TestMove(t *testing.T) {
	g, err := New(3, 3, nil, nil, Simple, 0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	tests := []struct {
		s, a, want int
	}{
		{4, Left, 3},
		{4, Right, 5},
		{4, Up, 1},
		{4, Down, 7},
		{0, Left, 0},
		{0, Up, 0},
		{8, Right, 8},
		{8, Down, 8},
	}
	for _, test := range tests {
		if got := g.move(test.s, test.a); got != test.want {
			t.Errorf("move(%d, %d) = %d, want %d", test.s, test.a, got,
				test.want)
		}
	}

	if x, y := g.Coordinates(5); x != 2 || y != 1 {
		t.Errorf("coordinates(5) = (%d, %d), want (2, 1)", x, y)
	}
	if s := g.State(2, 1); s != 5 {
		t.Errorf("state(2, 1) = %d, want 5", s)
	}
}

func TestBuild(t *testing.T) {
	rewards := map[int]float64{8: 1}
	for _, mode := range []TransitionMode{Simple, Full} {
		g, err := New(3, 3, rewards, []int{8}, mode, 0)
		if err != nil {
			t.Fatalf("%v: new: %v", mode, err)
		}

		for _, prob := range []float64{0, 0.5, 0.8, 1} {
			T, R, err := g.Build(prob)
			if err != nil {
				t.Fatalf("%v, build(%v): %v", mode, prob, err)
			}
			if err := mdp.CheckStochastic(T); err != nil {
				t.Errorf("%v, build(%v): %v", mode, prob, err)
			}
			if !mdp.IsAbsorbing(T, 8) {
				t.Errorf("%v, build(%v): state 8 is not absorbing", mode, prob)
			}

			var wantSlip, wantStay float64
			switch mode {
			case Simple:
				wantStay = 1 - prob
			case Full:
				wantSlip = (1 - prob) / 3
			}

			if got := mdp.Transition(T, Up, 4, 1); got != prob {
				t.Errorf("%v, build(%v): T[up, 4, 1] = %v, want %v", mode,
					prob, got, prob)
			}
			if got := mdp.Transition(T, Up, 4, 3); math.Abs(got-wantSlip) > 1e-12 {
				t.Errorf("%v, build(%v): T[up, 4, 3] = %v, want %v", mode,
					prob, got, wantSlip)
			}
			if got := mdp.Transition(T, Up, 4, 4); math.Abs(got-wantStay) > 1e-12 {
				t.Errorf("%v, build(%v): T[up, 4, 4] = %v, want %v", mode,
					prob, got, wantStay)
			}

			if got := mdp.Reward(R, 5, Down, 8); got != 1 {
				t.Errorf("%v, build(%v): R[5, down, 8] = %v, want 1", mode,
					prob, got)
			}
		}
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name      string
		r, c      int
		rewards   map[int]float64
		absorbing []int
		mode      TransitionMode
		start     int
	}{
		{"no rows", 0, 3, nil, nil, Simple, 0},
		{"reward off grid", 2, 2, map[int]float64{4: 1}, nil, Simple, 0},
		{"absorbing off grid", 2, 2, nil, []int{-1}, Simple, 0},
		{"start off grid", 2, 2, nil, nil, Simple, 4},
		{"bad mode", 2, 2, nil, nil, "Diagonal", 0},
	}

	for _, test := range tests {
		_, err := New(test.r, test.c, test.rewards, test.absorbing, test.mode,
			test.start)
		if err == nil {
			t.Errorf("%v: expected error", test.name)
		}
	}
}

func TestWall(t *testing.T) {
	r, c := DefaultWallHeight, DefaultWallWidth
	rewards := WallRewards(r, c, c-2, r-1, DefaultWallNegMag,
		DefaultWallRewardMag, DefaultWallLatentCost)

	if got := rewards[c-1]; got != DefaultWallRewardMag {
		t.Errorf("goal reward %v, want %v", got, DefaultWallRewardMag)
	}
	if got := rewards[0]; got != DefaultWallLatentCost {
		t.Errorf("start reward %v, want %v", got, DefaultWallLatentCost)
	}
	for x := 1; x < c-1; x++ {
		for y := 0; y < r-1; y++ {
			if got := rewards[cToInd(x, y, c)]; got != DefaultWallNegMag {
				t.Errorf("wall reward at (%d, %d) = %v, want %v", x, y, got,
					DefaultWallNegMag)
			}
		}
		if got := rewards[cToInd(x, r-1, c)]; got != DefaultWallLatentCost {
			t.Errorf("bottom row reward at x = %d is %v, want %v", x, got,
				DefaultWallLatentCost)
		}
	}

	g, err := NewWall(r, c, DefaultWallNegMag, DefaultWallRewardMag,
		DefaultWallLatentCost)
	if err != nil {
		t.Fatalf("newWall: %v", err)
	}
	T, _, err := g.Build(DefaultWallProb)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !mdp.IsAbsorbing(T, c-1) {
		t.Error("goal is not absorbing")
	}
	if g.Start() != 0 {
		t.Errorf("start = %d, want 0", g.Start())
	}
}
