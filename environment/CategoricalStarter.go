package environment

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// CategoricalStarter returns starting states sampled from a categorical
// distribution over the states (0, 1, 2, ... N-1).
type CategoricalStarter struct {
	seed uint64
	rand distuv.Categorical
}

// NewCategoricalStarter returns a new CategoricalStarter, sampling state
// i with probability proportional to weights[i]
func NewCategoricalStarter(weights []float64, seed uint64) (
	*CategoricalStarter, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("newCategoricalStarter: no weights")
	}
	var total float64
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("newCategoricalStarter: weight %d is "+
				"negative (%v)", i, w)
		}
		total += w
	}
	if total == 0 {
		return nil, fmt.Errorf("newCategoricalStarter: weights sum to zero")
	}

	source := rand.NewSource(seed)
	return &CategoricalStarter{seed, distuv.NewCategorical(weights, source)}, nil
}

// NewUniformStarter returns a CategoricalStarter which samples each of
// the states in (0, 1, 2, ... numStates-1) with equal probability
func NewUniformStarter(numStates int, seed uint64) (*CategoricalStarter,
	error) {
	weights := make([]float64, numStates)
	for i := range weights {
		weights[i] = 1.0 / float64(numStates)
	}
	return NewCategoricalStarter(weights, seed)
}

// Start returns a starting state
func (c *CategoricalStarter) Start() int {
	return int(c.rand.Rand())
}

// SingleStart always starts in the same state
type SingleStart struct {
	state int
}

// NewSingleStart returns a Starter which always starts in state
func NewSingleStart(state int) SingleStart {
	return SingleStart{state}
}

// Start returns the starting state
func (s SingleStart) Start() int {
	return s.state
}
