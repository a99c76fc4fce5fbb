package experiment

import (
	"github.com/samuelfneumann/gomdp/environment/corridor"
	"github.com/samuelfneumann/gomdp/mdp"
)

// NewCorridor returns an Experiment on a corridor of length states in
// which moving succeeds with probability prob. The discount factor is
// corridor.DefaultGamma and the right end pays corridor.TerminalReward.
func NewCorridor(length int, prob float64) (*Experiment, error) {
	c, err := corridor.New(length)
	if err != nil {
		return nil, err
	}
	return New(c, prob, corridor.DefaultGamma, mdp.DefaultConfig())
}
