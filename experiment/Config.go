package experiment

import (
	"fmt"

	"github.com/samuelfneumann/gomdp/environment/envconfig"
	"github.com/samuelfneumann/gomdp/mdp"
)

// Config represents a configuration of an experiment. Config is JSON
// serializable.
type Config struct {
	EnvConf envconfig.Config
	Solver  mdp.Config
}

// CreateExp returns the Experiment described by the Config
func (c Config) CreateExp() (*Experiment, error) {
	world, err := c.EnvConf.Create()
	if err != nil {
		return nil, fmt.Errorf("createExp: %w", err)
	}

	e, err := New(world, c.EnvConf.Prob, c.EnvConf.Gamma, c.Solver)
	if err != nil {
		return nil, fmt.Errorf("createExp: %w", err)
	}
	return e, nil
}
