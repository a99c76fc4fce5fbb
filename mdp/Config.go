package mdp

import "fmt"

// UpdateType determines how value iteration writes back the values of
// a sweep
type UpdateType string

const (
	// InPlace writes each state's new value immediately, so that states
	// later in a sweep back up from values already updated in that sweep
	InPlace UpdateType = "InPlace"

	// Synchronous backs up every state of a sweep from the values of the
	// previous sweep
	Synchronous UpdateType = "Synchronous"
)

const (
	DefaultTheta     float64 = 1e-4
	DefaultMaxSweeps int     = 100_000
)

// Config configures the value iteration solver of an MDP. Config is
// JSON serializable.
type Config struct {
	// Theta is the convergence threshold: value iteration stops when the
	// largest change in the value function over a sweep is below Theta
	Theta float64

	// MaxSweeps bounds the number of sweeps value iteration performs
	MaxSweeps int

	Update UpdateType
}

// DefaultConfig returns the default solver Config
func DefaultConfig() Config {
	return Config{
		Theta:     DefaultTheta,
		MaxSweeps: DefaultMaxSweeps,
		Update:    InPlace,
	}
}

// withDefaults returns a copy of c with zero fields replaced by defaults
func (c Config) withDefaults() Config {
	if c.Theta == 0 {
		c.Theta = DefaultTheta
	}
	if c.MaxSweeps == 0 {
		c.MaxSweeps = DefaultMaxSweeps
	}
	if c.Update == "" {
		c.Update = InPlace
	}
	return c
}

// Validate returns an error describing why the Config is invalid, or
// nil if it is valid
func (c Config) Validate() error {
	if c.Theta <= 0 {
		return fmt.Errorf("validate: theta must be positive, got %v", c.Theta)
	}
	if c.MaxSweeps < 1 {
		return fmt.Errorf("validate: max sweeps must be at least 1, got %d",
			c.MaxSweeps)
	}
	if c.Update != InPlace && c.Update != Synchronous {
		return fmt.Errorf("validate: no such update type %v", c.Update)
	}
	return nil
}
