package mdp

import "errors"

// Error implements errors produced when constructing or solving an MDP.
// Op names the operation that failed and Err is one of the sentinel
// errors of this package, possibly wrapped with more detail.
type Error struct {
	Op  string
	Err error
}

// Error satisfies the error interface
func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

var (
	// ErrShapeMismatch reports a transition or reward tensor whose shape
	// or data type does not match the state and action spaces
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrProbability reports a transition row that is not a probability
	// distribution
	ErrProbability = errors.New("transition row is not a probability distribution")

	// ErrNonConvergence reports that value iteration used its sweep
	// budget without the value function settling below theta
	ErrNonConvergence = errors.New("value iteration did not converge")

	// ErrInvalidSpace reports an empty state or action space, or one with
	// repeated identifiers
	ErrInvalidSpace = errors.New("invalid state or action space")

	// ErrInvalidDiscount reports a discount factor outside [0, 1)
	ErrInvalidDiscount = errors.New("discount must be in [0, 1)")
)

// IsShapeMismatch returns whether err reports a tensor shape mismatch
func IsShapeMismatch(err error) bool {
	return errors.Is(err, ErrShapeMismatch)
}

// IsProbability returns whether err reports a transition row that does
// not sum to one
func IsProbability(err error) bool {
	return errors.Is(err, ErrProbability)
}

// IsNonConvergence returns whether err reports that value iteration ran
// out of sweeps
func IsNonConvergence(err error) bool {
	return errors.Is(err, ErrNonConvergence)
}
