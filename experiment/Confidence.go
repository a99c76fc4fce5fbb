package experiment

// Confidence describes how an agent's assumed probability that its
// actions succeed compares to the true probability
type Confidence string

const (
	Underconfident Confidence = "Underconfident"
	Calibrated     Confidence = "Calibrated"
	Overconfident  Confidence = "Overconfident"
)

// Classify returns the Confidence of an agent assuming probability
// assumed when the true probability is baseline
func Classify(assumed, baseline float64) Confidence {
	switch {
	case assumed < baseline:
		return Underconfident
	case assumed > baseline:
		return Overconfident
	default:
		return Calibrated
	}
}

// Confidence returns the Confidence of the Experiment's current MDP
// relative to the true probability baseline
func (e *Experiment) Confidence(baseline float64) Confidence {
	return Classify(e.prob, baseline)
}
