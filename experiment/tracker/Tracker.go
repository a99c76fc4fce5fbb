// Package tracker implements Trackers, which keep track of the results
// of solved experiments and save them to disk
package tracker

// Record is the result of solving a single cell of a parameter sweep
type Record struct {
	RunID string `parquet:"run_id,dict"`
	World string `parquet:"world,dict"`

	// Param is the name of the world parameter varied in the cell and
	// Value is the value it was set to
	Param string  `parquet:"param,dict"`
	Value float64 `parquet:"value"`

	Gamma float64 `parquet:"gamma"`
	Prob  float64 `parquet:"prob"`

	StartState  int32   `parquet:"start_state"`
	StartAction int32   `parquet:"start_action"`
	StartValue  float64 `parquet:"start_value"`
	Sweeps      int32   `parquet:"sweeps"`

	Policy []int32   `parquet:"policy"`
	V      []float64 `parquet:"v"`
}

// Tracker keeps track of Records and saves them after an experiment
// has finished. Trackers are not safe for concurrent use.
type Tracker interface {
	Track(r Record)
	Save() error
}

// registeredTracker tracks only the Records of a single parameter,
// passing them on to the embedded Tracker
type registeredTracker struct {
	Tracker
	param string
}

// Register returns a Tracker which tracks only Records whose Param is
// param, using t to track and save them.
//
// Note: the underlying concrete type of the registered Tracker is
// lost when registering a parameter with a Tracker.
func Register(t Tracker, param string) Tracker {
	return &registeredTracker{t, param}
}

// Track calls Track() on the embedded Tracker if r belongs to the
// registered parameter
func (r *registeredTracker) Track(record Record) {
	if record.Param == r.param {
		r.Tracker.Track(record)
	}
}
