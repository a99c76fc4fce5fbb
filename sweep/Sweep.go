// Package sweep implements parameter sweeps over worlds. Each cell of a
// sweep builds and solves its own Experiment, sharing no mutable state
// with any other cell, so that cells are solved concurrently.
package sweep

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/samuelfneumann/gomdp/experiment"
	"github.com/samuelfneumann/gomdp/experiment/checkpointer"
	"github.com/samuelfneumann/gomdp/experiment/tracker"
	"github.com/samuelfneumann/gomdp/utils/progressbar"
)

// Sweep runs a parameter sweep described by a Config
type Sweep struct {
	Config
	runID string

	// mu guards trackers, checkpointers, progress, and completed while
	// the sweep runs
	mu            sync.Mutex
	trackers      []tracker.Tracker
	checkpointers []checkpointer.Checkpointer
	progress      *progressbar.ManualProgressBar
	logger        *log.Logger
	completed     int
}

// New returns a new Sweep. The runID is stored in every Record the
// sweep produces.
func New(c Config, runID string, t ...tracker.Tracker) (*Sweep, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}
	return &Sweep{Config: c, runID: runID, trackers: t}, nil
}

// Register registers a tracker.Tracker with the Sweep so that every
// solved cell is tracked
func (s *Sweep) Register(t tracker.Tracker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trackers = append(s.trackers, t)
}

// RegisterCheckpointer registers a checkpointer which is called each
// time a cell is completed
func (s *Sweep) RegisterCheckpointer(c checkpointer.Checkpointer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkpointers = append(s.checkpointers, c)
}

// SetProgressBar sets a progress bar which is incremented and redrawn
// each time a cell is completed
func (s *Sweep) SetProgressBar(p *progressbar.ManualProgressBar) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = p
}

// SetLogger sets the logger the Sweep reports to. A Sweep without a
// logger is silent.
func (s *Sweep) SetLogger(l *log.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = l
}

// RunID returns the run ID of the Sweep
func (s *Sweep) RunID() string {
	return s.runID
}

// Run solves every cell of the sweep, using at most Workers goroutines,
// and returns one Record per cell in the order of Config.Cells. The
// first error encountered stops the sweep, and cells which have not
// started yet are skipped. Run stops early with the context's error if
// ctx is cancelled.
func (s *Sweep) Run(ctx context.Context) ([]tracker.Record, error) {
	cells := s.Cells()
	records := make([]tracker.Record, len(cells))

	workers := s.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	s.logf("sweep %q: solving %d cells on %d workers", s.Name, len(cells),
		workers)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, cell := range cells {
		if ctx.Err() != nil {
			break
		}

		cell := cell // per-iteration copy (go.mod targets go1.21 loop semantics)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			record, err := RunCell(s.Config, cell, s.runID)
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}
			records[cell.Index] = record

			return s.complete(record)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logf("sweep %q: solved %d cells", s.Name, len(cells))
	return records, nil
}

// complete tracks a solved cell, checkpoints, and updates progress
func (s *Sweep) complete(r tracker.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.trackers {
		t.Track(r)
	}
	s.completed++

	for _, c := range s.checkpointers {
		if err := c.Checkpoint(s.completed); err != nil {
			return fmt.Errorf("run: checkpoint: %w", err)
		}
	}

	if s.progress != nil {
		s.progress.Increment()
		s.progress.Display()
	}
	return nil
}

// Save saves the data of all registered trackers
func (s *Sweep) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	return nil
}

func (s *Sweep) logf(format string, v ...interface{}) {
	s.mu.Lock()
	logger := s.logger
	s.mu.Unlock()

	if logger != nil {
		logger.Printf(format, v...)
	}
}

// RunCell builds and solves the Experiment of a single cell of the
// sweep described by c and returns its Record
func RunCell(c Config, cell Cell, runID string) (tracker.Record, error) {
	envConf := c.World
	if cell.Param != "" {
		var err error
		envConf, err = envConf.With(cell.Param, cell.Value)
		if err != nil {
			return tracker.Record{}, fmt.Errorf("runCell: %w", err)
		}
	}
	envConf.Gamma = cell.Gamma
	envConf.Prob = cell.Prob

	e, err := experiment.Config{EnvConf: envConf, Solver: c.Solver}.CreateExp()
	if err != nil {
		return tracker.Record{}, fmt.Errorf("runCell: cell %d: %w",
			cell.Index, err)
	}

	solution, err := e.Solve()
	if err != nil {
		return tracker.Record{}, fmt.Errorf("runCell: cell %d (%v=%v, "+
			"gamma=%v, prob=%v): %w", cell.Index, cell.Param, cell.Value,
			cell.Gamma, cell.Prob, err)
	}

	policy := make([]int32, len(solution.Policy))
	for i, a := range solution.Policy {
		policy[i] = int32(a)
	}

	start := e.World().Start()
	return tracker.Record{
		RunID:       runID,
		World:       string(envConf.World),
		Param:       cell.Param,
		Value:       cell.Value,
		Gamma:       cell.Gamma,
		Prob:        cell.Prob,
		StartState:  int32(start),
		StartAction: int32(solution.Action(start)),
		StartValue:  solution.Value(start),
		Sweeps:      int32(solution.Sweeps),
		Policy:      policy,
		V:           solution.V,
	}, nil
}
