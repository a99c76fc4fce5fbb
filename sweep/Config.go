package sweep

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samuelfneumann/gomdp/environment/envconfig"
	"github.com/samuelfneumann/gomdp/mdp"
	"github.com/samuelfneumann/gomdp/utils/floatutils"
	"github.com/samuelfneumann/gomdp/utils/intutils"
)

// Param is a world parameter together with the values it is swept over.
// Name is one of the parameter names accepted by envconfig.Config.With.
type Param struct {
	Name   string
	Values []float64
}

// Config configures a parameter sweep. Config is JSON serializable.
//
// For every Param in Search and every value of that Param, the world
// described by World is rebuilt with the Param set to the value and
// solved for every combination of discount factor in Gammas and success
// probability in Probs. If Search is empty, only Gammas and Probs are
// swept over the World as given.
type Config struct {
	Name    string
	World   envconfig.Config
	Solver  mdp.Config
	Search  []Param
	Gammas  []float64
	Probs   []float64
	Workers int // Number of cells solved concurrently, 0 for one per CPU
}

// Cell is a single combination of parameters in a sweep
type Cell struct {
	Index int
	Param string
	Value float64
	Gamma float64
	Prob  float64
}

// Validate returns an error describing why the Config is invalid, or
// nil if it is valid
func (c Config) Validate() error {
	if len(c.Gammas) == 0 {
		return fmt.Errorf("validate: no discount factors to sweep")
	}
	if len(c.Probs) == 0 {
		return fmt.Errorf("validate: no probabilities to sweep")
	}
	if c.Workers < 0 {
		return fmt.Errorf("validate: workers must be non-negative, got %d",
			c.Workers)
	}

	for _, p := range c.Search {
		if len(p.Values) == 0 {
			return fmt.Errorf("validate: parameter %v has no values", p.Name)
		}
		if _, err := c.World.With(p.Name, p.Values[0]); err != nil {
			return fmt.Errorf("validate: %v", err)
		}
	}
	return nil
}

// Cells returns every Cell of the sweep, ordered by parameter, then
// parameter value, then discount factor, then probability
func (c Config) Cells() []Cell {
	search := c.Search
	if len(search) == 0 {
		search = []Param{{Name: "", Values: []float64{0}}}
	}

	var cells []Cell
	for _, p := range search {
		for _, value := range p.Values {
			for _, gamma := range c.Gammas {
				for _, prob := range c.Probs {
					cells = append(cells, Cell{
						Index: len(cells),
						Param: p.Name,
						Value: value,
						Gamma: gamma,
						Prob:  prob,
					})
				}
			}
		}
	}
	return cells
}

// NumCells returns the number of cells in the sweep
func (c Config) NumCells() int {
	n := 0
	for _, p := range c.Search {
		n += len(p.Values)
	}
	if len(c.Search) == 0 {
		n = 1
	}
	return n * len(c.Gammas) * len(c.Probs)
}

// LoadConfig reads a JSON encoded Config from filename
func LoadConfig(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("loadConfig: %v", err)
	}

	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("loadConfig: could not decode %v: %v",
			filename, err)
	}
	return c, nil
}

// RiverSwimConfig returns the river swim sweep: cols consecutive widths
// starting at 5 and cols consecutive large rewards starting at 2, each
// solved over a granularity x granularity grid of discount factors and
// probabilities spanning [0.4, 0.99]
func RiverSwimConfig(cols, granularity int) (Config, error) {
	world, err := envconfig.Default(envconfig.RiverSwim)
	if err != nil {
		return Config{}, err
	}

	toFloats := func(ints []int) []float64 {
		floats := make([]float64, len(ints))
		for i, v := range ints {
			floats[i] = float64(v)
		}
		return floats
	}

	return Config{
		Name:   "Riverswim World",
		World:  world,
		Solver: mdp.DefaultConfig(),
		Search: []Param{
			{Name: "width", Values: toFloats(intutils.Range(5, cols))},
			{Name: "big_r", Values: toFloats(intutils.Range(2, cols))},
		},
		Gammas: floatutils.Linspace(0.4, 0.99, granularity),
		Probs:  floatutils.Linspace(0.4, 0.99, granularity),
	}, nil
}
