package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	env "github.com/samuelfneumann/gomdp/environment"
	"github.com/samuelfneumann/gomdp/environment/envconfig"
	"github.com/samuelfneumann/gomdp/examples"
	"github.com/samuelfneumann/gomdp/experiment"
	"github.com/samuelfneumann/gomdp/experiment/checkpointer"
	"github.com/samuelfneumann/gomdp/experiment/tracker"
	"github.com/samuelfneumann/gomdp/mdp"
	"github.com/samuelfneumann/gomdp/render"
	"github.com/samuelfneumann/gomdp/sweep"
	"github.com/samuelfneumann/gomdp/utils/floatutils"
	"github.com/samuelfneumann/gomdp/utils/matutils"
	"github.com/samuelfneumann/gomdp/utils/progressbar"
)

// worldFloatFlags maps float flags to the envconfig parameter they set
var worldFloatFlags = map[string]string{
	"prob":        "prob",
	"gamma":       "gamma",
	"big-r":       "big_r",
	"small-r":     "small_r",
	"neg-mag":     "neg_mag",
	"latent-cost": "latent_cost",
}

// worldIntFlags maps integer flags to the envconfig parameter they set
var worldIntFlags = map[string]string{
	"length": "length",
	"width":  "width",
	"height": "height",
}

func addWorldFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("world", "corridor", "world to solve: corridor, riverswim, "+
		"gamblers, or wall")
	for name := range worldFloatFlags {
		f.Float64(name, 0, fmt.Sprintf("override the world's %v", name))
	}
	for name := range worldIntFlags {
		f.Int(name, 0, fmt.Sprintf("override the world's %v", name))
	}
	f.Bool("vary-continuation", true, "gamblers: vary the continuation "+
		"probability instead of the finishing probability")
}

// worldConfig returns the default configuration of the world named by
// the --world flag with every changed world flag applied
func worldConfig(cmd *cobra.Command) (envconfig.Config, error) {
	f := cmd.Flags()
	name, _ := f.GetString("world")
	world, err := envconfig.ParseWorldName(name)
	if err != nil {
		return envconfig.Config{}, err
	}

	conf, err := envconfig.Default(world)
	if err != nil {
		return envconfig.Config{}, err
	}

	for flag, param := range worldFloatFlags {
		if !f.Changed(flag) {
			continue
		}
		value, _ := f.GetFloat64(flag)
		if conf, err = conf.With(param, value); err != nil {
			return envconfig.Config{}, err
		}
	}
	for flag, param := range worldIntFlags {
		if !f.Changed(flag) {
			continue
		}
		value, _ := f.GetInt(flag)
		if conf, err = conf.With(param, float64(value)); err != nil {
			return envconfig.Config{}, err
		}
	}
	if f.Changed("vary-continuation") {
		conf.VaryContinuation, _ = f.GetBool("vary-continuation")
	}

	return conf, nil
}

func addSolverFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Bool("sync", false, "back up states from the previous sweep's "+
		"values instead of in place")
	f.Int("max-sweeps", mdp.DefaultMaxSweeps, "maximum number of sweeps")
	f.Float64("theta", mdp.DefaultTheta, "convergence threshold")
}

func solverConfig(cmd *cobra.Command) mdp.Config {
	f := cmd.Flags()
	c := mdp.DefaultConfig()
	if sync, _ := f.GetBool("sync"); sync {
		c.Update = mdp.Synchronous
	}
	c.MaxSweeps, _ = f.GetInt("max-sweeps")
	c.Theta, _ = f.GetFloat64("theta")
	return c
}

func createExperiment(cmd *cobra.Command) (*experiment.Experiment, error) {
	conf, err := worldConfig(cmd)
	if err != nil {
		return nil, err
	}
	return experiment.Config{EnvConf: conf, Solver: solverConfig(cmd)}.
		CreateExp()
}

func terminal(cmd *cobra.Command) *render.Terminal {
	color, _ := cmd.Flags().GetBool("color")
	return render.NewTerminal(cmd.OutOrStdout(), color)
}

func solveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a world and print its optimal policy and values",
		RunE:  runSolve,
	}
	addWorldFlags(cmd)
	addSolverFlags(cmd)
	cmd.Flags().String("out", "", "directory to save a policy image and "+
		"heat maps in")
	return cmd
}

func runSolve(cmd *cobra.Command, args []string) error {
	e, err := createExperiment(cmd)
	if err != nil {
		return err
	}

	solution, err := e.Solve()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	world := e.World()
	fmt.Fprintln(w, e)
	fmt.Fprintln(w, solution)
	fmt.Fprintln(w, strings.Join(render.Glyphs(solution.Policy,
		world.Labels()), " "))

	rows, cols := world.Dims()
	v := mat.NewVecDense(len(solution.V), solution.V)
	fmt.Fprintf(w, "V =\n%v\n", matutils.Format(matutils.Reshape(v, rows,
		cols)))

	t := terminal(cmd)
	if err := t.PrintPolicy(world, solution.Policy); err != nil {
		return err
	}
	if err := t.PrintValues(world, solution.V); err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return nil
	}
	if err := os.MkdirAll(out, 0755); err != nil {
		return err
	}

	if err := render.SavePolicyPNG(filepath.Join(out, "policy.png"), world,
		solution.Policy, solution.V); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(out, "values.html"), func(f *os.File) error {
		return render.ValueHeatMap("Values", world, solution.V, f)
	}); err != nil {
		return err
	}
	if r, ok := world.(interface{ Rewards() map[int]float64 }); ok {
		if err := writeFile(filepath.Join(out, "rewards.html"), func(f *os.File) error {
			return render.RewardHeatMap("Rewards", world, r.Rewards(), f)
		}); err != nil {
			return err
		}
	}

	log.Printf("solve: results saved in %v", out)
	return nil
}

func studyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "study",
		Short: "Print the optimal policy of a world as the agent grows " +
			"more patient and more confident",
		RunE: runStudy,
	}
	addWorldFlags(cmd)
	addSolverFlags(cmd)
	cmd.Flags().String("gammas", "0.01:1:0.1", "discount factors to study, "+
		"as start:stop:step")
	cmd.Flags().String("probs", "0.01:1:0.1", "probabilities to study, "+
		"as start:stop:step")
	return cmd
}

func runStudy(cmd *cobra.Command, args []string) error {
	gammaRange, _ := cmd.Flags().GetString("gammas")
	gammas, err := parseRange(gammaRange)
	if err != nil {
		return err
	}
	probRange, _ := cmd.Flags().GetString("probs")
	probs, err := parseRange(probRange)
	if err != nil {
		return err
	}

	e, err := createExperiment(cmd)
	if err != nil {
		return err
	}
	baseline, gamma := e.Prob(), e.Gamma()

	w := cmd.OutOrStdout()
	t := terminal(cmd)
	study := func() error {
		solution, err := e.Solve()
		if err != nil {
			return err
		}
		if err := t.PrintPolicy(e.World(), solution.Policy); err != nil {
			return err
		}
		fmt.Fprintln(w)
		return nil
	}

	for _, g := range gammas {
		fmt.Fprintf(w, "gamma = %.2f\n", g)
		if err := e.Myopic(g); err != nil {
			return err
		}
		if err := study(); err != nil {
			return err
		}
	}

	if err := e.Myopic(gamma); err != nil {
		return err
	}
	for _, p := range probs {
		fmt.Fprintf(w, "prob = %.2f\n", p)
		if err := e.Confident(p); err != nil {
			return err
		}
		if c := e.Confidence(baseline); c != experiment.Calibrated {
			fmt.Fprintln(w, strings.ToUpper(string(c)))
		}
		if err := study(); err != nil {
			return err
		}
	}
	return nil
}

// parseRange parses a range start:stop:step into its values
func parseRange(s string) ([]float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("parseRange: expected start:stop:step, got %q", s)
	}

	var bounds [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("parseRange: %v", err)
		}
		bounds[i] = v
	}

	values, err := floatutils.Arange(bounds[0], bounds[1], bounds[2])
	if err != nil {
		return nil, fmt.Errorf("parseRange: %w", err)
	}
	return values, nil
}

func sweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Solve a world over a grid of parameters, discount factors, " +
			"and probabilities",
		RunE: runSweep,
	}
	f := cmd.Flags()
	f.String("config", "", "JSON sweep configuration, the river swim "+
		"sweep if not given")
	f.Int("cols", 9, "river swim sweep: values per parameter")
	f.Int("granularity", 20, "river swim sweep: discount factors and "+
		"probabilities per axis")
	f.Int("workers", defaultWorkers(), "cells solved concurrently, 0 for "+
		"one per CPU")
	f.Int("checkpoint", 100, "checkpoint results every this many cells")
	f.String("out", outputDir(), "directory to save results in")
	return cmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()

	var conf sweep.Config
	var err error
	if path, _ := f.GetString("config"); path != "" {
		conf, err = sweep.LoadConfig(path)
	} else {
		cols, _ := f.GetInt("cols")
		granularity, _ := f.GetInt("granularity")
		conf, err = sweep.RiverSwimConfig(cols, granularity)
	}
	if err != nil {
		return err
	}
	if f.Changed("workers") || conf.Workers == 0 {
		conf.Workers, _ = f.GetInt("workers")
	}

	runID := uuid.New().String()
	out, _ := f.GetString("out")
	dir := filepath.Join(out, fmt.Sprintf("%v-%v",
		strings.ReplaceAll(strings.ToLower(conf.Name), " ", "_"), runID))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	gob := tracker.NewGob(filepath.Join(dir, "records.bin"))
	s, err := sweep.New(conf, runID, gob,
		tracker.NewParquet(filepath.Join(dir, "records.parquet")))
	if err != nil {
		return err
	}

	every, _ := f.GetInt("checkpoint")
	s.RegisterCheckpointer(checkpointer.NewNStep(every, gob,
		func() string { return filepath.Join(dir, "checkpoint.bin") }))

	bar := progressbar.NewManualProgressBar(cmd.ErrOrStderr(), 50,
		conf.NumCells())
	defer bar.Close()
	s.SetProgressBar(bar)
	s.SetLogger(log.Default())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	records, err := s.Run(ctx)
	if err != nil {
		return err
	}
	if err := s.Save(); err != nil {
		return err
	}

	if err := writeFile(filepath.Join(dir, "sweep.html"), func(f *os.File) error {
		return render.SweepPage(conf.Name, records, render.StartAction, f)
	}); err != nil {
		return err
	}

	log.Printf("sweep: %d records saved in %v", len(records), dir)
	return nil
}

func simulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Solve a world and roll out its greedy policy",
		RunE:  runSimulate,
	}
	addWorldFlags(cmd)
	addSolverFlags(cmd)
	cmd.Flags().Int("steps", 100, "maximum number of steps")
	cmd.Flags().Uint64("seed", 0, "seed for sampling transitions")
	cmd.Flags().Bool("random-start", false, "start in a uniformly random "+
		"state instead of the world's start state")
	return cmd
}

func runSimulate(cmd *cobra.Command, args []string) error {
	e, err := createExperiment(cmd)
	if err != nil {
		return err
	}
	if _, err := e.Solve(); err != nil {
		return err
	}

	steps, _ := cmd.Flags().GetInt("steps")
	seed, _ := cmd.Flags().GetUint64("seed")
	var starter env.Starter = env.NewSingleStart(e.World().Start())
	if random, _ := cmd.Flags().GetBool("random-start"); random {
		if starter, err = env.NewUniformStarter(e.World().NumStates(),
			seed); err != nil {
			return err
		}
	}

	trajectory, err := e.RolloutFrom(starter, steps, seed)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, step := range trajectory {
		fmt.Fprintln(w, step)
	}
	fmt.Fprintf(w, "return: %.4f\n", experiment.DiscountedReturn(trajectory))
	return nil
}

func exampleCmd() *cobra.Command {
	names := make([]string, 0, len(examples.Examples))
	for name := range examples.Examples {
		names = append(names, name)
	}
	sort.Strings(names)

	return &cobra.Command{
		Use:       fmt.Sprintf("example {%v}", strings.Join(names, "|")),
		Short:     "Run one of the scripted studies",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			color, _ := cmd.Flags().GetBool("color")
			return examples.Examples[args[0]](cmd.OutOrStdout(), color)
		},
	}
}

// writeFile creates filename and writes to it with write
func writeFile(filename string, write func(*os.File) error) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
