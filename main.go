package main

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Environment variables providing defaults for the sweep command
const (
	outputDirEnv = "MDP_OUTPUT_DIR"
	workersEnv   = "MDP_WORKERS"
)

func main() {
	for _, envFile := range []string{".env", "../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	rootCmd := &cobra.Command{
		Use:          "gomdp",
		Short:        "gomdp solves small MDPs by value iteration and studies how confidence and myopia change their optimal policies",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().Bool("color", true, "colour terminal output")

	rootCmd.AddCommand(
		solveCmd(),
		studyCmd(),
		sweepCmd(),
		simulateCmd(),
		exampleCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("gomdp: %v", err)
	}
}

// outputDir returns the directory results are written to by default
func outputDir() string {
	if dir := os.Getenv(outputDirEnv); dir != "" {
		return dir
	}
	return "results"
}

// defaultWorkers returns the default number of sweep workers, 0 meaning
// one per CPU
func defaultWorkers() int {
	workers, err := strconv.Atoi(os.Getenv(workersEnv))
	if err != nil || workers < 0 {
		return 0
	}
	return workers
}
