// Command gsmpctl is a thin demo driver over the public GSMP API,
// grounded on cmd/chaos-runner/{main,run}.go's cobra command tree. It is
// orchestration on top of pkg/gsmp/... — never imported by any package
// under pkg/gsmp.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:     "gsmpctl",
	Short:   "Demo driver for the generalized semi-Markov process sampling library",
	Long:    `gsmpctl drives a pkg/gsmp/context.Context through a YAML fixture, either racing its clocks to completion or replaying a recorded trajectory and checking reproducibility.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "fixture YAML file (see pkg/gsmp/fixture)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.AddCommand(raceCmd)
	rootCmd.AddCommand(replayCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
