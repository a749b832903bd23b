package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iu7-aa/sssp-lab/pkg/config"
	"github.com/iu7-aa/sssp-lab/pkg/telemetry"
	"github.com/iu7-aa/sssp-lab/pkg/utils"
)

var (
	verbose    bool
	configPath string
	logger     utils.Logger
	appConfig  *config.Config

	shutdownTelemetry telemetry.ShutdownFunc
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "ssspctl",
	Short: "A parallel shortest-path toolkit",
	Long: `ssspctl runs single-source shortest-path searches over DOT-like graph
files, either as a one-shot solve, or as a staged Prepare -> Solve -> Emit
request pipeline, or as a thread-count experiment sweep.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel := utils.LevelInfo
		if verbose {
			logLevel = utils.LevelDebug
		}
		logger = utils.NewDefaultLogger(logLevel, os.Stdout)

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		appConfig = cfg

		shutdown, err := telemetry.Init(cmd.Context())
		if err != nil {
			logger.Warn("telemetry init failed, continuing without tracing: %v", err)
			shutdown = func(context.Context) error { return nil }
		}
		shutdownTelemetry = shutdown
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if shutdownTelemetry != nil {
			return shutdownTelemetry(cmd.Context())
		}
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	binName := BinName()
	rootCmd.Example = `  # Run a single solve and print a text report
  ` + binName + ` solve -f graph.dot -s A -t B,C,D --threads 4

  # Run n pipeline requests and print the event log
  ` + binName + ` pipeline -f graph.dot -s A -t D -n 100 --threads 4

  # Sweep thread counts over generated graphs and write a CSV
  ` + binName + ` experiment -o experiment_results.csv`
}

// GetLogger returns the configured logger.
func GetLogger() utils.Logger {
	return logger
}

// BinName returns the base name of the current executable.
func BinName() string {
	return filepath.Base(os.Args[0])
}
