package cmd

import (
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/iu7-aa/sssp-lab/internal/experiment"
)

var (
	experimentOutput       string
	experimentArchive      string
	experimentSizes        []int
	experimentMaxOutDegree int
	experimentMaxWeight    uint32
)

var experimentCmd = &cobra.Command{
	Use:   "experiment",
	Short: "Sweep thread counts over generated graphs and write a CSV of timings",
	RunE:  runExperiment,
}

func init() {
	rootCmd.AddCommand(experimentCmd)

	experimentCmd.Flags().StringVarP(&experimentOutput, "output", "o", "experiment_results.csv", "CSV output path")
	experimentCmd.Flags().StringVar(&experimentArchive, "archive", "", "Optional gzip-compressed JSON archive path, written alongside the CSV")
	experimentCmd.Flags().IntSliceVar(&experimentSizes, "sizes", experiment.DefaultSizes, "Graph sizes to sweep")
	experimentCmd.Flags().IntVar(&experimentMaxOutDegree, "max-out-degree", 5, "Maximum out-degree per vertex in generated graphs")
	experimentCmd.Flags().Uint32Var(&experimentMaxWeight, "max-weight", 20, "Maximum edge weight in generated graphs")
}

func runExperiment(cmd *cobra.Command, args []string) error {
	log := GetLogger()

	log.Info("sweeping %v graph sizes across threads %v", experimentSizes, experiment.ThreadLadder(runtime.NumCPU()))
	results := experiment.Run(cmd.Context(), experimentSizes, experimentMaxOutDegree, experimentMaxWeight, runtime.NumCPU(), nil)

	f, err := os.Create(experimentOutput)
	if err != nil {
		return reportErr(err)
	}
	defer f.Close()

	if err := experiment.WriteCSV(results, f); err != nil {
		return reportErr(err)
	}

	log.Info("wrote %d rows to %s", len(results), experimentOutput)

	if experimentArchive != "" {
		if err := experiment.WriteJSONGzipFile(results, experimentArchive); err != nil {
			return reportErr(err)
		}
		log.Info("wrote gzip archive to %s", experimentArchive)
	}

	return nil
}
