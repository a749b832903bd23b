package cmd

import (
	"encoding/json"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/iu7-aa/sssp-lab/internal/pipeline"
	"github.com/iu7-aa/sssp-lab/internal/sssp"
)

var (
	pipelineGraphFile string
	pipelineStart     string
	pipelineTargets   string
	pipelineThreads   int
	pipelineCount     int
	pipelineResultDir string
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run n requests through the Prepare -> Solve -> Emit pipeline",
	RunE:  runPipeline,
}

func init() {
	rootCmd.AddCommand(pipelineCmd)

	pipelineCmd.Flags().StringVarP(&pipelineGraphFile, "file", "f", "", "DOT-like graph file (required)")
	pipelineCmd.Flags().StringVarP(&pipelineStart, "start", "s", "", "Start vertex name (required)")
	pipelineCmd.Flags().StringVarP(&pipelineTargets, "targets", "t", "", "Comma-separated target vertex names (required)")
	pipelineCmd.Flags().IntVar(&pipelineThreads, "threads", 0, "Worker count for the Solve stage, capped at 64")
	pipelineCmd.Flags().IntVarP(&pipelineCount, "count", "n", 1, "Number of requests to run through the pipeline")
	pipelineCmd.Flags().StringVarP(&pipelineResultDir, "output", "o", "./results", "Directory for per-request report files")

	pipelineCmd.MarkFlagRequired("file")
	pipelineCmd.MarkFlagRequired("start")
	pipelineCmd.MarkFlagRequired("targets")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	log := GetLogger()

	requested := pipelineThreads
	if requested <= 0 && appConfig != nil {
		requested = appConfig.Solver.DefaultThreads
	}
	threads := sssp.ResolveThreadCount(requested, runtime.NumCPU())
	if appConfig != nil && threads > appConfig.Solver.MaxThreads {
		threads = appConfig.Solver.MaxThreads
	}

	resultDir := pipelineResultDir
	if !cmd.Flags().Changed("output") && appConfig != nil && appConfig.Pipeline.ResultDir != "" {
		resultDir = appConfig.Pipeline.ResultDir
	}

	cfg := pipeline.Config{
		GraphFile: pipelineGraphFile,
		StartName: pipelineStart,
		Targets:   splitTargets(pipelineTargets),
		Threads:   threads,
		ResultDir: resultDir,
	}

	events, err := pipeline.Run(cmd.Context(), cfg, pipelineCount)
	if err != nil {
		return reportErr(err)
	}

	log.Info("ran %d requests through the pipeline (threads=%d), %d events logged", pipelineCount, threads, len(events))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(events)
}
