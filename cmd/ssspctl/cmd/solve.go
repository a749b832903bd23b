package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iu7-aa/sssp-lab/internal/dotgraph"
	"github.com/iu7-aa/sssp-lab/internal/resultfmt"
	"github.com/iu7-aa/sssp-lab/internal/sssp"
	"github.com/iu7-aa/sssp-lab/internal/sssp/parallel"
	"github.com/iu7-aa/sssp-lab/internal/sssp/sequential"
	apperrors "github.com/iu7-aa/sssp-lab/pkg/errors"
)

var (
	solveGraphFile string
	solveStart     string
	solveTargets   string
	solveThreads   int
	solveJSON      bool
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Run a single shortest-path search and print a report",
	RunE:  runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVarP(&solveGraphFile, "file", "f", "", "DOT-like graph file (required)")
	solveCmd.Flags().StringVarP(&solveStart, "start", "s", "", "Start vertex name (required)")
	solveCmd.Flags().StringVarP(&solveTargets, "targets", "t", "", "Comma-separated target vertex names (required)")
	solveCmd.Flags().IntVar(&solveThreads, "threads", 0, "Worker count; <= 0 uses the sequential solver, capped at 64")
	solveCmd.Flags().BoolVar(&solveJSON, "json", false, "Print the JSON result instead of the text report")

	solveCmd.MarkFlagRequired("file")
	solveCmd.MarkFlagRequired("start")
	solveCmd.MarkFlagRequired("targets")
}

func runSolve(cmd *cobra.Command, args []string) error {
	log := GetLogger()

	g, err := dotgraph.Load(solveGraphFile)
	if err != nil {
		return reportErr(err)
	}

	startIdx, ok := g.FindVertex(solveStart)
	if !ok {
		return reportErr(apperrors.New(apperrors.CodeNodeNotFound, fmt.Sprintf("start node not found: %s", solveStart)))
	}

	targetNames := splitTargets(solveTargets)
	targetIDs := make([]int, 0, len(targetNames))
	for _, name := range targetNames {
		idx, ok := g.FindVertex(name)
		if !ok {
			return reportErr(apperrors.New(apperrors.CodeNodeNotFound, fmt.Sprintf("target node not found: %s", name)))
		}
		targetIDs = append(targetIDs, idx)
	}

	algo := resultfmt.AlgoParallel
	threads := solveThreads
	started := time.Now()
	var res *sssp.Result
	if threads <= 0 {
		algo = resultfmt.AlgoSequential
		res = sequential.Run(g, startIdx)
		threads = 0
	} else {
		threads = sssp.ResolveThreadCount(threads, runtime.NumCPU())
		if appConfig != nil && threads > appConfig.Solver.MaxThreads {
			threads = appConfig.Solver.MaxThreads
		}
		res = parallel.Run(g, startIdx, threads)
	}
	elapsedMs := time.Since(started).Milliseconds()

	log.Info("solved %s -> %v in %dms (%s, threads=%d)", solveStart, targetNames, elapsedMs, algo, threads)

	if solveJSON {
		result := resultfmt.Build(g, solveStart, targetNames, targetIDs, res, threads, algo, elapsedMs)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintln(os.Stdout, resultfmt.BuildText(g, solveStart, targetNames, targetIDs, res))
	return nil
}

func splitTargets(raw string) []string {
	parts := strings.Split(raw, ",")
	targets := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			targets = append(targets, p)
		}
	}
	return targets
}

// reportErr prints a one-line JSON error to stderr and returns it so cobra
// exits non-zero, matching spec's CLI error-boundary contract.
func reportErr(err error) error {
	fmt.Fprintf(os.Stderr, `{"error": %q}`+"\n", err.Error())
	return err
}
