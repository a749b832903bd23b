// Package experiment runs a thread-count sweep across generated graphs and
// reports timings as CSV rows. It is a deliberately reduced stand-in for the
// original comparative-analysis driver: fixed graph sizes, a fixed thread
// ladder, one CSV file, no scalability prose or threadcount recommendation.
package experiment

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"sort"
	"strconv"

	"github.com/iu7-aa/sssp-lab/internal/graph"
	"github.com/iu7-aa/sssp-lab/internal/sssp/parallel"
	"github.com/iu7-aa/sssp-lab/internal/sssp/sequential"
	libparallel "github.com/iu7-aa/sssp-lab/pkg/parallel"
	"github.com/iu7-aa/sssp-lab/pkg/utils"
	"github.com/iu7-aa/sssp-lab/pkg/writer"
)

// DefaultSizes is the graph-size ladder swept by Run when the caller does
// not supply its own.
var DefaultSizes = []int{200, 500, 1000}

// Result is one row of the sweep: one (graph size, thread count) trial.
type Result struct {
	GraphSize  int
	Threads    int
	TimeUs     int64
	Sequential bool
}

// ThreadLadder builds the thread counts to sweep: 0 (sequential), 1, 2, 4, 8,
// and cpuCount if it isn't already in that set, sorted ascending.
func ThreadLadder(cpuCount int) []int {
	seen := map[int]bool{}
	counts := []int{0, 1, 2, 4, 8}
	for _, c := range counts {
		seen[c] = true
	}
	if cpuCount > 0 && !seen[cpuCount] {
		counts = append(counts, cpuCount)
	}
	sort.Ints(counts)
	return counts
}

// edgeSpec is one generated (from, to, weight) triple, produced by a
// GenerateGraph worker before it is applied to the graph.
type edgeSpec struct {
	from, to int
	weight   uint32
}

// GenerateGraph builds a random directed graph with n vertices named "v0"..
// "v<n-1>", each with up to maxOutDegree outgoing edges of weight in
// [1, maxWeight]. Edge generation for each vertex is an independent PCG
// stream seeded off (seed, vertex index), so the result is identical for a
// given seed regardless of how many workers the chunk processor below
// happens to use. Vertices are split into chunks and generated concurrently
// via pkg/parallel.ChunkProcessor, the same split-process-reduce shape the
// teacher uses for its per-object graph scans.
func GenerateGraph(n, maxOutDegree int, maxWeight uint32, seed uint64) *graph.Graph {
	g := graph.New()
	for i := 0; i < n; i++ {
		g.EnsureVertex(vertexName(i))
	}
	if n == 0 {
		return g
	}

	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}

	processor := libparallel.NewChunkProcessor[int, []edgeSpec](libparallel.DefaultPoolConfig())
	edges := processor.ProcessChunks(context.Background(), ids,
		func(_ context.Context, chunk []int, _ int) []edgeSpec {
			out := make([]edgeSpec, 0, len(chunk)*maxOutDegree/2)
			for _, v := range chunk {
				r := rand.New(rand.NewPCG(seed+uint64(v), seed^0xD1B54A32D192ED03^uint64(v)))
				degree := r.IntN(maxOutDegree + 1)
				for k := 0; k < degree; k++ {
					to := r.IntN(n)
					weight := uint32(r.IntN(int(maxWeight))) + 1
					out = append(out, edgeSpec{from: v, to: to, weight: weight})
				}
			}
			return out
		},
		func(chunks [][]edgeSpec) []edgeSpec {
			total := 0
			for _, c := range chunks {
				total += len(c)
			}
			all := make([]edgeSpec, 0, total)
			for _, c := range chunks {
				all = append(all, c...)
			}
			return all
		},
	)

	sort.SliceStable(edges, func(i, j int) bool { return edges[i].from < edges[j].from })
	for _, e := range edges {
		g.AddEdge(e.from, e.to, e.weight)
	}
	return g
}

func vertexName(i int) string {
	return "v" + strconv.Itoa(i)
}

// trial is one unit of work handed to the worker pool: run a single
// (graph, thread count) solve and record its wall time.
type trial struct {
	size    int
	threads int
	g       *graph.Graph
	clock   utils.Clock
}

func runTrial(_ context.Context, tr trial) (Result, error) {
	timer := utils.NewTimer("trial", utils.WithClock(tr.clock), utils.WithEnabled(true))
	phase := timer.Start("solve")

	if tr.threads == 0 {
		sequential.Run(tr.g, 0)
	} else {
		parallel.Run(tr.g, 0, tr.threads)
	}

	elapsed := phase.Stop()
	return Result{
		GraphSize:  tr.size,
		Threads:    tr.threads,
		TimeUs:     elapsed.Microseconds(),
		Sequential: tr.threads == 0,
	}, nil
}

// Run sweeps ThreadLadder(cpuCount) over a generated graph of each size in
// sizes, running each (size, threads) trial concurrently via a worker pool,
// and returns one Result per trial in (size, threads) order.
func Run(ctx context.Context, sizes []int, maxOutDegree int, maxWeight uint32, cpuCount int, clock utils.Clock) []Result {
	if clock == nil {
		clock = utils.NewRealClock()
	}
	ladder := ThreadLadder(cpuCount)

	var trials []trial
	for idx, size := range sizes {
		g := GenerateGraph(size, maxOutDegree, maxWeight, uint64(idx+1))
		for _, threads := range ladder {
			trials = append(trials, trial{size: size, threads: threads, g: g, clock: clock})
		}
	}

	pool := libparallel.NewWorkerPool[trial, Result](libparallel.DefaultPoolConfig())
	taskResults := pool.ExecuteFunc(ctx, trials, runTrial)

	results := make([]Result, len(taskResults))
	for i, tr := range taskResults {
		results[i] = tr.Result
	}
	return results
}

// WriteCSV writes results as "graph_size,threads,time_us,is_sequential" rows.
func WriteCSV(results []Result, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"graph_size", "threads", "time_us", "is_sequential"}); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			strconv.Itoa(r.GraphSize),
			strconv.Itoa(r.Threads),
			strconv.FormatInt(r.TimeUs, 10),
			fmt.Sprintf("%t", r.Sequential),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSONGzipFile archives results as gzip-compressed JSON alongside the
// CSV, for runs where the sweep is large enough that shipping the raw rows
// around is worth compressing.
func WriteJSONGzipFile(results []Result, path string) error {
	gz := writer.NewGzipWriter[[]Result]()
	return gz.WriteToFile(results, path)
}
