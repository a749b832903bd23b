// Package resultfmt builds the JSON and human-readable text result
// artifacts produced by the CLI driver and the pipeline's Emit stage.
package resultfmt

import (
	"fmt"
	"strings"

	"github.com/iu7-aa/sssp-lab/internal/graph"
	"github.com/iu7-aa/sssp-lab/internal/sssp"
)

// Shortest describes the minimum-distance target among the requested set.
type Shortest struct {
	Target   string   `json:"target"`
	Distance uint64   `json:"distance"`
	Path     []string `json:"path"`
}

// Result is the JSON result artifact: start vertex, requested targets, the
// engine configuration used, per-target distances (null when unreachable),
// and the single overall-shortest target (null when none reachable).
type Result struct {
	Start     string             `json:"start"`
	Targets   []string           `json:"targets"`
	Threads   int                `json:"threads"`
	Algo      string             `json:"algo"`
	TimeMs    int64              `json:"time_ms"`
	Distances map[string]*uint64 `json:"distances"`
	Shortest  *Shortest          `json:"shortest"`
}

// Algo labels for the two engines.
const (
	AlgoSequential = "seq"
	AlgoParallel   = "par"
)

// Build assembles a Result from a solved (dist, parent) pair. targetNames
// and targetIDs must be parallel slices (targetIDs[i] is the resolved index
// of targetNames[i]). Ties among targets sharing the minimum distance are
// broken by input order: the first strictly-smaller distance seen wins,
// matching the reference JSON builder's linear scan.
func Build(g *graph.Graph, startName string, targetNames []string, targetIDs []int, res *sssp.Result, threads int, algo string, elapsedMs int64) *Result {
	distances := make(map[string]*uint64, len(targetNames))
	bestIdx := -1
	var best uint64

	for i, name := range targetNames {
		v := targetIDs[i]
		d := res.Dist[v]

		if d >= sssp.INF {
			distances[name] = nil
		} else {
			dCopy := d
			distances[name] = &dCopy
		}

		if bestIdx == -1 || d < best {
			best = d
			bestIdx = i
		}
	}

	r := &Result{
		Start:     startName,
		Targets:   append([]string(nil), targetNames...),
		Threads:   threads,
		Algo:      algo,
		TimeMs:    elapsedMs,
		Distances: distances,
	}

	if bestIdx != -1 && res.Dist[targetIDs[bestIdx]] < sssp.INF {
		tv := targetIDs[bestIdx]
		pathIdx := res.ReconstructPath(tv)
		pathNames := make([]string, len(pathIdx))
		for i, v := range pathIdx {
			pathNames[i] = g.Name(v)
		}

		r.Shortest = &Shortest{
			Target:   targetNames[bestIdx],
			Distance: res.Dist[tv],
			Path:     pathNames,
		}
	}

	return r
}

// BuildText renders the same information as a human-readable report,
// matching the shape of the single-run driver's text output: start vertex,
// marked vertices, distance to each, and the overall shortest target.
func BuildText(g *graph.Graph, startName string, targetNames []string, targetIDs []int, res *sssp.Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Start vertex: %s\n", startName)
	fmt.Fprintf(&sb, "Marked vertices: %s\n", strings.Join(targetNames, ", "))

	sb.WriteString("Distances to marked vertices:\n")
	bestIdx := -1
	var best uint64
	for i, name := range targetNames {
		v := targetIDs[i]
		d := res.Dist[v]
		if d >= sssp.INF {
			fmt.Fprintf(&sb, "  %s: INF\n", name)
		} else {
			fmt.Fprintf(&sb, "  %s: %d\n", name, d)
		}

		if d < sssp.INF && (bestIdx == -1 || d < best) {
			best = d
			bestIdx = i
		}
	}

	sb.WriteString("Shortest among marked vertices:\n")
	if bestIdx == -1 {
		sb.WriteString("  All marked vertices are unreachable.\n")
		return sb.String()
	}

	tv := targetIDs[bestIdx]
	pathIdx := res.ReconstructPath(tv)
	pathNames := make([]string, len(pathIdx))
	for i, v := range pathIdx {
		pathNames[i] = g.Name(v)
	}

	fmt.Fprintf(&sb, "  target: %s\n", targetNames[bestIdx])
	fmt.Fprintf(&sb, "  distance: %d\n", best)
	fmt.Fprintf(&sb, "  path: %s\n", strings.Join(pathNames, " -> "))

	return sb.String()
}
