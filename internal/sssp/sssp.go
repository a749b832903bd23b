// Package sssp holds the types and sentinel constants shared by the
// sequential and parallel shortest-path solvers.
package sssp

import "github.com/iu7-aa/sssp-lab/pkg/collections"

// pathScratch pools the reversed-order scratch buffer ReconstructPath walks
// the parent chain into, since Emit and the CLI both call it once per
// request/target and the buffer's final contents are always copied out
// before it's reused.
var pathScratch = collections.NewSlicePool[int](64)

// INF denotes "unreached": no shorter path has ever been recorded for a
// vertex. The gap between INF and InfLike guarantees INF+w never wraps past
// InfLike for any legal (32-bit) edge weight.
const INF uint64 = (1<<64 - 1) / 4

// InfLike bounds the headroom above INF. Solvers never relax out of an
// unreached vertex, so an unreached vertex keeps exactly INF; ReconstructPath
// and the result formatters treat any dist[v] >= INF as unreachable.
const InfLike uint64 = (1<<64 - 1) / 2

// DefaultThreads is used when the caller requests T <= 0.
const DefaultThreads = 1

// MaxThreads is the upper bound enforced on the worker count.
const MaxThreads = 64

// NoParent marks a vertex with no predecessor (the source, or unreached).
const NoParent = -1

// Result is the outcome of a solver run: per-vertex shortest distance from
// the source and the predecessor used to achieve it.
type Result struct {
	Dist   []uint64
	Parent []int
}

// ReconstructPath walks the parent chain from target back to the source,
// returning vertex indices in source-to-target order. Returns nil if target
// is unreached (Dist[target] >= INF).
func (r *Result) ReconstructPath(target int) []int {
	if r.Dist[target] >= INF {
		return nil
	}

	revPtr := pathScratch.Get()
	rev := (*revPtr)[:0]
	for v := target; v != NoParent; v = r.Parent[v] {
		rev = append(rev, v)
	}

	path := make([]int, len(rev))
	for i, v := range rev {
		path[len(rev)-1-i] = v
	}

	*revPtr = rev
	pathScratch.Put(revPtr)
	return path
}

// ResolveThreadCount substitutes the logical CPU count for a non-positive
// request and clamps to MaxThreads. cpuCount is injected so callers (and
// tests) control the substitution deterministically.
func ResolveThreadCount(requested, cpuCount int) int {
	t := requested
	if t <= 0 {
		t = cpuCount
		if t < 1 {
			t = DefaultThreads
		}
	}
	if t > MaxThreads {
		t = MaxThreads
	}
	return t
}
