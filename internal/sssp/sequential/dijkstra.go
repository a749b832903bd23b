// Package sequential implements the dense O(V^2) Dijkstra reference solver
// used as the equivalence oracle for the parallel engine.
package sequential

import (
	"github.com/iu7-aa/sssp-lab/internal/graph"
	"github.com/iu7-aa/sssp-lab/internal/sssp"
	"github.com/iu7-aa/sssp-lab/pkg/collections"
)

// Run computes the shortest-distance and parent vectors from start using a
// dense linear-scan Dijkstra: each of the n iterations picks the
// lowest-indexed unvisited vertex with minimum tentative distance, then
// relaxes its outgoing edges. Θ(V^2 + E).
func Run(g *graph.Graph, start int) *sssp.Result {
	n := g.Size()

	dist := make([]uint64, n)
	parent := make([]int, n)
	for i := range dist {
		dist[i] = sssp.INF
		parent[i] = sssp.NoParent
	}
	dist[start] = 0

	used := collections.NewBitset(n)

	for iter := 0; iter < n; iter++ {
		u := -1
		best := sssp.INF
		for i := 0; i < n; i++ {
			if !used.Test(i) && dist[i] < best {
				best = dist[i]
				u = i
			}
		}
		if u == -1 || best == sssp.INF {
			break
		}
		used.Set(u)

		for _, e := range g.Neighbors(u) {
			nd := best + uint64(e.Weight)
			if nd < dist[e.To] {
				dist[e.To] = nd
				parent[e.To] = u
			}
		}
	}

	return &sssp.Result{Dist: dist, Parent: parent}
}
