// Package graph implements the directed, weighted adjacency model shared by
// the sequential and parallel shortest-path solvers.
package graph

import (
	"fmt"

	apperrors "github.com/iu7-aa/sssp-lab/pkg/errors"
)

// Edge is a single outgoing arc (To, Weight) in a vertex's adjacency list.
type Edge struct {
	To     int
	Weight uint32
}

// Graph is a directed, weighted multigraph with a bijective name<->index
// mapping. Self-loops and parallel edges between the same pair of vertices
// are both permitted. Once built it is treated as read-only by every solver.
type Graph struct {
	adj        [][]Edge
	nameToIdx  map[string]int
	idxToName  []string
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nameToIdx: make(map[string]int),
	}
}

// EnsureVertex returns the index for name, allocating a new vertex at the
// next free slot if name has not been seen before. Idempotent.
func (g *Graph) EnsureVertex(name string) int {
	if idx, ok := g.nameToIdx[name]; ok {
		return idx
	}

	idx := len(g.adj)
	g.nameToIdx[name] = idx
	g.idxToName = append(g.idxToName, name)
	g.adj = append(g.adj, nil)
	return idx
}

// FindVertex looks up name, returning (index, true) or (0, false) if absent.
func (g *Graph) FindVertex(name string) (int, bool) {
	idx, ok := g.nameToIdx[name]
	return idx, ok
}

// Name returns the name of vertex idx. Panics if idx is out of range; callers
// that accept untrusted indices should check Size first.
func (g *Graph) Name(idx int) string {
	return g.idxToName[idx]
}

// AddEdge appends (v, w) to u's outgoing adjacency list. Returns OutOfRange
// if either endpoint is not a valid vertex index.
func (g *Graph) AddEdge(u, v int, w uint32) error {
	n := len(g.adj)
	if u < 0 || u >= n || v < 0 || v >= n {
		return apperrors.Wrap(apperrors.CodeOutOfRange,
			fmt.Sprintf("vertex index out of bounds: u=%d v=%d size=%d", u, v, n), nil)
	}

	g.adj[u] = append(g.adj[u], Edge{To: v, Weight: w})
	return nil
}

// Neighbors yields u's outgoing edges in insertion order. The returned slice
// must not be mutated by the caller.
func (g *Graph) Neighbors(u int) []Edge {
	return g.adj[u]
}

// Size returns the number of vertices.
func (g *Graph) Size() int {
	return len(g.adj)
}

// EdgeCount returns the total number of directed edges.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, edges := range g.adj {
		count += len(edges)
	}
	return count
}

// Names returns the idx-to-name mapping in index order. The returned slice
// must not be mutated by the caller.
func (g *Graph) Names() []string {
	return g.idxToName
}
