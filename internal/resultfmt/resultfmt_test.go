package resultfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/iu7-aa/sssp-lab/internal/graph"
	"github.com/iu7-aa/sssp-lab/internal/sssp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTieBreakGraph(t *testing.T) (*graph.Graph, map[string]int) {
	t.Helper()
	g := graph.New()
	a := g.EnsureVertex("A")
	b := g.EnsureVertex("B")
	c := g.EnsureVertex("C")
	d := g.EnsureVertex("D")
	require.NoError(t, g.AddEdge(a, b, 2))
	require.NoError(t, g.AddEdge(a, c, 1))
	require.NoError(t, g.AddEdge(a, d, 3))
	return g, map[string]int{"A": a, "B": b, "C": c, "D": d}
}

func TestBuild_ShortestTieBreak(t *testing.T) {
	g, idx := buildTieBreakGraph(t)
	res := &sssp.Result{
		Dist:   []uint64{0, 2, 1, 3},
		Parent: []int{-1, idx["A"], idx["A"], idx["A"]},
	}

	targetNames := []string{"B", "C", "D"}
	targetIDs := []int{idx["B"], idx["C"], idx["D"]}

	r := Build(g, "A", targetNames, targetIDs, res, 4, AlgoParallel, 12)

	require.NotNil(t, r.Shortest)
	assert.Equal(t, "C", r.Shortest.Target)
	assert.Equal(t, uint64(1), r.Shortest.Distance)
	assert.Equal(t, []string{"A", "C"}, r.Shortest.Path)
}

func TestBuild_UnreachableTargetIsNull(t *testing.T) {
	g, idx := buildTieBreakGraph(t)
	res := &sssp.Result{
		Dist:   []uint64{0, sssp.INF, sssp.INF, sssp.INF},
		Parent: []int{-1, -1, -1, -1},
	}

	r := Build(g, "A", []string{"B"}, []int{idx["B"]}, res, 1, AlgoSequential, 1)

	assert.Nil(t, r.Distances["B"])
	assert.Nil(t, r.Shortest)
}

func TestBuild_JSONShape(t *testing.T) {
	g, idx := buildTieBreakGraph(t)
	res := &sssp.Result{
		Dist:   []uint64{0, 2, 1, 3},
		Parent: []int{-1, idx["A"], idx["A"], idx["A"]},
	}

	r := Build(g, "A", []string{"B", "C"}, []int{idx["B"], idx["C"]}, res, 2, AlgoParallel, 5)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(r, &buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "A", decoded["start"])
	assert.Equal(t, "par", decoded["algo"])
	assert.Equal(t, float64(2), decoded["threads"])
}

func TestBuildText_AllUnreachable(t *testing.T) {
	g, idx := buildTieBreakGraph(t)
	res := &sssp.Result{
		Dist:   []uint64{0, sssp.INF, sssp.INF, sssp.INF},
		Parent: []int{-1, -1, -1, -1},
	}

	text := BuildText(g, "A", []string{"B", "C"}, []int{idx["B"], idx["C"]}, res)
	assert.Contains(t, text, "All marked vertices are unreachable.")
}

func TestBuildText_ReportsShortest(t *testing.T) {
	g, idx := buildTieBreakGraph(t)
	res := &sssp.Result{
		Dist:   []uint64{0, 2, 1, 3},
		Parent: []int{-1, idx["A"], idx["A"], idx["A"]},
	}

	text := BuildText(g, "A", []string{"B", "C", "D"}, []int{idx["B"], idx["C"], idx["D"]}, res)
	assert.Contains(t, text, "target: C")
	assert.Contains(t, text, "path: A -> C")
}
