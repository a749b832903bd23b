package pipeline

import (
	"github.com/iu7-aa/sssp-lab/internal/graph"
	"github.com/iu7-aa/sssp-lab/internal/sssp"
)

// Request is a pipeline work item, owned exclusively by whichever stage is
// currently processing it. Fields are populated progressively: input ->
// resolved (by Prepare) -> solved (by Solve) -> written (by Emit).
type Request struct {
	ID              int
	GraphFile       string
	StartNodeName   string
	TargetNodeNames []string

	// Failed records the first error a stage hit processing this request.
	// Later stages check it and skip their own work rather than trusting a
	// zero-valued field (StartIndex == 0 is a legitimate resolved index,
	// not a "Prepare didn't run" marker).
	Failed error

	// Populated by Prepare.
	Graph         *graph.Graph
	StartIndex    int
	TargetIndices []int

	// Populated by Solve.
	Result *sssp.Result

	// Populated by Emit.
	ResultPath string
}
