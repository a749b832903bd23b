// Package dotgraph loads the DOT-like textual graph format into an
// internal/graph.Graph.
package dotgraph

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/iu7-aa/sssp-lab/internal/graph"
	apperrors "github.com/iu7-aa/sssp-lab/pkg/errors"
)

var (
	edgeRe     = regexp.MustCompile(`("[^"]+"|[A-Za-z0-9_]+)\s*->\s*("[^"]+"|[A-Za-z0-9_]+)\s*(\[(.*?)\])?\s*;`)
	nodeRe     = regexp.MustCompile(`^\s*("[^"]+"|[A-Za-z0-9_]+)\s*;\s*$`)
	labelKVRe  = regexp.MustCompile(`label\s*=\s*([0-9]+)`)
	weightKVRe = regexp.MustCompile(`weight\s*=\s*([0-9]+)`)
)

// Load reads path and parses it as a digraph. Requires the literal token
// "digraph" to appear somewhere in the file. Statements are either bare
// "NAME ;" isolated-vertex declarations, or "NAME -> NAME ([ATTRS])? ;"
// edges. ATTRS may carry label=<uint> and/or weight=<uint>; when both are
// present label wins unconditionally (the external contract requires this
// regardless of which key happens to appear first in the attribute text).
// Default weight is 1 when neither key is present. Weights must fit in 32
// bits or loading fails with WeightOverflow.
func Load(path string) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFileOpenFailure,
			fmt.Sprintf("failed to open DOT file: %s", path), err)
	}

	return Parse(string(data))
}

// Parse parses DOT-like text already read into memory.
func Parse(text string) (*graph.Graph, error) {
	if !strings.Contains(text, "digraph") {
		return nil, apperrors.New(apperrors.CodeParseError, "DOT must be a digraph with '->' arcs")
	}

	g := graph.New()

	for _, line := range strings.Split(text, "\n") {
		m := nodeRe.FindStringSubmatch(line)
		if m != nil {
			g.EnsureVertex(unquote(strings.TrimSpace(m[1])))
		}
	}

	for _, m := range edgeRe.FindAllStringSubmatch(text, -1) {
		uName := unquote(m[1])
		vName := unquote(m[2])
		attrs := m[4]

		w, err := resolveWeight(attrs)
		if err != nil {
			return nil, err
		}

		u := g.EnsureVertex(uName)
		v := g.EnsureVertex(vName)
		if err := g.AddEdge(u, v, w); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// resolveWeight picks the edge weight out of an attribute blob, preferring
// label= over weight= whenever both are present, defaulting to 1 when
// neither is.
func resolveWeight(attrs string) (uint32, error) {
	if attrs == "" {
		return 1, nil
	}

	if m := labelKVRe.FindStringSubmatch(attrs); m != nil {
		return parseWeight(m[1])
	}
	if m := weightKVRe.FindStringSubmatch(attrs); m != nil {
		return parseWeight(m[1])
	}
	return 1, nil
}

func parseWeight(raw string) (uint32, error) {
	val, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeParseError, "malformed edge weight", err)
	}
	if val > math.MaxUint32 {
		return 0, apperrors.New(apperrors.CodeWeightOverflow, "edge weight exceeds 32-bit range")
	}
	return uint32(val), nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
