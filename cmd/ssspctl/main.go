// Command ssspctl is the CLI driver for the shortest-path toolkit: it wraps
// the solve, pipeline, and experiment subcommands behind one cobra root.
package main

import (
	"github.com/iu7-aa/sssp-lab/cmd/ssspctl/cmd"
)

func main() {
	cmd.Execute()
}
