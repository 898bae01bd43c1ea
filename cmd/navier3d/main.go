// Command navier3d is the command-line interface for the navier3d
// incompressible Navier-Stokes solver.
package main

import (
	"fmt"
	"os"

	"github.com/ctessum/navier3d/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
