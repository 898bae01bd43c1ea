package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ctessum/navier3d/internal/particle"
)

// WriteTrajectoriesOBJ writes traced particle paths as a Wavefront .obj
// file of vertices plus one polyline ("l") per trajectory, the simplest
// format any mesh viewer can load directly. Only the .obj file is
// written; there is no `.binlines` binary side channel. No .obj library exists in the retrieved pack, so
// this is hand-rolled against the public format rather than adapted from
// one — see DESIGN.md.
func WriteTrajectoriesOBJ(dir, name string, trajectories []particle.Trajectory) error {
	path := filepath.Join(dir, name+".obj")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: creating %q: %w", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "# navier3d particle trajectories\n")

	vertexOffset := 1
	for _, traj := range trajectories {
		if len(traj.Positions) == 0 {
			continue
		}
		for _, p := range traj.Positions {
			fmt.Fprintf(bw, "v %g %g %g\n", float64(p.X), float64(p.Y), float64(p.Z))
		}
		fmt.Fprint(bw, "l")
		for i := range traj.Positions {
			fmt.Fprintf(bw, " %d", vertexOffset+i)
		}
		fmt.Fprint(bw, "\n")
		vertexOffset += len(traj.Positions)
	}
	return bw.Flush()
}
