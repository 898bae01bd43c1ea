package output

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ctessum/navier3d/internal/grid"
)

// VTKWriter writes one legacy VTK STRUCTURED_POINTS file per timestep,
// the format the "vtk"/"vtk-ascii"/"vtk-binary" output options select.
// No VTK dependency exists anywhere in the retrieved example pack, so
// the writer is hand-rolled against the public legacy format
// (www.vtk.org/VTK/img/file-formats.pdf) rather than adapted from a
// library — see DESIGN.md.
type VTKWriter struct {
	dir    string
	prefix string
	binary bool
}

// NewVTKWriter creates a writer that names each snapshot
// "<dir>/<prefix>.<step>.vtk". binary selects VTK's big-endian BINARY data
// block over its ASCII one; both share the same header.
func NewVTKWriter(dir, prefix string, binary bool) *VTKWriter {
	return &VTKWriter{dir: dir, prefix: prefix, binary: binary}
}

func (w *VTKWriter) WriteTimestep(step int, t grid.Real, s *grid.State) error {
	path := filepath.Join(w.dir, fmt.Sprintf("%s.%06d.vtk", w.prefix, step))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: creating %q: %w", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	c := sample(s)
	d := s.Dims

	fmt.Fprintf(bw, "# vtk DataFile Version 3.0\n")
	fmt.Fprintf(bw, "navier3d snapshot step=%d t=%g\n", step, float64(t))
	if w.binary {
		fmt.Fprintf(bw, "BINARY\n")
	} else {
		fmt.Fprintf(bw, "ASCII\n")
	}
	fmt.Fprintf(bw, "DATASET STRUCTURED_POINTS\n")
	fmt.Fprintf(bw, "DIMENSIONS %d %d %d\n", d.Kmax, d.Jmax, d.Imax)
	fmt.Fprintf(bw, "ORIGIN %g %g %g\n", float64(d.XOrigin), float64(d.YOrigin), float64(d.ZOrigin))
	fmt.Fprintf(bw, "SPACING %g %g %g\n", float64(d.Dz), float64(d.Dy), float64(d.Dx))
	fmt.Fprintf(bw, "POINT_DATA %d\n", d.Imax*d.Jmax*d.Kmax)

	if w.binary {
		writeVectorFieldBinary(bw, "velocity", c.u, c.v, c.w)
		writeScalarFieldBinary(bw, "pressure", c.p)
		writeScalarFieldBinary(bw, "temperature", c.t)
	} else {
		writeVectorFieldASCII(bw, "velocity", c.u, c.v, c.w)
		writeScalarFieldASCII(bw, "pressure", c.p)
		writeScalarFieldASCII(bw, "temperature", c.t)
	}
	return bw.Flush()
}

func (w *VTKWriter) Close() error { return nil }

func writeScalarFieldASCII(bw *bufio.Writer, name string, vals []float64) {
	fmt.Fprintf(bw, "SCALARS %s float 1\n", name)
	fmt.Fprintf(bw, "LOOKUP_TABLE default\n")
	for i, v := range vals {
		if i > 0 {
			bw.WriteByte(' ')
		}
		fmt.Fprintf(bw, "%g", v)
	}
	bw.WriteByte('\n')
}

func writeVectorFieldASCII(bw *bufio.Writer, name string, u, v, w []float64) {
	fmt.Fprintf(bw, "VECTORS %s float\n", name)
	for i := range u {
		fmt.Fprintf(bw, "%g %g %g\n", u[i], v[i], w[i])
	}
}

func writeScalarFieldBinary(bw *bufio.Writer, name string, vals []float64) {
	fmt.Fprintf(bw, "SCALARS %s float 1\n", name)
	fmt.Fprintf(bw, "LOOKUP_TABLE default\n")
	for _, v := range vals {
		binary.Write(bw, binary.BigEndian, float32(v))
	}
	bw.WriteByte('\n')
}

func writeVectorFieldBinary(bw *bufio.Writer, name string, u, v, w []float64) {
	fmt.Fprintf(bw, "VECTORS %s float\n", name)
	for i := range u {
		binary.Write(bw, binary.BigEndian, float32(u[i]))
		binary.Write(bw, binary.BigEndian, float32(v[i]))
		binary.Write(bw, binary.BigEndian, float32(w[i]))
	}
	bw.WriteByte('\n')
}
