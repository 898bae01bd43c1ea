package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ctessum/cdf"

	"github.com/ctessum/navier3d/internal/grid"
)

// NetCDFWriter writes one NetCDF file per timestep, grounded on a
// CTMData.Write-style pattern (vargrid.go): build a cdf.Header describing
// every variable's dimensions and attributes, Define it, cdf.Create the
// file, then stream each variable's data in.
type NetCDFWriter struct {
	dir    string
	prefix string
}

// NewNetCDFWriter creates a writer that names each snapshot
// "<dir>/<prefix>.<step>.nc".
func NewNetCDFWriter(dir, prefix string) *NetCDFWriter {
	return &NetCDFWriter{dir: dir, prefix: prefix}
}

func (w *NetCDFWriter) WriteTimestep(step int, t grid.Real, s *grid.State) error {
	path := filepath.Join(w.dir, fmt.Sprintf("%s.%06d.nc", w.prefix, step))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: creating %q: %w", path, err)
	}
	defer f.Close()

	c := sample(s)
	d := s.Dims

	h := cdf.NewHeader([]string{"x", "y", "z"}, []int{d.Imax, d.Jmax, d.Kmax})
	h.AddAttribute("", "comment", "navier3d simulation snapshot")
	h.AddAttribute("", "step", []int32{int32(step)})
	h.AddAttribute("", "time", []float64{float64(t)})

	vars := []string{"u", "v", "w", "p", "temperature"}
	for _, name := range vars {
		h.AddVariable(name, []string{"x", "y", "z"}, []float32{0})
	}
	h.Define()

	nf, err := cdf.Create(f, h)
	if err != nil {
		return fmt.Errorf("output: writing netcdf header to %q: %w", path, err)
	}

	data := map[string][]float64{"u": c.u, "v": c.v, "w": c.w, "p": c.p, "temperature": c.t}
	for _, name := range vars {
		if err := writeNCFVar(nf, name, data[name]); err != nil {
			return fmt.Errorf("output: writing variable %q to %q: %w", name, path, err)
		}
	}
	return cdf.UpdateNumRecs(f)
}

func (w *NetCDFWriter) Close() error { return nil }

// writeNCFVar streams vals into variable name, converting to float32 for
// the gridded output fields.
func writeNCFVar(f *cdf.File, name string, vals []float64) error {
	data32 := make([]float32, len(vals))
	for i, v := range vals {
		data32[i] = float32(v)
	}
	end := f.Header.Lengths(name)
	start := make([]int, len(end))
	wtr := f.Writer(name, start, end)
	_, err := wtr.Write(data32)
	return err
}
