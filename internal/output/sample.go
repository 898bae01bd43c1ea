// Package output writes periodic simulation snapshots, implementing the
// internal/driver.Writer contract for the vtk, vtk-binary, vtk-ascii, and
// netcdf output formats, plus a govaluate-based derived-variable
// evaluator in the same shape as an Outputter's
// NewOutputter/checkForDerivatives pairing.
package output

import (
	"math"

	"github.com/ctessum/navier3d/internal/grid"
)

// cellCentered collapses a state's staggered fields onto the imax×jmax×kmax
// cell-centered grid every writer serializes: velocities are averaged onto
// the cell center from their two bounding faces, pressure and temperature
// are already cell-centered and copied as-is.
type cellCentered struct {
	imax, jmax, kmax int
	u, v, w, p, t    []float64
}

// sample builds the cell-centered snapshot arrays, row-major with k
// fastest-varying, matching grid.Field's own layout.
func sample(s *grid.State) *cellCentered {
	d := s.Dims
	n := d.Imax * d.Jmax * d.Kmax
	c := &cellCentered{imax: d.Imax, jmax: d.Jmax, kmax: d.Kmax,
		u: make([]float64, n), v: make([]float64, n), w: make([]float64, n),
		p: make([]float64, n), t: make([]float64, n)}
	idx := 0
	for i := 1; i <= d.Imax; i++ {
		for j := 1; j <= d.Jmax; j++ {
			for k := 1; k <= d.Kmax; k++ {
				c.u[idx] = float64(s.U.At(i-1, j, k)+s.U.At(i, j, k)) / 2
				c.v[idx] = float64(s.V.At(i, j-1, k)+s.V.At(i, j, k)) / 2
				c.w[idx] = float64(s.W.At(i, j, k-1)+s.W.At(i, j, k)) / 2
				c.p[idx] = float64(s.P.At(i, j, k))
				c.t[idx] = float64(s.T().At(i, j, k))
				idx++
			}
		}
	}
	return c
}

func (c *cellCentered) velocityMagnitude() []float64 {
	out := make([]float64, len(c.u))
	for i := range out {
		out[i] = math.Sqrt(c.u[i]*c.u[i] + c.v[i]*c.v[i] + c.w[i]*c.w[i])
	}
	return out
}
