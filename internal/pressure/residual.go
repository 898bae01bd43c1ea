package pressure

import (
	"math"

	"github.com/ctessum/navier3d/internal/grid"
)

// Residual is the L2 norm of the discrete Laplacian of P minus RS, summed
// over fluid cells and normalized by the fluid-cell count — the classic
// NaSt2D/3D convergence measure for this stencil.
func Residual(s *grid.State) grid.Real {
	d := s.Dims
	P, RS, Flag := s.P, s.RS, s.Flag
	dx2, dy2, dz2 := d.Dx*d.Dx, d.Dy*d.Dy, d.Dz*d.Dz

	var sumSq grid.Real
	var n int
	for i := 1; i <= d.Imax; i++ {
		for j := 1; j <= d.Jmax; j++ {
			for k := 1; k <= d.Kmax; k++ {
				if !Flag.At(i, j, k).IsFluid() {
					continue
				}
				n++
				lap := (P.At(i+1, j, k) - 2*P.At(i, j, k) + P.At(i-1, j, k)) / dx2
				lap += (P.At(i, j+1, k) - 2*P.At(i, j, k) + P.At(i, j-1, k)) / dy2
				lap += (P.At(i, j, k+1) - 2*P.At(i, j, k) + P.At(i, j, k-1)) / dz2
				diff := lap - RS.At(i, j, k)
				sumSq += diff * diff
			}
		}
	}
	if n == 0 {
		return 0
	}
	return grid.Real(math.Sqrt(float64(sumSq) / float64(n)))
}
