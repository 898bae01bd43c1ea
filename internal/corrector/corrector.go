// Package corrector projects the tentative momenta onto a divergence-free
// velocity field using the converged pressure.
package corrector

import "github.com/ctessum/navier3d/internal/grid"

// Project updates U, V, W at every interior face whose both adjacent
// cells are fluid. Faces touching a non-fluid cell are left untouched —
// the boundary engine owns those values.
func Project(s *grid.State, dt grid.Real) {
	d := s.Dims
	ProjectBounds(s, dt, 1, d.Imax, 1, d.Jmax, 1, d.Kmax)
}

// ProjectBounds is Project restricted to a caller-owned sub-box, the form
// the distributed backend calls once per owned slab.
func ProjectBounds(s *grid.State, dt grid.Real, il, iu, jl, ju, kl, ku int) {
	d := s.Dims
	U, V, W, F, G, H, P, Flag := s.U, s.V, s.W, s.F, s.G, s.H, s.P, s.Flag

	iuU := iu
	if iuU > d.Imax-1 {
		iuU = d.Imax - 1
	}
	for i := il; i <= iuU; i++ {
		for j := jl; j <= ju; j++ {
			for k := kl; k <= ku; k++ {
				if Flag.At(i, j, k).IsFluid() && Flag.At(i+1, j, k).IsFluid() {
					U.Set(i, j, k, F.At(i, j, k)-dt*(P.At(i+1, j, k)-P.At(i, j, k))/d.Dx)
				}
			}
		}
	}
	juV := ju
	if juV > d.Jmax-1 {
		juV = d.Jmax - 1
	}
	for i := il; i <= iu; i++ {
		for j := jl; j <= juV; j++ {
			for k := kl; k <= ku; k++ {
				if Flag.At(i, j, k).IsFluid() && Flag.At(i, j+1, k).IsFluid() {
					V.Set(i, j, k, G.At(i, j, k)-dt*(P.At(i, j+1, k)-P.At(i, j, k))/d.Dy)
				}
			}
		}
	}
	kuW := ku
	if kuW > d.Kmax-1 {
		kuW = d.Kmax - 1
	}
	for i := il; i <= iu; i++ {
		for j := jl; j <= ju; j++ {
			for k := kl; k <= kuW; k++ {
				if Flag.At(i, j, k).IsFluid() && Flag.At(i, j, k+1).IsFluid() {
					W.Set(i, j, k, H.At(i, j, k)-dt*(P.At(i, j, k+1)-P.At(i, j, k))/d.Dz)
				}
			}
		}
	}
}
