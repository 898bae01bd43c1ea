// Package rhs computes the right-hand side of the pressure Poisson
// equation: the discrete divergence of the tentative momentum field
// (F, G, H), scaled by 1/Δt.
package rhs

import "github.com/ctessum/navier3d/internal/grid"

// Compute fills RS at every fluid cell in the whole domain.
func Compute(s *grid.State, dt grid.Real) {
	d := s.Dims
	ComputeBounds(s, dt, 1, d.Imax, 1, d.Jmax, 1, d.Kmax)
}

// ComputeBounds is Compute restricted to a caller-owned sub-box, the form
// the distributed backend calls once per owned slab.
func ComputeBounds(s *grid.State, dt grid.Real, il, iu, jl, ju, kl, ku int) {
	d := s.Dims
	F, G, H, RS, Flag := s.F, s.G, s.H, s.RS, s.Flag
	for i := il; i <= iu; i++ {
		for j := jl; j <= ju; j++ {
			for k := kl; k <= ku; k++ {
				if !Flag.At(i, j, k).IsFluid() {
					continue
				}
				div := (F.At(i, j, k)-F.At(i-1, j, k))/d.Dx +
					(G.At(i, j, k)-G.At(i, j-1, k))/d.Dy +
					(H.At(i, j, k)-H.At(i, j, k-1))/d.Dz
				RS.Set(i, j, k, div/dt)
			}
		}
	}
}
