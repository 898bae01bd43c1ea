// Package pressure solves the discrete pressure Poisson equation with
// red-black SOR (this file) or, for the device backend, damped Jacobi
// (jacobi.go).
package pressure

import "github.com/ctessum/navier3d/internal/grid"

// Params are the SOR solver's scalar knobs.
type Params struct {
	Omega   grid.Real
	Eps     grid.Real
	IterMax int
}

// SOR runs up to p.IterMax red-black sweeps, returning the number of
// sweeps executed and the final residual. It stops early once the
// residual drops below p.Eps; if it reaches IterMax first, it returns the
// best-effort field without error — the caller (internal/driver) is
// responsible for logging a convergence shortfall.
func SOR(s *grid.State, p Params) (iters int, residual grid.Real) {
	for iters = 0; iters < p.IterMax; iters++ {
		CopyToObstacles(s)
		sweep(s, p.Omega, 0)
		CopyToObstacles(s)
		sweep(s, p.Omega, 1)

		residual = Residual(s)
		if residual < p.Eps {
			iters++
			return iters, residual
		}
	}
	return iters, residual
}

// sweep updates every fluid cell whose (i+j+k) parity equals color, which
// is the data-parallel red-black partition: each pass only reads the
// complementary color, so at fixed color every iteration's read set and
// write set are disjoint.
func sweep(s *grid.State, omega grid.Real, color int) {
	d := s.Dims
	SweepBounds(s, omega, color, 1, d.Imax, 1, d.Jmax, 1, d.Kmax)
}

// SweepBounds is sweep restricted to a caller-owned sub-box: the
// distributed backend runs one color sweep per rank slab between halo
// exchanges, since a red cell at a slab's edge depends on its black
// neighbor in the adjoining rank's slab.
func SweepBounds(s *grid.State, omega grid.Real, color, il, iu, jl, ju, kl, ku int) {
	d := s.Dims
	P, RS, Flag := s.P, s.RS, s.Flag
	dx2, dy2, dz2 := d.Dx*d.Dx, d.Dy*d.Dy, d.Dz*d.Dz

	for i := il; i <= iu; i++ {
		for j := jl; j <= ju; j++ {
			for k := kl; k <= ku; k++ {
				if (i+j+k)%2 != color {
					continue
				}
				if !Flag.At(i, j, k).IsFluid() {
					continue
				}
				old := P.At(i, j, k)
				var sum, denom grid.Real
				if Flag.At(i+1, j, k).IsFluid() {
					sum += P.At(i+1, j, k) / dx2
					denom += 1 / dx2
				}
				if Flag.At(i-1, j, k).IsFluid() {
					sum += P.At(i-1, j, k) / dx2
					denom += 1 / dx2
				}
				if Flag.At(i, j+1, k).IsFluid() {
					sum += P.At(i, j+1, k) / dy2
					denom += 1 / dy2
				}
				if Flag.At(i, j-1, k).IsFluid() {
					sum += P.At(i, j-1, k) / dy2
					denom += 1 / dy2
				}
				if Flag.At(i, j, k+1).IsFluid() {
					sum += P.At(i, j, k+1) / dz2
					denom += 1 / dz2
				}
				if Flag.At(i, j, k-1).IsFluid() {
					sum += P.At(i, j, k-1) / dz2
					denom += 1 / dz2
				}
				if denom == 0 {
					continue
				}
				P.Set(i, j, k, (1-omega)*old+(omega/denom)*(sum-RS.At(i, j, k)))
			}
		}
	}
}

// CopyToObstacles sets every non-fluid cell's pressure to the average of
// its fluid neighbors' pressure, so the SOR stencil reads a consistent
// Neumann value at obstacle and ghost cells on every sweep. Isolated
// non-fluid cells (no fluid neighbor) are left unchanged.
func CopyToObstacles(s *grid.State) {
	d := s.Dims
	CopyToObstaclesBounds(s, 0, d.Imax+1, 0, d.Jmax+1, 0, d.Kmax+1)
}

// CopyToObstaclesBounds is CopyToObstacles restricted to a caller-owned
// sub-box, including its ghost rim.
func CopyToObstaclesBounds(s *grid.State, il, iu, jl, ju, kl, ku int) {
	P, Flag := s.P, s.Flag
	for i := il; i <= iu; i++ {
		for j := jl; j <= ju; j++ {
			for k := kl; k <= ku; k++ {
				f := Flag.At(i, j, k)
				if f.IsFluid() {
					continue
				}
				var sum grid.Real
				var n int
				if f.B_R() {
					sum += P.At(i+1, j, k)
					n++
				}
				if f.B_L() {
					sum += P.At(i-1, j, k)
					n++
				}
				if f.B_U() {
					sum += P.At(i, j+1, k)
					n++
				}
				if f.B_D() {
					sum += P.At(i, j-1, k)
					n++
				}
				if f.B_F() {
					sum += P.At(i, j, k+1)
					n++
				}
				if f.B_B() {
					sum += P.At(i, j, k-1)
					n++
				}
				if n > 0 {
					P.Set(i, j, k, sum/grid.Real(n))
				}
			}
		}
	}
}
