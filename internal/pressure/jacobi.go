package pressure

import "github.com/ctessum/navier3d/internal/grid"

// Jacobi runs up to p.IterMax damped Jacobi sweeps on the P/PTemp
// ping-pong buffer, the device backend's substitute for SOR: every cell
// reads only the previous iterate, so the whole sweep is embarrassingly
// data-parallel with no color partitioning needed. The device backend is
// expected to call this with an already-doubled p.Eps, matching the
// reduced-precision numerics toggle's contract.
func Jacobi(s *grid.State, p Params) (iters int, residual grid.Real) {
	d := s.Dims
	dx2, dy2, dz2 := d.Dx*d.Dx, d.Dy*d.Dy, d.Dz*d.Dz

	cur, next := s.P, s.PTemp
	for iters = 0; iters < p.IterMax; iters++ {
		CopyToObstaclesField(s, cur)
		jacobiSweep(s, cur, next, p.Omega, dx2, dy2, dz2)
		cur, next = next, cur

		residual = residualOf(s, cur)
		if residual < p.Eps {
			iters++
			break
		}
	}
	if cur != s.P {
		s.P.CopyFrom(cur)
	}
	return iters, residual
}

func jacobiSweep(s *grid.State, cur, next *grid.Field, omega, dx2, dy2, dz2 grid.Real) {
	d := s.Dims
	RS, Flag := s.RS, s.Flag
	for i := 1; i <= d.Imax; i++ {
		for j := 1; j <= d.Jmax; j++ {
			for k := 1; k <= d.Kmax; k++ {
				if !Flag.At(i, j, k).IsFluid() {
					next.Set(i, j, k, cur.At(i, j, k))
					continue
				}
				old := cur.At(i, j, k)
				var sum, denom grid.Real
				if Flag.At(i+1, j, k).IsFluid() {
					sum += cur.At(i+1, j, k) / dx2
					denom += 1 / dx2
				}
				if Flag.At(i-1, j, k).IsFluid() {
					sum += cur.At(i-1, j, k) / dx2
					denom += 1 / dx2
				}
				if Flag.At(i, j+1, k).IsFluid() {
					sum += cur.At(i, j+1, k) / dy2
					denom += 1 / dy2
				}
				if Flag.At(i, j-1, k).IsFluid() {
					sum += cur.At(i, j-1, k) / dy2
					denom += 1 / dy2
				}
				if Flag.At(i, j, k+1).IsFluid() {
					sum += cur.At(i, j, k+1) / dz2
					denom += 1 / dz2
				}
				if Flag.At(i, j, k-1).IsFluid() {
					sum += cur.At(i, j, k-1) / dz2
					denom += 1 / dz2
				}
				if denom == 0 {
					next.Set(i, j, k, old)
					continue
				}
				next.Set(i, j, k, (1-omega)*old+(omega/denom)*(sum-RS.At(i, j, k)))
			}
		}
	}
}

// CopyToObstaclesField is CopyToObstacles generalized to an explicit
// buffer, so Jacobi can condition either side of the P/PTemp ping-pong.
func CopyToObstaclesField(s *grid.State, field *grid.Field) {
	d := s.Dims
	Flag := s.Flag
	for i := 0; i <= d.Imax+1; i++ {
		for j := 0; j <= d.Jmax+1; j++ {
			for k := 0; k <= d.Kmax+1; k++ {
				f := Flag.At(i, j, k)
				if f.IsFluid() {
					continue
				}
				var sum grid.Real
				var n int
				if f.B_R() {
					sum += field.At(i+1, j, k)
					n++
				}
				if f.B_L() {
					sum += field.At(i-1, j, k)
					n++
				}
				if f.B_U() {
					sum += field.At(i, j+1, k)
					n++
				}
				if f.B_D() {
					sum += field.At(i, j-1, k)
					n++
				}
				if f.B_F() {
					sum += field.At(i, j, k+1)
					n++
				}
				if f.B_B() {
					sum += field.At(i, j, k-1)
					n++
				}
				if n > 0 {
					field.Set(i, j, k, sum/grid.Real(n))
				}
			}
		}
	}
}

func residualOf(s *grid.State, field *grid.Field) grid.Real {
	saved := s.P
	s.P = field
	r := Residual(s)
	s.P = saved
	return r
}
