// Package particle implements staggered-grid trilinear interpolation and
// curl reconstruction, plus the streamline/pathline/streakline
// integrators built on top of them (tracer.go). Grounded directly on
// TrajectoryAttributes.cpp's trilinearInterpolationU/V/W and getCurlAt.
package particle

import (
	"math"

	"github.com/ctessum/navier3d/internal/grid"
)

// Vec3 is a position or vector in world space.
type Vec3 struct {
	X, Y, Z grid.Real
}

func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Scale(s grid.Real) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

// Grid bundles the geometry a world-space point is interpolated against.
type Grid struct {
	Origin, Size Vec3
	Imax, Jmax, Kmax int
	Dx, Dy, Dz       grid.Real
}

// worldToStaggered is worldPositionToStaggeredGrid in
// TrajectoryAttributes.cpp: g = (p - origin)/size * (imax,jmax,kmax) +
// (1,1,1).
func (g Grid) worldToStaggered(p Vec3) Vec3 {
	return Vec3{
		X: (p.X-g.Origin.X)/g.Size.X*grid.Real(g.Imax) + 1,
		Y: (p.Y-g.Origin.Y)/g.Size.Y*grid.Real(g.Jmax) + 1,
		Z: (p.Z-g.Origin.Z)/g.Size.Z*grid.Real(g.Kmax) + 1,
	}
}

func floorFrac(v grid.Real) (idx int, frac grid.Real) {
	f := float64(v)
	i := int(f)
	if f < 0 && float64(i) != f {
		i--
	}
	return i, v - grid.Real(i)
}

// sample8 blends the eight corners of the cell containing pos around the
// given per-field offset: floor the offset position to an integer index,
// keep the fractional weights, and read out-of-range corners as 0.
func sample8(g Grid, pos, offset Vec3, at func(i, j, k int) grid.Real) grid.Real {
	sp := g.worldToStaggered(pos).Sub(offset)
	i0, fx := floorFrac(sp.X)
	j0, fy := floorFrac(sp.Y)
	k0, fz := floorFrac(sp.Z)
	gx, gy, gz := 1-fx, 1-fy, 1-fz

	return gx*gy*gz*at(i0, j0, k0) +
		fx*gy*gz*at(i0+1, j0, k0) +
		gx*fy*gz*at(i0, j0+1, k0) +
		fx*fy*gz*at(i0+1, j0+1, k0) +
		gx*gy*fz*at(i0, j0, k0+1) +
		fx*gy*fz*at(i0+1, j0, k0+1) +
		gx*fy*fz*at(i0, j0+1, k0+1) +
		fx*fy*fz*at(i0+1, j0+1, k0+1)
}

var (
	offsetU = Vec3{1, 0.5, 0.5}
	offsetV = Vec3{0.5, 1, 0.5}
	offsetW = Vec3{0.5, 0.5, 1}
)

// InterpolateU trilinearly interpolates U at a world-space position.
func InterpolateU(g Grid, s *grid.State, pos Vec3) grid.Real {
	return sample8(g, pos, offsetU, s.U.AtOrZero)
}

// InterpolateV trilinearly interpolates V at a world-space position.
func InterpolateV(g Grid, s *grid.State, pos Vec3) grid.Real {
	return sample8(g, pos, offsetV, s.V.AtOrZero)
}

// InterpolateW trilinearly interpolates W at a world-space position.
func InterpolateW(g Grid, s *grid.State, pos Vec3) grid.Real {
	return sample8(g, pos, offsetW, s.W.AtOrZero)
}

// Velocity returns the interpolated velocity vector at pos.
func Velocity(g Grid, s *grid.State, pos Vec3) Vec3 {
	return Vec3{
		X: InterpolateU(g, s, pos),
		Y: InterpolateV(g, s, pos),
		Z: InterpolateW(g, s, pos),
	}
}

// dudy/dudz/dvdx/dvdz/dwdx/dwdy are the staggered finite differences
// getdUdyAtIdx etc. take in TrajectoryAttributes.cpp, each anchored at its
// own offset before being trilinearly blended the same way as the
// velocity components themselves.

func dudyAt(s *grid.State, dy grid.Real) func(i, j, k int) grid.Real {
	return func(i, j, k int) grid.Real {
		return (s.U.AtOrZero(i, j+1, k) - s.U.AtOrZero(i, j, k)) / dy
	}
}
func dudzAt(s *grid.State, dz grid.Real) func(i, j, k int) grid.Real {
	return func(i, j, k int) grid.Real {
		return (s.U.AtOrZero(i, j, k+1) - s.U.AtOrZero(i, j, k)) / dz
	}
}
func dvdxAt(s *grid.State, dx grid.Real) func(i, j, k int) grid.Real {
	return func(i, j, k int) grid.Real {
		return (s.V.AtOrZero(i+1, j, k) - s.V.AtOrZero(i, j, k)) / dx
	}
}
func dvdzAt(s *grid.State, dz grid.Real) func(i, j, k int) grid.Real {
	return func(i, j, k int) grid.Real {
		return (s.V.AtOrZero(i, j, k+1) - s.V.AtOrZero(i, j, k)) / dz
	}
}
func dwdxAt(s *grid.State, dx grid.Real) func(i, j, k int) grid.Real {
	return func(i, j, k int) grid.Real {
		return (s.W.AtOrZero(i+1, j, k) - s.W.AtOrZero(i, j, k)) / dx
	}
}
func dwdyAt(s *grid.State, dy grid.Real) func(i, j, k int) grid.Real {
	return func(i, j, k int) grid.Real {
		return (s.W.AtOrZero(i, j+1, k) - s.W.AtOrZero(i, j, k)) / dy
	}
}

// Curl reconstructs the vorticity vector at pos from the six staggered
// velocity derivatives:
// (∂W/∂y − ∂V/∂z, ∂U/∂z − ∂W/∂x, ∂V/∂x − ∂U/∂y).
func Curl(g Grid, s *grid.State, pos Vec3) Vec3 {
	dUdy := sample8(g, pos, Vec3{1, 1, 0.5}, dudyAt(s, g.Dy))
	dUdz := sample8(g, pos, Vec3{1, 0.5, 1}, dudzAt(s, g.Dz))
	dVdx := sample8(g, pos, Vec3{1, 1, 0.5}, dvdxAt(s, g.Dx))
	dVdz := sample8(g, pos, Vec3{0.5, 1, 1}, dvdzAt(s, g.Dz))
	dWdx := sample8(g, pos, Vec3{1, 0.5, 1}, dwdxAt(s, g.Dx))
	dWdy := sample8(g, pos, Vec3{0.5, 1, 1}, dwdyAt(s, g.Dy))

	return Vec3{
		X: dWdy - dVdz,
		Y: dUdz - dWdx,
		Z: dVdx - dUdy,
	}
}

// Length returns the Euclidean norm of v.
func (a Vec3) Length() grid.Real {
	return grid.Real(math.Sqrt(float64(a.X*a.X + a.Y*a.Y + a.Z*a.Z)))
}
