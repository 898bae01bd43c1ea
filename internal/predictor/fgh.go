// Package predictor computes the tentative momenta F, G, H: an explicit
// time extrapolation of the momentum equation combining
// an α-blended donor-cell/central convection term, a central-difference
// diffusion term scaled by 1/Re, a constant body force, and (when
// temperature is enabled) a Boussinesq buoyancy term.
package predictor

import "github.com/ctessum/navier3d/internal/grid"

// Params are the scalar coefficients the predictor needs beyond the field
// state itself.
type Params struct {
	Re, Pr     grid.Real
	Alpha      grid.Real // donor-cell/central blend weight
	Beta       grid.Real // Boussinesq buoyancy coefficient
	Dt         grid.Real
	GX, GY, GZ grid.Real
	UseTemp    bool
}

// ComputeFGH fills F, G, H over every face of the interior, including the
// faces on the outer walls. A face between two fluid cells gets the full
// momentum extrapolation; a face touching a non-fluid cell (every outer
// wall face among them) is pass-through (set equal to the adjacent
// velocity component), so the projection step leaves it unchanged.
func ComputeFGH(s *grid.State, p Params) {
	ComputeF(s, p)
	ComputeG(s, p)
	ComputeH(s, p)
}

// ComputeF, ComputeG, and ComputeH are the three per-component passes
// ComputeFGH runs in sequence. They read the same state and write
// disjoint fields (F, G, H respectively), so a backend that wants to run
// them concurrently — the cpu backend's worker pool, grounded on a
// Calculations-pipeline style — may call them from separate goroutines.
func ComputeF(s *grid.State, p Params) { computeF(s, p) }
func ComputeG(s *grid.State, p Params) { computeG(s, p) }
func ComputeH(s *grid.State, p Params) { computeH(s, p) }

func computeF(s *grid.State, p Params) {
	d := s.Dims
	U, V, W, T, Flag, F := s.U, s.V, s.W, s.T(), s.Flag, s.F
	for i := 0; i <= d.Imax; i++ {
		for j := 1; j <= d.Jmax; j++ {
			for k := 1; k <= d.Kmax; k++ {
				left, right := Flag.At(i, j, k), Flag.At(i+1, j, k)
				if i >= 1 && i < d.Imax && left.IsFluid() && right.IsFluid() {
					F.Set(i, j, k, fghValue(U.At(i, j, k), p.Dt, p.Re,
						diffusion3(U, i, j, k, d.Dx, d.Dy, d.Dz),
						duudx(U, i, j, k, d.Dx, p.Alpha)+duvdy(U, V, i, j, k, d.Dy, p.Alpha)+duwdz(U, W, i, j, k, d.Dz, p.Alpha),
						p.GX, buoyancy(p, T.At(i, j, k), T.At(i+1, j, k), p.GX)))
				} else {
					F.Set(i, j, k, U.At(i, j, k))
				}
			}
		}
	}
}

func computeG(s *grid.State, p Params) {
	d := s.Dims
	U, V, W, T, Flag, G := s.U, s.V, s.W, s.T(), s.Flag, s.G
	for i := 1; i <= d.Imax; i++ {
		for j := 0; j <= d.Jmax; j++ {
			for k := 1; k <= d.Kmax; k++ {
				down, up := Flag.At(i, j, k), Flag.At(i, j+1, k)
				if j >= 1 && j < d.Jmax && down.IsFluid() && up.IsFluid() {
					G.Set(i, j, k, fghValue(V.At(i, j, k), p.Dt, p.Re,
						diffusion3(V, i, j, k, d.Dx, d.Dy, d.Dz),
						dvudx(V, U, i, j, k, d.Dx, p.Alpha)+dvvdy(V, i, j, k, d.Dy, p.Alpha)+dvwdz(V, W, i, j, k, d.Dz, p.Alpha),
						p.GY, buoyancy(p, T.At(i, j, k), T.At(i, j+1, k), p.GY)))
				} else {
					G.Set(i, j, k, V.At(i, j, k))
				}
			}
		}
	}
}

func computeH(s *grid.State, p Params) {
	d := s.Dims
	U, V, W, T, Flag, H := s.U, s.V, s.W, s.T(), s.Flag, s.H
	for i := 1; i <= d.Imax; i++ {
		for j := 1; j <= d.Jmax; j++ {
			for k := 0; k <= d.Kmax; k++ {
				back, front := Flag.At(i, j, k), Flag.At(i, j, k+1)
				if k >= 1 && k < d.Kmax && back.IsFluid() && front.IsFluid() {
					H.Set(i, j, k, fghValue(W.At(i, j, k), p.Dt, p.Re,
						diffusion3(W, i, j, k, d.Dx, d.Dy, d.Dz),
						dwudx(W, U, i, j, k, d.Dx, p.Alpha)+dwvdy(W, V, i, j, k, d.Dy, p.Alpha)+dwwdz(W, i, j, k, d.Dz, p.Alpha),
						p.GZ, buoyancy(p, T.At(i, j, k), T.At(i, j, k+1), p.GZ)))
				} else {
					H.Set(i, j, k, W.At(i, j, k))
				}
			}
		}
	}
}

func fghValue(v0, dt, re, diff, conv, g, buoy grid.Real) grid.Real {
	return v0 + dt*(diff/re-conv+g-buoy)
}

// buoyancy is the Boussinesq term: β times the average temperature of
// the two cells straddling the face, times the component
// of gravity the face is normal to. It is zero when temperature is
// disabled.
func buoyancy(p Params, tLow, tHigh, g grid.Real) grid.Real {
	if !p.UseTemp {
		return 0
	}
	return p.Beta * 0.5 * (tLow + tHigh) * g
}

func diffusion3(f *grid.Field, i, j, k int, dx, dy, dz grid.Real) grid.Real {
	c := f.At(i, j, k)
	d2x := (f.At(i+1, j, k) - 2*c + f.At(i-1, j, k)) / (dx * dx)
	d2y := (f.At(i, j+1, k) - 2*c + f.At(i, j-1, k)) / (dy * dy)
	d2z := (f.At(i, j, k+1) - 2*c + f.At(i, j, k-1)) / (dz * dz)
	return d2x + d2y + d2z
}

// donorCell blends the central (second-order symmetric) and donor-cell
// (first-order upwind) discretizations of a flux term by the blend
// weight α.
func donorCell(central, donor, alpha grid.Real) grid.Real {
	return (1-alpha)*central + alpha*donor
}

// The six d(uv)/dx-style terms below are the staggered-grid donor-cell
// convection stencils of the classic finite-volume Navier-Stokes
// discretization; each pairs a central average-of-products term with a
// donor-cell upwind correction weighted by |velocity|.

func duudx(U *grid.Field, i, j, k int, dx, alpha grid.Real) grid.Real {
	uE := (U.At(i, j, k) + U.At(i+1, j, k)) / 2
	uW := (U.At(i-1, j, k) + U.At(i, j, k)) / 2
	central := (uE*uE - uW*uW) / dx
	donor := (absR(uE)*(U.At(i, j, k)-U.At(i+1, j, k))/2 - absR(uW)*(U.At(i-1, j, k)-U.At(i, j, k))/2) / dx
	return donorCell(central, donor, alpha)
}

func duvdy(U, V *grid.Field, i, j, k int, dy, alpha grid.Real) grid.Real {
	vN := (V.At(i, j, k) + V.At(i+1, j, k)) / 2
	vS := (V.At(i, j-1, k) + V.At(i+1, j-1, k)) / 2
	uN := (U.At(i, j, k) + U.At(i, j+1, k)) / 2
	uS := (U.At(i, j-1, k) + U.At(i, j, k)) / 2
	central := (vN*uN - vS*uS) / dy
	donor := (absR(vN)*(U.At(i, j, k)-U.At(i, j+1, k))/2 - absR(vS)*(U.At(i, j-1, k)-U.At(i, j, k))/2) / dy
	return donorCell(central, donor, alpha)
}

func duwdz(U, W *grid.Field, i, j, k int, dz, alpha grid.Real) grid.Real {
	wF := (W.At(i, j, k) + W.At(i+1, j, k)) / 2
	wB := (W.At(i, j, k-1) + W.At(i+1, j, k-1)) / 2
	uF := (U.At(i, j, k) + U.At(i, j, k+1)) / 2
	uB := (U.At(i, j, k-1) + U.At(i, j, k)) / 2
	central := (wF*uF - wB*uB) / dz
	donor := (absR(wF)*(U.At(i, j, k)-U.At(i, j, k+1))/2 - absR(wB)*(U.At(i, j, k-1)-U.At(i, j, k))/2) / dz
	return donorCell(central, donor, alpha)
}

func dvvdy(V *grid.Field, i, j, k int, dy, alpha grid.Real) grid.Real {
	vN := (V.At(i, j, k) + V.At(i, j+1, k)) / 2
	vS := (V.At(i, j-1, k) + V.At(i, j, k)) / 2
	central := (vN*vN - vS*vS) / dy
	donor := (absR(vN)*(V.At(i, j, k)-V.At(i, j+1, k))/2 - absR(vS)*(V.At(i, j-1, k)-V.At(i, j, k))/2) / dy
	return donorCell(central, donor, alpha)
}

func dvudx(V, U *grid.Field, i, j, k int, dx, alpha grid.Real) grid.Real {
	uE := (U.At(i, j, k) + U.At(i, j+1, k)) / 2
	uW := (U.At(i-1, j, k) + U.At(i-1, j+1, k)) / 2
	vE := (V.At(i, j, k) + V.At(i+1, j, k)) / 2
	vW := (V.At(i-1, j, k) + V.At(i, j, k)) / 2
	central := (uE*vE - uW*vW) / dx
	donor := (absR(uE)*(V.At(i, j, k)-V.At(i+1, j, k))/2 - absR(uW)*(V.At(i-1, j, k)-V.At(i, j, k))/2) / dx
	return donorCell(central, donor, alpha)
}

func dvwdz(V, W *grid.Field, i, j, k int, dz, alpha grid.Real) grid.Real {
	wF := (W.At(i, j, k) + W.At(i, j+1, k)) / 2
	wB := (W.At(i, j, k-1) + W.At(i, j+1, k-1)) / 2
	vF := (V.At(i, j, k) + V.At(i, j, k+1)) / 2
	vB := (V.At(i, j, k-1) + V.At(i, j, k)) / 2
	central := (wF*vF - wB*vB) / dz
	donor := (absR(wF)*(V.At(i, j, k)-V.At(i, j, k+1))/2 - absR(wB)*(V.At(i, j, k-1)-V.At(i, j, k))/2) / dz
	return donorCell(central, donor, alpha)
}

func dwwdz(W *grid.Field, i, j, k int, dz, alpha grid.Real) grid.Real {
	wF := (W.At(i, j, k) + W.At(i, j, k+1)) / 2
	wB := (W.At(i, j, k-1) + W.At(i, j, k)) / 2
	central := (wF*wF - wB*wB) / dz
	donor := (absR(wF)*(W.At(i, j, k)-W.At(i, j, k+1))/2 - absR(wB)*(W.At(i, j, k-1)-W.At(i, j, k))/2) / dz
	return donorCell(central, donor, alpha)
}

func dwudx(W, U *grid.Field, i, j, k int, dx, alpha grid.Real) grid.Real {
	uE := (U.At(i, j, k) + U.At(i, j, k+1)) / 2
	uW := (U.At(i-1, j, k) + U.At(i-1, j, k+1)) / 2
	wE := (W.At(i, j, k) + W.At(i+1, j, k)) / 2
	wW := (W.At(i-1, j, k) + W.At(i, j, k)) / 2
	central := (uE*wE - uW*wW) / dx
	donor := (absR(uE)*(W.At(i, j, k)-W.At(i+1, j, k))/2 - absR(uW)*(W.At(i-1, j, k)-W.At(i, j, k))/2) / dx
	return donorCell(central, donor, alpha)
}

func dwvdy(W, V *grid.Field, i, j, k int, dy, alpha grid.Real) grid.Real {
	vN := (V.At(i, j, k) + V.At(i, j, k+1)) / 2
	vS := (V.At(i, j-1, k) + V.At(i, j-1, k+1)) / 2
	wN := (W.At(i, j, k) + W.At(i, j+1, k)) / 2
	wS := (W.At(i, j-1, k) + W.At(i, j, k)) / 2
	central := (vN*wN - vS*wS) / dy
	donor := (absR(vN)*(W.At(i, j, k)-W.At(i, j+1, k))/2 - absR(vS)*(W.At(i, j-1, k)-W.At(i, j, k))/2) / dy
	return donorCell(central, donor, alpha)
}

func absR(v grid.Real) grid.Real {
	if v < 0 {
		return -v
	}
	return v
}
