package boundary

import "github.com/ctessum/navier3d/internal/grid"

// ApplyObstacles reflects U, V, W across every interior obstacle cell's
// faces and re-averages T over its fluid neighbors, grounded on
// setInternalUBoundariesMpi/setInternalVBoundariesMpi/setInternalWBoundariesMpi/
// setInternalTBoundariesMpi in BoundaryValuesMpi.cpp. It must run after
// Apply/ApplyBounds, which only touch the six outer faces.
func ApplyObstacles(s *grid.State) {
	d := s.Dims
	ApplyObstaclesBounds(s, 1, d.Imax, 1, d.Jmax, 1, d.Kmax)
}

// ApplyObstaclesBounds is ApplyObstacles restricted to a caller-owned
// sub-box, the form the distributed backend calls once per owned slab.
func ApplyObstaclesBounds(s *grid.State, il, iu, jl, ju, kl, ku int) {
	obstacleU(s, il, iu, jl, ju, kl, ku)
	obstacleV(s, il, iu, jl, ju, kl, ku)
	obstacleW(s, il, iu, jl, ju, kl, ku)
	obstacleT(s, il, iu, jl, ju, kl, ku)
}

// obstacleU sets the U faces adjacent to every non-fluid cell in [il,iu-1]
// × [jl,ju] × [kl,ku]. A face directly bordering a fluid neighbor (B_R/B_L)
// is zeroed outright; a face only reachable around a perpendicular
// obstacle face (B_U/B_D/B_B/B_F) is anti-reflected off the tangential
// neighbor, but only if a direct zero hasn't already claimed that face —
// the R_check/L_check/R1_check/L1_check guards below are the same
// left/right "already set" bookkeeping the original keeps per cell.
func obstacleU(s *grid.State, il, iu, jl, ju, kl, ku int) {
	U, Flag := s.U, s.Flag
	for i := il; i <= iu-1; i++ {
		for j := jl; j <= ju; j++ {
			for k := kl; k <= ku; k++ {
				f := Flag.At(i, j, k)
				if f.IsFluid() {
					continue
				}
				rCheck, lCheck := false, false
				r1Check, l1Check := false, false

				if f.B_R() {
					U.Set(i, j, k, 0)
					rCheck = true
				}
				if f.B_L() {
					U.Set(i-1, j, k, 0)
					lCheck = true
				}
				if f.B_U() {
					if !lCheck {
						U.Set(i-1, j, k, -U.At(i-1, j+1, k))
						l1Check = true
					}
					if !rCheck {
						U.Set(i, j, k, -U.At(i, j+1, k))
						r1Check = true
					}
				}
				if f.B_D() {
					if !lCheck {
						U.Set(i-1, j, k, -U.At(i-1, j-1, k))
						l1Check = true
					}
					if !rCheck {
						U.Set(i, j, k, -U.At(i, j-1, k))
						r1Check = true
					}
				}
				if f.B_B() {
					if !lCheck && !l1Check {
						U.Set(i-1, j, k, -U.At(i-1, j, k-1))
					}
					if !rCheck && !r1Check {
						U.Set(i, j, k, -U.At(i, j, k-1))
					}
				}
				if f.B_F() {
					if !lCheck && !l1Check {
						U.Set(i-1, j, k, -U.At(i-1, j, k+1))
					}
					if !rCheck && !r1Check {
						U.Set(i, j, k, -U.At(i, j, k+1))
					}
				}
			}
		}
	}
}

// obstacleV is obstacleU's mirror on the V faces along the up/down axis.
//
// Design Note "obstacle D1/U1 guard fix": the original Mpi source sets
// D1_check/U1_check to 0 instead of 1 at this point (setInternalVBoundariesMpi
// in BoundaryValuesMpi.cpp), which silently disables the B_B/B_F
// double-guard it otherwise applies identically in obstacleU and obstacleW.
// Since the obstacle reflection rule for U/V/W is one rule applied
// uniformly across all three components, this port sets them to true,
// matching obstacleU/obstacleW and the stated invariant rather than
// reproducing the source's inconsistency.
func obstacleV(s *grid.State, il, iu, jl, ju, kl, ku int) {
	V, Flag := s.V, s.Flag
	for i := il; i <= iu; i++ {
		for j := jl; j <= ju-1; j++ {
			for k := kl; k <= ku; k++ {
				f := Flag.At(i, j, k)
				if f.IsFluid() {
					continue
				}
				uCheck, dCheck := false, false
				u1Check, d1Check := false, false

				if f.B_U() {
					V.Set(i, j, k, 0)
					uCheck = true
				}
				if f.B_D() {
					V.Set(i, j-1, k, 0)
					dCheck = true
				}
				if f.B_R() {
					if !dCheck {
						V.Set(i, j-1, k, -V.At(i+1, j-1, k))
						d1Check = true
					}
					if !uCheck {
						V.Set(i, j, k, -V.At(i+1, j, k))
						u1Check = true
					}
				}
				if f.B_L() {
					if !dCheck {
						V.Set(i, j-1, k, -V.At(i-1, j-1, k))
						d1Check = true
					}
					if !uCheck {
						V.Set(i, j, k, -V.At(i-1, j, k))
						u1Check = true
					}
				}
				if f.B_B() {
					if !dCheck && !d1Check {
						V.Set(i, j-1, k, -V.At(i, j-1, k-1))
					}
					if !uCheck && !u1Check {
						V.Set(i, j, k, -V.At(i, j, k-1))
					}
				}
				if f.B_F() {
					if !dCheck && !d1Check {
						V.Set(i, j-1, k, -V.At(i, j-1, k+1))
					}
					if !uCheck && !u1Check {
						V.Set(i, j, k, -V.At(i, j, k+1))
					}
				}
			}
		}
	}
}

// obstacleW is obstacleU's mirror on the W faces along the back/front axis.
func obstacleW(s *grid.State, il, iu, jl, ju, kl, ku int) {
	W, Flag := s.W, s.Flag
	for i := il; i <= iu; i++ {
		for j := jl; j <= ju; j++ {
			for k := kl; k <= ku-1; k++ {
				f := Flag.At(i, j, k)
				if f.IsFluid() {
					continue
				}
				fCheck, bCheck := false, false
				f1Check, b1Check := false, false

				if f.B_B() {
					W.Set(i, j, k-1, 0)
					bCheck = true
				}
				if f.B_F() {
					W.Set(i, j, k, 0)
					fCheck = true
				}
				if f.B_R() {
					if !bCheck {
						W.Set(i, j, k-1, -W.At(i+1, j, k-1))
						b1Check = true
					}
					if !fCheck {
						W.Set(i, j, k, -W.At(i+1, j, k))
						f1Check = true
					}
				}
				if f.B_L() {
					if !bCheck {
						W.Set(i, j, k-1, -W.At(i-1, j, k-1))
						b1Check = true
					}
					if !fCheck {
						W.Set(i, j, k, -W.At(i-1, j, k))
						f1Check = true
					}
				}
				if f.B_U() {
					if !bCheck && !b1Check {
						W.Set(i, j, k-1, -W.At(i, j+1, k-1))
					}
					if !fCheck && !f1Check {
						W.Set(i, j, k, -W.At(i, j+1, k))
					}
				}
				if f.B_D() {
					if !bCheck && !b1Check {
						W.Set(i, j, k-1, -W.At(i, j-1, k-1))
					}
					if !fCheck && !f1Check {
						W.Set(i, j, k, -W.At(i, j-1, k))
					}
				}
			}
		}
	}
}

// obstacleT sets every non-fluid cell's temperature to the average of its
// fluid neighbors' temperatures (0 if it has none).
//
// Design Note "T average, not last-write": setInternalTBoundariesMpi
// overwrites a single scratch value per matching direction instead of
// summing, so the literal C++ divides the LAST matching neighbor's value by
// the total neighbor count rather than averaging. This port instead sums
// every matching neighbor and divides by the count, for an unambiguous
// average of its fluid neighbors.
func obstacleT(s *grid.State, il, iu, jl, ju, kl, ku int) {
	T, Flag := s.T(), s.Flag
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
					sum += T.At(i+1, j, k)
					n++
				}
				if f.B_L() {
					sum += T.At(i-1, j, k)
					n++
				}
				if f.B_U() {
					sum += T.At(i, j+1, k)
					n++
				}
				if f.B_D() {
					sum += T.At(i, j-1, k)
					n++
				}
				if f.B_B() {
					sum += T.At(i, j, k-1)
					n++
				}
				if f.B_F() {
					sum += T.At(i, j, k+1)
					n++
				}
				if n == 0 {
					T.Set(i, j, k, 0)
				} else {
					T.Set(i, j, k, sum/grid.Real(n))
				}
			}
		}
	}
}
