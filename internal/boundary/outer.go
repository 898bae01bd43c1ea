package boundary

import "github.com/ctessum/navier3d/internal/grid"

// Apply runs the full outer-wall boundary pass over the whole domain owned
// by s, in a fixed order: left/right, then down/up, then back/front. It
// is grounded directly on
// setBoundaryValuesMpi's first three calls in BoundaryValuesMpi.cpp, with
// il/iu/jl/ju/kl/ku pinned to the full domain — ApplyBounds exposes the
// sub-box form the distributed backend needs for its own partition.
func Apply(s *grid.State, cfg Config) {
	d := s.Dims
	ApplyBounds(s, cfg, 1, d.Imax, 1, d.Jmax, 1, d.Kmax)
}

// ApplyBounds is Apply generalized to a caller-owned sub-box [il,iu] ×
// [jl,ju] × [kl,ku], the same parametrization
// setLeftRightBoundariesMpi/setDownUpBoundariesMpi/setFrontBackBoundariesMpi
// take in the original MPI source. A rank only touches a face when its
// sub-box abuts the corresponding edge of the global domain (the
// `il == 1` / `iu == imax` guards below).
func ApplyBounds(s *grid.State, cfg Config, il, iu, jl, ju, kl, ku int) {
	leftRight(s, cfg, il, iu, jl, ju, kl, ku)
	downUp(s, cfg, il, iu, jl, ju, kl, ku)
	backFront(s, cfg, il, iu, jl, ju, kl, ku)
}

func leftRight(s *grid.State, cfg Config, il, iu, jl, ju, kl, ku int) {
	imax := s.Dims.Imax
	U, V, W, T, Flag := s.U, s.V, s.W, s.T(), s.Flag

	if il == 1 {
		for j := jl; j <= ju; j++ {
			for k := kl; k <= ku; k++ {
				f := Flag.At(0, j, k)
				switch {
				case f.IsNoSlip(), f.IsFreeSlip():
					U.Set(0, j, k, 0)
				case f.IsOutflow():
					U.Set(0, j, k, U.At(1, j, k))
				}
				T.Set(0, j, k, ghostTemperature(f, cfg.Th, cfg.Tc, T.At(1, j, k)))
			}
		}
		for j := jl - 1; j <= ju; j++ {
			for k := kl - 1; k <= ku; k++ {
				f := Flag.At(0, j, k)
				switch {
				case f.IsNoSlip():
					V.Set(0, j, k, -V.At(1, j, k))
					W.Set(0, j, k, -W.At(1, j, k))
				case f.IsFreeSlip(), f.IsOutflow():
					V.Set(0, j, k, V.At(1, j, k))
					W.Set(0, j, k, W.At(1, j, k))
				}
			}
		}
	}

	if iu == imax {
		for j := jl; j <= ju; j++ {
			for k := kl; k <= ku; k++ {
				f := Flag.At(imax+1, j, k)
				switch {
				case f.IsNoSlip(), f.IsFreeSlip():
					U.Set(imax, j, k, 0)
				case f.IsOutflow():
					U.Set(imax, j, k, U.At(imax-1, j, k))
				}
				T.Set(imax+1, j, k, ghostTemperature(f, cfg.Th, cfg.Tc, T.At(imax, j, k)))
			}
		}
		for j := jl - 1; j <= ju; j++ {
			for k := kl - 1; k <= ku; k++ {
				f := Flag.At(imax+1, j, k)
				switch {
				case f.IsNoSlip():
					V.Set(imax+1, j, k, -V.At(imax, j, k))
					W.Set(imax+1, j, k, -W.At(imax, j, k))
				case f.IsFreeSlip(), f.IsOutflow():
					V.Set(imax+1, j, k, V.At(imax, j, k))
					W.Set(imax+1, j, k, W.At(imax, j, k))
				}
			}
		}
	}
}

func downUp(s *grid.State, cfg Config, il, iu, jl, ju, kl, ku int) {
	jmax := s.Dims.Jmax
	U, V, W, T, Flag := s.U, s.V, s.W, s.T(), s.Flag

	if jl == 1 {
		for i := il; i <= iu; i++ {
			for k := kl; k <= ku; k++ {
				f := Flag.At(i, 0, k)
				switch {
				case f.IsNoSlip(), f.IsFreeSlip():
					V.Set(i, 0, k, 0)
				case f.IsOutflow():
					V.Set(i, 0, k, V.At(i, 1, k))
				}
				T.Set(i, 0, k, ghostTemperature(f, cfg.Th, cfg.Tc, T.At(i, 1, k)))
			}
		}
		for i := il - 1; i <= iu; i++ {
			for k := kl - 1; k <= ku; k++ {
				f := Flag.At(i, 0, k)
				switch {
				case f.IsNoSlip():
					U.Set(i, 0, k, -U.At(i, 1, k))
					W.Set(i, 0, k, -W.At(i, 1, k))
				case f.IsFreeSlip(), f.IsOutflow():
					U.Set(i, 0, k, U.At(i, 1, k))
					W.Set(i, 0, k, W.At(i, 1, k))
				}
			}
		}
	}

	if ju == jmax {
		for i := il; i <= iu; i++ {
			for k := kl; k <= ku; k++ {
				f := Flag.At(i, jmax+1, k)
				switch {
				case f.IsNoSlip(), f.IsFreeSlip():
					V.Set(i, jmax, k, 0)
				case f.IsOutflow():
					V.Set(i, jmax, k, V.At(i, jmax-1, k))
				}
				T.Set(i, jmax+1, k, ghostTemperature(f, cfg.Th, cfg.Tc, T.At(i, jmax, k)))
			}
		}
		for i := il - 1; i <= iu; i++ {
			for k := kl - 1; k <= ku; k++ {
				f := Flag.At(i, jmax+1, k)
				switch {
				case f.IsNoSlip():
					U.Set(i, jmax+1, k, -U.At(i, jmax, k))
					W.Set(i, jmax+1, k, -W.At(i, jmax, k))
				case f.IsFreeSlip():
					U.Set(i, jmax+1, k, U.At(i, jmax, k))
					W.Set(i, jmax+1, k, W.At(i, jmax, k))
				case f.IsOutflow():
					U.Set(i, jmax+1, k, U.At(i, jmax, k))
					V.Set(i, jmax, k, V.At(i, jmax-1, k))
					W.Set(i, jmax+1, k, W.At(i, jmax, k))
				}
			}
		}
	}
}

func backFront(s *grid.State, cfg Config, il, iu, jl, ju, kl, ku int) {
	kmax := s.Dims.Kmax
	U, V, W, T, Flag := s.U, s.V, s.W, s.T(), s.Flag

	if kl == 1 {
		for i := il; i <= iu; i++ {
			for j := jl; j <= ju; j++ {
				f := Flag.At(i, j, 0)
				switch {
				case f.IsNoSlip(), f.IsFreeSlip():
					W.Set(i, j, 0, 0)
				case f.IsOutflow():
					W.Set(i, j, 0, W.At(i, j, 1))
				}
				T.Set(i, j, 0, ghostTemperature(f, cfg.Th, cfg.Tc, T.At(i, j, 1)))
			}
		}
		for i := il - 1; i <= iu; i++ {
			for j := jl - 1; j <= ju; j++ {
				f := Flag.At(i, j, 0)
				switch {
				case f.IsNoSlip():
					U.Set(i, j, 0, -U.At(i, j, 1))
					V.Set(i, j, 0, -V.At(i, j, 1))
				case f.IsFreeSlip(), f.IsOutflow():
					U.Set(i, j, 0, U.At(i, j, 1))
					V.Set(i, j, 0, V.At(i, j, 1))
				}
			}
		}
	}

	if ku == kmax {
		for i := il; i <= iu; i++ {
			for j := jl; j <= ju; j++ {
				f := Flag.At(i, j, kmax+1)
				switch {
				case f.IsNoSlip(), f.IsFreeSlip():
					W.Set(i, j, kmax, 0)
				case f.IsOutflow():
					W.Set(i, j, kmax, W.At(i, j, kmax-1))
				}
				T.Set(i, j, kmax+1, ghostTemperature(f, cfg.Th, cfg.Tc, T.At(i, j, kmax)))
			}
		}
		for i := il - 1; i <= iu; i++ {
			for j := jl - 1; j <= ju; j++ {
				f := Flag.At(i, j, kmax+1)
				switch {
				case f.IsNoSlip():
					U.Set(i, j, kmax+1, -U.At(i, j, kmax))
					V.Set(i, j, kmax+1, -V.At(i, j, kmax))
				case f.IsFreeSlip(), f.IsOutflow():
					U.Set(i, j, kmax+1, U.At(i, j, kmax))
					V.Set(i, j, kmax+1, V.At(i, j, kmax))
				}
			}
		}
	}
}

// ghostTemperature applies the Neumann/Dirichlet reflection rule shared by
// all six outer faces: a hot or cold wall reflects to 2*Tw - Tinterior, any
// other wall (no-slip/free-slip/outflow with no thermal tag) copies the
// interior value (zero-gradient).
func ghostTemperature(f grid.Flag, th, tc, interior grid.Real) grid.Real {
	switch {
	case f.IsHot():
		return 2*th - interior
	case f.IsCold():
		return 2*tc - interior
	default:
		return interior
	}
}
