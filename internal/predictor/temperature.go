package predictor

import "github.com/ctessum/navier3d/internal/grid"

// ComputeTemperature advances T → TNext at every fluid cell by donor-cell
// convection (weighted by α, matching the momentum convection term) plus
// diffusion scaled by 1/(Re·Pr). It does not read Params.UseTemp and
// advances T whenever it is called; the driver calls it only when
// temperature is enabled.
func ComputeTemperature(s *grid.State, p Params) {
	d := s.Dims
	U, V, W, T, TNext, Flag := s.U, s.V, s.W, s.T(), s.TNext(), s.Flag
	for i := 1; i <= d.Imax; i++ {
		for j := 1; j <= d.Jmax; j++ {
			for k := 1; k <= d.Kmax; k++ {
				if !Flag.At(i, j, k).IsFluid() {
					TNext.Set(i, j, k, T.At(i, j, k))
					continue
				}
				conv := dtudx(U, T, i, j, k, d.Dx, p.Alpha) +
					dtvdy(V, T, i, j, k, d.Dy, p.Alpha) +
					dtwdz(W, T, i, j, k, d.Dz, p.Alpha)
				diff := diffusion3(T, i, j, k, d.Dx, d.Dy, d.Dz) / (p.Re * p.Pr)
				TNext.Set(i, j, k, T.At(i, j, k)+p.Dt*(diff-conv))
			}
		}
	}
}

func dtudx(U, T *grid.Field, i, j, k int, dx, alpha grid.Real) grid.Real {
	uE, uW := U.At(i, j, k), U.At(i-1, j, k)
	central := (uE*(T.At(i, j, k)+T.At(i+1, j, k))/2 - uW*(T.At(i-1, j, k)+T.At(i, j, k))/2) / dx
	donor := (absR(uE)*(T.At(i, j, k)-T.At(i+1, j, k))/2 - absR(uW)*(T.At(i-1, j, k)-T.At(i, j, k))/2) / dx
	return donorCell(central, donor, alpha)
}

func dtvdy(V, T *grid.Field, i, j, k int, dy, alpha grid.Real) grid.Real {
	vN, vS := V.At(i, j, k), V.At(i, j-1, k)
	central := (vN*(T.At(i, j, k)+T.At(i, j+1, k))/2 - vS*(T.At(i, j-1, k)+T.At(i, j, k))/2) / dy
	donor := (absR(vN)*(T.At(i, j, k)-T.At(i, j+1, k))/2 - absR(vS)*(T.At(i, j-1, k)-T.At(i, j, k))/2) / dy
	return donorCell(central, donor, alpha)
}

func dtwdz(W, T *grid.Field, i, j, k int, dz, alpha grid.Real) grid.Real {
	wF, wB := W.At(i, j, k), W.At(i, j, k-1)
	central := (wF*(T.At(i, j, k)+T.At(i, j, k+1))/2 - wB*(T.At(i, j, k-1)+T.At(i, j, k))/2) / dz
	donor := (absR(wF)*(T.At(i, j, k)-T.At(i, j, k+1))/2 - absR(wB)*(T.At(i, j, k-1)-T.At(i, j, k))/2) / dz
	return donorCell(central, donor, alpha)
}
