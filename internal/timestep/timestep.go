// Package timestep computes the stability-limited Δt: a CFL term, a
// diffusive term, and (when temperature is enabled) a thermal term,
// combined with a user safety factor τ.
package timestep

import "github.com/ctessum/navier3d/internal/grid"

// Params are the scalars the controller needs beyond the velocity fields
// themselves.
type Params struct {
	Re, Pr    grid.Real
	Tau       grid.Real
	UseTemp   bool
	PrevDt    grid.Real // kept when Tau <= 0 (fixed mode)
}

// Compute returns the Δt to use for the next step, using hand-rolled
// amin/max reductions instead of a generic numeric library — a reduction
// over three or four scalars does not warrant pulling one in.
func Compute(s *grid.State, p Params) grid.Real {
	if p.Tau <= 0 {
		return p.PrevDt
	}

	d := s.Dims
	umax := absMax(s.U.Raw())
	vmax := absMax(s.V.Raw())
	wmax := absMax(s.W.Raw())

	dtCFL := amin(
		safeDiv(d.Dx, umax),
		safeDiv(d.Dy, vmax),
		safeDiv(d.Dz, wmax),
	)

	invSq := 1/(d.Dx*d.Dx) + 1/(d.Dy*d.Dy) + 1/(d.Dz*d.Dz)
	dtVisc := 0.5 * p.Re / invSq

	dt := amin(dtCFL, dtVisc)
	if p.UseTemp {
		dtTherm := dtVisc * p.Pr
		dt = amin(dt, dtTherm)
	}

	return p.Tau * dt
}

// safeDiv returns a very large value instead of +Inf when vmax is 0, so a
// stationary component never artificially constrains dt_cfl below the
// diffusive limit.
func safeDiv(d, vmax grid.Real) grid.Real {
	if vmax == 0 {
		return 1e30
	}
	return d / vmax
}

func absMax(vals []grid.Real) grid.Real {
	var m grid.Real
	for _, v := range vals {
		if v < 0 {
			v = -v
		}
		if v > m {
			m = v
		}
	}
	return m
}

func amin(vals ...grid.Real) grid.Real {
	m := vals[0]
	for _, v := range vals {
		if v < m {
			m = v
		}
	}
	return m
}
