// Package distributed is the domain-decomposition backend: the global
// domain is split into iproc contiguous slabs along the
// i-axis, one per simulated rank, and every step that has a cross-slab
// dependency (the outer/obstacle boundary passes and the pressure
// solver's red-black sweeps) runs through the channel-based
// ExchangeHalos barrier between phases. jproc and kproc are accepted for
// interface parity with the original C++ decomposition but must be 1 in
// this implementation: only the i-axis split exists, and New returns an
// error for any other decomposition.
package distributed

import (
	"fmt"

	"github.com/ctessum/navier3d/internal/backend"
	"github.com/ctessum/navier3d/internal/boundary"
	"github.com/ctessum/navier3d/internal/corrector"
	"github.com/ctessum/navier3d/internal/grid"
	"github.com/ctessum/navier3d/internal/predictor"
	"github.com/ctessum/navier3d/internal/pressure"
	"github.com/ctessum/navier3d/internal/rhs"
	"github.com/ctessum/navier3d/internal/timestep"
)

type slab struct{ lo, hi int }

// Backend is the distributed Solver implementation.
type Backend struct {
	s      *grid.State
	cfg    backend.Config
	slabs  []slab
	prevDt grid.Real
}

// New builds a distributed backend over a pre-allocated, scenario-seeded
// state, splitting [1,Imax] into ctx.IProc contiguous slabs.
func New(s *grid.State, cfg backend.Config, ctx backend.ExecutionContext) (*Backend, error) {
	if ctx.JProc > 1 || ctx.KProc > 1 {
		return nil, fmt.Errorf("distributed backend: jproc=%d kproc=%d must both be 1 (only i-axis decomposition is implemented)", ctx.JProc, ctx.KProc)
	}
	iproc := ctx.IProc
	if iproc < 1 {
		iproc = 1
	}
	if iproc > s.Dims.Imax {
		return nil, fmt.Errorf("distributed backend: iproc=%d exceeds imax=%d", iproc, s.Dims.Imax)
	}
	return &Backend{s: s, cfg: cfg, slabs: decomposeI(s.Dims.Imax, iproc)}, nil
}

// decomposeI splits [1,imax] into iproc contiguous, near-equal slabs, the
// first imax%iproc slabs taking one extra cell each.
func decomposeI(imax, iproc int) []slab {
	base, rem := imax/iproc, imax%iproc
	slabs := make([]slab, iproc)
	lo := 1
	for r := 0; r < iproc; r++ {
		size := base
		if r < rem {
			size++
		}
		hi := lo + size - 1
		slabs[r] = slab{lo, hi}
		lo = hi + 1
	}
	return slabs
}

func (b *Backend) boundaryConfig() boundary.Config {
	return boundary.Config{Scenario: b.cfg.Scenario, Th: b.cfg.Th, Tc: b.cfg.Tc}
}

func (b *Backend) SetBoundaryValues() {
	cfg := b.boundaryConfig()
	d := b.s.Dims
	ExchangeHalos(len(b.slabs), func(r int) {
		sl := b.slabs[r]
		boundary.ApplyBounds(b.s, cfg, sl.lo, sl.hi, 1, d.Jmax, 1, d.Kmax)
	})
	ExchangeHalos(len(b.slabs), func(r int) {
		sl := b.slabs[r]
		boundary.ApplyObstaclesBounds(b.s, sl.lo, sl.hi, 1, d.Jmax, 1, d.Kmax)
	})
}

func (b *Backend) SetBoundaryValuesScenarioSpecific() {
	cfg := b.boundaryConfig()
	d := b.s.Dims
	ExchangeHalos(len(b.slabs), func(r int) {
		sl := b.slabs[r]
		boundary.ApplyScenarioBounds(b.s, cfg, sl.lo, sl.hi, 1, d.Jmax, 1, d.Kmax)
	})
}

// CalculateDt reduces the per-slab CFL/viscous/thermal limits down to one
// global timestep. timestep.Compute already scans the whole state's
// velocity and temperature fields in one pass; a true multi-process
// backend would compute a per-rank partial max/min here and all-reduce
// them, which ExchangeHalos' completion barrier models the synchronization
// point for even though the reduction itself runs once over shared memory.
func (b *Backend) CalculateDt() grid.Real {
	dt := timestep.Compute(b.s, timestep.Params{
		Re: b.cfg.Re, Pr: b.cfg.Pr, Tau: b.cfg.Tau,
		UseTemp: b.cfg.UseTemperature, PrevDt: b.prevDt,
	})
	b.prevDt = dt
	return dt
}

func (b *Backend) CalculateTemperature(dt grid.Real) {
	predictor.ComputeTemperature(b.s, predictor.Params{
		Re: b.cfg.Re, Pr: b.cfg.Pr, Dt: dt, UseTemp: b.cfg.UseTemperature,
	})
	b.s.SwapTemperature()
}

func (b *Backend) CalculateFGH(dt grid.Real) {
	predictor.ComputeFGH(b.s, predictor.Params{
		Re: b.cfg.Re, Pr: b.cfg.Pr, Alpha: b.cfg.Alpha, Beta: b.cfg.Beta,
		Dt: dt, GX: b.cfg.GX, GY: b.cfg.GY, GZ: b.cfg.GZ,
		UseTemp: b.cfg.UseTemperature,
	})
}

func (b *Backend) CalculateRS(dt grid.Real) {
	d := b.s.Dims
	ExchangeHalos(len(b.slabs), func(r int) {
		sl := b.slabs[r]
		rhs.ComputeBounds(b.s, dt, sl.lo, sl.hi, 1, d.Jmax, 1, d.Kmax)
	})
}

// ExecuteSORSolver is where slab decomposition matters most: a red cell
// at a slab boundary reads its black neighbor in the adjoining slab, so
// every color half-sweep must be followed by a halo exchange before the
// next rank's sweep can trust that value.
func (b *Backend) ExecuteSORSolver() (iters int, residual grid.Real) {
	d := b.s.Dims
	n := len(b.slabs)
	ghostLo, ghostHi := 0, d.Imax+1

	copyObstacles := func() {
		ExchangeHalos(n, func(r int) {
			sl := b.slabs[r]
			il, iu := sl.lo, sl.hi
			if r == 0 {
				il = ghostLo
			}
			if r == n-1 {
				iu = ghostHi
			}
			pressure.CopyToObstaclesBounds(b.s, il, iu, 0, d.Jmax+1, 0, d.Kmax+1)
		})
	}
	sweepColor := func(color int) {
		ExchangeHalos(n, func(r int) {
			sl := b.slabs[r]
			pressure.SweepBounds(b.s, b.cfg.Omega, color, sl.lo, sl.hi, 1, d.Jmax, 1, d.Kmax)
		})
	}

	for iters = 0; iters < b.cfg.IterMax; iters++ {
		copyObstacles()
		sweepColor(0)
		copyObstacles()
		sweepColor(1)

		residual = pressure.Residual(b.s)
		if residual < b.cfg.Eps {
			iters++
			return iters, residual
		}
	}
	return iters, residual
}

func (b *Backend) CalculateUVW(dt grid.Real) {
	d := b.s.Dims
	ExchangeHalos(len(b.slabs), func(r int) {
		sl := b.slabs[r]
		corrector.ProjectBounds(b.s, dt, sl.lo, sl.hi, 1, d.Jmax, 1, d.Kmax)
	})
}

func (b *Backend) ConvergenceEps() grid.Real { return b.cfg.Eps }

func (b *Backend) GetDataForOutput() *grid.State { return b.s }

func (b *Backend) Close() {}
