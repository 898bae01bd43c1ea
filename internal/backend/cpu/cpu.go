// Package cpu is the shared-memory backend: a single grid.State mutated
// in place by a fixed-size goroutine worker pool, generalizing a
// Calculations/DomainManipulator-style pipeline from "a function list
// run once per grid cell" to "the fixed sequence of physics-core passes
// a timestep needs."
package cpu

import (
	"runtime"
	"sync"

	"github.com/ctessum/navier3d/internal/backend"
	"github.com/ctessum/navier3d/internal/boundary"
	"github.com/ctessum/navier3d/internal/corrector"
	"github.com/ctessum/navier3d/internal/grid"
	"github.com/ctessum/navier3d/internal/predictor"
	"github.com/ctessum/navier3d/internal/pressure"
	"github.com/ctessum/navier3d/internal/rhs"
	"github.com/ctessum/navier3d/internal/timestep"
)

// Backend is the cpu Solver implementation.
type Backend struct {
	s      *grid.State
	cfg    backend.Config
	nprocs int
	prevDt grid.Real
}

// New builds a cpu backend over a caller-allocated state — callers own
// state allocation and pass it in so a scenario initializer can seed it
// first.
func New(s *grid.State, cfg backend.Config, ctx backend.ExecutionContext) *Backend {
	nprocs := ctx.Threads
	if nprocs <= 0 {
		nprocs = runtime.GOMAXPROCS(0)
	}
	return &Backend{s: s, cfg: cfg, nprocs: nprocs}
}

// parallelFor partitions [0,n) across the worker pool exactly the way
// Calculations in run.go partitions d.Cells: worker pp takes indices
// pp, pp+nprocs, pp+2*nprocs, ....
func (b *Backend) parallelFor(n int, fn func(idx int)) {
	if b.nprocs <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var wg sync.WaitGroup
	wg.Add(b.nprocs)
	for pp := 0; pp < b.nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			for i := pp; i < n; i += b.nprocs {
				fn(i)
			}
		}(pp)
	}
	wg.Wait()
}

func (b *Backend) boundaryConfig() boundary.Config {
	return boundary.Config{Scenario: b.cfg.Scenario, Th: b.cfg.Th, Tc: b.cfg.Tc}
}

func (b *Backend) SetBoundaryValues() {
	boundary.Apply(b.s, b.boundaryConfig())
	boundary.ApplyObstacles(b.s)
}

func (b *Backend) SetBoundaryValuesScenarioSpecific() {
	boundary.ApplyScenario(b.s, b.boundaryConfig())
}

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

// CalculateFGH runs the three tentative-momentum passes concurrently:
// each reads the shared state but writes only its own field (F, G, or
// H), so there is no cell to lock.
func (b *Backend) CalculateFGH(dt grid.Real) {
	p := predictor.Params{
		Re: b.cfg.Re, Pr: b.cfg.Pr, Alpha: b.cfg.Alpha, Beta: b.cfg.Beta,
		Dt: dt, GX: b.cfg.GX, GY: b.cfg.GY, GZ: b.cfg.GZ,
		UseTemp: b.cfg.UseTemperature,
	}
	passes := []func(*grid.State, predictor.Params){
		predictor.ComputeF, predictor.ComputeG, predictor.ComputeH,
	}
	b.parallelFor(len(passes), func(idx int) {
		passes[idx](b.s, p)
	})
}

func (b *Backend) CalculateRS(dt grid.Real) {
	rhs.Compute(b.s, dt)
}

func (b *Backend) ExecuteSORSolver() (int, grid.Real) {
	return pressure.SOR(b.s, pressure.Params{
		Omega: b.cfg.Omega, Eps: b.cfg.Eps, IterMax: b.cfg.IterMax,
	})
}

func (b *Backend) ConvergenceEps() grid.Real { return b.cfg.Eps }

func (b *Backend) CalculateUVW(dt grid.Real) {
	corrector.Project(b.s, dt)
}

func (b *Backend) GetDataForOutput() *grid.State { return b.s }

func (b *Backend) Close() {}
