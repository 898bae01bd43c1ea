// Package backend defines the pluggable execution strategy: the same
// per-step operation sequence running over shared memory, over a
// decomposed+halo-exchanged domain, or over a block-tiled device-style
// worker pool. Solver is one capability trait the driver calls through
// without knowing which concrete execution strategy backs it.
package backend

import (
	"github.com/ctessum/navier3d/internal/grid"
	"github.com/ctessum/navier3d/internal/scenario"
)

// Solver is the full operation set a driver loop iteration needs, in the
// exact order Main.cpp's per-step while-loop calls them:
// SetBoundaryValues, SetBoundaryValuesScenarioSpecific, CalculateDt,
// [CalculateTemperature], CalculateFGH, CalculateRS, ExecuteSORSolver,
// CalculateUVW. A concrete backend owns how each step is parallelized;
// callers never see goroutines, halo exchange, or device tiling.
type Solver interface {
	// SetBoundaryValues applies the outer-wall and internal-obstacle
	// boundary conditions.
	SetBoundaryValues()

	// SetBoundaryValuesScenarioSpecific applies the scenario's inflow
	// profile (driven lid, duct inflow, terrain-tagged cells, ...).
	SetBoundaryValuesScenarioSpecific()

	// CalculateDt derives the next timestep from CFL, diffusive, and
	// (when temperature is enabled) thermal stability limits.
	CalculateDt() grid.Real

	// CalculateTemperature advances the energy equation by one step. The
	// driver only calls this when UseTemperature is set.
	CalculateTemperature(dt grid.Real)

	// CalculateFGH computes the tentative momenta.
	CalculateFGH(dt grid.Real)

	// CalculateRS assembles the pressure-equation right-hand side.
	CalculateRS(dt grid.Real)

	// ExecuteSORSolver iterates the pressure solver to convergence or to
	// its iteration cap, returning the iteration count and final
	// residual for logging.
	ExecuteSORSolver() (iters int, residual grid.Real)

	// ConvergenceEps reports the residual threshold ExecuteSORSolver
	// converges against, so a caller can tell a converged step from a
	// best-effort one. Device backends report a coarser threshold than
	// the Eps a scenario configures, matching their relaxed-tolerance
	// contract.
	ConvergenceEps() grid.Real

	// CalculateUVW projects the tentative momenta onto a divergence-free
	// velocity field using the converged pressure.
	CalculateUVW(dt grid.Real)

	// GetDataForOutput returns the canonical single-domain State a
	// writer can serialize. Every backend here returns its live State:
	// the distributed backend's ranks share that one State, so there is
	// nothing to gather.
	GetDataForOutput() *grid.State

	// Close releases any resources (worker pools, halo channels) the
	// backend opened. Safe to call more than once.
	Close()
}

// ExecutionContext describes the slice of the global domain, and the
// parallel resources, a Solver instance runs over. Grounded on the
// iproc/jproc/kproc/numOmpHybridThreads parameters ArgumentParser.cpp
// accepts and CfdSolverCpp.cpp's constructor forwards unchanged.
type ExecutionContext struct {
	// Rank identifies this process within a distributed run; always 0
	// for cpu and device backends.
	Rank int

	// IProc, JProc, KProc is the decomposition shape a distributed
	// backend splits the global domain into (1,1,1 for cpu/device).
	IProc, JProc, KProc int

	// Neighbors holds the rank of the neighboring subdomain in each of
	// the six face directions, or -1 where this rank is at the global
	// boundary. Indexed by grid.Face bit position.
	Neighbors [6]int

	// Threads is the worker-pool size a backend should use internally
	// (runtime.GOMAXPROCS(0) by default).
	Threads int
}

// Config is the subset of scenario.Config every backend needs to build a
// Solver: the physical parameters CalculateFGH/CalculateRS/SOR all read,
// independent of how a backend parallelizes them.
type Config struct {
	Re, Pr, Alpha, Beta, Omega, Eps, Tau grid.Real
	GX, GY, GZ                           grid.Real
	Th, Tc                               grid.Real
	IterMax                              int
	UseTemperature                       bool
	Scenario                             string
}

// FromScenario adapts a scenario.Config into the backend-facing Config.
func FromScenario(c scenario.Config) Config {
	return Config{
		Re:             c.Re,
		Pr:             c.Pr,
		Alpha:          c.Alpha,
		Beta:           c.Beta,
		Omega:          c.Omega,
		Eps:            c.Eps,
		Tau:            c.Tau,
		GX:             c.GX,
		GY:             c.GY,
		GZ:             c.GZ,
		Th:             c.Th,
		Tc:             c.Tc,
		IterMax:        c.IterMax,
		UseTemperature: c.UseTemperature,
		Scenario:       c.Scenario,
	}
}
