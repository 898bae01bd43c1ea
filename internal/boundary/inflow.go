package boundary

import "github.com/ctessum/navier3d/internal/grid"

// InflowFunc overlays a scenario's inflow condition onto the left wall (or,
// for driven_cavity, the upper wall) after Apply has already set the
// generic outer-wall values.
type InflowFunc func(s *grid.State, il, iu, jl, ju, kl, ku int)

// scenarios is the scenario descriptor table of Design Note "scenario
// descriptor table", grounded on setBoundaryValuesScenarioSpecificMpi in
// BoundaryValuesMpi.cpp: a name-keyed table instead of the original's
// if/else-if chain on scenarioName, so adding a scenario means adding a
// table entry rather than editing a dispatch function.
var scenarios = map[string]InflowFunc{
	"driven_cavity":  drivenCavityInflow,
	"flow_over_step": flowOverStepInflow,
	"single_tower":   singleTowerInflow,
	"terrain_1":      terrainInflow,
	"fuji_san":       terrainInflow,
	"zugspitze":      terrainInflow,
}

// ApplyScenario runs the inflow overlay for cfg.Scenario, if any. Scenarios
// not present in the table (e.g. a bare internal obstacle case with no
// special inflow) are a no-op.
func ApplyScenario(s *grid.State, cfg Config) {
	d := s.Dims
	ApplyScenarioBounds(s, cfg, 1, d.Imax, 1, d.Jmax, 1, d.Kmax)
}

// ApplyScenarioBounds is ApplyScenario generalized to a caller-owned
// sub-box, mirroring ApplyBounds.
func ApplyScenarioBounds(s *grid.State, cfg Config, il, iu, jl, ju, kl, ku int) {
	fn, ok := scenarios[cfg.Scenario]
	if !ok {
		return
	}
	fn(s, il, iu, jl, ju, kl, ku)
}

// drivenCavityInflow drives the lid: the upper wall's ghost U is set so the
// on-face interpolated velocity at the lid is 1 (2*1 - U_interior).
func drivenCavityInflow(s *grid.State, il, iu, jl, ju, kl, ku int) {
	jmax := s.Dims.Jmax
	if ju != jmax {
		return
	}
	U := s.U
	for i := il - 2; i <= iu+1; i++ {
		for k := kl - 1; k <= ku+1; k++ {
			if !U.InBounds(i, jmax+1, k) {
				continue
			}
			U.Set(i, jmax+1, k, 2.0-U.At(i, jmax, k))
		}
	}
}

// flowOverStepInflow drives a unit inflow across the upper half of the left
// wall, leaving the lower half (behind the step) at the generic outer-wall
// value Apply already set.
func flowOverStepInflow(s *grid.State, il, iu, jl, ju, kl, ku int) {
	if il != 1 {
		return
	}
	jmax := s.Dims.Jmax
	U, V, W := s.U, s.V, s.W
	for j := jmax/2 + 1; j <= jmax; j++ {
		for k := kl; k <= ku; k++ {
			U.Set(0, j, k, 1.0)
			V.Set(0, j, k, 0.0)
			W.Set(0, j, k, 0.0)
		}
	}
}

// singleTowerInflow drives a unit inflow across the full left wall.
func singleTowerInflow(s *grid.State, il, iu, jl, ju, kl, ku int) {
	if il != 1 {
		return
	}
	U, V, W := s.U, s.V, s.W
	for j := jl; j <= ju; j++ {
		for k := kl; k <= ku; k++ {
			U.Set(0, j, k, 1.0)
			V.Set(0, j, k, 0.0)
			W.Set(0, j, k, 0.0)
		}
	}
}

// terrainInflow drives a unit inflow only across the cells of the left wall
// that a scenario initializer tagged INFLOW, leaving terrain-blocked
// columns at the generic outer-wall value.
func terrainInflow(s *grid.State, il, iu, jl, ju, kl, ku int) {
	if il != 1 {
		return
	}
	U, V, W, Flag := s.U, s.V, s.W, s.Flag
	for j := jl; j <= ju; j++ {
		for k := kl; k <= ku; k++ {
			if !Flag.At(0, j, k).IsInflow() {
				continue
			}
			U.Set(0, j, k, 1.0)
			V.Set(0, j, k, 0.0)
			W.Set(0, j, k, 0.0)
		}
	}
}
