package scenario

import "github.com/ctessum/navier3d/internal/grid"

// Initializer seeds a freshly allocated state with the scenario's
// geometry, initial fields, and returns the body-force vector the driver
// should use for GX/GY/GZ — scenarios that tilt or reverse gravity (e.g.
// rayleigh_benard) override the Config defaults here.
type Initializer func(s *grid.State, c Config) (gx, gy, gz grid.Real)

// table is the per-scenario initializer dispatch, per Design Note
// "scenario descriptor table" (internal/boundary's ApplyScenario uses the
// same pattern for the per-timestep inflow overlay).
var table = map[string]Initializer{
	"driven_cavity":      initDrivenCavity,
	"flow_over_step":     initFlowOverStep,
	"single_tower":       initSingleTower,
	"terrain_1":          initTerrain,
	"fuji_san":           initTerrain,
	"zugspitze":          initTerrain,
	"natural_convection": initNaturalConvection,
	"rayleigh_benard":    initRayleighBenard,
}

// Initialize looks up c.Scenario and runs its initializer, falling back
// to a plain walled fluid box (driven_cavity's geometry, no lid motion)
// for unrecognized names — a scenario the boundary engine's ApplyScenario
// table also doesn't recognize simply runs with no inflow overlay.
func Initialize(s *grid.State, c Config) (gx, gy, gz grid.Real) {
	if fn, ok := table[c.Scenario]; ok {
		return fn(s, c)
	}
	return initDrivenCavity(s, c)
}

// wallBox flags every boundary cell of the domain NoSlip and sets its
// inward-facing obstacle bits, leaving the interior fluid. Every scenario
// below starts from this and then carves out inflow/outflow faces.
func wallBox(s *grid.State) {
	d := s.Dims
	for i := 0; i <= d.Imax+1; i++ {
		for j := 0; j <= d.Jmax+1; j++ {
			for k := 0; k <= d.Kmax+1; k++ {
				onBoundary := i == 0 || j == 0 || k == 0 || i == d.Imax+1 || j == d.Jmax+1 || k == d.Kmax+1
				if !onBoundary {
					s.Flag.Set(i, j, k, grid.NewFlag(grid.KindFluid))
					continue
				}
				f := grid.NewFlag(grid.KindNoSlip)
				if i == 0 {
					f = f.WithFace(grid.FaceR, true)
				}
				if i == d.Imax+1 {
					f = f.WithFace(grid.FaceL, true)
				}
				if j == 0 {
					f = f.WithFace(grid.FaceU, true)
				}
				if j == d.Jmax+1 {
					f = f.WithFace(grid.FaceD, true)
				}
				if k == 0 {
					f = f.WithFace(grid.FaceF, true)
				}
				if k == d.Kmax+1 {
					f = f.WithFace(grid.FaceB, true)
				}
				s.Flag.Set(i, j, k, f)
			}
		}
	}
}

// setOutflow turns the whole right wall (x = imax+1) into outflow cells,
// used by the duct-like scenarios.
func setOutflow(s *grid.State) {
	d := s.Dims
	for j := 0; j <= d.Jmax+1; j++ {
		for k := 0; k <= d.Kmax+1; k++ {
			f := grid.NewFlag(grid.KindOutflow).WithFace(grid.FaceL, true)
			s.Flag.Set(d.Imax+1, j, k, f)
		}
	}
}

// initDrivenCavity is the lid-driven cavity: a walled box whose top wall
// is given unit tangential velocity by boundary.ApplyScenario every step
// (this initializer only needs the plain wall geometry).
func initDrivenCavity(s *grid.State, c Config) (gx, gy, gz grid.Real) {
	wallBox(s)
	return 0, 0, 0
}

// initFlowOverStep walls the domain, then carves a backward-facing step
// out of the lower-left region of the domain (a solid block of NoSlip
// cells from the floor up to mid-height along the first third of the
// duct), with the left wall's upper half driven as inflow and the right
// wall open as outflow.
func initFlowOverStep(s *grid.State, c Config) (gx, gy, gz grid.Real) {
	wallBox(s)
	d := s.Dims
	stepI := d.Imax / 3
	stepJ := d.Jmax / 2
	for i := 1; i <= stepI; i++ {
		for j := 1; j <= stepJ; j++ {
			for k := 1; k <= d.Kmax; k++ {
				f := grid.NewFlag(grid.KindNoSlip)
				if i == stepI {
					f = f.WithFace(grid.FaceR, true)
				}
				if j == stepJ {
					f = f.WithFace(grid.FaceU, true)
				}
				s.Flag.Set(i, j, k, f)
			}
		}
	}
	for j := d.Jmax/2 + 1; j <= d.Jmax; j++ {
		for k := 0; k <= d.Kmax+1; k++ {
			s.Flag.Set(0, j, k, grid.NewFlag(grid.KindInflow).WithFace(grid.FaceR, true))
		}
	}
	setOutflow(s)
	return 0, 0, 0
}

// initSingleTower walls the domain, drives the entire left wall as
// inflow, opens the right wall as outflow, and places a single square
// NoSlip tower a third of the way along x, centered in z, spanning the
// full height.
func initSingleTower(s *grid.State, c Config) (gx, gy, gz grid.Real) {
	wallBox(s)
	d := s.Dims
	for j := 0; j <= d.Jmax+1; j++ {
		for k := 0; k <= d.Kmax+1; k++ {
			s.Flag.Set(0, j, k, grid.NewFlag(grid.KindInflow).WithFace(grid.FaceR, true))
		}
	}
	setOutflow(s)

	ci, ck := d.Imax/3, d.Kmax/2
	halfWidth := d.Kmax / 8
	if halfWidth < 1 {
		halfWidth = 1
	}
	for i := ci - halfWidth; i <= ci+halfWidth; i++ {
		for k := ck - halfWidth; k <= ck+halfWidth; k++ {
			for j := 1; j <= d.Jmax; j++ {
				f := grid.NewFlag(grid.KindNoSlip)
				if i == ci-halfWidth {
					f = f.WithFace(grid.FaceL, true)
				}
				if i == ci+halfWidth {
					f = f.WithFace(grid.FaceR, true)
				}
				if k == ck-halfWidth {
					f = f.WithFace(grid.FaceB, true)
				}
				if k == ck+halfWidth {
					f = f.WithFace(grid.FaceF, true)
				}
				s.Flag.Set(i, j, k, f)
			}
		}
	}
	return 0, 0, 0
}

// initTerrain walls the domain and tags the entire left wall INFLOW,
// matching BoundaryValuesMpi.cpp's terrain scenarios where only cells
// already tagged INFLOW are driven (the actual terrain elevation profile
// comes from internal/geometry's voxel loader when a GeometryFile is
// configured; without one this falls back to a flat duct inlet).
func initTerrain(s *grid.State, c Config) (gx, gy, gz grid.Real) {
	wallBox(s)
	d := s.Dims
	for j := 0; j <= d.Jmax+1; j++ {
		for k := 0; k <= d.Kmax+1; k++ {
			s.Flag.Set(0, j, k, grid.NewFlag(grid.KindInflow).WithFace(grid.FaceR, true))
		}
	}
	setOutflow(s)
	return 0, 0, 0
}

// initNaturalConvection walls the domain with no inflow/outflow, tags
// the left wall HOT and the right wall COLD, and enables the buoyancy
// term via a downward gravity component on GY.
func initNaturalConvection(s *grid.State, c Config) (gx, gy, gz grid.Real) {
	wallBox(s)
	d := s.Dims
	for j := 0; j <= d.Jmax+1; j++ {
		for k := 0; k <= d.Kmax+1; k++ {
			s.Flag.Set(0, j, k, s.Flag.At(0, j, k).WithHot())
			s.Flag.Set(d.Imax+1, j, k, s.Flag.At(d.Imax+1, j, k).WithCold())
		}
	}
	s.T().Fill(0.5)
	s.TNext().Fill(0.5)
	return 0, -9.81, 0
}

// initRayleighBenard walls the domain, tags the floor HOT and the
// ceiling COLD, and seeds a small temperature perturbation at mid-height
// to break the unstable equilibrium's symmetry, matching the classical
// Rayleigh-Bénard setup of counter-rotating convection rolls.
func initRayleighBenard(s *grid.State, c Config) (gx, gy, gz grid.Real) {
	wallBox(s)
	d := s.Dims
	for i := 0; i <= d.Imax+1; i++ {
		for k := 0; k <= d.Kmax+1; k++ {
			s.Flag.Set(i, 0, k, s.Flag.At(i, 0, k).WithHot())
			s.Flag.Set(i, d.Jmax+1, k, s.Flag.At(i, d.Jmax+1, k).WithCold())
		}
	}
	s.T().Fill(0.5)
	s.TNext().Fill(0.5)
	mid := d.Jmax / 2
	if mid >= 1 && mid <= d.Jmax {
		s.T().Set(d.Imax/2, mid, d.Kmax/2, 0.55)
	}
	return 0, -9.81, 0
}
