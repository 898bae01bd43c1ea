package scenario

import (
	"testing"

	"github.com/ctessum/navier3d/internal/grid"
)

func newState(c Config) *grid.State {
	return grid.NewState(c.Dims())
}

func TestDrivenCavityWallsEveryBoundaryCell(t *testing.T) {
	c := Default()
	c.Imax, c.Jmax, c.Kmax = 6, 6, 6
	s := newState(c)
	Initialize(s, c)
	if !s.Flag.At(1, 1, 1).IsFluid() {
		t.Errorf("interior cell (1,1,1) should be fluid")
	}
	if s.Flag.At(0, 3, 3).IsFluid() {
		t.Errorf("boundary cell (0,3,3) should not be fluid")
	}
	if !s.Flag.At(0, 3, 3).B_R() {
		t.Errorf("left wall cell should point B_R into the fluid interior")
	}
}

func TestSingleTowerCarvesObstacleAndInflow(t *testing.T) {
	c := Default()
	c.Imax, c.Jmax, c.Kmax = 12, 8, 8
	c.Scenario = "single_tower"
	s := newState(c)
	Initialize(s, c)
	if !s.Flag.At(0, 4, 4).IsInflow() {
		t.Errorf("left wall should be tagged INFLOW for single_tower")
	}
	if !s.Flag.At(c.Imax+1, 4, 4).IsOutflow() {
		t.Errorf("right wall should be tagged OUTFLOW for single_tower")
	}
	towerI := c.Imax / 3
	if s.Flag.At(towerI, 4, 4).IsFluid() {
		t.Errorf("tower center column should be obstacle, got fluid")
	}
}

func TestNaturalConvectionTagsHotColdWallsAndGravity(t *testing.T) {
	c := Default()
	c.Imax, c.Jmax, c.Kmax = 8, 8, 8
	c.Scenario = "natural_convection"
	s := newState(c)
	_, gy, _ := Initialize(s, c)
	if gy >= 0 {
		t.Errorf("gy = %v, want negative (gravity drives the buoyancy convection)", gy)
	}
	if !s.Flag.At(0, 4, 4).IsHot() {
		t.Errorf("left wall should be tagged HOT")
	}
	if !s.Flag.At(c.Imax+1, 4, 4).IsCold() {
		t.Errorf("right wall should be tagged COLD")
	}
}

func TestRayleighBenardSeedsPerturbation(t *testing.T) {
	c := Default()
	c.Imax, c.Jmax, c.Kmax = 8, 8, 8
	c.Scenario = "rayleigh_benard"
	s := newState(c)
	Initialize(s, c)
	if !s.Flag.At(4, 0, 4).IsHot() {
		t.Errorf("floor should be tagged HOT")
	}
	if !s.Flag.At(4, c.Jmax+1, 4).IsCold() {
		t.Errorf("ceiling should be tagged COLD")
	}
	if got := s.T().At(c.Imax/2, c.Jmax/2, c.Kmax/2); got == 0.5 {
		t.Errorf("mid-domain perturbation cell should differ from the 0.5 baseline, got %v", got)
	}
}

func TestUnknownScenarioFallsBackToDrivenCavity(t *testing.T) {
	c := Default()
	c.Imax, c.Jmax, c.Kmax = 6, 6, 6
	c.Scenario = "not-a-real-scenario"
	s := newState(c)
	Initialize(s, c)
	if s.Flag.At(0, 3, 3).IsFluid() {
		t.Errorf("unrecognized scenario should still wall the domain like driven_cavity")
	}
}
