package timestep

import (
	"math"
	"testing"

	"github.com/ctessum/navier3d/internal/grid"
)

func TestFixedModeKeepsPrevDt(t *testing.T) {
	d := grid.NewDims(4, 4, 4, 4, 4, 4, 0, 0, 0)
	s := grid.NewState(d)
	got := Compute(s, Params{Tau: 0, PrevDt: 0.05})
	if got != 0.05 {
		t.Errorf("Compute = %v, want 0.05 (fixed mode)", got)
	}
}

func TestCFLDominatesForFastFlow(t *testing.T) {
	d := grid.NewDims(4, 4, 4, 4, 4, 4, 0, 0, 0)
	s := grid.NewState(d)
	s.U.Set(2, 2, 2, 100)
	dt := Compute(s, Params{Re: 1000, Tau: 1})
	want := d.Dx / 100
	if math.Abs(float64(dt-want)) > 1e-9 {
		t.Errorf("Compute = %v, want ~%v (CFL-limited)", dt, want)
	}
}

func TestViscousLimitWhenStationary(t *testing.T) {
	d := grid.NewDims(4, 4, 4, 4, 4, 4, 0, 0, 0)
	s := grid.NewState(d)
	dt := Compute(s, Params{Re: 1000, Tau: 1})
	invSq := 1/(d.Dx*d.Dx) + 1/(d.Dy*d.Dy) + 1/(d.Dz*d.Dz)
	want := 0.5 * 1000 / invSq
	if math.Abs(float64(dt-want)) > 1e-6 {
		t.Errorf("Compute = %v, want %v (viscous-limited)", dt, want)
	}
}

func TestThermalLimitConsidered(t *testing.T) {
	d := grid.NewDims(4, 4, 4, 4, 4, 4, 0, 0, 0)
	s := grid.NewState(d)
	dtNoTemp := Compute(s, Params{Re: 1000, Tau: 1})
	dtTemp := Compute(s, Params{Re: 1000, Pr: 0.1, Tau: 1, UseTemp: true})
	if dtTemp >= dtNoTemp {
		t.Errorf("thermal dt = %v, want < viscous-only dt %v (Pr < 1 tightens the limit)", dtTemp, dtNoTemp)
	}
}
