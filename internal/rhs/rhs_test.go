package rhs

import (
	"testing"

	"github.com/ctessum/navier3d/internal/grid"
)

func TestComputeDivergence(t *testing.T) {
	d := grid.NewDims(4, 4, 4, 4, 4, 4, 0, 0, 0)
	s := grid.NewState(d)
	for i := 0; i < s.Flag.Nx; i++ {
		for j := 0; j < s.Flag.Ny; j++ {
			for k := 0; k < s.Flag.Nz; k++ {
				s.Flag.Set(i, j, k, grid.NewFlag(grid.KindFluid))
			}
		}
	}
	s.F.Set(2, 2, 2, 3)
	s.F.Set(1, 2, 2, 1)
	Compute(s, 0.5)
	want := grid.Real((3 - 1) / 1.0 / 0.5)
	if got := s.RS.At(2, 2, 2); got != want {
		t.Errorf("RS = %v, want %v", got, want)
	}
}

func TestComputeSkipsNonFluid(t *testing.T) {
	d := grid.NewDims(4, 4, 4, 4, 4, 4, 0, 0, 0)
	s := grid.NewState(d)
	s.Flag.Set(2, 2, 2, grid.NewFlag(grid.KindNoSlip))
	s.RS.Set(2, 2, 2, 99)
	Compute(s, 0.5)
	if got := s.RS.At(2, 2, 2); got != 99 {
		t.Errorf("RS = %v, want unchanged 99 (non-fluid cell untouched)", got)
	}
}
