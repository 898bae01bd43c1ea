package corrector

import (
	"testing"

	"github.com/ctessum/navier3d/internal/grid"
)

func TestProjectSubtractsPressureGradient(t *testing.T) {
	d := grid.NewDims(4, 4, 4, 4, 4, 4, 0, 0, 0)
	s := grid.NewState(d)
	for i := 0; i < s.Flag.Nx; i++ {
		for j := 0; j < s.Flag.Ny; j++ {
			for k := 0; k < s.Flag.Nz; k++ {
				s.Flag.Set(i, j, k, grid.NewFlag(grid.KindFluid))
			}
		}
	}
	s.F.Set(2, 2, 2, 5)
	s.P.Set(2, 2, 2, 1)
	s.P.Set(3, 2, 2, 3)
	Project(s, 0.5)
	want := grid.Real(5) - 0.5*(3-1)/1.0
	if got := s.U.At(2, 2, 2); got != want {
		t.Errorf("U = %v, want %v", got, want)
	}
}

func TestProjectLeavesObstacleAdjacentFaceUntouched(t *testing.T) {
	d := grid.NewDims(4, 4, 4, 4, 4, 4, 0, 0, 0)
	s := grid.NewState(d)
	for i := 0; i < s.Flag.Nx; i++ {
		for j := 0; j < s.Flag.Ny; j++ {
			for k := 0; k < s.Flag.Nz; k++ {
				s.Flag.Set(i, j, k, grid.NewFlag(grid.KindFluid))
			}
		}
	}
	s.Flag.Set(3, 2, 2, grid.NewFlag(grid.KindNoSlip))
	s.U.Set(2, 2, 2, 0)
	s.F.Set(2, 2, 2, 5)
	Project(s, 0.5)
	if got := s.U.At(2, 2, 2); got != 0 {
		t.Errorf("U = %v, want unchanged 0 (face touches a non-fluid cell)", got)
	}
}
