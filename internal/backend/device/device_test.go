package device

import (
	"testing"

	"github.com/ctessum/navier3d/internal/backend"
	"github.com/ctessum/navier3d/internal/grid"
	"github.com/ctessum/navier3d/internal/scenario"
)

func newBackend(t *testing.T) (*Backend, *grid.State) {
	t.Helper()
	cfg := scenario.Default()
	cfg.Imax, cfg.Jmax, cfg.Kmax = 10, 10, 10
	cfg.Scenario = "driven_cavity"
	cfg.IterMax = 200
	cfg.Eps = 1e-3
	s := grid.NewState(cfg.Dims())
	scenario.Initialize(s, cfg)
	b := New(s, backend.FromScenario(cfg), backend.ExecutionContext{Threads: 2}, BlockSize{X: 4, Y: 4, Z: 4})
	return b, s
}

func TestTilesCoverTheWholeDomainExactlyOnce(t *testing.T) {
	b, _ := newBackend(t)
	covered := make(map[[3]int]bool)
	for _, tl := range b.tiles() {
		for i := tl.ilo; i <= tl.ihi; i++ {
			for j := tl.jlo; j <= tl.jhi; j++ {
				for k := tl.klo; k <= tl.khi; k++ {
					key := [3]int{i, j, k}
					if covered[key] {
						t.Fatalf("cell %v covered by more than one tile", key)
					}
					covered[key] = true
				}
			}
		}
	}
	d := b.s.Dims
	if len(covered) != d.Imax*d.Jmax*d.Kmax {
		t.Errorf("covered %d cells, want %d", len(covered), d.Imax*d.Jmax*d.Kmax)
	}
}

func TestStepPipelineRunsWithoutPanicking(t *testing.T) {
	b, _ := newBackend(t)
	defer b.Close()

	b.SetBoundaryValues()
	b.SetBoundaryValuesScenarioSpecific()
	dt := b.CalculateDt()
	b.CalculateFGH(dt)
	b.CalculateRS(dt)
	iters, residual := b.ExecuteSORSolver()
	if iters == 0 {
		t.Errorf("ExecuteSORSolver ran 0 iterations")
	}
	_ = residual
	b.CalculateUVW(dt)
}

func TestDefaultBlockSizeFallsBackToEight(t *testing.T) {
	cfg := scenario.Default()
	s := grid.NewState(cfg.Dims())
	b := New(s, backend.FromScenario(cfg), backend.ExecutionContext{}, BlockSize{})
	if b.block.X != 8 || b.block.Y != 8 || b.block.Z != 8 {
		t.Errorf("block = %+v, want {8,8,8}", b.block)
	}
}
