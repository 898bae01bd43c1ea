package distributed

import (
	"testing"

	"github.com/ctessum/navier3d/internal/backend"
	"github.com/ctessum/navier3d/internal/grid"
	"github.com/ctessum/navier3d/internal/scenario"
)

func newBackend(t *testing.T, iproc int) (*Backend, *grid.State) {
	t.Helper()
	cfg := scenario.Default()
	cfg.Imax, cfg.Jmax, cfg.Kmax = 8, 6, 6
	cfg.Scenario = "driven_cavity"
	cfg.IterMax = 50
	cfg.Eps = 1e-3
	s := grid.NewState(cfg.Dims())
	scenario.Initialize(s, cfg)
	b, err := New(s, backend.FromScenario(cfg), backend.ExecutionContext{IProc: iproc, JProc: 1, KProc: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b, s
}

func TestDecomposeISplitsEvenly(t *testing.T) {
	slabs := decomposeI(12, 3)
	if len(slabs) != 3 {
		t.Fatalf("len(slabs) = %d, want 3", len(slabs))
	}
	want := []slab{{1, 4}, {5, 8}, {9, 12}}
	for i, s := range slabs {
		if s != want[i] {
			t.Errorf("slabs[%d] = %+v, want %+v", i, s, want[i])
		}
	}
}

func TestDecomposeIAbsorbsRemainder(t *testing.T) {
	slabs := decomposeI(10, 3)
	total := 0
	for _, s := range slabs {
		total += s.hi - s.lo + 1
	}
	if total != 10 {
		t.Errorf("slab sizes sum to %d, want 10", total)
	}
}

func TestNewRejectsNonTrivialJKDecomposition(t *testing.T) {
	cfg := scenario.Default()
	s := grid.NewState(cfg.Dims())
	_, err := New(s, backend.FromScenario(cfg), backend.ExecutionContext{IProc: 1, JProc: 2, KProc: 1})
	if err == nil {
		t.Fatalf("expected an error for jproc=2, got nil")
	}
}

func TestStepPipelineAgreesWithSingleSlab(t *testing.T) {
	single, _ := newBackend(t, 1)
	multi, _ := newBackend(t, 3)

	for _, b := range []*Backend{single, multi} {
		b.SetBoundaryValues()
		b.SetBoundaryValuesScenarioSpecific()
		dt := b.CalculateDt()
		b.CalculateFGH(dt)
		b.CalculateRS(dt)
		b.ExecuteSORSolver()
		b.CalculateUVW(dt)
	}

	d := single.s.Dims
	for i := 1; i <= d.Imax; i++ {
		for j := 1; j <= d.Jmax; j++ {
			for k := 1; k <= d.Kmax; k++ {
				a, c := single.s.P.At(i, j, k), multi.s.P.At(i, j, k)
				diff := a - c
				if diff < 0 {
					diff = -diff
				}
				if diff > 1e-6 {
					t.Fatalf("P(%d,%d,%d): single-slab=%v multi-slab=%v, want equal decomposition results", i, j, k, a, c)
				}
			}
		}
	}
}
