package particle

import (
	"math"
	"testing"

	"github.com/ctessum/navier3d/internal/grid"
)

func uniformState(n int, u, v, w grid.Real) (*grid.State, Grid) {
	d := grid.NewDims(n, n, n, grid.Real(n), grid.Real(n), grid.Real(n), 0, 0, 0)
	s := grid.NewState(d)
	for i := 0; i < s.U.Nx; i++ {
		for j := 0; j < s.U.Ny; j++ {
			for k := 0; k < s.U.Nz; k++ {
				s.U.Set(i, j, k, u)
				s.V.Set(i, j, k, v)
				s.W.Set(i, j, k, w)
			}
		}
	}
	g := Grid{
		Origin: Vec3{0, 0, 0},
		Size:   Vec3{grid.Real(n), grid.Real(n), grid.Real(n)},
		Imax:   n, Jmax: n, Kmax: n,
		Dx: 1, Dy: 1, Dz: 1,
	}
	return s, g
}

// linearState builds a U field that varies linearly with grid index,
// U(i,j,k) = i+j+k, so interpolation tests can distinguish correct
// trilinear weights from a uniform field that would pass trivially
// regardless of whether the weights are right.
func linearState(n int) (*grid.State, Grid) {
	d := grid.NewDims(n, n, n, grid.Real(n), grid.Real(n), grid.Real(n), 0, 0, 0)
	s := grid.NewState(d)
	for i := 0; i < s.U.Nx; i++ {
		for j := 0; j < s.U.Ny; j++ {
			for k := 0; k < s.U.Nz; k++ {
				s.U.Set(i, j, k, grid.Real(i+j+k))
			}
		}
	}
	g := Grid{
		Origin: Vec3{0, 0, 0},
		Size:   Vec3{grid.Real(n), grid.Real(n), grid.Real(n)},
		Imax:   n, Jmax: n, Kmax: n,
		Dx: 1, Dy: 1, Dz: 1,
	}
	return s, g
}

func TestInterpolateLinearFieldIsNodeExact(t *testing.T) {
	s, g := linearState(8)
	i0, j0, k0 := 4, 4, 4
	// worldToStaggered(pos) - offsetU == (i0,j0,k0) at this position, see interp.go.
	pos := Vec3{X: grid.Real(i0), Y: grid.Real(j0) - 0.5, Z: grid.Real(k0) - 0.5}
	want := grid.Real(i0 + j0 + k0)
	if got := InterpolateU(g, s, pos); math.Abs(float64(got-want)) > 1e-9 {
		t.Errorf("InterpolateU at node (%d,%d,%d) = %v, want %v", i0, j0, k0, got, want)
	}
}

func TestInterpolateLinearFieldIsMidpointMean(t *testing.T) {
	s, g := linearState(8)
	i0, j0, k0 := 4, 4, 4
	node := grid.Real(i0 + j0 + k0)
	nodePlusX := grid.Real(i0 + 1 + j0 + k0)
	want := (node + nodePlusX) / 2

	pos := Vec3{X: grid.Real(i0) + 0.5, Y: grid.Real(j0) - 0.5, Z: grid.Real(k0) - 0.5}
	if got := InterpolateU(g, s, pos); math.Abs(float64(got-want)) > 1e-9 {
		t.Errorf("InterpolateU at midpoint between (%d,%d,%d) and (%d,%d,%d) = %v, want mean %v",
			i0, j0, k0, i0+1, j0, k0, got, want)
	}
}

func TestInterpolateUniformFieldReturnsConstant(t *testing.T) {
	s, g := uniformState(6, 2, 0, 0)
	v := Velocity(g, s, Vec3{3, 3, 3})
	if math.Abs(float64(v.X-2)) > 1e-9 {
		t.Errorf("InterpolateU at interior point = %v, want 2", v.X)
	}
}

func TestInterpolateOutOfRangeReadsZero(t *testing.T) {
	s, g := uniformState(4, 5, 5, 5)
	v := Velocity(g, s, Vec3{-100, -100, -100})
	if v.X != 0 || v.Y != 0 || v.Z != 0 {
		t.Errorf("Velocity far outside the domain = %+v, want zero vector", v)
	}
}

func TestCurlOfUniformFieldIsZero(t *testing.T) {
	s, g := uniformState(6, 1, 1, 1)
	c := Curl(g, s, Vec3{3, 3, 3})
	if c.Length() > 1e-9 {
		t.Errorf("Curl of a uniform field = %+v, want ~0", c)
	}
}

func TestTraceStreamlinesAdvectsWithFlow(t *testing.T) {
	s, g := uniformState(8, 1, 0, 0)
	seeds := []Vec3{{1, 4, 4}}
	trajs := TraceStreamlines(g, s, seeds, 0.5, 10)
	if len(trajs) != 1 {
		t.Fatalf("len(trajs) = %d, want 1", len(trajs))
	}
	traj := trajs[0]
	if len(traj.Positions) < 2 {
		t.Fatalf("expected particle to advance at least one step, got %d positions", len(traj.Positions))
	}
	first, last := traj.Positions[0], traj.Positions[len(traj.Positions)-1]
	if last.X <= first.X {
		t.Errorf("particle did not advect downstream: first=%v last=%v", first.X, last.X)
	}
}

func TestTraceStreamlinesStopsAtDomainBoundary(t *testing.T) {
	s, g := uniformState(4, 10, 0, 0)
	seeds := []Vec3{{3.5, 2, 2}}
	trajs := TraceStreamlines(g, s, seeds, 1.0, 100)
	traj := trajs[0]
	for _, p := range traj.Positions {
		if p.X > g.Size.X {
			t.Errorf("position %v escaped the domain (size %v)", p, g.Size.X)
		}
	}
	if len(traj.Positions) == 100+1 {
		t.Errorf("expected the fast particle to exit before maxSteps, got the full step count")
	}
}

func TestTracePathlinesAdvancesOneStepPerSnapshot(t *testing.T) {
	s1, g := uniformState(8, 1, 0, 0)
	s2, _ := uniformState(8, 1, 0, 0)
	trajs := TracePathlines(g, []*grid.State{s1, s2}, []Vec3{{1, 4, 4}}, 0.5)
	if len(trajs[0].Positions) != 2 {
		t.Errorf("len(Positions) = %d, want 2 (one per snapshot)", len(trajs[0].Positions))
	}
}
