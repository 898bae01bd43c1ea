package particle

import "github.com/ctessum/navier3d/internal/grid"

// Trajectory is one traced line: a sequence of positions plus the two
// per-sample attributes pushTrajectoryAttributes records in
// TrajectoryAttributes.cpp — vorticity magnitude and velocity magnitude.
type Trajectory struct {
	Positions    []Vec3
	VorticityMag []grid.Real
	VelocityMag  []grid.Real
}

// Kind selects which of the three classical particle-tracing products is
// produced from a seed set.
type Kind int

const (
	// Streamline traces the instantaneous velocity field of a single,
	// frozen snapshot — every seed is advanced through the same U/V/W/P/T,
	// matching Main.cpp's end-of-run streamlineTracer.trace call.
	Streamline Kind = iota
	// Pathline advances one particle per seed across a sequence of
	// snapshots taken at successive timesteps, one integration step per
	// snapshot.
	Pathline
	// Streakline re-seeds the same point at every recorded snapshot and
	// advects every active particle through the snapshots that follow,
	// producing the line connecting all particles that have ever passed
	// through the seed point.
	Streakline
)

func pushAttributes(g Grid, s *grid.State, traj *Trajectory, pos Vec3) {
	traj.VorticityMag = append(traj.VorticityMag, Curl(g, s, pos).Length())
	traj.VelocityMag = append(traj.VelocityMag, Velocity(g, s, pos).Length())
}

func inDomain(g Grid, p Vec3) bool {
	return p.X >= g.Origin.X && p.X <= g.Origin.X+g.Size.X &&
		p.Y >= g.Origin.Y && p.Y <= g.Origin.Y+g.Size.Y &&
		p.Z >= g.Origin.Z && p.Z <= g.Origin.Z+g.Size.Z
}

// rk2Step advances pos by one step of size dt through the velocity field
// of a single state snapshot using the midpoint method: a half-step
// Euler prediction followed by a full step using the velocity sampled at
// the midpoint. When the midpoint falls outside the domain, it takes a
// full Euler step with the velocity at pos instead.
func rk2Step(g Grid, s *grid.State, pos Vec3, dt grid.Real) Vec3 {
	v0 := Velocity(g, s, pos)
	mid := pos.Add(v0.Scale(dt * 0.5))
	if !inDomain(g, mid) {
		return pos.Add(v0.Scale(dt))
	}
	vm := Velocity(g, s, mid)
	return pos.Add(vm.Scale(dt))
}

// TraceStreamlines integrates one trajectory per seed through a single
// frozen snapshot, stopping at maxSteps or when the particle leaves the
// domain. This is the trace kind run once at end-of-run against the
// final live state.
func TraceStreamlines(g Grid, s *grid.State, seeds []Vec3, dt grid.Real, maxSteps int) []Trajectory {
	out := make([]Trajectory, len(seeds))
	for i, seed := range seeds {
		traj := &out[i]
		pos := seed
		traj.Positions = append(traj.Positions, pos)
		pushAttributes(g, s, traj, pos)
		for step := 0; step < maxSteps; step++ {
			next := rk2Step(g, s, pos, dt)
			if !inDomain(g, next) {
				break
			}
			pos = next
			traj.Positions = append(traj.Positions, pos)
			pushAttributes(g, s, traj, pos)
		}
	}
	return out
}

// TracePathlines advances one particle per seed across a sequence of
// state snapshots, one RK2 step per snapshot transition — the snapshots
// slice is the sequence of states captured over the run at the
// configured output cadence.
func TracePathlines(g Grid, snapshots []*grid.State, seeds []Vec3, dt grid.Real) []Trajectory {
	out := make([]Trajectory, len(seeds))
	for i, seed := range seeds {
		traj := &out[i]
		pos := seed
		for _, snap := range snapshots {
			if !inDomain(g, pos) {
				break
			}
			pushAttributes(g, snap, traj, pos)
			traj.Positions = append(traj.Positions, pos)
			pos = rk2Step(g, snap, pos, dt)
		}
	}
	return out
}

// TraceStreaklines re-seeds the given point at every snapshot and
// advects every still-active particle through the remaining snapshots,
// returning one Trajectory per seeding generation — concatenating them
// traces out the classical streakline through the seed point.
func TraceStreaklines(g Grid, snapshots []*grid.State, seed Vec3, dt grid.Real) []Trajectory {
	out := make([]Trajectory, 0, len(snapshots))
	for start := range snapshots {
		traj := Trajectory{}
		pos := seed
		for _, snap := range snapshots[start:] {
			if !inDomain(g, pos) {
				break
			}
			pushAttributes(g, snap, &traj, pos)
			traj.Positions = append(traj.Positions, pos)
			pos = rk2Step(g, snap, pos, dt)
		}
		out = append(out, traj)
	}
	return out
}
