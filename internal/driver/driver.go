// Package driver runs the main timestep loop over a backend.Solver,
// logging progress with logrus, and invoking a Writer at the configured
// output cadence. It is the Go analogue of Main.cpp's while loop.
package driver

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ctessum/navier3d/internal/backend"
	"github.com/ctessum/navier3d/internal/grid"
)

// Writer is the snapshot output contract. internal/output implements it
// for vtk/vtk-binary/vtk-ascii/netcdf.
type Writer interface {
	WriteTimestep(step int, t grid.Real, s *grid.State) error
	Close() error
}

// Params are the loop's scalar controls, independent of which backend or
// writer is plugged in.
type Params struct {
	TEnd, DtWrite  grid.Real
	UseTemperature bool
	ConvergeEps    grid.Real // 0 disables the steady-state convergence check

	// RecordSnapshots retains a Clone of the output state at every write
	// cadence (the same cadence w.WriteTimestep fires at), for pathline
	// and streakline tracing after the run, which need the sequence of
	// states a run passed through rather than just its final one.
	RecordSnapshots bool
}

// Result summarizes a completed run for the caller (cmd/navier3d prints
// it, tests assert on it).
type Result struct {
	Steps     int
	FinalTime grid.Real
	Converged bool

	// Snapshots holds one Clone per recorded timestep, in order, when
	// Params.RecordSnapshots was set.
	Snapshots []*grid.State
}

// Run drives solver through the fixed per-step operation sequence
// Main.cpp's while loop uses: boundary → scenario inflow → dt →
// [temperature] → FGH → RS → SOR → UVW, writing a snapshot every DtWrite
// of simulated time and stopping at TEnd, at ctx.Err(), or once a
// ConvergenceMonitor reports steady state.
func Run(ctx context.Context, solver backend.Solver, p Params, w Writer) (Result, error) {
	var (
		t, tWrite grid.Real
		step      int
		mon       *ConvergenceMonitor
		snapshots []*grid.State
	)
	if p.ConvergeEps > 0 {
		mon = NewConvergenceMonitor(p.ConvergeEps, 5)
	}

	for t < p.TEnd {
		select {
		case <-ctx.Done():
			return Result{Steps: step, FinalTime: t, Snapshots: snapshots}, ctx.Err()
		default:
		}

		solver.SetBoundaryValues()
		solver.SetBoundaryValuesScenarioSpecific()
		dt := solver.CalculateDt()

		if p.UseTemperature {
			solver.CalculateTemperature(dt)
		}
		solver.CalculateFGH(dt)
		solver.CalculateRS(dt)
		iters, residual := solver.ExecuteSORSolver()
		solver.CalculateUVW(dt)

		t += dt
		tWrite += dt
		step++

		logrus.WithFields(logrus.Fields{
			"step": step, "t": float64(t), "dt": float64(dt),
			"sorIters": iters, "residual": float64(residual),
		}).Debug("completed timestep")

		if residual >= solver.ConvergenceEps() {
			logrus.WithFields(logrus.Fields{
				"step": step, "sorIters": iters, "residual": float64(residual),
			}).Warn("SOR did not converge within itermax, continuing with best-effort pressure field")
		}

		if tWrite >= p.DtWrite {
			out := solver.GetDataForOutput()
			if w != nil {
				if err := w.WriteTimestep(step, t, out); err != nil {
					logrus.WithError(err).Error("failed to write timestep snapshot")
				}
			}
			if p.RecordSnapshots {
				snapshots = append(snapshots, out.Clone())
			}
			tWrite -= p.DtWrite
		}

		if mon != nil {
			mon.Push(solver.GetDataForOutput().U.Raw())
			if mon.Converged() {
				logrus.WithField("step", step).Info("reached steady state, stopping early")
				return Result{Steps: step, FinalTime: t, Converged: true, Snapshots: snapshots}, nil
			}
		}
	}
	return Result{Steps: step, FinalTime: t, Snapshots: snapshots}, nil
}
