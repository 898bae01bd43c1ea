// Package cli builds the cobra command tree: a "run" subcommand that
// loads a scenario.Config from a TOML file, applies flag overrides, and
// drives one simulation end to end. A RootCmd carries a persistent
// --config flag; the run subcommand loads that file when it starts, and
// its own flags override the loaded values before the run starts.
package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ctessum/navier3d/internal/backend"
	"github.com/ctessum/navier3d/internal/backend/cpu"
	"github.com/ctessum/navier3d/internal/backend/device"
	"github.com/ctessum/navier3d/internal/backend/distributed"
	"github.com/ctessum/navier3d/internal/driver"
	"github.com/ctessum/navier3d/internal/geometry"
	"github.com/ctessum/navier3d/internal/grid"
	"github.com/ctessum/navier3d/internal/output"
	"github.com/ctessum/navier3d/internal/particle"
	"github.com/ctessum/navier3d/internal/scenario"
)

var configFile string

// flags holds every command-line override. Zero values
// mean "use whatever scenario.Load / scenario.Default already set";
// applyFlags only overwrites a field when its flag was explicitly set on
// cmd, so an omitted flag never clobbers a configured value with a zero.
type flags struct {
	scenarioName, solver, outputFormat, linSolver     string
	output                                            string
	numParticles                                      int
	traceStreamlines, traceStreaklines, tracePathlines bool
	iproc, jproc, kproc                                int
	blockSizeX, blockSizeY, blockSizeZ, blockSize1D    int
	openclPlatformID, numOmpHybridThreads              int
}

var f flags

// RootCmd is the navier3d command-line entry point.
var RootCmd = &cobra.Command{
	Use:   "navier3d",
	Short: "A staggered-grid incompressible Navier-Stokes solver.",
	Long:  "navier3d integrates the 3-D incompressible Navier-Stokes equations with Boussinesq thermal coupling over a staggered Cartesian grid, using a Chorin-style projection method.",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation to completion.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimulation()
	},
}

func init() {
	RootCmd.AddCommand(runCmd)
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "navier3d.toml", "configuration file location")

	runCmd.Flags().StringVar(&f.scenarioName, "scenario", "", "scenario name (driven_cavity, flow_over_step, single_tower, terrain_1, fuji_san, zugspitze, natural_convection, rayleigh_benard)")
	runCmd.Flags().StringVar(&f.solver, "solver", "", "backend to run on: cpu, distributed, or device")
	runCmd.Flags().StringVar(&f.outputFormat, "outputformat", "", "snapshot output format: vtk, vtk-ascii, vtk-binary, or netcdf")
	runCmd.Flags().StringVar(&f.output, "output", "", "output directory")
	runCmd.Flags().StringVar(&f.linSolver, "linsolver", "", "pressure solver name; accepted but not read: the backend picked by --solver fixes the pressure solver (sor for cpu/distributed, jacobi for device)")
	runCmd.Flags().IntVar(&f.numParticles, "numparticles", 0, "number of particles to seed for trajectory tracing")
	runCmd.Flags().BoolVar(&f.traceStreamlines, "tracestreamlines", false, "trace streamlines from the final velocity field")
	runCmd.Flags().BoolVar(&f.traceStreaklines, "tracestreaklines", false, "trace streaklines over the run's recorded snapshots")
	runCmd.Flags().BoolVar(&f.tracePathlines, "tracepathlines", false, "trace pathlines over the run's recorded snapshots")
	runCmd.Flags().IntVar(&f.iproc, "iproc", 0, "distributed backend: i-axis decomposition count")
	runCmd.Flags().IntVar(&f.jproc, "jproc", 0, "distributed backend: j-axis decomposition count (must be 1)")
	runCmd.Flags().IntVar(&f.kproc, "kproc", 0, "distributed backend: k-axis decomposition count (must be 1)")
	runCmd.Flags().IntVar(&f.blockSizeX, "blockSizeX", 0, "device backend: tile size along x")
	runCmd.Flags().IntVar(&f.blockSizeY, "blockSizeY", 0, "device backend: tile size along y")
	runCmd.Flags().IntVar(&f.blockSizeZ, "blockSizeZ", 0, "device backend: tile size along z")
	runCmd.Flags().IntVar(&f.blockSize1D, "blockSize1D", 0, "device backend: flat 1-D tile size, applied to all three axes when set")
	runCmd.Flags().IntVar(&f.openclPlatformID, "openclPlatformId", 0, "device backend: platform selector, accepted for interface parity and otherwise unused (no OpenCL binding exists in this port, see DESIGN.md)")
	runCmd.Flags().IntVar(&f.numOmpHybridThreads, "numOmpHybridThreads", 0, "worker-pool size for the cpu and device backends")
}

// loadConfig reads configFile on top of scenario.Default() and applies
// every explicitly-set flag, matching ArgumentParser.cpp's "flags win
// over the config file" precedence.
func loadConfig(cmd *cobra.Command) (scenario.Config, error) {
	cfg := scenario.Default()
	if loaded, err := scenario.Load(configFile); err == nil {
		cfg = loaded
	} else {
		logrus.WithError(err).Warn("using default configuration; could not load configuration file")
	}

	set := func(name string) bool { return cmd.Flags().Changed(name) }
	if set("scenario") {
		cfg.Scenario = f.scenarioName
	}
	if set("solver") {
		cfg.Backend = f.solver
	}
	if set("outputformat") {
		cfg.OutputFormat = f.outputFormat
	}
	if set("output") {
		cfg.OutputDir = os.ExpandEnv(f.output)
	}
	if set("numparticles") {
		cfg.NumParticles = f.numParticles
	}
	if set("tracestreamlines") {
		cfg.TraceStreamlines = f.traceStreamlines
	}
	if set("tracestreaklines") {
		cfg.TraceStreaklines = f.traceStreaklines
	}
	if set("tracepathlines") {
		cfg.TracePathlines = f.tracePathlines
	}
	if set("iproc") {
		cfg.IProc = f.iproc
	}
	if set("jproc") {
		cfg.JProc = f.jproc
	}
	if set("kproc") {
		cfg.KProc = f.kproc
	}
	if set("numOmpHybridThreads") {
		cfg.NumOmpHybridThreads = f.numOmpHybridThreads
	}
	return cfg, nil
}

// blockSize resolves the device backend's tile shape from the
// --blockSizeX/Y/Z and --blockSize1D flags, the latter applying uniformly
// when set, matching ArgumentParser.cpp's 1-D/3-D block-size pair.
func blockSize() device.BlockSize {
	if f.blockSize1D > 0 {
		return device.BlockSize{X: f.blockSize1D, Y: f.blockSize1D, Z: f.blockSize1D}
	}
	return device.BlockSize{X: f.blockSizeX, Y: f.blockSizeY, Z: f.blockSizeZ}
}

func buildSolver(s *grid.State, cfg scenario.Config) (backend.Solver, error) {
	threads := cfg.NumOmpHybridThreads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	ctx := backend.ExecutionContext{
		IProc: cfg.IProc, JProc: cfg.JProc, KProc: cfg.KProc,
		Threads: threads,
	}
	bcfg := backend.FromScenario(cfg)

	switch cfg.Backend {
	case "", "cpu":
		return cpu.New(s, bcfg, ctx), nil
	case "distributed":
		return distributed.New(s, bcfg, ctx)
	case "device":
		return device.New(s, bcfg, ctx, blockSize()), nil
	default:
		return nil, fmt.Errorf("cli: unknown backend %q", cfg.Backend)
	}
}

func runSimulation() error {
	cfg, err := loadConfig(runCmd)
	if err != nil {
		return err
	}

	s := grid.NewState(cfg.Dims())
	gx, gy, gz := scenario.Initialize(s, cfg)
	cfg.GX, cfg.GY, cfg.GZ = gx, gy, gz

	if cfg.GeometryFile != "" {
		voxels, err := geometry.Load(cfg.GeometryFile)
		if err != nil {
			return fmt.Errorf("cli: loading geometry file: %w", err)
		}
		if err := geometry.Apply(s, voxels); err != nil {
			return fmt.Errorf("cli: applying geometry file: %w", err)
		}
	}

	solver, err := buildSolver(s, cfg)
	if err != nil {
		return fmt.Errorf("cli: building backend: %w", err)
	}
	defer solver.Close()

	w, err := output.New(cfg)
	if err != nil {
		return fmt.Errorf("cli: building output writer: %w", err)
	}
	defer w.Close()

	logrus.WithFields(logrus.Fields{
		"scenario": cfg.Scenario, "backend": cfg.Backend,
		"imax": cfg.Imax, "jmax": cfg.Jmax, "kmax": cfg.Kmax,
	}).Info("starting simulation")

	tracing := cfg.TraceStreamlines || cfg.TraceStreaklines || cfg.TracePathlines
	result, err := driver.Run(context.Background(), solver, driver.Params{
		TEnd: cfg.TEnd, DtWrite: cfg.DtWrite, UseTemperature: cfg.UseTemperature,
		RecordSnapshots: tracing && (cfg.TraceStreaklines || cfg.TracePathlines),
	}, w)
	if err != nil {
		return fmt.Errorf("cli: simulation run failed: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"steps": result.Steps, "finalTime": float64(result.FinalTime),
	}).Info("simulation finished")

	if tracing {
		if err := traceParticles(cfg, solver, result.Snapshots); err != nil {
			logrus.WithError(err).Error("particle tracing failed")
		}
	}
	return nil
}

// traceParticles seeds up to cfg.NumParticles points evenly across the
// domain's interior (see particle.SeedGrid) and traces every requested
// trajectory kind: streamlines through the final velocity field alone,
// pathlines and streaklines through the sequence of snapshots the run
// recorded at its output cadence. Streamlines and pathlines each go to one
// .obj polyline file in the output directory; streaklines go to one .obj
// file per seed.
func traceParticles(cfg scenario.Config, solver backend.Solver, snapshots []*grid.State) error {
	s := solver.GetDataForOutput()
	g := &particle.Grid{
		Origin: particle.Vec3{X: s.Dims.XOrigin, Y: s.Dims.YOrigin, Z: s.Dims.ZOrigin},
		Size:   particle.Vec3{X: s.Dims.XLength, Y: s.Dims.YLength, Z: s.Dims.ZLength},
		Imax: s.Dims.Imax, Jmax: s.Dims.Jmax, Kmax: s.Dims.Kmax,
		Dx: s.Dims.Dx, Dy: s.Dims.Dy, Dz: s.Dims.Dz,
	}
	seeds := particle.SeedGrid(g, cfg.NumParticles)
	dt := cfg.Tau * g.Dx

	if cfg.TraceStreamlines {
		traj := particle.TraceStreamlines(*g, s, seeds, dt, 1000)
		if err := output.WriteTrajectoriesOBJ(cfg.OutputDir, "streamlines", traj); err != nil {
			return err
		}
	}
	if cfg.TracePathlines {
		traj := particle.TracePathlines(*g, snapshots, seeds, dt)
		if err := output.WriteTrajectoriesOBJ(cfg.OutputDir, "pathlines", traj); err != nil {
			return err
		}
	}
	if cfg.TraceStreaklines {
		for i, seed := range seeds {
			traj := particle.TraceStreaklines(*g, snapshots, seed, dt)
			name := fmt.Sprintf("streaklines_%03d", i)
			if err := output.WriteTrajectoriesOBJ(cfg.OutputDir, name, traj); err != nil {
				return err
			}
		}
	}
	return nil
}
