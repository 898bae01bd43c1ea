// Package scenario loads the TOML-flavored run configuration and holds
// the per-scenario initializer table that seeds a fresh grid.State's
// geometry, initial fields, and body-force direction before the driver
// loop starts. Config loading follows a ConfigData-style
// BurntSushi/toml loader, with flag defaults matching the reference
// argument parser's.
package scenario

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ctessum/navier3d/internal/grid"
)

// Config is every run parameter the scenario file and CLI flags supply,
// decoded from a TOML file. Field names match the flags
// ArgumentParser.cpp parses, Go-cased.
type Config struct {
	Scenario string
	Backend  string // "cpu", "distributed", or "device"

	Imax, Jmax, Kmax          int
	XLength, YLength, ZLength grid.Real

	Re, Pr, Alpha, Beta grid.Real
	Omega, Eps          grid.Real
	IterMax             int
	Tau                 grid.Real
	GX, GY, GZ          grid.Real
	UseTemperature      bool
	Th, Tc              grid.Real

	TEnd, DtWrite grid.Real

	NumParticles     int
	TraceStreamlines bool
	TraceStreaklines bool
	TracePathlines   bool

	OutputFormat string
	OutputDir    string

	IProc, JProc, KProc int
	NumOmpHybridThreads int

	GeometryFile string
}

// Default returns the configuration ArgumentParser.cpp falls back to when
// a flag is omitted: scenario "inflow_test", vtk output, 400 particles,
// every trace kind off.
func Default() Config {
	return Config{
		Scenario:     "inflow_test",
		Backend:      "cpu",
		Imax:         32, Jmax: 32, Kmax: 32,
		XLength:      1, YLength: 1, ZLength: 1,
		Re:           1000, Pr: 7, Alpha: 0.9, Beta: 0,
		Omega:        1.7, Eps: 1e-3, IterMax: 100, Tau: 0.5,
		GX: 0, GY: 0, GZ: 0,
		Th: 1, Tc: 0,
		TEnd: 10, DtWrite: 0.5,
		NumParticles: 400,
		OutputFormat: "vtk",
		OutputDir:    ".",
		IProc: 1, JProc: 1, KProc: 1,
		NumOmpHybridThreads: 1,
	}
}

// Load reads and decodes a TOML configuration file on top of Default(),
// so an omitted field keeps its default rather than zeroing out.
func Load(path string) (Config, error) {
	cfg := Default()
	bytes, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("configuration file %q does not exist", path)
		}
		return Config{}, fmt.Errorf("reading configuration file: %w", err)
	}
	if _, err := toml.Decode(string(bytes), &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing configuration file %q: %w", path, err)
	}
	cfg.OutputDir = os.ExpandEnv(cfg.OutputDir)
	cfg.GeometryFile = os.ExpandEnv(cfg.GeometryFile)
	if grid.FloatBits == 32 {
		cfg.Eps *= 2
	}
	return cfg, nil
}

// Dims derives the grid.Dims this configuration describes.
func (c Config) Dims() grid.Dims {
	return grid.NewDims(c.Imax, c.Jmax, c.Kmax, c.XLength, c.YLength, c.ZLength, 0, 0, 0)
}
