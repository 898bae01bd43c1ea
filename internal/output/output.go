package output

import (
	"fmt"

	"github.com/ctessum/navier3d/internal/driver"
	"github.com/ctessum/navier3d/internal/scenario"
)

// New builds the Writer the OutputFormat option selects: "vtk" and
// "vtk-ascii" both produce ASCII legacy VTK, "vtk-binary" produces
// binary legacy VTK, and "netcdf" produces one NetCDF file per snapshot.
func New(cfg scenario.Config) (driver.Writer, error) {
	switch cfg.OutputFormat {
	case "vtk", "vtk-ascii", "":
		return NewVTKWriter(cfg.OutputDir, cfg.Scenario, false), nil
	case "vtk-binary":
		return NewVTKWriter(cfg.OutputDir, cfg.Scenario, true), nil
	case "netcdf":
		return NewNetCDFWriter(cfg.OutputDir, cfg.Scenario), nil
	default:
		return nil, fmt.Errorf("output: unknown output format %q", cfg.OutputFormat)
	}
}
