// Package boundary implements the boundary engine: outer wall
// conditions, per-scenario inflow overlays, and interior-obstacle
// reflections for U, V, W, and T.
package boundary

import "github.com/ctessum/navier3d/internal/grid"

// Config carries the scenario name used to select the inflow overlay,
// plus the two wall temperatures the Dirichlet
// ghost-temperature reflection on hot and cold walls needs. Apply/ApplyBounds read the actual
// per-face wall kind (no-slip, free-slip, outflow, hot, cold) from each
// ghost cell's grid.Flag, which the scenario initializer stamps once at
// setup — Config itself carries no redundant copy of that layout.
type Config struct {
	Scenario string

	// Th, Tc are the hot/cold wall temperatures used by the Dirichlet
	// ghost-temperature reflection (ghost = 2·Tw − interior).
	Th, Tc grid.Real
}
