package driver

import (
	"gonum.org/v1/gonum/floats"

	"github.com/ctessum/navier3d/internal/grid"
)

// ConvergenceMonitor watches a scalar field (the flattened U velocity
// component, by convention) across successive timesteps and declares
// convergence once its L2 distance from the previous snapshot stays
// below eps for `window` consecutive pushes — the steady-state check
// Run applies when Params.ConvergeEps > 0. Grounded on gonum.org/v1/gonum/floats, reserved in the
// example pack for exactly this kind of array-distance reduction.
type ConvergenceMonitor struct {
	eps       float64
	window    int
	prev      []float64
	run       int
	hasPrev   bool
	converged bool
}

// NewConvergenceMonitor builds a monitor that requires `window`
// consecutive below-eps pushes before reporting convergence, so a single
// lucky quiet step doesn't stop the run early.
func NewConvergenceMonitor(eps float64, window int) *ConvergenceMonitor {
	if window < 1 {
		window = 1
	}
	return &ConvergenceMonitor{eps: eps, window: window}
}

// Push records one field snapshot and compares it against the previous
// push with floats.Distance under the Euclidean norm. raw is converted
// to float64 so the same monitor works under either numeric build tag.
func (m *ConvergenceMonitor) Push(raw []grid.Real) {
	cur := make([]float64, len(raw))
	for i, v := range raw {
		cur[i] = float64(v)
	}
	if m.hasPrev && len(m.prev) == len(cur) {
		dist := floats.Distance(cur, m.prev, 2)
		if dist < m.eps {
			m.run++
		} else {
			m.run = 0
		}
		m.converged = m.run >= m.window
	}
	m.prev = cur
	m.hasPrev = true
}

// Converged reports whether the last `window` pushes all stayed under eps.
func (m *ConvergenceMonitor) Converged() bool { return m.converged }
