package particle

import (
	"math"

	"github.com/ctessum/navier3d/internal/grid"
)

// SeedGrid distributes up to n seed points in a cubic lattice over the
// domain's interior: per×per×per points with per = ⌊∛n⌋, inset half a
// lattice spacing from every wall so a seed never starts exactly on a
// no-slip boundary. It is the Go analogue of
// Main.cpp's uniform-grid particle seeding ahead of traceStreamlines.
func SeedGrid(g *Grid, n int) []Vec3 {
	if n <= 0 {
		return nil
	}
	per := int(math.Cbrt(float64(n)))
	if per < 1 {
		per = 1
	}
	seeds := make([]Vec3, 0, per*per*per)
	for a := 0; a < per; a++ {
		for b := 0; b < per; b++ {
			for c := 0; c < per; c++ {
				if len(seeds) >= n {
					return seeds
				}
				seeds = append(seeds, Vec3{
					X: g.Origin.X + g.Size.X*(grid.Real(a)+0.5)/grid.Real(per),
					Y: g.Origin.Y + g.Size.Y*(grid.Real(b)+0.5)/grid.Real(per),
					Z: g.Origin.Z + g.Size.Z*(grid.Real(c)+0.5)/grid.Real(per),
				})
			}
		}
	}
	return seeds
}
