// Package geometry loads the voxel obstacle maps the terrain scenarios
// (terrain_1, fuji_san, zugspitze) use in place of a hand-coded box,
// via a GeometryFile option. Main.cpp calls this step
// initFlagFromGeometryFile before the main loop starts; it is not itself
// present in the retrieved original_source, so the on-disk layout below
// (a whitespace-separated column of per-cell integer codes, row-major in
// i,j,k, one header line of "imax jmax kmax") is this port's own design,
// decided here rather than left an Open Question. The in-memory
// representation is github.com/ctessum/sparse's DenseArrayInt, the
// same dense voxel container used elsewhere in the retrieved pack for
// gridded fields, folded into a grid.FlagField once loaded.
package geometry

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/ctessum/sparse"

	"github.com/ctessum/navier3d/internal/grid"
)

// Code is the on-disk cell code a geometry file stores per voxel.
type Code int

const (
	CodeFluid Code = iota
	CodeNoSlip
	CodeFreeSlip
	CodeOutflow
	CodeInflow
	CodeCoupling
)

func (c Code) kind() grid.Flag {
	switch c {
	case CodeNoSlip:
		return grid.KindNoSlip
	case CodeFreeSlip:
		return grid.KindFreeSlip
	case CodeOutflow:
		return grid.KindOutflow
	case CodeInflow:
		return grid.KindInflow
	case CodeCoupling:
		return grid.KindCoupling
	default:
		return grid.KindFluid
	}
}

// Load reads a voxel geometry file and returns its interior cell codes as
// a dense imax×jmax×kmax array (ghost layers excluded; callers add those
// via Apply).
func Load(path string) (*sparse.DenseArrayInt, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geometry: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses the header and body of a geometry file from r.
func Decode(r io.Reader) (*sparse.DenseArrayInt, error) {
	br := bufio.NewReader(r)
	var imax, jmax, kmax int
	if _, err := fmt.Fscan(br, &imax, &jmax, &kmax); err != nil {
		return nil, fmt.Errorf("geometry: reading header: %w", err)
	}
	if imax <= 0 || jmax <= 0 || kmax <= 0 {
		return nil, fmt.Errorf("geometry: non-positive dimension (%d,%d,%d)", imax, jmax, kmax)
	}
	a := sparse.ZerosDenseInt(imax, jmax, kmax)
	for i := 0; i < imax; i++ {
		for j := 0; j < jmax; j++ {
			for k := 0; k < kmax; k++ {
				var code int
				if _, err := fmt.Fscan(br, &code); err != nil {
					return nil, fmt.Errorf("geometry: reading cell (%d,%d,%d): %w", i, j, k, err)
				}
				a.Set(code, i, j, k)
			}
		}
	}
	return a, nil
}

// Apply folds a's interior codes into s.Flag, leaving the outer ghost
// layer s already carries (set by the scenario's wall initializer)
// untouched, then derives every obstacle cell's face bits from its
// neighbors' kinds and validates the thin-wall rule. It returns an
// error naming the first offending cell rather than
// silently producing an inconsistent solve.
func Apply(s *grid.State, a *sparse.DenseArrayInt) error {
	d := s.Dims
	shape := a.Shape
	if shape[0] != d.Imax || shape[1] != d.Jmax || shape[2] != d.Kmax {
		return fmt.Errorf("geometry: shape %v does not match domain (%d,%d,%d)", shape, d.Imax, d.Jmax, d.Kmax)
	}
	for i := 1; i <= d.Imax; i++ {
		for j := 1; j <= d.Jmax; j++ {
			for k := 1; k <= d.Kmax; k++ {
				code := Code(a.Get(i-1, j-1, k-1))
				s.Flag.Set(i, j, k, grid.NewFlag(code.kind()))
			}
		}
	}
	deriveFaceBits(s)
	return checkThinWalls(s)
}

// fluidAt reports whether (i,j,k) is a fluid cell, per the domain's
// current flag field (including the ghost layer the wall initializer
// already populated).
func fluidAt(s *grid.State, i, j, k int) bool {
	if !s.Flag.InBounds(i, j, k) {
		return false
	}
	return s.Flag.At(i, j, k).IsFluid()
}

// deriveFaceBits sets every interior obstacle cell's six face bits from
// whether its neighbor in that direction is a fluid cell, the same
// "true iff neighbor is fluid" rule wallBox's inline face-bit assignment
// follows for the box scenarios (internal/scenario/scenarios.go).
func deriveFaceBits(s *grid.State) {
	d := s.Dims
	for i := 1; i <= d.Imax; i++ {
		for j := 1; j <= d.Jmax; j++ {
			for k := 1; k <= d.Kmax; k++ {
				f := s.Flag.At(i, j, k)
				if !f.IsObstacle() {
					continue
				}
				f = f.WithFace(grid.FaceL, fluidAt(s, i-1, j, k))
				f = f.WithFace(grid.FaceR, fluidAt(s, i+1, j, k))
				f = f.WithFace(grid.FaceD, fluidAt(s, i, j-1, k))
				f = f.WithFace(grid.FaceU, fluidAt(s, i, j+1, k))
				f = f.WithFace(grid.FaceB, fluidAt(s, i, j, k-1))
				f = f.WithFace(grid.FaceF, fluidAt(s, i, j, k+1))
				s.Flag.Set(i, j, k, f)
			}
		}
	}
}

// checkThinWalls validates the rule that no obstacle cell may be exactly
// one cell thick along any axis (both opposing face bits set).
func checkThinWalls(s *grid.State) error {
	d := s.Dims
	for i := 1; i <= d.Imax; i++ {
		for j := 1; j <= d.Jmax; j++ {
			for k := 1; k <= d.Kmax; k++ {
				f := s.Flag.At(i, j, k)
				if f.IsObstacle() && !f.ThinWallOK() {
					return fmt.Errorf("geometry: thin wall at cell (%d,%d,%d)", i, j, k)
				}
			}
		}
	}
	return nil
}
