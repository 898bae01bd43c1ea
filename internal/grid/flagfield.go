package grid

import "fmt"

// FlagField is the cell-centered flag array, shaped
// (imax+2)×(jmax+2)×(kmax+2) like P and T.
type FlagField struct {
	Nx, Ny, Nz int
	data       []Flag
}

// NewFlagField allocates a flag field with every cell defaulting to FLUID.
func NewFlagField(nx, ny, nz int) *FlagField {
	return &FlagField{Nx: nx, Ny: ny, Nz: nz, data: make([]Flag, nx*ny*nz)}
}

func (f *FlagField) index(i, j, k int) int {
	return (i*f.Ny+j)*f.Nz + k
}

// InBounds reports whether (i, j, k) is a valid index into f.
func (f *FlagField) InBounds(i, j, k int) bool {
	return i >= 0 && i < f.Nx && j >= 0 && j < f.Ny && k >= 0 && k < f.Nz
}

// At returns the flag at (i, j, k).
func (f *FlagField) At(i, j, k int) Flag {
	if !f.InBounds(i, j, k) {
		panic(fmt.Sprintf("grid: index (%d,%d,%d) out of bounds for shape (%d,%d,%d)", i, j, k, f.Nx, f.Ny, f.Nz))
	}
	return f.data[f.index(i, j, k)]
}

// Set assigns the flag at (i, j, k).
func (f *FlagField) Set(i, j, k int, v Flag) {
	if !f.InBounds(i, j, k) {
		panic(fmt.Sprintf("grid: index (%d,%d,%d) out of bounds for shape (%d,%d,%d)", i, j, k, f.Nx, f.Ny, f.Nz))
	}
	f.data[f.index(i, j, k)] = v
}
