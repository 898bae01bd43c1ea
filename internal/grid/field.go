package grid

import "fmt"

// Field is a dense, row-major 3-D array of Real values, one of the shapes
// for U, V, W, P, T, F, G, H, or RS (Flag is stored in FlagField instead
// — see flagfield.go).
//
// The indexing arithmetic below is the same scheme
// github.com/ctessum/sparse.DenseArray.Index1d uses (row-major, last
// axis fastest); Field reimplements it directly on Real instead of
// depending on sparse.DenseArray because sparse.DenseArray is hard-wired to
// float64 and Field must support the REAL_FLOAT build-tag switch.
type Field struct {
	Nx, Ny, Nz int
	data       []Real
}

// NewField allocates a zeroed field of the given shape.
func NewField(nx, ny, nz int) *Field {
	return &Field{Nx: nx, Ny: ny, Nz: nz, data: make([]Real, nx*ny*nz)}
}

// index converts a 3-D index into the flat offset into data. k is the
// fastest-varying axis, so the contiguous stride is 1 along z.
func (f *Field) index(i, j, k int) int {
	return (i*f.Ny+j)*f.Nz + k
}

// InBounds reports whether (i, j, k) is a valid index into f.
func (f *Field) InBounds(i, j, k int) bool {
	return i >= 0 && i < f.Nx && j >= 0 && j < f.Ny && k >= 0 && k < f.Nz
}

// At returns the value at (i, j, k). It panics on an out-of-range index,
// since every core kernel operates strictly within a field's declared
// shape (ghost layers included) — an out-of-range index there is a
// programming error, not a data condition.
func (f *Field) At(i, j, k int) Real {
	if !f.InBounds(i, j, k) {
		panic(fmt.Sprintf("grid: index (%d,%d,%d) out of bounds for shape (%d,%d,%d)", i, j, k, f.Nx, f.Ny, f.Nz))
	}
	return f.data[f.index(i, j, k)]
}

// AtOrZero returns the value at (i, j, k), or 0 if the index is out of
// range. It is used by the particle kernels, whose corner reads are
// explicitly specified to return 0 out of range.
func (f *Field) AtOrZero(i, j, k int) Real {
	if !f.InBounds(i, j, k) {
		return 0
	}
	return f.data[f.index(i, j, k)]
}

// Set assigns the value at (i, j, k).
func (f *Field) Set(i, j, k int, v Real) {
	if !f.InBounds(i, j, k) {
		panic(fmt.Sprintf("grid: index (%d,%d,%d) out of bounds for shape (%d,%d,%d)", i, j, k, f.Nx, f.Ny, f.Nz))
	}
	f.data[f.index(i, j, k)] = v
}

// Fill sets every element of f to v.
func (f *Field) Fill(v Real) {
	for i := range f.data {
		f.data[i] = v
	}
}

// CopyFrom overwrites f's contents with src's. The two fields must have
// the same shape.
func (f *Field) CopyFrom(src *Field) {
	if f.Nx != src.Nx || f.Ny != src.Ny || f.Nz != src.Nz {
		panic("grid: CopyFrom shape mismatch")
	}
	copy(f.data, src.data)
}

// Raw exposes the backing slice for bulk numeric reductions (timestep,
// residual norms) that want to iterate without repeated 3-D indexing.
func (f *Field) Raw() []Real { return f.data }

// Clone returns an independent copy of f, for callers that need to retain
// a snapshot while the original keeps mutating (pathline/streakline
// tracing records one of these per recorded timestep).
func (f *Field) Clone() *Field {
	data := make([]Real, len(f.data))
	copy(data, f.data)
	return &Field{Nx: f.Nx, Ny: f.Ny, Nz: f.Nz, data: data}
}
