package grid

// Dims describes the uniform Cartesian box: a physical size and origin,
// divided into imax·jmax·kmax equal cells.
type Dims struct {
	Imax, Jmax, Kmax int

	XLength, YLength, ZLength Real
	XOrigin, YOrigin, ZOrigin Real

	Dx, Dy, Dz Real
}

// NewDims derives per-cell spacing from the box extent and cell counts.
func NewDims(imax, jmax, kmax int, xLength, yLength, zLength, xOrigin, yOrigin, zOrigin Real) Dims {
	return Dims{
		Imax: imax, Jmax: jmax, Kmax: kmax,
		XLength: xLength, YLength: yLength, ZLength: zLength,
		XOrigin: xOrigin, YOrigin: yOrigin, ZOrigin: zOrigin,
		Dx: xLength / Real(imax),
		Dy: yLength / Real(jmax),
		Dz: zLength / Real(kmax),
	}
}
