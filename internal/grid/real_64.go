//go:build !real32

package grid

// Real is the scalar type used for every field value. Building with the
// real32 tag switches it to float32, and scenario.Load then doubles the
// Eps it reads from a configuration file.
type Real = float64

// FloatBits reports the width of Real, used to decide whether eps needs
// doubling per the REAL_FLOAT numerics toggle.
const FloatBits = 64
