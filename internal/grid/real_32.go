//go:build real32

package grid

// Real is the scalar type used for every field value. This build carries
// the real32 tag, so Real is float32 and scenario.Load doubles the Eps it
// reads from a configuration file.
type Real = float32

// FloatBits reports the width of Real, used to decide whether eps needs
// doubling per the REAL_FLOAT numerics toggle.
const FloatBits = 32
