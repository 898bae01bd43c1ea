package grid

// State owns every field buffer for one simulation: allocated once at
// driver entry after imax, jmax, kmax are known, zero-initialized,
// filled in by a scenario initializer, mutated by the core, and freed at
// driver exit (by falling out of scope — Go has no explicit free).
type State struct {
	Dims Dims

	U, V, W *Field // face-centered velocities
	P       *Field // cell-centered pressure
	PTemp   *Field // SOR/Jacobi work buffer, same shape as P

	F, G, H *Field // tentative momenta, aligned with U, V, W
	RS      *Field // right-hand side of the pressure equation

	// UseTemperature enables the Boussinesq-coupled energy equation. When
	// false, T and TTemp are still allocated (so callers never see a nil
	// field) but the predictor and buoyancy term are skipped.
	UseTemperature bool
	t, tTemp       *Field // double-buffered temperature, see SwapTemperature

	Flag *FlagField
}

// NewState allocates every field buffer in its staggered-grid shape.
func NewState(d Dims) *State {
	im, jm, km := d.Imax, d.Jmax, d.Kmax
	s := &State{
		Dims:  d,
		U:     NewField(im+1, jm+2, km+2),
		V:     NewField(im+2, jm+1, km+2),
		W:     NewField(im+2, jm+2, km+1),
		P:     NewField(im+2, jm+2, km+2),
		PTemp: NewField(im+2, jm+2, km+2),
		F:     NewField(im+1, jm+1, km+1),
		G:     NewField(im+1, jm+1, km+1),
		H:     NewField(im+1, jm+1, km+1),
		RS:    NewField(im+1, jm+1, km+1),
		t:     NewField(im+2, jm+2, km+2),
		tTemp: NewField(im+2, jm+2, km+2),
		Flag:  NewFlagField(im+2, jm+2, km+2),
	}
	return s
}

// T returns the temperature field holding the previous full time step's
// values — the one the predictor reads from.
func (s *State) T() *Field { return s.t }

// TNext returns the temperature field the predictor writes the new time
// step's values into.
func (s *State) TNext() *Field { return s.tTemp }

// SwapTemperature exchanges the roles of T and TNext, per Design Note
// "Cyclic T double-buffer": the two buffers never alias in caller code,
// only their roles rotate.
func (s *State) SwapTemperature() {
	s.t, s.tTemp = s.tTemp, s.t
}

// Clone returns an independent copy of every field in s, for callers that
// need to retain a snapshot of a timestep (pathline/streakline tracing)
// while the solver keeps mutating its own buffers in place.
func (s *State) Clone() *State {
	return &State{
		Dims:           s.Dims,
		U:              s.U.Clone(),
		V:              s.V.Clone(),
		W:              s.W.Clone(),
		P:              s.P.Clone(),
		PTemp:          s.PTemp.Clone(),
		F:              s.F.Clone(),
		G:              s.G.Clone(),
		H:              s.H.Clone(),
		RS:             s.RS.Clone(),
		UseTemperature: s.UseTemperature,
		t:              s.t.Clone(),
		tTemp:          s.tTemp.Clone(),
		Flag:           &FlagField{Nx: s.Flag.Nx, Ny: s.Flag.Ny, Nz: s.Flag.Nz, data: append([]Flag(nil), s.Flag.data...)},
	}
}
