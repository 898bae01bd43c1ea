package grid

// The functions below are the IDXU/IDXV/IDXW/IDXT/IDXP/IDXFLAG/IDXRS index
// helpers. Each field already centralizes its own bounds
// check in Field.At/Set (Design Note "Index arithmetic"); these wrappers
// exist so call sites can name the field they mean instead of reaching
// into the State struct directly.

// IDXU returns the U velocity at face (i, j, k).
func (s *State) IDXU(i, j, k int) Real { return s.U.At(i, j, k) }

// IDXV returns the V velocity at face (i, j, k).
func (s *State) IDXV(i, j, k int) Real { return s.V.At(i, j, k) }

// IDXW returns the W velocity at face (i, j, k).
func (s *State) IDXW(i, j, k int) Real { return s.W.At(i, j, k) }

// IDXP returns the pressure at cell center (i, j, k).
func (s *State) IDXP(i, j, k int) Real { return s.P.At(i, j, k) }

// IDXT returns the temperature at cell center (i, j, k), from the buffer
// the predictor currently reads from.
func (s *State) IDXT(i, j, k int) Real { return s.T().At(i, j, k) }

// IDXFlag returns the flag word at cell center (i, j, k).
func (s *State) IDXFlag(i, j, k int) Flag { return s.Flag.At(i, j, k) }

// IDXRS returns the right-hand side value at (i, j, k).
func (s *State) IDXRS(i, j, k int) Real { return s.RS.At(i, j, k) }
