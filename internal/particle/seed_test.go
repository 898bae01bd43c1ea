package particle

import "testing"

func TestSeedGridReturnsAtMostRequestedCount(t *testing.T) {
	g := &Grid{Origin: Vec3{}, Size: Vec3{X: 1, Y: 1, Z: 1}, Imax: 8, Jmax: 8, Kmax: 8, Dx: 0.125, Dy: 0.125, Dz: 0.125}
	seeds := SeedGrid(g, 8)
	if len(seeds) == 0 || len(seeds) > 8 {
		t.Fatalf("len(seeds) = %d, want (0,8]", len(seeds))
	}
	for _, s := range seeds {
		if !inDomain(*g, s) {
			t.Errorf("seed %+v lies outside the domain", s)
		}
	}
}

func TestSeedGridZeroReturnsNil(t *testing.T) {
	g := &Grid{Size: Vec3{X: 1, Y: 1, Z: 1}, Imax: 4, Jmax: 4, Kmax: 4}
	if seeds := SeedGrid(g, 0); seeds != nil {
		t.Errorf("expected nil, got %v", seeds)
	}
}
