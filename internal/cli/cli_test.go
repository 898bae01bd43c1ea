package cli

import "testing"

func TestLoadConfigAppliesExplicitFlagOverrides(t *testing.T) {
	configFile = "/nonexistent/navier3d.toml"

	if err := runCmd.Flags().Set("scenario", "single_tower"); err != nil {
		t.Fatalf("Set scenario: %v", err)
	}
	if err := runCmd.Flags().Set("iproc", "4"); err != nil {
		t.Fatalf("Set iproc: %v", err)
	}

	cfg, err := loadConfig(runCmd)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Scenario != "single_tower" {
		t.Errorf("Scenario = %q, want single_tower", cfg.Scenario)
	}
	if cfg.IProc != 4 {
		t.Errorf("IProc = %d, want 4", cfg.IProc)
	}
	// an untouched flag leaves the loaded default in place.
	if cfg.Backend != "cpu" {
		t.Errorf("Backend = %q, want the default cpu (no --solver override)", cfg.Backend)
	}
}

func TestBlockSize1DOverridesPerAxisValues(t *testing.T) {
	f = flags{blockSizeX: 4, blockSizeY: 4, blockSizeZ: 4, blockSize1D: 16}
	bs := blockSize()
	if bs.X != 16 || bs.Y != 16 || bs.Z != 16 {
		t.Errorf("blockSize() = %+v, want {16,16,16}", bs)
	}
}

func TestBlockSizePerAxisWhenNo1D(t *testing.T) {
	f = flags{blockSizeX: 2, blockSizeY: 3, blockSizeZ: 5}
	bs := blockSize()
	if bs.X != 2 || bs.Y != 3 || bs.Z != 5 {
		t.Errorf("blockSize() = %+v, want {2,3,5}", bs)
	}
}
