package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.WindowSize != 8 {
		t.Errorf("WindowSize = %d, want 8", cfg.WindowSize)
	}
	if cfg.DiffThreshold != 0.3 {
		t.Errorf("DiffThreshold = %g, want 0.3", cfg.DiffThreshold)
	}
	if cfg.MinRegionArea != 16 {
		t.Errorf("MinRegionArea = %d, want 16", cfg.MinRegionArea)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults failed validation: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
difference_threshold: 0.4
min_region_area: 32
locations:
  - id: sector-4b
    capture_dir: /data/captures/sector-4b
    bounds:
      north_west: {lat: 34.5, lng: 74.5}
      south_east: {lat: 34.0, lng: 75.0}
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DiffThreshold != 0.4 {
		t.Errorf("DiffThreshold = %g, want 0.4", cfg.DiffThreshold)
	}
	if cfg.MinRegionArea != 32 {
		t.Errorf("MinRegionArea = %d, want 32", cfg.MinRegionArea)
	}
	// Unset fields keep their defaults.
	if cfg.WindowSize != 8 {
		t.Errorf("WindowSize = %d, want default 8", cfg.WindowSize)
	}

	if len(cfg.Locations) != 1 {
		t.Fatalf("locations = %d, want 1", len(cfg.Locations))
	}
	loc := cfg.Locations[0]
	if loc.ID != "sector-4b" || loc.Bounds.NorthWest.Lat != 34.5 {
		t.Errorf("location not parsed: %+v", loc)
	}
}

func TestValidateRejectsOutOfDomain(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"threshold too high", func(c *Config) { c.DiffThreshold = 1.5 }},
		{"negative threshold", func(c *Config) { c.DiffThreshold = -0.1 }},
		{"window too small", func(c *Config) { c.WindowSize = 1 }},
		{"negative min area", func(c *Config) { c.MinRegionArea = -4 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
