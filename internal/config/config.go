package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avikram/sat2intel/internal/geo"
)

// Location is one monitored area of interest.
type Location struct {
	ID         string     `yaml:"id"`
	CaptureDir string     `yaml:"capture_dir"`
	Bounds     geo.Bounds `yaml:"bounds"`
}

// Config carries the pipeline's tunables plus the CLI/monitor settings.
type Config struct {
	WindowSize    int     `yaml:"window_size"`          // SSIM window, pixels
	DiffThreshold float64 `yaml:"difference_threshold"` // in (0,1)
	MinRegionArea int     `yaml:"min_region_area"`      // pixels

	DPI         int    `yaml:"dpi"` // render resolution for PDF captures
	OutputDir   string `yaml:"output_dir"`
	IntervalSec int    `yaml:"interval_seconds"` // watch-mode poll interval
	WriteQR     bool   `yaml:"write_qr"`
	ShowStats   bool   `yaml:"show_stats"`

	Locations []Location `yaml:"locations"`
}

// Default returns a Config with the documented defaults.
func Default() *Config {
	return &Config{
		WindowSize:    8,
		DiffThreshold: 0.3,
		MinRegionArea: 16,
		DPI:           150,
		OutputDir:     "output",
		IntervalSec:   60,
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fills zero values with defaults and rejects out-of-domain
// settings.
func (c *Config) Validate() error {
	def := Default()
	if c.WindowSize == 0 {
		c.WindowSize = def.WindowSize
	}
	if c.DiffThreshold == 0 {
		c.DiffThreshold = def.DiffThreshold
	}
	if c.MinRegionArea == 0 {
		c.MinRegionArea = def.MinRegionArea
	}
	if c.DPI == 0 {
		c.DPI = def.DPI
	}
	if c.IntervalSec == 0 {
		c.IntervalSec = def.IntervalSec
	}

	if c.WindowSize < 2 {
		return fmt.Errorf("window_size must be >= 2, got %d", c.WindowSize)
	}
	if c.DiffThreshold <= 0 || c.DiffThreshold >= 1 {
		return fmt.Errorf("difference_threshold must be in (0,1), got %g", c.DiffThreshold)
	}
	if c.MinRegionArea < 1 {
		return fmt.Errorf("min_region_area must be >= 1, got %d", c.MinRegionArea)
	}
	return nil
}
