package water

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestFromMapOverridesDefaults(t *testing.T) {
	cfg := FromMap(map[string]string{
		"resolution": "64",
		"extent":     "512",
		"damping":    "0.95",
		"radius":     "30",
		"drop_ms":    "25",
		"seed":       "9",
		"solver":     "opencl",
		"strength":   "bogus",
	})
	if cfg.Resolution != 64 || cfg.Extent != 512 || cfg.Damping != 0.95 {
		t.Fatalf("unexpected surface config: %+v", cfg)
	}
	if cfg.DisturbanceRadius != 30 || cfg.DropInterval != 25*time.Millisecond {
		t.Fatalf("unexpected disturbance config: %+v", cfg)
	}
	if cfg.Seed != 9 || cfg.Solver != SolverOpenCL {
		t.Fatalf("unexpected seed/solver: %+v", cfg)
	}
	if cfg.PulseStrength != DefaultConfig().PulseStrength {
		t.Fatalf("unparseable strength should keep default, got %f", cfg.PulseStrength)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"resolution":   func(c *Config) { c.Resolution = 1 },
		"extent":       func(c *Config) { c.Extent = 0 },
		"damping zero": func(c *Config) { c.Damping = 0 },
		"damping one":  func(c *Config) { c.Damping = 1 },
		"radius":       func(c *Config) { c.DisturbanceRadius = -1 },
		"strength":     func(c *Config) { c.PulseStrength = -0.1 },
		"interval":     func(c *Config) { c.DropInterval = 0 },
		"solver":       func(c *Config) { c.Solver = "quantum" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
			if _, err := New(cfg, nil); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("New() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
