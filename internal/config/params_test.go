package config

import (
	"errors"
	"testing"
)

func TestSetParam(t *testing.T) {
	tests := []struct {
		name string
		val  float64
		get  func(*Config) float64
	}{
		{"time_scale", 2, func(c *Config) float64 { return c.TimeScale }},
		{"gravity", -50, func(c *Config) float64 { return c.Gravity.Y }},
		{"drag", 3, func(c *Config) float64 { return c.DragStrength }},
		{"ring.k", 7, func(c *Config) float64 { return c.Springs.Ring.Strength }},
		{"constraint.d", 0.3, func(c *Config) float64 { return c.Springs.Constraint.Damping }},
		{"shape.k", 9, func(c *Config) float64 { return c.Springs.Shape.Strength }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := cfg.SetParam(tt.name, tt.val); err != nil {
				t.Fatal(err)
			}
			if got := tt.get(cfg); got != tt.val {
				t.Errorf("%s = %g, want %g", tt.name, got, tt.val)
			}
			if got := *cfg.Param(tt.name); got != tt.val {
				t.Errorf("Param(%s) = %g, want %g", tt.name, got, tt.val)
			}
		})
	}
}

func TestSetParamBodyFieldsApplyToAll(t *testing.T) {
	cfg := GetPreset("pair")
	if err := cfg.SetParam("radius", 33); err != nil {
		t.Fatal(err)
	}
	if err := cfg.SetParam("mass", 4); err != nil {
		t.Fatal(err)
	}
	for i, b := range cfg.Bodies {
		if b.Radius != 33 || b.Mass != 4 {
			t.Errorf("body %d: radius=%g mass=%g", i, b.Radius, b.Mass)
		}
	}
}

func TestSetParamUnknown(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.SetParam("nope", 1)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("got %v, want ErrInvalid", err)
	}

	cfg.Bodies = nil
	if cfg.Param("radius") != nil {
		t.Error("radius with no bodies should be nil")
	}
}

func TestParamNamesSorted(t *testing.T) {
	names := ParamNames()
	if len(names) != len(params) {
		t.Fatalf("got %d names, want %d", len(names), len(params))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted at %d: %q >= %q", i, names[i-1], names[i])
		}
	}
}

func TestClone(t *testing.T) {
	a := GetPreset("pair")
	b := a.Clone()
	b.Bodies[0].Radius = 1
	b.Springs.Ring.Strength = 99
	if a.Bodies[0].Radius == 1 || a.Springs.Ring.Strength == 99 {
		t.Error("clone shares state with original")
	}
}
