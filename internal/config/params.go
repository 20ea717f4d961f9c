package config

import (
	"fmt"
	"sort"
)

// params maps tunable names to the config field they address. Body fields
// address the first body; SetParam applies them to every body.
var params = map[string]func(*Config) *float64{
	"time_scale":   func(c *Config) *float64 { return &c.TimeScale },
	"gravity":      func(c *Config) *float64 { return &c.Gravity.Y },
	"drag":         func(c *Config) *float64 { return &c.DragStrength },
	"radius":       func(c *Config) *float64 { return &c.Bodies[0].Radius },
	"mass":         func(c *Config) *float64 { return &c.Bodies[0].Mass },
	"ring.k":       func(c *Config) *float64 { return &c.Springs.Ring.Strength },
	"ring.d":       func(c *Config) *float64 { return &c.Springs.Ring.Damping },
	"constraint.k": func(c *Config) *float64 { return &c.Springs.Constraint.Strength },
	"constraint.d": func(c *Config) *float64 { return &c.Springs.Constraint.Damping },
	"shape.k":      func(c *Config) *float64 { return &c.Springs.Shape.Strength },
	"shape.d":      func(c *Config) *float64 { return &c.Springs.Shape.Damping },
}

// Param returns a pointer to the named field, or nil when the name is unknown
// or addresses a body that does not exist.
func (c *Config) Param(name string) *float64 {
	f, ok := params[name]
	if !ok {
		return nil
	}
	if (name == "radius" || name == "mass") && len(c.Bodies) == 0 {
		return nil
	}
	return f(c)
}

func (c *Config) SetParam(name string, v float64) error {
	if c.Param(name) == nil {
		return fmt.Errorf("%w: unknown parameter %q", ErrInvalid, name)
	}
	switch name {
	case "radius":
		for i := range c.Bodies {
			c.Bodies[i].Radius = v
		}
	case "mass":
		for i := range c.Bodies {
			c.Bodies[i].Mass = v
		}
	default:
		*c.Param(name) = v
	}
	return nil
}

func ParamNames() []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
