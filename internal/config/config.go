package config

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/squish/internal/scene"
	"github.com/san-kum/squish/internal/sim"
	"github.com/san-kum/squish/internal/softbody"
)

const (
	DefaultDt          = 1.0 / 60
	DefaultDuration    = 10.0
	DefaultPoints      = 16
	DefaultRadius      = 60.0
	DefaultHalfWidth   = 400.0
	DefaultHalfHeight  = 300.0
	DefaultRecordEvery = 1
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Dt           float64         `yaml:"dt"`
	Duration     float64         `yaml:"duration"`
	Seed         int64           `yaml:"seed"`
	RecordEvery  int             `yaml:"record_every"`
	TimeScale    float64         `yaml:"time_scale"`
	Gravity      Vec             `yaml:"gravity"`
	Bounds       Vec             `yaml:"bounds"`
	DragStrength float64         `yaml:"drag_strength"`
	Springs      softbody.Params `yaml:"springs"`
	Bodies       []BodyConfig    `yaml:"bodies"`
}

type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec) R2() r2.Vec { return r2.Vec{X: v.X, Y: v.Y} }

// BodyConfig describes a regular polygon body placed at (X, Y).
type BodyConfig struct {
	Points int     `yaml:"points"`
	Radius float64 `yaml:"radius"`
	Mass   float64 `yaml:"mass"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

// UnmarshalYAML fills fields missing from a body entry with the defaults.
func (b *BodyConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain BodyConfig
	p := plain{Points: DefaultPoints, Radius: DefaultRadius, Mass: 1}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*b = BodyConfig(p)
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Dt:           DefaultDt,
		Duration:     DefaultDuration,
		RecordEvery:  DefaultRecordEvery,
		TimeScale:    scene.DefaultTimeScale,
		Gravity:      Vec{Y: scene.DefaultGravity},
		Bounds:       Vec{X: DefaultHalfWidth, Y: DefaultHalfHeight},
		DragStrength: scene.DefaultDragStrength,
		Springs:      softbody.DefaultParams(),
		Bodies: []BodyConfig{
			{Points: DefaultPoints, Radius: DefaultRadius, Mass: 1},
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := Merge(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge overlays the fields present in the file at path onto cfg.
func Merge(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if !(c.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalid, c.Dt)
	}
	if !(c.Duration > 0) {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalid, c.Duration)
	}
	if !(c.TimeScale > 0) {
		return fmt.Errorf("%w: time_scale must be positive, got %g", ErrInvalid, c.TimeScale)
	}
	if !(c.Bounds.X > 0) || !(c.Bounds.Y > 0) {
		return fmt.Errorf("%w: bounds must be positive, got (%g, %g)", ErrInvalid, c.Bounds.X, c.Bounds.Y)
	}
	if c.DragStrength < 0 {
		return fmt.Errorf("%w: drag_strength must not be negative", ErrInvalid)
	}
	for _, sp := range []struct {
		name string
		s    softbody.Spring
	}{
		{"ring", c.Springs.Ring},
		{"constraint", c.Springs.Constraint},
		{"shape", c.Springs.Shape},
	} {
		if sp.s.Strength < 0 || sp.s.Damping < 0 {
			return fmt.Errorf("%w: %s spring must have non-negative strength and damping", ErrInvalid, sp.name)
		}
	}
	if len(c.Bodies) == 0 {
		return fmt.Errorf("%w: at least one body is required", ErrInvalid)
	}
	for i, b := range c.Bodies {
		if b.Points < 1 {
			return fmt.Errorf("%w: body %d needs at least one point", ErrInvalid, i)
		}
		if b.Radius < 0 {
			return fmt.Errorf("%w: body %d has negative radius", ErrInvalid, i)
		}
		if !(b.Mass > 0) {
			return fmt.Errorf("%w: body %d mass must be positive", ErrInvalid, i)
		}
	}
	return nil
}

// BuildScene validates the config and constructs the scene it describes.
func (c *Config) BuildScene() (*scene.Scene, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	bodies := make([]*softbody.Body, len(c.Bodies))
	for i, bc := range c.Bodies {
		b := softbody.RegularPolygon(bc.Points, bc.Radius)
		for j := range b.Points {
			b.Points[j].Mass = bc.Mass
		}
		b.Params = c.Springs
		b.Translate(r2.Vec{X: bc.X, Y: bc.Y})
		bodies[i] = b
	}

	s := scene.New(c.Bounds.R2(), bodies...)
	s.Gravity = c.Gravity.R2()
	s.TimeScale = c.TimeScale
	s.Drag.Strength = c.DragStrength
	return s, nil
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:            c.Dt,
		Duration:      c.Duration,
		Seed:          c.Seed,
		RecordEvery:   c.RecordEvery,
		ValidateState: true,
	}
}
