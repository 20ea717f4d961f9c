package softbody

import "gonum.org/v1/gonum/spatial/r2"

// Spring is a damped force law between two points, or between a point and a
// fixed target.
type Spring struct {
	Distance float64 `yaml:"-"`
	Strength float64 `yaml:"strength"`
	Damping  float64 `yaml:"damping"`
}

var DefaultSpring = Spring{
	Distance: 0,
	Strength: 3.0,
	Damping:  1.0,
}

func (s Spring) WithDistance(distance float64) Spring {
	s.Distance = distance
	return s
}

func (s Spring) WithStrength(strength float64) Spring {
	s.Strength = strength
	return s
}

func (s Spring) WithDamping(damping float64) Spring {
	s.Damping = damping
	return s
}

// Force returns the force acting on b; a receives the opposite.
func (s Spring) Force(a, b PointMass) r2.Vec {
	delta := r2.Sub(a.Position, b.Position)
	stretch := r2.Norm(delta) - s.Distance
	spring := r2.Scale(s.Strength*stretch, direction(delta))
	damping := r2.Scale(s.Damping, r2.Sub(a.Velocity, b.Velocity))
	return r2.Add(spring, damping)
}

// Apply turns the force into velocity changes on both points.
func (s Spring) Apply(a, b *PointMass, dt float64) {
	force := s.Force(*a, *b)
	a.Velocity = r2.Sub(a.Velocity, r2.Scale(dt/a.Mass, force))
	b.Velocity = r2.Add(b.Velocity, r2.Scale(dt/b.Mass, force))
}

// ForceToward is the one-sided form: target is treated as an immovable point
// at rest.
func (s Spring) ForceToward(a PointMass, target r2.Vec) r2.Vec {
	delta := r2.Sub(a.Position, target)
	stretch := r2.Norm(delta) - s.Distance
	spring := r2.Scale(s.Strength*stretch, direction(delta))
	damping := r2.Scale(s.Damping, a.Velocity)
	return r2.Add(spring, damping)
}

func (s Spring) ApplyToward(a *PointMass, target r2.Vec, dt float64) {
	force := s.ForceToward(*a, target)
	a.Velocity = r2.Sub(a.Velocity, r2.Scale(dt/a.Mass, force))
}

// direction is the unit vector of v, or zero when v is exactly zero.
func direction(v r2.Vec) r2.Vec {
	if v.X == 0 && v.Y == 0 {
		return r2.Vec{}
	}
	return r2.Unit(v)
}

// Params holds the springs used by the three constraint families of a body.
type Params struct {
	Ring       Spring `yaml:"ring"`
	Constraint Spring `yaml:"constraint"`
	Shape      Spring `yaml:"shape"`
}

func DefaultParams() Params {
	return Params{
		Ring:       DefaultSpring,
		Constraint: DefaultSpring,
		Shape:      DefaultSpring,
	}
}
