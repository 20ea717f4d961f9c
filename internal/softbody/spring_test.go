package softbody

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestSpringForceZeroDelta(t *testing.T) {
	a := NewPointMass(r2.Vec{X: 1, Y: 1}, 1)
	b := NewPointMass(r2.Vec{X: 1, Y: 1}, 1)

	f := DefaultSpring.WithDistance(5).Force(a, b)
	if math.IsNaN(f.X) || math.IsNaN(f.Y) {
		t.Fatalf("force is NaN for coincident points: %v", f)
	}
	if f != (r2.Vec{}) {
		t.Errorf("expected zero force, got %v", f)
	}
}

func TestSpringForceAtRestLength(t *testing.T) {
	a := NewPointMass(r2.Vec{X: 0, Y: 0}, 1)
	b := NewPointMass(r2.Vec{X: 3, Y: 4}, 1)

	f := DefaultSpring.WithDistance(5).Force(a, b)
	if r2.Norm(f) > 1e-12 {
		t.Errorf("expected no force at rest length, got %v", f)
	}
}

func TestSpringForceDirection(t *testing.T) {
	a := NewPointMass(r2.Vec{X: 0, Y: 0}, 1)
	b := NewPointMass(r2.Vec{X: 10, Y: 0}, 1)
	s := Spring{Distance: 4, Strength: 2}

	s.Apply(&a, &b, 0.1)

	// stretched by 6: a is pulled toward +X, b toward -X
	if a.Velocity.X <= 0 || b.Velocity.X >= 0 {
		t.Errorf("stretched spring should pull points together: va=%v vb=%v", a.Velocity, b.Velocity)
	}
	if math.Abs(a.Velocity.X-1.2) > 1e-12 {
		t.Errorf("expected va.X = 1.2, got %v", a.Velocity.X)
	}
}

func TestSpringMomentumConservation(t *testing.T) {
	tests := []struct {
		name   string
		massA  float64
		massB  float64
		damped bool
	}{
		{"equal masses", 1, 1, false},
		{"unequal masses", 1, 3, false},
		{"equal masses damped", 2, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := PointMass{Position: r2.Vec{X: -2, Y: 1}, Velocity: r2.Vec{X: 0.5, Y: -1}, Mass: tt.massA}
			b := PointMass{Position: r2.Vec{X: 3, Y: -4}, Velocity: r2.Vec{X: -2, Y: 0.25}, Mass: tt.massB}
			s := Spring{Distance: 1, Strength: 3}
			if tt.damped {
				s.Damping = 1
			}

			before := r2.Add(r2.Scale(a.Mass, a.Velocity), r2.Scale(b.Mass, b.Velocity))
			s.Apply(&a, &b, 0.016)
			after := r2.Add(r2.Scale(a.Mass, a.Velocity), r2.Scale(b.Mass, b.Velocity))

			if r2.Norm(r2.Sub(after, before)) > 1e-12 {
				t.Errorf("momentum changed: before=%v after=%v", before, after)
			}
		})
	}
}

func TestSpringApplyTowardMovesOnlyPoint(t *testing.T) {
	a := NewPointMass(r2.Vec{X: 10, Y: 0}, 2)
	target := r2.Vec{}

	DefaultSpring.ApplyToward(&a, target, 0.5)

	// force = 3*10 = 30 toward the target, dv = 30/2*0.5
	if math.Abs(a.Velocity.X+7.5) > 1e-12 || a.Velocity.Y != 0 {
		t.Errorf("unexpected velocity %v", a.Velocity)
	}
	if target != (r2.Vec{}) {
		t.Error("target must not move")
	}
}

func TestSpringDampingOpposesVelocity(t *testing.T) {
	a := PointMass{Position: r2.Vec{X: 1}, Velocity: r2.Vec{Y: 4}, Mass: 1}

	f := Spring{Damping: 0.5}.ForceToward(a, r2.Vec{X: 1})
	if f != (r2.Vec{Y: 2}) {
		t.Errorf("expected pure damping force (0, 2), got %v", f)
	}
}

func TestSpringBuilders(t *testing.T) {
	s := DefaultSpring.WithDistance(2).WithStrength(7).WithDamping(0.25)
	if s.Distance != 2 || s.Strength != 7 || s.Damping != 0.25 {
		t.Errorf("builders not applied: %+v", s)
	}
	if DefaultSpring.Distance != 0 || DefaultSpring.Strength != 3 || DefaultSpring.Damping != 1 {
		t.Errorf("builders modified DefaultSpring: %+v", DefaultSpring)
	}
}
