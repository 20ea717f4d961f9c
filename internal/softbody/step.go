package softbody

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Phase identifies a stage of Step.
type Phase int

const (
	PhaseRing Phase = iota
	PhaseConstraints
	PhaseShapeMatch
	PhaseIntegrate
	PhaseClamp
)

func (p Phase) String() string {
	switch p {
	case PhaseRing:
		return "ring"
	case PhaseConstraints:
		return "constraints"
	case PhaseShapeMatch:
		return "shape_match"
	case PhaseIntegrate:
		return "integrate"
	case PhaseClamp:
		return "clamp"
	default:
		return "unknown"
	}
}

// Observer is notified after every phase of Step. Observers must not mutate
// the body.
type Observer interface {
	OnPhase(phase Phase, b *Body)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(phase Phase, b *Body)

func (f ObserverFunc) OnPhase(phase Phase, b *Body) { f(phase, b) }

func (b *Body) Observe(o Observer) { b.observers = append(b.observers, o) }

func (b *Body) notify(phase Phase) {
	for _, o := range b.observers {
		o.OnPhase(phase, b)
	}
}

// StepStats reports what happened during one Step.
type StepStats struct {
	Fit Transform
	// Contacts counts the axis clamps against the bounds.
	Contacts int
}

// ApplyForce adds force/mass*dt to the velocity of every point.
func (b *Body) ApplyForce(dt float64, force r2.Vec) {
	for i := range b.Points {
		p := &b.Points[i]
		p.Velocity = r2.Add(p.Velocity, r2.Scale(dt/p.Mass, force))
	}
}

// ApplyForceTo is ApplyForce restricted to the given point indices.
func (b *Body) ApplyForceTo(dt float64, force r2.Vec, indices ...int) {
	for _, i := range indices {
		p := &b.Points[i]
		p.Velocity = r2.Add(p.Velocity, r2.Scale(dt/p.Mass, force))
	}
}

// Step advances the body by dt. External forces must already have been
// applied. halfExtent bounds the positions to [-halfExtent, halfExtent].
func (b *Body) Step(dt float64, halfExtent r2.Vec) StepStats {
	var stats StepStats

	b.resolveRing(dt)
	b.notify(PhaseRing)

	b.resolveConstraints(dt)
	b.notify(PhaseConstraints)

	stats.Fit = b.ShapeMatch(dt)
	b.notify(PhaseShapeMatch)

	for i := range b.Points {
		p := &b.Points[i]
		p.Position = r2.Add(p.Position, r2.Scale(dt, p.Velocity))
	}
	b.notify(PhaseIntegrate)

	stats.Contacts = b.clamp(halfExtent)
	b.notify(PhaseClamp)

	return stats
}

// RingEdges returns the adjacent index pairs of the implicit ring.
func (b *Body) RingEdges() [][2]int {
	n := len(b.Points)
	if n < 2 {
		return nil
	}
	edges := make([][2]int, n)
	for i := range edges {
		edges[i] = [2]int{i, (i + 1) % n}
	}
	return edges
}

func (b *Body) resolveRing(dt float64) {
	n := len(b.Points)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		rest := r2.Norm(r2.Sub(b.Points[i].Initial, b.Points[j].Initial))
		b.resolvePair(b.Params.Ring.WithDistance(rest), i, j, dt)
	}
}

func (b *Body) resolveConstraints(dt float64) {
	for _, c := range b.Constraints {
		b.resolvePair(b.Params.Constraint.WithDistance(c.Distance), c.Points[0], c.Points[1], dt)
	}
}

func (b *Body) resolvePair(s Spring, i, j int, dt float64) {
	checkPair(len(b.Points), i, j)
	s.Apply(&b.Points[i], &b.Points[j], dt)
}

func (b *Body) clamp(halfExtent r2.Vec) int {
	contacts := 0
	for i := range b.Points {
		p := &b.Points[i]
		if clampAxis(&p.Position.X, &p.Velocity.X, halfExtent.X) {
			contacts++
		}
		if clampAxis(&p.Position.Y, &p.Velocity.Y, halfExtent.Y) {
			contacts++
		}
	}
	return contacts
}

// clampAxis is a perfectly inelastic wall on both sides of one axis.
func clampAxis(pos, vel *float64, limit float64) bool {
	hit := false
	for _, sign := range [2]float64{-1, 1} {
		if *pos*sign > limit {
			*pos = limit * sign
			*vel = 0
			hit = true
		}
	}
	return hit
}
