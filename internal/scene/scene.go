package scene

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/squish/internal/softbody"
)

const (
	DefaultGravity      = -200.0
	DefaultTimeScale    = 5.0
	DefaultDragStrength = 1.0
)

// Scene is a set of independent soft bodies inside a box centered at the
// origin.
type Scene struct {
	Bodies     []*softbody.Body
	Gravity    r2.Vec
	HalfExtent r2.Vec
	TimeScale  float64

	Drag Drag

	initial []*softbody.Body
	stats   []softbody.StepStats
}

// Drag is the state of a body grabbed with the cursor.
type Drag struct {
	Strength float64
	Body     int
	Cursor   r2.Vec
	Active   bool
}

func New(halfExtent r2.Vec, bodies ...*softbody.Body) *Scene {
	s := &Scene{
		Bodies:     bodies,
		Gravity:    r2.Vec{Y: DefaultGravity},
		HalfExtent: halfExtent,
		TimeScale:  DefaultTimeScale,
		Drag:       Drag{Strength: DefaultDragStrength, Body: -1},
	}
	s.snapshot()
	return s
}

func (s *Scene) snapshot() {
	s.initial = make([]*softbody.Body, len(s.Bodies))
	for i, b := range s.Bodies {
		s.initial[i] = b.Clone()
	}
	s.stats = make([]softbody.StepStats, len(s.Bodies))
}

// Add appends a body and makes it part of the reset snapshot.
func (s *Scene) Add(b *softbody.Body) {
	s.Bodies = append(s.Bodies, b)
	s.snapshot()
}

// Reset restores every body, parameters included, to the snapshot.
func (s *Scene) Reset() {
	for i, b := range s.initial {
		s.Bodies[i] = b.Clone()
	}
	s.stats = make([]softbody.StepStats, len(s.Bodies))
	s.Release()
}

// Frame advances every body by dt*TimeScale. External forces are applied
// before each body's Step; bodies are stepped concurrently.
func (s *Scene) Frame(ctx context.Context, dt float64) error {
	dt *= s.TimeScale
	if len(s.stats) != len(s.Bodies) {
		s.stats = make([]softbody.StepStats, len(s.Bodies))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, b := range s.Bodies {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.applyForces(i, b, dt)
			s.stats[i] = b.Step(dt, s.HalfExtent)
			return nil
		})
	}
	return g.Wait()
}

func (s *Scene) applyForces(i int, b *softbody.Body, dt float64) {
	if s.Gravity != (r2.Vec{}) {
		b.ApplyForce(dt, s.Gravity)
	}
	if s.Drag.Active && s.Drag.Body == i {
		pull := r2.Sub(s.Drag.Cursor, b.Centroid())
		b.ApplyForce(dt, r2.Scale(s.Drag.Strength, pull))
	}
}

// Stats returns the result of the last Step of body i.
func (s *Scene) Stats(i int) softbody.StepStats {
	if i < 0 || i >= len(s.stats) {
		return softbody.StepStats{}
	}
	return s.stats[i]
}

// Contacts is the number of wall contacts during the last frame.
func (s *Scene) Contacts() int {
	n := 0
	for _, st := range s.stats {
		n += st.Contacts
	}
	return n
}

// BodyAt returns the index of the topmost body containing p, or -1.
func (s *Scene) BodyAt(p r2.Vec) int {
	for i := len(s.Bodies) - 1; i >= 0; i-- {
		if s.Bodies[i].IsInside(p) {
			return i
		}
	}
	return -1
}

// Grab starts dragging the body under p. It reports whether one was hit.
func (s *Scene) Grab(p r2.Vec) bool {
	i := s.BodyAt(p)
	if i < 0 {
		return false
	}
	s.Drag.Body = i
	s.Drag.Cursor = p
	s.Drag.Active = true
	return true
}

func (s *Scene) MoveCursor(p r2.Vec) { s.Drag.Cursor = p }

func (s *Scene) Release() {
	s.Drag.Active = false
	s.Drag.Body = -1
}

func (s *Scene) KineticEnergy() float64 {
	e := 0.0
	for _, b := range s.Bodies {
		e += b.KineticEnergy()
	}
	return e
}

// Clone deep-copies the bodies and settings. The copy's reset snapshot is its
// current state.
func (s *Scene) Clone() *Scene {
	bodies := make([]*softbody.Body, len(s.Bodies))
	for i, b := range s.Bodies {
		bodies[i] = b.Clone()
	}
	c := New(s.HalfExtent, bodies...)
	c.Gravity = s.Gravity
	c.TimeScale = s.TimeScale
	c.Drag.Strength = s.Drag.Strength
	return c
}
