package metrics

import (
	"math"

	"github.com/san-kum/squish/internal/scene"
)

// KineticEnergy is the mean total kinetic energy of the scene over a run.
type KineticEnergy struct {
	name    string
	sum     float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(s *scene.Scene, t float64) {
	e.sum += s.KineticEnergy()
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.sum = 0
	e.samples = 0
}

// Momentum is the magnitude of the scene's total linear momentum at the last
// observed step.
type Momentum struct {
	name  string
	value float64
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(s *scene.Scene, t float64) {
	var px, py float64
	for _, b := range s.Bodies {
		p := b.Momentum()
		px += p.X
		py += p.Y
	}
	m.value = math.Hypot(px, py)
}

func (m *Momentum) Value() float64 { return m.value }
func (m *Momentum) Reset()         { m.value = 0 }
