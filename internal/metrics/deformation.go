package metrics

import (
	"github.com/san-kum/squish/internal/scene"
)

// Deformation tracks the largest shape-matching residual seen on any body.
type Deformation struct {
	name string
	max  float64
}

func NewDeformation() *Deformation {
	return &Deformation{name: "max_deformation"}
}

func (d *Deformation) Name() string { return d.name }

func (d *Deformation) Observe(s *scene.Scene, t float64) {
	for _, b := range s.Bodies {
		r := b.Residual(b.Fit())
		if r > d.max {
			d.max = r
		}
	}
}

func (d *Deformation) Value() float64 { return d.max }
func (d *Deformation) Reset()         { d.max = 0 }

// WallContacts is the mean number of axis clamps per step.
type WallContacts struct {
	name    string
	total   int
	samples int
}

func NewWallContacts() *WallContacts {
	return &WallContacts{name: "wall_contacts"}
}

func (w *WallContacts) Name() string { return w.name }

func (w *WallContacts) Observe(s *scene.Scene, t float64) {
	w.total += s.Contacts()
	w.samples++
}

func (w *WallContacts) Value() float64 {
	if w.samples == 0 {
		return 0
	}
	return float64(w.total) / float64(w.samples)
}

func (w *WallContacts) Reset() {
	w.total = 0
	w.samples = 0
}
