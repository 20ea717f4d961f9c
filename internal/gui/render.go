package gui

import (
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/squish/internal/scene"
	"github.com/san-kum/squish/internal/softbody"
	"github.com/san-kum/squish/internal/viz"
)

const lineThickness = 4

// Overlay records, per body, what the solver worked on during the last Step:
// the constraint segments and the shape-matching targets and centroid.
type Overlay struct {
	mu    sync.Mutex
	slots []overlaySlot
}

type overlaySlot struct {
	links    [][2]r2.Vec
	targets  []r2.Vec
	centroid r2.Vec
}

func NewOverlay(n int) *Overlay {
	return &Overlay{slots: make([]overlaySlot, n)}
}

// Attach registers an observer on every body of the scene. Bodies restored
// by Scene.Reset need attaching again.
func (o *Overlay) Attach(sc *scene.Scene) {
	o.mu.Lock()
	if len(o.slots) != len(sc.Bodies) {
		o.slots = make([]overlaySlot, len(sc.Bodies))
	}
	o.mu.Unlock()

	for i, b := range sc.Bodies {
		b.Observe(softbody.ObserverFunc(func(phase softbody.Phase, b *softbody.Body) {
			o.record(i, phase, b)
		}))
	}
}

func (o *Overlay) record(i int, phase softbody.Phase, b *softbody.Body) {
	switch phase {
	case softbody.PhaseConstraints:
		links := make([][2]r2.Vec, len(b.Constraints))
		for k, c := range b.Constraints {
			links[k] = [2]r2.Vec{b.Points[c.Points[0]].Position, b.Points[c.Points[1]].Position}
		}
		o.mu.Lock()
		o.slots[i].links = links
		o.mu.Unlock()
	case softbody.PhaseShapeMatch:
		fit := b.Fit()
		targets := b.Targets(fit)
		o.mu.Lock()
		o.slots[i].targets = targets
		o.slots[i].centroid = fit.Centroid
		o.mu.Unlock()
	}
}

func (o *Overlay) slot(i int) overlaySlot {
	o.mu.Lock()
	defer o.mu.Unlock()
	if i < 0 || i >= len(o.slots) {
		return overlaySlot{}
	}
	return o.slots[i]
}

func (a *App) drawScene() {
	v := a.view
	half := a.Scene.HalfExtent

	lo := v.toScreen(r2.Vec{X: -half.X, Y: half.Y})
	hi := v.toScreen(r2.Vec{X: half.X, Y: -half.Y})
	rl.DrawRectangleLines(int32(lo.X), int32(lo.Y), int32(hi.X-lo.X), int32(hi.Y-lo.Y), ColGrid)

	for i, b := range a.Scene.Bodies {
		col := ColBody
		if a.Scene.Drag.Active && a.Scene.Drag.Body == i {
			col = ColGrabbed
		}
		a.drawOutline(b, col)
		if a.Debug {
			a.drawOverlay(i)
		}
	}

	if d := a.Scene.Drag; d.Active && d.Body >= 0 && d.Body < len(a.Scene.Bodies) {
		rl.DrawLineEx(v.toScreen(a.Scene.Bodies[d.Body].Centroid()), v.toScreen(d.Cursor), 1, ColAccent)
	}
}

// drawOutline strokes the smoothed border as a strip of thick segments.
func (a *App) drawOutline(b *softbody.Body, col rl.Color) {
	pts := viz.CatmullRom(b.OutlinePoints(), a.Samples, viz.CentripetalAlpha)
	for i := 1; i < len(pts); i++ {
		rl.DrawLineEx(a.view.toScreen(pts[i-1]), a.view.toScreen(pts[i]), lineThickness, col)
	}
	for _, p := range pts {
		rl.DrawCircleV(a.view.toScreen(p), lineThickness/2, col)
	}
}

func (a *App) drawOverlay(i int) {
	s := a.overlay.slot(i)
	for _, l := range s.links {
		rl.DrawLineEx(a.view.toScreen(l[0]), a.view.toScreen(l[1]), 1, ColLink)
	}
	for _, t := range s.targets {
		rl.DrawCircleV(a.view.toScreen(t), 3, ColTarget)
	}
	if s.targets != nil {
		rl.DrawCircleV(a.view.toScreen(s.centroid), 5, ColCentroid)
	}
}
