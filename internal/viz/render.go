package viz

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/squish/internal/scene"
	"github.com/san-kum/squish/internal/softbody"
)

// RenderScene clears c and draws the box, the smoothed outline of every body
// and the drag line. With debug set it also draws constraints, shape targets
// and centroids.
func RenderScene(c *Canvas, v Viewport, sc *scene.Scene, samples int, debug bool) {
	c.Clear()

	hx, hy := sc.HalfExtent.X, sc.HalfExtent.Y
	c.DrawPolyline(v, []r2.Vec{{X: -hx, Y: -hy}, {X: hx, Y: -hy}, {X: hx, Y: hy}, {X: -hx, Y: hy}, {X: -hx, Y: -hy}})

	for _, b := range sc.Bodies {
		c.DrawPolyline(v, CatmullRom(b.OutlinePoints(), samples, CentripetalAlpha))
		if debug {
			renderDebug(c, v, b)
		}
	}

	if d := sc.Drag; d.Active && d.Body >= 0 && d.Body < len(sc.Bodies) {
		c.DrawPolyline(v, []r2.Vec{sc.Bodies[d.Body].Centroid(), d.Cursor})
	}
}

func renderDebug(c *Canvas, v Viewport, b *softbody.Body) {
	for _, k := range b.Constraints {
		c.DrawPolyline(v, []r2.Vec{b.Points[k.Points[0]].Position, b.Points[k.Points[1]].Position})
	}
	for _, p := range b.Targets(b.Fit()) {
		x, y := v.ToPixel(p)
		c.Set(x, y)
	}
	c.DrawCross(v, b.Centroid(), 3)
}
