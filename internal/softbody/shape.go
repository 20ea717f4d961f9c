package softbody

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Transform is the rigid fit of the rest shape onto the current shape.
type Transform struct {
	Centroid     r2.Vec
	RestCentroid r2.Vec
	Angle        float64
}

// Fit computes the centroids and the mean per-point rotation between the rest
// shape and the current shape. This is not the SVD optimum but stays close to
// it as long as the body does not invert.
func (b *Body) Fit() Transform {
	n := len(b.Points)
	if n == 0 {
		return Transform{}
	}

	tr := Transform{Centroid: b.Centroid(), RestCentroid: b.RestCentroid()}
	if n < 2 {
		return tr
	}

	angle := 0.0
	for _, p := range b.Points {
		cur := r2.Sub(p.Position, tr.Centroid)
		rest := r2.Sub(p.Initial, tr.RestCentroid)
		if r2.Norm2(cur) == 0 || r2.Norm2(rest) == 0 {
			continue
		}
		angle -= math.Atan2(r2.Cross(cur, rest), r2.Dot(cur, rest))
	}
	tr.Angle = angle / float64(n)
	return tr
}

// Target is where point i would sit if the body were exactly the rest shape
// moved by tr.
func (b *Body) Target(i int, tr Transform) r2.Vec {
	rest := r2.Sub(b.Points[i].Initial, tr.RestCentroid)
	return r2.Add(r2.Rotate(rest, tr.Angle, r2.Vec{}), tr.Centroid)
}

// Targets returns Target for every point.
func (b *Body) Targets(tr Transform) []r2.Vec {
	out := make([]r2.Vec, len(b.Points))
	for i := range b.Points {
		out[i] = b.Target(i, tr)
	}
	return out
}

// ShapeMatch pulls every point toward its target with the shape spring.
func (b *Body) ShapeMatch(dt float64) Transform {
	if len(b.Points) == 0 {
		return Transform{}
	}
	tr := b.Fit()
	spring := b.Params.Shape.WithDistance(0)
	for i := range b.Points {
		spring.ApplyToward(&b.Points[i], b.Target(i, tr), dt)
	}
	return tr
}

// Residual is the root mean square distance between the current shape and
// the rigid fit tr.
func (b *Body) Residual(tr Transform) float64 {
	if len(b.Points) == 0 {
		return 0
	}
	sum := 0.0
	for i, p := range b.Points {
		sum += r2.Norm2(r2.Sub(p.Position, b.Target(i, tr)))
	}
	return math.Sqrt(sum / float64(len(b.Points)))
}
