package viz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	DefaultSplineSamples = 8
	CentripetalAlpha     = 0.5

	// minKnot keeps coincident control points from producing a zero-length
	// parameter interval.
	minKnot = 1e-6
)

// CatmullRom samples a Catmull-Rom spline over every window of four
// consecutive control points. Each window contributes samples+1 points from
// its second to its third control point. alpha 0.5 is the centripetal form.
// Fewer than four control points are returned unchanged.
func CatmullRom(control []r2.Vec, samples int, alpha float64) []r2.Vec {
	if len(control) < 4 {
		out := make([]r2.Vec, len(control))
		copy(out, control)
		return out
	}
	if samples < 1 {
		samples = 1
	}

	out := make([]r2.Vec, 0, (len(control)-3)*(samples+1))
	for i := 0; i+3 < len(control); i++ {
		out = catmullRomSegment(out, control[i], control[i+1], control[i+2], control[i+3], samples, alpha)
	}
	return out
}

func catmullRomSegment(out []r2.Vec, p0, p1, p2, p3 r2.Vec, samples int, alpha float64) []r2.Vec {
	next := func(t float64, a, b r2.Vec) float64 {
		return t + math.Max(math.Pow(r2.Norm(r2.Sub(b, a)), alpha), minKnot)
	}

	t0 := 0.0
	t1 := next(t0, p0, p1)
	t2 := next(t1, p1, p2)
	t3 := next(t2, p2, p3)

	lerp := func(a, b r2.Vec, ta, tb, t float64) r2.Vec {
		return r2.Add(r2.Scale((tb-t)/(tb-ta), a), r2.Scale((t-ta)/(tb-ta), b))
	}

	for s := 0; s <= samples; s++ {
		t := t1 + (t2-t1)*float64(s)/float64(samples)

		a1 := lerp(p0, p1, t0, t1, t)
		a2 := lerp(p1, p2, t1, t2, t)
		a3 := lerp(p2, p3, t2, t3, t)
		b1 := lerp(a1, a2, t0, t2, t)
		b2 := lerp(a2, a3, t1, t3, t)
		out = append(out, lerp(b1, b2, t1, t2, t))
	}
	return out
}
