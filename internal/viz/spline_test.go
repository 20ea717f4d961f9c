package viz

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/squish/internal/softbody"
)

func TestCatmullRomPassesThroughControlPoints(t *testing.T) {
	control := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 3, Y: 3}, {X: 4, Y: 1}, {X: 6, Y: 0}}

	for _, alpha := range []float64{0, 0.5, 1} {
		out := CatmullRom(control, 8, alpha)
		if len(out) != 2*9 {
			t.Fatalf("alpha %.1f: expected 18 samples, got %d", alpha, len(out))
		}
		checks := map[int]r2.Vec{0: control[1], 8: control[2], 9: control[2], 17: control[3]}
		for i, want := range checks {
			if r2.Norm(r2.Sub(out[i], want)) > 1e-9 {
				t.Errorf("alpha %.1f: sample %d = %v, want %v", alpha, i, out[i], want)
			}
		}
	}
}

func TestCatmullRomStraightLine(t *testing.T) {
	control := []r2.Vec{{X: 0}, {X: 1}, {X: 2}, {X: 3}}
	for _, p := range CatmullRom(control, 10, CentripetalAlpha) {
		if math.Abs(p.Y) > 1e-12 || p.X < 1-1e-12 || p.X > 2+1e-12 {
			t.Errorf("sample %v left the segment", p)
		}
	}
}

func TestCatmullRomDegenerate(t *testing.T) {
	if out := CatmullRom([]r2.Vec{{X: 1}, {X: 2}}, 4, 0.5); len(out) != 2 {
		t.Errorf("expected short input returned unchanged, got %d points", len(out))
	}

	same := []r2.Vec{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}}
	for _, p := range CatmullRom(same, 4, 0.5) {
		if !finite(p) {
			t.Fatalf("coincident control points produced %v", p)
		}
	}
}

func TestCatmullRomClosesOutline(t *testing.T) {
	b := softbody.RegularPolygon(8, 10)
	out := CatmullRom(b.OutlinePoints(), 6, CentripetalAlpha)

	// n+4 control points give n+1 windows spanning b0..b0 and then b0..b1.
	if len(out) != 9*7 {
		t.Fatalf("expected %d samples, got %d", 9*7, len(out))
	}
	first := out[0]
	if r2.Norm(r2.Sub(first, b.Points[0].Position)) > 1e-9 {
		t.Errorf("curve should start at b0, got %v", first)
	}
	closing := out[8*7-1]
	if r2.Norm(r2.Sub(closing, b.Points[0].Position)) > 1e-9 {
		t.Errorf("curve should return to b0, got %v", closing)
	}
	for _, p := range out {
		if r := r2.Norm(p); r > 10.5 || r < 9 {
			t.Errorf("sample %v strays from the circle (r=%.3f)", p, r)
		}
	}
}
