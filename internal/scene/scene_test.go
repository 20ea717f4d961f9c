package scene

import (
	"context"
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/squish/internal/softbody"
)

func twoBodies() *Scene {
	left := softbody.RegularPolygon(12, 50)
	left.Translate(r2.Vec{X: -200})
	right := softbody.RegularPolygon(12, 50)
	right.Translate(r2.Vec{X: 200})
	return New(r2.Vec{X: 400, Y: 300}, left, right)
}

func TestFrameAppliesGravity(t *testing.T) {
	s := twoBodies()
	before := s.Bodies[0].Centroid()

	for i := 0; i < 10; i++ {
		if err := s.Frame(context.Background(), 0.01); err != nil {
			t.Fatalf("frame failed: %v", err)
		}
	}

	after := s.Bodies[0].Centroid()
	if after.Y >= before.Y {
		t.Errorf("body did not fall: %v -> %v", before, after)
	}
	if s.Bodies[1].Centroid().X <= 0 {
		t.Error("right body crossed over")
	}
}

func TestFrameWithoutGravityStaysPut(t *testing.T) {
	s := twoBodies()
	s.Gravity = r2.Vec{}
	before := s.Bodies[1].Centroid()

	for i := 0; i < 50; i++ {
		if err := s.Frame(context.Background(), 0.01); err != nil {
			t.Fatal(err)
		}
	}

	if d := r2.Norm(r2.Sub(s.Bodies[1].Centroid(), before)); d > 1e-6 {
		t.Errorf("body drifted by %v", d)
	}
}

func TestFrameCanceled(t *testing.T) {
	s := twoBodies()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Frame(ctx, 0.01)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGrabAndDrag(t *testing.T) {
	s := twoBodies()
	s.Gravity = r2.Vec{}

	if s.Grab(r2.Vec{}) {
		t.Fatal("grabbed empty space")
	}
	if !s.Grab(r2.Vec{X: 200}) {
		t.Fatal("failed to grab right body")
	}
	if s.Drag.Body != 1 {
		t.Fatalf("grabbed body %d, want 1", s.Drag.Body)
	}

	s.MoveCursor(r2.Vec{X: 200, Y: 150})
	for i := 0; i < 20; i++ {
		if err := s.Frame(context.Background(), 0.01); err != nil {
			t.Fatal(err)
		}
	}

	if s.Bodies[1].Centroid().Y <= 0 {
		t.Errorf("dragged body did not follow cursor: %v", s.Bodies[1].Centroid())
	}
	if c := s.Bodies[0].Centroid(); r2.Norm(r2.Sub(c, r2.Vec{X: -200})) > 1e-6 {
		t.Errorf("untouched body moved to %v", c)
	}

	s.Release()
	if s.Drag.Active || s.Drag.Body != -1 {
		t.Error("release did not clear the drag")
	}
}

func TestBodyAtPrefersTopmost(t *testing.T) {
	a := softbody.RegularPolygon(8, 50)
	b := softbody.RegularPolygon(8, 50)
	b.Translate(r2.Vec{X: 20})
	s := New(r2.Vec{X: 400, Y: 300}, a, b)

	if got := s.BodyAt(r2.Vec{X: 10}); got != 1 {
		t.Errorf("BodyAt overlap = %d, want 1", got)
	}
	if got := s.BodyAt(r2.Vec{X: -45}); got != 0 {
		t.Errorf("BodyAt left = %d, want 0", got)
	}
	if got := s.BodyAt(r2.Vec{X: 300}); got != -1 {
		t.Errorf("BodyAt empty = %d, want -1", got)
	}
}

func TestResetRestoresSnapshot(t *testing.T) {
	s := twoBodies()
	start := s.Bodies[0].Positions()
	s.Bodies[0].Params.Shape.Strength = 9

	for i := 0; i < 30; i++ {
		if err := s.Frame(context.Background(), 0.01); err != nil {
			t.Fatal(err)
		}
	}
	s.Grab(s.Bodies[0].Centroid())
	s.Reset()

	for i, p := range s.Bodies[0].Positions() {
		if p != start[i] {
			t.Fatalf("point %d not restored: %v vs %v", i, p, start[i])
		}
	}
	if s.Bodies[0].Params.Shape.Strength != softbody.DefaultSpring.Strength {
		t.Error("params not restored")
	}
	if s.Drag.Active {
		t.Error("reset should release the drag")
	}
}

func TestContactsAndClone(t *testing.T) {
	s := New(r2.Vec{X: 100, Y: 100}, softbody.RegularPolygon(8, 60))
	s.Bodies[0].Translate(r2.Vec{Y: -80})

	if err := s.Frame(context.Background(), 0.01); err != nil {
		t.Fatal(err)
	}
	if s.Contacts() == 0 {
		t.Error("expected wall contacts for a body poking through the floor")
	}
	if s.Stats(0).Contacts != s.Contacts() {
		t.Error("per-body stats disagree with total")
	}
	if s.Stats(5) != (softbody.StepStats{}) {
		t.Error("out of range stats should be zero")
	}

	c := s.Clone()
	c.Bodies[0].Translate(r2.Vec{X: 10})
	if c.Bodies[0].Centroid() == s.Bodies[0].Centroid() {
		t.Error("clone shares bodies with the original")
	}
}
