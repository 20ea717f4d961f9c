package analysis

import (
	"context"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/squish/internal/scene"
	"github.com/san-kum/squish/internal/sim"
	"github.com/san-kum/squish/internal/softbody"
)

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		name string
		hz   float64
		n    int
		dt   float64
	}{
		{"2 Hz", 2, 400, 0.01},
		{"5 Hz", 5, 1000, 0.01},
		{"odd length", 3, 300, 0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]float64, tt.n)
			for i := range data {
				data[i] = 10 + math.Sin(2*math.Pi*tt.hz*float64(i)*tt.dt)
			}
			got := DominantFrequency(data, tt.dt)
			res := 1 / (float64(tt.n) * tt.dt)
			if math.Abs(got-tt.hz) > res {
				t.Errorf("expected %.2f Hz, got %.2f", tt.hz, got)
			}
		})
	}
}

func TestDominantFrequencyDegenerate(t *testing.T) {
	if f := DominantFrequency(nil, 0.01); f != 0 {
		t.Errorf("expected 0 for empty input, got %f", f)
	}
	if f := DominantFrequency(make([]float64, 64), 0.01); f != 0 {
		t.Errorf("expected 0 for a constant signal, got %f", f)
	}
	if f := DominantFrequency([]float64{1, 2, 3, 4}, 0); f != 0 {
		t.Errorf("expected 0 for zero dt, got %f", f)
	}
}

func TestPowerSpectrumLength(t *testing.T) {
	ps := PowerSpectrum(make([]float64, 100))
	if len(ps) != 50 {
		t.Errorf("expected 50 bins, got %d", len(ps))
	}
	if PowerSpectrum([]float64{1}) != nil {
		t.Error("expected nil for a single sample")
	}
}

func TestGyration(t *testing.T) {
	b := softbody.RegularPolygon(16, 30)
	if g := Gyration(b.Positions()); math.Abs(g-30) > 1e-9 {
		t.Errorf("expected 30, got %f", g)
	}
	if Gyration(nil) != 0 {
		t.Error("expected 0 for no points")
	}
}

func TestWobbleSeries(t *testing.T) {
	b := softbody.RegularPolygon(16, 50)
	for i := range b.Points {
		// squash vertically
		b.Points[i].Position.Y *= 0.6
	}
	sc := scene.New(r2.Vec{X: 500, Y: 500}, b)
	sc.Gravity = r2.Vec{}
	sc.TimeScale = 1

	result, err := sim.New(sc).Run(context.Background(), sim.Config{Dt: 0.02, Duration: 20, RecordEvery: 1})
	if err != nil {
		t.Fatal(err)
	}

	series := WobbleSeries(result.Frames, 0)
	if len(series) != len(result.Frames) {
		t.Fatalf("expected %d samples, got %d", len(result.Frames), len(series))
	}
	if len(WobbleSeries(result.Frames, 3)) != 0 {
		t.Error("expected no samples for a missing body")
	}
	if series[0] >= 50 {
		t.Errorf("squashed body should start with gyration below 50, got %f", series[0])
	}
	if DominantFrequency(series, 0.02) <= 0 {
		t.Error("expected a wobble frequency for a squashed body")
	}
}
