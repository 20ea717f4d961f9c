package sim

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/squish/internal/scene"
)

var (
	// ErrInvalidState indicates a position or velocity became NaN or Inf.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrInvalidConfig indicates a run configuration that cannot be stepped.
	ErrInvalidConfig = errors.New("sim: invalid config")
)

type Metric interface {
	Name() string
	Observe(s *scene.Scene, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s *scene.Scene, t float64)
}

type Config struct {
	Dt            float64
	Duration      float64
	Seed          int64
	RecordEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 60,
		Duration:      10.0,
		RecordEvery:   1,
		ValidateState: true,
	}
}

// Frame is a recorded snapshot of every body's positions.
type Frame struct {
	Time      float64
	Positions [][]r2.Vec
	Centroids []r2.Vec
}

func Capture(s *scene.Scene, t float64) Frame {
	f := Frame{
		Time:      t,
		Positions: make([][]r2.Vec, len(s.Bodies)),
		Centroids: make([]r2.Vec, len(s.Bodies)),
	}
	for i, b := range s.Bodies {
		f.Positions[i] = b.Positions()
		f.Centroids[i] = b.Centroid()
	}
	return f
}

type Result struct {
	Frames     []Frame
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

func (e SimError) Unwrap() error {
	return ErrInvalidState
}
