package sim

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/san-kum/squish/internal/scene"
)

type Simulator struct {
	scene     *scene.Scene
	metrics   []Metric
	observers []Observer
	logger    *log.Logger
}

func New(s *scene.Scene) *Simulator {
	return &Simulator{
		scene:     s,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    log.New(io.Discard),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// WithLogger sets the logger used for run progress; the default discards.
func (s *Simulator) WithLogger(l *log.Logger) *Simulator {
	s.logger = l
	return s
}

func (s *Simulator) Scene() *scene.Scene { return s.scene }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	every := cfg.RecordEvery
	if every <= 0 {
		every = 1
	}

	result := &Result{
		Frames:  make([]Frame, 0, steps/every+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.logger.Debug("run started", "bodies", len(s.scene.Bodies), "steps", steps, "dt", cfg.Dt)

	t := 0.0
	result.Frames = append(result.Frames, Capture(s.scene, t))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.logger.Warn("run canceled", "step", i)
			return result, ctx.Err()
		default:
		}

		if err := s.scene.Frame(ctx, cfg.Dt); err != nil {
			return result, err
		}
		t += cfg.Dt
		result.StepsTaken++

		if cfg.ValidateState && !valid(s.scene) {
			err := SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
			s.logger.Error("state diverged", "step", i, "t", t)
			result.Errors = append(result.Errors, err)
			break
		}

		for _, m := range s.metrics {
			m.Observe(s.scene, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(s.scene, t)
		}

		if result.StepsTaken%every == 0 {
			result.Frames = append(result.Frames, Capture(s.scene, t))
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.logger.Debug("run finished", "steps", result.StepsTaken, "frames", len(result.Frames))
	return result, nil
}

// RunWithCallback steps until the duration elapses or callback returns false.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(*scene.Scene, float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(s.scene, t) {
			return nil
		}

		if err := s.scene.Frame(ctx, cfg.Dt); err != nil {
			return err
		}
		t += cfg.Dt

		if cfg.ValidateState && !valid(s.scene) {
			return fmt.Errorf("%w at t=%.4f", ErrInvalidState, t)
		}
	}

	return nil
}

func validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if !(cfg.Duration > 0) {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	return nil
}

func valid(s *scene.Scene) bool {
	for _, b := range s.Bodies {
		for _, p := range b.Points {
			for _, v := range [4]float64{p.Position.X, p.Position.Y, p.Velocity.X, p.Velocity.Y} {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return false
				}
			}
		}
	}
	return true
}
