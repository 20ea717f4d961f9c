package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/squish/internal/config"
	"github.com/san-kum/squish/internal/metrics"
	"github.com/san-kum/squish/internal/optim"
	"github.com/san-kum/squish/internal/sim"
)

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run. It starts from Preset (or the defaults),
// then Config, then the overrides set here.
type ScenarioStep struct {
	Preset   string             `yaml:"preset"`
	Config   string             `yaml:"config"`
	Duration float64            `yaml:"duration"`
	Dt       float64            `yaml:"dt"`
	Seed     int64              `yaml:"seed"`
	Params   map[string]float64 `yaml:"params"`
	SaveAs   string             `yaml:"save_as"`
}

// StepResult pairs a run with the name it should be stored under.
type StepResult struct {
	Name   string
	Result *sim.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%s: scenario has no steps", path)
	}

	return &scenario, nil
}

// Resolve builds the config a step describes.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if s.Config != "" {
		if err := config.Merge(s.Config, cfg); err != nil {
			return nil, err
		}
	}
	if s.Duration > 0 {
		cfg.Duration = s.Duration
	}
	if s.Dt > 0 {
		cfg.Dt = s.Dt
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	for k, v := range s.Params {
		if err := cfg.SetParam(k, v); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

func (s ScenarioStep) name(i int) string {
	switch {
	case s.SaveAs != "":
		return s.SaveAs
	case s.Preset != "":
		return s.Preset
	}
	return fmt.Sprintf("step%d", i+1)
}

// RunScenario executes every step in order with all metrics attached. It
// stops at the first failing step and returns the results so far.
func RunScenario(ctx context.Context, scenario *Scenario, logger *log.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.name(i)
		logger.Info("running step", "step", i+1, "of", len(scenario.Steps), "name", name)

		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		sc, err := cfg.BuildScene()
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		s := sim.New(sc).WithLogger(logger)
		for _, m := range metrics.All() {
			s.AddMetric(m)
		}

		result, err := s.Run(ctx, cfg.SimConfig())
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Name: name, Result: result})
	}

	return results, nil
}

// ParameterSweep varies one parameter of a base config over an even range.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds the metrics of one sweep point.
type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
	Stable     bool
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *log.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step")
	}
	if sweep.Base.Param(sweep.ParamName) == nil {
		return nil, fmt.Errorf("unknown parameter: %s", sweep.ParamName)
	}
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	values := optim.Linspace(sweep.ParamMin, sweep.ParamMax, sweep.NumSteps)
	results := make([]SweepResult, 0, len(values))

	for i, v := range values {
		cfg := sweep.Base.Clone()
		if err := cfg.SetParam(sweep.ParamName, v); err != nil {
			return nil, err
		}

		sc, err := cfg.BuildScene()
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, v, err)
		}

		s := sim.New(sc)
		for _, m := range metrics.All() {
			s.AddMetric(m)
		}

		result, err := s.Run(ctx, cfg.SimConfig())
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue: v,
			Metrics:    result.Metrics,
			Stable:     len(result.Errors) == 0,
		})

		logger.Debug("sweep point", "n", i+1, "of", len(values), sweep.ParamName, v)
	}

	return results, nil
}
