package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/squish/internal/config"
	"github.com/san-kum/squish/internal/metrics"
	"github.com/san-kum/squish/internal/sim"
)

// GridSearch tries every combination of the given parameter values and keeps
// the one that minimises a metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Evaluate runs cfg headless and returns the named metric.
func Evaluate(ctx context.Context, cfg *config.Config, metricName string) (float64, error) {
	m, err := metrics.ByName(metricName)
	if err != nil {
		return 0, err
	}
	sc, err := cfg.BuildScene()
	if err != nil {
		return 0, err
	}
	s := sim.New(sc)
	s.AddMetric(m)
	result, err := s.Run(ctx, cfg.SimConfig())
	if err != nil {
		return 0, err
	}
	if len(result.Errors) > 0 {
		return math.Inf(1), nil
	}
	return result.Metrics[metricName], nil
}

// Search returns the best parameter set and its metric value. Combinations
// that fail to build or blow up score +Inf.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, metricName string) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("optim: %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}
	if _, err := metrics.ByName(metricName); err != nil {
		return nil, 0, err
	}
	for _, name := range g.paramNames {
		if base.Param(name) == nil {
			return nil, 0, fmt.Errorf("optim: unknown parameter %q", name)
		}
	}

	best := math.Inf(1)
	var bestParams map[string]float64

	if err := g.searchRecursive(ctx, 0, make(map[string]float64), base, metricName, &best, &bestParams); err != nil {
		return nil, 0, err
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		cfg := base.Clone()
		for k, v := range current {
			if err := cfg.SetParam(k, v); err != nil {
				return err
			}
		}

		val, err := Evaluate(ctx, cfg, metricName)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return nil
		}

		if *bestParams == nil || val < *best {
			*best = val
			*bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, base, metricName, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
