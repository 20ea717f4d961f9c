package sim

import (
	"context"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/squish/internal/scene"
)

// Ensemble runs copies of a scene concurrently, each with its points given a
// small random velocity drawn from its own seed.
type Ensemble struct {
	base      *scene.Scene
	metrics   func() []Metric
	numRuns   int
	seedStart int64
	Jitter    float64
}

func NewEnsemble(base *scene.Scene, numRuns int, seedStart int64, metrics func() []Metric) *Ensemble {
	return &Ensemble{base: base, metrics: metrics, numRuns: numRuns, seedStart: seedStart, Jitter: 10}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			sc := e.base.Clone()
			jitter(sc, rand.New(rand.NewSource(cfgCopy.Seed)), e.Jitter)

			s := New(sc)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

func jitter(sc *scene.Scene, rng *rand.Rand, amount float64) {
	for _, b := range sc.Bodies {
		for i := range b.Points {
			kick := r2.Vec{X: rng.NormFloat64() * amount, Y: rng.NormFloat64() * amount}
			b.Points[i].Velocity = r2.Add(b.Points[i].Velocity, kick)
		}
	}
}
