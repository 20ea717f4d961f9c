// Package analysis provides frequency-domain tools for recorded runs.
//
// A soft body that is disturbed wobbles around its rest shape; the wobble
// frequency depends on the spring and shape-matching strengths:
//
//	series := analysis.WobbleSeries(result.Frames, 0)
//	hz := analysis.DominantFrequency(series, cfg.Dt*float64(cfg.RecordEvery))
package analysis
