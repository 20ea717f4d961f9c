package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/squish/internal/sim"
)

// PowerSpectrum returns the magnitude of the first half of the spectrum of
// data after removing its mean and applying a Hann window.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	windowed := make([]float64, n)
	for i, v := range data {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = (v - mean) * w
	}

	spectrum := fft.FFTReal(windowed)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC bin
// of samples taken every dt seconds, or 0 if there is none.
func DominantFrequency(samples []float64, dt float64) float64 {
	ps := PowerSpectrum(samples)
	if len(ps) < 2 || dt <= 0 {
		return 0
	}

	best, peak := 0, 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > peak {
			best, peak = i, ps[i]
		}
	}
	if best == 0 {
		return 0
	}
	return float64(best) / (float64(len(samples)) * dt)
}

// WobbleSeries returns the radius of gyration of one body in every frame.
func WobbleSeries(frames []sim.Frame, body int) []float64 {
	out := make([]float64, 0, len(frames))
	for _, f := range frames {
		if body < 0 || body >= len(f.Positions) {
			continue
		}
		out = append(out, Gyration(f.Positions[body]))
	}
	return out
}

func Gyration(pts []r2.Vec) float64 {
	if len(pts) == 0 {
		return 0
	}
	var c r2.Vec
	for _, p := range pts {
		c = r2.Add(c, p)
	}
	c = r2.Scale(1/float64(len(pts)), c)

	sum := 0.0
	for _, p := range pts {
		sum += r2.Norm2(r2.Sub(p, c))
	}
	return math.Sqrt(sum / float64(len(pts)))
}
