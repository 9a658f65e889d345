package dsp

import "math"

// Window is a spectral window function applied to a sample block before the
// FFT to trade leakage against resolution.
type Window interface {
	Name() string
	// Apply scales the samples in place and returns the same slice.
	Apply(samples []float64) []float64
}

// Windows lists the names accepted by GetWindow.
var Windows = []string{"square", "hann", "blackman"}

// GetWindow resolves a window by name or single-letter alias.
func GetWindow(name string) (Window, bool) {
	switch name {
	case "s", "square":
		return SquareWindow{}, true
	case "h", "hann":
		return HannWindow{}, true
	case "b", "blackman":
		return BlackmanNuttallWindow{}, true
	}
	return nil, false
}

type SquareWindow struct{}

func (SquareWindow) Name() string { return "square" }

func (SquareWindow) Apply(samples []float64) []float64 { return samples }

type HannWindow struct{}

func (HannWindow) Name() string { return "hann" }

func (HannWindow) Apply(samples []float64) []float64 {
	n := float64(len(samples))
	for i := range samples {
		a := 2 * math.Pi * float64(i) / n
		samples[i] *= 0.5 * (1 - math.Cos(a))
	}
	return samples
}

type BlackmanNuttallWindow struct{}

func (BlackmanNuttallWindow) Name() string { return "blackman" }

func (BlackmanNuttallWindow) Apply(samples []float64) []float64 {
	const (
		a0 = 0.3635819
		a1 = 0.4891775
		a2 = 0.1365995
		a3 = 0.0106411
	)

	n := float64(len(samples))
	for i := range samples {
		c := 2 * math.Pi * float64(i) / n
		samples[i] *= a0 - a1*math.Cos(c) + a2*math.Cos(2*c) - a3*math.Cos(3*c)
	}
	return samples
}
