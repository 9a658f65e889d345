package dsp

import "math"

// GoertzelMagnitude estimates the magnitude of one frequency within a window
// of samples using the Goertzel algorithm. The target is snapped to the
// nearest DFT bin and a second-order recursive filter is run across the
// window, which is O(N) per frequency and far cheaper than a full FFT when
// only a handful of bins are of interest.
//
// The result is normalized by the window length so that a pure full-scale
// sine at the target frequency reads close to 1.0 independent of N; silence
// reads close to 0.
func GoertzelMagnitude(freq float64, samples []float32, sampleRate uint32) float64 {
	n := float64(len(samples))
	if n == 0 {
		return 0
	}

	k := math.Floor(0.5 + n*freq/float64(sampleRate))
	omega := 2 * math.Pi * k / n
	sin, cos := math.Sincos(omega)
	coeff := 2 * cos

	var s1, s2 float64
	for _, sample := range samples {
		s := coeff*s1 - s2 + float64(sample)
		s2 = s1
		s1 = s
	}

	re := s1 - s2*cos
	im := s2 * sin
	return math.Hypot(re, im) * 2 / n
}
