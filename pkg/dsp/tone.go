package dsp

import "math"

// Tone is a phase-accumulating sine generator. It is the basis for most
// audio produced by this program.
type Tone struct {
	i          int
	freq       float64
	sampleRate float64
	limit      int // sample-count cutoff, -1 for unlimited
}

// NewTone creates a tone at the given frequency, clocked by the output side
// of the sample rate pair.
func NewTone(freq float64, sampleRate SampleRate) *Tone {
	return &Tone{
		freq:       freq,
		sampleRate: float64(sampleRate.Output),
		limit:      -1,
	}
}

// Duration limits the tone to n samples, after which Next reports false.
func (t *Tone) Duration(n int) *Tone {
	t.limit = n
	return t
}

// Reset rewinds the phase index to the start. The duration limit is kept, so
// a finished tone produces its full run again.
func (t *Tone) Reset() {
	t.i = 0
}

// Next advances one sample. The second return is false once the configured
// duration has been exceeded.
func (t *Tone) Next() (float32, bool) {
	t.i++
	if t.limit >= 0 && t.i > t.limit {
		return 0, false
	}
	return float32(math.Sin(float64(t.i) * t.freq * 2 * math.Pi / t.sampleRate)), true
}

// SmoothTone wraps a Tone and ramps the volume linearly at the start and end
// of the run to avoid clicks. The default ramp length is one period of the
// carrier, which keeps the fade inaudible as a pitch artifact.
//
// A zero or negative frequency disables the ramps; callers must not rely on
// the output in that case.
type SmoothTone struct {
	inner    Tone
	duration int // total samples
	inPoint  int // ramp-up samples
	outPoint int // ramp-down samples
}

// NewSmoothTone creates a smooth tone with the given frequency and duration
// in seconds.
func NewSmoothTone(freq float64, sampleRate SampleRate, seconds float64) *SmoothTone {
	period := 0
	if freq > 0 {
		period = int(float64(sampleRate.Output) / freq)
	}

	tone := &SmoothTone{
		inner:    Tone{freq: freq, sampleRate: float64(sampleRate.Output)},
		inPoint:  period,
		outPoint: period,
	}
	return tone.Duration(seconds)
}

// Duration sets the total duration of the tone in seconds.
func (t *SmoothTone) Duration(seconds float64) *SmoothTone {
	t.duration = int(t.inner.sampleRate * seconds)
	t.inner.limit = t.duration
	return t
}

// DurationSamples sets the total duration of the tone in samples.
func (t *SmoothTone) DurationSamples(n int) *SmoothTone {
	t.duration = n
	t.inner.limit = n
	return t
}

// InPoint sets the length of the volume ramp up, in seconds.
func (t *SmoothTone) InPoint(seconds float64) *SmoothTone {
	t.inPoint = int(t.inner.sampleRate * seconds)
	return t
}

// OutPoint sets the length of the volume ramp down, in seconds.
func (t *SmoothTone) OutPoint(seconds float64) *SmoothTone {
	t.outPoint = int(t.inner.sampleRate * seconds)
	return t
}

// Reset rewinds the inner tone to the beginning.
func (t *SmoothTone) Reset() {
	t.inner.Reset()
}

func (t *SmoothTone) Next() (float32, bool) {
	raw, ok := t.inner.Next()
	if !ok {
		return 0, false
	}

	i := float32(t.inner.i)
	if t.inPoint > 0 && i < float32(t.inPoint) {
		raw *= i / float32(t.inPoint)
	}

	rampStart := float32(t.duration - t.outPoint)
	if t.outPoint > 0 && i > rampStart {
		fade := 1 - (i-rampStart)/float32(t.outPoint)
		if fade < 0 {
			fade = 0
		}
		raw *= fade
	}

	return raw, true
}
