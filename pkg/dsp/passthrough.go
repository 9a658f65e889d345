package dsp

import (
	"fmt"

	resampler "github.com/tphakala/go-audio-resampler"
)

// passthroughBuffer is the playback lead-in, in seconds. Output stays silent
// until this much resampled audio is queued, absorbing callback jitter.
const passthroughBuffer = 5.0 / 1000.0

// Passthrough forwards captured audio to the output device, resampling when
// the two streams run at different rates. The audio is downmixed to mono and
// replicated across the output channels.
type Passthrough struct {
	sampleRate  SampleRate
	inChannels  int
	outChannels int

	engine  monoResampler // nil when input and output rates match
	mono    []float32
	queue   []float32
	minFill int
	primed  bool
}

type monoResampler interface {
	ProcessFloat32(input []float32) ([]float32, error)
}

// NewPassthrough creates a passthrough between streams with the given
// channel counts.
func NewPassthrough(sampleRate SampleRate, inChannels, outChannels int) (*Passthrough, error) {
	p := &Passthrough{
		sampleRate:  sampleRate,
		inChannels:  inChannels,
		outChannels: outChannels,
		minFill:     int(float64(sampleRate.Output) * passthroughBuffer),
	}

	if sampleRate.Input != sampleRate.Output {
		engine, err := resampler.NewSimple(
			float64(sampleRate.Input),
			float64(sampleRate.Output),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create resampler: %w", err)
		}
		p.engine = engine
	}

	return p, nil
}

// Push adds captured interleaved samples, resampling them into the output
// queue.
func (p *Passthrough) Push(interleaved []float32) error {
	p.mono = Downmix(p.mono[:0], interleaved, p.inChannels)

	if p.engine == nil {
		p.queue = append(p.queue, p.mono...)
		return nil
	}

	out, err := p.engine.ProcessFloat32(p.mono)
	if err != nil {
		return fmt.Errorf("resample failed: %w", err)
	}
	p.queue = append(p.queue, out...)
	return nil
}

// Pull fills an interleaved output buffer from the queue, emitting silence
// until the lead-in buffer is filled and on underrun.
func (p *Passthrough) Pull(out []float32) {
	if !p.primed {
		if len(p.queue) < p.minFill {
			clear(out)
			return
		}
		p.primed = true
	}

	frames := len(out) / p.outChannels
	available := min(frames, len(p.queue))
	for frame := 0; frame < available; frame++ {
		for c := 0; c < p.outChannels; c++ {
			out[frame*p.outChannels+c] = p.queue[frame]
		}
	}
	for i := available * p.outChannels; i < len(out); i++ {
		out[i] = 0
	}

	p.queue = p.queue[:copy(p.queue, p.queue[available:])]
	if len(p.queue) == 0 {
		p.primed = false
	}
}
