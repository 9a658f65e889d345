package modules

import (
	"sync"

	"github.com/mjibson/go-dsp/fft"
	"github.com/sirupsen/logrus"

	"github.com/Basicprogrammer10/radio-data/pkg/dsp"
)

// Spectrum renders a live waterfall of the captured audio. FFT and drawing
// run on a worker goroutine; the audio callback only regroups samples and
// hands off blocks, dropping them when the worker falls behind.
type Spectrum struct {
	FFTSize int        // block length, 0 means 2048
	Window  dsp.Window // nil means hann
	// DisplayLow and DisplayHigh bound the rendered frequency range in Hz.
	// Zero DisplayHigh means the Nyquist frequency.
	DisplayLow  float64
	DisplayHigh float64
	Gain        float64 // display gain, 0 means unity
	Passthrough bool    // also forward the audio to the output device

	inMu   sync.Mutex
	chunks *chunker
	work   chan []float64

	outMu sync.Mutex
	pass  *dsp.Passthrough
}

func (m *Spectrum) Name() string { return "spectrum" }

func (m *Spectrum) fftSize() int {
	if m.FFTSize == 0 {
		return 2048
	}
	return m.FFTSize
}

func (m *Spectrum) Init(ctx InitContext) error {
	window := m.Window
	if window == nil {
		window = dsp.HannWindow{}
	}

	high := m.DisplayHigh
	if high == 0 {
		high = float64(ctx.SampleRate.Input) / 2
	}

	renderer := newWaterfall(waterfallConfig{
		SampleRate: ctx.SampleRate.Input,
		FFTSize:    m.fftSize(),
		Low:        m.DisplayLow,
		High:       high,
		Gain:       m.Gain,
	})

	m.inMu.Lock()
	m.chunks = newChunker(m.fftSize(), ctx.InputChannels)
	m.work = make(chan []float64, 4)
	m.inMu.Unlock()

	if m.Passthrough {
		pass, err := dsp.NewPassthrough(ctx.SampleRate, ctx.InputChannels, ctx.OutputChannels)
		if err != nil {
			return err
		}
		m.outMu.Lock()
		m.pass = pass
		m.outMu.Unlock()
	}

	go func() {
		for block := range m.work {
			window.Apply(block)
			spectrum := fft.FFTReal(block)

			magnitudes := make([]float64, len(block)/2)
			for i := range magnitudes {
				re := real(spectrum[i])
				im := imag(spectrum[i])
				magnitudes[i] = re*re + im*im
			}

			renderer.render(magnitudes)
		}
	}()
	return nil
}

func (m *Spectrum) Input(samples []float32) {
	m.inMu.Lock()
	m.chunks.push(samples)
	m.chunks.drain(func(chunk []float32) {
		block := make([]float64, len(chunk))
		for i, sample := range chunk {
			block[i] = float64(sample)
		}

		select {
		case m.work <- block:
		default:
			logrus.Debug("renderer behind, dropping fft block")
		}
	})
	m.inMu.Unlock()

	m.outMu.Lock()
	if m.pass != nil {
		if err := m.pass.Push(samples); err != nil {
			logrus.WithError(err).Warn("passthrough failed")
		}
	}
	m.outMu.Unlock()
}

func (m *Spectrum) Output(samples []float32) {
	m.outMu.Lock()
	defer m.outMu.Unlock()

	if m.pass == nil {
		clear(samples)
		return
	}
	m.pass.Pull(samples)
}
