package modules

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Basicprogrammer10/radio-data/pkg/coding"
	"github.com/Basicprogrammer10/radio-data/pkg/dsp"
)

// voxFrequency / voxSeconds shape the head tone that opens the transmitter
// squelch before data starts.
const (
	voxFrequency = 440.0
	voxSeconds   = 1.0
)

// DtmfSend plays a byte payload as a framed DTMF transmission: a VOX head
// tone, then `A#`, the payload nibbles, and a closing `#D`.
type DtmfSend struct {
	sendOnly

	// Data is the payload to transmit.
	Data []byte
	// Raw skips nibble encoding and session framing, sending Data as
	// literal DTMF symbols.
	Raw bool

	mu          sync.Mutex
	outChannels int
	head        *dsp.SmoothTone
	encoder     *coding.DtmfEncoder
}

func (m *DtmfSend) Name() string { return "dtmf-send" }

func (m *DtmfSend) Init(ctx InitContext) error {
	symbols := m.Data
	if !m.Raw {
		symbols = append([]byte("A#"), coding.BytesToSymbols(m.Data)...)
		symbols = append(symbols, '#', 'D')
	}

	encoder, err := coding.NewDtmfEncoder(symbols, ctx.SampleRate)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"bytes":   len(m.Data),
		"symbols": len(symbols),
	}).Info("queued dtmf transmission")

	m.mu.Lock()
	defer m.mu.Unlock()
	m.outChannels = ctx.OutputChannels
	m.head = dsp.NewSmoothTone(voxFrequency, ctx.SampleRate, voxSeconds)
	m.encoder = encoder
	return nil
}

func (m *DtmfSend) Output(samples []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for frame := 0; frame < len(samples)/m.outChannels; frame++ {
		sample, ok := m.head.Next()
		if !ok {
			sample, _ = m.encoder.Next()
		}
		for c := 0; c < m.outChannels; c++ {
			samples[frame*m.outChannels+c] = sample
		}
	}
}

func (m *DtmfSend) Done() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.encoder.Done()
}
