package modules

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Basicprogrammer10/radio-data/pkg/coding"
)

// MorseSend keys a text message onto a carrier tone.
type MorseSend struct {
	sendOnly

	Text      string
	Frequency float64       // carrier, 0 means 700 Hz
	Dit       time.Duration // keying speed, 0 means 60 ms

	mu          sync.Mutex
	outChannels int
	encoder     *coding.MorseEncoder
}

func (m *MorseSend) Name() string { return "morse-send" }

func (m *MorseSend) frequency() float64 {
	if m.Frequency == 0 {
		return 700
	}
	return m.Frequency
}

func (m *MorseSend) dit() time.Duration {
	if m.Dit == 0 {
		return 60 * time.Millisecond
	}
	return m.Dit
}

func (m *MorseSend) Init(ctx InitContext) error {
	encoder := coding.NewMorseEncoder(m.frequency(), m.dit(), ctx.SampleRate)
	if err := encoder.AddData(m.Text); err != nil {
		return err
	}

	pattern, _ := coding.MorsePattern(m.Text)
	logrus.WithFields(logrus.Fields{
		"text":    m.Text,
		"pattern": pattern,
	}).Info("queued morse transmission")

	m.mu.Lock()
	defer m.mu.Unlock()
	m.outChannels = ctx.OutputChannels
	m.encoder = encoder
	return nil
}

func (m *MorseSend) Output(samples []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for frame := 0; frame < len(samples)/m.outChannels; frame++ {
		sample := m.encoder.Next()
		for c := 0; c < m.outChannels; c++ {
			samples[frame*m.outChannels+c] = sample
		}
	}
}

func (m *MorseSend) Done() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.encoder.Idle()
}
