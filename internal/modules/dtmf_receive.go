package modules

import (
	"bytes"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Basicprogrammer10/radio-data/pkg/coding"
)

// dtmfChunkSize is the analysis block length. At common rates it is short
// enough to see several chunks per symbol slot.
const dtmfChunkSize = 512

// DtmfReceive listens for framed DTMF transmissions and logs the decoded
// payload of every complete `A#...#D` session.
type DtmfReceive struct {
	receiveOnly

	// OnPayload, when set, also receives every decoded payload.
	OnPayload func([]byte)

	mu      sync.Mutex
	chunks  *chunker
	decoder *coding.DtmfDecoder
	symbols []byte
}

func (m *DtmfReceive) Name() string { return "dtmf-receive" }

func (m *DtmfReceive) Init(ctx InitContext) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunks = newChunker(dtmfChunkSize, ctx.InputChannels)
	m.decoder = coding.NewDtmfDecoder(ctx.SampleRate, m.onSymbol)
	return nil
}

func (m *DtmfReceive) Input(samples []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunks.push(samples)
	m.chunks.drain(m.decoder.Process)
}

// onSymbol runs under the Input lock.
func (m *DtmfReceive) onSymbol(symbol byte) {
	logrus.WithField("symbol", string(symbol)).Debug("dtmf symbol")
	m.symbols = append(m.symbols, symbol)

	if !bytes.HasSuffix(m.symbols, []byte("#D")) {
		return
	}

	body := m.symbols[:len(m.symbols)-2]
	start := bytes.LastIndex(body, []byte("A#"))
	if start < 0 {
		return
	}
	m.symbols = m.symbols[:0]

	payload, err := coding.SymbolsToBytes(body[start+2:])
	if err != nil {
		logrus.WithError(err).Warn("dropping corrupt dtmf session")
		return
	}

	logrus.WithFields(logrus.Fields{
		"bytes":   len(payload),
		"payload": string(payload),
	}).Info("received dtmf payload")

	if m.OnPayload != nil {
		m.OnPayload(payload)
	}
}
