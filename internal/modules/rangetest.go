package modules

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Basicprogrammer10/radio-data/pkg/coding"
	"github.com/Basicprogrammer10/radio-data/pkg/dsp"
)

// rangeCode is the DTMF sequence that triggers a reply.
const rangeCode = "ABCD"

// rangeReply is the default reply, one "freq;seconds" tone per line.
const rangeReply = "880;0.4\n660;0.4\n440;0.6"

// RangeTest listens for the trigger code and answers with a tone sequence,
// so an operator walking away from the station can probe how far the link
// reaches. Input and output state are locked separately; decoding must not
// stall the playback callback.
type RangeTest struct {
	// Reply overrides the reply sequence, in dsp.ParseSequence format.
	Reply string

	inMu     sync.Mutex
	chunks   *chunker
	decoder  *coding.DtmfDecoder
	progress int

	outMu       sync.Mutex
	outChannels int
	playing     *dsp.Sequence
	template    *dsp.Sequence
}

func (m *RangeTest) Name() string { return "range-test" }

func (m *RangeTest) Init(ctx InitContext) error {
	reply := m.Reply
	if reply == "" {
		reply = rangeReply
	}
	template, err := dsp.ParseSequence(reply, ctx.SampleRate)
	if err != nil {
		return err
	}

	m.inMu.Lock()
	m.chunks = newChunker(dtmfChunkSize, ctx.InputChannels)
	m.decoder = coding.NewDtmfDecoder(ctx.SampleRate, m.onSymbol)
	m.inMu.Unlock()

	m.outMu.Lock()
	m.outChannels = ctx.OutputChannels
	m.template = template
	m.outMu.Unlock()
	return nil
}

func (m *RangeTest) Input(samples []float32) {
	m.inMu.Lock()
	defer m.inMu.Unlock()
	m.chunks.push(samples)
	m.chunks.drain(m.decoder.Process)
}

// onSymbol runs under the input lock and tracks progress through the
// trigger code. Any stray symbol resets the match.
func (m *RangeTest) onSymbol(symbol byte) {
	if symbol != rangeCode[m.progress] {
		m.progress = 0
		if symbol != rangeCode[0] {
			return
		}
	}

	m.progress++
	if m.progress < len(rangeCode) {
		return
	}
	m.progress = 0

	logrus.Info("range probe received, replying")
	m.outMu.Lock()
	m.template.Reset()
	m.playing = m.template
	m.outMu.Unlock()
}

func (m *RangeTest) Output(samples []float32) {
	m.outMu.Lock()
	defer m.outMu.Unlock()

	clear(samples)
	if m.playing == nil {
		return
	}

	for frame := 0; frame < len(samples)/m.outChannels; frame++ {
		sample, ok := m.playing.Next()
		if !ok {
			m.playing = nil
			return
		}
		for c := 0; c < m.outChannels; c++ {
			samples[frame*m.outChannels+c] = sample
		}
	}
}
