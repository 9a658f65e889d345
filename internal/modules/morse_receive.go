package modules

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Basicprogrammer10/radio-data/pkg/coding"
)

// morseChunkSize keeps the analysis block well under a dit at practical
// speeds, so edges land within a chunk of their true position.
const morseChunkSize = 512

// MorseReceive decodes a keyed carrier and streams the recovered characters
// to stdout as they arrive.
type MorseReceive struct {
	receiveOnly

	Frequency float64       // carrier, 0 means 700 Hz
	Dit       time.Duration // keying speed, 0 means 60 ms

	// OnChar, when set, also receives every decoded character.
	OnChar func(rune)

	mu      sync.Mutex
	chunks  *chunker
	decoder *coding.MorseDecoder
}

func (m *MorseReceive) Name() string { return "morse-receive" }

func (m *MorseReceive) Init(ctx InitContext) error {
	frequency := m.Frequency
	if frequency == 0 {
		frequency = 700
	}
	dit := m.Dit
	if dit == 0 {
		dit = 60 * time.Millisecond
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunks = newChunker(morseChunkSize, ctx.InputChannels)
	m.decoder = coding.NewMorseDecoder(frequency, dit, ctx.SampleRate, m.onChar)
	return nil
}

func (m *MorseReceive) Input(samples []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunks.push(samples)
	m.chunks.drain(m.decoder.Process)
}

// onChar runs under the Input lock.
func (m *MorseReceive) onChar(char rune) {
	fmt.Fprintf(os.Stdout, "%c", char)
	if m.OnChar != nil {
		m.OnChar(char)
	}
}
