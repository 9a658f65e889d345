// Package coding implements the tone codecs used to push data through a
// narrowband audio channel: DTMF for binary payloads and Morse for text.
package coding

import (
	"fmt"
	"strings"
	"time"

	"github.com/Basicprogrammer10/radio-data/pkg/dsp"
)

// The standard DTMF grid. A symbol is the sum of one row and one column
// tone; the two frequency sets are disjoint so both can be recovered
// independently with the Goertzel filter.
var (
	dtmfRows = [4]float64{697, 770, 852, 941}
	dtmfCols = [4]float64{1209, 1336, 1477, 1633}
)

// dtmfSymbols addresses the 4x4 grid row-major, so symbol index = row*4+col.
const dtmfSymbols = "123A456B789C*0#D"

// Tunable decoder defaults. See the fields on DtmfDecoder.
const (
	dtmfMagnitudeEpsilon = 0.05
	dtmfHistoryLength    = 10
	dtmfDebounce         = time.Second
)

// DtmfEncoder turns a queue of DTMF symbols into a dual-tone sample stream,
// separating consecutive symbols with a cooldown of silence.
type DtmfEncoder struct {
	sampleRate dsp.SampleRate
	symbolLen  int // samples of each symbol slot
	sleepLen   int // samples of leading silence per slot

	low  *dsp.Tone
	high *dsp.Tone
	data []byte

	cooldown int
	i        int
}

// NewDtmfEncoder creates an encoder for a slice of DTMF symbol characters
// (`0-9`, `A-D`, `*`, `#`). Unknown symbols are rejected up front.
func NewDtmfEncoder(symbols []byte, sampleRate dsp.SampleRate) (*DtmfEncoder, error) {
	for _, symbol := range symbols {
		if strings.IndexByte(dtmfSymbols, symbol) < 0 {
			return nil, fmt.Errorf("invalid dtmf symbol %q", symbol)
		}
	}

	return &DtmfEncoder{
		sampleRate: sampleRate,
		symbolLen:  int(sampleRate.Output / 2),
		sleepLen:   int(sampleRate.Output / 4),
		low:        dsp.NewTone(0, sampleRate),
		high:       dsp.NewTone(0, sampleRate),
		data:       append([]byte(nil), symbols...),
	}, nil
}

// Next produces one output sample, false once the symbol queue is exhausted.
func (e *DtmfEncoder) Next() (float32, bool) {
	if e.cooldown > 0 {
		e.cooldown--
		return 0, true
	}

	if e.i%e.symbolLen == 0 {
		index := e.i / e.symbolLen
		if index >= len(e.data) {
			return 0, false
		}

		symbol := strings.IndexByte(dtmfSymbols, e.data[index])
		e.low = dsp.NewTone(dtmfCols[symbol%4], e.sampleRate)
		e.high = dsp.NewTone(dtmfRows[symbol/4], e.sampleRate)
		e.cooldown = e.sleepLen
	}

	e.i++
	low, _ := e.low.Next()
	high, _ := e.high.Next()
	return low*0.5 + high*0.5, true
}

// Done reports whether every queued symbol has been played out.
func (e *DtmfEncoder) Done() bool {
	return e.i/e.symbolLen >= len(e.data)
}

// DtmfDecoder recovers DTMF symbols from fixed-size chunks of mono audio.
// It is a best-effort heuristic: ambiguous or below-threshold chunks produce
// no emission rather than a guess.
type DtmfDecoder struct {
	// MagnitudeEpsilon is the minimum Goertzel magnitude for a row or
	// column tone to count as present.
	MagnitudeEpsilon float64
	// HistoryLength is the number of consecutive chunk guesses that must
	// agree before a symbol is emitted.
	HistoryLength int
	// Debounce is how long a sustained tone is treated as a single symbol
	// rather than a repeat.
	Debounce time.Duration

	sampleRate dsp.SampleRate
	history    []byte
	last       byte
	hasLast    bool
	lastEmit   time.Time
	callback   func(byte)
}

// NewDtmfDecoder creates a decoder; the callback runs once per confirmed
// symbol, on the goroutine that calls Process.
func NewDtmfDecoder(sampleRate dsp.SampleRate, callback func(byte)) *DtmfDecoder {
	return &DtmfDecoder{
		MagnitudeEpsilon: dtmfMagnitudeEpsilon,
		HistoryLength:    dtmfHistoryLength,
		Debounce:         dtmfDebounce,

		sampleRate: sampleRate,
		history:    make([]byte, 0, dtmfHistoryLength),
		callback:   callback,
	}
}

// Process analyzes one chunk of mono samples, emitting a symbol through the
// callback once the history window is full and unanimous.
func (d *DtmfDecoder) Process(chunk []float32) {
	symbol, ok := d.detect(chunk)
	if !ok {
		return
	}

	d.history = append(d.history, symbol)
	if overflow := len(d.history) - d.HistoryLength; overflow > 0 {
		d.history = d.history[:copy(d.history, d.history[overflow:])]
	}

	if len(d.history) < d.HistoryLength {
		return
	}
	for _, previous := range d.history {
		if previous != symbol {
			return
		}
	}

	if d.hasLast && d.last == symbol && time.Since(d.lastEmit) <= d.Debounce {
		return
	}

	d.lastEmit = time.Now()
	d.last = symbol
	d.hasLast = true
	d.callback(symbol)
}

// detect runs the eight Goertzel filters over a chunk and picks the
// strongest row and column tone, abstaining when either is below the
// magnitude epsilon.
func (d *DtmfDecoder) detect(chunk []float32) (byte, bool) {
	maxIndex := func(freqs [4]float64) (int, float64) {
		best, bestMag := 0, 0.0
		for i, freq := range freqs {
			if mag := dsp.GoertzelMagnitude(freq, chunk, d.sampleRate.Input); mag > bestMag {
				best, bestMag = i, mag
			}
		}
		return best, bestMag
	}

	row, rowMag := maxIndex(dtmfRows)
	col, colMag := maxIndex(dtmfCols)
	if rowMag < d.MagnitudeEpsilon || colMag < d.MagnitudeEpsilon {
		return 0, false
	}

	return dtmfSymbols[row*4+col], true
}
