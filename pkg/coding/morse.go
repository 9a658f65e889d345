package coding

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/Basicprogrammer10/radio-data/pkg/dsp"
)

// Morse is one element of a rendered glyph.
type Morse int

const (
	MorseDit Morse = iota
	MorseDah
	MorseGap   // inter-character silence
	MorseSpace // inter-word silence
)

// Element durations in dit units. Each keyed element (Dit, Dah) is followed
// by one extra dit of silence, so the silence seen on the wire is 1 dit
// within a glyph, 3 dits between characters and 7 dits between words.
func (m Morse) dits() int {
	switch m {
	case MorseDah:
		return 3
	case MorseGap:
		return 2
	case MorseSpace:
		return 4
	default:
		return 1
	}
}

func (m Morse) keyed() bool { return m == MorseDit || m == MorseDah }

func (m Morse) String() string {
	switch m {
	case MorseDit:
		return "."
	case MorseDah:
		return "-"
	case MorseGap:
		return " "
	case MorseSpace:
		return "/"
	}
	return "?"
}

// InvalidCharacterError reports a character with no Morse glyph.
type InvalidCharacterError struct {
	Char rune
}

func (e InvalidCharacterError) Error() string {
	return fmt.Sprintf("no morse glyph for character %q", e.Char)
}

// MorsePattern renders text as a dot-dash string, characters separated by a
// space and words by " / ".
func MorsePattern(text string) (string, error) {
	var out strings.Builder
	for i, char := range strings.ToUpper(text) {
		if i > 0 {
			out.WriteByte(' ')
		}
		if char == ' ' {
			out.WriteByte('/')
			continue
		}

		glyph, ok := morseGlyphs[char]
		if !ok {
			return "", InvalidCharacterError{Char: char}
		}
		out.WriteString(glyphKey(glyph))
	}
	return out.String(), nil
}

type encodeState int

const (
	stateIdle encodeState = iota
	stateSending
	stateWaiting
)

// MorseEncoder keys text onto a carrier tone, one element at a time. It is a
// pull generator: Next produces one output sample per call and returns
// silence once the queue is drained.
type MorseEncoder struct {
	sampleRate dsp.SampleRate
	frequency  float64
	ditLen     int // samples per dit

	tone      *dsp.SmoothTone
	queue     []Morse
	state     encodeState
	remaining int // samples left in the current element
}

// NewMorseEncoder creates an encoder keying the given carrier, with dit
// setting the keying speed.
func NewMorseEncoder(frequency float64, dit time.Duration, sampleRate dsp.SampleRate) *MorseEncoder {
	return &MorseEncoder{
		sampleRate: sampleRate,
		frequency:  frequency,
		ditLen:     int(float64(sampleRate.Output) * dit.Seconds()),
	}
}

// AddData queues text for transmission. Characters are uppercased before
// lookup. If any character has no glyph the whole call is rejected and
// nothing is queued.
func (e *MorseEncoder) AddData(text string) error {
	var elements []Morse
	for _, char := range text {
		char = unicode.ToUpper(char)
		glyph, ok := morseGlyphs[char]
		if !ok {
			return InvalidCharacterError{Char: char}
		}

		elements = append(elements, glyph...)
		if char != ' ' {
			elements = append(elements, MorseGap)
		}
	}

	e.queue = append(e.queue, elements...)
	return nil
}

// Idle reports whether the encoder has nothing left to play.
func (e *MorseEncoder) Idle() bool {
	return e.state == stateIdle && len(e.queue) == 0
}

// Next produces one output sample. An idle encoder produces silence.
func (e *MorseEncoder) Next() float32 {
	if e.remaining == 0 {
		e.advance()
	}
	if e.remaining == 0 {
		return 0
	}

	e.remaining--
	if e.state != stateSending {
		return 0
	}

	sample, ok := e.tone.Next()
	if !ok {
		return 0
	}
	return sample
}

// advance moves to the next element. A keyed element is followed by one dit
// of inter-element silence before the queue is consulted again.
func (e *MorseEncoder) advance() {
	if e.state == stateSending {
		e.state = stateWaiting
		e.remaining = e.ditLen
		return
	}

	if len(e.queue) == 0 {
		e.state = stateIdle
		return
	}

	element := e.queue[0]
	e.queue = e.queue[1:]
	e.remaining = element.dits() * e.ditLen

	if element.keyed() {
		e.state = stateSending
		e.tone = dsp.NewSmoothTone(e.frequency, e.sampleRate, 0).
			DurationSamples(e.remaining)
	} else {
		e.state = stateWaiting
	}
}

// Tunable decoder defaults. See the fields on MorseDecoder.
const (
	morseMagnitudeEpsilon = 0.05
	morseDurationEpsilon  = 0.7 // accepted deviation from a nominal length, in dits
	morseIdleDits         = 10
)

// morsePlaceholder stands in for a received glyph with no table entry.
const morsePlaceholder = '�'

// MorseDecoder recovers text from chunks of mono audio carrying a keyed
// tone. Timing is measured in elapsed sample counts, so decoding is
// deterministic for a given input stream regardless of how it is chunked.
type MorseDecoder struct {
	// MagnitudeEpsilon is the minimum Goertzel magnitude for the carrier to
	// count as keyed down.
	MagnitudeEpsilon float64

	sampleRate dsp.SampleRate
	frequency  float64
	ditLen     int
	callback   func(rune)

	inTone bool
	run    int // samples in the current tone or silence run
	glyph  []Morse
	closed bool // glyph already flushed during this silence run
}

// NewMorseDecoder creates a decoder listening for the given carrier; the
// callback runs once per decoded character, on the goroutine that calls
// Process.
func NewMorseDecoder(frequency float64, dit time.Duration, sampleRate dsp.SampleRate, callback func(rune)) *MorseDecoder {
	return &MorseDecoder{
		MagnitudeEpsilon: morseMagnitudeEpsilon,

		sampleRate: sampleRate,
		frequency:  frequency,
		ditLen:     int(float64(sampleRate.Input) * dit.Seconds()),
		callback:   callback,
	}
}

// Idle reports whether the carrier has been silent long enough that no
// transmission is in progress.
func (d *MorseDecoder) Idle() bool {
	return !d.inTone && d.run >= morseIdleDits*d.ditLen
}

// Process analyzes one chunk of mono samples. A chunk is treated as keyed
// down when the carrier magnitude clears the epsilon.
func (d *MorseDecoder) Process(chunk []float32) {
	tone := dsp.GoertzelMagnitude(d.frequency, chunk, d.sampleRate.Input) > d.MagnitudeEpsilon

	if tone == d.inTone {
		d.run += len(chunk)
		// Close out the glyph as soon as the silence is clearly more than
		// an inter-element gap, so the last character of a transmission is
		// not held hostage by a rising edge that never comes.
		if !d.inTone && !d.closed && d.run >= 2*d.ditLen {
			d.flushGlyph()
			d.closed = true
		}
		return
	}

	if d.inTone {
		d.fallingEdge()
	} else {
		d.risingEdge()
	}

	d.inTone = tone
	d.run = len(chunk)
}

// fallingEdge classifies the tone run that just ended as a dit or a dah.
// Runs too far from either nominal length are discarded as jitter.
func (d *MorseDecoder) fallingEdge() {
	dits := float64(d.run) / float64(d.ditLen)
	switch {
	case math.Abs(dits-1) <= morseDurationEpsilon:
		d.glyph = append(d.glyph, MorseDit)
	case math.Abs(dits-3) <= morseDurationEpsilon:
		d.glyph = append(d.glyph, MorseDah)
	}
	d.closed = false
}

// risingEdge classifies the silence run that just ended. Inter-element
// silence is ignored, a character gap closes the glyph and a word gap also
// emits a space.
func (d *MorseDecoder) risingEdge() {
	switch {
	case d.run >= 5*d.ditLen:
		if !d.closed {
			d.flushGlyph()
		}
		d.callback(' ')
	case d.run >= 2*d.ditLen:
		if !d.closed {
			d.flushGlyph()
		}
	}
	d.closed = false
}

func (d *MorseDecoder) flushGlyph() {
	if len(d.glyph) == 0 {
		return
	}

	char, ok := morseChars[glyphKey(d.glyph)]
	if !ok {
		char = morsePlaceholder
	}
	d.glyph = d.glyph[:0]
	d.callback(char)
}
