package coding

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Basicprogrammer10/radio-data/pkg/dsp"
)

const (
	morseTestFreq = 700
	morseTestDit  = 60 * time.Millisecond
)

func TestMorsePattern(t *testing.T) {
	pattern, err := MorsePattern("SOS")
	if err != nil {
		t.Fatalf("pattern failed: %v", err)
	}
	if pattern != "... --- ..." {
		t.Errorf("SOS rendered as %q", pattern)
	}

	pattern, err = MorsePattern("ab cd")
	if err != nil {
		t.Fatalf("pattern failed: %v", err)
	}
	if pattern != ".- -... / -.-. -.." {
		t.Errorf("ab cd rendered as %q", pattern)
	}
}

func TestMorsePatternInvalid(t *testing.T) {
	_, err := MorsePattern("a~b")

	var invalid InvalidCharacterError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidCharacterError, got %v", err)
	}
	if invalid.Char != '~' {
		t.Errorf("error names %q, expected '~'", invalid.Char)
	}
}

func TestMorseEncoderRejectsWholeMessage(t *testing.T) {
	encoder := NewMorseEncoder(morseTestFreq, morseTestDit, dsp.Hz(testRate))

	if err := encoder.AddData("OK~"); err == nil {
		t.Fatalf("invalid character accepted")
	}
	if !encoder.Idle() {
		t.Errorf("rejected message left elements queued")
	}
}

// renderMorse plays an encoder until it goes idle, then appends trailing
// silence so a decoder can settle the final character.
func renderMorse(t *testing.T, text string) []float32 {
	t.Helper()

	encoder := NewMorseEncoder(morseTestFreq, morseTestDit, dsp.Hz(testRate))
	if err := encoder.AddData(text); err != nil {
		t.Fatalf("encoder rejected %q: %v", text, err)
	}

	var samples []float32
	for !encoder.Idle() {
		samples = append(samples, encoder.Next())
	}

	ditLen := int(float64(testRate) * morseTestDit.Seconds())
	return append(samples, make([]float32, 12*ditLen)...)
}

func decodeMorse(samples []float32) string {
	var decoded []rune
	decoder := NewMorseDecoder(morseTestFreq, morseTestDit, dsp.Hz(testRate), func(char rune) {
		decoded = append(decoded, char)
	})

	const chunk = 480
	for i := 0; i+chunk <= len(samples); i += chunk {
		decoder.Process(samples[i : i+chunk])
	}
	return string(decoded)
}

func TestMorseRoundTrip(t *testing.T) {
	if decoded := decodeMorse(renderMorse(t, "SOS")); decoded != "SOS" {
		t.Errorf("decoded %q, expected SOS", decoded)
	}
}

func TestMorseRoundTripWords(t *testing.T) {
	if decoded := decodeMorse(renderMorse(t, "AB CD")); decoded != "AB CD" {
		t.Errorf("decoded %q, expected AB CD", decoded)
	}
}

func TestMorseRoundTripLowercase(t *testing.T) {
	// The encoder uppercases before lookup.
	if decoded := decodeMorse(renderMorse(t, "hello")); decoded != "HELLO" {
		t.Errorf("decoded %q, expected HELLO", decoded)
	}
}

func TestMorseDecoderIdle(t *testing.T) {
	decoder := NewMorseDecoder(morseTestFreq, morseTestDit, dsp.Hz(testRate), func(rune) {})

	ditLen := int(float64(testRate) * morseTestDit.Seconds())
	silence := make([]float32, 12*ditLen)
	const chunk = 480
	for i := 0; i+chunk <= len(silence); i += chunk {
		decoder.Process(silence[i : i+chunk])
	}

	if !decoder.Idle() {
		t.Errorf("decoder not idle after extended silence")
	}
}

func TestMorseDecoderUnknownGlyph(t *testing.T) {
	ditLen := int(float64(testRate) * morseTestDit.Seconds())

	keyTone := func(samples []float32, dits int) []float32 {
		start := len(samples)
		for i := 0; i < dits*ditLen; i++ {
			samples = append(samples, float32(math.Sin(
				2*math.Pi*morseTestFreq*float64(start+i)/testRate)))
		}
		return samples
	}
	keySilence := func(samples []float32, dits int) []float32 {
		return append(samples, make([]float32, dits*ditLen)...)
	}

	// `.-.-` has no table entry.
	var samples []float32
	for i, dits := range []int{1, 3, 1, 3} {
		if i > 0 {
			samples = keySilence(samples, 1)
		}
		samples = keyTone(samples, dits)
	}
	samples = keySilence(samples, 12)

	if decoded := decodeMorse(samples); decoded != "�" {
		t.Errorf("decoded %q, expected the replacement placeholder", decoded)
	}
}
