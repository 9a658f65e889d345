package coding

import (
	"testing"

	"github.com/Basicprogrammer10/radio-data/pkg/dsp"
)

const testRate = 48000

func TestNibbleRoundTrip(t *testing.T) {
	for nibble := byte(0); nibble < 16; nibble++ {
		symbol := SymbolForNibble(nibble)
		back, ok := NibbleForSymbol(symbol)
		if !ok {
			t.Fatalf("symbol %q did not resolve", symbol)
		}
		if back != nibble {
			t.Errorf("nibble %x came back as %x via %q", nibble, back, symbol)
		}
	}

	if _, ok := NibbleForSymbol('X'); ok {
		t.Errorf("unknown symbol accepted")
	}
}

func TestBytesToSymbols(t *testing.T) {
	payload := []byte("Hi!")
	symbols := BytesToSymbols(payload)
	if len(symbols) != 6 {
		t.Fatalf("expected 6 symbols, got %d", len(symbols))
	}

	back, err := SymbolsToBytes(symbols)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if string(back) != string(payload) {
		t.Errorf("payload came back as %q", back)
	}

	if _, err := SymbolsToBytes([]byte("1X")); err == nil {
		t.Errorf("corrupt symbol stream accepted")
	}
}

func TestDtmfEncoderRejectsUnknownSymbols(t *testing.T) {
	if _, err := NewDtmfEncoder([]byte("12X"), dsp.Hz(testRate)); err == nil {
		t.Errorf("invalid symbol accepted")
	}
}

// renderDtmf plays an encoder to completion.
func renderDtmf(t *testing.T, symbols string) []float32 {
	t.Helper()

	encoder, err := NewDtmfEncoder([]byte(symbols), dsp.Hz(testRate))
	if err != nil {
		t.Fatalf("encoder rejected %q: %v", symbols, err)
	}

	var samples []float32
	for {
		sample, ok := encoder.Next()
		if !ok {
			break
		}
		samples = append(samples, sample)
	}

	if !encoder.Done() {
		t.Errorf("encoder not done after playout")
	}
	return samples
}

func TestDtmfEncodeDecode(t *testing.T) {
	const message = "159D*#"
	samples := renderDtmf(t, message)

	var decoded []byte
	decoder := NewDtmfDecoder(dsp.Hz(testRate), func(symbol byte) {
		decoded = append(decoded, symbol)
	})

	const chunk = 512
	for i := 0; i+chunk <= len(samples); i += chunk {
		decoder.Process(samples[i : i+chunk])
	}

	if string(decoded) != message {
		t.Errorf("decoded %q, expected %q", decoded, message)
	}
}

func TestDtmfByteWaveformRoundTrip(t *testing.T) {
	symbols := BytesToSymbols([]byte{0xAB})
	samples := renderDtmf(t, string(symbols))

	var decoded []byte
	decoder := NewDtmfDecoder(dsp.Hz(testRate), func(symbol byte) {
		decoded = append(decoded, symbol)
	})

	const chunk = 512
	for i := 0; i+chunk <= len(samples); i += chunk {
		decoder.Process(samples[i : i+chunk])
	}

	if string(decoded) != string(symbols) {
		t.Fatalf("decoded %q, expected %q", decoded, symbols)
	}

	payload, err := SymbolsToBytes(decoded)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(payload) != 1 || payload[0] != 0xAB {
		t.Errorf("payload came back as %x", payload)
	}
}

func TestDtmfDecoderIgnoresSilence(t *testing.T) {
	decoder := NewDtmfDecoder(dsp.Hz(testRate), func(symbol byte) {
		t.Errorf("silence decoded as %q", symbol)
	})

	silence := make([]float32, 512)
	for i := 0; i < 100; i++ {
		decoder.Process(silence)
	}
}

func TestDtmfDecoderIgnoresAlternation(t *testing.T) {
	// A signal flapping between two symbols every chunk never fills the
	// agreement window and must produce nothing.
	one := renderDtmf(t, "1")
	five := renderDtmf(t, "5")

	decoder := NewDtmfDecoder(dsp.Hz(testRate), func(symbol byte) {
		t.Errorf("flapping signal decoded as %q", symbol)
	})

	// Skip the leading cooldown silence so every chunk carries a tone.
	start := testRate / 4
	const chunk = 512
	for i := 0; i < 40; i++ {
		offset := start + (i%20)*chunk
		if i%2 == 0 {
			decoder.Process(one[offset : offset+chunk])
		} else {
			decoder.Process(five[offset : offset+chunk])
		}
	}
}
