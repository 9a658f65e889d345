package dsp

import (
	"math"
	"testing"
)

func TestToneDuration(t *testing.T) {
	tone := NewTone(440, Hz(48000)).Duration(100)

	for i := 0; i < 100; i++ {
		if _, ok := tone.Next(); !ok {
			t.Fatalf("tone ended early at sample %d", i)
		}
	}
	if _, ok := tone.Next(); ok {
		t.Errorf("tone still running past its duration")
	}
}

func TestToneReset(t *testing.T) {
	tone := NewTone(440, Hz(48000)).Duration(10)

	first := make([]float32, 0, 10)
	for {
		sample, ok := tone.Next()
		if !ok {
			break
		}
		first = append(first, sample)
	}

	tone.Reset()
	for i, expected := range first {
		sample, ok := tone.Next()
		if !ok {
			t.Fatalf("reset tone ended early at sample %d", i)
		}
		if sample != expected {
			t.Errorf("sample %d changed after reset: %v != %v", i, sample, expected)
		}
	}
}

func TestToneUnlimited(t *testing.T) {
	tone := NewTone(440, Hz(48000))
	for i := 0; i < 100_000; i++ {
		if _, ok := tone.Next(); !ok {
			t.Fatalf("unlimited tone ended at sample %d", i)
		}
	}
}

func TestSmoothToneEnvelope(t *testing.T) {
	// 480 Hz at 48 kHz gives a 100 sample ramp on both ends.
	tone := NewSmoothTone(480, Hz(48000), 0.1)

	var samples []float32
	for {
		sample, ok := tone.Next()
		if !ok {
			break
		}
		samples = append(samples, sample)
	}

	if len(samples) != 4800 {
		t.Fatalf("expected 4800 samples, got %d", len(samples))
	}

	if abs := math.Abs(float64(samples[0])); abs > 0.1 {
		t.Errorf("fade in missing, first sample %v", samples[0])
	}
	if abs := math.Abs(float64(samples[len(samples)-1])); abs > 0.1 {
		t.Errorf("fade out missing, last sample %v", samples[len(samples)-1])
	}

	peak := 0.0
	for _, sample := range samples {
		peak = math.Max(peak, math.Abs(float64(sample)))
	}
	if peak < 0.9 {
		t.Errorf("tone never reached full amplitude, peak %v", peak)
	}
}

func TestSmoothToneSampleDuration(t *testing.T) {
	tone := NewSmoothTone(480, Hz(48000), 0).DurationSamples(123)

	count := 0
	for {
		if _, ok := tone.Next(); !ok {
			break
		}
		count++
	}
	if count != 123 {
		t.Errorf("expected 123 samples, got %d", count)
	}
}

func TestSequence(t *testing.T) {
	rate := Hz(48000)
	seq := NewSequence(
		NewTone(440, rate).Duration(10),
		NewTone(880, rate).Duration(20),
	)

	count := 0
	for {
		if _, ok := seq.Next(); !ok {
			break
		}
		count++
	}
	if count != 30 {
		t.Fatalf("expected 30 samples, got %d", count)
	}

	seq.Reset()
	if _, ok := seq.Next(); !ok {
		t.Errorf("sequence empty after reset")
	}
}

func TestParseSequence(t *testing.T) {
	seq, err := ParseSequence("440;0.001\n880;0.002", Hz(48000))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	count := 0
	for {
		if _, ok := seq.Next(); !ok {
			break
		}
		count++
	}
	if count != 144 {
		t.Errorf("expected 144 samples, got %d", count)
	}

	if _, err := ParseSequence("garbage", Hz(48000)); err == nil {
		t.Errorf("malformed sequence accepted")
	}
	if _, err := ParseSequence("a;1", Hz(48000)); err == nil {
		t.Errorf("malformed frequency accepted")
	}
}
