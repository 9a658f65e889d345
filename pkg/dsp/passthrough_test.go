package dsp

import (
	"math"
	"testing"
)

func TestPassthroughSameRate(t *testing.T) {
	pass, err := NewPassthrough(Hz(48000), 1, 1)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Below the lead-in fill the output stays silent.
	if err := pass.Push(make([]float32, 100)); err != nil {
		t.Fatalf("push failed: %v", err)
	}
	out := make([]float32, 64)
	pass.Pull(out)
	for i, sample := range out {
		if sample != 0 {
			t.Fatalf("output before priming, sample %d = %v", i, sample)
		}
	}

	chunk := make([]float32, 512)
	for i := range chunk {
		chunk[i] = float32(math.Sin(2 * math.Pi * 440 * float64(i) / 48000))
	}
	if err := pass.Push(chunk); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	// Primed now; the leading silence drains first, then the tone.
	pass.Pull(make([]float32, 100))
	pass.Pull(out)

	var peak float32
	for _, sample := range out {
		if sample > peak {
			peak = sample
		}
	}
	if peak < 0.1 {
		t.Errorf("tone did not pass through, peak %v", peak)
	}
}

func TestPassthroughResampling(t *testing.T) {
	pass, err := NewPassthrough(NewSampleRate(44100, 48000), 1, 2)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// A second of input should yield close to a second of output once the
	// resampler's internal latency is pushed through.
	chunk := make([]float32, 441)
	for block := 0; block < 100; block++ {
		for i := range chunk {
			n := block*len(chunk) + i
			chunk[i] = float32(math.Sin(2 * math.Pi * 440 * float64(n) / 44100))
		}
		if err := pass.Push(chunk); err != nil {
			t.Fatalf("push failed: %v", err)
		}
	}

	queued := len(pass.queue)
	if queued < 40000 || queued > 49000 {
		t.Fatalf("expected about 48000 resampled samples, got %d", queued)
	}

	// Stereo output replicates the mono queue into both channels. Peak is
	// taken over several buffers to ride out the resampler's group delay.
	var peak float32
	out := make([]float32, 512)
	for n := 0; n < 20; n++ {
		pass.Pull(out)
		for i := 0; i < len(out); i += 2 {
			if out[i] != out[i+1] {
				t.Fatalf("channels differ at frame %d: %v != %v", i/2, out[i], out[i+1])
			}
			if out[i] > peak {
				peak = out[i]
			}
		}
	}
	if peak < 0.1 {
		t.Errorf("resampled tone silent, peak %v", peak)
	}
}
