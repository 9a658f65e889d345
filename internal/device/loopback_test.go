package device

import (
	"testing"
	"time"
)

func TestLoopback(t *testing.T) {
	var dev Duplex = &Loopback{}

	if rate := dev.SampleRate(); rate.Input != 48000 || rate.Output != 48000 {
		t.Errorf("unexpected default sample rate %v", rate)
	}
	if in, out := dev.Channels(); in != 1 || out != 1 {
		t.Errorf("loopback should be mono, got %d/%d", in, out)
	}

	received := make(chan []float32, 1)
	err := dev.Start(
		func(in []float32) {
			select {
			case received <- append([]float32(nil), in...):
			default:
			}
		},
		func(out []float32) {
			for i := range out {
				out[i] = 0.5
			}
		},
	)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer dev.Stop()

	select {
	case in := <-received:
		if len(in) != BufferSize {
			t.Fatalf("expected %d samples, got %d", BufferSize, len(in))
		}
		for i, sample := range in {
			if sample != 0.5 {
				t.Fatalf("sample %d not looped back: %v", i, sample)
			}
		}
	case <-time.After(time.Second):
		t.Fatal("no input callback within a second")
	}
}

func TestBestMatch(t *testing.T) {
	names := []string{"Built-in Microphone", "USB Audio CODEC", "BlackHole 2ch"}

	cases := []struct {
		query    string
		expected int
	}{
		{"usb audio", 1},
		{"built-in microphone", 0},
		{"blackhole", 2},
		{"codec usb", 1},
	}

	for _, c := range cases {
		index, ok := bestMatch(c.query, names)
		if !ok {
			t.Fatalf("no match for %q", c.query)
		}
		if index != c.expected {
			t.Errorf("%q matched %q, expected %q", c.query, names[index], names[c.expected])
		}
	}

	if _, ok := bestMatch("anything", nil); ok {
		t.Errorf("match reported with no candidates")
	}
}
