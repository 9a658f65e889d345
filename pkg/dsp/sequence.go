package dsp

import (
	"fmt"
	"strconv"
	"strings"
)

// Sequence plays a list of tones back to back, moving to the next tone when
// the current one runs out.
type Sequence struct {
	tones []*Tone
	index int
}

// NewSequence builds a sequence from already configured tones. Each tone
// should carry a duration, otherwise the sequence never advances past it.
func NewSequence(tones ...*Tone) *Sequence {
	return &Sequence{tones: tones}
}

// ParseSequence builds a sequence from a newline separated list of
// `frequency;seconds` entries, e.g. `440;1.2`.
func ParseSequence(seq string, sampleRate SampleRate) (*Sequence, error) {
	var tones []*Tone
	for _, line := range strings.Split(strings.TrimSpace(seq), "\n") {
		freqPart, timePart, ok := strings.Cut(strings.TrimSpace(line), ";")
		if !ok {
			return nil, fmt.Errorf("malformed sequence entry %q", line)
		}

		freq, err := strconv.ParseFloat(freqPart, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed frequency in %q: %w", line, err)
		}
		secs, err := strconv.ParseFloat(timePart, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed duration in %q: %w", line, err)
		}

		duration := int(float64(sampleRate.Output) * secs)
		tones = append(tones, NewTone(freq, sampleRate).Duration(duration))
	}

	return &Sequence{tones: tones}, nil
}

// Next returns the next sample, false once every tone is exhausted.
func (s *Sequence) Next() (float32, bool) {
	for s.index < len(s.tones) {
		if sample, ok := s.tones[s.index].Next(); ok {
			return sample, true
		}
		s.index++
	}
	return 0, false
}

// Reset rewinds the sequence and all of its tones.
func (s *Sequence) Reset() {
	s.index = 0
	for _, tone := range s.tones {
		tone.Reset()
	}
}
