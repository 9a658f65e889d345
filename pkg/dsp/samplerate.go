package dsp

// SampleRate holds the input and output stream rates separately, since the
// capture and playback devices need not agree. Components doing frequency
// math always read the side relevant to their direction.
type SampleRate struct {
	Input  uint32
	Output uint32
}

func NewSampleRate(input, output uint32) SampleRate {
	return SampleRate{Input: input, Output: output}
}

// Hz builds a SampleRate with the same rate in both directions.
func Hz(hz uint32) SampleRate {
	return SampleRate{Input: hz, Output: hz}
}
