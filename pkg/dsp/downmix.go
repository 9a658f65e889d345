package dsp

// Downmix reduces an interleaved multi-channel buffer to mono by averaging
// each frame's channels, appending the result to dst. Partial trailing
// frames are ignored.
func Downmix(dst []float32, interleaved []float32, channels int) []float32 {
	if channels <= 1 {
		return append(dst, interleaved...)
	}

	for i := 0; i+channels <= len(interleaved); i += channels {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += interleaved[i+c]
		}
		dst = append(dst, sum/float32(channels))
	}
	return dst
}
