// Package device abstracts the duplex audio hardware behind a small
// callback interface, with portaudio and ASIO backends and an in-process
// loopback for tests.
package device

import "github.com/Basicprogrammer10/radio-data/pkg/dsp"

// BufferSize is the frame count handed to the callbacks per invocation.
const BufferSize = 512

// Duplex is a started pair of audio streams. Input receives captured
// interleaved samples, output is called with a buffer to fill; both run on
// backend-owned goroutines.
type Duplex interface {
	SampleRate() dsp.SampleRate
	// Channels reports the interleaved channel counts of the input and
	// output streams.
	Channels() (in, out int)
	Start(input func([]float32), output func([]float32)) error
	Stop() error
}
