// Package modules contains the signal modules that run against a duplex
// audio device: tone codecs, the spectrum analyzer and supporting plumbing.
package modules

import "github.com/Basicprogrammer10/radio-data/pkg/dsp"

// InitContext carries the negotiated stream parameters into a module before
// the device starts.
type InitContext struct {
	SampleRate     dsp.SampleRate
	InputChannels  int
	OutputChannels int
}

// Module is one signal processor wired between the capture and playback
// streams. Input is called with captured interleaved samples, Output with an
// interleaved buffer to fill; the two run on different goroutines and the
// module is responsible for its own locking.
type Module interface {
	Name() string
	Input(samples []float32)
	Output(samples []float32)
}

// Initializer is implemented by modules that need setup once the stream
// parameters are known.
type Initializer interface {
	Init(ctx InitContext) error
}

// Completer is implemented by modules that finish, letting the runner exit
// once the work is played out.
type Completer interface {
	Done() bool
}

// chunker regroups arbitrarily sized interleaved input into fixed mono
// chunks, since the detectors only work on blocks of a known length.
type chunker struct {
	size     int
	channels int
	buf      []float32
}

func newChunker(size, channels int) *chunker {
	return &chunker{size: size, channels: channels}
}

// push downmixes interleaved samples onto the pending buffer.
func (c *chunker) push(interleaved []float32) {
	c.buf = dsp.Downmix(c.buf, interleaved, c.channels)
}

// drain invokes fn once per complete chunk, keeping any remainder.
func (c *chunker) drain(fn func(chunk []float32)) {
	for len(c.buf) >= c.size {
		fn(c.buf[:c.size])
		c.buf = c.buf[:copy(c.buf, c.buf[c.size:])]
	}
}

// receiveOnly is embedded by modules that never produce audio.
type receiveOnly struct{}

func (receiveOnly) Output(samples []float32) {
	clear(samples)
}

// sendOnly is embedded by modules that never consume audio.
type sendOnly struct{}

func (sendOnly) Input(samples []float32) {}
