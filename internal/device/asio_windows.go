//go:build windows

package device

import (
	"fmt"
	"math"

	"github.com/xsjk/go-asio"

	"github.com/Basicprogrammer10/radio-data/pkg/dsp"
)

// ASIO is a low-latency duplex backend for ASIO drivers. Both directions run
// inside a single driver callback, so input and output share one device and
// one sample rate.
type ASIO struct {
	name string
	rate uint32

	device  asio.Device
	started bool

	inBuf  []float32
	outBuf []float32
}

// NewASIO prepares a duplex on the named ASIO driver.
func NewASIO(name string, rate uint32) (*ASIO, error) {
	if name == DefaultName {
		return nil, fmt.Errorf("asio needs an explicit driver name")
	}
	return &ASIO{name: name, rate: rate}, nil
}

func (a *ASIO) SampleRate() dsp.SampleRate {
	return dsp.Hz(a.rate)
}

func (a *ASIO) Channels() (int, int) {
	return 1, 1
}

func (a *ASIO) Start(input func([]float32), output func([]float32)) error {
	a.device.Load(a.name)
	a.device.SetSampleRate(float64(a.rate))
	a.device.Open()

	a.device.Start(func(in, out [][]int32) {
		mono := in[0]
		if cap(a.inBuf) < len(mono) {
			a.inBuf = make([]float32, len(mono))
			a.outBuf = make([]float32, len(mono))
		}
		a.inBuf = a.inBuf[:len(mono)]
		a.outBuf = a.outBuf[:len(mono)]

		for i, sample := range mono {
			a.inBuf[i] = float32(sample) / float32(math.MaxInt32)
		}
		input(a.inBuf)

		output(a.outBuf)
		for _, channel := range out {
			for i, sample := range a.outBuf {
				channel[i] = int32(sample * float32(math.MaxInt32))
			}
		}
	})

	a.started = true
	return nil
}

func (a *ASIO) Stop() error {
	if !a.started {
		return nil
	}
	a.started = false

	a.device.Stop()
	a.device.Close()
	a.device.Unload()
	return nil
}
