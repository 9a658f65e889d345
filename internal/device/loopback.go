package device

import (
	"time"

	"github.com/Basicprogrammer10/radio-data/pkg/dsp"
)

// Loopback feeds the output callback straight back into the input callback,
// one BufferSize mono block per cycle. It backs the module tests and the
// offline decode paths.
type Loopback struct {
	Rate uint32 // sample rate reported to the module, 0 means 48000
	// RealTime paces the loop at the sample rate instead of running as fast
	// as possible.
	RealTime bool

	done chan struct{}
}

func (d *Loopback) rate() uint32 {
	if d.Rate == 0 {
		return 48000
	}
	return d.Rate
}

func (d *Loopback) SampleRate() dsp.SampleRate {
	return dsp.Hz(d.rate())
}

func (d *Loopback) Channels() (int, int) {
	return 1, 1
}

func (d *Loopback) Start(input func([]float32), output func([]float32)) error {
	d.done = make(chan struct{})

	go func() {
		buf := make([]float32, BufferSize)
		update := func() {
			output(buf)
			input(buf)
		}

		if !d.RealTime {
			for {
				select {
				case <-d.done:
					return
				default:
					update()
				}
			}
		}

		interval := time.Second * BufferSize / time.Duration(d.rate())
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-d.done:
				return
			case <-ticker.C:
				update()
			}
		}
	}()

	return nil
}

func (d *Loopback) Stop() error {
	close(d.done)
	return nil
}
