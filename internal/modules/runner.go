package modules

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Basicprogrammer10/radio-data/internal/device"
)

// drainDelay is how long a finished module keeps playing before the device
// is stopped, so the tail of the signal is not cut off in the output buffer.
const drainDelay = 500 * time.Millisecond

// Runner wires a module to a duplex device and runs it until the context is
// canceled or the module reports completion.
type Runner struct {
	Device device.Duplex
	Module Module

	// InputGain and OutputGain scale the samples between the device and the
	// module. Zero means unity.
	InputGain  float64
	OutputGain float64
}

func gain(g float64) float32 {
	if g == 0 {
		return 1
	}
	return float32(g)
}

// Run starts the device and blocks until done. The device is stopped before
// returning.
func (r *Runner) Run(ctx context.Context) error {
	sampleRate := r.Device.SampleRate()
	in, out := r.Device.Channels()

	if init, ok := r.Module.(Initializer); ok {
		err := init.Init(InitContext{
			SampleRate:     sampleRate,
			InputChannels:  in,
			OutputChannels: out,
		})
		if err != nil {
			return fmt.Errorf("failed to init module %s: %w", r.Module.Name(), err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"module": r.Module.Name(),
		"rate":   fmt.Sprintf("%d/%d", sampleRate.Input, sampleRate.Output),
	}).Info("starting module")

	inGain, outGain := gain(r.InputGain), gain(r.OutputGain)
	err := r.Device.Start(
		func(samples []float32) {
			if inGain != 1 {
				for i := range samples {
					samples[i] *= inGain
				}
			}
			r.Module.Input(samples)
		},
		func(samples []float32) {
			r.Module.Output(samples)
			if outGain != 1 {
				for i := range samples {
					samples[i] *= outGain
				}
			}
		},
	)
	if err != nil {
		return fmt.Errorf("failed to start device: %w", err)
	}

	defer func() {
		if err := r.Device.Stop(); err != nil {
			logrus.WithError(err).Warn("failed to stop device")
		}
	}()

	completer, _ := r.Module.(Completer)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if completer != nil && completer.Done() {
				time.Sleep(drainDelay)
				logrus.WithField("module", r.Module.Name()).Info("module finished")
				return nil
			}
		}
	}
}
