package device

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/Basicprogrammer10/radio-data/pkg/dsp"
)

// maxChannels caps the stream width; anything beyond stereo is wasted on a
// mono signal path.
const maxChannels = 2

// PortAudio drives a capture and a playback stream through the portaudio
// host API. The two streams may belong to different physical devices and
// run at different rates.
type PortAudio struct {
	inInfo  *portaudio.DeviceInfo
	outInfo *portaudio.DeviceInfo

	inChannels  int
	outChannels int

	inStream  *portaudio.Stream
	outStream *portaudio.Stream
}

// New resolves the named input and output devices and prepares a duplex
// pair. Pass DefaultName to use the system defaults.
func New(inputName, outputName string) (*PortAudio, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	inInfo, err := resolve(inputName, true)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	outInfo, err := resolve(outputName, false)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}

	return &PortAudio{
		inInfo:      inInfo,
		outInfo:     outInfo,
		inChannels:  min(inInfo.MaxInputChannels, maxChannels),
		outChannels: min(outInfo.MaxOutputChannels, maxChannels),
	}, nil
}

// resolve finds a device by name among those that support the wanted
// direction.
func resolve(name string, input bool) (*portaudio.DeviceInfo, error) {
	if name == DefaultName {
		if input {
			return portaudio.DefaultInputDevice()
		}
		return portaudio.DefaultOutputDevice()
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	var candidates []*portaudio.DeviceInfo
	var names []string
	for _, info := range devices {
		if input && info.MaxInputChannels == 0 {
			continue
		}
		if !input && info.MaxOutputChannels == 0 {
			continue
		}
		candidates = append(candidates, info)
		names = append(names, info.Name)
	}

	index, ok := bestMatch(name, names)
	if !ok {
		return nil, fmt.Errorf("no usable audio device for %q", name)
	}
	return candidates[index], nil
}

func (p *PortAudio) SampleRate() dsp.SampleRate {
	return dsp.NewSampleRate(
		uint32(p.inInfo.DefaultSampleRate),
		uint32(p.outInfo.DefaultSampleRate),
	)
}

func (p *PortAudio) Channels() (int, int) {
	return p.inChannels, p.outChannels
}

// Names reports the resolved device names, input then output.
func (p *PortAudio) Names() (string, string) {
	return p.inInfo.Name, p.outInfo.Name
}

func (p *PortAudio) Start(input func([]float32), output func([]float32)) error {
	inParams := portaudio.HighLatencyParameters(p.inInfo, nil)
	inParams.Input.Channels = p.inChannels
	inParams.SampleRate = p.inInfo.DefaultSampleRate
	inParams.FramesPerBuffer = BufferSize

	inStream, err := portaudio.OpenStream(inParams, func(in []float32) {
		input(in)
	})
	if err != nil {
		return fmt.Errorf("failed to open input stream: %w", err)
	}

	outParams := portaudio.HighLatencyParameters(nil, p.outInfo)
	outParams.Output.Channels = p.outChannels
	outParams.SampleRate = p.outInfo.DefaultSampleRate
	outParams.FramesPerBuffer = BufferSize

	outStream, err := portaudio.OpenStream(outParams, func(out []float32) {
		output(out)
	})
	if err != nil {
		inStream.Close()
		return fmt.Errorf("failed to open output stream: %w", err)
	}

	if err := inStream.Start(); err != nil {
		inStream.Close()
		outStream.Close()
		return fmt.Errorf("failed to start input stream: %w", err)
	}
	if err := outStream.Start(); err != nil {
		inStream.Stop()
		inStream.Close()
		outStream.Close()
		return fmt.Errorf("failed to start output stream: %w", err)
	}

	p.inStream = inStream
	p.outStream = outStream
	return nil
}

func (p *PortAudio) Stop() error {
	for _, stream := range []*portaudio.Stream{p.inStream, p.outStream} {
		if stream == nil {
			continue
		}
		stream.Stop()
		stream.Close()
	}
	p.inStream, p.outStream = nil, nil

	return portaudio.Terminate()
}

// DeviceInfo describes one audio device for listing.
type DeviceInfo struct {
	Name       string
	MaxIn      int
	MaxOut     int
	SampleRate float64
}

// HostInfo groups the devices of one host API.
type HostInfo struct {
	Name       string
	DefaultIn  string
	DefaultOut string
	Devices    []DeviceInfo
}

// ListHosts enumerates every host API and its devices. It manages its own
// portaudio session and can be called without an open Duplex.
func ListHosts() ([]HostInfo, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}
	defer portaudio.Terminate()

	apis, err := portaudio.HostApis()
	if err != nil {
		return nil, fmt.Errorf("failed to list host apis: %w", err)
	}

	var hosts []HostInfo
	for _, api := range apis {
		host := HostInfo{Name: api.Name}
		if api.DefaultInputDevice != nil {
			host.DefaultIn = api.DefaultInputDevice.Name
		}
		if api.DefaultOutputDevice != nil {
			host.DefaultOut = api.DefaultOutputDevice.Name
		}

		for _, info := range api.Devices {
			host.Devices = append(host.Devices, DeviceInfo{
				Name:       info.Name,
				MaxIn:      info.MaxInputChannels,
				MaxOut:     info.MaxOutputChannels,
				SampleRate: info.DefaultSampleRate,
			})
		}
		hosts = append(hosts, host)
	}
	return hosts, nil
}
