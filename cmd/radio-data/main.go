// radio-data is a collection of signal modules that run against the sound
// card: DTMF and Morse transceivers, a spectrum analyzer, a range test
// responder and an atmospheric noise entropy server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Basicprogrammer10/radio-data/internal/config"
	"github.com/Basicprogrammer10/radio-data/internal/device"
	"github.com/Basicprogrammer10/radio-data/internal/modules"
	"github.com/Basicprogrammer10/radio-data/pkg/dsp"
)

const usage = `usage: radio-data <command> [flags]

commands:
  device                     list audio devices
  dtmf send <message>        transmit a framed dtmf payload
  dtmf receive               decode framed dtmf payloads
  morse send <message>       key a message as morse
  morse receive              decode a keyed carrier
  spectrum                   terminal waterfall of the input
  range                      reply to dtmf range probes
  true-random                serve radio noise entropy over http

common flags (accepted by every command):
  -c <path>     config file (default radio-data.yaml)
  -i <name>     input device name (default from config)
  -o <name>     output device name (default from config)
  -ig <gain>    input gain
  -og <gain>    output gain
  -asio         use an asio driver (windows, -i names the driver)
  -r <hz>       asio sample rate (default 48000)
`

// common holds the flags shared by every subcommand.
type common struct {
	config     string
	input      string
	output     string
	inputGain  float64
	outputGain float64
	asio       bool
	rate       uint
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.config, "c", "", "config file path")
	fs.StringVar(&c.input, "i", "", "input device name")
	fs.StringVar(&c.output, "o", "", "output device name")
	fs.Float64Var(&c.inputGain, "ig", 0, "input gain")
	fs.Float64Var(&c.outputGain, "og", 0, "output gain")
	fs.BoolVar(&c.asio, "asio", false, "use an asio driver")
	fs.UintVar(&c.rate, "r", 48000, "asio sample rate")
}

// open resolves the configured audio device, flags overriding the config
// file.
func (c *common) open() (device.Duplex, error) {
	cfg, err := config.Load(c.config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	input, output := cfg.Device.Input, cfg.Device.Output
	if c.input != "" {
		input = c.input
	}
	if c.output != "" {
		output = c.output
	}
	if c.inputGain == 0 {
		c.inputGain = cfg.Gain.Input
	}
	if c.outputGain == 0 {
		c.outputGain = cfg.Gain.Output
	}

	if c.asio {
		return device.NewASIO(input, uint32(c.rate))
	}
	return device.New(input, output)
}

// run wires a module to the device and blocks until it finishes or the
// process is interrupted.
func (c *common) run(module modules.Module) error {
	dev, err := c.open()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := modules.Runner{
		Device:     dev,
		Module:     module,
		InputGain:  c.inputGain,
		OutputGain: c.outputGain,
	}

	err = runner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if os.Getenv("RADIO_DATA_DEBUG") != "" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "device":
		err = cmdDevice()
	case "dtmf":
		err = cmdDtmf(os.Args[2:])
	case "morse":
		err = cmdMorse(os.Args[2:])
	case "spectrum":
		err = cmdSpectrum(os.Args[2:])
	case "range":
		err = cmdRange(os.Args[2:])
	case "true-random":
		err = cmdTrueRandom(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		logrus.Fatal(err)
	}
}

func cmdDevice() error {
	hosts, err := device.ListHosts()
	if err != nil {
		return err
	}

	for _, host := range hosts {
		fmt.Printf("%s\n", host.Name)
		for _, dev := range host.Devices {
			marker := " "
			if dev.Name == host.DefaultIn || dev.Name == host.DefaultOut {
				marker = "*"
			}
			fmt.Printf(" %s %s (in:%d out:%d @ %.0fHz)\n",
				marker, dev.Name, dev.MaxIn, dev.MaxOut, dev.SampleRate)
		}
	}
	return nil
}

// message joins the positional arguments, falling back to stdin so payloads
// can be piped in.
func message(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func cmdDtmf(args []string) error {
	if len(args) == 0 {
		return errors.New("dtmf needs a send or receive subcommand")
	}

	fs := flag.NewFlagSet("dtmf", flag.ExitOnError)
	var c common
	c.register(fs)
	raw := fs.Bool("raw", false, "send literal dtmf symbols without framing")

	switch args[0] {
	case "send":
		fs.Parse(args[1:])
		text, err := message(fs.Args())
		if err != nil {
			return err
		}
		return c.run(&modules.DtmfSend{Data: []byte(text), Raw: *raw})
	case "receive":
		fs.Parse(args[1:])
		return c.run(&modules.DtmfReceive{})
	}
	return fmt.Errorf("unknown dtmf subcommand %q", args[0])
}

func cmdMorse(args []string) error {
	if len(args) == 0 {
		return errors.New("morse needs a send or receive subcommand")
	}

	fs := flag.NewFlagSet("morse", flag.ExitOnError)
	var c common
	c.register(fs)
	freq := fs.Float64("f", 700, "carrier frequency in hz")
	dit := fs.Int("d", 60, "dit length in milliseconds")

	switch args[0] {
	case "send":
		fs.Parse(args[1:])
		text, err := message(fs.Args())
		if err != nil {
			return err
		}
		return c.run(&modules.MorseSend{
			Text:      text,
			Frequency: *freq,
			Dit:       time.Duration(*dit) * time.Millisecond,
		})
	case "receive":
		fs.Parse(args[1:])
		return c.run(&modules.MorseReceive{
			Frequency: *freq,
			Dit:       time.Duration(*dit) * time.Millisecond,
		})
	}
	return fmt.Errorf("unknown morse subcommand %q", args[0])
}

func cmdSpectrum(args []string) error {
	fs := flag.NewFlagSet("spectrum", flag.ExitOnError)
	var c common
	c.register(fs)
	size := fs.Int("f", 2048, "fft size")
	windowName := fs.String("w", "hann", "window function (square, hann, blackman)")
	low := fs.Float64("low", 0, "display range low edge in hz")
	high := fs.Float64("high", 0, "display range high edge in hz, 0 for nyquist")
	gain := fs.Float64("g", 1, "display gain")
	pass := fs.Bool("p", false, "pass audio through to the output device")
	fs.Parse(args)

	window, ok := dsp.GetWindow(*windowName)
	if !ok {
		return fmt.Errorf("unknown window %q, have %s",
			*windowName, strings.Join(dsp.Windows, ", "))
	}

	return c.run(&modules.Spectrum{
		FFTSize:     *size,
		Window:      window,
		DisplayLow:  *low,
		DisplayHigh: *high,
		Gain:        *gain,
		Passthrough: *pass,
	})
}

func cmdRange(args []string) error {
	fs := flag.NewFlagSet("range", flag.ExitOnError)
	var c common
	c.register(fs)
	reply := fs.String("reply", "", "reply sequence, newline separated freq;seconds")
	fs.Parse(args)

	return c.run(&modules.RangeTest{Reply: *reply})
}

func cmdTrueRandom(args []string) error {
	fs := flag.NewFlagSet("true-random", flag.ExitOnError)
	var c common
	c.register(fs)
	host := fs.String("host", "localhost", "http listen host")
	port := fs.Int("p", 8080, "http listen port")
	size := fs.Int("b", 0, "entropy pool size in bytes")
	fs.Parse(args)

	return c.run(&modules.TrueRandom{Host: *host, Port: *port, PoolSize: *size})
}
