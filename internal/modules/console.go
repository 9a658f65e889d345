package modules

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Basicprogrammer10/radio-data/pkg/ringbuf"
)

// colorScheme is the waterfall gradient, dark to bright.
var colorScheme = []uint32{0x000000, 0x742975, 0xDD562E, 0xFD9719, 0xFFD76B, 0xFFFFFF}

// rangeWindow is how many rows of min/max history feed the auto-ranging.
const rangeWindow = 64

type waterfallConfig struct {
	SampleRate uint32
	FFTSize    int
	Low, High  float64
	Gain       float64
}

// waterfall draws one row per FFT block, mapping bin power onto a truecolor
// gradient. The display range adapts to the recent signal floor and peak.
type waterfall struct {
	cfg     waterfallConfig
	out     *bufio.Writer
	columns int

	lowBin, highBin int
	floor           *ringbuf.Buffer[float64]
	peak            *ringbuf.Buffer[float64]
	wroteHeader     bool
}

func newWaterfall(cfg waterfallConfig) *waterfall {
	if cfg.Gain == 0 {
		cfg.Gain = 1
	}

	binWidth := float64(cfg.SampleRate) / float64(cfg.FFTSize)
	lowBin := int(cfg.Low / binWidth)
	highBin := int(cfg.High / binWidth)
	highBin = min(highBin, cfg.FFTSize/2)
	if highBin <= lowBin {
		highBin = lowBin + 1
	}

	return &waterfall{
		cfg:     cfg,
		out:     bufio.NewWriter(os.Stdout),
		columns: terminalColumns(),
		lowBin:  lowBin,
		highBin: highBin,
		floor:   ringbuf.New[float64](rangeWindow),
		peak:    ringbuf.New[float64](rangeWindow),
	}
}

// terminalColumns reads the width from the environment, defaulting to 100.
// The renderer writes plain rows, so a wrong guess only wraps lines.
func terminalColumns() int {
	if v, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && v > 0 {
		return v
	}
	return 100
}

func (w *waterfall) render(magnitudes []float64) {
	if !w.wroteHeader {
		w.header()
		w.wroteHeader = true
	}

	bins := magnitudes[w.lowBin:w.highBin]
	perColumn := float64(len(bins)) / float64(w.columns)

	rowFloor, rowPeak := math.Inf(1), math.Inf(-1)
	for column := 0; column < w.columns; column++ {
		start := int(float64(column) * perColumn)
		end := max(int(float64(column+1)*perColumn), start+1)
		end = min(end, len(bins))

		power := 0.0
		for _, v := range bins[start:end] {
			power += v
		}
		power = math.Log1p(power * w.cfg.Gain / float64(end-start))

		rowFloor = math.Min(rowFloor, power)
		rowPeak = math.Max(rowPeak, power)

		w.cell(power)
	}
	w.out.WriteString("\x1b[0m\n")
	w.out.Flush()

	w.floor.Push(rowFloor)
	w.peak.Push(rowPeak)
}

// cell writes one column as a background-colored space.
func (w *waterfall) cell(power float64) {
	low, high := w.floor.Avg(), w.peak.Max()
	t := 0.0
	if high > low {
		t = (power - low) / (high - low)
	}

	r, g, b := gradient(t)
	fmt.Fprintf(w.out, "\x1b[48;2;%d;%d;%dm ", r, g, b)
}

// header prints the frequency axis once, low edge left and high edge right.
func (w *waterfall) header() {
	low := niceFreq(w.cfg.Low)
	high := niceFreq(w.cfg.High)

	pad := w.columns - len(low) - len(high)
	if pad < 1 {
		pad = 1
	}
	fmt.Fprintf(w.out, "%s%s%s\n", low, strings.Repeat(" ", pad), high)
	w.out.Flush()
}

// gradient maps t in [0, 1] onto the color scheme with linear interpolation.
func gradient(t float64) (uint8, uint8, uint8) {
	t = math.Max(0, math.Min(1, t))
	scaled := t * float64(len(colorScheme)-1)
	i := min(int(scaled), len(colorScheme)-2)
	frac := scaled - float64(i)

	channel := func(shift uint) uint8 {
		a := float64(colorScheme[i] >> shift & 0xFF)
		b := float64(colorScheme[i+1] >> shift & 0xFF)
		return uint8(a + (b-a)*frac)
	}
	return channel(16), channel(8), channel(0)
}

// niceFreq formats a frequency with a unit prefix.
func niceFreq(hz float64) string {
	switch {
	case hz >= 1e6:
		return fmt.Sprintf("%.2fMHz", hz/1e6)
	case hz >= 1e3:
		return fmt.Sprintf("%.2fkHz", hz/1e3)
	default:
		return fmt.Sprintf("%.0fHz", hz)
	}
}
