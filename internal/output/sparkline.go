package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SparklineWidth is the default width of an altitude sparkline.
const SparklineWidth = 48

// sparklineBlocks are the block characters from lowest to highest.
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

var (
	altColorLow  = [3]uint8{0x1b, 0x2b, 0x4b} // dark blue
	altColorMid  = [3]uint8{0x34, 0x78, 0xc0} // blue
	altColorHigh = [3]uint8{0x8b, 0xe9, 0xff} // cyan
)

// Sparkline renders altitudes in degrees as block characters, resampled
// to width cells. Below-horizon cells render as spaces.
func Sparkline(alts []float64, width int, color bool) string {
	samples := resample(alts, width)
	if len(samples) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, alt := range samples {
		if alt < 0 {
			sb.WriteByte(' ')
			continue
		}
		if alt > 90 {
			alt = 90
		}
		t := alt / 90
		idx := min(int(t*8), 7)
		block := string(sparklineBlocks[idx])
		if !color {
			sb.WriteString(block)
			continue
		}
		r, g, b := interpolateAltColor(t)
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))).Render(block))
	}
	return sb.String()
}

// resample picks width evenly spaced samples by nearest index.
func resample(in []float64, width int) []float64 {
	if len(in) == 0 || width <= 0 {
		return nil
	}
	out := make([]float64, width)
	for i := range out {
		j := 0
		if width > 1 {
			j = i * (len(in) - 1) / (width - 1)
		}
		out[i] = in[j]
	}
	return out
}

// interpolateAltColor blends low→mid over [0, 0.5] and mid→high over [0.5, 1].
func interpolateAltColor(t float64) (uint8, uint8, uint8) {
	lerp := func(a, b [3]uint8, f float64) (uint8, uint8, uint8) {
		mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*f) }
		return mix(a[0], b[0]), mix(a[1], b[1]), mix(a[2], b[2])
	}
	if t < 0.5 {
		return lerp(altColorLow, altColorMid, t*2)
	}
	return lerp(altColorMid, altColorHigh, (t-0.5)*2)
}
