package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/litescript/starward/internal/astro"
)

// Format selects the output encoding.
type Format int

const (
	FormatPlain Format = iota
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatPlain:
		return "plain"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat parses "plain" (also "text") or "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain", "text":
		return FormatPlain, nil
	case "json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("output format %q: use plain or json: %w", s, astro.ErrInvalidArgument)
}

// FormatDistance returns a human-readable distance string.
func FormatDistance(km float64) string {
	switch {
	case km <= 0:
		return "N/A"
	case km < 1e6:
		return formatWithUnit(km, "km")
	case km < 1e9:
		return formatWithUnit(km/1e6, "M km")
	default:
		return formatWithUnit(astro.KmToAU(km), "AU")
	}
}

// FormatLightTime returns a human-readable one-way light time.
func FormatLightTime(seconds float64) string {
	switch {
	case seconds <= 0:
		return "N/A"
	case seconds < 60:
		return formatWithUnit(seconds, "s")
	case seconds < 3600:
		return formatWithUnit(seconds/60, "min")
	default:
		return formatWithUnit(seconds/3600, "hr")
	}
}

// FormatHours renders a duration in hours as "9h 41m".
func FormatHours(h float64) string {
	if h < 0 {
		h = 0
	}
	total := int(h*60 + 0.5)
	return fmt.Sprintf("%dh %02dm", total/60, total%60)
}

func formatWithUnit(value float64, unit string) string {
	switch {
	case value < 10:
		return strconv.FormatFloat(value, 'f', 2, 64) + " " + unit
	case value < 100:
		return strconv.FormatFloat(value, 'f', 1, 64) + " " + unit
	default:
		return strconv.FormatFloat(value, 'f', 0, 64) + " " + unit
	}
}
