// Package output renders results as styled text or JSON at a chosen
// display precision. Calculations always run in full float64; only the
// rendering is affected.
package output

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/litescript/starward/internal/astro"
)

// Named precision levels, in decimal places.
const (
	Compact  = 2  // quick reference
	Display  = 4  // readable
	Standard = 6  // astronomical default
	High     = 10 // research
	Full     = 15 // all float64 digits
)

var levelNames = []struct {
	name     string
	decimals int
}{
	{"compact", Compact},
	{"display", Display},
	{"standard", Standard},
	{"high", High},
	{"full", Full},
}

// Precision controls how many digits each kind of value is shown with.
type Precision struct {
	Decimals       int // general floats and degrees
	AngleSeconds   int // arcseconds in DMS
	TimeSeconds    int // seconds in HMS and clock times
	RadianDecimals int // fractional digits when shown in radians
	SciThreshold   int // switch to exponent form beyond this decimal exponent
}

// FromDecimals scales every component from a single decimal count.
func FromDecimals(n int) Precision {
	if n < 0 {
		n = 0
	}
	if n > Full {
		n = Full
	}
	return Precision{
		Decimals:       n,
		AngleSeconds:   min(n, 3),
		TimeSeconds:    min(n, 3),
		RadianDecimals: max(n, 10),
		SciThreshold:   max(6, n),
	}
}

// DefaultPrecision is the display level.
func DefaultPrecision() Precision { return FromDecimals(Display) }

// ParsePrecision accepts a level name or a decimal count between 0 and 15.
func ParsePrecision(s string) (Precision, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, l := range levelNames {
		if l.name == key {
			return FromDecimals(l.decimals), nil
		}
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 0 && n <= Full {
		return FromDecimals(n), nil
	}
	return Precision{}, fmt.Errorf("precision %q: use %s or 0-%d: %w",
		s, strings.Join(Levels(), ", "), Full, astro.ErrInvalidArgument)
}

// Levels lists the named precision levels from coarsest to finest.
func Levels() []string {
	out := make([]string, len(levelNames))
	for i, l := range levelNames {
		out[i] = l.name
	}
	return out
}

// Name returns the level name, or the decimal count for custom precisions.
func (p Precision) Name() string {
	for _, l := range levelNames {
		if FromDecimals(l.decimals) == p {
			return l.name
		}
	}
	return strconv.Itoa(p.Decimals)
}

// Float formats v with Decimals places, in exponent form when very large
// or very small.
func (p Precision) Float(v float64) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', p.Decimals, 64)
	}
	exp := int(math.Floor(math.Log10(math.Abs(v))))
	if exp > p.SciThreshold || exp < -p.SciThreshold {
		return strconv.FormatFloat(v, 'e', p.Decimals, 64)
	}
	return strconv.FormatFloat(v, 'f', p.Decimals, 64)
}

// Degrees formats an angle as decimal degrees.
func (p Precision) Degrees(a astro.Angle) string {
	return strconv.FormatFloat(a.Degrees(), 'f', p.Decimals, 64) + "°"
}

// SignedDegrees always shows the sign, for altitudes and declinations.
func (p Precision) SignedDegrees(a astro.Angle) string {
	s := p.Degrees(a)
	if a.Degrees() >= 0 {
		s = "+" + s
	}
	return s
}

// Hours formats an angle as decimal hours.
func (p Precision) Hours(a astro.Angle) string {
	return strconv.FormatFloat(a.Hours(), 'f', p.Decimals, 64) + "h"
}

// Radians formats an angle in radians.
func (p Precision) Radians(a astro.Angle) string {
	return strconv.FormatFloat(a.Radians(), 'f', p.RadianDecimals, 64) + " rad"
}

// DMS formats an angle as sexagesimal degrees.
func (p Precision) DMS(a astro.Angle) string { return a.DMS(p.AngleSeconds) }

// HMS formats an angle as sexagesimal hours.
func (p Precision) HMS(a astro.Angle) string { return a.HMS(p.TimeSeconds) }

// JD formats a Julian Date.
func (p Precision) JD(jd astro.JulianDate) string {
	return strconv.FormatFloat(jd.JD(), 'f', p.Decimals, 64)
}

// Time formats an instant in UTC with TimeSeconds fractional digits.
func (p Precision) Time(jd astro.JulianDate) string {
	layout := "2006-01-02 15:04:05"
	if p.TimeSeconds > 0 {
		layout += "." + strings.Repeat("0", p.TimeSeconds)
	}
	return jd.Time().UTC().Format(layout) + " UTC"
}

// Event formats a solved event, or "—" when it does not occur.
func (p Precision) Event(e astro.Event) string {
	if !e.OK {
		return "—"
	}
	return p.Time(e.JD)
}
