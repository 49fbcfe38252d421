// Package astro provides astronomical coordinate transformations and sky math.
package astro

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Angle is an immutable angular value. The canonical value is held in degrees;
// every other unit is derived on demand.
type Angle struct {
	deg float64
}

// Unit names an angular unit accepted by NewAngle.
type Unit int

const (
	UnitDegrees Unit = iota
	UnitRadians
	UnitHours
	UnitArcminutes
	UnitArcseconds
)

func (u Unit) String() string {
	switch u {
	case UnitDegrees:
		return "degrees"
	case UnitRadians:
		return "radians"
	case UnitHours:
		return "hours"
	case UnitArcminutes:
		return "arcminutes"
	case UnitArcseconds:
		return "arcseconds"
	default:
		return "unknown"
	}
}

// ParseUnit parses a unit name or its common abbreviation.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deg", "degree", "degrees", "d":
		return UnitDegrees, nil
	case "rad", "radian", "radians":
		return UnitRadians, nil
	case "h", "hour", "hours":
		return UnitHours, nil
	case "arcmin", "arcminute", "arcminutes", "amin":
		return UnitArcminutes, nil
	case "arcsec", "arcsecond", "arcseconds", "asec":
		return UnitArcseconds, nil
	}
	return 0, fmt.Errorf("unit %q: %w", s, ErrInvalidArgument)
}

// NewAngle builds an angle from exactly one unit/value pair.
func NewAngle(values map[Unit]float64) (Angle, error) {
	if len(values) != 1 {
		return Angle{}, fmt.Errorf("angle needs exactly one unit, got %d: %w", len(values), ErrInvalidArgument)
	}
	var (
		u Unit
		v float64
	)
	for u, v = range values {
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Angle{}, fmt.Errorf("angle value %v: %w", v, ErrInvalidArgument)
	}
	switch u {
	case UnitDegrees:
		return FromDegrees(v), nil
	case UnitRadians:
		return FromRadians(v), nil
	case UnitHours:
		return FromHours(v), nil
	case UnitArcminutes:
		return FromArcminutes(v), nil
	case UnitArcseconds:
		return FromArcseconds(v), nil
	}
	return Angle{}, fmt.Errorf("unit %d: %w", u, ErrInvalidArgument)
}

// FromDegrees returns an angle of d degrees.
func FromDegrees(d float64) Angle { return Angle{deg: d} }

// FromRadians returns an angle of r radians.
func FromRadians(r float64) Angle { return Angle{deg: radToDeg(r)} }

// FromHours returns an angle of h hours (15 degrees per hour).
func FromHours(h float64) Angle { return Angle{deg: h * 15} }

// FromArcminutes returns an angle of m arcminutes.
func FromArcminutes(m float64) Angle { return Angle{deg: m / 60} }

// FromArcseconds returns an angle of s arcseconds.
func FromArcseconds(s float64) Angle { return Angle{deg: s / 3600} }

// FromDMS builds an angle from sexagesimal degrees. The sign is separate so
// that values such as -0°30' keep it; a negative sign or negative d yields a
// negative angle.
func FromDMS(sign int, d, m, s float64) Angle {
	v := math.Abs(d) + math.Abs(m)/60 + math.Abs(s)/3600
	if sign < 0 || d < 0 {
		v = -v
	}
	return Angle{deg: v}
}

// FromHMS builds an angle from sexagesimal hours.
func FromHMS(sign int, h, m, s float64) Angle {
	return FromHours(FromDMS(sign, h, m, s).deg)
}

// Degrees returns the angle in decimal degrees.
func (a Angle) Degrees() float64 { return a.deg }

// Radians returns the angle in radians.
func (a Angle) Radians() float64 { return degToRad(a.deg) }

// Hours returns the angle in decimal hours.
func (a Angle) Hours() float64 { return a.deg / 15 }

// Arcminutes returns the angle in arcminutes.
func (a Angle) Arcminutes() float64 { return a.deg * 60 }

// Arcseconds returns the angle in arcseconds.
func (a Angle) Arcseconds() float64 { return a.deg * 3600 }

func (a Angle) Add(b Angle) Angle          { return Angle{deg: a.deg + b.deg} }
func (a Angle) Sub(b Angle) Angle          { return Angle{deg: a.deg - b.deg} }
func (a Angle) Neg() Angle                 { return Angle{deg: -a.deg} }
func (a Angle) Mul(k float64) Angle        { return Angle{deg: a.deg * k} }
func (a Angle) Div(k float64) Angle        { return Angle{deg: a.deg / k} }
func (a Angle) Abs() Angle                 { return Angle{deg: math.Abs(a.deg)} }
func (a Angle) Equal(b Angle) bool         { return a.deg == b.deg }
func (a Angle) Less(b Angle) bool          { return a.deg < b.deg }
func (a Angle) Sin() float64               { return math.Sin(a.Radians()) }
func (a Angle) Cos() float64               { return math.Cos(a.Radians()) }
func (a Angle) Tan() float64               { return math.Tan(a.Radians()) }
func (a Angle) IsZero() bool               { return a.deg == 0 }
func (a Angle) String() string             { return strconv.FormatFloat(a.deg, 'f', 6, 64) + "°" }
func (a Angle) Within(lo, hi float64) bool { return a.deg >= lo && a.deg <= hi }

// Cmp compares canonical degree values, returning -1, 0 or +1.
func (a Angle) Cmp(b Angle) int {
	switch {
	case a.deg < b.deg:
		return -1
	case a.deg > b.deg:
		return 1
	default:
		return 0
	}
}

// Normalize wraps the angle into [center-180°, center+180°).
func (a Angle) Normalize(center float64) Angle {
	return Angle{deg: wrapDegrees(a.deg, center-180)}
}

// Normalize360 wraps the angle into [0°, 360°).
func (a Angle) Normalize360() Angle { return a.Normalize(180) }

// Normalize180 wraps the angle into [-180°, 180°).
func (a Angle) Normalize180() Angle { return a.Normalize(0) }

func wrapDegrees(v, lo float64) float64 {
	v -= 360 * math.Floor((v-lo)/360)
	if v >= lo+360 {
		v -= 360
	}
	if v < lo {
		v = lo
	}
	return v
}

// Sexagesimal holds a signed three-part value such as 12h 30m 15.2s.
type Sexagesimal struct {
	Sign    int // +1 or -1
	Whole   int // degrees or hours
	Minutes int
	Seconds float64
}

// DMSComponents splits the angle into degrees, arcminutes and arcseconds
// rounded to precision decimals. Rounding carries into minutes and degrees.
func (a Angle) DMSComponents(precision int) Sexagesimal {
	return splitSexagesimal(a.Arcseconds(), precision)
}

// HMSComponents splits the angle into hours, minutes and seconds of time.
// An angle in [0h, 24h) that rounds up to 24h wraps to 0h.
func (a Angle) HMSComponents(precision int) Sexagesimal {
	h := a.Hours()
	c := splitSexagesimal(h*3600, precision)
	if h >= 0 && h < 24 && c.Whole == 24 {
		c.Whole = 0
	}
	return c
}

func splitSexagesimal(total float64, precision int) Sexagesimal {
	precision = clampPrecision(precision)
	sign := 1
	if total < 0 {
		sign = -1
		total = -total
	}

	scale := math.Pow10(precision)
	ticks := math.Round(total * scale)
	if ticks == 0 {
		sign = 1
	}

	perMinute := 60 * scale
	perWhole := 3600 * scale
	whole := math.Floor(ticks / perWhole)
	ticks -= whole * perWhole
	minutes := math.Floor(ticks / perMinute)
	ticks -= minutes * perMinute

	return Sexagesimal{
		Sign:    sign,
		Whole:   int(whole),
		Minutes: int(minutes),
		Seconds: ticks / scale,
	}
}

func clampPrecision(p int) int {
	if p < 0 {
		return 0
	}
	if p > 9 {
		return 9
	}
	return p
}

// DMS formats the angle as +DD°MM′SS.ss″.
func (a Angle) DMS(precision int) string {
	c := a.DMSComponents(precision)
	sign := "+"
	if c.Sign < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%02d°%02d′%s″", sign, c.Whole, c.Minutes, formatSeconds(c.Seconds, precision))
}

// HMS formats the angle as HHhMMmSS.ss. Negative values carry a leading minus.
func (a Angle) HMS(precision int) string {
	c := a.HMSComponents(precision)
	sign := ""
	if c.Sign < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%02dh%02dm%ss", sign, c.Whole, c.Minutes, formatSeconds(c.Seconds, precision))
}

func formatSeconds(s float64, precision int) string {
	precision = clampPrecision(precision)
	width := 2
	if precision > 0 {
		width = precision + 3
	}
	return fmt.Sprintf("%0*.*f", width, precision, s)
}

const number = `(\d+(?:\.\d*)?|\.\d+)`

var (
	hmsPattern   = regexp.MustCompile(`^([+-]?)\s*` + number + `\s*[hHʰ]\s*(?:` + number + `\s*[mMᵐ]?)?\s*(?:` + number + `\s*[sSˢ]?)?$`)
	dmsPattern   = regexp.MustCompile(`^([+-]?)\s*` + number + `\s*[dD°]\s*(?:` + number + `\s*[mM′']?)?\s*(?:` + number + `\s*[sS″"]?)?$`)
	colonPattern = regexp.MustCompile(`^([+-]?)\s*` + number + `:` + number + `(?::` + number + `)?$`)
	spacePattern = regexp.MustCompile(`^([+-]?)\s*` + number + `\s+` + number + `(?:\s+` + number + `)?$`)
	plainPattern = regexp.MustCompile(`^([+-]?` + number + `(?:[eE][+-]?\d+)?)\s*[dD°]?$`)
)

// ParseAngle parses sexagesimal (12h30m15s, 45d30m00s, 45°30′00″), colon
// (45:30:00), space separated (45 30 00) and decimal degree (45.5) forms.
// Colon and space forms are read as degrees.
func ParseAngle(text string) (Angle, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Angle{}, fmt.Errorf("angle %q: %w", text, ErrParse)
	}

	if m := hmsPattern.FindStringSubmatch(s); m != nil {
		return sexagesimalFromMatch(text, m, true)
	}
	if m := dmsPattern.FindStringSubmatch(s); m != nil {
		return sexagesimalFromMatch(text, m, false)
	}
	if m := colonPattern.FindStringSubmatch(s); m != nil {
		return sexagesimalFromMatch(text, m, false)
	}
	if m := spacePattern.FindStringSubmatch(s); m != nil {
		return sexagesimalFromMatch(text, m, false)
	}
	if m := plainPattern.FindStringSubmatch(s); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Angle{}, fmt.Errorf("angle %q: %w", text, ErrParse)
		}
		return FromDegrees(v), nil
	}
	return Angle{}, fmt.Errorf("angle %q: %w", text, ErrParse)
}

// ParseHours parses text as hours of right ascension. Sexagesimal input with
// d/° markers is rejected; colon and space forms are read as h:m:s, and a
// plain number is taken as decimal hours.
func ParseHours(text string) (Angle, error) {
	s := strings.TrimSpace(text)
	if m := hmsPattern.FindStringSubmatch(s); m != nil {
		return sexagesimalFromMatch(text, m, true)
	}
	if m := colonPattern.FindStringSubmatch(s); m != nil {
		return sexagesimalFromMatch(text, m, true)
	}
	if m := spacePattern.FindStringSubmatch(s); m != nil {
		return sexagesimalFromMatch(text, m, true)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Angle{}, fmt.Errorf("hours %q: %w", text, ErrParse)
	}
	return FromHours(v), nil
}

func sexagesimalFromMatch(text string, m []string, hours bool) (Angle, error) {
	sign := 1
	if m[1] == "-" {
		sign = -1
	}
	parts := [3]float64{}
	for i := 0; i < 3; i++ {
		if m[i+2] == "" {
			continue
		}
		v, err := strconv.ParseFloat(m[i+2], 64)
		if err != nil {
			return Angle{}, fmt.Errorf("angle %q: %w", text, ErrParse)
		}
		parts[i] = v
	}
	if parts[1] >= 60 || parts[2] >= 60 {
		return Angle{}, fmt.Errorf("angle %q: minutes and seconds must be below 60: %w", text, ErrParse)
	}
	if hours {
		return FromHMS(sign, parts[0], parts[1], parts[2]), nil
	}
	return FromDMS(sign, parts[0], parts[1], parts[2]), nil
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
