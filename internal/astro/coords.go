package astro

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/litescript/starward/internal/verbose"
)

// ICRSCoord is an equatorial position (J2000/ICRS). RA is held in [0°, 360°)
// and Dec in [-90°, 90°].
type ICRSCoord struct {
	RA  Angle
	Dec Angle
}

// GalacticCoord is a position in the galactic frame. L is in [0°, 360°)
// and B in [-90°, 90°].
type GalacticCoord struct {
	L Angle
	B Angle
}

// HorizontalCoord is an observer-relative position. Azimuth runs from
// 0° = North through 90° = East.
type HorizontalCoord struct {
	Alt Angle
	Az  Angle
}

// NewICRSCoord validates dec and normalizes ra.
func NewICRSCoord(ra, dec Angle) (ICRSCoord, error) {
	if !dec.Within(-90, 90) {
		return ICRSCoord{}, fmt.Errorf("declination %.6f° outside [-90, 90]: %w", dec.Degrees(), ErrDomain)
	}
	return ICRSCoord{RA: ra.Normalize360(), Dec: dec}, nil
}

// ICRSFromDegrees is NewICRSCoord for values in degrees.
func ICRSFromDegrees(raDeg, decDeg float64) (ICRSCoord, error) {
	return NewICRSCoord(FromDegrees(raDeg), FromDegrees(decDeg))
}

// NewGalacticCoord validates b and normalizes l.
func NewGalacticCoord(l, b Angle) (GalacticCoord, error) {
	if !b.Within(-90, 90) {
		return GalacticCoord{}, fmt.Errorf("galactic latitude %.6f° outside [-90, 90]: %w", b.Degrees(), ErrDomain)
	}
	return GalacticCoord{L: l.Normalize360(), B: b}, nil
}

// NewHorizontalCoord validates alt and normalizes az.
func NewHorizontalCoord(alt, az Angle) (HorizontalCoord, error) {
	if !alt.Within(-90, 90) {
		return HorizontalCoord{}, fmt.Errorf("altitude %.6f° outside [-90, 90]: %w", alt.Degrees(), ErrDomain)
	}
	return HorizontalCoord{Alt: alt, Az: az.Normalize360()}, nil
}

var decSplit = regexp.MustCompile(`^(.+?)\s*([+-]\d.*)$`)

// ParseICRS parses "RA Dec" text. Accepted forms include
// "12h30m00s +45d30m00s", "12:30:00 +45:30:00" (colon RA is hours),
// "12 30 00 +45 30 00" and "187.5 45.5" (plain RA is degrees).
func ParseICRS(text string) (ICRSCoord, error) {
	s := strings.TrimSpace(text)
	fields := strings.Fields(s)

	var raText, decText string
	switch {
	case len(fields) == 2:
		raText, decText = fields[0], fields[1]
	case len(fields) == 6:
		raText = strings.Join(fields[:3], " ")
		decText = strings.Join(fields[3:], " ")
	default:
		m := decSplit.FindStringSubmatch(s)
		if m == nil {
			return ICRSCoord{}, fmt.Errorf("coordinates %q: %w", text, ErrParse)
		}
		raText, decText = m[1], m[2]
	}

	ra, err := parseRA(raText)
	if err != nil {
		return ICRSCoord{}, fmt.Errorf("coordinates %q: %w", text, err)
	}
	dec, err := ParseAngle(decText)
	if err != nil {
		return ICRSCoord{}, fmt.Errorf("coordinates %q: %w", text, err)
	}
	return NewICRSCoord(ra, dec)
}

func parseRA(s string) (Angle, error) {
	lower := strings.ToLower(s)
	if strings.ContainsAny(lower, "hʰ:") || strings.Contains(strings.TrimSpace(s), " ") {
		return ParseHours(s)
	}
	return ParseAngle(s)
}

func (c ICRSCoord) String() string {
	return fmt.Sprintf("RA %s  Dec %s", c.RA.HMS(2), c.Dec.DMS(1))
}

func (g GalacticCoord) String() string {
	return fmt.Sprintf("l %.4f°  b %+.4f°", g.L.Degrees(), g.B.Degrees())
}

func (h HorizontalCoord) String() string {
	return fmt.Sprintf("Alt %+.4f°  Az %.4f°", h.Alt.Degrees(), h.Az.Degrees())
}

// ZenithAngle returns 90° - alt.
func (h HorizontalCoord) ZenithAngle() Angle {
	return FromDegrees(90).Sub(h.Alt)
}

// Airmass returns the Pickering airmass; ok is false below the horizon.
func (h HorizontalCoord) Airmass() (float64, bool) {
	return Airmass(h.Alt, nil)
}

// ToGalactic converts using the default galactic pole.
func (c ICRSCoord) ToGalactic(tr *verbose.Trace) GalacticCoord {
	return DefaultGalacticPole().ToGalactic(c, tr)
}

// ToICRS converts using the default galactic pole.
func (g GalacticCoord) ToICRS(tr *verbose.Trace) ICRSCoord {
	return DefaultGalacticPole().ToICRS(g, tr)
}

// SeparationTo returns the great-circle distance to o.
func (c ICRSCoord) SeparationTo(o ICRSCoord, tr *verbose.Trace) Angle {
	return AngularSeparation(c.RA, c.Dec, o.RA, o.Dec, tr)
}

// PositionAngleTo returns the position angle of o measured from c, north
// through east.
func (c ICRSCoord) PositionAngleTo(o ICRSCoord, tr *verbose.Trace) Angle {
	return PositionAngle(c.RA, c.Dec, o.RA, o.Dec, tr)
}

// Frame names a coordinate frame for Transform.
type Frame int

const (
	FrameICRS Frame = iota
	FrameGalactic
	FrameHorizontal
)

func (f Frame) String() string {
	switch f {
	case FrameICRS:
		return "icrs"
	case FrameGalactic:
		return "galactic"
	case FrameHorizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// ParseFrame parses a frame name.
func ParseFrame(s string) (Frame, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "icrs", "equatorial", "radec", "j2000":
		return FrameICRS, nil
	case "galactic", "gal":
		return FrameGalactic, nil
	case "horizontal", "altaz", "horizon":
		return FrameHorizontal, nil
	}
	return 0, fmt.Errorf("frame %q: %w", s, ErrInvalidArgument)
}

// Coordinate is any of ICRSCoord, GalacticCoord or HorizontalCoord.
type Coordinate interface {
	fmt.Stringer
	frame() Frame
}

func (ICRSCoord) frame() Frame       { return FrameICRS }
func (GalacticCoord) frame() Frame   { return FrameGalactic }
func (HorizontalCoord) frame() Frame { return FrameHorizontal }

// FrameOf reports the frame a coordinate belongs to.
func FrameOf(c Coordinate) Frame { return c.frame() }

// Transform converts c into the target frame, routing through ICRS. The
// observer and date are only consulted when the horizontal frame is involved.
func Transform(c Coordinate, target Frame, obs Observer, jd JulianDate, tr *verbose.Trace) (Coordinate, error) {
	var icrs ICRSCoord
	switch v := c.(type) {
	case ICRSCoord:
		icrs = v
	case GalacticCoord:
		if target == FrameGalactic {
			return v, nil
		}
		icrs = v.ToICRS(tr)
	case HorizontalCoord:
		if target == FrameHorizontal {
			return v, nil
		}
		icrs = v.ToICRS(obs, jd, tr)
	default:
		return nil, fmt.Errorf("coordinate type %T: %w", c, ErrInvalidArgument)
	}

	switch target {
	case FrameICRS:
		return icrs, nil
	case FrameGalactic:
		return icrs.ToGalactic(tr), nil
	case FrameHorizontal:
		return icrs.ToHorizontal(obs, jd, tr), nil
	}
	return nil, fmt.Errorf("frame %d: %w", target, ErrInvalidArgument)
}
