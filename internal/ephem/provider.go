// Package ephem resolves named bodies to positions, so one code path can
// answer altitude and rise/set questions for the Sun, the Moon, a planet,
// a catalog star or an arbitrary ICRS target.
package ephem

import (
	"fmt"
	"math"
	"time"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/verbose"
)

// Kind groups bodies by how their position is computed.
type Kind int

const (
	KindSun Kind = iota
	KindMoon
	KindPlanet
	KindStar
	KindFixed // user-supplied coordinates
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSun:
		return "sun"
	case KindMoon:
		return "moon"
	case KindPlanet:
		return "planet"
	case KindStar:
		return "star"
	case KindFixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// Provider defines the interface for body position sources.
type Provider interface {
	// Name returns the body name for display/logging.
	Name() string

	// Kind reports how the body moves.
	Kind() Kind

	// Position returns the apparent geocentric equatorial position at jd.
	Position(jd astro.JulianDate, tr *verbose.Trace) (astro.ICRSCoord, error)

	// RiseSet solves rise, transit and set in the 24 h following jd.
	RiseSet(obs astro.Observer, jd astro.JulianDate, tr *verbose.Trace) (astro.RiseSetTimes, error)
}

// Point is a body position at a specific instant.
type Point struct {
	JD         astro.JulianDate
	Coord      astro.ICRSCoord
	Horizontal astro.HorizontalCoord
	Valid      bool // false when the position could not be computed
}

// Path is a sequence of positions over time.
type Path struct {
	Body   string
	Points []Point
	Start  astro.JulianDate
	End    astro.JulianDate
}

// At returns the position of p as seen by obs.
func At(p Provider, obs astro.Observer, jd astro.JulianDate, tr *verbose.Trace) (Point, error) {
	c, err := p.Position(jd, tr)
	if err != nil {
		return Point{JD: jd}, fmt.Errorf("%s: %w", p.Name(), err)
	}
	return Point{
		JD:         jd,
		Coord:      c,
		Horizontal: c.ToHorizontal(obs, jd, tr),
		Valid:      true,
	}, nil
}

// Sample returns the positions of p from start to end inclusive, every step.
func Sample(p Provider, obs astro.Observer, start, end astro.JulianDate, step time.Duration) (Path, error) {
	if step <= 0 {
		return Path{}, fmt.Errorf("sample step %v: %w", step, astro.ErrInvalidArgument)
	}
	if end.Before(start) {
		return Path{}, fmt.Errorf("sample window ends before it starts: %w", astro.ErrInvalidArgument)
	}

	days := step.Hours() / 24
	n := int(math.Floor(end.Sub(start)/days+1e-9)) + 1
	path := Path{Body: p.Name(), Points: make([]Point, 0, n), Start: start, End: end}
	for i := range n {
		pt, err := At(p, obs, start.AddDays(float64(i)*days), nil)
		if err != nil {
			return Path{}, err
		}
		path.Points = append(path.Points, pt)
	}
	return path, nil
}

type sunProvider struct{}

func (sunProvider) Name() string { return "Sun" }
func (sunProvider) Kind() Kind   { return KindSun }

func (sunProvider) Position(jd astro.JulianDate, tr *verbose.Trace) (astro.ICRSCoord, error) {
	return astro.SunAt(jd, tr).ICRS(), nil
}

func (sunProvider) RiseSet(obs astro.Observer, jd astro.JulianDate, tr *verbose.Trace) (astro.RiseSetTimes, error) {
	return astro.SunRiseSet(obs, jd, tr)
}

type moonProvider struct{}

func (moonProvider) Name() string { return "Moon" }
func (moonProvider) Kind() Kind   { return KindMoon }

func (moonProvider) Position(jd astro.JulianDate, tr *verbose.Trace) (astro.ICRSCoord, error) {
	return astro.MoonAt(jd, tr).ICRS(), nil
}

func (moonProvider) RiseSet(obs astro.Observer, jd astro.JulianDate, tr *verbose.Trace) (astro.RiseSetTimes, error) {
	return astro.MoonRiseSet(obs, jd, tr)
}

type planetProvider struct {
	planet astro.Planet
}

func (p planetProvider) Name() string { return p.planet.String() }
func (planetProvider) Kind() Kind     { return KindPlanet }

func (p planetProvider) Position(jd astro.JulianDate, tr *verbose.Trace) (astro.ICRSCoord, error) {
	pos, err := astro.PlanetAt(p.planet, jd, tr)
	if err != nil {
		return astro.ICRSCoord{}, err
	}
	return pos.ICRS(), nil
}

func (p planetProvider) RiseSet(obs astro.Observer, jd astro.JulianDate, tr *verbose.Trace) (astro.RiseSetTimes, error) {
	return astro.PlanetRiseSet(p.planet, obs, jd, tr)
}

// fixedProvider serves catalog stars and user coordinates.
type fixedProvider struct {
	name  string
	kind  Kind
	coord astro.ICRSCoord
}

func (f fixedProvider) Name() string { return f.name }
func (f fixedProvider) Kind() Kind   { return f.kind }

func (f fixedProvider) Position(astro.JulianDate, *verbose.Trace) (astro.ICRSCoord, error) {
	return f.coord, nil
}

func (f fixedProvider) RiseSet(obs astro.Observer, jd astro.JulianDate, tr *verbose.Trace) (astro.RiseSetTimes, error) {
	return astro.TargetRiseSet(f.coord, obs, jd, tr)
}

// Fixed returns a provider for a target that does not move against the
// stars.
func Fixed(name string, c astro.ICRSCoord) Provider {
	if name == "" {
		name = c.String()
	}
	return fixedProvider{name: name, kind: KindFixed, coord: c}
}
