package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/ephem"
)

// eventsTTL is how long solved rise/set times are reused.
const eventsTTL = 5 * time.Minute

// Body is one tracked body as seen from the observer.
type Body struct {
	Name     string
	Kind     ephem.Kind
	Coord    astro.ICRSCoord
	Altitude astro.Angle
	Azimuth  astro.Angle

	Magnitude    float64
	HasMagnitude bool
	Illumination float64 // lit fraction, Moon and planets
	HasPhase     bool

	Events astro.RiseSetTimes
	Track  []float64 // altitude in degrees over the next day
}

// Sky is the state of every tracked body at one instant.
type Sky struct {
	Time        time.Time
	JD          astro.JulianDate
	Observer    astro.Observer
	Bodies      []Body
	SunAltitude astro.Angle
	Night       bool
	Moon        astro.MoonPhaseInfo
}

// Body returns the named body.
func (s *Sky) Body(name string) (Body, bool) {
	for _, b := range s.Bodies {
		if b.Name == name {
			return b, true
		}
	}
	return Body{}, false
}

// Above returns the bodies above the horizon, in tracking order.
func (s *Sky) Above() []Body {
	var out []Body
	for _, b := range s.Bodies {
		if b.Altitude.Degrees() > 0 {
			out = append(out, b)
		}
	}
	return out
}

type cachedEvents struct {
	events   astro.RiseSetTimes
	observer string
	solvedAt time.Time
}

// Sampler computes skies for a fixed set of bodies. Altitude tracks come
// from a shared PathCache and rise/set times are reused for eventsTTL.
type Sampler struct {
	providers []ephem.Provider
	cache     *ephem.PathCache

	mu     sync.Mutex
	events map[string]cachedEvents
}

// NewSampler creates a sampler. A nil cache disables altitude tracks.
func NewSampler(providers []ephem.Provider, cache *ephem.PathCache) *Sampler {
	return &Sampler{
		providers: providers,
		cache:     cache,
		events:    make(map[string]cachedEvents),
	}
}

// Observe computes the sky for obs at t.
func (s *Sampler) Observe(obs astro.Observer, t time.Time) (*Sky, error) {
	jd := astro.FromTime(t)
	sunAlt := astro.SolarAltitude(obs, jd, nil)

	sky := &Sky{
		Time:        t,
		JD:          jd,
		Observer:    obs,
		Bodies:      make([]Body, 0, len(s.providers)),
		SunAltitude: sunAlt,
		Night:       sunAlt.Degrees() < astro.AstronomicalNight,
		Moon:        astro.MoonPhase(jd, nil),
	}

	for _, p := range s.providers {
		b, err := s.observeBody(p, obs, jd, t, sky.Moon)
		if err != nil {
			return nil, err
		}
		sky.Bodies = append(sky.Bodies, b)
	}
	return sky, nil
}

func (s *Sampler) observeBody(p ephem.Provider, obs astro.Observer, jd astro.JulianDate, t time.Time, moon astro.MoonPhaseInfo) (Body, error) {
	pt, err := ephem.At(p, obs, jd, nil)
	if err != nil {
		return Body{}, err
	}
	b := Body{
		Name:     p.Name(),
		Kind:     p.Kind(),
		Coord:    pt.Coord,
		Altitude: pt.Horizontal.Alt,
		Azimuth:  pt.Horizontal.Az,
	}

	switch p.Kind() {
	case ephem.KindMoon:
		b.Illumination, b.HasPhase = moon.Illumination, true
	case ephem.KindPlanet:
		planet, err := astro.ParsePlanet(p.Name())
		if err != nil {
			return Body{}, err
		}
		pos, err := astro.PlanetAt(planet, jd, nil)
		if err != nil {
			return Body{}, fmt.Errorf("%s: %w", p.Name(), err)
		}
		b.Magnitude, b.HasMagnitude = pos.Magnitude, true
		b.Illumination, b.HasPhase = pos.Illumination, true
	}

	if b.Events, err = s.riseSet(p, obs, jd, t); err != nil {
		return Body{}, err
	}

	if s.cache != nil {
		path, err := s.cache.Path(p, obs, jd, ephem.DefaultPathDuration, ephem.DefaultPathStep)
		if err != nil {
			return Body{}, err
		}
		b.Track = make([]float64, len(path.Points))
		for i, pt := range path.Points {
			b.Track[i] = pt.Horizontal.Alt.Degrees()
		}
	}
	return b, nil
}

func (s *Sampler) riseSet(p ephem.Provider, obs astro.Observer, jd astro.JulianDate, t time.Time) (astro.RiseSetTimes, error) {
	s.mu.Lock()
	cached, ok := s.events[p.Name()]
	s.mu.Unlock()
	if ok && cached.observer == obs.String() && t.Sub(cached.solvedAt) < eventsTTL && t.Sub(cached.solvedAt) >= 0 {
		return cached.events, nil
	}

	events, err := p.RiseSet(obs, jd, nil)
	if err != nil {
		return astro.RiseSetTimes{}, fmt.Errorf("%s: %w", p.Name(), err)
	}
	s.mu.Lock()
	s.events[p.Name()] = cachedEvents{events: events, observer: obs.String(), solvedAt: t}
	s.mu.Unlock()
	return events, nil
}

// Reset forgets cached events and tracks, for example after the observer
// changes.
func (s *Sampler) Reset() {
	s.mu.Lock()
	s.events = make(map[string]cachedEvents)
	s.mu.Unlock()
	if s.cache != nil {
		for _, p := range s.providers {
			s.cache.Invalidate(p.Name())
		}
	}
}
