package astro

import (
	"fmt"
	"math"
	"strings"

	"github.com/litescript/starward/internal/verbose"
)

// Planet identifies one of the seven planets other than Earth.
type Planet int

const (
	Mercury Planet = iota
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
)

type planetData struct {
	name     string
	symbol   string
	radiusKm float64
	elements OrbitalElements
	// magnitude at unit distances and phase-angle polynomial in degrees
	mag0       float64
	m1, m2, m3 float64
}

// JPL approximate mean elements, valid 1800–2050.
var planets = [...]planetData{
	Mercury: {
		name: "Mercury", symbol: "☿", radiusKm: 2439.7,
		elements: OrbitalElements{
			A: 0.38709843, DA: 0,
			E: 0.20563661, DE: 0.00002123,
			I: 7.00559432, DI: -0.00590158,
			L: 252.25166724, DL: 149472.67486623,
			LP: 77.45771895, DLP: 0.15940013,
			N: 48.33961819, DN: -0.12214182,
		},
		mag0: -0.42, m1: 0.0380, m2: -0.000273, m3: 0.000002,
	},
	Venus: {
		name: "Venus", symbol: "♀", radiusKm: 6051.8,
		elements: OrbitalElements{
			A: 0.72333566, DA: 0.00000390,
			E: 0.00677672, DE: -0.00004107,
			I: 3.39467605, DI: -0.00078890,
			L: 181.97970850, DL: 58517.81538729,
			LP: 131.76755713, DLP: 0.05679648,
			N: 76.67984255, DN: -0.27769418,
		},
		mag0: -4.40, m1: 0.0009, m2: 0.000239, m3: -0.00000065,
	},
	Mars: {
		name: "Mars", symbol: "♂", radiusKm: 3396.2,
		elements: OrbitalElements{
			A: 1.52371034, DA: 0.00001847,
			E: 0.09339410, DE: 0.00007882,
			I: 1.84969142, DI: -0.00813131,
			L: -4.55343205, DL: 19140.30268499,
			LP: -23.94362959, DLP: 0.44441088,
			N: 49.55953891, DN: -0.29257343,
		},
		mag0: -1.52, m1: 0.016,
	},
	Jupiter: {
		name: "Jupiter", symbol: "♃", radiusKm: 71492,
		elements: OrbitalElements{
			A: 5.20288700, DA: -0.00011607,
			E: 0.04838624, DE: -0.00013253,
			I: 1.30439695, DI: -0.00183714,
			L: 34.39644051, DL: 3034.74612775,
			LP: 14.72847983, DLP: 0.21252668,
			N: 100.47390909, DN: 0.20469106,
		},
		mag0: -9.40, m1: 0.005,
	},
	Saturn: {
		name: "Saturn", symbol: "♄", radiusKm: 60268,
		elements: OrbitalElements{
			A: 9.53667594, DA: -0.00125060,
			E: 0.05386179, DE: -0.00050991,
			I: 2.48599187, DI: 0.00193609,
			L: 49.95424423, DL: 1222.49362201,
			LP: 92.59887831, DLP: -0.41897216,
			N: 113.66242448, DN: -0.28867794,
		},
		mag0: -8.88,
	},
	Uranus: {
		name: "Uranus", symbol: "♅", radiusKm: 25559,
		elements: OrbitalElements{
			A: 19.18916464, DA: -0.00196176,
			E: 0.04725744, DE: -0.00004397,
			I: 0.77263783, DI: -0.00242939,
			L: 313.23810451, DL: 428.48202785,
			LP: 170.95427630, DLP: 0.40805281,
			N: 74.01692503, DN: 0.04240589,
		},
		mag0: -7.19,
	},
	Neptune: {
		name: "Neptune", symbol: "♆", radiusKm: 24764,
		elements: OrbitalElements{
			A: 30.06992276, DA: 0.00026291,
			E: 0.00859048, DE: 0.00005105,
			I: 1.77004347, DI: 0.00035372,
			L: -55.12002969, DL: 218.45945325,
			LP: 44.96476227, DLP: -0.32241464,
			N: 131.78422574, DN: -0.00508664,
		},
		mag0: -6.87,
	},
}

var earthElements = OrbitalElements{
	A: 1.00000261, DA: 0.00000562,
	E: 0.01671123, DE: -0.00004392,
	I: -0.00001531, DI: -0.01294668,
	L: 100.46457166, DL: 35999.37306329,
	LP: 102.93768193, DLP: 0.32327364,
	N: 0, DN: 0,
}

func (p Planet) valid() bool { return p >= Mercury && p <= Neptune }

func (p Planet) String() string {
	if !p.valid() {
		return fmt.Sprintf("Planet(%d)", int(p))
	}
	return planets[p].name
}

// Symbol returns the astronomical symbol of the planet.
func (p Planet) Symbol() string {
	if !p.valid() {
		return "?"
	}
	return planets[p].symbol
}

// Elements returns the planet's mean orbital elements.
func (p Planet) Elements() OrbitalElements {
	return planets[p].elements
}

// Planets lists every supported planet in order from the Sun.
func Planets() []Planet {
	return []Planet{Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune}
}

// ParsePlanet resolves a case-insensitive planet name.
func ParsePlanet(name string) (Planet, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range Planets() {
		if strings.ToLower(planets[p].name) == key {
			return p, nil
		}
	}
	return 0, fmt.Errorf("planet %q: %w", name, ErrInvalidArgument)
}

// PlanetPosition is the apparent geocentric position of a planet, neglecting
// light time and aberration.
type PlanetPosition struct {
	Planet Planet
	JD     JulianDate

	HelioLongitude Angle
	HelioLatitude  Angle
	HelioDistance  float64 // AU

	RA              Angle
	Dec             Angle
	Distance        float64 // geocentric, AU
	Elongation      Angle   // Sun–Earth–planet
	PhaseAngle      Angle   // Sun–planet–Earth
	Illumination    float64 // fraction 0..1
	AngularDiameter float64 // arcseconds
	Magnitude       float64
}

// ICRS returns the equatorial part of the position.
func (p PlanetPosition) ICRS() ICRSCoord {
	return ICRSCoord{RA: p.RA, Dec: p.Dec}
}

// PlanetAt computes the position of p from its mean Keplerian elements.
func PlanetAt(p Planet, jd JulianDate, tr *verbose.Trace) (PlanetPosition, error) {
	if !p.valid() {
		return PlanetPosition{}, fmt.Errorf("planet %d: %w", int(p), ErrInvalidArgument)
	}
	if tr.Enabled() {
		defer tr.Section(p.String() + " position")()
	}

	data := planets[p]
	t := jd.T()

	helio, err := data.elements.HeliocentricEcliptic(t)
	if err != nil {
		return PlanetPosition{}, fmt.Errorf("%s: %w", p, err)
	}
	earth, err := earthElements.HeliocentricEcliptic(t)
	if err != nil {
		return PlanetPosition{}, fmt.Errorf("earth: %w", err)
	}

	geo := helio.Sub(earth)
	r := helio.Norm()
	delta := geo.Norm()
	bigR := earth.Norm()

	ra, dec := VecToSpherical(EclipticToEquatorial(geo))
	hLon, hLat := VecToSpherical(helio)

	elong := FromRadians(math.Acos(clampUnit((bigR*bigR + delta*delta - r*r) / (2 * bigR * delta))))
	phase := FromRadians(math.Acos(clampUnit((r*r + delta*delta - bigR*bigR) / (2 * r * delta))))
	illum := (1 + phase.Cos()) / 2
	diam := 2 * math.Atan(data.radiusKm/AUToKm(delta)) * ArcsecPerRadian

	i := phase.Degrees()
	mag := data.mag0 + 5*math.Log10(r*delta) + data.m1*i + data.m2*i*i + data.m3*i*i*i

	if tr.Enabled() {
		tr.Stepf("Heliocentric (ecliptic J2000)",
			"x = %.6f, y = %.6f, z = %.6f AU\nl = %.6f°, b = %.6f°, r = %.6f AU",
			helio.X, helio.Y, helio.Z, hLon.Degrees(), hLat.Degrees(), r)
		tr.Stepf("Earth", "x = %.6f, y = %.6f, z = %.6f AU (R = %.6f)", earth.X, earth.Y, earth.Z, bigR)
		tr.Stepf("Geocentric", "Δ = %.6f AU\nα = %.6f° (%s)\nδ = %.6f°", delta, ra.Degrees(), ra.HMS(2), dec.Degrees())
		tr.Stepf("Geometry",
			"elongation = acos((R² + Δ² − r²)/(2RΔ)) = %.4f°\nphase angle = %.4f°\nilluminated = %.4f",
			elong.Degrees(), i, illum)
		tr.Stepf("Appearance", "diameter = %.2f″\nV = %.2f", diam, mag)
	}

	return PlanetPosition{
		Planet:          p,
		JD:              jd,
		HelioLongitude:  hLon,
		HelioLatitude:   hLat,
		HelioDistance:   r,
		RA:              ra,
		Dec:             dec,
		Distance:        delta,
		Elongation:      elong,
		PhaseAngle:      phase,
		Illumination:    illum,
		AngularDiameter: diam,
		Magnitude:       mag,
	}, nil
}

// AllPlanets returns every planet's position at jd, in order from the Sun.
func AllPlanets(jd JulianDate, tr *verbose.Trace) ([]PlanetPosition, error) {
	out := make([]PlanetPosition, 0, len(planets))
	for _, p := range Planets() {
		pos, err := PlanetAt(p, jd, tr)
		if err != nil {
			return nil, err
		}
		out = append(out, pos)
	}
	return out, nil
}

func planetTracker(p Planet) tracker {
	h0 := FromDegrees(RefractionHorizon)
	return func(jd JulianDate) (ICRSCoord, Angle, error) {
		pos, err := PlanetAt(p, jd, nil)
		if err != nil {
			return ICRSCoord{}, Angle{}, err
		}
		return pos.ICRS(), h0, nil
	}
}

// PlanetRise returns the first rise of p in the 24 h following jd.
func PlanetRise(p Planet, obs Observer, jd JulianDate, tr *verbose.Trace) (Event, error) {
	if !p.valid() {
		return Event{}, fmt.Errorf("planet %d: %w", int(p), ErrInvalidArgument)
	}
	if tr.Enabled() {
		defer tr.Section(p.String() + " rise")()
	}
	return riseEvent(obs, jd, planetTracker(p), tr)
}

// PlanetSet returns the first set of p in the 24 h following jd.
func PlanetSet(p Planet, obs Observer, jd JulianDate, tr *verbose.Trace) (Event, error) {
	if !p.valid() {
		return Event{}, fmt.Errorf("planet %d: %w", int(p), ErrInvalidArgument)
	}
	if tr.Enabled() {
		defer tr.Section(p.String() + " set")()
	}
	return setEvent(obs, jd, planetTracker(p), tr)
}

// PlanetTransit returns the meridian transit of p nearest jd.
func PlanetTransit(p Planet, obs Observer, jd JulianDate, tr *verbose.Trace) (Event, error) {
	if !p.valid() {
		return Event{}, fmt.Errorf("planet %d: %w", int(p), ErrInvalidArgument)
	}
	if tr.Enabled() {
		defer tr.Section(p.String() + " transit")()
	}
	t, err := solveTransit(obs, jd, planetTracker(p), tr)
	if err != nil {
		return Event{}, err
	}
	return Event{JD: t, OK: true}, nil
}

// PlanetAltitude returns the altitude of p.
func PlanetAltitude(p Planet, obs Observer, jd JulianDate, tr *verbose.Trace) (Angle, error) {
	pos, err := PlanetAt(p, jd, tr)
	if err != nil {
		return Angle{}, err
	}
	return pos.ICRS().ToHorizontal(obs, jd, tr).Alt, nil
}

// PlanetRiseSet solves all events of p in the 24 h following jd.
func PlanetRiseSet(p Planet, obs Observer, jd JulianDate, tr *verbose.Trace) (RiseSetTimes, error) {
	if !p.valid() {
		return RiseSetTimes{}, fmt.Errorf("planet %d: %w", int(p), ErrInvalidArgument)
	}
	return riseSetTimes(obs, jd, planetTracker(p), tr)
}
