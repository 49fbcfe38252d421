package astro

import (
	"fmt"
	"math"

	"github.com/litescript/starward/internal/verbose"
)

// SunPosition is the apparent geocentric position of the Sun.
type SunPosition struct {
	JD             JulianDate
	Longitude      Angle // apparent ecliptic longitude
	Latitude       Angle // always zero in this series
	RA             Angle
	Dec            Angle
	DistanceAU     float64
	EquationOfTime float64 // minutes, apparent minus mean
}

// ICRS returns the equatorial part of the position.
func (s SunPosition) ICRS() ICRSCoord {
	return ICRSCoord{RA: s.RA, Dec: s.Dec}
}

// SunAt evaluates the low-precision solar series of Meeus ch. 25. Accuracy
// is about 0.01°, plenty for rise/set and separation work.
func SunAt(jd JulianDate, tr *verbose.Trace) SunPosition {
	defer tr.Section("Sun position")()

	t := jd.T()

	l0 := wrapDegrees(280.46646+36000.76983*t+0.0003032*t*t, 0)
	m := wrapDegrees(357.52911+35999.05029*t-0.0001537*t*t, 0)
	mRad := degToRad(m)

	c := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(mRad) +
		(0.019993-0.000101*t)*math.Sin(2*mRad) +
		0.000289*math.Sin(3*mRad)

	trueLon := l0 + c
	v := m + c
	e := 0.016708634 - 0.000042037*t - 0.0000001267*t*t
	r := 1.000001018 * (1 - e*e) / (1 + e*math.Cos(degToRad(v)))

	omega := 125.04 - 1934.136*t
	appLon := wrapDegrees(trueLon-0.00569-0.00478*math.Sin(degToRad(omega)), 0)

	eps0 := MeanObliquity(jd)
	eps := eps0 + 0.00256*math.Cos(degToRad(omega))

	lonRad, epsRad := degToRad(appLon), degToRad(eps)
	ra := FromRadians(math.Atan2(math.Cos(epsRad)*math.Sin(lonRad), math.Cos(lonRad))).Normalize360()
	dec := FromRadians(math.Asin(math.Sin(epsRad) * math.Sin(lonRad)))

	// Nutation in longitude, leading term only.
	dpsi := -0.00478 * math.Sin(degToRad(omega))
	eot := 4 * wrapDegrees(l0-0.0057183-ra.Degrees()+dpsi*math.Cos(epsRad), -180)

	if tr.Enabled() {
		tr.Stepf("Time argument", "T = %.10f centuries", t)
		tr.Stepf("Mean elements", "L₀ = %.6f°\nM = %.6f°", l0, m)
		tr.Stepf("Equation of centre",
			"C = (1.914602 − 0.004817T)sin M + (0.019993 − 0.000101T)sin 2M + 0.000289 sin 3M\n  = %.6f°", c)
		tr.Stepf("Longitude", "☉ = L₀ + C = %.6f°\nλ = ☉ − 0.00569 − 0.00478 sin Ω = %.6f° (Ω = %.4f°)",
			trueLon, appLon, wrapDegrees(omega, 0))
		tr.Stepf("Radius vector", "e = %.9f\nν = %.6f°\nR = %.8f AU", e, wrapDegrees(v, 0), r)
		tr.Stepf("Obliquity", "ε₀ = %.6f°\nε = ε₀ + 0.00256 cos Ω = %.6f°", eps0, eps)
		tr.Stepf("Equatorial", "α = %.6f° (%s)\nδ = %.6f°", ra.Degrees(), ra.HMS(2), dec.Degrees())
		tr.Stepf("Equation of time", "E = 4(L₀ − 0.0057183° − α + Δψ cos ε) = %.3f min", eot)
	}

	return SunPosition{
		JD:             jd,
		Longitude:      FromDegrees(appLon),
		RA:             ra,
		Dec:            dec,
		DistanceAU:     r,
		EquationOfTime: eot,
	}
}

// EquationOfTime returns apparent minus mean solar time in minutes.
func EquationOfTime(jd JulianDate, tr *verbose.Trace) float64 {
	return SunAt(jd, tr).EquationOfTime
}

func sunTracker(h0 Angle) tracker {
	return func(jd JulianDate) (ICRSCoord, Angle, error) {
		return SunAt(jd, nil).ICRS(), h0, nil
	}
}

// SolarAltitude returns the Sun's geometric altitude.
func SolarAltitude(obs Observer, jd JulianDate, tr *verbose.Trace) Angle {
	return SunAt(jd, tr).ICRS().ToHorizontal(obs, jd, tr).Alt
}

// Sunrise returns the first sunrise (upper limb, with refraction) in the
// 24 h following jd.
func Sunrise(obs Observer, jd JulianDate, tr *verbose.Trace) (Event, error) {
	defer tr.Section("Sunrise")()
	return riseEvent(obs, jd, sunTracker(FromDegrees(SunHorizon)), tr)
}

// Sunset returns the first sunset in the 24 h following jd.
func Sunset(obs Observer, jd JulianDate, tr *verbose.Trace) (Event, error) {
	defer tr.Section("Sunset")()
	return setEvent(obs, jd, sunTracker(FromDegrees(SunHorizon)), tr)
}

// SolarNoon returns the Sun's meridian transit nearest jd + 12 h.
func SolarNoon(obs Observer, jd JulianDate, tr *verbose.Trace) (Event, error) {
	defer tr.Section("Solar noon")()
	noon, err := solveTransit(obs, jd.AddDays(0.5), sunTracker(FromDegrees(SunHorizon)), tr)
	if err != nil {
		return Event{}, err
	}
	return Event{JD: noon, OK: true}, nil
}

// TwilightKind selects the solar depression that bounds twilight.
type TwilightKind int

const (
	CivilTwilight TwilightKind = iota
	NauticalTwilight
	AstronomicalTwilight
)

func (k TwilightKind) String() string {
	switch k {
	case CivilTwilight:
		return "civil"
	case NauticalTwilight:
		return "nautical"
	case AstronomicalTwilight:
		return "astronomical"
	}
	return "unknown"
}

// Horizon returns the solar altitude threshold of the twilight kind.
func (k TwilightKind) Horizon() Angle {
	switch k {
	case NauticalTwilight:
		return FromDegrees(NauticalHorizon)
	case AstronomicalTwilight:
		return FromDegrees(AstronomicalNight)
	default:
		return FromDegrees(CivilHorizon)
	}
}

// ParseTwilightKind parses "civil", "nautical" or "astronomical".
func ParseTwilightKind(s string) (TwilightKind, error) {
	switch s {
	case "civil":
		return CivilTwilight, nil
	case "nautical":
		return NauticalTwilight, nil
	case "astronomical", "astro":
		return AstronomicalTwilight, nil
	}
	return 0, fmt.Errorf("twilight kind %q: %w", s, ErrInvalidArgument)
}

// Twilight returns when the Sun crosses the twilight threshold in the
// morning (dawn) and evening (dusk), each searched in the 24 h after jd.
func Twilight(obs Observer, jd JulianDate, kind TwilightKind, tr *verbose.Trace) (dawn, dusk Event, err error) {
	if tr.Enabled() {
		defer tr.Section(kind.String() + " twilight")()
	}
	track := sunTracker(kind.Horizon())
	if dawn, err = riseEvent(obs, jd, track, tr); err != nil {
		return Event{}, Event{}, err
	}
	if dusk, err = setEvent(obs, jd, track, tr); err != nil {
		return Event{}, Event{}, err
	}
	return dawn, dusk, nil
}

// DayLength returns the hours between sunrise and sunset around the solar
// noon that follows jd. Midnight sun gives 24 and polar night 0.
func DayLength(obs Observer, jd JulianDate, tr *verbose.Trace) (float64, error) {
	defer tr.Section("Day length")()

	h0 := FromDegrees(SunHorizon)
	track := sunTracker(h0)
	noon, err := solveTransit(obs, jd.AddDays(0.5), track, nil)
	if err != nil {
		return 0, err
	}

	sun := SunAt(noon, nil)
	ha, ok := hourAngleAtHorizon(obs.Latitude, sun.Dec, h0)
	if !ok {
		hours := 0.0
		if h0.Less(transitAltitude(obs.Latitude, sun.Dec)) {
			hours = 24
		}
		if tr.Enabled() {
			tr.Stepf("Day length", "Sun does not cross %.4f°; day length = %.0f h", h0.Degrees(), hours)
		}
		return hours, nil
	}

	offset := ha.Degrees() / siderealDayRate
	rise, okRise, err := refineCrossing(obs, noon.SubDays(offset), -1, track)
	if err != nil {
		return 0, err
	}
	set, okSet, err := refineCrossing(obs, noon.AddDays(offset), +1, track)
	if err != nil {
		return 0, err
	}

	hours := 2 * offset * 24
	if okRise && okSet {
		hours = set.Sub(rise) * 24
	}
	if tr.Enabled() {
		tr.Stepf("Day length", "H₀ = %.4f°\nL = %.4f h", ha.Degrees(), hours)
	}
	return hours, nil
}

// SunSeparation returns the angular distance between the Sun and a target.
func SunSeparation(target ICRSCoord, jd JulianDate, tr *verbose.Trace) Angle {
	return SunAt(jd, tr).ICRS().SeparationTo(target, tr)
}

// SunSeparationTier categorizes sun separation for display.
type SunSeparationTier int

const (
	SunSepSafe    SunSeparationTier = iota // >= 20 degrees
	SunSepCaution                          // 10-20 degrees
	SunSepWarning                          // < 10 degrees
)

// GetSunSeparationTier returns the tier for a separation.
func GetSunSeparationTier(sep Angle) SunSeparationTier {
	switch d := sep.Degrees(); {
	case d < 10:
		return SunSepWarning
	case d < 20:
		return SunSepCaution
	default:
		return SunSepSafe
	}
}

// SunRiseSet solves sunrise, solar transit and sunset in the 24 h following
// jd.
func SunRiseSet(obs Observer, jd JulianDate, tr *verbose.Trace) (RiseSetTimes, error) {
	return riseSetTimes(obs, jd, sunTracker(FromDegrees(SunHorizon)), tr)
}
