package astro

import (
	"github.com/litescript/starward/internal/verbose"
)

// TargetVisibility summarizes how observable a fixed target is at one instant
// and over the following 24 h.
type TargetVisibility struct {
	Target   ICRSCoord
	Observer Observer
	JD       JulianDate

	Altitude   Angle
	Azimuth    Angle
	Airmass    float64
	HasAirmass bool
	HourAngle  Angle

	Transit         Event
	TransitAltitude Angle
	Rise            Event
	Set             Event
	Circumpolar     bool
	NeverRises      bool

	MoonSeparation   Angle
	MoonIllumination float64
	SunAltitude      Angle
	IsNight          bool
}

// TargetAltitude returns the geometric altitude of a fixed target.
func TargetAltitude(target ICRSCoord, obs Observer, jd JulianDate, tr *verbose.Trace) Angle {
	return target.ToHorizontal(obs, jd, tr).Alt
}

// TargetAzimuth returns the azimuth of a fixed target.
func TargetAzimuth(target ICRSCoord, obs Observer, jd JulianDate, tr *verbose.Trace) Angle {
	return target.ToHorizontal(obs, jd, tr).Az
}

// TransitTime returns the meridian transit of target nearest jd.
func TransitTime(target ICRSCoord, obs Observer, jd JulianDate, tr *verbose.Trace) (JulianDate, error) {
	defer tr.Section("Transit")()
	return solveTransit(obs, jd, fixedTracker(target, FromDegrees(RefractionHorizon)), tr)
}

// TransitAltitude returns the altitude of target at upper culmination,
// 90° − |φ − δ|.
func TransitAltitude(target ICRSCoord, obs Observer, tr *verbose.Trace) Angle {
	alt := transitAltitude(obs.Latitude, target.Dec)
	if tr.Enabled() {
		tr.Stepf("Transit altitude", "h = 90° − |φ − δ| = 90° − |%.4f° − %.4f°| = %.4f°",
			obs.Latitude.Degrees(), target.Dec.Degrees(), alt.Degrees())
	}
	return alt
}

// TargetRiseSet solves rise, transit and set of a fixed target in the 24 h
// following jd, with the standard −34′ refraction horizon.
func TargetRiseSet(target ICRSCoord, obs Observer, jd JulianDate, tr *verbose.Trace) (RiseSetTimes, error) {
	return riseSetTimes(obs, jd, fixedTracker(target, FromDegrees(RefractionHorizon)), tr)
}

// MoonTargetSeparation returns the angular distance from the Moon to target.
func MoonTargetSeparation(target ICRSCoord, jd JulianDate, tr *verbose.Trace) Angle {
	return MoonAt(jd, tr).ICRS().SeparationTo(target, tr)
}

// IsNight reports whether the Sun is below astronomical twilight.
func IsNight(obs Observer, jd JulianDate, tr *verbose.Trace) bool {
	return SolarAltitude(obs, jd, tr).Degrees() < AstronomicalNight
}

// ComputeVisibility builds the full visibility report for target.
func ComputeVisibility(target ICRSCoord, obs Observer, jd JulianDate, tr *verbose.Trace) (TargetVisibility, error) {
	defer tr.Section("Visibility")()

	hz := target.ToHorizontal(obs, jd, tr)
	am, ok := Airmass(hz.Alt, tr)

	events, err := TargetRiseSet(target, obs, jd, tr)
	if err != nil {
		return TargetVisibility{}, err
	}
	transit, err := TransitTime(target, obs, jd, nil)
	if err != nil {
		return TargetVisibility{}, err
	}

	sunAlt := SolarAltitude(obs, jd, nil)
	phase := MoonPhase(jd, nil)

	v := TargetVisibility{
		Target:           target,
		Observer:         obs,
		JD:               jd,
		Altitude:         hz.Alt,
		Azimuth:          hz.Az,
		Airmass:          am,
		HasAirmass:       ok,
		HourAngle:        HourAngle(target.RA, obs, jd, nil),
		Transit:          Event{JD: transit, OK: true},
		TransitAltitude:  events.TransitAltitude,
		Rise:             events.Rise,
		Set:              events.Set,
		Circumpolar:      events.Circumpolar,
		NeverRises:       events.NeverRises,
		MoonSeparation:   MoonTargetSeparation(target, jd, nil),
		MoonIllumination: phase.Illumination,
		SunAltitude:      sunAlt,
		IsNight:          sunAlt.Degrees() < AstronomicalNight,
	}

	if tr.Enabled() {
		tr.Stepf("Conditions", "Sun altitude = %.2f° (night: %t)\nMoon: %.1f° away, %.0f%% lit",
			sunAlt.Degrees(), v.IsNight, v.MoonSeparation.Degrees(), phase.PercentIlluminated)
	}
	return v, nil
}

// ElevationTier categorizes altitude for display.
type ElevationTier int

const (
	ElevationNone   ElevationTier = iota // Below horizon
	ElevationLow                         // 0-15 degrees
	ElevationMedium                      // 15-45 degrees
	ElevationHigh                        // 45+ degrees
)

// GetElevationTier returns the tier for an altitude.
func GetElevationTier(alt Angle) ElevationTier {
	switch d := alt.Degrees(); {
	case d <= 0:
		return ElevationNone
	case d < 15:
		return ElevationLow
	case d < 45:
		return ElevationMedium
	default:
		return ElevationHigh
	}
}
