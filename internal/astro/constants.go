package astro

import (
	"fmt"
	"strings"
)

// Time scale constants.
const (
	J2000         = 2451545.0 // JD of 2000-01-01 12:00 TT
	MJDOffset     = 2400000.5
	JulianYear    = 365.25
	JulianCentury = 36525.0
	SynodicMonth  = 29.530588853 // days
	SiderealRate  = 360.98564736629
)

// Physical constants.
const (
	// AU is the Astronomical Unit in kilometers.
	AU = 149597870.7

	SpeedOfLight      = 299792.458 // km/s
	EarthRadiusKm     = 6378.137
	EarthFlattening   = 1 / 298.257223563
	EarthRotationRate = 7.292115e-5 // rad/s
	MoonRadiusKm      = 1737.4
	SunRadiusKm       = 695700.0
	ObliquityJ2000    = 23.439291111 // degrees
	ArcsecPerRadian   = 206264.806247096355
)

// Horizon thresholds for rise and set, in degrees.
const (
	RefractionHorizon = -34.0 / 60.0 // standard refraction at the horizon
	SunHorizon        = -50.0 / 60.0 // refraction plus the Sun's 16' semidiameter
	CivilHorizon      = -6.0
	NauticalHorizon   = -12.0
	AstronomicalNight = -18.0
)

// Constant is a named entry in the constants table.
type Constant struct {
	Key         string
	Name        string
	Value       float64
	Unit        string
	Reference   string
	Description string
}

// Constants returns the named constants used by the core. The slice is
// freshly built on each call so callers may not alter shared state.
func Constants() []Constant {
	pole := DefaultGalacticPole()
	return []Constant{
		{"c", "Speed of light", SpeedOfLight, "km/s", "CODATA 2018", "Exact by SI definition"},
		{"au", "Astronomical Unit", AU, "km", "IAU 2012 B2", "Mean Earth-Sun distance"},
		{"jd_j2000", "Julian Date of J2000.0", J2000, "days", "IAU", "Standard epoch"},
		{"mjd_offset", "Modified Julian Date offset", MJDOffset, "days", "", "MJD = JD - offset"},
		{"julian_year", "Julian year", JulianYear, "days", "", ""},
		{"julian_century", "Julian century", JulianCentury, "days", "", "Unit of T in the series"},
		{"synodic_month", "Mean synodic month", SynodicMonth, "days", "Meeus ch. 49", "New moon to new moon"},
		{"sidereal_rate", "Sidereal rate", SiderealRate, "deg/day", "IAU 1982", "Rate of change of GMST"},
		{"arcsec_per_rad", "Arcseconds per radian", ArcsecPerRadian, "arcsec/rad", "", ""},
		{"earth_radius", "Earth equatorial radius", EarthRadiusKm, "km", "WGS84", ""},
		{"earth_flattening", "Earth flattening", EarthFlattening, "", "WGS84", ""},
		{"earth_rotation", "Earth rotation rate", EarthRotationRate, "rad/s", "IERS", ""},
		{"moon_radius", "Moon mean radius", MoonRadiusKm, "km", "IAU", ""},
		{"sun_radius", "Solar radius", SunRadiusKm, "km", "IAU 2015 B3", "Nominal"},
		{"obliquity_j2000", "Mean obliquity at J2000.0", ObliquityJ2000, "degrees", "IAU 2006", ""},
		{"gal_pole_ra", "Galactic north pole RA", pole.RA.Degrees(), "degrees", "ICRS", ""},
		{"gal_pole_dec", "Galactic north pole Dec", pole.Dec.Degrees(), "degrees", "ICRS", ""},
		{"gal_lon_ncp", "Galactic longitude of the NCP", pole.LonNCP.Degrees(), "degrees", "ICRS", ""},
		{"refraction", "Horizon refraction", RefractionHorizon, "degrees", "", "Used for rise/set"},
	}
}

// LookupConstant finds a constant by key or by case-insensitive name.
func LookupConstant(key string) (Constant, error) {
	for _, c := range Constants() {
		if c.Key == key || strings.EqualFold(c.Name, key) {
			return c, nil
		}
	}
	return Constant{}, fmt.Errorf("constant %q: %w", key, ErrInvalidArgument)
}
