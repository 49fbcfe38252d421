package astro

import (
	"math"

	"github.com/litescript/starward/internal/verbose"
)

// HourAngle returns LST − RA wrapped into [-180°, 180°). Positive values are
// west of the meridian.
func HourAngle(ra Angle, obs Observer, jd JulianDate, tr *verbose.Trace) Angle {
	lst := FromHours(jd.LST(obs.Longitude, tr))
	ha := lst.Sub(ra).Normalize180()
	if tr.Enabled() {
		tr.Stepf("Hour angle", "H = LST − α\n  = %.6f° − %.6f°\n  = %.6f°", lst.Degrees(), ra.Degrees(), ha.Degrees())
	}
	return ha
}

// ToHorizontal computes altitude and azimuth for an observer at jd. No
// refraction is applied.
func (c ICRSCoord) ToHorizontal(obs Observer, jd JulianDate, tr *verbose.Trace) HorizontalCoord {
	defer tr.Section("ICRS → Horizontal")()

	ha := HourAngle(c.RA, obs, jd, tr)
	return altAz(ha, c.Dec, obs.Latitude, tr)
}

func altAz(ha, dec, lat Angle, tr *verbose.Trace) HorizontalCoord {
	h, d, phi := ha.Radians(), dec.Radians(), lat.Radians()

	sinAlt := math.Sin(d)*math.Sin(phi) + math.Cos(d)*math.Cos(phi)*math.Cos(h)
	alt := math.Asin(clampUnit(sinAlt))

	y := -math.Cos(d) * math.Sin(h)
	x := math.Sin(d)*math.Cos(phi) - math.Cos(d)*math.Sin(phi)*math.Cos(h)
	az := FromRadians(math.Atan2(y, x)).Normalize360()

	if tr.Enabled() {
		tr.Stepf("Altitude",
			"sin h = sin δ sin φ + cos δ cos φ cos H\n      = %.10f\n    h = %.6f°", sinAlt, radToDeg(alt))
		tr.Stepf("Azimuth",
			"A = atan2(−cos δ sin H, sin δ cos φ − cos δ sin φ cos H)\n  = %.6f° (from North, through East)", az.Degrees())
	}

	return HorizontalCoord{Alt: FromRadians(alt), Az: az}
}

// ToICRS inverts ToHorizontal for the same observer and instant.
func (h HorizontalCoord) ToICRS(obs Observer, jd JulianDate, tr *verbose.Trace) ICRSCoord {
	defer tr.Section("Horizontal → ICRS")()

	alt, az, phi := h.Alt.Radians(), h.Az.Radians(), obs.Latitude.Radians()

	sinDec := math.Sin(alt)*math.Sin(phi) + math.Cos(alt)*math.Cos(phi)*math.Cos(az)
	dec := math.Asin(clampUnit(sinDec))

	y := -math.Sin(az) * math.Cos(alt)
	x := math.Sin(alt)*math.Cos(phi) - math.Cos(alt)*math.Sin(phi)*math.Cos(az)
	ha := FromRadians(math.Atan2(y, x))

	lst := FromHours(jd.LST(obs.Longitude, tr))
	ra := lst.Sub(ha).Normalize360()

	if tr.Enabled() {
		tr.Stepf("Declination",
			"sin δ = sin h sin φ + cos h cos φ cos A\n      = %.10f\n    δ = %.6f°", sinDec, radToDeg(dec))
		tr.Stepf("Right ascension",
			"H = %.6f°\nα = LST − H = %.6f°", ha.Degrees(), ra.Degrees())
	}

	return ICRSCoord{RA: ra, Dec: FromRadians(dec)}
}

// Airmass returns the Pickering (2002) airmass for an apparent altitude.
// ok is false when the target is on or below the horizon.
//
// The corrected altitude is clamped at 90° so the zenith gives exactly 1.
// Airmass is therefore flat at 1 for altitudes above about 89.964° and
// strictly increasing as the altitude falls below that.
func Airmass(alt Angle, tr *verbose.Trace) (float64, bool) {
	h := alt.Degrees()
	if h <= 0 {
		if tr.Enabled() {
			tr.Stepf("Airmass", "h = %.4f° is not above the horizon; airmass undefined", h)
		}
		return 0, false
	}

	arg := math.Min(h+244/(165+47*math.Pow(h, 1.1)), 90)
	x := 1 / math.Sin(degToRad(arg))

	if tr.Enabled() {
		tr.Stepf("Airmass",
			"X = 1 / sin(h + 244/(165 + 47h^1.1))\n  = 1 / sin(%.6f°)\n  = %.6f", arg, x)
	}
	return x, true
}
