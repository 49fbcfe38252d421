package astro

import (
	"math"

	"github.com/litescript/starward/internal/verbose"
)

// GalacticPole fixes the orientation of the galactic frame in ICRS: the
// position of the north galactic pole and the galactic longitude of the north
// celestial pole. Values are copied, never shared.
type GalacticPole struct {
	RA     Angle
	Dec    Angle
	LonNCP Angle
}

// DefaultGalacticPole returns the ICRS realization of the IAU 1958 pole.
func DefaultGalacticPole() GalacticPole {
	return GalacticPole{
		RA:     FromDegrees(192.8594813),
		Dec:    FromDegrees(27.1282511),
		LonNCP: FromDegrees(122.9319185),
	}
}

// ToGalactic rotates an ICRS position into galactic l, b.
func (p GalacticPole) ToGalactic(c ICRSCoord, tr *verbose.Trace) GalacticCoord {
	defer tr.Section("ICRS → Galactic")()

	ra, dec := c.RA.Radians(), c.Dec.Radians()
	ra0, dec0 := p.RA.Radians(), p.Dec.Radians()
	dra := ra - ra0

	sinB := math.Sin(dec)*math.Sin(dec0) + math.Cos(dec)*math.Cos(dec0)*math.Cos(dra)
	b := math.Asin(clampUnit(sinB))

	y := math.Cos(dec) * math.Sin(dra)
	x := math.Sin(dec)*math.Cos(dec0) - math.Cos(dec)*math.Sin(dec0)*math.Cos(dra)
	l := FromDegrees(p.LonNCP.Degrees() - radToDeg(math.Atan2(y, x))).Normalize360()

	if tr.Enabled() {
		tr.Stepf("Input", "α = %.6f°, δ = %.6f°\nα₀ = %.7f°, δ₀ = %.7f°, l_Ω = %.7f°",
			c.RA.Degrees(), c.Dec.Degrees(), p.RA.Degrees(), p.Dec.Degrees(), p.LonNCP.Degrees())
		tr.Stepf("Galactic latitude",
			"sin b = sin δ sin δ₀ + cos δ cos δ₀ cos(α − α₀)\n      = %.10f\n    b = %.6f°", sinB, radToDeg(b))
		tr.Stepf("Galactic longitude",
			"l = l_Ω − atan2(%.10f, %.10f)\n  = %.6f°", y, x, l.Degrees())
	}

	return GalacticCoord{L: l, B: FromRadians(b)}
}

// ToICRS applies the transpose rotation.
func (p GalacticPole) ToICRS(g GalacticCoord, tr *verbose.Trace) ICRSCoord {
	defer tr.Section("Galactic → ICRS")()

	l, b := g.L.Radians(), g.B.Radians()
	dec0 := p.Dec.Radians()
	dl := p.LonNCP.Radians() - l

	sinDec := math.Sin(b)*math.Sin(dec0) + math.Cos(b)*math.Cos(dec0)*math.Cos(dl)
	dec := math.Asin(clampUnit(sinDec))

	y := math.Cos(b) * math.Sin(dl)
	x := math.Sin(b)*math.Cos(dec0) - math.Cos(b)*math.Sin(dec0)*math.Cos(dl)
	ra := FromDegrees(p.RA.Degrees() + radToDeg(math.Atan2(y, x))).Normalize360()

	if tr.Enabled() {
		tr.Stepf("Input", "l = %.6f°, b = %.6f°", g.L.Degrees(), g.B.Degrees())
		tr.Stepf("Declination",
			"sin δ = sin b sin δ₀ + cos b cos δ₀ cos(l_Ω − l)\n      = %.10f\n    δ = %.6f°", sinDec, radToDeg(dec))
		tr.Stepf("Right ascension",
			"α = α₀ + atan2(%.10f, %.10f)\n  = %.6f° (%s)", y, x, ra.Degrees(), ra.HMS(2))
	}

	return ICRSCoord{RA: ra, Dec: FromRadians(dec)}
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
