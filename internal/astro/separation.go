package astro

import (
	"math"

	"github.com/litescript/starward/internal/verbose"
)

// AngularSeparation returns the great-circle distance between two points on
// the sphere using the Vincenty formula, which stays accurate for both tiny
// and antipodal separations. The result is in [0°, 180°].
func AngularSeparation(ra1, dec1, ra2, dec2 Angle, tr *verbose.Trace) Angle {
	d1, d2 := dec1.Radians(), dec2.Radians()
	dra := ra2.Radians() - ra1.Radians()

	sd1, cd1 := math.Sincos(d1)
	sd2, cd2 := math.Sincos(d2)
	sdra, cdra := math.Sincos(dra)

	a := cd2 * sdra
	b := cd1*sd2 - sd1*cd2*cdra
	num := math.Hypot(a, b)
	den := sd1*sd2 + cd1*cd2*cdra
	sep := FromRadians(math.Atan2(num, den))

	if tr.Enabled() {
		tr.Stepf("Angular separation (Vincenty)",
			"Δα = %.6f°\nnum = √[(cos δ₂ sin Δα)² + (cos δ₁ sin δ₂ − sin δ₁ cos δ₂ cos Δα)²] = %.10f\n"+
				"den = sin δ₁ sin δ₂ + cos δ₁ cos δ₂ cos Δα = %.10f\nθ = atan2(num, den) = %.6f°",
			radToDeg(dra), num, den, sep.Degrees())
	}
	return sep
}

// PositionAngle returns the position angle of the second point as seen from
// the first, measured from North through East, in [0°, 360°).
func PositionAngle(ra1, dec1, ra2, dec2 Angle, tr *verbose.Trace) Angle {
	d1, d2 := dec1.Radians(), dec2.Radians()
	dra := ra2.Radians() - ra1.Radians()

	y := math.Sin(dra) * math.Cos(d2)
	x := math.Cos(d1)*math.Sin(d2) - math.Sin(d1)*math.Cos(d2)*math.Cos(dra)
	pa := FromRadians(math.Atan2(y, x)).Normalize360()

	if tr.Enabled() {
		tr.Stepf("Position angle",
			"PA = atan2(sin Δα cos δ₂, cos δ₁ sin δ₂ − sin δ₁ cos δ₂ cos Δα)\n   = %.6f°", pa.Degrees())
	}
	return pa
}
