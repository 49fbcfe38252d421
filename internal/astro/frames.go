package astro

import (
	"math"
)

// Vec3 is a Cartesian vector in whichever frame the caller is working in.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// SphericalToVec returns the unit vector for a longitude/latitude pair.
func SphericalToVec(lon, lat Angle) Vec3 {
	cl := lat.Cos()
	return Vec3{X: cl * lon.Cos(), Y: cl * lon.Sin(), Z: lat.Sin()}
}

// VecToSpherical returns the longitude in [0°, 360°) and latitude of v.
func VecToSpherical(v Vec3) (lon, lat Angle) {
	r := v.Norm()
	if r == 0 {
		return Angle{}, Angle{}
	}
	lon = FromRadians(math.Atan2(v.Y, v.X)).Normalize360()
	lat = FromRadians(math.Asin(clampUnit(v.Z / r)))
	return lon, lat
}

// KmToAU converts kilometers to Astronomical Units.
func KmToAU(km float64) float64 {
	return km / AU
}

// AUToKm converts Astronomical Units to kilometers.
func AUToKm(au float64) float64 {
	return au * AU
}

// EquatorialToEcliptic rotates an equatorial vector about X by the J2000
// obliquity. Units pass through unchanged.
func EquatorialToEcliptic(eq Vec3) Vec3 {
	sinE, cosE := math.Sincos(degToRad(ObliquityJ2000))
	return Vec3{
		X: eq.X,
		Y: eq.Y*cosE + eq.Z*sinE,
		Z: -eq.Y*sinE + eq.Z*cosE,
	}
}

// EclipticToEquatorial is the inverse of EquatorialToEcliptic.
func EclipticToEquatorial(ecl Vec3) Vec3 {
	return eclipticToEquatorialAt(ecl, ObliquityJ2000)
}

func eclipticToEquatorialAt(ecl Vec3, epsDeg float64) Vec3 {
	sinE, cosE := math.Sincos(degToRad(epsDeg))
	return Vec3{
		X: ecl.X,
		Y: ecl.Y*cosE - ecl.Z*sinE,
		Z: ecl.Y*sinE + ecl.Z*cosE,
	}
}

// EclipticToICRS converts ecliptic longitude and latitude to RA/Dec for the
// given obliquity in degrees.
func EclipticToICRS(lon, lat Angle, epsDeg float64) ICRSCoord {
	ra, dec := VecToSpherical(eclipticToEquatorialAt(SphericalToVec(lon, lat), epsDeg))
	return ICRSCoord{RA: ra, Dec: dec}
}

// LightTime returns the one-way light travel time in seconds for a distance
// in AU.
func LightTime(au float64) float64 {
	return AUToKm(au) / SpeedOfLight
}

// MeanObliquity returns the mean obliquity of the ecliptic in degrees.
func MeanObliquity(jd JulianDate) float64 {
	t := jd.T()
	return 23.439291 - 0.0130042*t - 0.00000016*t*t + 0.000000504*t*t*t
}
