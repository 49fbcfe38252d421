package astro

import (
	"fmt"
	"math"
)

// OrbitalElements are mean Keplerian elements referred to the J2000 ecliptic
// and equinox, each with a linear rate per Julian century.
type OrbitalElements struct {
	A, DA   float64 // semi-major axis, AU
	E, DE   float64 // eccentricity
	I, DI   float64 // inclination, degrees
	L, DL   float64 // mean longitude, degrees
	LP, DLP float64 // longitude of perihelion, degrees
	N, DN   float64 // longitude of ascending node, degrees
}

// orbit is a set of elements evaluated at one instant. Angles in radians.
type orbit struct {
	a, e, i, l, lp, node float64
}

func (el OrbitalElements) at(t float64) orbit {
	return orbit{
		a:    el.A + t*el.DA,
		e:    el.E + t*el.DE,
		i:    degToRad(el.I + t*el.DI),
		l:    degToRad(wrapDegrees(el.L+t*el.DL, 0)),
		lp:   degToRad(wrapDegrees(el.LP+t*el.DLP, 0)),
		node: degToRad(wrapDegrees(el.N+t*el.DN, 0)),
	}
}

const keplerMaxIter = 30

// SolveKepler returns the eccentric anomaly E (radians) satisfying
// M = E − e sin E for 0 ≤ e < 1.
func SolveKepler(m, e float64) (float64, error) {
	if e < 0 || e >= 1 || math.IsNaN(m) {
		return 0, fmt.Errorf("kepler: eccentricity %.6f: %w", e, ErrDomain)
	}

	// Danby's starter
	var ea float64
	if e < 0.8 {
		ea = m + e*math.Sin(m)*(1+e*math.Cos(m))
	} else {
		ea = m + 0.85*e*math.Copysign(1, math.Sin(m))
	}

	for range keplerMaxIter {
		f := ea - e*math.Sin(ea) - m
		if math.Abs(f) < 1e-14 {
			return ea, nil
		}
		ea -= f / (1 - e*math.Cos(ea))
	}
	if math.Abs(ea-e*math.Sin(ea)-m) < 1e-10 {
		return ea, nil
	}
	return 0, fmt.Errorf("kepler: M=%.6f e=%.6f after %d iterations: %w", m, e, keplerMaxIter, ErrConvergence)
}

// HeliocentricEcliptic returns the heliocentric ecliptic position in AU at t
// Julian centuries from J2000.
func (el OrbitalElements) HeliocentricEcliptic(t float64) (Vec3, error) {
	o := el.at(t)

	m := math.Mod(o.l-o.lp, 2*math.Pi)
	w := o.lp - o.node

	ea, err := SolveKepler(m, o.e)
	if err != nil {
		return Vec3{}, err
	}

	v := 2 * math.Atan2(math.Sqrt(1+o.e)*math.Sin(ea/2), math.Sqrt(1-o.e)*math.Cos(ea/2))
	r := o.a * (1 - o.e*math.Cos(ea))

	// Orbital plane → ecliptic: rotate by ω, tilt by i, then by Ω.
	u := v + w
	su, cu := math.Sincos(u)
	sn, cn := math.Sincos(o.node)
	si, ci := math.Sincos(o.i)

	return Vec3{
		X: r * (cn*cu - sn*su*ci),
		Y: r * (sn*cu + cn*su*ci),
		Z: r * su * si,
	}, nil
}
