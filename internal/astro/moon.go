package astro

import (
	"fmt"
	"math"
	"strings"

	"github.com/litescript/starward/internal/verbose"
)

// MoonPosition is the geocentric position of the Moon.
type MoonPosition struct {
	JD              JulianDate
	Longitude       Angle
	Latitude        Angle
	RA              Angle
	Dec             Angle
	DistanceKm      float64
	Parallax        Angle
	AngularDiameter Angle
}

// ICRS returns the equatorial part of the position.
func (m MoonPosition) ICRS() ICRSCoord {
	return ICRSCoord{RA: m.RA, Dec: m.Dec}
}

// periodic term: coefficient times sin or cos of (d·D + m·M + mp·M′ + f·F).
type lunarTerm struct {
	d, m, mp, f float64
	coeff       float64
}

var lunarLongitude = []lunarTerm{
	{0, 0, 1, 0, 6.288774},
	{2, 0, -1, 0, 1.274027},
	{2, 0, 0, 0, 0.658314},
	{0, 0, 2, 0, 0.213618},
	{0, 1, 0, 0, -0.185116},
	{0, 0, 0, 2, -0.114332},
	{2, 0, -2, 0, 0.058793},
	{2, -1, -1, 0, 0.057066},
	{2, 0, 1, 0, 0.053322},
	{2, -1, 0, 0, 0.045758},
	{0, 1, -1, 0, -0.040923},
	{1, 0, 0, 0, -0.034720},
	{0, 1, 1, 0, -0.030383},
}

var lunarLatitude = []lunarTerm{
	{0, 0, 0, 1, 5.128122},
	{0, 0, 1, 1, 0.280602},
	{0, 0, 1, -1, 0.277693},
	{2, 0, 0, -1, 0.173237},
	{2, 0, -1, 1, 0.055413},
	{2, 0, -1, -1, 0.046271},
	{2, 0, 0, 1, 0.032573},
	{0, 0, 2, 1, 0.017198},
}

// distance terms in km, cosine series
var lunarDistance = []lunarTerm{
	{0, 0, 1, 0, -20905.355},
	{2, 0, -1, 0, -3699.111},
	{2, 0, 0, 0, -2955.968},
	{0, 0, 2, 0, -569.925},
	{0, 1, 0, 0, 48.888},
	{0, 0, 0, 2, -3.149},
	{2, 0, -2, 0, 246.158},
	{2, -1, -1, 0, -152.138},
	{2, 0, 1, 0, -170.733},
	{2, -1, 0, 0, -204.586},
	{0, 1, -1, 0, -129.620},
	{1, 0, 0, 0, 108.743},
	{0, 1, 1, 0, 104.755},
}

// lunarArgs are the fundamental arguments of Meeus ch. 47, in degrees.
type lunarArgs struct {
	lp, d, m, mp, f float64
}

func lunarArguments(t float64) lunarArgs {
	t2 := t * t
	return lunarArgs{
		lp: wrapDegrees(218.3164477+481267.88123421*t-0.0015786*t2, 0),
		d:  wrapDegrees(297.8501921+445267.1114034*t-0.0018819*t2, 0),
		m:  wrapDegrees(357.5291092+35999.0502909*t-0.0001536*t2, 0),
		mp: wrapDegrees(134.9633964+477198.8675055*t+0.0087414*t2, 0),
		f:  wrapDegrees(93.2720950+483202.0175233*t-0.0036539*t2, 0),
	}
}

func (a lunarArgs) sum(terms []lunarTerm, fn func(float64) float64) float64 {
	var s float64
	for _, k := range terms {
		arg := k.d*a.d + k.m*a.m + k.mp*a.mp + k.f*a.f
		s += k.coeff * fn(degToRad(arg))
	}
	return s
}

// MoonAt evaluates the truncated lunar theory of Meeus ch. 47. Positions are
// good to a few arcminutes.
func MoonAt(jd JulianDate, tr *verbose.Trace) MoonPosition {
	defer tr.Section("Moon position")()

	t := jd.T()
	a := lunarArguments(t)

	lon := wrapDegrees(a.lp+a.sum(lunarLongitude, math.Sin), 0)
	lat := a.sum(lunarLatitude, math.Sin)
	dist := 385000.56 + a.sum(lunarDistance, math.Cos)

	eps := MeanObliquity(jd)
	eq := EclipticToICRS(FromDegrees(lon), FromDegrees(lat), eps)

	parallax := FromRadians(math.Asin(6378.14 / dist))
	diameter := FromRadians(2 * math.Asin(MoonRadiusKm/dist))

	if tr.Enabled() {
		tr.Stepf("Fundamental arguments",
			"T = %.10f\nL′ = %.6f°\nD = %.6f°\nM = %.6f°\nM′ = %.6f°\nF = %.6f°", t, a.lp, a.d, a.m, a.mp, a.f)
		tr.Stepf("Ecliptic position",
			"λ = L′ + Σl = %.6f°\nβ = Σb = %.6f°\nΔ = 385000.56 + Σr = %.1f km", lon, lat, dist)
		tr.Stepf("Equatorial", "ε = %.6f°\nα = %.6f° (%s)\nδ = %.6f°", eps, eq.RA.Degrees(), eq.RA.HMS(2), eq.Dec.Degrees())
		tr.Stepf("Derived", "π = asin(6378.14/Δ) = %.4f°\nangular diameter = %.2f′", parallax.Degrees(), diameter.Arcminutes())
	}

	return MoonPosition{
		JD:              jd,
		Longitude:       FromDegrees(lon),
		Latitude:        FromDegrees(lat),
		RA:              eq.RA,
		Dec:             eq.Dec,
		DistanceKm:      dist,
		Parallax:        parallax,
		AngularDiameter: diameter,
	}
}

// LunarPhase is one of the eight named phases, each spanning 45° of the
// synodic cycle and centred on a multiple of 45°.
type LunarPhase int

const (
	NewMoon LunarPhase = iota
	WaxingCrescent
	FirstQuarter
	WaxingGibbous
	FullMoon
	WaningGibbous
	LastQuarter
	WaningCrescent
)

var phaseNames = [...]string{
	"New Moon", "Waxing Crescent", "First Quarter", "Waxing Gibbous",
	"Full Moon", "Waning Gibbous", "Last Quarter", "Waning Crescent",
}

func (p LunarPhase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Angle returns the cycle angle at the centre of the phase.
func (p LunarPhase) Angle() Angle {
	return FromDegrees(float64(p) * 45)
}

// ParseLunarPhase accepts names such as "full", "full moon", "first_quarter".
func ParseLunarPhase(s string) (LunarPhase, error) {
	key := strings.NewReplacer("_", " ", "-", " ").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case "new", "new moon":
		return NewMoon, nil
	case "first quarter", "first":
		return FirstQuarter, nil
	case "full", "full moon":
		return FullMoon, nil
	case "last quarter", "last", "third quarter":
		return LastQuarter, nil
	}
	for i, name := range phaseNames {
		if strings.ToLower(name) == key {
			return LunarPhase(i), nil
		}
	}
	return 0, fmt.Errorf("lunar phase %q: %w", s, ErrInvalidArgument)
}

// PhaseName maps a cycle angle to its named phase.
func PhaseName(cycle Angle) LunarPhase {
	d := cycle.Normalize360().Degrees()
	return LunarPhase(int(math.Floor((d+22.5)/45)) % 8)
}

// MoonPhaseInfo describes the illuminated Moon.
type MoonPhaseInfo struct {
	JD                 JulianDate
	PhaseAngle         Angle // cycle angle λ☾ − λ☉: 0 new, 180 full
	Illumination       float64
	PercentIlluminated float64
	AgeDays            float64
	Phase              LunarPhase
}

// MoonPhase computes the phase, illuminated fraction and age of the Moon.
func MoonPhase(jd JulianDate, tr *verbose.Trace) MoonPhaseInfo {
	defer tr.Section("Moon phase")()

	moon := MoonAt(jd, nil)
	sun := SunAt(jd, nil)

	cycle := moon.Longitude.Sub(sun.Longitude).Normalize360()

	// ψ is the geocentric elongation; i the Sun–Moon–Earth angle.
	psi := AngularSeparation(sun.RA, sun.Dec, moon.RA, moon.Dec, nil).Radians()
	r := AUToKm(sun.DistanceAU)
	i := math.Atan2(r*math.Sin(psi), moon.DistanceKm-r*math.Cos(psi))
	k := (1 + math.Cos(i)) / 2

	age := lunarArguments(jd.T()).d / 360 * SynodicMonth
	phase := PhaseName(cycle)

	if tr.Enabled() {
		tr.Stepf("Cycle angle", "λ☾ − λ☉ = %.6f° − %.6f° = %.6f°", moon.Longitude.Degrees(), sun.Longitude.Degrees(), cycle.Degrees())
		tr.Stepf("Phase angle", "ψ = %.6f°\ni = atan2(R sin ψ, Δ − R cos ψ) = %.6f°", radToDeg(psi), radToDeg(i))
		tr.Stepf("Illumination", "k = (1 + cos i)/2 = %.6f (%.2f%%)", k, 100*k)
		tr.Stepf("Age", "age = D/360 × %.9f = %.3f d\nphase: %s", SynodicMonth, age, phase)
	}

	return MoonPhaseInfo{
		JD:                 jd,
		PhaseAngle:         cycle,
		Illumination:       k,
		PercentIlluminated: 100 * k,
		AgeDays:            age,
		Phase:              phase,
	}
}

const (
	// lunar cycle angle rate, degrees per day
	synodicRate      = 360 / SynodicMonth
	nextPhaseMaxIter = 50
)

// NextPhase returns the first instant strictly after jd at which the cycle
// angle reaches target's centre angle.
func NextPhase(jd JulianDate, target LunarPhase, tr *verbose.Trace) (JulianDate, error) {
	if tr.Enabled() {
		defer tr.Section("Next " + target.String())()
	}

	goal := target.Angle()
	cycle := MoonPhase(jd, nil).PhaseAngle
	ahead := goal.Sub(cycle).Normalize360().Degrees()
	if ahead < 1e-6 {
		ahead += 360
	}
	guess := jd.AddDays(ahead / synodicRate)

	for i := range nextPhaseMaxIter {
		cur := MoonPhase(guess, nil).PhaseAngle
		delta := goal.Sub(cur).Normalize180().Degrees()
		step := delta / 12.190749
		guess = guess.AddDays(step)
		if math.Abs(step) < eventTolerance {
			if !guess.After(jd) {
				guess = guess.AddDays(SynodicMonth)
				continue
			}
			if tr.Enabled() {
				tr.Stepf("Solution", "converged after %d iterations\nJD = %.6f (%s)", i+1, guess.JD(), guess.Time().Format("2006-01-02 15:04 UTC"))
			}
			return guess, nil
		}
	}
	return JulianDate{}, fmt.Errorf("next %s after %s: %w", target, jd, ErrConvergence)
}

// moonHorizon returns h₀ = 0.7275π − 34′ for the given parallax.
func moonHorizon(parallax Angle) Angle {
	return FromDegrees(0.7275*parallax.Degrees() + RefractionHorizon)
}

func moonTracker(jd JulianDate) (ICRSCoord, Angle, error) {
	m := MoonAt(jd, nil)
	return m.ICRS(), moonHorizon(m.Parallax), nil
}

// Moonrise returns the first moonrise in the 24 h following jd.
func Moonrise(obs Observer, jd JulianDate, tr *verbose.Trace) (Event, error) {
	defer tr.Section("Moonrise")()
	return riseEvent(obs, jd, moonTracker, tr)
}

// Moonset returns the first moonset in the 24 h following jd.
func Moonset(obs Observer, jd JulianDate, tr *verbose.Trace) (Event, error) {
	defer tr.Section("Moonset")()
	return setEvent(obs, jd, moonTracker, tr)
}

// MoonTransit returns the lunar meridian transit nearest jd.
func MoonTransit(obs Observer, jd JulianDate, tr *verbose.Trace) (Event, error) {
	defer tr.Section("Moon transit")()
	t, err := solveTransit(obs, jd, moonTracker, tr)
	if err != nil {
		return Event{}, err
	}
	return Event{JD: t, OK: true}, nil
}

// MoonAltitude returns the Moon's geocentric altitude.
func MoonAltitude(obs Observer, jd JulianDate, tr *verbose.Trace) Angle {
	return MoonAt(jd, tr).ICRS().ToHorizontal(obs, jd, tr).Alt
}

// MoonRiseSet solves all lunar events in the 24 h following jd.
func MoonRiseSet(obs Observer, jd JulianDate, tr *verbose.Trace) (RiseSetTimes, error) {
	return riseSetTimes(obs, jd, moonTracker, tr)
}
