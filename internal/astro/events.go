package astro

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/litescript/starward/internal/verbose"
)

// Event is a solved instant. OK is false when the event does not occur in
// the searched window, which is not an error.
type Event struct {
	JD JulianDate
	OK bool
}

// Time returns the event as UTC, or the zero time when !OK.
func (e Event) Time() time.Time {
	if !e.OK {
		return time.Time{}
	}
	return e.JD.Time()
}

func (e Event) String() string {
	if !e.OK {
		return "none"
	}
	return e.JD.Time().Format("2006-01-02 15:04:05 UTC")
}

// RiseSetTimes groups the events of one body over a 24 h window.
type RiseSetTimes struct {
	Rise            Event
	Set             Event
	Transit         Event
	TransitAltitude Angle
	Circumpolar     bool
	NeverRises      bool
}

// siderealDayRate is the hour angle rate in degrees per solar day.
const siderealDayRate = 360.9856235

const (
	eventMaxIter   = 20
	eventTolerance = 1e-7 // days

	// Fallback bracketing around a guess whose iteration oscillates.
	bracketSpan   = 0.25         // days either side
	bracketStep   = 5.0 / 1440.0 // days
	bisectMaxIter = 60
)

// tracker reports a body's apparent position at jd together with the
// altitude threshold that defines its rise and set.
type tracker func(jd JulianDate) (pos ICRSCoord, h0 Angle, err error)

// fixedTracker is a tracker for a body that does not move against the stars.
func fixedTracker(pos ICRSCoord, h0 Angle) tracker {
	return func(JulianDate) (ICRSCoord, Angle, error) { return pos, h0, nil }
}

// solveTransit iterates jd −= HA/rate from start until the step falls below
// eventTolerance, returning the meridian crossing nearest start.
func solveTransit(obs Observer, start JulianDate, track tracker, tr *verbose.Trace) (JulianDate, error) {
	jd := start
	for i := range eventMaxIter {
		pos, _, err := track(jd)
		if err != nil {
			return JulianDate{}, err
		}
		ha := HourAngle(pos.RA, obs, jd, nil)
		step := ha.Degrees() / siderealDayRate
		jd = jd.SubDays(step)
		if math.Abs(step) < eventTolerance {
			if tr.Enabled() {
				tr.Stepf("Transit", "converged after %d iterations\nJD = %.6f (%s)", i+1, jd.JD(), jd.Time().Format(time.RFC3339))
			}
			return jd, nil
		}
	}
	return JulianDate{}, fmt.Errorf("transit search from %s: %w", start, ErrConvergence)
}

// hourAngleAtHorizon solves cos H₀ = (sin h₀ − sin φ sin δ)/(cos φ cos δ). ok is
// false when the body never reaches h₀ or the geometry is degenerate.
func hourAngleAtHorizon(lat, dec, h0 Angle) (Angle, bool) {
	den := lat.Cos() * dec.Cos()
	if math.Abs(den) < 1e-12 {
		return Angle{}, false
	}
	cosH0 := (h0.Sin() - lat.Sin()*dec.Sin()) / den
	if cosH0 < -1 || cosH0 > 1 {
		return Angle{}, false
	}
	return FromRadians(math.Acos(cosH0)), true
}

// solveCrossing refines a rise (sign −1) or set (sign +1) near guess.
func solveCrossing(obs Observer, guess JulianDate, sign float64, track tracker) (JulianDate, bool, error) {
	jd := guess
	for range eventMaxIter {
		pos, h0, err := track(jd)
		if err != nil {
			return JulianDate{}, false, err
		}
		h0Angle, ok := hourAngleAtHorizon(obs.Latitude, pos.Dec, h0)
		if !ok {
			return JulianDate{}, false, nil
		}
		ha := HourAngle(pos.RA, obs, jd, nil)
		diff := ha.Sub(h0Angle.Mul(sign)).Normalize180()
		step := diff.Degrees() / siderealDayRate
		jd = jd.SubDays(step)
		if math.Abs(step) < eventTolerance {
			return jd, true, nil
		}
	}
	return JulianDate{}, false, fmt.Errorf("horizon crossing near %s: %w", guess, ErrConvergence)
}

// refineCrossing solves a rise (sign −1) or set (sign +1) near guess. Near
// grazing crossings the hour-angle iteration can oscillate; the crossing is
// then bracketed on alt − h₀ and bisected.
func refineCrossing(obs Observer, guess JulianDate, sign float64, track tracker) (JulianDate, bool, error) {
	jd, ok, err := solveCrossing(obs, guess, sign, track)
	if !errors.Is(err, ErrConvergence) {
		return jd, ok, err
	}
	return bisectCrossing(obs, guess, sign, track)
}

// horizonOffset is the body's altitude above its rise/set threshold.
func horizonOffset(obs Observer, jd JulianDate, track tracker) (float64, error) {
	pos, h0, err := track(jd)
	if err != nil {
		return 0, err
	}
	return pos.ToHorizontal(obs, jd, nil).Alt.Degrees() - h0.Degrees(), nil
}

// bisectCrossing scans guess ± bracketSpan for a sign change of the horizon
// offset in the requested direction and bisects the one nearest guess.
// ok is false when the scan finds none.
func bisectCrossing(obs Observer, guess JulianDate, sign float64, track tracker) (JulianDate, bool, error) {
	var (
		best    JulianDate
		found   bool
		bestGap float64
	)

	lo := guess.SubDays(bracketSpan)
	fLo, err := horizonOffset(obs, lo, track)
	if err != nil {
		return JulianDate{}, false, err
	}
	n := int(math.Ceil(2 * bracketSpan / bracketStep))
	for range n {
		hi := lo.AddDays(bracketStep)
		fHi, err := horizonOffset(obs, hi, track)
		if err != nil {
			return JulianDate{}, false, err
		}
		rising := fLo < 0 && fHi >= 0
		setting := fLo >= 0 && fHi < 0
		if (sign < 0 && rising) || (sign > 0 && setting) {
			jd, err := bisect(obs, lo, hi, fLo, track)
			if err != nil {
				return JulianDate{}, false, err
			}
			if gap := math.Abs(jd.Sub(guess)); !found || gap < bestGap {
				best, found, bestGap = jd, true, gap
			}
		}
		lo, fLo = hi, fHi
	}
	return best, found, nil
}

// bisect narrows [lo, hi], across which the horizon offset changes sign,
// to eventTolerance.
func bisect(obs Observer, lo, hi JulianDate, fLo float64, track tracker) (JulianDate, error) {
	for range bisectMaxIter {
		if hi.Sub(lo) < eventTolerance {
			break
		}
		mid := lo.AddDays(hi.Sub(lo) / 2)
		f, err := horizonOffset(obs, mid, track)
		if err != nil {
			return JulianDate{}, err
		}
		if (f < 0) == (fLo < 0) {
			lo, fLo = mid, f
		} else {
			hi = mid
		}
	}
	return lo.AddDays(hi.Sub(lo) / 2), nil
}

// findCrossing returns the earliest rise (sign −1) or set (sign +1) in
// [start, start+1 d). Candidates are seeded from the transits nearest each
// half-day point around the window. A seed whose transit does not converge
// is skipped; the window is still covered by its neighbours.
func findCrossing(obs Observer, start JulianDate, sign float64, track tracker, tr *verbose.Trace) (Event, error) {
	end := start.AddDays(1)
	best := Event{}

	for k := -1.0; k <= 2.0; k += 0.5 {
		transit, err := solveTransit(obs, start.AddDays(k), track, nil)
		if errors.Is(err, ErrConvergence) {
			continue
		}
		if err != nil {
			return Event{}, err
		}
		pos, h0, err := track(transit)
		if err != nil {
			return Event{}, err
		}
		h0Angle, ok := hourAngleAtHorizon(obs.Latitude, pos.Dec, h0)
		if !ok {
			continue
		}
		guess := transit.AddDays(sign * h0Angle.Degrees() / siderealDayRate)
		jd, ok, err := refineCrossing(obs, guess, sign, track)
		if err != nil {
			return Event{}, err
		}
		if !ok || jd.Before(start) || !jd.Before(end) {
			continue
		}
		if !best.OK || jd.Before(best.JD) {
			best = Event{JD: jd, OK: true}
		}
	}

	if tr.Enabled() {
		kind := "Rise"
		if sign > 0 {
			kind = "Set"
		}
		if best.OK {
			tr.Stepf(kind, "JD = %.6f (%s)", best.JD.JD(), best.String())
		} else {
			tr.Stepf(kind, "no horizon crossing between JD %.4f and %.4f", start.JD(), end.JD())
		}
	}
	return best, nil
}

func riseEvent(obs Observer, start JulianDate, track tracker, tr *verbose.Trace) (Event, error) {
	return findCrossing(obs, start, -1, track, tr)
}

func setEvent(obs Observer, start JulianDate, track tracker, tr *verbose.Trace) (Event, error) {
	return findCrossing(obs, start, +1, track, tr)
}

// transitAltitude is the altitude at upper culmination, 90° − |φ − δ|.
func transitAltitude(lat, dec Angle) Angle {
	return FromDegrees(90 - math.Abs(lat.Degrees()-dec.Degrees()))
}

// lowerCulmination is the altitude at lower culmination, |φ + δ| − 90°.
func lowerCulmination(lat, dec Angle) Angle {
	return FromDegrees(math.Abs(lat.Degrees()+dec.Degrees()) - 90)
}

// riseSetTimes solves every event of a body in [start, start+1 d).
func riseSetTimes(obs Observer, start JulianDate, track tracker, tr *verbose.Trace) (RiseSetTimes, error) {
	defer tr.Section("Rise, transit and set")()

	transit, err := solveTransit(obs, start.AddDays(0.5), track, tr)
	if err != nil {
		return RiseSetTimes{}, err
	}
	pos, h0, err := track(transit)
	if err != nil {
		return RiseSetTimes{}, err
	}

	out := RiseSetTimes{
		Transit:         Event{JD: transit, OK: true},
		TransitAltitude: transitAltitude(obs.Latitude, pos.Dec),
	}
	switch {
	case out.TransitAltitude.Less(h0):
		out.NeverRises = true
	case h0.Less(lowerCulmination(obs.Latitude, pos.Dec)):
		out.Circumpolar = true
	}
	if tr.Enabled() {
		tr.Stepf("Culmination",
			"h_transit = 90° − |φ − δ| = %.4f°\nh₀ = %.4f°\ncircumpolar = %t, never rises = %t",
			out.TransitAltitude.Degrees(), h0.Degrees(), out.Circumpolar, out.NeverRises)
	}

	if out.Rise, err = riseEvent(obs, start, track, tr); err != nil {
		return RiseSetTimes{}, err
	}
	if out.Set, err = setEvent(obs, start, track, tr); err != nil {
		return RiseSetTimes{}, err
	}
	return out, nil
}
