package astro

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/litescript/starward/internal/verbose"
)

// JulianDate is an immutable instant expressed as a Julian Date (UT).
type JulianDate struct {
	jd float64
}

// CalendarDate is the proleptic Gregorian calendar view of a JulianDate.
type CalendarDate struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second float64
}

// NewJulianDate wraps a raw Julian Date.
func NewJulianDate(jd float64) JulianDate { return JulianDate{jd: jd} }

// FromMJD builds a JulianDate from a Modified Julian Date.
func FromMJD(mjd float64) JulianDate { return JulianDate{jd: mjd + MJDOffset} }

// FromUnix builds a JulianDate from seconds since the Unix epoch.
func FromUnix(seconds float64) JulianDate { return JulianDate{jd: 2440587.5 + seconds/86400} }

// FromTime converts a time.Time (any zone) to a JulianDate.
func FromTime(t time.Time) JulianDate {
	t = t.UTC()
	dayFrac := (float64(t.Hour()) +
		float64(t.Minute())/60 +
		float64(t.Second())/3600 +
		float64(t.Nanosecond())/3600e9) / 24.0
	return JulianDate{jd: julianDayNumber(t.Year(), int(t.Month()), t.Day()) + dayFrac}
}

// Now returns the current instant.
func Now() JulianDate { return FromTime(time.Now()) }

// FromCalendar converts a proleptic Gregorian UTC date to a JulianDate.
func FromCalendar(year, month, day, hour, minute int, second float64) (JulianDate, error) {
	if month < 1 || month > 12 {
		return JulianDate{}, fmt.Errorf("month %d: %w", month, ErrDomain)
	}
	if day < 1 || day > daysIn(year, month) {
		return JulianDate{}, fmt.Errorf("day %d of %04d-%02d: %w", day, year, month, ErrDomain)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second >= 61 {
		return JulianDate{}, fmt.Errorf("time %02d:%02d:%v: %w", hour, minute, second, ErrDomain)
	}

	dayFrac := (float64(hour) + float64(minute)/60 + second/3600) / 24.0
	return JulianDate{jd: julianDayNumber(year, month, day) + dayFrac}, nil
}

// julianDayNumber returns the JD at 0h UT of the given date, computed with
// integer arithmetic (Meeus ch. 7, Gregorian branch).
func julianDayNumber(year, month, day int) float64 {
	y, m := year, month
	// January and February count as months 13 and 14 of the previous year
	if m <= 2 {
		y--
		m += 12
	}

	a := floorDiv(y, 100)
	b := 2 - a + floorDiv(a, 4)

	n := floorDiv(1461*(y+4716), 4) + floorDiv(306001*(m+1), 10000) + day + b
	return float64(n) - 1524.5
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// JD returns the raw Julian Date.
func (j JulianDate) JD() float64 { return j.jd }

// MJD returns the Modified Julian Date.
func (j JulianDate) MJD() float64 { return j.jd - MJDOffset }

// T returns Julian centuries since J2000.0.
func (j JulianDate) T() float64 { return (j.jd - J2000) / JulianCentury }

// AddDays returns a new JulianDate shifted by d days.
func (j JulianDate) AddDays(d float64) JulianDate { return JulianDate{jd: j.jd + d} }

// SubDays returns a new JulianDate shifted back by d days.
func (j JulianDate) SubDays(d float64) JulianDate { return JulianDate{jd: j.jd - d} }

// Sub returns j - o in days.
func (j JulianDate) Sub(o JulianDate) float64 { return j.jd - o.jd }

func (j JulianDate) Before(o JulianDate) bool { return j.jd < o.jd }
func (j JulianDate) After(o JulianDate) bool  { return j.jd > o.jd }
func (j JulianDate) Equal(o JulianDate) bool  { return j.jd == o.jd }

// Cmp compares two dates, returning -1, 0 or +1.
func (j JulianDate) Cmp(o JulianDate) int {
	switch {
	case j.jd < o.jd:
		return -1
	case j.jd > o.jd:
		return 1
	default:
		return 0
	}
}

func (j JulianDate) String() string {
	return "JD " + strconv.FormatFloat(j.jd, 'f', 6, 64)
}

// Calendar converts back to a proleptic Gregorian UTC date (Meeus ch. 7).
func (j JulianDate) Calendar() CalendarDate {
	z := math.Floor(j.jd + 0.5)
	f := j.jd + 0.5 - z

	alpha := math.Floor((z - 1867216.25) / 36524.25)
	a := z + 1 + alpha - math.Floor(alpha/4)
	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	day := int(b - d - math.Floor(30.6001*e))
	month := int(e - 1)
	if e >= 14 {
		month = int(e - 13)
	}
	year := int(c - 4715)
	if month > 2 {
		year = int(c - 4716)
	}

	// Round the day fraction to the microsecond so 12:00 does not print as 11:59:59.999
	micros := math.Round(f * 86400e6)
	hour := int(micros / 3600e6)
	micros -= float64(hour) * 3600e6
	minute := int(micros / 60e6)
	micros -= float64(minute) * 60e6

	cal := CalendarDate{
		Year:   year,
		Month:  time.Month(month),
		Day:    day,
		Hour:   hour,
		Minute: minute,
		Second: micros / 1e6,
	}
	if hour == 24 {
		next := cal.Time()
		return CalendarDate{Year: next.Year(), Month: next.Month(), Day: next.Day()}
	}
	return cal
}

// Time converts the CalendarDate into a UTC time.Time.
func (c CalendarDate) Time() time.Time {
	sec := math.Floor(c.Second)
	nanos := math.Round((c.Second - sec) * 1e9)
	return time.Date(c.Year, c.Month, c.Day, c.Hour, c.Minute, int(sec), int(nanos), time.UTC)
}

// Time converts the JulianDate into a UTC time.Time.
func (j JulianDate) Time() time.Time {
	return j.Calendar().Time()
}

// GMST returns Greenwich Mean Sidereal Time in hours, in [0, 24).
//
// The IAU 1982 polynomial is evaluated in seconds of time with T counted
// from J2000.0, so the whole-day and fractional-day parts are both carried
// in T.
func (j JulianDate) GMST(tr *verbose.Trace) float64 {
	t := j.T()
	sec := 67310.54841 +
		(876600*3600+8640184.812866)*t +
		0.093104*t*t -
		6.2e-6*t*t*t

	hours := math.Mod(sec/3600, 24)
	if hours < 0 {
		hours += 24
	}

	if tr.Enabled() {
		tr.Stepf("Julian centuries since J2000.0",
			"T = (JD − 2451545.0) / 36525\n  = (%.6f − 2451545.0) / 36525\n  = %.12f", j.jd, t)
		tr.Stepf("GMST polynomial",
			"θ = 67310.54841 + (876600ʰ + 8640184.812866)T + 0.093104T² − 6.2×10⁻⁶T³\n  = %.6f s\n  = %.6f h (mod 24)", sec, hours)
	}
	return hours
}

// LST returns Local Mean Sidereal Time in hours for an east-positive longitude.
func (j JulianDate) LST(longitude Angle, tr *verbose.Trace) float64 {
	gmst := j.GMST(tr)
	lst := math.Mod(gmst+longitude.Degrees()/15, 24)
	if lst < 0 {
		lst += 24
	}
	if tr.Enabled() {
		tr.Stepf("Local sidereal time",
			"LST = GMST + λ/15\n    = %.6f + %.6f/15\n    = %.6f h", gmst, longitude.Degrees(), lst)
	}
	return lst
}
