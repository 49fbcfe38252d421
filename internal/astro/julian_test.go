package astro

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/litescript/starward/internal/verbose"
)

func TestFromCalendar(t *testing.T) {
	tests := []struct {
		name            string
		y, mo, d, h, mi int
		s               float64
		want            float64
	}{
		{"J2000 epoch", 2000, 1, 1, 12, 0, 0, 2451545.0},
		{"Unix epoch", 1970, 1, 1, 0, 0, 0, 2440587.5},
		{"2024-01-01", 2024, 1, 1, 0, 0, 0, 2460310.5},
		{"Sputnik launch", 1957, 10, 4, 19, 26, 24, 2436116.31},
		{"leap day", 2024, 2, 29, 0, 0, 0, 2460369.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jd, err := FromCalendar(tt.y, tt.mo, tt.d, tt.h, tt.mi, tt.s)
			if err != nil {
				t.Fatalf("FromCalendar() error: %v", err)
			}
			if math.Abs(jd.JD()-tt.want) > 1e-6 {
				t.Errorf("FromCalendar() = %.6f, want %.6f", jd.JD(), tt.want)
			}
		})
	}
}

func TestFromCalendarJ2000Exact(t *testing.T) {
	jd, err := FromCalendar(2000, 1, 1, 12, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if jd.JD() != J2000 {
		t.Errorf("JD = %v, want exactly %v", jd.JD(), J2000)
	}
	if jd.T() != 0 {
		t.Errorf("T = %v, want 0", jd.T())
	}
	if jd.MJD() != 51544.5 {
		t.Errorf("MJD = %v, want 51544.5", jd.MJD())
	}
}

func TestFromCalendarInvalid(t *testing.T) {
	tests := []struct {
		name            string
		y, mo, d, h, mi int
		s               float64
	}{
		{"month 13", 2024, 13, 1, 0, 0, 0},
		{"month 0", 2024, 0, 1, 0, 0, 0},
		{"Feb 30", 2024, 2, 30, 0, 0, 0},
		{"Feb 29 non-leap", 2023, 2, 29, 0, 0, 0},
		{"hour 24", 2024, 1, 1, 24, 0, 0},
		{"minute 60", 2024, 1, 1, 0, 60, 0},
		{"negative second", 2024, 1, 1, 0, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromCalendar(tt.y, tt.mo, tt.d, tt.h, tt.mi, tt.s)
			if !errors.Is(err, ErrDomain) {
				t.Errorf("FromCalendar() error = %v, want ErrDomain", err)
			}
		})
	}
}

func TestJulianDateConversions(t *testing.T) {
	t2000 := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

	if got := FromTime(t2000).JD(); got != J2000 {
		t.Errorf("FromTime(J2000) = %v", got)
	}
	if got := FromUnix(0).JD(); got != 2440587.5 {
		t.Errorf("FromUnix(0) = %v", got)
	}
	if got := FromMJD(51544.5).JD(); got != J2000 {
		t.Errorf("FromMJD(51544.5) = %v", got)
	}
	if got := NewJulianDate(J2000).Time(); !got.Equal(t2000) {
		t.Errorf("Time() = %v, want %v", got, t2000)
	}

	// Zones are converted to UTC first
	tokyo := time.FixedZone("JST", 9*3600)
	if got := FromTime(time.Date(2000, 1, 1, 21, 0, 0, 0, tokyo)).JD(); got != J2000 {
		t.Errorf("FromTime(JST) = %v", got)
	}
}

func TestCalendarRoundTrip(t *testing.T) {
	tests := []time.Time{
		time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC),
		time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2100, 2, 28, 0, 0, 0, 0, time.UTC),
		time.Date(1600, 6, 15, 6, 30, 15, 0, time.UTC),
	}

	for _, want := range tests {
		t.Run(want.Format(time.RFC3339), func(t *testing.T) {
			got := FromTime(want).Time()
			if d := got.Sub(want); d > time.Millisecond || d < -time.Millisecond {
				t.Errorf("round trip = %v, want %v", got, want)
			}
		})
	}
}

func TestCalendarNoonIsExact(t *testing.T) {
	c := NewJulianDate(J2000).Calendar()
	want := CalendarDate{Year: 2000, Month: time.January, Day: 1, Hour: 12}
	if c != want {
		t.Errorf("Calendar() = %+v, want %+v", c, want)
	}
}

func TestJulianDateArithmetic(t *testing.T) {
	a := NewJulianDate(J2000)
	b := a.AddDays(1.5)

	if b.JD() != J2000+1.5 {
		t.Errorf("AddDays = %v", b.JD())
	}
	if b.SubDays(1.5).JD() != J2000 {
		t.Errorf("SubDays = %v", b.SubDays(1.5).JD())
	}
	if b.Sub(a) != 1.5 {
		t.Errorf("Sub = %v", b.Sub(a))
	}
	if !a.Before(b) || !b.After(a) || a.Cmp(b) != -1 || b.Cmp(a) != 1 || a.Cmp(a) != 0 {
		t.Error("ordering wrong")
	}
	if a.JD() != J2000 {
		t.Error("AddDays mutated the receiver")
	}
}

func TestGMST(t *testing.T) {
	tests := []struct {
		name string
		jd   float64
		want float64
	}{
		{"J2000", J2000, 18.697375},
		{"2000-01-02 12h", J2000 + 1, 18.763084},
		{"1987-04-10 0h (Meeus 12.a)", 2446895.5, 13.179546},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewJulianDate(tt.jd).GMST(nil)
			if math.Abs(got-tt.want) > 1e-5 {
				t.Errorf("GMST() = %.6f, want %.6f", got, tt.want)
			}
			if got < 0 || got >= 24 {
				t.Errorf("GMST() = %v out of range", got)
			}
		})
	}
}

func TestLST(t *testing.T) {
	jd := NewJulianDate(J2000)
	gmst := jd.GMST(nil)

	tests := []struct {
		name string
		lon  float64
		want float64
	}{
		{"Greenwich", 0, gmst},
		{"90 east", 90, math.Mod(gmst+6, 24)},
		{"Mauna Kea", -155.4681, math.Mod(gmst-155.4681/15+24, 24)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := jd.LST(FromDegrees(tt.lon), nil)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("LST() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGMSTTrace(t *testing.T) {
	tr := verbose.New()
	withTrace := NewJulianDate(2460325.5).GMST(tr)
	without := NewJulianDate(2460325.5).GMST(nil)

	if withTrace != without {
		t.Errorf("trace changed the result: %v vs %v", withTrace, without)
	}
	if tr.Len() == 0 {
		t.Error("expected trace steps")
	}
}
