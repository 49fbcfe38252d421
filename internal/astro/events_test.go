package astro

import (
	"fmt"
	"math"
	"testing"
)

func latObserver(t testing.TB, lat float64) Observer {
	t.Helper()
	obs, err := NewObserver(fmt.Sprintf("lat %.1f", lat), lat, 0, 0, "")
	if err != nil {
		t.Fatalf("NewObserver(%v) error: %v", lat, err)
	}
	return obs
}

func checkWindow(t *testing.T, what string, e Event, start JulianDate) {
	t.Helper()
	if e.OK && (e.JD.Before(start) || !e.JD.Before(start.AddDays(1))) {
		t.Errorf("%s = %v outside [JD %.1f, +1 d)", what, e, start.JD())
	}
}

func TestHighLatitudeEvents(t *testing.T) {
	obs := latObserver(t, 67)

	for day := 2460429.5; day <= 2460432.5; day++ {
		jd := NewJulianDate(day)
		t.Run(fmt.Sprintf("JD %.1f", day), func(t *testing.T) {
			rise, err := Moonrise(obs, jd, nil)
			if err != nil {
				t.Fatalf("Moonrise error: %v", err)
			}
			checkWindow(t, "moonrise", rise, jd)

			set, err := Moonset(obs, jd, nil)
			if err != nil {
				t.Fatalf("Moonset error: %v", err)
			}
			checkWindow(t, "moonset", set, jd)

			for _, kind := range []TwilightKind{CivilTwilight, NauticalTwilight, AstronomicalTwilight} {
				dawn, dusk, err := Twilight(obs, jd, kind, nil)
				if err != nil {
					t.Fatalf("%s twilight error: %v", kind, err)
				}
				checkWindow(t, kind.String()+" dawn", dawn, jd)
				checkWindow(t, kind.String()+" dusk", dusk, jd)
			}

			if _, err := DayLength(obs, jd, nil); err != nil {
				t.Errorf("DayLength error: %v", err)
			}
		})
	}
}

func TestNearPoleEvents(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		jd   float64
	}{
		{"south, March equinox", -89.9, 2460390.5},
		{"north, September equinox", 89.9, 2460576.5},
		{"north, March equinox", 89.9, 2460390.5},
		{"south, September equinox", -89.9, 2460576.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := latObserver(t, tt.lat)
			jd := NewJulianDate(tt.jd)

			rise, err := Sunrise(obs, jd, nil)
			if err != nil {
				t.Fatalf("Sunrise error: %v", err)
			}
			checkWindow(t, "sunrise", rise, jd)

			set, err := Sunset(obs, jd, nil)
			if err != nil {
				t.Fatalf("Sunset error: %v", err)
			}
			checkWindow(t, "sunset", set, jd)

			hours, err := DayLength(obs, jd, nil)
			if err != nil {
				t.Fatalf("DayLength error: %v", err)
			}
			if hours < 0 || hours > 24 {
				t.Errorf("DayLength = %v, want within [0, 24]", hours)
			}
		})
	}
}

func TestHighLatitudeSweep(t *testing.T) {
	if testing.Short() {
		t.Skip("latitude sweep")
	}
	for lat := 55.0; lat <= 80; lat++ {
		obs := latObserver(t, lat)
		for day := 2460425.5; day <= 2460440.5; day++ {
			jd := NewJulianDate(day)
			if _, err := Sunrise(obs, jd, nil); err != nil {
				t.Errorf("lat %v JD %v: Sunrise error: %v", lat, day, err)
			}
			if _, err := Moonrise(obs, jd, nil); err != nil {
				t.Errorf("lat %v JD %v: Moonrise error: %v", lat, day, err)
			}
			if _, err := Moonset(obs, jd, nil); err != nil {
				t.Errorf("lat %v JD %v: Moonset error: %v", lat, day, err)
			}
			if _, _, err := Twilight(obs, jd, CivilTwilight, nil); err != nil {
				t.Errorf("lat %v JD %v: Twilight error: %v", lat, day, err)
			}
		}
	}
}

func TestBisectCrossingAgreesWithIteration(t *testing.T) {
	obs := testObserver(t, "greenwich")
	sirius := mustICRS(t, 101.287, -16.716)
	h0 := FromDegrees(RefractionHorizon)
	track := fixedTracker(sirius, h0)

	transit, err := solveTransit(obs, NewJulianDate(2460325.5), track, nil)
	if err != nil {
		t.Fatal(err)
	}
	ha, ok := hourAngleAtHorizon(obs.Latitude, sirius.Dec, h0)
	if !ok {
		t.Fatal("Sirius should rise at Greenwich")
	}
	offset := ha.Degrees() / siderealDayRate

	for _, sign := range []float64{-1, +1} {
		guess := transit.AddDays(sign * offset)
		want, ok, err := solveCrossing(obs, guess, sign, track)
		if err != nil || !ok {
			t.Fatalf("solveCrossing(sign %v) = %v, %v", sign, ok, err)
		}
		got, ok, err := bisectCrossing(obs, guess, sign, track)
		if err != nil || !ok {
			t.Fatalf("bisectCrossing(sign %v) = %v, %v", sign, ok, err)
		}
		if d := math.Abs(got.Sub(want)) * 86400; d > 1 {
			t.Errorf("sign %v: bisection differs from iteration by %.3f s", sign, d)
		}
		alt := sirius.ToHorizontal(obs, got, nil).Alt
		if math.Abs(alt.Degrees()-h0.Degrees()) > 1e-3 {
			t.Errorf("sign %v: altitude at crossing = %v, want ≈%v", sign, alt.Degrees(), h0.Degrees())
		}
	}
}

func TestBisectCrossingNone(t *testing.T) {
	obs := testObserver(t, "greenwich")
	polaris := mustICRS(t, 37.95, 89.26)
	track := fixedTracker(polaris, FromDegrees(RefractionHorizon))

	_, ok, err := bisectCrossing(obs, NewJulianDate(2460325.5), -1, track)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("circumpolar star should have no crossing")
	}
}

func TestNilTraceAllocations(t *testing.T) {
	obs := testObserver(t, "greenwich")
	jd := NewJulianDate(2460325.5)
	c := mustICRS(t, 101.287, -16.716)
	other := mustICRS(t, 88.793, 7.407)

	tests := []struct {
		name string
		fn   func()
	}{
		{"HourAngle", func() { HourAngle(c.RA, obs, jd, nil) }},
		{"ToHorizontal", func() { c.ToHorizontal(obs, jd, nil) }},
		{"Airmass", func() { Airmass(FromDegrees(30), nil) }},
		{"PositionAngle", func() { PositionAngle(c.RA, c.Dec, other.RA, other.Dec, nil) }},
		{"LST", func() { jd.LST(obs.Longitude, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if n := testing.AllocsPerRun(100, tt.fn); n != 0 {
				t.Errorf("%s with a nil trace allocated %v times per call", tt.name, n)
			}
		})
	}
}
