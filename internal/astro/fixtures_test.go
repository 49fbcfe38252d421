package astro

import (
	"math"
	"testing"
)

type site struct {
	lat, lon, elev float64
	tz             string
}

var testSites = map[string]site{
	"greenwich":  {51.4769, -0.0005, 46, "Europe/London"},
	"mauna_kea":  {19.8207, -155.4681, 4205, "Pacific/Honolulu"},
	"paranal":    {-24.6272, -70.4042, 2635, "America/Santiago"},
	"north_pole": {90, 0, 0, ""},
	"equator":    {0, 0, 0, ""},
}

func testObserver(t testing.TB, name string) Observer {
	t.Helper()
	s, ok := testSites[name]
	if !ok {
		t.Fatalf("unknown test site %q", name)
	}
	obs, err := NewObserver(name, s.lat, s.lon, s.elev, s.tz)
	if err != nil {
		t.Fatalf("NewObserver(%q) error: %v", name, err)
	}
	return obs
}

func mustICRS(t testing.TB, raDeg, decDeg float64) ICRSCoord {
	t.Helper()
	c, err := ICRSFromDegrees(raDeg, decDeg)
	if err != nil {
		t.Fatalf("ICRSFromDegrees(%v, %v) error: %v", raDeg, decDeg, err)
	}
	return c
}

// hoursUT returns the UT hour of day for a Julian Date.
func hoursUT(jd JulianDate) float64 {
	return math.Mod(jd.JD()+0.5, 1) * 24
}

// angleDiff returns the smallest absolute difference between two angles in
// degrees, accounting for wrap-around.
func angleDiff(a, b float64) float64 {
	return math.Abs(FromDegrees(a - b).Normalize180().Degrees())
}
