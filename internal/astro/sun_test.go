package astro

import (
	"math"
	"testing"
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/litescript/starward/internal/verbose"
)

func TestSunAt(t *testing.T) {
	tests := []struct {
		name    string
		jd      float64
		wantRA  float64
		wantDec float64
	}{
		{"J2000", J2000, 281.28, -23.03},
		{"March equinox 2024", 2460390.0, 0.34, 0.15},
		{"June solstice 2024", 2460483.0, 90.66, 23.44},
		{"September equinox 2024", 2460576.0, 179.98, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SunAt(NewJulianDate(tt.jd), nil)
			if d := angleDiff(s.RA.Degrees(), tt.wantRA); d > 0.5 {
				t.Errorf("RA = %v, want ≈%v", s.RA.Degrees(), tt.wantRA)
			}
			if math.Abs(s.Dec.Degrees()-tt.wantDec) > 0.05 {
				t.Errorf("Dec = %v, want ≈%v", s.Dec.Degrees(), tt.wantDec)
			}
			if !s.Latitude.IsZero() {
				t.Errorf("Latitude = %v, want 0", s.Latitude.Degrees())
			}
			if ra := s.RA.Degrees(); ra < 0 || ra >= 360 {
				t.Errorf("RA %v outside [0, 360)", ra)
			}
		})
	}
}

func TestSunDistance(t *testing.T) {
	perihelion := SunAt(NewJulianDate(2460313.5), nil).DistanceAU // 2024-01-04
	aphelion := SunAt(NewJulianDate(2460497.5), nil).DistanceAU   // 2024-07-06

	if math.Abs(perihelion-0.98331) > 0.0005 {
		t.Errorf("perihelion distance = %v AU", perihelion)
	}
	if math.Abs(aphelion-1.01670) > 0.0005 {
		t.Errorf("aphelion distance = %v AU", aphelion)
	}
}

func TestEquationOfTime(t *testing.T) {
	tests := []struct {
		name string
		jd   float64
		want float64
	}{
		{"early November maximum", 2460616.5, 16.4},
		{"mid February minimum", 2460355.5, -14.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EquationOfTime(NewJulianDate(tt.jd), nil)
			if math.Abs(got-tt.want) > 0.3 {
				t.Errorf("EquationOfTime() = %v min, want ≈%v", got, tt.want)
			}
		})
	}
}

func TestSunriseSunsetGreenwich(t *testing.T) {
	obs := testObserver(t, "greenwich")

	tests := []struct {
		name             string
		jd               float64
		riseMin, riseMax float64
		setMin, setMax   float64
	}{
		{"winter", 2460325.5, 6, 9, 15, 18},
		{"summer", 2460483.5, 3, 6, 19, 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jd := NewJulianDate(tt.jd)
			rise, err := Sunrise(obs, jd, nil)
			if err != nil {
				t.Fatal(err)
			}
			set, err := Sunset(obs, jd, nil)
			if err != nil {
				t.Fatal(err)
			}
			if !rise.OK || !set.OK {
				t.Fatalf("rise = %v, set = %v", rise, set)
			}
			if h := hoursUT(rise.JD); h < tt.riseMin || h > tt.riseMax {
				t.Errorf("sunrise at %.2f UT, want %v..%v", h, tt.riseMin, tt.riseMax)
			}
			if h := hoursUT(set.JD); h < tt.setMin || h > tt.setMax {
				t.Errorf("sunset at %.2f UT, want %v..%v", h, tt.setMin, tt.setMax)
			}
			if !rise.JD.Before(set.JD) {
				t.Error("sunrise should precede sunset")
			}
		})
	}
}

// Cross-check against an independent implementation of the sunrise equation.
func TestSunriseSunsetOracle(t *testing.T) {
	sites := []struct {
		name     string
		lat, lon float64
	}{
		{"greenwich", 51.4769, -0.0005},
		{"paris", 48.8566, 2.3522},
		{"madrid", 40.4168, -3.7038},
		{"equator", 0, 0},
	}
	dates := []time.Time{
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 9, 22, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC),
	}
	const tol = 3 * time.Minute

	for _, s := range sites {
		obs, err := NewObserver(s.name, s.lat, s.lon, 0, "")
		if err != nil {
			t.Fatal(err)
		}
		for _, d := range dates {
			t.Run(s.name+"/"+d.Format("2006-01-02"), func(t *testing.T) {
				wantRise, wantSet := sunrise.SunriseSunset(s.lat, s.lon, d.Year(), d.Month(), d.Day())

				jd := FromTime(d)
				rise, err := Sunrise(obs, jd, nil)
				if err != nil {
					t.Fatal(err)
				}
				set, err := Sunset(obs, jd, nil)
				if err != nil {
					t.Fatal(err)
				}

				if diff := rise.Time().Sub(wantRise); diff > tol || diff < -tol {
					t.Errorf("sunrise %v, oracle %v (diff %v)", rise.Time(), wantRise, diff)
				}
				if diff := set.Time().Sub(wantSet); diff > tol || diff < -tol {
					t.Errorf("sunset %v, oracle %v (diff %v)", set.Time(), wantSet, diff)
				}
			})
		}
	}
}

func TestSolarNoon(t *testing.T) {
	obs := testObserver(t, "greenwich")

	for _, jd := range []float64{2460325.5, 2460390.5, 2460483.5, 2460580.5} {
		noon, err := SolarNoon(obs, NewJulianDate(jd), nil)
		if err != nil {
			t.Fatal(err)
		}
		// Within the equation of time of 12:00 UT
		if h := hoursUT(noon.JD); h < 11.7 || h > 12.3 {
			t.Errorf("JD %v: solar noon at %.3f UT", jd, h)
		}
		sun := SunAt(noon.JD, nil)
		alt := SolarAltitude(obs, noon.JD, nil)
		want := transitAltitude(obs.Latitude, sun.Dec)
		if math.Abs(alt.Degrees()-want.Degrees()) > 0.01 {
			t.Errorf("JD %v: noon altitude %v, want %v", jd, alt.Degrees(), want.Degrees())
		}
	}
}

func TestSummerNoonAltitude(t *testing.T) {
	obs := testObserver(t, "greenwich")
	noon, err := SolarNoon(obs, NewJulianDate(2460483.5), nil)
	if err != nil {
		t.Fatal(err)
	}
	if alt := SolarAltitude(obs, noon.JD, nil).Degrees(); alt < 55 || alt > 65 {
		t.Errorf("summer noon altitude = %v, want 55..65", alt)
	}
}

func TestPolarSun(t *testing.T) {
	obs := testObserver(t, "north_pole")

	summer := NewJulianDate(2460483.5)
	rise, err := Sunrise(obs, summer, nil)
	if err != nil {
		t.Fatal(err)
	}
	if rise.OK {
		t.Errorf("north pole in June should have no sunrise, got %v", rise)
	}
	if hours, err := DayLength(obs, summer, nil); err != nil || hours != 24 {
		t.Errorf("DayLength(summer) = %v, %v; want 24", hours, err)
	}

	winter := NewJulianDate(2460665.5)
	if hours, err := DayLength(obs, winter, nil); err != nil || hours != 0 {
		t.Errorf("DayLength(winter) = %v, %v; want 0", hours, err)
	}
}

func TestTwilightOrder(t *testing.T) {
	obs := testObserver(t, "greenwich")
	jd := NewJulianDate(2460325.5)

	var dawns, dusks []Event
	for _, kind := range []TwilightKind{AstronomicalTwilight, NauticalTwilight, CivilTwilight} {
		dawn, dusk, err := Twilight(obs, jd, kind, nil)
		if err != nil {
			t.Fatal(err)
		}
		if !dawn.OK || !dusk.OK {
			t.Fatalf("%s twilight missing: %v %v", kind, dawn, dusk)
		}
		dawns = append(dawns, dawn)
		dusks = append(dusks, dusk)
	}
	rise, _ := Sunrise(obs, jd, nil)
	set, _ := Sunset(obs, jd, nil)
	dawns = append(dawns, rise)
	dusks = append(dusks, set)

	for i := 1; i < len(dawns); i++ {
		if !dawns[i-1].JD.Before(dawns[i].JD) {
			t.Errorf("dawn %d (%v) not before dawn %d (%v)", i-1, dawns[i-1], i, dawns[i])
		}
		if !dusks[i].JD.Before(dusks[i-1].JD) {
			t.Errorf("dusk %d (%v) not before dusk %d (%v)", i, dusks[i], i-1, dusks[i-1])
		}
	}
}

func TestParseTwilightKind(t *testing.T) {
	for _, k := range []TwilightKind{CivilTwilight, NauticalTwilight, AstronomicalTwilight} {
		got, err := ParseTwilightKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseTwilightKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseTwilightKind("golden"); err == nil {
		t.Error("expected error")
	}
	if CivilTwilight.Horizon().Degrees() != -6 || AstronomicalTwilight.Horizon().Degrees() != -18 {
		t.Error("twilight horizons wrong")
	}
}

func TestDayLengthEquinox(t *testing.T) {
	for _, name := range []string{"greenwich", "paranal", "mauna_kea", "equator"} {
		t.Run(name, func(t *testing.T) {
			hours, err := DayLength(testObserver(t, name), NewJulianDate(2460390.0), nil)
			if err != nil {
				t.Fatal(err)
			}
			if hours < 11.5 || hours > 12.5 {
				t.Errorf("equinox day length = %v h", hours)
			}
		})
	}
}

func TestDayLengthSeasons(t *testing.T) {
	obs := testObserver(t, "greenwich")
	winter, _ := DayLength(obs, NewJulianDate(2460665.5), nil)
	summer, _ := DayLength(obs, NewJulianDate(2460483.5), nil)
	if winter > 8.5 || summer < 16 {
		t.Errorf("winter = %v h, summer = %v h", winter, summer)
	}
}

func TestSunTrace(t *testing.T) {
	tr := verbose.New()
	jd := NewJulianDate(2460325.5)
	if SunAt(jd, tr) != SunAt(jd, nil) {
		t.Error("trace altered the result")
	}
	if tr.Len() < 5 {
		t.Errorf("trace has %d steps", tr.Len())
	}
}

func TestSunSeparation(t *testing.T) {
	jd := NewJulianDate(J2000)
	sun := SunAt(jd, nil)

	if sep := SunSeparation(sun.ICRS(), jd, nil); sep.Degrees() > 1e-9 {
		t.Errorf("separation from itself = %v", sep.Degrees())
	}
	anti := ICRSCoord{RA: sun.RA.Add(FromDegrees(180)).Normalize360(), Dec: sun.Dec.Neg()}
	if sep := SunSeparation(anti, jd, nil); math.Abs(sep.Degrees()-180) > 1e-6 {
		t.Errorf("separation from the antisolar point = %v", sep.Degrees())
	}
}

func TestGetSunSeparationTier(t *testing.T) {
	tests := []struct {
		sep  float64
		want SunSeparationTier
	}{
		{0, SunSepWarning},
		{9.9, SunSepWarning},
		{10, SunSepCaution},
		{19.9, SunSepCaution},
		{20, SunSepSafe},
		{120, SunSepSafe},
	}
	for _, tt := range tests {
		if got := GetSunSeparationTier(FromDegrees(tt.sep)); got != tt.want {
			t.Errorf("GetSunSeparationTier(%v) = %v, want %v", tt.sep, got, tt.want)
		}
	}
}
