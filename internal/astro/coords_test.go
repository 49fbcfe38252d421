package astro

import (
	"errors"
	"math"
	"testing"

	"github.com/litescript/starward/internal/verbose"
)

func TestNewICRSCoord(t *testing.T) {
	c, err := ICRSFromDegrees(370, 45)
	if err != nil {
		t.Fatalf("ICRSFromDegrees() error: %v", err)
	}
	if math.Abs(c.RA.Degrees()-10) > 1e-9 {
		t.Errorf("RA = %v, want 10 (normalized)", c.RA.Degrees())
	}

	for _, dec := range []float64{90.0001, -91, 180} {
		if _, err := ICRSFromDegrees(0, dec); !errors.Is(err, ErrDomain) {
			t.Errorf("dec %v: error = %v, want ErrDomain", dec, err)
		}
	}
	if _, err := NewGalacticCoord(FromDegrees(0), FromDegrees(95)); !errors.Is(err, ErrDomain) {
		t.Errorf("galactic b 95: error = %v", err)
	}
	if _, err := NewHorizontalCoord(FromDegrees(-95), FromDegrees(0)); !errors.Is(err, ErrDomain) {
		t.Errorf("alt -95: error = %v", err)
	}
}

func TestParseICRS(t *testing.T) {
	tests := []struct {
		in      string
		ra, dec float64
	}{
		{"12h30m00s +45d30m00s", 187.5, 45.5},
		{"12:30:00 +45:30:00", 187.5, 45.5},
		{"12:30:00 -45:30:00", 187.5, -45.5},
		{"187.5 45.5", 187.5, 45.5},
		{"12 30 00 +45 30 00", 187.5, 45.5},
		{"05h55m10.3s +07d24m25s", 88.792917, 7.406944},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseICRS(tt.in)
			if err != nil {
				t.Fatalf("ParseICRS(%q) error: %v", tt.in, err)
			}
			if math.Abs(c.RA.Degrees()-tt.ra) > 1e-5 || math.Abs(c.Dec.Degrees()-tt.dec) > 1e-5 {
				t.Errorf("ParseICRS(%q) = (%v, %v), want (%v, %v)",
					tt.in, c.RA.Degrees(), c.Dec.Degrees(), tt.ra, tt.dec)
			}
		})
	}
}

func TestParseICRSErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"nonsense", ErrParse},
		{"12h30m", ErrParse},
		{"10 95", ErrDomain},
		{"xx yy", ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if _, err := ParseICRS(tt.in); !errors.Is(err, tt.want) {
				t.Errorf("ParseICRS(%q) error = %v, want %v", tt.in, err, tt.want)
			}
		})
	}
}

func TestGalacticCenter(t *testing.T) {
	// Galactic (0, 0) lies near Sgr A* (17h45m40s −29°00′28″)
	got := GalacticCoord{}.ToICRS(nil)
	if math.Abs(got.RA.Degrees()-266.405) > 0.1 {
		t.Errorf("RA = %v, want ≈266.405", got.RA.Degrees())
	}
	if math.Abs(got.Dec.Degrees()-(-28.936)) > 0.1 {
		t.Errorf("Dec = %v, want ≈-28.936", got.Dec.Degrees())
	}

	gal := mustICRS(t, 266.405, -28.936).ToGalactic(nil)
	if angleDiff(gal.L.Degrees(), 0) > 0.1 || math.Abs(gal.B.Degrees()) > 0.1 {
		t.Errorf("ToGalactic = (%v, %v), want ≈(0, 0)", gal.L.Degrees(), gal.B.Degrees())
	}
}

func TestGalacticPole(t *testing.T) {
	pole := DefaultGalacticPole()
	gal := ICRSCoord{RA: pole.RA, Dec: pole.Dec}.ToGalactic(nil)
	if math.Abs(gal.B.Degrees()-90) > 1e-6 {
		t.Errorf("b of the NGP = %v, want 90", gal.B.Degrees())
	}

	// The north celestial pole sits at l = l_NCP
	ncp := mustICRS(t, 0, 90).ToGalactic(nil)
	if angleDiff(ncp.L.Degrees(), pole.LonNCP.Degrees()) > 1e-6 {
		t.Errorf("l of the NCP = %v, want %v", ncp.L.Degrees(), pole.LonNCP.Degrees())
	}
}

func TestGalacticRoundTrip(t *testing.T) {
	points := [][2]float64{
		{0, 0}, {10.684, 41.269}, {83.633, 22.014}, {201.365, -43.019},
		{279.234, 38.784}, {359.9, -89.5}, {150, 60},
	}

	for _, p := range points {
		c := mustICRS(t, p[0], p[1])
		back := c.ToGalactic(nil).ToICRS(nil)
		if d := c.SeparationTo(back, nil).Degrees(); d > 1e-6 {
			t.Errorf("round trip of %v drifted %v°", p, d)
		}
	}
}

func TestGalacticRanges(t *testing.T) {
	for ra := 0.0; ra < 360; ra += 30 {
		for dec := -80.0; dec <= 80; dec += 40 {
			g := mustICRS(t, ra, dec).ToGalactic(nil)
			if g.L.Degrees() < 0 || g.L.Degrees() >= 360 {
				t.Errorf("l = %v out of range", g.L.Degrees())
			}
			if g.B.Degrees() < -90 || g.B.Degrees() > 90 {
				t.Errorf("b = %v out of range", g.B.Degrees())
			}
		}
	}
}

func TestToHorizontalZenith(t *testing.T) {
	for _, name := range []string{"greenwich", "mauna_kea", "paranal", "equator"} {
		t.Run(name, func(t *testing.T) {
			obs := testObserver(t, name)
			jd := NewJulianDate(2460325.5)
			lst := jd.LST(obs.Longitude, nil)
			star := ICRSCoord{RA: FromHours(lst), Dec: obs.Latitude}

			hz := star.ToHorizontal(obs, jd, nil)
			if math.Abs(hz.Alt.Degrees()-90) > 1e-6 {
				t.Errorf("alt = %v, want 90", hz.Alt.Degrees())
			}
			if hz.ZenithAngle().Degrees() > 1e-6 {
				t.Errorf("zenith angle = %v", hz.ZenithAngle().Degrees())
			}
		})
	}
}

func TestToHorizontalPolaris(t *testing.T) {
	obs := testObserver(t, "greenwich")
	polaris := mustICRS(t, 37.954, 89.264)

	for h := 0.0; h < 24; h += 3 {
		jd := NewJulianDate(2460325.5 + h/24)
		hz := polaris.ToHorizontal(obs, jd, nil)
		if math.Abs(hz.Alt.Degrees()-obs.Latitude.Degrees()) > 1 {
			t.Errorf("Polaris alt at +%vh = %v, want ≈%v", h, hz.Alt.Degrees(), obs.Latitude.Degrees())
		}
		if angleDiff(hz.Az.Degrees(), 0) > 2 {
			t.Errorf("Polaris az at +%vh = %v, want ≈0", h, hz.Az.Degrees())
		}
	}
}

func TestToHorizontalMeridian(t *testing.T) {
	// A star on the meridian south of the zenith has az 180
	obs := testObserver(t, "greenwich")
	jd := NewJulianDate(J2000)
	lst := jd.LST(obs.Longitude, nil)
	star := ICRSCoord{RA: FromHours(lst), Dec: FromDegrees(0)}

	hz := star.ToHorizontal(obs, jd, nil)
	if math.Abs(hz.Az.Degrees()-180) > 1e-6 {
		t.Errorf("az = %v, want 180", hz.Az.Degrees())
	}
	if math.Abs(hz.Alt.Degrees()-(90-obs.Latitude.Degrees())) > 1e-6 {
		t.Errorf("alt = %v, want %v", hz.Alt.Degrees(), 90-obs.Latitude.Degrees())
	}

	// Six hours later it is setting in the west
	west := NewJulianDate(J2000 + 0.25/1.0027379)
	hz = star.ToHorizontal(obs, west, nil)
	if math.Abs(hz.Az.Degrees()-270) > 0.5 {
		t.Errorf("az after 6h = %v, want ≈270", hz.Az.Degrees())
	}
}

func TestHorizontalRoundTrip(t *testing.T) {
	obs := testObserver(t, "paranal")
	jd := NewJulianDate(2460483.5)

	for ra := 5.0; ra < 360; ra += 35 {
		for _, dec := range []float64{-70, -30, 0, 20, 45} {
			c := mustICRS(t, ra, dec)
			back := c.ToHorizontal(obs, jd, nil).ToICRS(obs, jd, nil)
			if d := c.SeparationTo(back, nil).Degrees(); d > 1e-6 {
				t.Errorf("round trip of (%v, %v) drifted %v°", ra, dec, d)
			}
		}
	}
}

func TestHourAngle(t *testing.T) {
	obs := testObserver(t, "greenwich")
	jd := NewJulianDate(J2000)
	lst := FromHours(jd.LST(obs.Longitude, nil))

	tests := []struct {
		name   string
		offset float64
		want   float64
	}{
		{"on meridian", 0, 0},
		{"east", 30, -30},
		{"west", -45, 45},
		{"far east", 170, -170},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ha := HourAngle(lst.Add(FromDegrees(tt.offset)), obs, jd, nil)
			if math.Abs(ha.Degrees()-tt.want) > 1e-9 {
				t.Errorf("HourAngle = %v, want %v", ha.Degrees(), tt.want)
			}
		})
	}
}

func TestAirmass(t *testing.T) {
	tests := []struct {
		alt    float64
		want   float64
		tol    float64
		wantOK bool
	}{
		{90, 1.0, 1e-12, true},
		{45, 1.4124, 0.001, true},
		{30, 1.9932, 0.001, true},
		{10, 5.5807, 0.001, true},
		{0, 0, 0, false},
		{-5, 0, 0, false},
		{-89, 0, 0, false},
	}

	for _, tt := range tests {
		got, ok := Airmass(FromDegrees(tt.alt), nil)
		if ok != tt.wantOK {
			t.Errorf("Airmass(%v) ok = %v, want %v", tt.alt, ok, tt.wantOK)
			continue
		}
		if math.Abs(got-tt.want) > tt.tol {
			t.Errorf("Airmass(%v) = %v, want %v", tt.alt, got, tt.want)
		}
	}

	if x, ok := Airmass(FromDegrees(1), nil); !ok || x < 25 {
		t.Errorf("Airmass(1°) = %v, want > 25", x)
	}
}

func TestAirmassNearZenith(t *testing.T) {
	for _, alt := range []float64{89.97, 89.99, 90} {
		if x, ok := Airmass(FromDegrees(alt), nil); !ok || x != 1 {
			t.Errorf("Airmass(%v) = %v, want exactly 1 in the clamped zone", alt, x)
		}
	}
	if x, _ := Airmass(FromDegrees(89.9), nil); x <= 1 {
		t.Errorf("Airmass(89.9) = %v, want > 1 below the clamped zone", x)
	}
}

func TestAirmassMonotonic(t *testing.T) {
	prev := 0.0
	for alt := 90.0; alt >= 0.5; alt -= 0.5 {
		x, ok := Airmass(FromDegrees(alt), nil)
		if !ok {
			t.Fatalf("Airmass(%v) not ok", alt)
		}
		if x < prev {
			t.Errorf("Airmass(%v) = %v is less than at higher altitude (%v)", alt, x, prev)
		}
		prev = x
	}

	hz := HorizontalCoord{Alt: FromDegrees(60)}
	if x, ok := hz.Airmass(); !ok || x <= 1 {
		t.Errorf("HorizontalCoord.Airmass() = %v, %v", x, ok)
	}
}

func TestParseFrame(t *testing.T) {
	for in, want := range map[string]Frame{"icrs": FrameICRS, "Galactic": FrameGalactic, "altaz": FrameHorizontal} {
		got, err := ParseFrame(in)
		if err != nil || got != want {
			t.Errorf("ParseFrame(%q) = %v, %v", in, got, err)
		}
		if got.String() == "unknown" {
			t.Errorf("%v has no name", got)
		}
	}
	if _, err := ParseFrame("ecliptic"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParseFrame(ecliptic) error = %v", err)
	}
}

func TestTransform(t *testing.T) {
	obs := testObserver(t, "mauna_kea")
	jd := NewJulianDate(2460325.5)
	start := mustICRS(t, 83.633, 22.014)

	gal, err := Transform(start, FrameGalactic, obs, jd, nil)
	if err != nil {
		t.Fatal(err)
	}
	if FrameOf(gal) != FrameGalactic {
		t.Fatalf("Transform returned %T", gal)
	}

	hz, err := Transform(gal, FrameHorizontal, obs, jd, nil)
	if err != nil {
		t.Fatal(err)
	}
	direct := start.ToHorizontal(obs, jd, nil)
	got := hz.(HorizontalCoord)
	if math.Abs(got.Alt.Degrees()-direct.Alt.Degrees()) > 1e-6 || angleDiff(got.Az.Degrees(), direct.Az.Degrees()) > 1e-6 {
		t.Errorf("galactic→horizontal = %v, direct = %v", got, direct)
	}

	back, err := Transform(hz, FrameICRS, obs, jd, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d := start.SeparationTo(back.(ICRSCoord), nil).Degrees(); d > 1e-6 {
		t.Errorf("horizontal→icrs drifted %v°", d)
	}

	same, err := Transform(gal, FrameGalactic, obs, jd, nil)
	if err != nil || same != gal {
		t.Errorf("identity transform = %v, %v", same, err)
	}
}

func TestTransformTraceDoesNotAlterResult(t *testing.T) {
	obs := testObserver(t, "greenwich")
	jd := NewJulianDate(2460325.5)
	c := mustICRS(t, 101.287, -16.716)

	plain := c.ToHorizontal(obs, jd, nil)
	tr := verbose.New()
	traced := c.ToHorizontal(obs, jd, tr)

	if plain != traced {
		t.Errorf("traced = %v, plain = %v", traced, plain)
	}
	if tr.Len() == 0 {
		t.Error("trace recorded no steps")
	}
}
