package ephem

import (
	"errors"
	"testing"

	"github.com/litescript/starward/internal/astro"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		wantName string
		wantKind Kind
	}{
		{"sun", "Sun", KindSun},
		{"SOL", "Sun", KindSun},
		{"Moon", "Moon", KindMoon},
		{"luna", "Moon", KindMoon},
		{"jupiter", "Jupiter", KindPlanet},
		{" Neptune ", "Neptune", KindPlanet},
		{"Sirius", "Sirius", KindStar},
		{"kaus_australis", "Kaus Australis", KindStar},
		{"KAUS-AUSTRALIS", "Kaus Australis", KindStar},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Lookup(tc.name)
			if err != nil {
				t.Fatalf("Lookup(%q) error: %v", tc.name, err)
			}
			if p.Name() != tc.wantName || p.Kind() != tc.wantKind {
				t.Errorf("Lookup(%q) = %s (%v), want %s (%v)", tc.name, p.Name(), p.Kind(), tc.wantName, tc.wantKind)
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	for _, name := range []string{"pluto", "earth", "", "UNKNOWN123"} {
		if _, err := Lookup(name); !errors.Is(err, astro.ErrInvalidArgument) {
			t.Errorf("Lookup(%q) error = %v, want ErrInvalidArgument", name, err)
		}
	}
}

func TestResolve(t *testing.T) {
	p, err := Resolve("vega")
	if err != nil || p.Kind() != KindStar {
		t.Fatalf("Resolve(vega) = %v, %v", p, err)
	}

	p, err = Resolve("05h55m10.3s +07d24m25s")
	if err != nil {
		t.Fatalf("Resolve(coords) error: %v", err)
	}
	if p.Kind() != KindFixed {
		t.Errorf("Kind = %v, want fixed", p.Kind())
	}
	c, _ := p.Position(astro.NewJulianDate(astro.J2000), nil)
	if d := c.RA.Degrees() - 88.793; d > 0.01 || d < -0.01 {
		t.Errorf("RA = %v, want ≈88.793", c.RA.Degrees())
	}

	if _, err := Resolve("not a body"); err == nil {
		t.Error("expected error for unresolvable text")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != len(Bodies)+len(defaultStars) {
		t.Fatalf("len(Names()) = %d", len(names))
	}
	if names[0] != "Sun" || names[1] != "Moon" || names[2] != "Mercury" {
		t.Errorf("Names() starts %v", names[:3])
	}
	for _, n := range names {
		if _, err := Lookup(n); err != nil {
			t.Errorf("Names() lists %q but Lookup fails: %v", n, err)
		}
	}
}

func TestSolarSystem(t *testing.T) {
	ps := SolarSystem()
	if len(ps) != 9 {
		t.Fatalf("len = %d, want 9", len(ps))
	}
	if ps[0].Kind() != KindSun || ps[1].Kind() != KindMoon || ps[8].Name() != "Neptune" {
		t.Errorf("unexpected order: %s %s %s", ps[0].Name(), ps[1].Name(), ps[8].Name())
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Sirius", "sirius"},
		{"  Kaus   Australis ", "kaus australis"},
		{"kaus_australis", "kaus australis"},
		{"KAUS-AUSTRALIS", "kaus australis"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := normalizeName(tc.in); got != tc.want {
			t.Errorf("normalizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
