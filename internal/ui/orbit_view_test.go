package ui

import (
	"math"
	"strings"
	"testing"

	"github.com/litescript/starward/internal/astro"
)

func TestHeliocentricBodies(t *testing.T) {
	bodies, err := heliocentricBodies(astro.NewJulianDate(astro.J2000))
	if err != nil {
		t.Fatalf("heliocentricBodies() error = %v", err)
	}

	want := []string{"Mercury", "Venus", "Earth", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune"}
	if len(bodies) != len(want) {
		t.Fatalf("got %d bodies, want %d", len(bodies), len(want))
	}
	for i, b := range bodies {
		if b.Name != want[i] {
			t.Errorf("bodies[%d] = %s, want %s", i, b.Name, want[i])
		}
		// Every orbit is close to its mean distance.
		if math.Abs(b.Distance-b.Orbit)/b.Orbit > 0.25 {
			t.Errorf("%s: distance %.3f AU far from a = %.3f AU", b.Name, b.Distance, b.Orbit)
		}
	}

	// Earth at J2000 sits opposite the Sun's geocentric longitude of ~280°.
	earth := bodies[2]
	if !earth.Earth {
		t.Fatal("bodies[2] should be Earth")
	}
	if math.Abs(earth.Lon.Degrees()-100.4) > 1 {
		t.Errorf("Earth longitude = %.2f°, want ~100.4°", earth.Lon.Degrees())
	}
}

func TestOrbitRadius(t *testing.T) {
	m := NewOrbitModel()

	if got := m.radius(outerRadiusAU); math.Abs(got-1) > 1e-12 {
		t.Errorf("log radius(30 AU) = %v, want 1", got)
	}
	if got := m.radius(0); got != 0 {
		t.Errorf("radius(0) = %v, want 0", got)
	}
	// Log scale spreads the inner planets out.
	if m.radius(1) < 0.15 {
		t.Errorf("log radius(1 AU) = %v, want >= 0.15", m.radius(1))
	}

	m.scaleMode = ScaleLinear
	if got := m.radius(15); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("linear radius(15 AU) = %v, want 0.5", got)
	}

	m.zoomLevel = 5 // 2x
	if got := m.radius(15); math.Abs(got-1) > 1e-12 {
		t.Errorf("linear radius(15 AU) at 2x = %v, want 1", got)
	}
}

func TestOrbitProject(t *testing.T) {
	m := NewOrbitModel()
	w, h := 100, 40

	tests := []struct {
		lon    float64
		wantDx int // sign of x offset from centre
		wantDy int // sign of y offset from centre
	}{
		{0, 1, 0},
		{90, 0, -1}, // up on screen
		{180, -1, 0},
		{270, 0, 1},
	}
	for _, tt := range tests {
		x, y := m.project(astro.FromDegrees(tt.lon), 5, w, h)
		if sign(x-w/2) != tt.wantDx || sign(y-h/2) != tt.wantDy {
			t.Errorf("project(%v°) = (%d, %d), centre (%d, %d)", tt.lon, x, y, w/2, h/2)
		}
	}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

func TestOrbitKeys(t *testing.T) {
	m := NewOrbitModel().UpdateData(testSnapshot())
	if m.FocusedBody() != nil {
		t.Fatal("Sun should be focused initially")
	}

	m, _ = m.Update(key("j"))
	if f := m.FocusedBody(); f == nil || f.Name != "Mercury" {
		t.Errorf("after j focused = %v, want Mercury", f)
	}
	m, _ = m.Update(key("k"))
	m, _ = m.Update(key("k"))
	if f := m.FocusedBody(); f == nil || f.Name != "Neptune" {
		t.Errorf("after k k focused = %v, want Neptune", f)
	}

	m, _ = m.Update(key("+"))
	if m.scale() != 1.5 {
		t.Errorf("scale() = %v, want 1.5", m.scale())
	}
	m, _ = m.Update(key("0"))
	if m.scale() != 1.0 {
		t.Errorf("scale() = %v, want 1.0 after reset", m.scale())
	}
	m, _ = m.Update(key("z"))
	if m.scaleMode != ScaleLinear {
		t.Error("z should switch to linear scale")
	}
}

func TestOrbitView(t *testing.T) {
	m := NewOrbitModel().SetSize(100, 40)
	if got := m.View(); got != "Computing orbits..." {
		t.Errorf("empty View() = %q", got)
	}

	view := m.UpdateData(testSnapshot()).View()
	for _, want := range []string{"☉", "Jupiter", "Mode:"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
