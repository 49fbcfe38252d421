package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/state"
)

func TestBodyDetailSelection(t *testing.T) {
	m := NewBodyDetailModel().UpdateData(testSnapshot(), nil)
	if got := m.Selected(); got != "Sun" {
		t.Fatalf("Selected() = %q, want Sun (first body)", got)
	}

	tests := []struct {
		key  string
		want string
	}{
		{"right", "Moon"},
		{"]", "Mars"},
		{"right", "Sun"}, // wraps
		{"left", "Mars"},
		{"[", "Moon"},
	}
	for _, tt := range tests {
		m, _ = m.Update(key(tt.key))
		if got := m.Selected(); got != tt.want {
			t.Errorf("after %q Selected() = %q, want %q", tt.key, got, tt.want)
		}
	}

	m = m.Select("Mars")
	if got := m.Selected(); got != "Mars" {
		t.Errorf("Select(Mars) = %q", got)
	}
}

func TestBodyDetailUsesHistory(t *testing.T) {
	mgr := state.NewManager(state.DefaultConfig())
	snap := testSnapshot()

	mgr.Update(snap.Sky, time.Millisecond, nil)
	next := testSnapshot().Sky
	next.Time = next.Time.Add(time.Minute)
	next.Bodies[0].Altitude = astro.FromDegrees(25.5)
	mgr.Update(next, time.Millisecond, nil)

	m := NewBodyDetailModel().UpdateData(mgr.Snapshot(), mgr)
	if m.history != 2 {
		t.Errorf("history = %d, want 2", m.history)
	}
	if m.rate < 0.49 || m.rate > 0.51 {
		t.Errorf("rate = %v, want 0.5°/min", m.rate)
	}
}

func TestBodyDetailView(t *testing.T) {
	m := NewBodyDetailModel().SetSize(120, 40)
	if view := m.View(); !strings.Contains(view, "C") {
		t.Errorf("empty View() = %q", view)
	}

	m = m.UpdateData(testSnapshot(), nil).Select("Mars")
	view := m.View()
	for _, want := range []string{"Mars", "RA:", "Magnitude:", "Sun sep:", "Distance:", "Light time:"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m = m.Select("Nothing")
	if view := m.View(); !strings.Contains(view, "No body selected") {
		t.Error("unknown body should show the selection hint")
	}
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{0.25, "rising 0.25°/min"},
		{-0.1, "setting 0.10°/min"},
		{0, "steady"},
		{0.0005, "steady"},
	}
	for _, tt := range tests {
		if got := formatRate(tt.rate); got != tt.want {
			t.Errorf("formatRate(%v) = %q, want %q", tt.rate, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{-time.Second, "now"},
		{30 * time.Second, "30s"},
		{45 * time.Minute, "45m"},
		{2 * time.Hour, "2h"},
		{3*time.Hour + 12*time.Minute, "3h 12m"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestNextEvent(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	at := func(h float64) astro.Event {
		return astro.Event{JD: astro.FromTime(now.Add(time.Duration(h * float64(time.Hour)))), OK: true}
	}

	tests := []struct {
		name string
		ev   astro.RiseSetTimes
		want string
	}{
		{"rise first", astro.RiseSetTimes{Rise: at(2), Set: at(10)}, "Rises in 2h"},
		{"set first", astro.RiseSetTimes{Rise: at(14), Set: at(3.5)}, "Sets in 3h 30m"},
		{"past rise skipped", astro.RiseSetTimes{Rise: at(-1), Set: at(1)}, "Sets in 1h"},
		{"none", astro.RiseSetTimes{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextEvent(tt.ev, now); got != tt.want {
				t.Errorf("nextEvent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderVisibilityPanel(t *testing.T) {
	snap := testSnapshot()
	obs := snap.Sky.Observer

	tests := []struct {
		name string
		ev   astro.RiseSetTimes
		want string
	}{
		{"never rises", astro.RiseSetTimes{NeverRises: true}, "Never rises"},
		{"circumpolar", astro.RiseSetTimes{Circumpolar: true, TransitAltitude: astro.FromDegrees(62)}, "Circumpolar, peak 62°"},
		{"no events", astro.RiseSetTimes{}, "No events"},
		{"window", snap.Sky.Bodies[0].Events, "Peak"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := state.Body{Name: "X", Altitude: astro.FromDegrees(30), Events: tt.ev}
			if got := RenderVisibilityPanel(body, obs); !strings.Contains(got, tt.want) {
				t.Errorf("RenderVisibilityPanel() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestTierHelpers(t *testing.T) {
	tests := []struct {
		alt  float64
		bar  string
		text string
	}{
		{-5, "░░░░", "Below horizon"},
		{10, "█░░░", "10°"},
		{30, "██░░", "30°"},
		{60, "████", "60°"},
	}
	for _, tt := range tests {
		tier := astro.GetElevationTier(astro.FromDegrees(tt.alt))
		if got := tierToBar(tier); got != tt.bar {
			t.Errorf("tierToBar(%v°) = %q, want %q", tt.alt, got, tt.bar)
		}
		if got := RenderCurrentElevation(astro.FromDegrees(tt.alt)); !strings.Contains(got, tt.text) {
			t.Errorf("RenderCurrentElevation(%v°) = %q, want %q", tt.alt, got, tt.text)
		}
	}

	if got := RenderSunSeparation(astro.FromDegrees(5)); !strings.Contains(got, "(warning)") {
		t.Errorf("RenderSunSeparation(5°) = %q", got)
	}
	if got := RenderSunSeparation(astro.FromDegrees(15)); !strings.Contains(got, "(caution)") {
		t.Errorf("RenderSunSeparation(15°) = %q", got)
	}
	if got := RenderSunSeparation(astro.FromDegrees(90)); strings.Contains(got, "(") {
		t.Errorf("RenderSunSeparation(90°) = %q", got)
	}
	if sunTierToColor(astro.SunSepWarning) != colorSunWarning {
		t.Error("warning tier color mismatch")
	}
}
