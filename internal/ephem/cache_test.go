package ephem

import (
	"testing"
	"time"

	"github.com/litescript/starward/internal/astro"
)

func TestPathCache(t *testing.T) {
	obs := greenwich(t)
	start := astro.NewJulianDate(2460325.5)
	moon, _ := Lookup("moon")

	now := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	c := NewPathCache(time.Minute)
	c.now = func() time.Time { return now }

	first, err := c.Path(moon, obs, start, 6*time.Hour, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Points) != 7 {
		t.Fatalf("len(Points) = %d, want 7", len(first.Points))
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	// Fresh entry is reused even for a later start.
	again, _ := c.Path(moon, obs, start.AddDays(0.01), 6*time.Hour, time.Hour)
	if again.Start != first.Start {
		t.Error("expected cached path")
	}

	// A different step resamples.
	fine, _ := c.Path(moon, obs, start, 6*time.Hour, 30*time.Minute)
	if len(fine.Points) != 13 {
		t.Errorf("len(Points) = %d, want 13", len(fine.Points))
	}

	// Expiry resamples.
	now = now.Add(2 * time.Minute)
	later := start.AddDays(0.25)
	fresh, _ := c.Path(moon, obs, later, 6*time.Hour, 30*time.Minute)
	if fresh.Start != later {
		t.Error("expected a resampled path after expiry")
	}

	c.Invalidate("MOON")
	if c.Len() != 0 {
		t.Errorf("Len() after Invalidate = %d", c.Len())
	}
}

func TestPathCacheObserverChange(t *testing.T) {
	start := astro.NewJulianDate(2460325.5)
	sun, _ := Lookup("sun")
	c := NewPathCache(0)

	a := greenwich(t)
	b, _ := astro.NewObserver("paranal", -24.6272, -70.4042, 2635, "")

	pa, _ := c.Path(sun, a, start, 2*time.Hour, time.Hour)
	pb, _ := c.Path(sun, b, start, 2*time.Hour, time.Hour)
	if pa.Points[0].Horizontal == pb.Points[0].Horizontal {
		t.Error("observer change should resample")
	}
}

func TestObserverMatch(t *testing.T) {
	a, _ := astro.NewObserver("a", 51.4769, -0.0005, 0, "")
	b, _ := astro.NewObserver("b", 51.4771, -0.0001, 100, "")
	c, _ := astro.NewObserver("c", 51.6, -0.0005, 0, "")

	if !observerMatch(a, b) {
		t.Error("nearby observers should match")
	}
	if observerMatch(a, c) {
		t.Error("distant observers should not match")
	}
}
