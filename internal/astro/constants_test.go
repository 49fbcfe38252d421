package astro

import (
	"errors"
	"testing"
)

func TestConstantsTable(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Constants() {
		if c.Key == "" || c.Name == "" {
			t.Errorf("constant %+v has empty key or name", c)
		}
		if seen[c.Key] {
			t.Errorf("duplicate key %q", c.Key)
		}
		seen[c.Key] = true
	}

	// Callers get a fresh slice each time
	a := Constants()
	a[0].Value = -1
	if Constants()[0].Value == -1 {
		t.Error("Constants() shares its backing array")
	}
}

func TestLookupConstant(t *testing.T) {
	c, err := LookupConstant("au")
	if err != nil {
		t.Fatalf("LookupConstant(au) error: %v", err)
	}
	if c.Value != AU {
		t.Errorf("au = %v, want %v", c.Value, AU)
	}

	c, err = LookupConstant("speed of light")
	if err != nil || c.Value != SpeedOfLight {
		t.Errorf("lookup by name = %+v, %v", c, err)
	}

	if _, err := LookupConstant("hubble"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("unknown constant error = %v", err)
	}
}
