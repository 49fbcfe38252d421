package astro

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestNewObserver(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		elev    float64
		wantErr error
		wantLon float64
	}{
		{"greenwich", 51.4769, -0.0005, 46, nil, -0.0005},
		{"wrapped east", 10, 190, 0, nil, -170},
		{"antimeridian", 10, 180, 0, nil, -180},
		{"pole", 90, 0, 0, nil, 0},
		{"latitude too high", 91, 0, 0, ErrDomain, 0},
		{"latitude too low", -90.5, 0, 0, ErrDomain, 0},
		{"negative elevation", 0, 0, -10, ErrDomain, 0},
		{"NaN latitude", math.NaN(), 0, 0, ErrInvalidArgument, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, err := NewObserver(tt.name, tt.lat, tt.lon, tt.elev, "")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewObserver() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewObserver() error: %v", err)
			}
			if math.Abs(obs.Longitude.Degrees()-tt.wantLon) > 1e-9 {
				t.Errorf("Longitude = %v, want %v", obs.Longitude.Degrees(), tt.wantLon)
			}
		})
	}
}

func TestObserverMapRoundTrip(t *testing.T) {
	for name := range testSites {
		t.Run(name, func(t *testing.T) {
			obs := testObserver(t, name)
			back, err := ObserverFromMap(obs.ToMap())
			if err != nil {
				t.Fatalf("ObserverFromMap() error: %v", err)
			}
			if back != obs {
				t.Errorf("round trip = %+v, want %+v", back, obs)
			}
		})
	}
}

func TestObserverToMapKeys(t *testing.T) {
	m := testObserver(t, "equator").ToMap()
	for _, k := range []string{"name", "latitude", "longitude", "elevation", "timezone"} {
		if _, ok := m[k]; !ok {
			t.Errorf("ToMap() missing key %q", k)
		}
	}
	if m["timezone"] != nil {
		t.Errorf("timezone = %v, want nil for an unset zone", m["timezone"])
	}
}

func TestObserverFromMapErrors(t *testing.T) {
	tests := []struct {
		name string
		m    map[string]any
		want error
	}{
		{"missing latitude", map[string]any{"longitude": 0.0}, ErrInvalidArgument},
		{"string latitude", map[string]any{"latitude": "north", "longitude": 0.0}, ErrInvalidArgument},
		{"out of range", map[string]any{"latitude": 100.0, "longitude": 0.0}, ErrDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ObserverFromMap(tt.m); !errors.Is(err, tt.want) {
				t.Errorf("ObserverFromMap() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestObserverLocation(t *testing.T) {
	loc, err := testObserver(t, "equator").Location()
	if err != nil || loc != time.UTC {
		t.Errorf("Location() = %v, %v; want UTC", loc, err)
	}

	bad := Observer{Name: "nowhere", Timezone: "Mars/Olympus_Mons"}
	if _, err := bad.Location(); err == nil {
		t.Error("expected error for unknown timezone")
	}
}
