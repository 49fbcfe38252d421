package astro

import (
	"fmt"
	"math"
	"time"
)

// Observer is a ground-based observing site. Latitude is north-positive and
// longitude east-positive. The zero value sits at 0°N 0°E.
type Observer struct {
	Name      string
	Latitude  Angle
	Longitude Angle
	Elevation float64 // meters above sea level
	Timezone  string  // IANA zone name, optional
}

// NewObserver validates a site given in degrees. Longitude is wrapped into
// [-180°, 180°).
func NewObserver(name string, latDeg, lonDeg, elevation float64, timezone string) (Observer, error) {
	if math.IsNaN(latDeg) || math.IsNaN(lonDeg) || math.IsNaN(elevation) {
		return Observer{}, fmt.Errorf("observer %q: NaN coordinate: %w", name, ErrInvalidArgument)
	}
	if latDeg < -90 || latDeg > 90 {
		return Observer{}, fmt.Errorf("observer %q: latitude %.6f outside [-90, 90]: %w", name, latDeg, ErrDomain)
	}
	if elevation < 0 {
		return Observer{}, fmt.Errorf("observer %q: negative elevation %.1f: %w", name, elevation, ErrDomain)
	}
	return Observer{
		Name:      name,
		Latitude:  FromDegrees(latDeg),
		Longitude: FromDegrees(lonDeg).Normalize180(),
		Elevation: elevation,
		Timezone:  timezone,
	}, nil
}

// Location resolves the observer's timezone, falling back to UTC when none
// is set.
func (o Observer) Location() (*time.Location, error) {
	if o.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(o.Timezone)
	if err != nil {
		return nil, fmt.Errorf("observer %q timezone: %w", o.Name, err)
	}
	return loc, nil
}

func (o Observer) String() string {
	ns, ew := "N", "E"
	if o.Latitude.Degrees() < 0 {
		ns = "S"
	}
	if o.Longitude.Degrees() < 0 {
		ew = "W"
	}
	return fmt.Sprintf("%s (%.4f°%s, %.4f°%s, %.0f m)",
		o.Name, math.Abs(o.Latitude.Degrees()), ns, math.Abs(o.Longitude.Degrees()), ew, o.Elevation)
}

// ToMap returns the observer as a flat record with the keys name, latitude,
// longitude, elevation and timezone. Angles are in degrees.
func (o Observer) ToMap() map[string]any {
	m := map[string]any{
		"name":      o.Name,
		"latitude":  o.Latitude.Degrees(),
		"longitude": o.Longitude.Degrees(),
		"elevation": o.Elevation,
	}
	if o.Timezone != "" {
		m["timezone"] = o.Timezone
	} else {
		m["timezone"] = nil
	}
	return m
}

// ObserverFromMap is the inverse of ToMap. Missing elevation defaults to 0.
func ObserverFromMap(m map[string]any) (Observer, error) {
	name, _ := m["name"].(string)

	lat, err := mapFloat(m, "latitude", true)
	if err != nil {
		return Observer{}, err
	}
	lon, err := mapFloat(m, "longitude", true)
	if err != nil {
		return Observer{}, err
	}
	elev, err := mapFloat(m, "elevation", false)
	if err != nil {
		return Observer{}, err
	}
	tz, _ := m["timezone"].(string)

	return NewObserver(name, lat, lon, elev, tz)
}

func mapFloat(m map[string]any, key string, required bool) (float64, error) {
	v, ok := m[key]
	if !ok || v == nil {
		if required {
			return 0, fmt.Errorf("observer record missing %q: %w", key, ErrInvalidArgument)
		}
		return 0, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("observer record %q has type %T: %w", key, v, ErrInvalidArgument)
	}
}
