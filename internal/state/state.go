// Package state provides thread-safe state management for the sky dashboard.
package state

import (
	"sync"
	"time"

	"github.com/litescript/starward/internal/astro"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventRise      EventType = "RISE"
	EventSet       EventType = "SET"
	EventNightfall EventType = "NIGHTFALL"
	EventDaybreak  EventType = "DAYBREAK"
)

// Event represents a change in the observed sky between two updates.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Body      string    `json:"body,omitempty"`
	Azimuth   float64   `json:"azimuth,omitempty"`
}

// BodyHistory tracks the altitude of one body across updates.
type BodyHistory struct {
	Body     string
	Altitude []TimeSeries
}

// TimeSeries is a single data point with timestamp.
type TimeSeries struct {
	Timestamp time.Time
	Value     float64
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	current         *Sky
	lastUpdate      time.Time
	lastError       error
	computeDuration time.Duration

	// Previous above-horizon flags for event detection
	prevUp    map[string]bool
	prevNight *bool

	history    map[string]*BodyHistory
	maxHistory int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	refreshInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	MaxHistory      int
	MaxEvents       int
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistory:      120,
		MaxEvents:       50,
		RefreshInterval: time.Second,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		maxHistory:      cfg.MaxHistory,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
		history:         make(map[string]*BodyHistory),
		prevUp:          make(map[string]bool),
	}
}

// Update atomically replaces the current sky.
func (m *Manager) Update(sky *Sky, computeDuration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastUpdate = time.Now()
	m.lastError = err
	m.computeDuration = computeDuration

	if sky == nil {
		return
	}

	m.detectEvents(sky)
	m.current = sky
	m.updateHistory(sky)
}

// detectEvents compares the new sky with the previous one. A change of
// observer resets the comparison instead of reporting every body.
func (m *Manager) detectEvents(sky *Sky) {
	if m.current != nil && m.current.Observer.Name != sky.Observer.Name {
		m.prevUp = make(map[string]bool)
		m.prevNight = nil
	}

	up := make(map[string]bool, len(sky.Bodies))
	for _, b := range sky.Bodies {
		isUp := b.Altitude.Degrees() > 0
		up[b.Name] = isUp

		was, seen := m.prevUp[b.Name]
		if !seen || was == isUp {
			continue
		}
		typ := EventSet
		if isUp {
			typ = EventRise
		}
		m.addEvent(Event{Type: typ, Timestamp: sky.Time, Body: b.Name, Azimuth: b.Azimuth.Degrees()})
	}
	m.prevUp = up

	night := sky.Night
	if m.prevNight != nil && *m.prevNight != night {
		typ := EventDaybreak
		if night {
			typ = EventNightfall
		}
		m.addEvent(Event{Type: typ, Timestamp: sky.Time})
	}
	m.prevNight = &night
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

func (m *Manager) updateHistory(sky *Sky) {
	if m.maxHistory <= 0 {
		return
	}
	for _, b := range sky.Bodies {
		hist, ok := m.history[b.Name]
		if !ok {
			hist = &BodyHistory{Body: b.Name, Altitude: make([]TimeSeries, 0, m.maxHistory)}
			m.history[b.Name] = hist
		}
		hist.Altitude = append(hist.Altitude, TimeSeries{Timestamp: sky.Time, Value: b.Altitude.Degrees()})
		if len(hist.Altitude) > m.maxHistory {
			hist.Altitude = hist.Altitude[1:]
		}
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Sky             *Sky
	LastUpdate      time.Time
	LastError       error
	ComputeDuration time.Duration
	NextRefresh     time.Time
	Events          []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var next time.Time
	if !m.lastUpdate.IsZero() {
		next = m.lastUpdate.Add(m.refreshInterval)
	}
	return Snapshot{
		Sky:             m.current,
		LastUpdate:      m.lastUpdate,
		LastError:       m.lastError,
		ComputeDuration: m.computeDuration,
		NextRefresh:     next,
		Events:          m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		result[i] = m.events[(m.eventWriteAt+i)%m.maxEvents]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// History returns a copy of the altitude history of a body, or nil.
func (m *Manager) History(body string) *BodyHistory {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hist, ok := m.history[body]
	if !ok {
		return nil
	}
	out := &BodyHistory{Body: hist.Body, Altitude: make([]TimeSeries, len(hist.Altitude))}
	copy(out.Altitude, hist.Altitude)
	return out
}

// AltitudeRate returns the altitude change in degrees per minute from the
// last two samples, or 0 when there are fewer than two.
func (m *Manager) AltitudeRate(body string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hist, ok := m.history[body]
	if !ok || len(hist.Altitude) < 2 {
		return 0
	}
	n := len(hist.Altitude)
	p1, p2 := hist.Altitude[n-2], hist.Altitude[n-1]
	dt := p2.Timestamp.Sub(p1.Timestamp).Minutes()
	if dt <= 0 {
		return 0
	}
	return (p2.Value - p1.Value) / dt
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// HasData returns true once a sky has been stored.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}

// Observer returns the observer of the current sky.
func (m *Manager) Observer() (astro.Observer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return astro.Observer{}, false
	}
	return m.current.Observer, true
}
