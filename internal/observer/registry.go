// Package observer persists named observing sites in a TOML file.
//
// The file holds an optional default plus one [[observer]] table per site:
//
//	default = "greenwich"
//
//	[[observer]]
//	name = "greenwich"
//	latitude = 51.4769
//	longitude = -0.0005
//	elevation = 46.0
//	timezone = "Europe/London"
//
// A Registry is safe for concurrent use. Nothing touches the disk except
// Load and Save.
package observer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/litescript/starward/internal/astro"
)

// FileName is the registry file inside the starward directory.
const FileName = "observers.toml"

var (
	// ErrNotFound is returned for a name that is not in the registry.
	ErrNotFound = errors.New("observer not found")
	// ErrNoDefault is returned when no site was named and no default is set.
	ErrNoDefault = errors.New("no default observer")
)

type record struct {
	Name      string  `toml:"name"`
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
	Elevation float64 `toml:"elevation"`
	Timezone  string  `toml:"timezone,omitempty"`
}

type document struct {
	Default   string   `toml:"default,omitempty"`
	Observers []record `toml:"observer"`
}

// Registry is the set of saved observers backed by one file.
type Registry struct {
	path string

	mu        sync.RWMutex
	observers map[string]astro.Observer
	def       string
}

// New returns an empty registry bound to path.
func New(path string) *Registry {
	return &Registry{path: path, observers: make(map[string]astro.Observer)}
}

// DefaultPath returns ~/.starward/observers.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".starward", FileName), nil
}

// Path returns the backing file.
func (r *Registry) Path() string { return r.path }

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Load replaces the registry contents with the file's. A missing file
// leaves the registry empty.
func (r *Registry) Load() error {
	var doc document
	if _, err := toml.DecodeFile(r.path, &doc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.mu.Lock()
			r.observers = make(map[string]astro.Observer)
			r.def = ""
			r.mu.Unlock()
			return nil
		}
		return fmt.Errorf("load observers %s: %w", r.path, err)
	}

	observers := make(map[string]astro.Observer, len(doc.Observers))
	for i, rec := range doc.Observers {
		if key(rec.Name) == "" {
			return fmt.Errorf("load observers %s: entry %d has no name: %w", r.path, i+1, astro.ErrInvalidArgument)
		}
		obs, err := astro.ObserverFromMap(rec.toMap())
		if err != nil {
			return fmt.Errorf("load observers %s: %w", r.path, err)
		}
		observers[key(rec.Name)] = obs
	}

	def := key(doc.Default)
	if _, ok := observers[def]; def != "" && !ok {
		return fmt.Errorf("load observers %s: default %q: %w", r.path, doc.Default, ErrNotFound)
	}

	r.mu.Lock()
	r.observers = observers
	r.def = def
	r.mu.Unlock()
	return nil
}

// Save writes the registry to its file, creating the directory if needed.
// The file is replaced atomically.
func (r *Registry) Save() error {
	r.mu.RLock()
	doc := document{Observers: make([]record, 0, len(r.observers))}
	if obs, ok := r.observers[r.def]; ok {
		doc.Default = obs.Name
	}
	for _, obs := range r.sortedLocked() {
		doc.Observers = append(doc.Observers, recordFrom(obs))
	}
	r.mu.RUnlock()

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save observers %s: %w", r.path, err)
	}
	tmp, err := os.CreateTemp(dir, ".observers-*.toml")
	if err != nil {
		return fmt.Errorf("save observers %s: %w", r.path, err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("save observers %s: %w", r.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save observers %s: %w", r.path, err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("save observers %s: %w", r.path, err)
	}
	return nil
}

// Add stores obs under its name, replacing any site with the same name.
// The first site added becomes the default.
func (r *Registry) Add(obs astro.Observer) error {
	k := key(obs.Name)
	if k == "" {
		return fmt.Errorf("add observer: empty name: %w", astro.ErrInvalidArgument)
	}
	obs.Name = strings.TrimSpace(obs.Name)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers[k] = obs
	if r.def == "" {
		r.def = k
	}
	return nil
}

// Get returns the named site.
func (r *Registry) Get(name string) (astro.Observer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	obs, ok := r.observers[key(name)]
	if !ok {
		return astro.Observer{}, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return obs, nil
}

// Remove deletes the named site. Removing the default clears it.
func (r *Registry) Remove(name string) error {
	k := key(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.observers[k]; !ok {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	delete(r.observers, k)
	if r.def == k {
		r.def = ""
	}
	return nil
}

// List returns every site sorted by name.
func (r *Registry) List() []astro.Observer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedLocked()
}

func (r *Registry) sortedLocked() []astro.Observer {
	out := make([]astro.Observer, 0, len(r.observers))
	for _, obs := range r.observers {
		out = append(out, obs)
	}
	sort.Slice(out, func(i, j int) bool { return key(out[i].Name) < key(out[j].Name) })
	return out
}

// Len returns the number of saved sites.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.observers)
}

// SetDefault marks an existing site as the default.
func (r *Registry) SetDefault(name string) error {
	k := key(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.observers[k]; !ok {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	r.def = k
	return nil
}

// Default returns the default site.
func (r *Registry) Default() (astro.Observer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	obs, ok := r.observers[r.def]
	if !ok {
		return astro.Observer{}, ErrNoDefault
	}
	return obs, nil
}

// IsDefault reports whether name is the default site.
func (r *Registry) IsDefault(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.def != "" && r.def == key(name)
}

// Resolve returns the named site, or the default when name is empty.
func (r *Registry) Resolve(name string) (astro.Observer, error) {
	if strings.TrimSpace(name) == "" {
		return r.Default()
	}
	return r.Get(name)
}

func (rec record) toMap() map[string]any {
	m := map[string]any{
		"name":      strings.TrimSpace(rec.Name),
		"latitude":  rec.Latitude,
		"longitude": rec.Longitude,
		"elevation": rec.Elevation,
	}
	if rec.Timezone != "" {
		m["timezone"] = rec.Timezone
	}
	return m
}

func recordFrom(obs astro.Observer) record {
	m := obs.ToMap()
	tz, _ := m["timezone"].(string)
	return record{
		Name:      obs.Name,
		Latitude:  m["latitude"].(float64),
		Longitude: m["longitude"].(float64),
		Elevation: obs.Elevation,
		Timezone:  tz,
	}
}
