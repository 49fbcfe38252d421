package ephem

import (
	"sync"
	"time"

	"github.com/litescript/starward/internal/astro"
)

const (
	// DefaultPathDuration is the default time span for altitude tracks.
	DefaultPathDuration = 24 * time.Hour

	// DefaultPathStep is the default step between path points.
	DefaultPathStep = 10 * time.Minute

	// PathCacheTTL is how long a sampled path is reused before resampling.
	PathCacheTTL = 5 * time.Minute
)

// PathCache memoizes sampled paths per body, so a refreshing display does
// not recompute a day of lunar and planetary positions on every tick.
type PathCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]*cachedPath
}

// cachedPath stores a sampled path and what it was sampled for.
type cachedPath struct {
	path      Path
	observer  astro.Observer
	step      time.Duration
	fetchedAt time.Time
}

// NewPathCache creates a cache whose entries expire after ttl. A zero ttl
// selects PathCacheTTL.
func NewPathCache(ttl time.Duration) *PathCache {
	if ttl <= 0 {
		ttl = PathCacheTTL
	}
	return &PathCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*cachedPath),
	}
}

// Path returns the track of p starting at start and spanning span, reusing
// a cached copy when it is fresh and was sampled for the same observer.
func (c *PathCache) Path(p Provider, obs astro.Observer, start astro.JulianDate, span, step time.Duration) (Path, error) {
	key := normalizeName(p.Name())

	c.mu.RLock()
	cached, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.now().Sub(cached.fetchedAt) < c.ttl && cached.step == step && observerMatch(cached.observer, obs) {
		return cached.path, nil
	}

	end := start.AddDays(span.Hours() / 24)
	path, err := Sample(p, obs, start, end, step)
	if err != nil {
		return Path{}, err
	}

	c.mu.Lock()
	c.entries[key] = &cachedPath{
		path:      path,
		observer:  obs,
		step:      step,
		fetchedAt: c.now(),
	}
	c.mu.Unlock()

	return path, nil
}

// Invalidate drops the cached path for a body.
// Called when the observer or focus changes to force a fresh sample.
func (c *PathCache) Invalidate(name string) {
	c.mu.Lock()
	delete(c.entries, normalizeName(name))
	c.mu.Unlock()
}

// Len returns the number of cached paths.
func (c *PathCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// observerMatch reports whether two observers are close enough to share a
// path (within ~100 m).
func observerMatch(a, b astro.Observer) bool {
	const tol = 0.001 // degrees
	dLat := a.Latitude.Degrees() - b.Latitude.Degrees()
	dLon := a.Longitude.Degrees() - b.Longitude.Degrees()
	return dLat > -tol && dLat < tol && dLon > -tol && dLon < tol
}
