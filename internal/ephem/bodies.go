package ephem

import (
	"fmt"
	"strings"

	"github.com/litescript/starward/internal/astro"
)

// BodyInfo describes a named solar-system body.
type BodyInfo struct {
	Key     string // lowercase lookup key
	Name    string
	Kind    Kind
	Planet  astro.Planet // valid when Kind == KindPlanet
	Aliases []string
}

// Bodies is the canonical list of solar-system bodies in order from the Sun.
var Bodies = []BodyInfo{
	{Key: "sun", Name: "Sun", Kind: KindSun, Aliases: []string{"sol"}},
	{Key: "moon", Name: "Moon", Kind: KindMoon, Aliases: []string{"luna"}},
	{Key: "mercury", Name: "Mercury", Kind: KindPlanet, Planet: astro.Mercury},
	{Key: "venus", Name: "Venus", Kind: KindPlanet, Planet: astro.Venus},
	{Key: "mars", Name: "Mars", Kind: KindPlanet, Planet: astro.Mars},
	{Key: "jupiter", Name: "Jupiter", Kind: KindPlanet, Planet: astro.Jupiter},
	{Key: "saturn", Name: "Saturn", Kind: KindPlanet, Planet: astro.Saturn},
	{Key: "uranus", Name: "Uranus", Kind: KindPlanet, Planet: astro.Uranus},
	{Key: "neptune", Name: "Neptune", Kind: KindPlanet, Planet: astro.Neptune},
}

// providersByName maps normalized names and aliases of every body and
// catalog star to its provider.
var providersByName = func() map[string]Provider {
	m := make(map[string]Provider, len(Bodies)*2+len(defaultStars))
	for _, b := range Bodies {
		p := b.provider()
		m[normalizeName(b.Name)] = p
		for _, alias := range b.Aliases {
			m[normalizeName(alias)] = p
		}
	}
	for _, s := range defaultStars {
		key := normalizeName(s.Name)
		if _, taken := m[key]; taken {
			continue
		}
		m[key] = s.provider()
	}
	return m
}()

func (b BodyInfo) provider() Provider {
	switch b.Kind {
	case KindSun:
		return sunProvider{}
	case KindMoon:
		return moonProvider{}
	default:
		return planetProvider{planet: b.Planet}
	}
}

// normalizeName folds case and collapses separators for matching, so
// "Kaus Australis", "kaus_australis" and "KAUS-AUSTRALIS" agree.
func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	}), " ")
}

// Lookup returns the provider for a named body or catalog star.
func Lookup(name string) (Provider, error) {
	if p, ok := providersByName[normalizeName(name)]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("unknown body %q: %w", name, astro.ErrInvalidArgument)
}

// Resolve accepts a body name or a coordinate string such as
// "05h55m10s +07d24m25s". Coordinates yield a fixed target.
func Resolve(text string) (Provider, error) {
	if p, err := Lookup(text); err == nil {
		return p, nil
	}
	c, err := astro.ParseICRS(text)
	if err != nil {
		return nil, fmt.Errorf("target %q is neither a known body nor a coordinate: %w", text, err)
	}
	return Fixed("", c), nil
}

// Names lists the solar-system bodies in order from the Sun, followed by
// the catalog stars brightest first.
func Names() []string {
	out := make([]string, 0, len(Bodies)+len(defaultStars))
	for _, b := range Bodies {
		out = append(out, b.Name)
	}
	for _, s := range defaultStars {
		out = append(out, s.Name)
	}
	return out
}

// SolarSystem returns providers for the Sun, the Moon and every planet.
func SolarSystem() []Provider {
	out := make([]Provider, 0, len(Bodies))
	for _, b := range Bodies {
		out = append(out, b.provider())
	}
	return out
}
