package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/state"
)

// Visibility display colors
const (
	colorVisHigh   = "#7CFC00" // Lawn green - high altitude
	colorVisMedium = "#FFD700" // Gold - medium altitude
	colorVisLow    = "#FF6347" // Tomato - low altitude
	colorVisNone   = "#444444" // Dark gray - below horizon

	// Sun separation colors
	colorSunSafe    = "#7CFC00" // Green - safe (>=20°)
	colorSunCaution = "#FFD700" // Gold - caution (10-20°)
	colorSunWarning = "#FF4500" // Orange-red - warning (<10°)
)

// RenderVisibilityPanel renders the horizon window of one body.
// Format:
//
//	Rise 22:14   Peak 03:02 @ 58°   Set 07:49
func RenderVisibilityPanel(body state.Body, obs astro.Observer) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	tier := astro.GetElevationTier(body.Altitude)
	ev := body.Events

	switch {
	case ev.NeverRises:
		return dimStyle.Render("Never rises")
	case ev.Circumpolar:
		return colorByTier(tier, fmt.Sprintf("Circumpolar, peak %.0f°", ev.TransitAltitude.Degrees()))
	}

	loc := localZone(obs)
	var parts []string
	if ev.Rise.OK {
		parts = append(parts, "Rise "+clockTime(ev.Rise, loc))
	}
	if ev.Transit.OK {
		parts = append(parts, fmt.Sprintf("Peak %s @ %.0f°", clockTime(ev.Transit, loc), ev.TransitAltitude.Degrees()))
	}
	if ev.Set.OK {
		parts = append(parts, "Set "+clockTime(ev.Set, loc))
	}
	if len(parts) == 0 {
		return dimStyle.Render("No events in the next 24 h")
	}
	return colorByTier(tier, strings.Join(parts, "   "))
}

// RenderVisibilityBar renders a compact horizontal bar showing the altitude
// tier of every body.
// Format: Sun ████   Moon ░░░░   Mars ██░░
func RenderVisibilityBar(bodies []state.Body) string {
	if len(bodies) == 0 {
		return ""
	}

	parts := make([]string, 0, len(bodies))
	for _, b := range bodies {
		parts = append(parts, renderBarSegment(b.Name, astro.GetElevationTier(b.Altitude)))
	}
	return strings.Join(parts, "   ")
}

// renderBarSegment renders one body's visibility bar segment.
func renderBarSegment(name string, tier astro.ElevationTier) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(tierToColor(tier)))
	return labelStyle.Render(name+" ") + barStyle.Render(tierToBar(tier))
}

// tierToBar converts elevation tier to a 4-character bar representation.
func tierToBar(tier astro.ElevationTier) string {
	switch tier {
	case astro.ElevationHigh:
		return "████"
	case astro.ElevationMedium:
		return "██░░"
	case astro.ElevationLow:
		return "█░░░"
	default:
		return "░░░░"
	}
}

// tierToColor returns the color for an elevation tier.
func tierToColor(tier astro.ElevationTier) string {
	switch tier {
	case astro.ElevationHigh:
		return colorVisHigh
	case astro.ElevationMedium:
		return colorVisMedium
	case astro.ElevationLow:
		return colorVisLow
	default:
		return colorVisNone
	}
}

// colorByTier applies tier-based coloring to text.
func colorByTier(tier astro.ElevationTier, text string) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(tierToColor(tier)))
	return style.Render(text)
}

// RenderCurrentElevation renders the current altitude with its tier color.
func RenderCurrentElevation(alt astro.Angle) string {
	tier := astro.GetElevationTier(alt)
	if tier == astro.ElevationNone {
		return colorByTier(tier, "Below horizon")
	}
	return colorByTier(tier, fmt.Sprintf("%.0f°", alt.Degrees()))
}

// RenderSunSeparation renders the sun separation angle with appropriate styling.
func RenderSunSeparation(sep astro.Angle) string {
	tier := astro.GetSunSeparationTier(sep)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(sunTierToColor(tier)))

	var status string
	switch tier {
	case astro.SunSepWarning:
		status = " (warning)"
	case astro.SunSepCaution:
		status = " (caution)"
	}
	return style.Render(fmt.Sprintf("%.1f°", sep.Degrees()) + status)
}

// sunTierToColor returns the color for a sun separation tier.
func sunTierToColor(tier astro.SunSeparationTier) string {
	switch tier {
	case astro.SunSepWarning:
		return colorSunWarning
	case astro.SunSepCaution:
		return colorSunCaution
	default:
		return colorSunSafe
	}
}
