package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/ephem"
	"github.com/litescript/starward/internal/output"
	"github.com/litescript/starward/internal/state"
)

// SparklineWidth is the fixed width of the altitude sparkline.
const SparklineWidth = 48

// BodyDetailModel shows detailed info for one tracked body.
type BodyDetailModel struct {
	width    int
	height   int
	selected string
	snapshot state.Snapshot
	rate     float64 // altitude change, degrees per minute
	history  int     // stored altitude samples
	animTick int
}

// NewBodyDetailModel creates a new body detail model.
func NewBodyDetailModel() BodyDetailModel {
	return BodyDetailModel{}
}

// SetSize updates the viewport size.
func (m BodyDetailModel) SetSize(width, height int) BodyDetailModel {
	m.width = width
	m.height = height
	return m
}

// SetAnimTick updates the animation tick for shimmer effects.
func (m BodyDetailModel) SetAnimTick(tick int) BodyDetailModel {
	m.animTick = tick
	return m
}

// UpdateData updates with new data snapshot. The manager supplies the
// altitude history of the selected body; it may be nil.
func (m BodyDetailModel) UpdateData(snapshot state.Snapshot, mgr *state.Manager) BodyDetailModel {
	m.snapshot = snapshot
	if m.selected == "" && snapshot.Sky != nil && len(snapshot.Sky.Bodies) > 0 {
		m.selected = snapshot.Sky.Bodies[0].Name
	}
	m.rate, m.history = 0, 0
	if mgr != nil && m.selected != "" {
		m.rate = mgr.AltitudeRate(m.selected)
		if h := mgr.History(m.selected); h != nil {
			m.history = len(h.Altitude)
		}
	}
	return m
}

// Select switches to the named body.
func (m BodyDetailModel) Select(name string) BodyDetailModel {
	if name != m.selected {
		m.selected = name
		m.rate, m.history = 0, 0
	}
	return m
}

// Selected returns the name of the selected body.
func (m BodyDetailModel) Selected() string {
	return m.selected
}

// Update handles messages.
func (m BodyDetailModel) Update(msg tea.Msg) (BodyDetailModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "left", "[", "h":
			m = m.step(-1)
		case "right", "]", "l":
			m = m.step(+1)
		}
	}
	return m, nil
}

func (m BodyDetailModel) step(dir int) BodyDetailModel {
	sky := m.snapshot.Sky
	if sky == nil || len(sky.Bodies) == 0 {
		return m
	}
	idx := 0
	for i, b := range sky.Bodies {
		if b.Name == m.selected {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(sky.Bodies)) % len(sky.Bodies)
	return m.Select(sky.Bodies[idx].Name)
}

// View renders the body detail view.
func (m BodyDetailModel) View() string {
	sky := m.snapshot.Sky
	if sky == nil {
		return "  " + m.renderShimmerText("Computing sky...") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.renderBodySelector(sky))
	b.WriteString("\n\n")

	body, ok := sky.Body(m.selected)
	if !ok {
		b.WriteString("  No body selected. Use ←/→ to select.\n")
		return b.String()
	}

	b.WriteString(m.renderBodyDetails(sky, body))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Horizon"))
	b.WriteString("\n  ")
	b.WriteString(RenderVisibilityPanel(body, sky.Observer))
	if next := nextEvent(body.Events, sky.Time); next != "" {
		b.WriteString("\n  ")
		b.WriteString(dimStyle.Render(next))
	}
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Altitude, next 24 h"))
	b.WriteString("\n  ")
	if len(body.Track) == 0 {
		b.WriteString(m.renderShimmerSparkline("Sampling path..."))
	} else {
		b.WriteString(output.Sparkline(body.Track, SparklineWidth, true))
	}
	b.WriteString("\n\n  ")
	b.WriteString(RenderVisibilityBar(sky.Bodies))
	b.WriteString("\n")
	return b.String()
}

func (m BodyDetailModel) renderBodySelector(sky *state.Sky) string {
	var b strings.Builder

	selectorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("39"))

	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	unselectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Padding(0, 1)

	b.WriteString(selectorStyle.Render("Body: "))
	b.WriteString("← ")
	for _, body := range sky.Bodies {
		if body.Name == m.selected {
			b.WriteString(selectedStyle.Render(body.Name))
		} else {
			b.WriteString(unselectedStyle.Render(body.Name))
		}
		b.WriteString(" ")
	}
	b.WriteString("→")
	return b.String()
}

func (m BodyDetailModel) renderBodyDetails(sky *state.Sky, body state.Body) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Width(16)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	glyph, _ := bodyGlyph(body)
	name := fmt.Sprintf("%c %s", glyph, body.Name)
	b.WriteString(headerStyle.Render(name))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", len([]rune(name))+4))
	b.WriteString("\n\n")

	row("RA:", body.Coord.RA.HMS(1))
	row("Dec:", body.Coord.Dec.DMS(0))
	b.WriteString(labelStyle.Render("Altitude:"))
	b.WriteString(RenderCurrentElevation(body.Altitude))
	b.WriteString(valueStyle.Render(fmt.Sprintf("  (%+.2f°, %s)", body.Altitude.Degrees(), formatRate(m.rate))))
	b.WriteString("\n")
	row("Azimuth:", fmt.Sprintf("%.2f°", body.Azimuth.Degrees()))

	if body.HasMagnitude {
		row("Magnitude:", fmt.Sprintf("%+.2f", body.Magnitude))
	}
	if body.HasPhase {
		row("Illuminated:", fmt.Sprintf("%.1f%%", body.Illumination*100))
	}
	m.renderDistance(&b, labelStyle, valueStyle, sky, body)

	if body.Kind != ephem.KindSun {
		b.WriteString(labelStyle.Render("Sun sep:"))
		b.WriteString(RenderSunSeparation(astro.SunSeparation(body.Coord, sky.JD, nil)))
		b.WriteString("\n")
	}
	if body.Kind != ephem.KindMoon {
		row("Moon sep:", fmt.Sprintf("%.1f°", astro.MoonTargetSeparation(body.Coord, sky.JD, nil).Degrees()))
	}
	if m.history > 0 {
		row("Samples:", fmt.Sprintf("%d", m.history))
	}
	return b.String()
}

// renderDistance adds distance and light time for the Sun, Moon and planets.
func (m BodyDetailModel) renderDistance(b *strings.Builder, labelStyle, valueStyle lipgloss.Style, sky *state.Sky, body state.Body) {
	var au float64
	var diameter string

	switch body.Kind {
	case ephem.KindSun:
		au = astro.SunAt(sky.JD, nil).DistanceAU
	case ephem.KindMoon:
		moon := astro.MoonAt(sky.JD, nil)
		au = astro.KmToAU(moon.DistanceKm)
		diameter = fmt.Sprintf("%.1f′", moon.AngularDiameter.Degrees()*60)
	case ephem.KindPlanet:
		p, err := astro.ParsePlanet(body.Name)
		if err != nil {
			return
		}
		pos, err := astro.PlanetAt(p, sky.JD, nil)
		if err != nil {
			return
		}
		au = pos.Distance
		diameter = fmt.Sprintf("%.1f″", pos.AngularDiameter)
	default:
		return
	}

	b.WriteString(labelStyle.Render("Distance:"))
	b.WriteString(valueStyle.Render(output.FormatDistance(astro.AUToKm(au))))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Light time:"))
	b.WriteString(valueStyle.Render(output.FormatLightTime(astro.LightTime(au))))
	b.WriteString("\n")
	if diameter != "" {
		b.WriteString(labelStyle.Render("Diameter:"))
		b.WriteString(valueStyle.Render(diameter))
		b.WriteString("\n")
	}
}

// formatRate describes the altitude rate in degrees per minute.
func formatRate(rate float64) string {
	switch {
	case rate > 0.001:
		return fmt.Sprintf("rising %.2f°/min", rate)
	case rate < -0.001:
		return fmt.Sprintf("setting %.2f°/min", -rate)
	default:
		return "steady"
	}
}

// nextEvent describes the next rise or set after now.
func nextEvent(ev astro.RiseSetTimes, now time.Time) string {
	var label string
	var at time.Time
	for _, c := range []struct {
		label string
		e     astro.Event
	}{{"Rises", ev.Rise}, {"Sets", ev.Set}} {
		if !c.e.OK || c.e.Time().Before(now) {
			continue
		}
		if at.IsZero() || c.e.Time().Before(at) {
			label, at = c.label, c.e.Time()
		}
	}
	if at.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s in %s", label, formatDuration(at.Sub(now)))
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < 0 {
		return "now"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// renderShimmerSparkline renders a loading animation sparkline.
func (m BodyDetailModel) renderShimmerSparkline(msg string) string {
	var sb strings.Builder

	offset := m.animTick % SparklineWidth
	for i := 0; i < SparklineWidth; i++ {
		dist := (i - offset + SparklineWidth) % SparklineWidth
		gray := 60
		if dist < 8 {
			gray = 60 + dist*8
		}
		color := fmt.Sprintf("#%02x%02x%02x", gray, gray, gray)
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("▄"))
	}

	sb.WriteString(" ")
	sb.WriteString(dimStyle.Render(msg))
	return sb.String()
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m BodyDetailModel) renderShimmerText(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	pos := m.animTick % (len(runes) + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var r8, g8, b8 int
		switch {
		case dist <= 1:
			r8, g8, b8 = 180, 160, 220
		case dist <= 3:
			r8, g8, b8 = 140, 120, 180
		case dist <= 5:
			r8, g8, b8 = 110, 90, 150
		default:
			r8, g8, b8 = 80, 70, 120
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)))
		result.WriteString(style.Render(string(r)))
	}
	return result.String()
}
