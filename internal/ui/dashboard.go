package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/output"
	"github.com/litescript/starward/internal/state"
)

// Styles for the dashboard
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	belowRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// trackWidth is the sparkline width in the body table.
const trackWidth = 24

// DashboardModel lists every tracked body with its current position.
type DashboardModel struct {
	width    int
	height   int
	cursor   int
	snapshot state.Snapshot
	lastErr  error
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel() DashboardModel {
	return DashboardModel{}
}

// Init implements the Bubble Tea model interface.
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the viewport size.
func (m DashboardModel) SetSize(width, height int) DashboardModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m DashboardModel) UpdateData(snapshot state.Snapshot) DashboardModel {
	m.snapshot = snapshot
	m.lastErr = snapshot.LastError
	if n := m.bodyCount(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	return m
}

// SetError sets the last error for display.
func (m DashboardModel) SetError(err error) DashboardModel {
	m.lastErr = err
	return m
}

func (m DashboardModel) bodyCount() int {
	if m.snapshot.Sky == nil {
		return 0
	}
	return len(m.snapshot.Sky.Bodies)
}

// Update handles messages.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		n := m.bodyCount()
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < n-1 {
				m.cursor++
			}
		case "home":
			m.cursor = 0
		case "end":
			if n > 0 {
				m.cursor = n - 1
			}
		case "enter":
			if name := m.SelectedBody(); name != "" {
				return m, func() tea.Msg { return DashboardOpenBodyMsg{Body: name} }
			}
		}
	}
	return m, nil
}

// SelectedBody returns the name of the body under the cursor, or "".
func (m DashboardModel) SelectedBody() string {
	if m.cursor < 0 || m.cursor >= m.bodyCount() {
		return ""
	}
	return m.snapshot.Sky.Bodies[m.cursor].Name
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	var b strings.Builder

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("Error: " + m.lastErr.Error()))
		b.WriteString("\n\n")
	}

	sky := m.snapshot.Sky
	if sky == nil {
		if m.lastErr == nil {
			b.WriteString("Computing sky...\n")
		}
		return b.String()
	}

	b.WriteString(m.renderConditions(sky))
	b.WriteString("\n")
	b.WriteString(m.renderBodyTable(sky))
	if events := m.snapshot.Events; len(events) > 0 {
		b.WriteString("\n")
		b.WriteString(renderEvents(events, 3, localZone(sky.Observer)))
	}
	return b.String()
}

func (m DashboardModel) renderConditions(sky *state.Sky) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Conditions"))
	b.WriteString("\n")

	loc := localZone(sky.Observer)
	b.WriteString(fmt.Sprintf("  Local time  %s\n", sky.Time.In(loc).Format("2006-01-02 15:04:05 MST")))

	night := "day"
	switch alt := sky.SunAltitude.Degrees(); {
	case alt < astro.AstronomicalNight:
		night = "astronomical night"
	case alt < astro.NauticalHorizon:
		night = "astronomical twilight"
	case alt < astro.CivilHorizon:
		night = "nautical twilight"
	case alt < astro.SunHorizon:
		night = "civil twilight"
	}
	b.WriteString(fmt.Sprintf("  Sun         %+.1f° (%s)\n", sky.SunAltitude.Degrees(), night))
	b.WriteString(fmt.Sprintf("  Moon        %s, %.0f%% lit, %.1f d\n",
		sky.Moon.Phase, sky.Moon.PercentIlluminated, sky.Moon.AgeDays))
	return b.String()
}

func (m DashboardModel) renderBodyTable(sky *state.Sky) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Bodies"))
	b.WriteString("\n")

	header := fmt.Sprintf("%-8s %7s %6s %-10s %-10s %5s %-5s %-5s %s",
		"Body", "Alt", "Az", "RA", "Dec", "Mag", "Rise", "Set", "Next 24h")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	loc := localZone(sky.Observer)
	for i, body := range sky.Bodies {
		mag := "  -  "
		if body.HasMagnitude {
			mag = fmt.Sprintf("%+5.1f", body.Magnitude)
		}
		row := fmt.Sprintf("%-8s %+6.1f° %5.1f° %-10s %-10s %5s %-5s %-5s ",
			truncate(body.Name, 8),
			body.Altitude.Degrees(),
			body.Azimuth.Degrees(),
			body.Coord.RA.HMS(0),
			shortDMS(body.Coord.Dec),
			mag,
			clockTime(body.Events.Rise, loc),
			clockTime(body.Events.Set, loc),
		)

		style := rowStyle
		switch {
		case i == m.cursor:
			style = selectedRowStyle
		case body.Altitude.Degrees() <= 0:
			style = belowRowStyle
		}
		b.WriteString(style.Render(row))
		b.WriteString(output.Sparkline(body.Track, trackWidth, true))
		b.WriteString("\n")
	}
	return b.String()
}

// renderEvents lists the last n horizon and twilight events.
func renderEvents(events []state.Event, n int, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Events"))
	b.WriteString("\n")
	if len(events) > n {
		events = events[len(events)-n:]
	}
	for _, e := range events {
		line := fmt.Sprintf("  %s  %-9s", e.Timestamp.In(loc).Format("15:04:05"), e.Type)
		if e.Body != "" {
			line += fmt.Sprintf(" %s at az %.0f°", e.Body, e.Azimuth)
		}
		b.WriteString(dimStyle.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// shortDMS formats an angle as ±DD°MM′.
func shortDMS(a astro.Angle) string {
	c := a.DMSComponents(0)
	sign := "+"
	if c.Sign < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%02d°%02d′", sign, c.Whole, c.Minutes)
}

// clockTime formats an event as local HH:MM, or "--:--" when it does not
// occur.
func clockTime(e astro.Event, loc *time.Location) string {
	if !e.OK {
		return "--:--"
	}
	return e.Time().In(loc).Format("15:04")
}

// localZone returns the observer's zone, or UTC when it cannot be loaded.
func localZone(obs astro.Observer) *time.Location {
	loc, err := obs.Location()
	if err != nil {
		return time.UTC
	}
	return loc
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
