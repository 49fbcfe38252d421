// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/starward/internal/state"
	"github.com/litescript/starward/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewDashboard ViewMode = iota
	ViewBodyDetail
	ViewSky
	ViewOrbits
	viewCount
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// DataUpdateMsg signals a freshly computed sky is available.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals a computation error.
	ErrorMsg struct {
		Error error
	}

	// DashboardOpenBodyMsg requests opening the detail view for a body.
	DashboardOpenBodyMsg struct {
		Body string
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	state *state.Manager

	viewMode ViewMode
	width    int
	height   int
	ready    bool
	animTick int

	dashboard DashboardModel
	detail    BodyDetailModel
	skyView   SkyViewModel
	orbits    OrbitModel

	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(stateMgr *state.Manager) Model {
	return Model{
		state:     stateMgr,
		viewMode:  ViewDashboard,
		dashboard: NewDashboardModel(),
		detail:    NewBodyDetailModel(),
		skyView:   NewSkyViewModel(),
		orbits:    NewOrbitModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), animTickCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1", "d":
			m.viewMode = ViewDashboard
		case "2", "b":
			m.viewMode = ViewBodyDetail
		case "3", "s":
			if m.viewMode != ViewSky {
				m.skyView = m.skyView.Focus(m.dashboard.SelectedBody())
			}
			m.viewMode = ViewSky
		case "4", "o":
			m.viewMode = ViewOrbits
		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount
		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Header takes 4 lines, footer 2
		contentHeight := msg.Height - 6
		m.dashboard = m.dashboard.SetSize(msg.Width, contentHeight)
		m.detail = m.detail.SetSize(msg.Width, contentHeight)
		m.skyView = m.skyView.SetSize(msg.Width, contentHeight)
		m.orbits = m.orbits.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		if m.state != nil {
			m.snapshot = m.state.Snapshot()
		}

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++
		m.detail = m.detail.SetAnimTick(m.animTick)

	case DataUpdateMsg:
		m.snapshot = msg.Snapshot
		m.dashboard = m.dashboard.UpdateData(m.snapshot)
		m.detail = m.detail.UpdateData(m.snapshot, m.state)
		m.skyView = m.skyView.UpdateData(m.snapshot)
		m.orbits = m.orbits.UpdateData(m.snapshot)

	case DashboardOpenBodyMsg:
		m.detail = m.detail.Select(msg.Body)
		m.viewMode = ViewBodyDetail

	case ErrorMsg:
		m.dashboard = m.dashboard.SetError(msg.Error)

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ViewBodyDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewSky:
		m.skyView, cmd = m.skyView.Update(msg)
	case ViewOrbits:
		m.orbits, cmd = m.orbits.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewDashboard:
		content = m.dashboard.View()
	case ViewBodyDetail:
		content = m.detail.View()
	case ViewSky:
		content = m.skyView.View()
	case ViewOrbits:
		content = m.orbits.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	return m.renderTitle() + m.renderTabs() + "\n"
}

func (m Model) renderTitle() string {
	title := "✦ S T A R W A R D ✦"

	var b strings.Builder
	b.WriteString("\n  ")
	runes := []rune(title)
	for col, r := range runes {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(gradientColor(col, len(runes))))
		b.WriteString(style.Render(string(r)))
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  v%s", version.Version)))
	if sky := m.snapshot.Sky; sky != nil {
		b.WriteString(muted.Render("  ·  " + sky.Observer.String()))
	}
	b.WriteString("\n")
	return b.String()
}

// gradientColor returns a hex color for a column of the title gradient:
// blue, purple, magenta, pink.
func gradientColor(col, width int) string {
	x := 0.0
	if width > 1 {
		x = float64(col) / float64(width-1)
	}

	var r, g, b float64
	switch {
	case x < 0.33:
		t := x / 0.33
		r, g, b = 59+t*(139-59), 130+t*(92-130), 246
	case x < 0.66:
		t := (x - 0.33) / 0.33
		r, g, b = 139+t*(217-139), 92+t*(70-92), 246+t*(239-246)
	default:
		t := (x - 0.66) / 0.34
		r, g, b = 217+t*(236-217), 70+t*(72-70), 239+t*(153-239)
	}
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r), clampByte(g), clampByte(b))
}

func clampByte(v float64) int {
	return int(min(max(v, 0), 255))
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Sky Now", "[2] Body", "[3] Dome", "[4] Orbits"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case m.snapshot.Sky != nil:
		status = accentStyle.Render(spinner) + dimStyle.Render(" "+m.snapshot.Sky.Time.UTC().Format("15:04:05 UTC"))
		if m.snapshot.ComputeDuration > 0 {
			status += dimStyle.Render(" (" + m.snapshot.ComputeDuration.Round(time.Millisecond).String() + ")")
		}
	default:
		status = accentStyle.Render(spinner) + dimStyle.Render(" Computing sky...")
	}

	var help string
	switch m.viewMode {
	case ViewBodyDetail:
		help = "←/→: body"
	case ViewSky:
		help = "j/k: focus | l: labels | t: stars"
	case ViewOrbits:
		help = "j/k: focus | +/-: zoom | z: scale | l: labels"
	default:
		help = "↑↓: navigate | enter: details | tab: switch view"
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(help+" | q: quit")
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// SendDataUpdate creates a command that sends a data update message.
func SendDataUpdate(snapshot state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return DataUpdateMsg{Snapshot: snapshot}
	}
}

// SendError creates a command that sends an error message.
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err}
	}
}
