package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/state"
)

// ScaleMode selects how heliocentric distance maps to screen radius.
type ScaleMode int

const (
	ScaleLog    ScaleMode = iota // log(1+r), whole system visible
	ScaleLinear                  // true proportions, inner planets crowd the Sun
)

// outerRadiusAU is the distance mapped to the edge of the plot at 1x zoom.
const outerRadiusAU = 30.0

// Discrete zoom levels for clean stepping
var zoomLevels = []float64{0.25, 0.5, 0.75, 1.0, 1.5, 2.0, 3.0, 5.0, 10.0}

// orbitBody is one planet in the top-down plot.
type orbitBody struct {
	Name     string
	Symbol   string
	Lon      astro.Angle // heliocentric ecliptic longitude
	Lat      astro.Angle
	Distance float64 // heliocentric, AU
	Orbit    float64 // semi-major axis, AU
	Earth    bool
}

// OrbitModel renders a top-down heliocentric view of the planets.
type OrbitModel struct {
	width  int
	height int
	jd     astro.JulianDate
	bodies []orbitBody
	err    error

	focusIdx  int // -1 = Sun
	zoomLevel int
	scaleMode ScaleMode
	labelMode LabelMode
}

// NewOrbitModel creates a new orbit view model.
func NewOrbitModel() OrbitModel {
	return OrbitModel{
		focusIdx:  -1,
		zoomLevel: 3, // 1.0x
		scaleMode: ScaleLog,
		labelMode: LabelAll,
	}
}

func (m OrbitModel) scale() float64 {
	if m.zoomLevel < 0 || m.zoomLevel >= len(zoomLevels) {
		return 1.0
	}
	return zoomLevels[m.zoomLevel]
}

// SetSize updates the viewport size.
func (m OrbitModel) SetSize(width, height int) OrbitModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData recomputes heliocentric positions for the snapshot instant.
func (m OrbitModel) UpdateData(snapshot state.Snapshot) OrbitModel {
	if snapshot.Sky == nil {
		return m
	}
	m.jd = snapshot.Sky.JD
	m.bodies, m.err = heliocentricBodies(m.jd)
	if m.focusIdx >= len(m.bodies) {
		m.focusIdx = -1
	}
	return m
}

// heliocentricBodies returns the planets and Earth in order from the Sun.
func heliocentricBodies(jd astro.JulianDate) ([]orbitBody, error) {
	var out []orbitBody
	sun := astro.SunAt(jd, nil)
	earth := orbitBody{
		Name:     "Earth",
		Symbol:   "⊕",
		Lon:      sun.Longitude.Add(astro.FromDegrees(180)).Normalize360(),
		Distance: sun.DistanceAU,
		Orbit:    1.0,
		Earth:    true,
	}

	for _, p := range astro.Planets() {
		if p == astro.Mars {
			out = append(out, earth)
		}
		pos, err := astro.PlanetAt(p, jd, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, orbitBody{
			Name:     p.String(),
			Symbol:   p.Symbol(),
			Lon:      pos.HelioLongitude,
			Lat:      pos.HelioLatitude,
			Distance: pos.HelioDistance,
			Orbit:    p.Elements().A,
		})
	}
	return out, nil
}

// Update handles input messages.
func (m OrbitModel) Update(msg tea.Msg) (OrbitModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "]", "right":
			m.focusIdx++
			if m.focusIdx >= len(m.bodies) {
				m.focusIdx = -1
			}
		case "k", "[", "left":
			m.focusIdx--
			if m.focusIdx < -1 {
				m.focusIdx = len(m.bodies) - 1
			}
		case "+", "=":
			if m.zoomLevel < len(zoomLevels)-1 {
				m.zoomLevel++
			}
		case "-":
			if m.zoomLevel > 0 {
				m.zoomLevel--
			}
		case "0":
			m.zoomLevel = 3
		case "z":
			m.scaleMode = (m.scaleMode + 1) % 2
		case "l":
			m.labelMode = (m.labelMode + 1) % 3
		}
	}
	return m, nil
}

// radius maps a heliocentric distance to plot units, 1.0 at outerRadiusAU.
func (m OrbitModel) radius(au float64) float64 {
	var r float64
	switch m.scaleMode {
	case ScaleLinear:
		r = au / outerRadiusAU
	default:
		r = math.Log1p(au) / math.Log1p(outerRadiusAU)
	}
	return r * m.scale()
}

// project converts a heliocentric longitude and distance to a grid cell.
// Terminal cells are about twice as tall as wide, so y is halved.
func (m OrbitModel) project(lon astro.Angle, au float64, w, h int) (int, int) {
	cx, cy := w/2, h/2
	rmax := float64(min(cx, cy*2)) * 0.9
	r := m.radius(au) * rmax
	x := cx + int(math.Round(r*lon.Cos()))
	y := cy - int(math.Round(r*lon.Sin()*0.5))
	return x, y
}

// View renders the orbit view.
func (m OrbitModel) View() string {
	if m.width < 40 || m.height < 10 {
		return "Terminal too small for orbit view"
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if len(m.bodies) == 0 {
		return "Computing orbits..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.buildCanvas(), m.renderHUD())
}

// orbitPos tracks a body's screen position for label rendering.
type orbitPos struct {
	x, y      int
	name      string
	isFocused bool
}

func (m OrbitModel) buildCanvas() string {
	canvasH := max(m.height-3, 5)
	canvasW := m.width

	grid := make([][]rune, canvasH)
	for y := range grid {
		grid[y] = make([]rune, canvasW)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	for _, b := range m.bodies {
		m.drawOrbit(grid, b.Orbit)
	}

	var positions []orbitPos
	for i, b := range m.bodies {
		x, y := m.project(b.Lon, b.Distance, canvasW, canvasH)
		if x < 0 || x >= canvasW || y < 0 || y >= canvasH {
			continue
		}
		grid[y][x] = []rune(b.Symbol)[0]
		positions = append(positions, orbitPos{x: x, y: y, name: b.Name, isFocused: i == m.focusIdx})
	}

	cx, cy := canvasW/2, canvasH/2
	grid[cy][cx] = '☉'
	positions = append(positions, orbitPos{x: cx, y: cy, name: "Sun", isFocused: m.focusIdx == -1})

	m.renderLabels(grid, canvasW, canvasH, positions)
	return m.renderGrid(grid, positions)
}

func (m OrbitModel) drawOrbit(grid [][]rune, au float64) {
	h := len(grid)
	w := len(grid[0])

	steps := 360
	for i := 0; i < steps; i++ {
		lon := astro.FromDegrees(float64(i))
		x, y := m.project(lon, au, w, h)
		if x >= 0 && x < w && y >= 0 && y < h && grid[y][x] == ' ' {
			grid[y][x] = '·'
		}
	}
}

// renderLabels draws body labels on the canvas based on label mode.
func (m OrbitModel) renderLabels(grid [][]rune, width, height int, positions []orbitPos) {
	if m.labelMode == LabelNone {
		return
	}
	for _, pos := range positions {
		if m.labelMode == LabelFocused && !pos.isFocused {
			continue
		}
		if pos.y < 0 || pos.y >= height {
			continue
		}
		text := pos.name
		if pos.isFocused {
			text = "◄ " + pos.name
		}
		for i, r := range []rune(text) {
			x := pos.x + 2 + i
			if x >= width {
				break
			}
			if grid[pos.y][x] == ' ' || grid[pos.y][x] == '·' {
				grid[pos.y][x] = r
			}
		}
	}
}

func (m OrbitModel) renderGrid(grid [][]rune, positions []orbitPos) string {
	orbitStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	sunStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	planetStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	focusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("249"))

	glyphAt := make(map[[2]int]bool, len(positions))
	focusAt := [2]int{-1, -1}
	for _, p := range positions {
		glyphAt[[2]int{p.x, p.y}] = true
		if p.isFocused {
			focusAt = [2]int{p.x, p.y}
		}
	}

	var b strings.Builder
	for y, row := range grid {
		for x, ch := range row {
			switch {
			case ch == ' ':
				b.WriteRune(ch)
			case focusAt == [2]int{x, y}:
				b.WriteString(focusStyle.Render(string(ch)))
			case ch == '☉':
				b.WriteString(sunStyle.Render(string(ch)))
			case glyphAt[[2]int{x, y}]:
				b.WriteString(planetStyle.Render(string(ch)))
			case ch == '·':
				b.WriteString(orbitStyle.Render(string(ch)))
			default:
				b.WriteString(labelStyle.Render(string(ch)))
			}
		}
		b.WriteRune('\n')
	}
	return b.String()
}

func (m OrbitModel) renderHUD() string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	if f := m.FocusedBody(); f != nil {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%s %s", f.Symbol, f.Name)))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Distance:"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.3f AU", f.Distance)))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Ecl Lon:"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.1f°", f.Lon.Degrees())))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Ecl Lat:"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%+.2f°", f.Lat.Degrees())))
	} else {
		b.WriteString(headerStyle.Render("☉ Sun"))
		b.WriteString("  ")
		b.WriteString(dimStyle.Render("(heliocentric, ecliptic J2000)"))
	}
	b.WriteString("\n")

	mode := "Log"
	if m.scaleMode == ScaleLinear {
		mode = "Linear"
	}
	labels := [...]string{LabelNone: "off", LabelFocused: "focus", LabelAll: "all"}[m.labelMode]

	b.WriteString(dimStyle.Render("Mode:"))
	b.WriteString(valueStyle.Render(mode))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Zoom:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.2gx", m.scale())))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Labels:"))
	b.WriteString(valueStyle.Render(labels))
	return b.String()
}

// FocusedBody returns the focused body, or nil for the Sun.
func (m OrbitModel) FocusedBody() *orbitBody {
	if m.focusIdx >= 0 && m.focusIdx < len(m.bodies) {
		return &m.bodies[m.focusIdx]
	}
	return nil
}
