package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/ephem"
	"github.com/litescript/starward/internal/state"
)

const (
	// Field of view in degrees
	fovAz = 120.0
	fovEl = 60.0

	// Camera elevation limits keep the horizon line on screen
	minCamEl = 20.0
	maxCamEl = 60.0

	// Animation
	animDuration  = 400 * time.Millisecond
	animFrameRate = 30 * time.Millisecond

	colorBody        = "#d0c8ff"
	colorBodyFocused = "229" // bright gold
	colorSun         = "220"
	colorMoon        = "252"

	// Star glyphs by magnitude
	glyphStarBright  = '✶' // mag < 1.5
	glyphStarMedium  = '✸' // mag 1.5-3.0
	glyphStarDim     = '·' // mag 3.0-4.0
	glyphStarVeryDim = '·' // mag > 4.0

	colorStarBright  = "255"
	colorStarMedium  = "250"
	colorStarDim     = "244"
	colorStarVeryDim = "240"
)

// LabelMode controls how body labels are displayed.
type LabelMode int

const (
	LabelNone    LabelMode = iota // No labels
	LabelFocused                  // Only the focused body
	LabelAll                      // All bodies
)

// SkyViewModel renders the sky dome seen by the observer.
type SkyViewModel struct {
	width  int
	height int

	// Camera position (center of view)
	camAz float64
	camEl float64

	animating   bool
	animStartAz float64
	animStartEl float64
	animTargAz  float64
	animTargEl  float64
	animStart   time.Time

	focusIdx int
	sky      *state.Sky

	labelMode LabelMode
	showStars bool
	stars     []ephem.Star
}

// NewSkyViewModel creates a new sky view model.
func NewSkyViewModel() SkyViewModel {
	return SkyViewModel{
		camAz:     180,
		camEl:     45,
		labelMode: LabelFocused,
		showStars: true,
		stars:     ephem.Stars(),
	}
}

// SetSize updates the viewport size.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates with new data snapshot.
func (m SkyViewModel) UpdateData(snapshot state.Snapshot) SkyViewModel {
	m.sky = snapshot.Sky
	if m.focusIdx >= m.bodyCount() {
		m.focusIdx = 0
	}
	if !m.animating && m.bodyCount() > 0 {
		m.camAz, m.camEl = m.target(m.focusIdx)
	}
	return m
}

// Focus points the camera at the named body, when tracked.
func (m SkyViewModel) Focus(name string) SkyViewModel {
	for i := 0; i < m.bodyCount(); i++ {
		if m.sky.Bodies[i].Name == name {
			m.focusIdx = i
			m.camAz, m.camEl = m.target(i)
			return m
		}
	}
	return m
}

func (m SkyViewModel) bodyCount() int {
	if m.sky == nil {
		return 0
	}
	return len(m.sky.Bodies)
}

// target returns the camera position that frames body i.
func (m SkyViewModel) target(i int) (az, el float64) {
	b := m.sky.Bodies[i]
	return b.Azimuth.Degrees(), math.Min(math.Max(b.Altitude.Degrees(), minCamEl), maxCamEl)
}

// animTickMsg is sent during animation
type animTickMsg time.Time

func animTick() tea.Cmd {
	return tea.Tick(animFrameRate, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

// Update handles messages.
func (m SkyViewModel) Update(msg tea.Msg) (SkyViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			return m.focusPrev()
		case "down", "j":
			return m.focusNext()
		case "l":
			m.labelMode = (m.labelMode + 1) % 3
		case "t":
			m.showStars = !m.showStars
		}

	case animTickMsg:
		if m.animating {
			return m.updateAnimation()
		}
	}
	return m, nil
}

func (m SkyViewModel) focusNext() (SkyViewModel, tea.Cmd) {
	if m.bodyCount() == 0 {
		return m, nil
	}
	m.focusIdx = (m.focusIdx + 1) % m.bodyCount()
	return m.startAnimation()
}

func (m SkyViewModel) focusPrev() (SkyViewModel, tea.Cmd) {
	if m.bodyCount() == 0 {
		return m, nil
	}
	m.focusIdx--
	if m.focusIdx < 0 {
		m.focusIdx = m.bodyCount() - 1
	}
	return m.startAnimation()
}

func (m SkyViewModel) startAnimation() (SkyViewModel, tea.Cmd) {
	m.animating = true
	m.animStartAz = m.camAz
	m.animStartEl = m.camEl
	m.animTargAz, m.animTargEl = m.target(m.focusIdx)
	m.animStart = time.Now()
	return m, animTick()
}

func (m SkyViewModel) updateAnimation() (SkyViewModel, tea.Cmd) {
	t := float64(time.Since(m.animStart)) / float64(animDuration)
	if t >= 1.0 {
		m.animating = false
		m.camAz = m.animTargAz
		m.camEl = m.animTargEl
		return m, nil
	}

	// Ease-out cubic
	t = 1 - math.Pow(1-t, 3)
	m.camAz = lerpAngle(m.animStartAz, m.animTargAz, t)
	m.camEl = lerp(m.animStartEl, m.animTargEl, t)
	return m, animTick()
}

// View renders the sky view.
func (m SkyViewModel) View() string {
	if m.width < 20 || m.height < 10 {
		return "Sky view requires larger terminal"
	}
	if m.sky == nil {
		return "Computing sky..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSkyCanvas(m.width, m.height-4))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m SkyViewModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorBody))

	var labelStr string
	switch m.labelMode {
	case LabelNone:
		labelStr = dimStyle.Render("Labels: off")
	case LabelFocused:
		labelStr = accentStyle.Render("Labels: focus")
	case LabelAll:
		labelStr = accentStyle.Render("Labels: all")
	}

	compass := dimStyle.Render(fmt.Sprintf("Az:%.0f° Alt:%.0f°", m.camAz, m.camEl))
	return fmt.Sprintf("%s | %s | %s | %s", titleStyle.Render("Sky Dome"), accentStyle.Render(m.sky.Observer.Name), labelStr, compass)
}

func (m SkyViewModel) renderStatus() string {
	if m.focusIdx >= m.bodyCount() {
		return ""
	}
	body := m.sky.Bodies[m.focusIdx]

	line := fmt.Sprintf(">>> %s | Az:%.1f° Alt:%+.1f° | RA %s Dec %s",
		body.Name, body.Azimuth.Degrees(), body.Altitude.Degrees(),
		body.Coord.RA.HMS(0), body.Coord.Dec.DMS(0))
	if body.HasMagnitude {
		line += fmt.Sprintf(" | mag %+.1f", body.Magnitude)
	}

	status := lipgloss.NewStyle().Foreground(lipgloss.Color(colorBodyFocused)).Render(line)
	if body.Altitude.Degrees() <= 0 {
		status += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Render("    below the horizon")
	}
	return status
}

// bodyPos tracks a drawn body for label rendering.
type bodyPos struct {
	x, y       int
	name       string
	isFocused  bool
	labelStart int
	labelEnd   int
}

func (m SkyViewModel) renderSkyCanvas(width, height int) string {
	canvas := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		canvas[y] = make([]rune, width)
		colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			canvas[y][x] = ' '
			colors[y][x] = "236"
		}
	}

	horizonY := height - 2

	if m.showStars {
		for _, star := range m.stars {
			hz := star.Coord().ToHorizontal(m.sky.Observer, m.sky.JD, nil)
			if hz.Alt.Degrees() <= 0 {
				continue
			}
			x, y, visible := m.projectToScreen(hz.Az.Degrees(), hz.Alt.Degrees(), width, height)
			if !visible || x < 0 || x >= width || y < 0 || y >= horizonY {
				continue
			}
			glyph, color := starGlyph(star.Mag)
			canvas[y][x] = glyph
			colors[y][x] = color
		}
	}

	for x := 0; x < width; x++ {
		canvas[horizonY][x] = '─'
		colors[horizonY][x] = "60"
	}
	m.drawCardinal(canvas, colors, width, height, "N", 0)
	m.drawCardinal(canvas, colors, width, height, "E", 90)
	m.drawCardinal(canvas, colors, width, height, "S", 180)
	m.drawCardinal(canvas, colors, width, height, "W", 270)

	var positions []bodyPos
	for i, body := range m.sky.Bodies {
		if body.Altitude.Degrees() <= 0 {
			continue
		}
		x, y, visible := m.projectToScreen(body.Azimuth.Degrees(), body.Altitude.Degrees(), width, height)
		if !visible || x < 0 || x >= width || y < 0 || y >= horizonY {
			continue
		}

		isFocused := i == m.focusIdx
		glyph, color := bodyGlyph(body)
		if isFocused {
			color = colorBodyFocused
		}
		canvas[y][x] = glyph
		colors[y][x] = color
		positions = append(positions, bodyPos{x: x, y: y, name: body.Name, isFocused: isFocused})
	}

	m.renderLabels(canvas, colors, width, horizonY, positions)

	// Observer marker
	if sx, sy := width/2, height-1; sy >= 0 && sx < width {
		canvas[sy][sx] = '▲'
		colors[sy][sx] = "46"
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			b.WriteString(lipgloss.NewStyle().Foreground(colors[y][x]).Render(string(canvas[y][x])))
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderLabels draws body labels on the canvas based on label mode.
// The focused label takes priority in overlapping regions.
func (m SkyViewModel) renderLabels(canvas [][]rune, colors [][]lipgloss.Color, width, horizonY int, positions []bodyPos) {
	if m.labelMode == LabelNone || len(positions) == 0 {
		return
	}

	for i := range positions {
		pos := &positions[i]
		pos.labelStart = pos.x + 2
		n := len([]rune(pos.name))
		if pos.isFocused {
			n += 2
		}
		pos.labelEnd = pos.labelStart + n
	}

	focusedClaims := make(map[int]map[int]bool) // y -> x -> claimed
	for _, pos := range positions {
		if !pos.isFocused {
			continue
		}
		if focusedClaims[pos.y] == nil {
			focusedClaims[pos.y] = make(map[int]bool)
		}
		for x := pos.labelStart; x < pos.labelEnd; x++ {
			focusedClaims[pos.y][x] = true
		}
	}

	for _, pos := range positions {
		if m.labelMode == LabelFocused && !pos.isFocused {
			continue
		}

		labelColor := lipgloss.Color(colorBody)
		labelText := pos.name
		if pos.isFocused {
			labelColor = colorBodyFocused
			labelText = "◄ " + pos.name
		}

		for i, r := range []rune(labelText) {
			x := pos.labelStart + i
			if x < 0 || x >= width || pos.y < 0 || pos.y >= horizonY {
				continue
			}
			if !pos.isFocused && focusedClaims[pos.y][x] {
				continue
			}
			canvas[pos.y][x] = r
			colors[pos.y][x] = labelColor
		}
	}
}

// bodyGlyph returns the symbol and color for a solar system body.
func bodyGlyph(b state.Body) (rune, lipgloss.Color) {
	switch b.Kind {
	case ephem.KindSun:
		return '☉', colorSun
	case ephem.KindMoon:
		return '☾', colorMoon
	case ephem.KindPlanet:
		if p, err := astro.ParsePlanet(b.Name); err == nil {
			return []rune(p.Symbol())[0], colorBody
		}
	}
	return '✦', colorBody
}

// starGlyph returns the glyph and color for a star of the given magnitude.
func starGlyph(mag float64) (rune, lipgloss.Color) {
	switch {
	case mag < 1.5:
		return glyphStarBright, colorStarBright
	case mag < 3.0:
		return glyphStarMedium, colorStarMedium
	case mag < 4.0:
		return glyphStarDim, colorStarDim
	default:
		return glyphStarVeryDim, colorStarVeryDim
	}
}

func (m SkyViewModel) drawCardinal(canvas [][]rune, colors [][]lipgloss.Color, width, height int, label string, az float64) {
	x, _, visible := m.projectToScreen(az, m.camEl, width, height)
	if !visible {
		return
	}
	y := height - 2
	if x >= 0 && x < width && y >= 0 && y < height {
		canvas[y][x] = rune(label[0])
		colors[y][x] = "252"
	}
}

// projectToScreen converts az/alt to screen coordinates relative to the
// camera.
func (m SkyViewModel) projectToScreen(az, el float64, width, height int) (int, int, bool) {
	dAz := normalizeAngle(az - m.camAz)
	dEl := el - m.camEl

	if dAz < -fovAz/2 || dAz > fovAz/2 {
		return 0, 0, false
	}
	if dEl < -fovEl/2 || dEl > fovEl/2 {
		return 0, 0, false
	}

	// X: -fovAz/2..+fovAz/2 -> 0..width
	// Y: +fovEl/2..-fovEl/2 -> 0..horizonY
	horizonY := height - 2
	x := int((dAz + fovAz/2) / fovAz * float64(width))
	y := int((fovEl/2 - dEl) / fovEl * float64(horizonY))
	return x, y, true
}

// normalizeAngle wraps angle to -180..+180 range
func normalizeAngle(a float64) float64 {
	for a > 180 {
		a -= 360
	}
	for a < -180 {
		a += 360
	}
	return a
}

// lerpAngle interpolates between angles, taking shortest path
func lerpAngle(a, b, t float64) float64 {
	return a + normalizeAngle(b-a)*t
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Init returns nil cmd
func (m SkyViewModel) Init() tea.Cmd {
	return nil
}
