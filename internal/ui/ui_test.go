package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/starward/internal/state"
)

func readyModel(t *testing.T) Model {
	t.Helper()
	m := New(state.NewManager(state.DefaultConfig()))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 46})
	next, _ = next.Update(DataUpdateMsg{Snapshot: testSnapshot()})
	return next.(Model)
}

func TestViewSwitching(t *testing.T) {
	m := readyModel(t)
	if m.viewMode != ViewDashboard {
		t.Fatalf("initial view = %v, want dashboard", m.viewMode)
	}

	tests := []struct {
		key  string
		want ViewMode
	}{
		{"2", ViewBodyDetail},
		{"3", ViewSky},
		{"4", ViewOrbits},
		{"1", ViewDashboard},
		{"b", ViewBodyDetail},
		{"s", ViewSky},
		{"o", ViewOrbits},
		{"d", ViewDashboard},
		{"tab", ViewBodyDetail},
	}
	for _, tt := range tests {
		next, _ := m.Update(key(tt.key))
		m = next.(Model)
		if m.viewMode != tt.want {
			t.Errorf("after %q view = %v, want %v", tt.key, m.viewMode, tt.want)
		}
	}
}

func TestTabWraps(t *testing.T) {
	m := readyModel(t)
	for i := 0; i < int(viewCount); i++ {
		next, _ := m.Update(key("tab"))
		m = next.(Model)
	}
	if m.viewMode != ViewDashboard {
		t.Errorf("view after %d tabs = %v, want dashboard", viewCount, m.viewMode)
	}
}

func TestOpenBodyFromDashboard(t *testing.T) {
	m := readyModel(t)

	next, _ := m.Update(key("down"))
	m = next.(Model)
	next, cmd := m.Update(key("enter"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("enter should produce a command")
	}

	next, _ = m.Update(cmd())
	m = next.(Model)
	if m.viewMode != ViewBodyDetail {
		t.Errorf("view = %v, want body detail", m.viewMode)
	}
	if got := m.detail.Selected(); got != "Moon" {
		t.Errorf("detail selected = %q, want Moon", got)
	}
}

func TestSkyFocusFollowsDashboard(t *testing.T) {
	m := readyModel(t)
	for range 2 {
		next, _ := m.Update(key("down"))
		m = next.(Model)
	}
	next, _ := m.Update(key("3"))
	m = next.(Model)
	if m.skyView.focusIdx != 2 {
		t.Errorf("sky focus = %d, want 2 (Mars)", m.skyView.focusIdx)
	}
}

func TestQuit(t *testing.T) {
	m := readyModel(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q should quit, got %T", cmd())
	}
}

func TestErrorMsg(t *testing.T) {
	m := readyModel(t)
	next, _ := m.Update(ErrorMsg{Error: errors.New("boom")})
	m = next.(Model)
	if m.dashboard.lastErr == nil {
		t.Error("dashboard should record the error")
	}
}

func TestModelView(t *testing.T) {
	m := New(nil)
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() before size = %q", got)
	}

	m = readyModel(t)
	view := m.View()
	if !strings.Contains(view, "Test Site") {
		t.Error("header should name the observer")
	}
	if !strings.Contains(view, "q: quit") {
		t.Error("footer should show help")
	}
}

func TestGradientColor(t *testing.T) {
	if got := clampByte(-5); got != 0 {
		t.Errorf("clampByte(-5) = %d", got)
	}
	if got := clampByte(300); got != 255 {
		t.Errorf("clampByte(300) = %d", got)
	}
	if gradientColor(0, 10) == "" {
		t.Error("gradientColor should return a color")
	}
}
