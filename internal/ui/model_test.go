package ui

import (
	"image/color"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/prun/internal/candidates"
	"github.com/oakwood-commons/prun/internal/session"
	"github.com/oakwood-commons/prun/pkg/settings"
)

func testMenu() settings.Menu {
	return settings.Menu{
		Rows:                  3,
		Padding:               1,
		LineSpacing:           0,
		BorderSize:            1,
		Width:                 20,
		Display:               settings.NoDisplay,
		FontSize:              16,
		FontColor:             color.RGBA{0xcd, 0xd6, 0xf4, 0xff},
		FontColorActive:       color.RGBA{0x1e, 0x1e, 0x2e, 0xff},
		BackgroundColor:       color.RGBA{0x1e, 0x1e, 0x2e, 0xff},
		BackgroundColorActive: color.RGBA{0x89, 0xb4, 0xfa, 0xff},
		BorderColor:           color.RGBA{0x58, 0x5b, 0x70, 0xff},
		FrameInterval:         8 * time.Millisecond,
	}
}

func newTestModel(names ...string) *Model {
	m := NewModel(testMenu(), candidates.New(names), logr.Discard())
	m.NoColor = true
	return m
}

func press(m *Model, msgs ...tea.KeyPressMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func typeText(m *Model, s string) {
	for _, r := range s {
		press(m, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModelTypingFilters(t *testing.T) {
	m := newTestModel("htop", "vim", "vi", "git")

	typeText(m, "vi")

	st := m.State()
	assert.Equal(t, "vi", st.Query)
	assert.Equal(t, []string{"vi", "vim"}, st.Filtered)
	assert.False(t, m.Done())
}

func TestModelConfirm(t *testing.T) {
	m := newTestModel("firefox", "foot", "fzf")
	typeText(m, "f")
	press(m, tea.KeyPressMsg{Code: tea.KeyDown})

	cmd := press(m, tea.KeyPressMsg{Code: tea.KeyEnter})

	assert.True(t, isQuit(t, cmd))
	text, ok := m.Outcome()
	assert.True(t, ok)
	assert.Equal(t, "foot", text)
}

func TestModelConfirmEmptyListKeepsRunning(t *testing.T) {
	m := newTestModel()
	typeText(m, "zzz")

	cmd := press(m, tea.KeyPressMsg{Code: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, m.Done())
	assert.Equal(t, session.Running, m.State().Status)
}

func TestModelCancel(t *testing.T) {
	for _, msg := range []tea.KeyPressMsg{
		{Code: tea.KeyEscape},
		{Code: 'c', Mod: tea.ModCtrl},
	} {
		t.Run(msg.String(), func(t *testing.T) {
			m := newTestModel("vim")
			typeText(m, "v")

			cmd := press(m, msg)

			assert.True(t, isQuit(t, cmd))
			_, ok := m.Outcome()
			assert.False(t, ok)
			assert.Empty(t, m.State().Query)
		})
	}
}

func TestModelIgnoresKeysAfterFinish(t *testing.T) {
	m := newTestModel("vim")
	press(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	require.True(t, m.Done())

	cmd := press(m, tea.KeyPressMsg{Code: 'x', Text: "x"})

	assert.Nil(t, cmd)
	assert.Equal(t, "vim", m.State().Query)
}

func TestModelPaste(t *testing.T) {
	m := newTestModel("firefox", "foot")

	m.Update(tea.PasteMsg{Content: "fire\nfox"})

	assert.Equal(t, "firefox", m.State().Query)
	assert.Equal(t, []string{"firefox"}, m.State().Filtered)
}

func TestModelFocus(t *testing.T) {
	m := newTestModel("vim")
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	caretRow := func() string {
		return strings.Split(m.Frame(), "\n")[2]
	}

	assert.False(t, m.focused)
	m.Update(tea.FocusMsg{})
	assert.True(t, m.focused)
	m.Update(tea.BlurMsg{})
	assert.False(t, m.focused)
	press(m, tea.KeyPressMsg{Code: tea.KeyDown})
	assert.True(t, m.focused)

	m.NoColor = false
	focusedRow := caretRow()
	m.Update(tea.BlurMsg{})
	assert.NotEqual(t, focusedRow, caretRow(), "caret only drawn with focus")
}

func TestModelPlacementWaitsForWindowSize(t *testing.T) {
	menu := testMenu()
	menu.Display = 0
	m := NewModel(menu, candidates.New([]string{"vim"}), logr.Discard())

	assert.True(t, m.pos.Default)

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	w, h := m.WindowSize()
	assert.False(t, m.pos.Default)
	assert.Equal(t, (80-w)/2, m.pos.X)
	assert.Equal(t, (24-h)/2, m.pos.Y)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, (100-w)/2, m.pos.X, "placement follows resizes")
}

func TestModelPlacementInvalidDisplay(t *testing.T) {
	menu := testMenu()
	menu.Display = 3
	m := NewModel(menu, candidates.New([]string{"vim"}), logr.Discard())

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.True(t, m.pos.Default)
}

func TestModelHandoffOnConfirm(t *testing.T) {
	menu := testMenu()
	menu.Display = 0
	m := NewModel(menu, candidates.New([]string{"vim"}), logr.Discard())
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	press(m, tea.KeyPressMsg{Code: tea.KeyEnter})

	assert.True(t, m.handedOff)
	assert.True(t, m.hidden)
	assert.Equal(t, 0, m.pos.X)
	assert.Equal(t, 0, m.pos.Y)
	assert.Empty(t, m.Screen())
}

func TestModelNoHandoff(t *testing.T) {
	tests := []struct {
		name    string
		display int
		sized   bool
		key     tea.KeyPressMsg
	}{
		{name: "cancelled", display: 0, sized: true, key: tea.KeyPressMsg{Code: tea.KeyEscape}},
		{name: "no target", display: settings.NoDisplay, sized: true, key: tea.KeyPressMsg{Code: tea.KeyEnter}},
		{name: "displays not ready", display: 0, key: tea.KeyPressMsg{Code: tea.KeyEnter}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			menu := testMenu()
			menu.Display = tt.display
			m := NewModel(menu, candidates.New([]string{"vim"}), logr.Discard())
			if tt.sized {
				m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
			}

			press(m, tt.key)

			assert.True(t, m.Done())
			assert.False(t, m.handedOff)
			assert.False(t, m.hidden)
		})
	}
}

func TestModelFrameSize(t *testing.T) {
	m := newTestModel("a", "b", "c", "d", "e")

	lines := strings.Split(m.Frame(), "\n")
	w, h := m.WindowSize()

	assert.Equal(t, 20, w)
	assert.Equal(t, 2+2+4, h)
	require.Len(t, lines, h)
	for _, l := range lines {
		assert.Len(t, l, w)
	}
}

func TestModelScreenCentered(t *testing.T) {
	m := newTestModel("vim")
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})

	lines := strings.Split(m.Screen(), "\n")

	assert.Len(t, lines, 12)
}

func TestModelView(t *testing.T) {
	m := newTestModel("vim")

	v := m.View()

	assert.True(t, v.AltScreen)
	assert.True(t, v.ReportFocus)
	assert.Equal(t, settings.CliBinaryName, v.WindowTitle)
}

func TestFPS(t *testing.T) {
	assert.Equal(t, 120, FPS(0))
	assert.Equal(t, 120, FPS(8*time.Millisecond))
	assert.Equal(t, 60, FPS(time.Second/60))
	assert.Equal(t, 1, FPS(2*time.Second))
}

func TestTerminalDisplays(t *testing.T) {
	var d terminalDisplays

	_, err := d.NumDisplays()
	assert.Error(t, err)
	_, err = d.DisplayBounds(0)
	assert.Error(t, err)

	d.resize(120, 40)
	n, err := d.NumDisplays()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	b, err := d.DisplayBounds(0)
	require.NoError(t, err)
	assert.Equal(t, 120, b.W)
	assert.Equal(t, 40, b.H)
	_, err = d.DisplayBounds(1)
	assert.Error(t, err)
}
