package ui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/oakwood-commons/prun/internal/session"
)

func TestKeyMapEvent(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyPressMsg
		want session.Event
	}{
		{name: "escape", msg: tea.KeyPressMsg{Code: tea.KeyEscape}, want: session.Cancel},
		{name: "ctrl+c", msg: tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}, want: session.Cancel},
		{name: "ctrl+q", msg: tea.KeyPressMsg{Code: 'q', Mod: tea.ModCtrl}, want: session.Cancel},
		{name: "enter", msg: tea.KeyPressMsg{Code: tea.KeyEnter}, want: session.Confirm},
		{name: "up", msg: tea.KeyPressMsg{Code: tea.KeyUp}, want: session.MoveUp},
		{name: "ctrl+p", msg: tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl}, want: session.MoveUp},
		{name: "shift+tab", msg: tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}, want: session.MoveUp},
		{name: "down", msg: tea.KeyPressMsg{Code: tea.KeyDown}, want: session.MoveDown},
		{name: "ctrl+n", msg: tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}, want: session.MoveDown},
		{name: "tab", msg: tea.KeyPressMsg{Code: tea.KeyTab}, want: session.Complete},
		{name: "backspace", msg: tea.KeyPressMsg{Code: tea.KeyBackspace}, want: session.Backspace},
		{name: "letter", msg: tea.KeyPressMsg{Code: 'q', Text: "q"}, want: session.Insert("q")},
		{name: "shifted letter", msg: tea.KeyPressMsg{Code: 'q', Text: "Q", Mod: tea.ModShift}, want: session.Insert("Q")},
		{name: "space", msg: tea.KeyPressMsg{Code: ' ', Text: " "}, want: session.Insert(" ")},
		{name: "unicode", msg: tea.KeyPressMsg{Code: 'é', Text: "é"}, want: session.Insert("é")},
		{name: "alt letter", msg: tea.KeyPressMsg{Code: 'x', Text: "x", Mod: tea.ModAlt}, want: session.Event{}},
		{name: "unbound ctrl", msg: tea.KeyPressMsg{Code: 'z', Mod: tea.ModCtrl}, want: session.Event{}},
		{name: "left arrow", msg: tea.KeyPressMsg{Code: tea.KeyLeft}, want: session.Event{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, km.Event(tt.msg))
		})
	}
}

func TestKeyMapHelpText(t *testing.T) {
	help := DefaultKeyMap().HelpText()

	assert.Contains(t, help, "enter")
	assert.Contains(t, help, "launch selection")
	assert.Contains(t, help, "tab")
	assert.Contains(t, help, "complete")
	assert.Len(t, DefaultKeyMap().Bindings(), 6)
}
