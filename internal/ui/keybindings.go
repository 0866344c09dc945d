package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/prun/internal/session"
)

// KeyMap binds keys to menu events.
type KeyMap struct {
	Cancel    key.Binding
	Confirm   key.Binding
	Up        key.Binding
	Down      key.Binding
	Complete  key.Binding
	Backspace key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c", "ctrl+g", "ctrl+q"),
			key.WithHelp("esc", "cancel"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "launch selection"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p", "shift+tab"),
			key.WithHelp("↑/ctrl+p", "previous row"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓/ctrl+n", "next row"),
		),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "complete"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h"),
			key.WithHelp("backspace", "delete character"),
		),
	}
}

// Event translates a key press into a menu event. Printable text without a
// ctrl or alt modifier becomes an insert; anything unbound is EventNone.
func (k KeyMap) Event(msg tea.KeyPressMsg) session.Event {
	switch {
	case key.Matches(msg, k.Cancel):
		return session.Cancel
	case key.Matches(msg, k.Confirm):
		return session.Confirm
	case key.Matches(msg, k.Up):
		return session.MoveUp
	case key.Matches(msg, k.Down):
		return session.MoveDown
	case key.Matches(msg, k.Complete):
		return session.Complete
	case key.Matches(msg, k.Backspace):
		return session.Backspace
	}
	if msg.Text != "" && msg.Mod&(tea.ModCtrl|tea.ModAlt) == 0 {
		return session.Insert(msg.Text)
	}
	return session.Event{}
}

// Bindings lists the bindings in help order.
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Confirm, k.Complete, k.Up, k.Down, k.Backspace, k.Cancel}
}

// HelpText renders one "key  description" line per binding.
func (k KeyMap) HelpText() string {
	bindings := k.Bindings()
	width := 0
	for _, b := range bindings {
		width = max(width, len([]rune(b.Help().Key)))
	}
	var sb strings.Builder
	for _, b := range bindings {
		h := b.Help()
		fmt.Fprintf(&sb, "  %-*s  %s\n", width, h.Key, h.Desc)
	}
	return sb.String()
}
