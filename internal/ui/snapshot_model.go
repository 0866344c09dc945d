package ui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/prun/internal/candidates"
	"github.com/oakwood-commons/prun/pkg/settings"
)

// SnapshotConfig configures RenderSnapshot.
type SnapshotConfig struct {
	Width     int
	Height    int
	NoColor   bool
	StartKeys []string
	// Unfocused renders the frame as if the terminal had lost focus.
	Unfocused bool
}

// RenderSnapshot renders one screen of the menu after replaying the startup
// keys, without starting a program. The model is returned so callers can
// inspect the outcome.
func RenderSnapshot(menu settings.Menu, set *candidates.Set, cfg SnapshotConfig) (string, *Model) {
	m := NewModel(menu, set, logr.Discard())
	m.NoColor = cfg.NoColor

	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	m.Update(tea.FocusMsg{})
	ApplyStartupKeys(m, cfg.StartKeys)
	if cfg.Unfocused {
		m.Update(tea.BlurMsg{})
	}
	return m.Screen(), m
}
