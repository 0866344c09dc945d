// Package placement decides where the menu window appears and moves it out of
// the way when a selection is confirmed.
package placement

import (
	"errors"
	"fmt"
)

// ErrDisplaysNotReady is returned by display lookups made before the backend
// has reported its first geometry.
var ErrDisplaysNotReady = errors.New("display information not available yet")

// Bounds is a display's rectangle in the virtual screen.
type Bounds struct {
	X, Y, W, H int
}

// Displays looks up the attached displays.
type Displays interface {
	NumDisplays() (int, error)
	DisplayBounds(index int) (Bounds, error)
}

// Position is where the window goes. When Default is true the backend picks
// the position itself.
type Position struct {
	X, Y    int
	Display int
	Default bool
}

// DefaultPosition leaves placement to the backend.
var DefaultPosition = Position{Display: -1, Default: true}

// Place centers a w×h window on the target display. With no target, or a
// target past the last display, it returns DefaultPosition.
func Place(target int, hasTarget bool, w, h int, displays Displays) (Position, error) {
	if !hasTarget || target < 0 {
		return DefaultPosition, nil
	}
	n, err := displays.NumDisplays()
	if err != nil {
		return DefaultPosition, err
	}
	if target >= n {
		return DefaultPosition, nil
	}
	b, err := displays.DisplayBounds(target)
	if err != nil {
		return DefaultPosition, fmt.Errorf("bounds of display %d: %w", target, err)
	}
	return Position{
		X:       b.X + (b.W-w)/2,
		Y:       b.Y + (b.H-h)/2,
		Display: target,
	}, nil
}

// Window is the part of a backend window that handoff needs.
type Window interface {
	Move(x, y int)
	Hide()
}

// Handoff moves the window to the origin of the target display and hides it.
// It only acts on a confirmed session with a valid target and reports whether
// it did.
func Handoff(win Window, confirmed bool, target int, hasTarget bool, displays Displays) (bool, error) {
	if !confirmed || !hasTarget || target < 0 {
		return false, nil
	}
	n, err := displays.NumDisplays()
	if err != nil {
		return false, err
	}
	if target >= n {
		return false, nil
	}
	b, err := displays.DisplayBounds(target)
	if err != nil {
		return false, fmt.Errorf("bounds of display %d: %w", target, err)
	}
	win.Move(b.X, b.Y)
	win.Hide()
	return true, nil
}
