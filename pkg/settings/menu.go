package settings

import (
	"image/color"
	"time"
)

// NoDisplay marks Menu.Display as unset.
const NoDisplay = -1

// Menu is the resolved appearance and behavior of the menu. It is built once
// at startup and passed by value; nothing mutates it afterwards.
type Menu struct {
	FontName string
	// FontPath is the resolved font file, empty when the backend draws with
	// its own font.
	FontPath    string
	FontSize    int
	LineSpacing int
	Padding     int
	BorderSize  int
	Rows        int
	Width       int
	Display     int
	Prompt      string

	BorderColor           color.Color
	FontColor             color.Color
	FontColorActive       color.Color
	BackgroundColor       color.Color
	BackgroundColorActive color.Color

	FrameInterval time.Duration
}

// TargetDisplay returns the configured display index, if any.
func (m Menu) TargetDisplay() (int, bool) {
	if m.Display < 0 {
		return 0, false
	}
	return m.Display, true
}
