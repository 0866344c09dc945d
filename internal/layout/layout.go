// Package layout turns menu state into an ordered list of draw instructions.
//
// Geometry is unit-agnostic: the caller supplies Metrics in whatever unit its
// rendering backend uses (terminal cells, pixels).
package layout

import (
	"image/color"

	"github.com/oakwood-commons/prun/internal/viewport"
	"github.com/oakwood-commons/prun/pkg/settings"
)

// Metrics measures text in the backend's units.
type Metrics interface {
	LineHeight() int
	TextWidth(s string) int
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether r covers no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Kind says how an instruction is drawn.
type Kind int

const (
	// Fill paints Rect with Color.
	Fill Kind = iota
	// Text draws Text at Rect.X, Rect.Y in Color, clipped to Rect.W.
	Text
)

// Role tags what an instruction represents.
type Role int

const (
	RoleBackground Role = iota
	RoleBorder
	RolePrompt
	RoleCaret
	RoleRowBand
	RoleRowText
)

var roleNames = [...]string{"background", "border", "prompt", "caret", "row_band", "row_text"}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// Instruction is a single draw step.
type Instruction struct {
	Kind  Kind
	Role  Role
	Rect  Rect
	Color color.Color
	Text  string
	// Row is the index into the filtered list for row instructions, -1 otherwise.
	Row    int
	Active bool
}

// Frame is everything one frame depends on.
type Frame struct {
	Menu      settings.Menu
	Metrics   Metrics
	Query     string
	Filtered  []string
	Selection int
	Window    viewport.Window
	Focused   bool
}

// WindowHeight returns the fixed window height for a menu.
func WindowHeight(m settings.Menu, lineHeight int) int {
	step := lineHeight + m.LineSpacing
	return 2*m.BorderSize + 2*m.Padding + step*(1+m.Rows) - m.LineSpacing
}

// WindowSize returns the window's width and height.
func WindowSize(m settings.Menu, metrics Metrics) (int, int) {
	return m.Width, WindowHeight(m, metrics.LineHeight())
}

// RowY returns the top of the i-th visible row.
func RowY(m settings.Menu, lineHeight, i int) int {
	return m.BorderSize + m.Padding + (lineHeight+m.LineSpacing)*(i+1)
}

// Compute returns the draw instructions for f in paint order.
func Compute(f Frame) []Instruction {
	m := f.Menu
	lh := f.Metrics.LineHeight()
	width, height := m.Width, WindowHeight(m, lh)
	b := m.BorderSize

	textX := b + m.Padding
	textW := max(0, width-b-m.Padding-textX)

	out := make([]Instruction, 0, 8+2*f.Window.Len())
	out = append(out, Instruction{
		Kind: Fill, Role: RoleBackground, Row: -1,
		Rect:  Rect{0, 0, width, height},
		Color: m.BackgroundColor,
	})
	out = append(out, borders(m, width, height)...)

	line := m.Prompt + f.Query
	if line != "" {
		out = append(out, Instruction{
			Kind: Text, Role: RolePrompt, Row: -1,
			Rect:  Rect{textX, textX, textW, lh},
			Color: m.FontColor,
			Text:  line,
		})
	}
	if f.Focused {
		caretX := textX + f.Metrics.TextWidth(line)
		if caretX < textX+textW {
			out = append(out, Instruction{
				Kind: Fill, Role: RoleCaret, Row: -1,
				Rect:  Rect{caretX, textX, CaretWidth(lh), lh},
				Color: m.FontColor,
			})
		}
	}

	bandW := max(0, width-2*b)
	for i := f.Window.Start; i < f.Window.End && i < len(f.Filtered); i++ {
		y := RowY(m, lh, i-f.Window.Start)
		active := i == f.Selection
		fg, bg := m.FontColor, m.BackgroundColor
		if active {
			fg, bg = m.FontColorActive, m.BackgroundColorActive
		}
		out = append(out,
			Instruction{
				Kind: Fill, Role: RoleRowBand, Row: i, Active: active,
				Rect:  Rect{b, y, bandW, lh},
				Color: bg,
			},
			Instruction{
				Kind: Text, Role: RoleRowText, Row: i, Active: active,
				Rect:  Rect{textX, y, textW, lh},
				Color: fg,
				Text:  f.Filtered[i],
			},
		)
	}
	return out
}

// CaretWidth is the caret thickness for a line height.
func CaretWidth(lineHeight int) int {
	return max(1, lineHeight/8)
}

func borders(m settings.Menu, width, height int) []Instruction {
	b := m.BorderSize
	if b <= 0 {
		return nil
	}
	rects := []Rect{
		{0, 0, width, b},
		{0, height - b, width, b},
		{0, b, b, height - 2*b},
		{width - b, b, b, height - 2*b},
	}
	out := make([]Instruction, 0, len(rects))
	for _, r := range rects {
		if r.Empty() {
			continue
		}
		out = append(out, Instruction{Kind: Fill, Role: RoleBorder, Row: -1, Rect: r, Color: m.BorderColor})
	}
	return out
}
