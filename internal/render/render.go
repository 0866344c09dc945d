// Package render rasterizes layout instructions onto a terminal cell grid.
package render

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/prun/internal/layout"
)

// CellMetrics measures text in terminal cells.
type CellMetrics struct{}

// LineHeight is one cell.
func (CellMetrics) LineHeight() int { return 1 }

// TextWidth is the display width of s in cells.
func (CellMetrics) TextWidth(s string) int { return runewidth.StringWidth(s) }

type cell struct {
	ch string
	fg color.Color
	bg color.Color
	// wide marks the left half of a double-width rune, cont its right half.
	wide bool
	cont bool
}

// Canvas is a fixed-size grid of cells.
type Canvas struct {
	w, h  int
	cells []cell
}

// NewCanvas returns a blank w×h canvas.
func NewCanvas(w, h int) *Canvas {
	w, h = max(0, w), max(0, h)
	c := &Canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i].ch = " "
	}
	return c
}

func (c *Canvas) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return nil
	}
	return &c.cells[y*c.w+x]
}

// release turns any wide rune overlapping (x, y) back into blanks so the
// cell can be reused on its own.
func (c *Canvas) release(x, y int) {
	cur := c.at(x, y)
	if cur == nil {
		return
	}
	switch {
	case cur.wide:
		if right := c.at(x+1, y); right != nil && right.cont {
			right.ch, right.cont = " ", false
		}
	case cur.cont:
		if left := c.at(x-1, y); left != nil && left.wide {
			left.ch, left.wide = " ", false
		}
	}
	cur.ch, cur.wide, cur.cont = " ", false, false
}

// Fill paints r with bg and clears any text under it.
func (c *Canvas) Fill(r layout.Rect, bg color.Color) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			cur := c.at(x, y)
			if cur == nil {
				continue
			}
			c.release(x, y)
			cur.bg = bg
			cur.fg = nil
		}
	}
}

// Text writes s on row r.Y starting at r.X, clipped to r.W cells. Cell
// backgrounds are kept.
func (c *Canvas) Text(r layout.Rect, s string, fg color.Color) {
	if r.H <= 0 {
		return
	}
	x, limit := r.X, r.X+r.W
	for _, ch := range s {
		rw := runewidth.RuneWidth(ch)
		if rw == 0 {
			continue
		}
		if x+rw > limit || x+rw > c.w {
			return
		}
		cur := c.at(x, r.Y)
		if cur == nil {
			x += rw
			continue
		}
		c.release(x, r.Y)
		cur.ch, cur.fg = string(ch), fg
		if rw == 2 {
			c.release(x+1, r.Y)
			right := c.at(x+1, r.Y)
			right.ch, right.cont, right.fg = "", true, fg
			right.bg = cur.bg
			cur.wide = true
		}
		x += rw
	}
}

// Draw applies ins in order.
func (c *Canvas) Draw(ins []layout.Instruction) {
	for _, in := range ins {
		switch in.Kind {
		case layout.Fill:
			c.Fill(in.Rect, in.Color)
		case layout.Text:
			c.Text(in.Rect, in.Text, in.Color)
		}
	}
}

// String renders the canvas as lines joined by newlines. With noColor set the
// output is plain text.
func (c *Canvas) String(noColor bool) string {
	lines := make([]string, c.h)
	for y := range c.h {
		lines[y] = c.line(y, noColor)
	}
	return strings.Join(lines, "\n")
}

func (c *Canvas) line(y int, noColor bool) string {
	row := c.cells[y*c.w : (y+1)*c.w]
	if noColor {
		var sb strings.Builder
		for _, cl := range row {
			sb.WriteString(cl.ch)
		}
		return sb.String()
	}

	var sb strings.Builder
	var run strings.Builder
	start := 0
	flush := func(end int) {
		if run.Len() == 0 {
			return
		}
		st := lipgloss.NewStyle()
		if fg := row[start].fg; fg != nil {
			st = st.Foreground(fg)
		}
		if bg := row[start].bg; bg != nil {
			st = st.Background(bg)
		}
		sb.WriteString(st.Render(run.String()))
		run.Reset()
		start = end
	}
	for x, cl := range row {
		if x > start && !sameStyle(row[start], cl) {
			flush(x)
		}
		run.WriteString(cl.ch)
	}
	flush(len(row))
	return sb.String()
}

func sameStyle(a, b cell) bool {
	return sameColor(a.fg, b.fg) && sameColor(a.bg, b.bg)
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

// Rasterize draws ins on a w×h canvas and returns the rendered text.
func Rasterize(ins []layout.Instruction, w, h int, noColor bool) string {
	c := NewCanvas(w, h)
	c.Draw(ins)
	return c.String(noColor)
}
