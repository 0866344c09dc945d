// Package viewport keeps the highlighted row of a list inside a fixed number
// of visible rows.
package viewport

// Window is the half-open range [Start, End) of visible list indices.
type Window struct {
	Start int
	End   int
}

// Len returns the number of visible rows.
func (w Window) Len() int {
	return w.End - w.Start
}

// Contains reports whether index i is visible.
func (w Window) Contains(i int) bool {
	return i >= w.Start && i < w.End
}

// Recenter returns the rows of a list of length n to show so that selection
// sits as close to the middle of the window as the list bounds allow. The
// window never holds more than rows entries and never extends past the list.
func Recenter(n, rows, selection int) Window {
	if n <= 0 || rows <= 0 {
		return Window{}
	}
	if n <= rows {
		return Window{Start: 0, End: n}
	}
	selection = Clamp(selection, n)
	start := clampInt(selection-rows/2, 0, n-rows)
	return Window{Start: start, End: min(start+rows, n)}
}

// Clamp limits selection to a valid index for a list of length n. An empty
// list always yields 0.
func Clamp(selection, n int) int {
	if n <= 0 {
		return 0
	}
	return clampInt(selection, 0, n-1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
