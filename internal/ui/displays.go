package ui

import (
	"fmt"

	"github.com/oakwood-commons/prun/internal/placement"
)

// terminalDisplays presents the terminal as a single display. Its size is
// only known once the program has delivered the first window size message.
type terminalDisplays struct {
	width, height int
	ready         bool
}

func (d *terminalDisplays) resize(w, h int) {
	d.width, d.height = w, h
	d.ready = true
}

func (d *terminalDisplays) NumDisplays() (int, error) {
	if !d.ready {
		return 0, placement.ErrDisplaysNotReady
	}
	return 1, nil
}

func (d *terminalDisplays) DisplayBounds(i int) (placement.Bounds, error) {
	if !d.ready {
		return placement.Bounds{}, placement.ErrDisplaysNotReady
	}
	if i != 0 {
		return placement.Bounds{}, fmt.Errorf("display %d out of range", i)
	}
	return placement.Bounds{W: d.width, H: d.height}, nil
}
