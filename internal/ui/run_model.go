package ui

import (
	"context"
	"errors"
	"io"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/prun/internal/candidates"
	"github.com/oakwood-commons/prun/pkg/settings"
)

// maxFPS matches the renderer's own cap.
const maxFPS = 120

// Result is how a menu run ended.
type Result struct {
	Text      string
	Confirmed bool
	// HandedOff reports that the window was moved to the target display
	// before the program exited.
	HandedOff bool
}

// RunOptions configures Run.
type RunOptions struct {
	Menu       settings.Menu
	Candidates *candidates.Set
	NoColor    bool
	StartKeys  []string
	Input      io.Reader
	Output     io.Writer
	Log        logr.Logger
	// ProgramOptions are appended after the defaults.
	ProgramOptions []tea.ProgramOption
}

// Run shows the menu until the user confirms or cancels. Cancelling the
// context ends the run without a selection.
func Run(ctx context.Context, opts RunOptions) (Result, error) {
	m := NewModel(opts.Menu, opts.Candidates, opts.Log)
	m.NoColor = opts.NoColor

	if len(opts.StartKeys) > 0 {
		ApplyStartupKeys(m, opts.StartKeys)
		if m.Done() {
			return resultOf(m), nil
		}
	}

	progOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithFPS(FPS(opts.Menu.FrameInterval)),
	}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	progOpts = append(progOpts, opts.ProgramOptions...)

	start := time.Now()
	final, err := tea.NewProgram(m, progOpts...).Run()
	if fm, ok := final.(*Model); ok && fm != nil {
		m = fm
	}
	opts.Log.V(1).Info("menu closed", "duration", time.Since(start).String())
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		if errors.Is(err, tea.ErrInterrupted) {
			return Result{}, nil
		}
		return Result{}, err
	}
	return resultOf(m), nil
}

func resultOf(m *Model) Result {
	text, ok := m.Outcome()
	return Result{Text: text, Confirmed: ok, HandedOff: m.handedOff}
}

// FPS converts a frame interval into a frame rate for the renderer.
func FPS(interval time.Duration) int {
	if interval <= 0 {
		return maxFPS
	}
	return max(1, min(maxFPS, int(time.Second/interval)))
}
