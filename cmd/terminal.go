package cmd

import (
	"context"
	"os"
	"runtime"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

const (
	defaultSnapshotWidth  = 80
	defaultSnapshotHeight = 24
)

// Test seams.
var (
	stdinIsPiped     = func() bool { return !isCharDevice(os.Stdin) }
	stdoutIsPiped    = func() bool { return !isCharDevice(os.Stdout) }
	openTerminalIOFn = openTerminalIO
	termGetSize      = term.GetSize
	newResizeTicker  = func(d time.Duration) resizeTicker { return realResizeTicker{Ticker: time.NewTicker(d)} }
	sendWindowSize   = func(p *tea.Program, msg tea.WindowSizeMsg) { p.Send(msg) }
)

func isCharDevice(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}

type resizeTicker interface {
	C() <-chan time.Time
	Stop()
}

type realResizeTicker struct {
	*time.Ticker
}

func (t realResizeTicker) C() <-chan time.Time { return t.Ticker.C }

// getProgramOptions points the program at the controlling terminal when stdin
// carries candidates or stdout carries the selection. The cleanup func closes
// the devices and stops the resize watcher.
func getProgramOptions(ctx context.Context) ([]tea.ProgramOption, func()) {
	noop := func() {}
	if !stdinIsPiped() && !stdoutIsPiped() {
		return nil, noop
	}

	ttyIn, ttyOut, err := openTerminalIOFn()
	if err != nil {
		if ttyIn != nil {
			_ = ttyIn.Close()
		}
		return nil, noop
	}
	closeAll := func() {
		_ = ttyIn.Close()
		if ttyOut != nil && ttyOut != ttyIn {
			_ = ttyOut.Close()
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	opts := []tea.ProgramOption{tea.WithInput(ttyIn)}
	if ttyOut != nil {
		opts = append(opts, tea.WithOutput(ttyOut), withTTYResizeWatcher(ctx, ttyOut))
	}
	return opts, func() {
		cancel()
		closeAll()
	}
}

func openTerminalIO() (*os.File, *os.File, error) {
	in, out := terminalDeviceNames(runtime.GOOS)

	input, err := os.OpenFile(in, os.O_RDWR, 0)
	if err != nil {
		return nil, nil, err
	}
	if out == "" || out == in {
		return input, input, nil
	}

	output, err := os.OpenFile(out, os.O_RDWR, 0)
	if err != nil {
		return input, nil, err
	}
	return input, output, nil
}

func terminalDeviceNames(goos string) (input string, output string) {
	if goos == "windows" {
		return "CONIN$", "CONOUT$"
	}
	return "/dev/tty", "/dev/tty"
}

// withTTYResizeWatcher polls the terminal size, since SIGWINCH is not
// delivered for a device the program opened itself on every platform.
func withTTYResizeWatcher(ctx context.Context, out *os.File) tea.ProgramOption {
	return func(p *tea.Program) {
		if ctx == nil || out == nil {
			return
		}

		go func() {
			t := newResizeTicker(250 * time.Millisecond)
			defer t.Stop()

			lastW, lastH := 0, 0
			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C():
					w, h, err := termGetSize(int(out.Fd()))
					if err != nil {
						continue
					}
					if w == lastW && h == lastH {
						continue
					}
					lastW, lastH = w, h
					sendWindowSize(p, tea.WindowSizeMsg{Width: w, Height: h})
				}
			}
		}()
	}
}

type snapshotSize struct {
	Width  int
	Height int
}

// resolveSnapshotSize prefers the flags, then the detected terminal, then
// 80x24.
func resolveSnapshotSize(flagWidth, flagHeight int) snapshotSize {
	width, height := flagWidth, flagHeight
	if width <= 0 || height <= 0 {
		w, h := detectTerminalSize()
		if width <= 0 {
			width = w
		}
		if height <= 0 {
			height = h
		}
	}
	if width <= 0 {
		width = defaultSnapshotWidth
	}
	if height <= 0 {
		height = defaultSnapshotHeight
	}
	return snapshotSize{Width: width, Height: height}
}

func detectTerminalSize() (int, int) {
	for _, f := range []*os.File{os.Stdout, os.Stderr, os.Stdin} {
		if w, h, err := termGetSize(int(f.Fd())); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	w, _ := strconv.Atoi(os.Getenv("COLUMNS"))
	h, _ := strconv.Atoi(os.Getenv("LINES"))
	return w, h
}
