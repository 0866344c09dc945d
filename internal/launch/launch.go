// Package launch starts the selected program detached from the menu.
package launch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/go-logr/logr"
)

// ErrEmptyCommand is returned when there is nothing to run.
var ErrEmptyCommand = errors.New("empty command")

// Starter starts a configured command.
type Starter func(cmd *exec.Cmd) error

// Launcher runs programs by name with their standard streams on the null
// device and does not wait for them.
type Launcher struct {
	log   logr.Logger
	start Starter
}

// New returns a Launcher that starts real processes.
func New(log logr.Logger) *Launcher {
	return &Launcher{log: log, start: startDetached}
}

// Command builds the process for name. The name is looked up on PATH by the
// operating system and gets no arguments.
func Command(name string) (*exec.Cmd, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCommand
	}
	cmd := exec.Command(name)
	// A nil stream is connected to the null device.
	cmd.Stdin, cmd.Stdout, cmd.Stderr = nil, nil, nil
	cmd.SysProcAttr = detachedAttrs()
	return cmd, nil
}

// Launch starts name and returns its pid.
func (l *Launcher) Launch(ctx context.Context, name string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	cmd, err := Command(name)
	if err != nil {
		return 0, err
	}
	if err := l.start(cmd); err != nil {
		return 0, fmt.Errorf("starting %s: %w", name, err)
	}
	pid := 0
	if cmd.Process != nil {
		pid = cmd.Process.Pid
		if err := cmd.Process.Release(); err != nil {
			l.log.V(1).Info("release failed", "pid", pid, "error", err.Error())
		}
	}
	l.log.Info("launched", "program", name, "pid", pid)
	return pid, nil
}

func startDetached(cmd *exec.Cmd) error {
	if cmd.Dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cmd.Dir = home
		}
	}
	return cmd.Start()
}
