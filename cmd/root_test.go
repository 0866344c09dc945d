package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/prun/pkg/logger"
)

// TestMain points the log file at a directory that outlives every test, since
// the logger is opened once per process.
func TestMain(m *testing.M) {
	stateDir, err := os.MkdirTemp("", "prun-state-*")
	if err != nil {
		panic(err)
	}
	_ = os.Setenv("XDG_STATE_HOME", stateDir)
	code := m.Run()
	logger.Sync()
	_ = os.RemoveAll(stateDir)
	os.Exit(code)
}

func resetRootCmdState() {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	rootCmd.Flags().VisitAll(reset)
	rootCmd.PersistentFlags().VisitAll(reset)
	configCmd.Flags().VisitAll(reset)

	rootCmd.SetArgs(nil)
	stdin = os.Stdin
	stdinIsPiped = func() bool { return false }
	stdoutIsPiped = func() bool { return false }
}

// runCLI executes the root command with an isolated home and config dir and
// returns what it wrote to stdout.
func runCLI(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	resetRootCmdState()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	stdin = strings.NewReader(input)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetRootCmdState()
	})

	err := Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "prun "), "got %q", out)
	assert.Contains(t, out, "commit")
}

func TestRootFlagVersion(t *testing.T) {
	out, err := runCLI(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "prun")
}

func TestRootRejectsArgs(t *testing.T) {
	_, err := runCLI(t, "", "vim")
	require.Error(t, err)
}

func TestStdinPrintConfirmedSelection(t *testing.T) {
	tests := []struct {
		name  string
		input string
		press []string
		want  string
	}{
		{name: "prefix_first", input: "htop\nvim\nvi\ngit\n", press: []string{"vi<CR>"}, want: "vi\n"},
		{name: "move_down", input: "htop\nvim\nvi\ngit\n", press: []string{"vi<Down><CR>"}, want: "vim\n"},
		{name: "complete_then_confirm", input: "zip\n", press: []string{"z<Tab><CR>"}, want: "zip\n"},
		{name: "crlf_input", input: "alpha\r\nbeta\r\n", press: []string{"be<CR>"}, want: "beta\n"},
		{name: "cancel_prints_nothing", input: "htop\nvim\n", press: []string{"v<Esc>"}, want: ""},
		{name: "confirm_empty_list_stays_open_then_cancel", input: "", press: []string{"<CR><Esc>"}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := []string{"--stdin", "--print", "--no-color"}
			for _, p := range tt.press {
				args = append(args, "--press", p)
			}
			out, err := runCLI(t, tt.input, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestScanPrintsExecutableFromExtraPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zzprunprobe"), []byte("#!/bin/sh\n"), 0o755))
	t.Setenv("PATH", "")

	out, err := runCLI(t, "", "--print", "--path", dir, "--press", "zzprunprobe<CR>")
	require.NoError(t, err)
	assert.Equal(t, "zzprunprobe\n", out)
}

func TestSnapshotFiltersCandidates(t *testing.T) {
	out, err := runCLI(t, "htop\nvim\nvi\ngit\n",
		"--stdin", "--snapshot", "--no-color",
		"--press", "vi",
		"--term-width", "60", "--term-height", "16",
		"--prompt", "run: ",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "run: vi")
	assert.Contains(t, out, "vim")
	assert.NotContains(t, out, "htop")
	assert.NotContains(t, out, "git")
}

func TestSnapshotRowsFlagLimitsVisibleRows(t *testing.T) {
	out, err := runCLI(t, "a1\na2\na3\na4\na5\n",
		"--stdin", "--snapshot", "--no-color",
		"--rows", "2",
		"--term-width", "60", "--term-height", "16",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "a1")
	assert.Contains(t, out, "a2")
	assert.NotContains(t, out, "a3")
}

func TestInvalidFlagValueFailsBeforeMenu(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad_color", args: []string{"--font-color", "#zzzzzz"}},
		{name: "zero_rows", args: []string{"--rows", "0"}},
		{name: "missing_font", args: []string{"--font", "no-such-font-prun"}},
		{name: "unknown_geometry", args: []string{"--geometry", "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--stdin", "--print", "--press", "<CR>"}, tt.args...)
			out, err := runCLI(t, "vim\n", args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "load config")
			assert.Empty(t, out)
		})
	}
}

func TestConfigCommand(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		out, err := runCLI(t, "", "config")
		require.NoError(t, err)
		assert.Contains(t, out, "rows: 9")
		assert.Contains(t, out, "geometry: terminal")
	})

	t.Run("toml", func(t *testing.T) {
		out, err := runCLI(t, "", "config", "-o", "toml")
		require.NoError(t, err)
		assert.Contains(t, out, "rows = 9")
		assert.Contains(t, out, "[menu]")
	})

	t.Run("bad_format", func(t *testing.T) {
		_, err := runCLI(t, "", "config", "-o", "json")
		require.Error(t, err)
	})

	t.Run("explicit_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.toml")
		require.NoError(t, os.WriteFile(path, []byte("[menu]\nrows = 4\n"), 0o600))
		out, err := runCLI(t, "", "config", "--config-file", path)
		require.NoError(t, err)
		assert.Contains(t, out, "rows: 4")
	})

	t.Run("default_ignores_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("menu:\n  rows: 4\n"), 0o600))
		out, err := runCLI(t, "", "config", "--default", "--config-file", path)
		require.NoError(t, err)
		assert.Contains(t, out, "rows: 9")
	})
}

func TestReadLines(t *testing.T) {
	got, err := readLines(strings.NewReader("one\r\ntwo\n\nthree"))
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "", "three"}, got)
}
