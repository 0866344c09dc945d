package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/prun/internal/candidates"
	"github.com/oakwood-commons/prun/internal/config"
	"github.com/oakwood-commons/prun/internal/executables"
	"github.com/oakwood-commons/prun/internal/launch"
	"github.com/oakwood-commons/prun/internal/ui"
	"github.com/oakwood-commons/prun/pkg/logger"
	"github.com/oakwood-commons/prun/pkg/settings"
)

// maxLineBytes bounds a single candidate read from stdin.
const maxLineBytes = 1 << 20

var (
	prompt                string
	rows                  int
	display               int
	frameInterval         time.Duration
	fontName              string
	fontSize              int
	lineSpacing           int
	padding               int
	width                 int
	borderSize            int
	geometryProfile       string
	borderColor           string
	fontColor             string
	fontColorActive       string
	backgroundColor       string
	backgroundColorActive string

	configFile     string
	configOutput   string
	configDefault  bool
	debug          bool
	logFile        string
	noColor        bool
	printOnly      bool
	readStdin      bool
	extraPaths     []string
	startKeys      []string
	renderSnapshot bool
	snapshotWidth  int
	snapshotHeight int
)

var rootCtx = context.Background()

// stdin is where --stdin candidates are read from.
var stdin io.Reader = os.Stdin

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName,
	Short: "Fuzzy-filter a list of programs and launch the chosen one",
	Long: "prun lists the executables on your PATH (or the lines of stdin with --stdin),\n" +
		"filters them as you type, and launches the selection detached from the terminal.\n\n" +
		"Keys:\n" + ui.DefaultKeyMap().HelpText(),
	Example: "\n  prun\n  prun -p 'run: ' --rows 12\n  ls ~/bin | prun --stdin --print\n  prun --snapshot --press vi --term-width 60 --term-height 14\n",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		var level int8
		if debug {
			level = -1
		}
		dest := logFile
		if dest == "" {
			dest = logger.DefaultPath()
		}
		lgr := logger.Get(level, dest)
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		rootCtx = logger.WithLogger(context.Background(), lgr)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMenu(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print prun version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
		return err
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the merged configuration",
	Long: "Print the embedded defaults merged with the user config file.\n" +
		"The output can be saved as a starting point for ~/.config/prun/config.yaml.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfig(cmd.OutOrStdout())
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)",
		settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
}

// runParams collects the per-run options from the flags.
func runParams() *settings.Run {
	params := settings.NewCliParams()
	if debug {
		params.MinLogLevel = -1
	}
	params.LogFile = logFile
	params.ConfigFile = resolveConfigPath(configFile)
	params.PrintOnly = printOnly
	params.NoColor = noColor
	if readStdin {
		params.Source = settings.SourceStdin
	}
	return params
}

func runMenu(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	params := runParams()
	ctx = settings.IntoContext(ctx, params)
	lgr := *logger.FromContext(ctx)

	menu, err := loadMenu(params.ConfigFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	names, err := loadCandidates(ctx, lgr, params)
	if err != nil {
		return err
	}
	set := candidates.New(names)
	lgr.V(1).Info("candidates loaded", "count", set.Len(), "config", params.ConfigFile)

	if renderSnapshot {
		size := resolveSnapshotSize(snapshotWidth, snapshotHeight)
		screen, _ := ui.RenderSnapshot(menu, set, ui.SnapshotConfig{
			Width:     size.Width,
			Height:    size.Height,
			NoColor:   params.NoColor,
			StartKeys: startKeys,
		})
		_, err := fmt.Fprintln(cmd.OutOrStdout(), screen)
		return err
	}

	progOpts, cleanup := getProgramOptions(ctx)
	defer cleanup()

	res, err := ui.Run(ctx, ui.RunOptions{
		Menu:           menu,
		Candidates:     set,
		NoColor:        params.NoColor,
		StartKeys:      startKeys,
		Log:            lgr,
		ProgramOptions: progOpts,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("menu: %w", err)
	}
	if !res.Confirmed {
		lgr.V(1).Info("cancelled")
		return nil
	}
	return deliver(ctx, cmd.OutOrStdout(), res.Text)
}

// deliver prints or launches the confirmed selection.
func deliver(ctx context.Context, w io.Writer, selection string) error {
	params, ok := settings.FromContext(ctx)
	if ok && params.PrintOnly {
		_, err := fmt.Fprintln(w, selection)
		return err
	}
	if _, err := launch.New(*logger.FromContext(ctx)).Launch(ctx, selection); err != nil {
		return fmt.Errorf("launch %q: %w", selection, err)
	}
	return nil
}

func loadCandidates(ctx context.Context, lgr logr.Logger, params *settings.Run) ([]string, error) {
	if params.Source == settings.SourceStdin {
		names, err := readLines(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return names, nil
	}

	dirs := lo.Uniq(append(append([]string{}, extraPaths...), executables.DefaultDirs()...))
	names, err := executables.Scan(ctx, lgr, dirs)
	if err != nil {
		return nil, fmt.Errorf("scan executables: %w", err)
	}
	return names, nil
}

func readLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var out []string
	for sc.Scan() {
		out = append(out, strings.TrimSuffix(sc.Text(), "\r"))
	}
	return out, sc.Err()
}

func runConfig(w io.Writer) error {
	format, err := config.ParseFormat(configOutput)
	if err != nil {
		return err
	}

	var f config.File
	if configDefault {
		f, err = config.Default()
	} else {
		f, err = config.Load(resolveConfigPath(configFile))
	}
	if err != nil {
		return err
	}

	data, err := config.Encode(f, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func init() { //nolint:gochecknoinits
	flags := rootCmd.Flags()
	flags.StringVarP(&prompt, "prompt", "p", "", "text shown before the query")
	flags.IntVarP(&rows, "rows", "r", 0, "number of visible rows")
	flags.IntVarP(&display, "display", "d", settings.NoDisplay, "display index to place the window on, -1 for the default")
	flags.DurationVar(&frameInterval, "frame-interval", 0, "minimum time between frames, e.g. 8ms")
	flags.StringVar(&fontName, "font", "", "font file base name, or a path to a font file")
	flags.IntVar(&fontSize, "font-size", 0, "font size")
	flags.IntVar(&lineSpacing, "line-spacing", 0, "space between rows")
	flags.IntVar(&padding, "padding", 0, "space between the border and the text")
	flags.IntVar(&width, "width", 0, "window width")
	flags.IntVar(&borderSize, "border-size", 0, "border thickness")
	flags.StringVar(&geometryProfile, "geometry", "", "geometry profile from the config file (terminal, pixel)")
	flags.StringVar(&borderColor, "border-color", "", "border color (#rrggbb or ANSI 0-255)")
	flags.StringVar(&fontColor, "font-color", "", "text color")
	flags.StringVar(&fontColorActive, "font-color-active", "", "text color of the selected row")
	flags.StringVar(&backgroundColor, "background-color", "", "background color")
	flags.StringVar(&backgroundColorActive, "background-color-active", "", "background color of the selected row")

	flags.BoolVar(&noColor, "no-color", false, "render without colors")
	flags.BoolVar(&printOnly, "print", false, "print the selection to stdout instead of launching it")
	flags.BoolVar(&readStdin, "stdin", false, "read candidates from stdin, one per line")
	flags.StringArrayVar(&extraPaths, "path", nil, "extra directory to scan for executables (repeatable)")
	flags.StringArrayVar(&startKeys, "press", nil, "keys to replay before showing the menu, e.g. 'vi<Tab>' (repeatable)")
	flags.BoolVar(&renderSnapshot, "snapshot", false, "render one frame to stdout after --press and exit")
	flags.IntVar(&snapshotWidth, "term-width", 0, "snapshot width in columns")
	flags.IntVar(&snapshotHeight, "term-height", 0, "snapshot height in rows")

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&configFile, "config-file", "", "config file (yaml or toml), default ~/.config/prun/config.yaml")
	persistent.BoolVar(&debug, "debug", false, "log at debug level")
	persistent.StringVar(&logFile, "log-file", "", "log destination, a path or '-' for stderr, default "+logger.DefaultPath())

	configCmd.Flags().StringVarP(&configOutput, "output", "o", "yaml", "output format: yaml|toml")
	configCmd.Flags().BoolVar(&configDefault, "default", false, "print the embedded defaults without the user file")

	rootCmd.Version = cliVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}
