// Package logger wires zap behind a logr.Logger and carries it through
// contexts.
//
// The menu owns the terminal while it runs, so log output goes to a file by
// default. Use "-" or "stderr" as the destination to log to standard error.
package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oakwood-commons/prun/pkg/settings"
)

type loggerContextKey struct{}

const (
	RootCommandKey = "root_command"
	SubCommandKey  = "sub_command"
	CommitKey      = "commit"
	VersionKey     = "version"
	BuildTimeKey   = "build_time"
	GoVersionKey   = "go_version"
	TimeStampKey   = "timestamp"
	MessageKey     = "message"
	DurationKey    = "duration"
	ErrorKey       = "error"
)

// Stderr is the destination name that selects standard error.
const Stderr = "stderr"

var (
	once sync.Once

	// globalZapLogger is kept for Sync.
	globalZapLogger  *zap.Logger
	globalLogrLogger *logr.Logger
	closeSink        func()
	setupErr         error

	defaultNoopLogger = logr.Discard()
)

// Get initializes the global logger on first use and returns it. Later calls
// return the same logger and ignore their arguments. dest is a file path,
// "-" or "stderr"; an empty dest discards everything.
//
// If the destination cannot be opened the returned logger discards output and
// the failure is available from SetupError.
func Get(logLevel int8, dest string) *logr.Logger {
	once.Do(func() {
		sink, closer, err := openSink(dest)
		if err != nil {
			setupErr = err
			return
		}
		closeSink = closer

		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderCfg.TimeKey = TimeStampKey
		encoderCfg.MessageKey = MessageKey

		goVersion := "unknown"
		if info, ok := debug.ReadBuildInfo(); ok {
			goVersion = info.GoVersion
		}
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			sink,
			zap.NewAtomicLevelAt(zapcore.Level(logLevel)),
		).With([]zapcore.Field{
			zap.String(CommitKey, settings.VersionInformation.Commit),
			zap.String(VersionKey, settings.VersionInformation.BuildVersion),
			zap.String(BuildTimeKey, settings.VersionInformation.BuildTime),
			zap.String(GoVersionKey, goVersion),
		})

		globalZapLogger = zap.New(core,
			zap.AddCaller(),
			zap.AddStacktrace(zap.ErrorLevel),
			zap.WithFatalHook(zapcore.WriteThenPanic),
		)
		gl := zapr.NewLogger(globalZapLogger)
		globalLogrLogger = &gl
	})
	if globalLogrLogger == nil {
		return &defaultNoopLogger
	}
	return globalLogrLogger
}

// SetupError reports why Get fell back to a no-op logger.
func SetupError() error {
	return setupErr
}

func openSink(dest string) (zapcore.WriteSyncer, func(), error) {
	switch dest {
	case "":
		return zapcore.AddSync(discard{}), func() {}, nil
	case "-", Stderr:
		return zapcore.Lock(os.Stderr), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	ws, closer, err := zap.Open(dest)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", dest, err)
	}
	return ws, closer, nil
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// DefaultPath returns the log file used when none is configured:
// $XDG_STATE_HOME/prun/prun.log, falling back to ~/.local/state.
func DefaultPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, settings.CliBinaryName, settings.CliBinaryName+".log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", settings.CliBinaryName, settings.CliBinaryName+".log")
}

// WithLogger returns ctx carrying log. A context that already holds the same
// logger is returned unchanged.
func WithLogger(ctx context.Context, log *logr.Logger) context.Context {
	if lp, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok && lp == log {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext returns the logger attached to ctx, else the global logger,
// else a no-op logger.
func FromContext(ctx context.Context) *logr.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
		return log
	}
	if globalLogrLogger != nil {
		return globalLogrLogger
	}
	return &defaultNoopLogger
}

// Sync flushes buffered entries and closes the log file. Call it before exit.
func Sync() {
	if globalZapLogger != nil {
		if err := globalZapLogger.Sync(); err != nil && !isIgnorableSyncError(err) {
			fmt.Fprintf(os.Stderr, "WARNING: failed to sync zap logger: %v\n", err)
		}
	}
	if closeSink != nil {
		closeSink()
		closeSink = nil
	}
}

// isIgnorableSyncError returns true for common Sync errors on pipes and TTYs.
func isIgnorableSyncError(err error) bool {
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EIO) || errors.Is(err, syscall.EBADF) {
		return true
	}
	// Windows consoles wrap ERROR_INVALID_HANDLE in *os.PathError.
	return strings.Contains(err.Error(), "The handle is invalid")
}

// GetNoopLogger returns a logger that discards everything.
func GetNoopLogger() *logr.Logger {
	return &defaultNoopLogger
}

// WithValues returns a copy of lgr with extra key-value pairs.
func WithValues(lgr *logr.Logger, keysAndValues ...any) *logr.Logger {
	nlgr := lgr.WithValues(keysAndValues...)
	return &nlgr
}
