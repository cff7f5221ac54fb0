package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	logDirPerm  os.FileMode = 0o750
	logFilePerm os.FileMode = 0o600
)

// LogLevel represents the logging level for the application.
// Valid values: debug, info, warn, error
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// ErrInvalidLogLevel is returned when an invalid log level is provided
var ErrInvalidLogLevel = errors.New("invalid log level")

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// This enables validation during TOML parsing. Empty means info.
func (l *LogLevel) UnmarshalText(text []byte) error {
	s := LogLevel(strings.ToLower(strings.TrimSpace(string(text))))
	switch s {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		*l = s
		return nil
	case "":
		*l = LogLevelInfo
		return nil
	default:
		return fmt.Errorf("%w: %q (must be one of: debug, info, warn, error)", ErrInvalidLogLevel, string(text))
	}
}

// ToSlogLevel converts LogLevel to slog.Level
func (l LogLevel) ToSlogLevel() (slog.Level, error) {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug, nil
	case LogLevelInfo, "":
		return slog.LevelInfo, nil
	case LogLevelWarn:
		return slog.LevelWarn, nil
	case LogLevelError:
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, string(l))
	}
}

// GenerateRunID returns a new ULID identifying one invocation
func GenerateRunID() string {
	return ulid.Make().String()
}

// Options configures Setup
type Options struct {
	Level  LogLevel
	LogDir string    // when set, a per-run JSON log file is written there
	Stderr io.Writer // human-readable output; os.Stderr when nil
	RunID  string
}

// Setup installs the default slog logger and returns a function that closes
// the log file, if one was opened.
func Setup(opts Options) (func() error, error) {
	level, err := opts.Level.ToSlogLevel()
	if err != nil {
		return nil, err
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}),
	}
	closer := func() error { return nil }

	if opts.LogDir != "" {
		f, err := openRunLog(opts.LogDir, opts.RunID, time.Now())
		if err != nil {
			return nil, err
		}
		hostname, _ := os.Hostname()
		jsonHandler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}).WithAttrs([]slog.Attr{
			slog.String("hostname", hostname),
			slog.Int("pid", os.Getpid()),
			slog.String("run_id", opts.RunID),
			slog.Int("schema_version", 1),
		})
		handlers = append(handlers, jsonHandler)
		closer = f.Close
	}

	slog.SetDefault(slog.New(NewMultiHandler(handlers...)))
	return closer, nil
}

// RunLogPath returns the JSON log path for a run: <dir>/<host>_<timestamp>_<runID>.json
func RunLogPath(dir, runID string, at time.Time) string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "unknown"
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s_%s.json", hostname, at.UTC().Format("20060102T150405Z"), runID))
}

func openRunLog(dir, runID string, at time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, logDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	path := RunLogPath(dir, runID, at)
	// #nosec G304 - path is built from the configured log directory and a generated name
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, logFilePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
