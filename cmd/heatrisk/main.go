// Package main provides the heatrisk command line tool. It scores heat-stress
// risk for outdoor work from temperature, humidity, duration and activity, and
// offers comparison, batch, matrix and interactive session modes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/isseis/go-heat-risk/internal/color"
	"github.com/isseis/go-heat-risk/internal/config"
	"github.com/isseis/go-heat-risk/internal/logging"
	"github.com/isseis/go-heat-risk/internal/metrics"
	"github.com/isseis/go-heat-risk/internal/report"
	"github.com/isseis/go-heat-risk/internal/risk"
	"github.com/isseis/go-heat-risk/internal/terminal"
)

// Error definitions
var (
	ErrCommandRequired = errors.New("command is required")
	ErrUnknownCommand  = errors.New("unknown command")
)

const usage = `Usage: heatrisk [global flags] <command> [flags]

Commands:
  assess    score one set of conditions
  compare   score 2-4 scenarios side by side (each "temp,humidity,duration,activity")
  batch     score every row of a CSV file
  matrix    show scores across all temperatures and humidities
  session   interactive assessment session with history
  template  write a sample batch CSV
  validate  check the configuration file and show the rule table

Global flags:
`

// app carries everything a command needs
type app struct {
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	runID    string
	rules    risk.Rules
	eval     *risk.StandardEvaluator
	caps     terminal.Capabilities
	palette  color.Palette
	renderer *report.Renderer
	metrics  *metrics.Recorder
	now      func() time.Time
}

type command func(a *app, args []string) error

var commands = map[string]command{
	"assess":   runAssess,
	"compare":  runCompare,
	"batch":    runBatch,
	"matrix":   runMatrix,
	"session":  runSession,
	"template": runTemplate,
	"validate": runValidate,
}

func main() {
	// Generate run ID early for error handling
	runID := logging.GenerateRunID()

	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, runID); err != nil {
		var cmdErr *logging.CommandError
		if !errors.As(err, &cmdErr) {
			cmdErr = &logging.CommandError{
				Type:      logging.ErrorTypeSystemError,
				Message:   "Unexpected failure",
				Component: "main",
				Err:       err,
			}
		}
		logging.HandleCommandError(os.Stderr, cmdErr, runID)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, runID string) error {
	fs := flag.NewFlagSet("heatrisk", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "path to TOML config file")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error); overrides config")
	logDir := fs.String("log-dir", "", "directory to place per-run JSON log (auto-named); overrides config")
	colorMode := fs.String("color", "", "color output (auto, always, never); overrides config")
	noColor := fs.Bool("no-color", false, "disable color output")
	metricsFile := fs.String("metrics-file", "", "write Prometheus metrics to this file on exit; overrides config")
	interactive := fs.Bool("interactive", false, "treat input and output as a terminal (session prompts), even under CI")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return invalidArgs("global", "Failed to parse flags", err)
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return invalidArgs("global", "No command given", ErrCommandRequired)
	}
	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		return invalidArgs("global", fmt.Sprintf("Unknown command %q", name), ErrUnknownCommand)
	}

	cfg, err := config.NewLoader().LoadConfig(*configPath)
	if err != nil {
		return &logging.CommandError{
			Type:      logging.ErrorTypeConfigParsing,
			Message:   "Failed to load config",
			Component: "config",
			Err:       err,
		}
	}
	if err := applyFlagOverrides(&cfg.Global, *logLevel, *logDir, *colorMode, *noColor, *metricsFile); err != nil {
		return invalidArgs("global", "Invalid flag value", err)
	}

	closeLog, err := logging.Setup(logging.Options{
		Level:  cfg.Global.LogLevel,
		LogDir: cfg.Global.LogDir,
		Stderr: stderr,
		RunID:  runID,
	})
	if err != nil {
		return &logging.CommandError{
			Type:      logging.ErrorTypeLogSetup,
			Message:   "Failed to setup logger",
			Component: "logging",
			Err:       err,
		}
	}
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(stderr, "Warning: failed to close log file: %v\n", err)
		}
	}()

	rules, err := cfg.Rules()
	if err != nil {
		return &logging.CommandError{Type: logging.ErrorTypeConfigParsing, Message: "Invalid scoring rules", Component: "config", Err: err}
	}
	eval, err := risk.NewEvaluator(rules)
	if err != nil {
		return &logging.CommandError{Type: logging.ErrorTypeConfigParsing, Message: "Invalid scoring rules", Component: "config", Err: err}
	}

	caps := terminal.NewCapabilities(terminal.Options{ColorMode: cfg.Global.Color, ForceInteractive: *interactive})
	palette := color.NewPalette(caps.SupportsColor())
	a := &app{
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		runID:    runID,
		rules:    rules,
		eval:     eval,
		caps:     caps,
		palette:  palette,
		renderer: report.NewRenderer(stdout, palette, rules),
		metrics:  metrics.NewRecorder(),
		now:      time.Now,
	}

	slog.Debug("Starting command", "command", name, "run_id", runID, "config", *configPath)
	cmdErr := cmd(a, fs.Args()[1:])

	if path := cfg.Global.MetricsFile; path != "" {
		if err := a.metrics.WriteTextfile(path); err != nil {
			if cmdErr != nil {
				slog.Warn("Failed to write metrics", "error", err, "run_id", runID)
				return cmdErr
			}
			return &logging.CommandError{
				Type:      logging.ErrorTypeFileAccess,
				Message:   "Failed to write metrics file",
				Component: "metrics",
				Err:       err,
			}
		}
		slog.Debug("Metrics written", "path", path, "run_id", runID)
	}
	return cmdErr
}

// applyFlagOverrides lets command line flags take precedence over the config file
func applyFlagOverrides(g *config.GlobalSpec, logLevel, logDir, colorMode string, noColor bool, metricsFile string) error {
	if logLevel != "" {
		if err := g.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
			return err
		}
	}
	if logDir != "" {
		g.LogDir = logDir
	}
	if colorMode != "" {
		if err := g.Color.UnmarshalText([]byte(colorMode)); err != nil {
			return err
		}
	}
	if noColor {
		g.Color = terminal.ColorNever
	}
	if metricsFile != "" {
		g.MetricsFile = metricsFile
	}
	return nil
}

func invalidArgs(component, message string, err error) *logging.CommandError {
	return &logging.CommandError{
		Type:      logging.ErrorTypeInvalidArguments,
		Message:   message,
		Component: component,
		Err:       err,
	}
}
