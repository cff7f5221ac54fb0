package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/isseis/go-heat-risk/internal/history"
	"github.com/isseis/go-heat-risk/internal/logging"
	"github.com/isseis/go-heat-risk/internal/report"
)

const sessionHelp = `Commands:
  assess <temp> <humidity> <duration> <activity>   score and record conditions
  history                                          list recorded assessments
  stats                                            summarize recorded assessments
  export [file]                                    write the history as CSV
  clear                                            forget all recorded assessments
  help                                             show this help
  quit                                             leave the session
`

// session holds the state of one interactive run. The log is replaced on
// every change; nothing else shares it.
type session struct {
	app *app
	log history.Log
}

func runSession(a *app, args []string) error {
	fs := newFlagSet("session", a.stderr)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	prompt := ""
	if a.caps.IsInteractiveInput(a.stdin) {
		prompt = "heatrisk> "
		fmt.Fprint(a.stdout, "Heat stress risk session. Type \"help\" for commands.\n")
	}

	s := &session{app: a}
	scanner := bufio.NewScanner(a.stdin)
	for {
		fmt.Fprint(a.stdout, prompt)
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if quit := s.dispatch(fields[0], fields[1:]); quit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return &logging.CommandError{
			Type:      logging.ErrorTypeSystemError,
			Message:   "Failed to read session input",
			Component: "session",
			Err:       err,
		}
	}

	slog.Info("Session ended", "assessments", s.log.Len(), "run_id", a.runID)
	return nil
}

// dispatch runs one session command and reports whether the session should end.
// Failures are printed and the session continues.
func (s *session) dispatch(name string, args []string) bool {
	out := s.app.stdout
	var err error
	switch strings.ToLower(name) {
	case "assess":
		err = s.assess(args)
	case "history":
		s.app.renderer.History(s.log)
	case "stats":
		s.app.renderer.Stats(s.log.Summarize())
	case "export":
		err = s.export(args)
	case "clear":
		s.log = s.log.Clear()
		fmt.Fprintln(out, "History cleared.")
	case "help", "?":
		fmt.Fprint(out, sessionHelp)
	case "quit", "exit":
		return true
	default:
		err = fmt.Errorf("%w %q, type \"help\" for a list", ErrUnknownCommand, name)
	}
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
	}
	return false
}

func (s *session) assess(args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("%w: usage: assess <temp> <humidity> <duration> <activity>", ErrInvalidScenario)
	}
	in, err := parseScenario(strings.Join(args, ","))
	if err != nil {
		s.app.metrics.ObserveRejected("session")
		return err
	}
	assessment, err := s.app.evaluate("session", in)
	if err != nil {
		return err
	}

	s.app.renderer.Assessment(assessment, s.log.Summarize())

	var entry history.Entry
	s.log, entry = s.log.Append(assessment, s.app.now())
	fmt.Fprintf(s.app.stdout, "\nRecorded as #%d (%s)\n", s.log.Len(), entry.ID)
	return nil
}

func (s *session) export(args []string) error {
	if s.log.Len() == 0 {
		fmt.Fprintln(s.app.stdout, "Nothing to export.")
		return nil
	}
	path := report.FileName("heat_stress_history", s.app.now())
	if len(args) > 0 {
		path = args[0]
	}
	if err := writeFile(path, func(w io.Writer) error { return history.WriteCSV(w, s.log) }); err != nil {
		return err
	}
	fmt.Fprintf(s.app.stdout, "Exported %d assessments to %s\n", s.log.Len(), path)
	return nil
}
