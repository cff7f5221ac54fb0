package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/isseis/go-heat-risk/internal/batch"
	"github.com/isseis/go-heat-risk/internal/explain"
	"github.com/isseis/go-heat-risk/internal/history"
	"github.com/isseis/go-heat-risk/internal/logging"
	"github.com/isseis/go-heat-risk/internal/report"
	"github.com/isseis/go-heat-risk/internal/risktypes"
	"github.com/isseis/go-heat-risk/internal/safefileio"
)

const outputFilePerm = 0o644

// ErrInvalidScenario is returned when a scenario argument is not "temp,humidity,duration,activity"
var ErrInvalidScenario = errors.New("invalid scenario")

// Defaults for the assess command, matching a typical summer shift
const (
	defaultTemperature = 35
	defaultHumidity    = 60
	defaultDuration    = 4
	defaultActivity    = risktypes.LightActivityString
)

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return invalidArgs(fs.Name(), "Failed to parse flags", err)
	}
	return nil
}

// evaluate scores one input, recording the outcome in the metrics
func (a *app) evaluate(source string, in risktypes.Input) (risktypes.Assessment, error) {
	res, err := a.eval.Evaluate(in)
	if err != nil {
		a.metrics.ObserveRejected(source)
		return risktypes.Assessment{}, err
	}
	a.metrics.ObserveResult(res)
	return risktypes.Assessment{Input: in, Result: res}, nil
}

func validationFailed(component string, err error) *logging.CommandError {
	return &logging.CommandError{
		Type:      logging.ErrorTypeValidation,
		Message:   "Input rejected",
		Component: component,
		Err:       err,
	}
}

// writeOutput writes to path, or to stdout when path is empty
func (a *app) writeOutput(component, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(a.stdout)
	}
	if err := writeFile(path, write); err != nil {
		return &logging.CommandError{
			Type:      logging.ErrorTypeFileAccess,
			Message:   "Failed to write output file",
			Component: component,
			Err:       err,
		}
	}
	slog.Info("Output written", "component", component, "path", path, "run_id", a.runID)
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	return safefileio.WriteFile(path, outputFilePerm, write)
}

func runAssess(a *app, args []string) error {
	fs := newFlagSet("assess", a.stderr)
	temp := fs.Int("temp", defaultTemperature, "air temperature in °C (25-50)")
	humidity := fs.Int("humidity", defaultHumidity, "relative humidity in % (30-90)")
	duration := fs.Int("duration", defaultDuration, "work duration in hours (1-10)")
	activity := fs.String("activity", defaultActivity, "activity level (Light, Moderate, Heavy)")
	csvPath := fs.String("csv", "", "also export the assessment as CSV to this file")
	brief := fs.Bool("brief", false, "print only the headline, conditions and summary")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	in, err := buildInput(*temp, *humidity, *duration, *activity)
	if err != nil {
		a.metrics.ObserveRejected("assess")
		return validationFailed("assess", err)
	}
	assessment, err := a.evaluate("assess", in)
	if err != nil {
		return validationFailed("assess", err)
	}
	slog.Info("Assessment completed",
		"score", assessment.Result.Score,
		"level", assessment.Result.Level.String(),
		"run_id", a.runID)

	if *brief {
		fmt.Fprint(a.stdout, explain.Describe(assessment.Input, assessment.Result.Level))
	} else {
		a.renderer.Assessment(assessment, history.Stats{})
	}

	if *csvPath != "" {
		at := a.now()
		return a.writeOutput("assess", *csvPath, func(w io.Writer) error {
			return report.WriteAssessmentCSV(w, assessment, at)
		})
	}
	return nil
}

func buildInput(temp, humidity, duration int, activity string) (risktypes.Input, error) {
	act, err := risktypes.ParseActivity(activity)
	if err != nil {
		return risktypes.Input{}, err
	}
	return risktypes.Input{Temperature: temp, Humidity: humidity, Duration: duration, Activity: act}, nil
}

// parseScenario parses "temp,humidity,duration,activity", e.g. "40,75,6,heavy".
func parseScenario(spec string) (risktypes.Input, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 4 {
		return risktypes.Input{}, fmt.Errorf("%w: %q (want temp,humidity,duration,activity)", ErrInvalidScenario, spec)
	}
	fields := []string{risktypes.FieldTemperature, risktypes.FieldHumidity, risktypes.FieldDuration}
	values := make([]int, len(fields))
	for i, field := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return risktypes.Input{}, fmt.Errorf("%w: %q: %s is not a whole number", ErrInvalidScenario, spec, field)
		}
		values[i] = v
	}
	return buildInput(values[0], values[1], values[2], strings.TrimSpace(parts[3]))
}

func runCompare(a *app, args []string) error {
	fs := newFlagSet("compare", a.stderr)
	csvPath := fs.String("csv", "", "also export the comparison as CSV to this file")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	inputs := make([]risktypes.Input, 0, fs.NArg())
	for _, spec := range fs.Args() {
		in, err := parseScenario(spec)
		if err != nil {
			a.metrics.ObserveRejected("compare")
			return validationFailed("compare", err)
		}
		inputs = append(inputs, in)
	}

	scenarios, err := report.Compare(a.eval, inputs)
	if err != nil {
		if errors.Is(err, report.ErrScenarioCount) {
			return invalidArgs("compare", "Wrong number of scenarios", err)
		}
		a.metrics.ObserveRejected("compare")
		return validationFailed("compare", err)
	}
	for _, s := range scenarios {
		a.metrics.ObserveResult(s.Assessment.Result)
	}

	a.renderer.Comparison(scenarios)

	if *csvPath != "" {
		return a.writeOutput("compare", *csvPath, func(w io.Writer) error {
			return report.WriteComparisonCSV(w, scenarios)
		})
	}
	return nil
}

func runBatch(a *app, args []string) error {
	fs := newFlagSet("batch", a.stderr)
	inPath := fs.String("in", "", "input CSV file (required)")
	outPath := fs.String("out", "", "output CSV file; stdout when empty")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *inPath == "" {
		return invalidArgs("batch", "Input file is required (-in)", batch.ErrEmptyInput)
	}

	table, err := readTable(*inPath)
	var res *batch.Result
	if err == nil {
		res, err = batch.Process(a.eval, table)
	}
	if err != nil {
		if !batch.IsRejected(err) {
			return &logging.CommandError{
				Type:      logging.ErrorTypeFileAccess,
				Message:   "Failed to read input file",
				Component: "batch",
				Err:       err,
			}
		}
		a.metrics.ObserveRejected("batch")
		return &logging.CommandError{
			Type:      logging.ErrorTypeBatchRejected,
			Message:   "Batch rejected, no output written",
			Component: "batch",
			Err:       err,
		}
	}
	for _, assessment := range res.Assessments {
		a.metrics.ObserveResult(assessment.Result)
	}

	if err := a.writeOutput("batch", *outPath, func(w io.Writer) error {
		return batch.Write(w, res.Table)
	}); err != nil {
		return err
	}
	if *outPath != "" {
		a.renderer.BatchSummary(res)
	}
	return nil
}

func readTable(path string) (batch.Table, error) {
	content, err := safefileio.ReadFile(path)
	if err != nil {
		return batch.Table{}, err
	}
	return batch.Read(bytes.NewReader(content))
}

func runMatrix(a *app, args []string) error {
	fs := newFlagSet("matrix", a.stderr)
	duration := fs.Int("duration", defaultDuration, "work duration in hours (1-10)")
	activity := fs.String("activity", risktypes.ModerateActivityString, "activity level (Light, Moderate, Heavy)")
	csvPath := fs.String("csv", "", "export the full matrix as CSV to this file")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	act, err := risktypes.ParseActivity(*activity)
	if err != nil {
		return validationFailed("matrix", err)
	}
	m, err := report.BuildMatrix(a.eval, *duration, act)
	if err != nil {
		return validationFailed("matrix", err)
	}

	a.renderer.Matrix(m, a.rules.Classify)

	if *csvPath != "" {
		return a.writeOutput("matrix", *csvPath, m.WriteCSV)
	}
	return nil
}

func runTemplate(a *app, args []string) error {
	fs := newFlagSet("template", a.stderr)
	outPath := fs.String("out", "", "output CSV file; stdout when empty")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	return a.writeOutput("template", *outPath, func(w io.Writer) error {
		return batch.Write(w, batch.Template())
	})
}

func runValidate(a *app, args []string) error {
	fs := newFlagSet("validate", a.stderr)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Configuration is valid.")
	a.renderer.Rules(a.rules)
	return nil
}
