// Package report renders assessment results: CSV exports for single
// assessments, scenario comparisons and risk matrices, and text tables for the
// terminal.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/isseis/go-heat-risk/internal/history"
	"github.com/isseis/go-heat-risk/internal/risk"
	"github.com/isseis/go-heat-risk/internal/risktypes"
)

// Scenario comparison limits
const (
	MinScenarios = 2
	MaxScenarios = 4
)

// ErrScenarioCount is returned when a comparison has too few or too many scenarios
var ErrScenarioCount = errors.New("comparison needs between 2 and 4 scenarios")

// AssessmentHeader lists the columns of a single-assessment export.
var AssessmentHeader = []string{
	"Timestamp", "Temperature_C", "Humidity_Percent", "Duration_Hours", "Activity_Level", "Risk_Score", "Risk_Level",
}

// ComparisonHeader lists the columns of a comparison export.
var ComparisonHeader = []string{"name", "temp", "humidity", "duration", "activity", "risk_level", "risk_score"}

// WriteAssessmentCSV writes one assessment as a header plus one row.
func WriteAssessmentCSV(w io.Writer, a risktypes.Assessment, at time.Time) error {
	row := []string{
		at.Format(history.TimestampLayout),
		strconv.Itoa(a.Input.Temperature),
		strconv.Itoa(a.Input.Humidity),
		strconv.Itoa(a.Input.Duration),
		a.Input.Activity.String(),
		strconv.Itoa(a.Result.Score),
		a.Result.Level.String(),
	}
	return writeCSV(w, AssessmentHeader, [][]string{row})
}

// Scenario is one named column of a comparison.
type Scenario struct {
	Name       string
	Assessment risktypes.Assessment
}

// Compare scores between two and four inputs, naming them "Scenario 1".."Scenario N".
func Compare(evaluator risk.Evaluator, inputs []risktypes.Input) ([]Scenario, error) {
	if len(inputs) < MinScenarios || len(inputs) > MaxScenarios {
		return nil, fmt.Errorf("%w: got %d", ErrScenarioCount, len(inputs))
	}
	scenarios := make([]Scenario, 0, len(inputs))
	for i, in := range inputs {
		name := fmt.Sprintf("Scenario %d", i+1)
		result, err := evaluator.Evaluate(in)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		scenarios = append(scenarios, Scenario{
			Name:       name,
			Assessment: risktypes.Assessment{Input: in, Result: result},
		})
	}
	return scenarios, nil
}

// WriteComparisonCSV writes one row per scenario.
func WriteComparisonCSV(w io.Writer, scenarios []Scenario) error {
	rows := make([][]string, 0, len(scenarios))
	for _, s := range scenarios {
		in, res := s.Assessment.Input, s.Assessment.Result
		rows = append(rows, []string{
			s.Name,
			strconv.Itoa(in.Temperature),
			strconv.Itoa(in.Humidity),
			strconv.Itoa(in.Duration),
			in.Activity.String(),
			res.Level.String(),
			strconv.Itoa(res.Score),
		})
	}
	return writeCSV(w, ComparisonHeader, rows)
}

// FileName returns a timestamped export name such as
// heat_stress_assessment_20250714_133000.csv.
func FileName(prefix string, at time.Time) string {
	return fmt.Sprintf("%s_%s.csv", prefix, at.Format("20060102_150405"))
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return nil
}
