// Package batch scores a CSV table of assessments.
//
// The input must carry the columns temperature, humidity, duration and activity
// (in any order, alongside any other columns). The output is the input table
// unchanged with risk_level and risk_score appended. A batch is all or nothing:
// one bad row or a missing column rejects the whole input.
package batch

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/isseis/go-heat-risk/internal/risk"
	"github.com/isseis/go-heat-risk/internal/risktypes"
)

// Column names used by batch input and output.
const (
	ColumnTemperature = risktypes.FieldTemperature
	ColumnHumidity    = risktypes.FieldHumidity
	ColumnDuration    = risktypes.FieldDuration
	ColumnActivity    = risktypes.FieldActivity
	ColumnRiskLevel   = "risk_level"
	ColumnRiskScore   = "risk_score"
)

// RequiredColumns lists the input columns in the order they are reported.
var RequiredColumns = []string{ColumnTemperature, ColumnHumidity, ColumnDuration, ColumnActivity}

// Table is a parsed CSV document.
type Table struct {
	Header []string
	Rows   [][]string
}

// Result holds the scored table and the per-row assessments in input order.
type Result struct {
	Table       Table
	Assessments []risktypes.Assessment
}

// utf8BOM is prepended by spreadsheet "CSV UTF-8" exports
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Read parses CSV input into a Table. A leading UTF-8 byte order mark is dropped.
func Read(r io.Reader) (Table, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	records, err := csv.NewReader(br).ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("%w: %w", ErrMalformedCSV, err)
	}
	if len(records) == 0 {
		return Table{}, ErrEmptyInput
	}
	return Table{Header: records[0], Rows: records[1:]}, nil
}

// columnIndex maps each required column to its position; the first occurrence wins.
func columnIndex(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, seen := positions[name]; !seen {
			positions[name] = i
		}
	}

	index := make(map[string]int, len(RequiredColumns))
	var missing []string
	for _, col := range RequiredColumns {
		pos, ok := positions[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		index[col] = pos
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	return index, nil
}

func parseInt(field, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &risktypes.ValidationError{Field: field, Value: raw, Err: fmt.Errorf("not an integer: %w", err)}
	}
	return v, nil
}

func parseRow(row []string, index map[string]int) (risktypes.Input, error) {
	for _, col := range RequiredColumns {
		if index[col] >= len(row) {
			return risktypes.Input{}, fmt.Errorf("%w: row has %d fields, column %q is at position %d", ErrMalformedCSV, len(row), col, index[col]+1)
		}
	}

	temperature, err := parseInt(ColumnTemperature, row[index[ColumnTemperature]])
	if err != nil {
		return risktypes.Input{}, err
	}
	humidity, err := parseInt(ColumnHumidity, row[index[ColumnHumidity]])
	if err != nil {
		return risktypes.Input{}, err
	}
	duration, err := parseInt(ColumnDuration, row[index[ColumnDuration]])
	if err != nil {
		return risktypes.Input{}, err
	}
	activity, err := risktypes.ParseActivity(row[index[ColumnActivity]])
	if err != nil {
		return risktypes.Input{}, err
	}
	return risktypes.Input{
		Temperature: temperature,
		Humidity:    humidity,
		Duration:    duration,
		Activity:    activity,
	}, nil
}

// Process scores every row of the table. Rows keep their order and original
// cells; the result table has risk_level and risk_score appended.
func Process(evaluator risk.Evaluator, table Table) (*Result, error) {
	index, err := columnIndex(table.Header)
	if err != nil {
		return nil, err
	}

	header := make([]string, 0, len(table.Header)+2)
	header = append(header, table.Header...)
	header = append(header, ColumnRiskLevel, ColumnRiskScore)

	result := &Result{
		Table:       Table{Header: header, Rows: make([][]string, 0, len(table.Rows))},
		Assessments: make([]risktypes.Assessment, 0, len(table.Rows)),
	}

	for i, row := range table.Rows {
		in, err := parseRow(row, index)
		if err != nil {
			return nil, &RowError{Row: i + 1, Err: err}
		}
		res, err := evaluator.Evaluate(in)
		if err != nil {
			return nil, &RowError{Row: i + 1, Err: err}
		}

		out := make([]string, 0, len(row)+2)
		out = append(out, row...)
		out = append(out, res.Level.String(), strconv.Itoa(res.Score))
		result.Table.Rows = append(result.Table.Rows, out)
		result.Assessments = append(result.Assessments, risktypes.Assessment{Input: in, Result: res})
	}

	counts := result.CountByLevel()
	slog.Info("Batch processed",
		"records", len(result.Assessments),
		"high", counts[risktypes.LevelHigh],
		"moderate", counts[risktypes.LevelModerate],
		"low", counts[risktypes.LevelLow])

	return result, nil
}

// CountByLevel returns how many rows fell into each level.
func (r *Result) CountByLevel() map[risktypes.Level]int {
	counts := make(map[risktypes.Level]int, len(risktypes.Levels))
	for _, a := range r.Assessments {
		counts[a.Result.Level]++
	}
	return counts
}

// Write writes a table as CSV.
func Write(w io.Writer, table Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.WriteAll(table.Rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return nil
}

// Template returns a sample input table showing the expected columns.
func Template() Table {
	return Table{
		Header: append([]string(nil), RequiredColumns...),
		Rows: [][]string{
			{"35", "60", "4", risktypes.ModerateActivityString},
			{"40", "75", "6", risktypes.HeavyActivityString},
			{"28", "50", "3", risktypes.LightActivityString},
		},
	}
}

// IsRejected reports whether err is one of the batch rejection errors.
func IsRejected(err error) bool {
	return errors.Is(err, ErrMissingColumns) || errors.Is(err, ErrInvalidRow) ||
		errors.Is(err, ErrMalformedCSV) || errors.Is(err, ErrEmptyInput)
}
