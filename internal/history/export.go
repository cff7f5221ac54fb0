package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// TimestampLayout is the timestamp format used in exported files.
const TimestampLayout = "2006-01-02 15:04:05"

// CSVHeader lists the columns written by WriteCSV.
var CSVHeader = []string{"id", "timestamp", "temp", "humidity", "duration", "activity", "risk_level", "risk_score"}

// WriteCSV writes every entry of the log as one CSV row, oldest first.
func WriteCSV(w io.Writer, l Log) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write history header: %w", err)
	}
	for _, e := range l.entries {
		row := []string{
			e.ID.String(),
			e.Timestamp.Format(TimestampLayout),
			strconv.Itoa(e.Input.Temperature),
			strconv.Itoa(e.Input.Humidity),
			strconv.Itoa(e.Input.Duration),
			e.Input.Activity.String(),
			e.Result.Level.String(),
			strconv.Itoa(e.Result.Score),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write history entry %s: %w", e.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
