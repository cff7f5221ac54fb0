// Package history keeps the ordered log of assessments made during a session.
//
// A Log is a value owned by the caller. Append returns a new Log and never
// modifies the entries visible through the receiver, so a Log can be handed to
// reporting code while the session continues to grow its own copy.
package history

import (
	"time"

	"github.com/isseis/go-heat-risk/internal/risktypes"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// Entry is an immutable snapshot of one assessment.
type Entry struct {
	ID        ulid.ULID
	Timestamp time.Time
	Input     risktypes.Input
	Result    risktypes.Result
}

// Log is an append-only, ordered list of entries.
type Log struct {
	entries []Entry
}

// Append records an assessment taken at the given time and returns the
// extended log together with the new entry.
func (l Log) Append(a risktypes.Assessment, at time.Time) (Log, Entry) {
	entry := Entry{
		ID:        ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy()),
		Timestamp: at,
		Input:     a.Input,
		Result:    a.Result,
	}
	// Capping capacity forces a fresh backing array so earlier logs never see the entry.
	entries := append(l.entries[:len(l.entries):len(l.entries)], entry)
	return Log{entries: entries}, entry
}

// Clear returns an empty log.
func (l Log) Clear() Log {
	return Log{}
}

// Len returns the number of entries
func (l Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries in insertion order
func (l Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Stats summarizes a log.
type Stats struct {
	Total        int
	ByLevel      map[risktypes.Level]int
	AverageScore decimal.Decimal
	Scores       []int
}

// HighRiskCount returns the number of High results
func (s Stats) HighRiskCount() int {
	return s.ByLevel[risktypes.LevelHigh]
}

// Share returns the percentage of entries at the given level, rounded to one decimal.
func (s Stats) Share(level risktypes.Level) decimal.Decimal {
	if s.Total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(s.ByLevel[level])).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(s.Total))).
		Round(1)
}

// Summarize computes totals, level distribution, the score trend and the
// average score (rounded to one decimal). An empty log yields zero values.
func (l Log) Summarize() Stats {
	stats := Stats{
		Total:        len(l.entries),
		ByLevel:      make(map[risktypes.Level]int, len(risktypes.Levels)),
		AverageScore: decimal.Zero,
		Scores:       make([]int, 0, len(l.entries)),
	}
	if stats.Total == 0 {
		return stats
	}

	sum := int64(0)
	for _, e := range l.entries {
		stats.ByLevel[e.Result.Level]++
		stats.Scores = append(stats.Scores, e.Result.Score)
		sum += int64(e.Result.Score)
	}
	stats.AverageScore = decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(stats.Total))).Round(1)
	return stats
}
