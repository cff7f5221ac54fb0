package history

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/isseis/go-heat-risk/internal/risktypes"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assessment(temp, hum, dur int, act risktypes.Activity, score int, level risktypes.Level) risktypes.Assessment {
	return risktypes.Assessment{
		Input:  risktypes.Input{Temperature: temp, Humidity: hum, Duration: dur, Activity: act},
		Result: risktypes.Result{Score: score, Level: level},
	}
}

var baseTime = time.Date(2025, 7, 14, 13, 30, 0, 0, time.UTC)

func TestLog_AppendPreservesOrder(t *testing.T) {
	var log Log
	log, first := log.Append(assessment(40, 75, 6, risktypes.ActivityHeavy, 10, risktypes.LevelHigh), baseTime)
	log, second := log.Append(assessment(28, 50, 3, risktypes.ActivityLight, 1, risktypes.LevelLow), baseTime.Add(time.Minute))

	entries := log.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, first.ID, entries[0].ID)
	assert.Equal(t, second.ID, entries[1].ID)
	assert.Equal(t, baseTime, entries[0].Timestamp)
	assert.Equal(t, 10, entries[0].Result.Score)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestLog_AppendDoesNotMutateEarlierLogs(t *testing.T) {
	var base Log
	base, _ = base.Append(assessment(30, 50, 2, risktypes.ActivityLight, 1, risktypes.LevelLow), baseTime)

	branchA, _ := base.Append(assessment(40, 75, 6, risktypes.ActivityHeavy, 10, risktypes.LevelHigh), baseTime.Add(time.Minute))
	branchB, _ := base.Append(assessment(36, 60, 4, risktypes.ActivityModerate, 4, risktypes.LevelLow), baseTime.Add(2*time.Minute))

	assert.Equal(t, 1, base.Len())
	require.Equal(t, 2, branchA.Len())
	require.Equal(t, 2, branchB.Len())
	assert.Equal(t, 10, branchA.Entries()[1].Result.Score)
	assert.Equal(t, 4, branchB.Entries()[1].Result.Score)
}

func TestLog_EntriesReturnsCopy(t *testing.T) {
	var log Log
	log, _ = log.Append(assessment(30, 50, 2, risktypes.ActivityLight, 1, risktypes.LevelLow), baseTime)

	entries := log.Entries()
	entries[0].Result.Score = 99

	assert.Equal(t, 1, log.Entries()[0].Result.Score)
}

func TestLog_Clear(t *testing.T) {
	var log Log
	log, _ = log.Append(assessment(30, 50, 2, risktypes.ActivityLight, 1, risktypes.LevelLow), baseTime)

	cleared := log.Clear()
	assert.Equal(t, 0, cleared.Len())
	assert.Equal(t, 1, log.Len())
}

func TestLog_Summarize(t *testing.T) {
	var log Log
	log, _ = log.Append(assessment(40, 75, 6, risktypes.ActivityHeavy, 10, risktypes.LevelHigh), baseTime)
	log, _ = log.Append(assessment(28, 50, 3, risktypes.ActivityLight, 1, risktypes.LevelLow), baseTime)
	log, _ = log.Append(assessment(36, 60, 4, risktypes.ActivityModerate, 4, risktypes.LevelLow), baseTime)

	stats := log.Summarize()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.HighRiskCount())
	assert.Equal(t, 2, stats.ByLevel[risktypes.LevelLow])
	assert.Equal(t, []int{10, 1, 4}, stats.Scores)
	assert.True(t, decimal.NewFromInt(5).Equal(stats.AverageScore), "average = %s", stats.AverageScore)
	assert.Equal(t, "66.7", stats.Share(risktypes.LevelLow).String())
	assert.Equal(t, "0", stats.Share(risktypes.LevelModerate).String())
}

func TestLog_SummarizeEmpty(t *testing.T) {
	stats := Log{}.Summarize()
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.HighRiskCount())
	assert.True(t, stats.AverageScore.IsZero())
	assert.Empty(t, stats.Scores)
	assert.True(t, stats.Share(risktypes.LevelHigh).IsZero())
}

func TestLog_SummarizeRoundsAverage(t *testing.T) {
	var log Log
	log, _ = log.Append(assessment(40, 75, 6, risktypes.ActivityHeavy, 10, risktypes.LevelHigh), baseTime)
	log, _ = log.Append(assessment(30, 50, 2, risktypes.ActivityLight, 1, risktypes.LevelLow), baseTime)
	log, _ = log.Append(assessment(30, 50, 2, risktypes.ActivityLight, 1, risktypes.LevelLow), baseTime)

	assert.Equal(t, "4", log.Summarize().AverageScore.String())

	log, _ = log.Append(assessment(35, 50, 2, risktypes.ActivityLight, 3, risktypes.LevelLow), baseTime)
	assert.Equal(t, "3.8", log.Summarize().AverageScore.String())
}

func TestWriteCSV(t *testing.T) {
	var log Log
	log, entry := log.Append(assessment(40, 75, 6, risktypes.ActivityHeavy, 10, risktypes.LevelHigh), baseTime)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, log))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, CSVHeader, records[0])
	assert.Equal(t, []string{entry.ID.String(), "2025-07-14 13:30:00", "40", "75", "6", "Heavy", "High", "10"}, records[1])
}

func TestWriteCSV_EmptyLog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Log{}))
	assert.Equal(t, "id,timestamp,temp,humidity,duration,activity,risk_level,risk_score\n", buf.String())
}
