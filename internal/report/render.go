package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/isseis/go-heat-risk/internal/batch"
	"github.com/isseis/go-heat-risk/internal/color"
	"github.com/isseis/go-heat-risk/internal/explain"
	"github.com/isseis/go-heat-risk/internal/history"
	"github.com/isseis/go-heat-risk/internal/risk"
	"github.com/isseis/go-heat-risk/internal/risktypes"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
)

// GaugeMax is the upper bound of the score gauge.
const GaugeMax = 12

const (
	gaugeWidth = 24
	// matrixStep is the humidity sampling interval of the terminal matrix.
	matrixStep = 5
)

// Renderer writes human-readable reports to a terminal or file.
type Renderer struct {
	w       io.Writer
	palette color.Palette
	rules   risk.Rules
	now     func() time.Time
}

// NewRenderer creates a renderer writing to w. Breakdowns describe thresholds
// as scored by rules.
func NewRenderer(w io.Writer, palette color.Palette, rules risk.Rules) *Renderer {
	return &Renderer{w: w, palette: palette, rules: rules, now: time.Now}
}

func (r *Renderer) newTable(header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(r.w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func (r *Renderer) level(level risktypes.Level) string {
	return r.palette.Level(level, level.String())
}

// Gauge draws a score as a fixed-width bar, e.g. "[########----------------] 8/12".
func Gauge(score int) string {
	clamped := min(max(score, 0), GaugeMax)
	filled := clamped * gaugeWidth / GaugeMax
	return fmt.Sprintf("[%s%s] %d/%d",
		strings.Repeat("#", filled), strings.Repeat("-", gaugeWidth-filled), score, GaugeMax)
}

// Assessment renders the result, the factor breakdown and the guidance for
// one assessment. When the history already holds entries, the score is also
// compared with their average.
func (r *Renderer) Assessment(a risktypes.Assessment, prior history.Stats) {
	g := explain.Explain(a.Result.Level)

	fmt.Fprintf(r.w, "%s\n", r.palette.Level(a.Result.Level, g.Headline))
	fmt.Fprintf(r.w, "Conditions: %s, %s activity\n", explain.Conditions(a.Input), a.Input.Activity)
	fmt.Fprintf(r.w, "Risk score: %s", r.palette.Apply(color.Bold, Gauge(a.Result.Score)))
	if prior.Total > 0 {
		delta := decimal.NewFromInt(int64(a.Result.Score)).Sub(prior.AverageScore)
		sign := ""
		if delta.Sign() >= 0 {
			sign = "+"
		}
		fmt.Fprintf(r.w, " (%s%s vs average %s)", sign, delta.StringFixed(1), prior.AverageScore.StringFixed(1))
	}
	fmt.Fprintf(r.w, "\nRisk level: %s\n\n", r.level(a.Result.Level))

	r.Breakdown(a.Result.Breakdown)

	if len(g.Summary) > 0 {
		fmt.Fprintln(r.w)
		for _, line := range g.Summary {
			fmt.Fprintf(r.w, "  %s\n", line)
		}
	}
	if len(g.Actions) > 0 {
		fmt.Fprintf(r.w, "\n%s\n", r.palette.Apply(color.Bold, "Recommended actions:"))
		for i, action := range g.Actions {
			fmt.Fprintf(r.w, "  %d. %s\n", i+1, action)
		}
	}
}

// Breakdown renders each factor's contribution next to its threshold description.
func (r *Renderer) Breakdown(b risktypes.Breakdown) {
	points := []int{b.Temperature, b.Humidity, b.Duration, b.Activity, b.Total()}
	table := r.newTable("Factor", "Points", "Threshold")
	for i, ft := range explain.FactorThresholds(r.rules) {
		table.Append([]string{ft.Factor, strconv.Itoa(points[i]), ft.Threshold})
	}
	table.Render()
}

// Comparison renders scenarios side by side.
func (r *Renderer) Comparison(scenarios []Scenario) {
	table := r.newTable("Scenario", "Temp", "Humidity", "Duration", "Activity", "Score", "Level")
	for _, s := range scenarios {
		in, res := s.Assessment.Input, s.Assessment.Result
		table.Append([]string{
			s.Name,
			fmt.Sprintf("%d°C", in.Temperature),
			fmt.Sprintf("%d%%", in.Humidity),
			fmt.Sprintf("%dh", in.Duration),
			in.Activity.String(),
			strconv.Itoa(res.Score),
			r.level(res.Level),
		})
	}
	table.Render()
}

// History renders every entry with its relative time, followed by the summary.
func (r *Renderer) History(l history.Log) {
	if l.Len() == 0 {
		fmt.Fprintln(r.w, "No assessments recorded yet.")
		return
	}

	now := r.now()
	table := r.newTable("#", "When", "Conditions", "Activity", "Score", "Level")
	for i, e := range l.Entries() {
		table.Append([]string{
			strconv.Itoa(i + 1),
			humanize.RelTime(e.Timestamp, now, "ago", "from now"),
			explain.Conditions(e.Input),
			e.Input.Activity.String(),
			strconv.Itoa(e.Result.Score),
			r.level(e.Result.Level),
		})
	}
	table.Render()
	fmt.Fprintln(r.w)
	r.Stats(l.Summarize())
}

// Stats renders totals, the level distribution and the score trend.
func (r *Renderer) Stats(s history.Stats) {
	fmt.Fprintf(r.w, "Total assessments: %d\n", s.Total)
	if s.Total == 0 {
		return
	}
	fmt.Fprintf(r.w, "High risk count: %d\n", s.HighRiskCount())
	fmt.Fprintf(r.w, "Average score: %s\n", s.AverageScore.StringFixed(1))

	table := r.newTable("Level", "Count", "Share")
	for _, level := range risktypes.Levels {
		table.Append([]string{
			r.level(level),
			strconv.Itoa(s.ByLevel[level]),
			s.Share(level).StringFixed(1) + "%",
		})
	}
	table.Render()

	trend := make([]string, len(s.Scores))
	for i, score := range s.Scores {
		trend[i] = strconv.Itoa(score)
	}
	fmt.Fprintf(r.w, "Score trend: %s\n", strings.Join(trend, " → "))
}

// BatchSummary renders the level counts of a processed batch.
func (r *Renderer) BatchSummary(res *batch.Result) {
	counts := res.CountByLevel()
	fmt.Fprintf(r.w, "Processed %d rows\n", len(res.Assessments))
	table := r.newTable("Level", "Rows")
	for _, level := range risktypes.Levels {
		table.Append([]string{r.level(level), strconv.Itoa(counts[level])})
	}
	table.Render()
}

// Matrix renders the risk matrix sampled every 5% humidity, each cell
// coloured by the level its score maps to.
func (r *Renderer) Matrix(m *Matrix, classify func(score int) risktypes.Level) {
	fmt.Fprintf(r.w, "Risk matrix for %dh of %s activity (rows °C, columns %% humidity)\n",
		m.Duration, m.Activity)

	header := []string{"°C"}
	var columns []int
	for j, h := range m.Humidities {
		if (h-risktypes.MinHumidity)%matrixStep == 0 {
			header = append(header, strconv.Itoa(h))
			columns = append(columns, j)
		}
	}

	table := r.newTable(header...)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for i, t := range m.Temperatures {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(t))
		for _, j := range columns {
			score := m.Scores[i][j]
			row = append(row, r.palette.Level(classify(score), strconv.Itoa(score)))
		}
		table.Append(row)
	}
	table.Render()
}

// Rules renders the active scoring table.
func (r *Renderer) Rules(rules risk.Rules) {
	table := r.newTable("Factor", "From", "Points")
	bands := []struct {
		name, unit string
		bands      []risk.Band
	}{
		{"Temperature", "°C", rules.Temperature},
		{"Humidity", "%", rules.Humidity},
		{"Work Duration", "h", rules.Duration},
	}
	for _, f := range bands {
		for _, b := range f.bands {
			table.Append([]string{f.name, fmt.Sprintf("≥%d%s", b.Min, f.unit), "+" + strconv.Itoa(b.Points)})
		}
	}
	for _, activity := range risktypes.Activities {
		table.Append([]string{"Activity Level", activity.String(), "+" + strconv.Itoa(rules.Activity[activity])})
	}
	table.Render()

	levels := r.newTable("Level", "Minimum score")
	for _, bp := range rules.Levels {
		levels.Append([]string{r.level(bp.Level), strconv.Itoa(bp.MinScore)})
	}
	levels.Render()
}
