// Package explain turns a risk level into human-readable guidance.
// Guidance is a static table keyed by level; threshold descriptions are
// derived from the active rule table.
package explain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/isseis/go-heat-risk/internal/risk"
	"github.com/isseis/go-heat-risk/internal/risktypes"
)

// Guidance is the text shown alongside a risk result.
type Guidance struct {
	Headline string
	Summary  []string
	Actions  []string
}

var guidanceByLevel = map[risktypes.Level]Guidance{
	risktypes.LevelHigh: {
		Headline: "HIGH RISK DETECTED",
		Summary: []string{
			"Immediate action required",
			"Implement all safety protocols",
			"Increase hydration frequency",
			"Mandatory rest breaks",
			"Monitor for heat stress symptoms",
		},
		Actions: []string{
			"Stop work immediately if symptoms appear",
			"Drink 200ml water every 15 minutes",
			"Take 15-minute breaks in shade every hour",
			"Implement buddy system for monitoring",
			"Have emergency cooling measures ready",
		},
	},
	risktypes.LevelModerate: {
		Headline: "MODERATE RISK",
		Summary: []string{
			"Caution advised",
			"Regular hydration breaks",
			"Monitor comfort levels",
			"Adjust work pace as needed",
		},
		Actions: []string{
			"Increase water intake frequency",
			"Take breaks every 2 hours",
			"Monitor for discomfort",
			"Adjust work pace as needed",
			"Wear appropriate clothing",
		},
	},
	risktypes.LevelLow: {
		Headline: "LOW RISK",
		Summary: []string{
			"Normal safety protocols apply",
			"Maintain regular hydration",
			"Standard work practices acceptable",
		},
		Actions: []string{
			"Maintain regular hydration",
			"Follow normal break schedule",
			"Stay aware of conditions",
			"Keep communication open",
		},
	},
}

// Explain returns the guidance for a level. The returned slices are copies.
// Unknown levels yield a guidance with only a headline.
func Explain(level risktypes.Level) Guidance {
	g, ok := guidanceByLevel[level]
	if !ok {
		return Guidance{Headline: "No assessment available"}
	}
	return Guidance{
		Headline: g.Headline,
		Summary:  append([]string(nil), g.Summary...),
		Actions:  append([]string(nil), g.Actions...),
	}
}

// Conditions formats the environmental part of an input, e.g.
// "40°C, 75% humidity, 6h duration".
func Conditions(in risktypes.Input) string {
	return fmt.Sprintf("%d°C, %d%% humidity, %dh duration", in.Temperature, in.Humidity, in.Duration)
}

// Describe renders the guidance for an assessment as a multi-line block.
func Describe(in risktypes.Input, level risktypes.Level) string {
	g := Explain(level)

	var sb strings.Builder
	sb.WriteString(g.Headline)
	sb.WriteString("\n\nConditions: ")
	sb.WriteString(Conditions(in))
	sb.WriteString("\n")
	if len(g.Summary) > 0 {
		sb.WriteString("\n")
		for _, line := range g.Summary {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// FactorThreshold describes how one factor is scored.
type FactorThreshold struct {
	Factor    string
	Threshold string
}

// shortNames abbreviates labels in the threshold column
var shortNames = map[string]string{
	risktypes.ModerateActivityString: "Mod",
}

func shortName(name string) string {
	if short, ok := shortNames[name]; ok {
		return short
	}
	return name
}

// FactorThresholds returns the threshold descriptions for the breakdown view,
// in factor order followed by the level breakpoints, as scored by rules.
func FactorThresholds(rules risk.Rules) []FactorThreshold {
	activities := make([]string, 0, len(risktypes.Activities))
	for _, a := range risktypes.Activities {
		activities = append(activities, fmt.Sprintf("%s(+%d)", shortName(a.String()), rules.Activity[a]))
	}
	return []FactorThreshold{
		{Factor: "Temperature", Threshold: describeBands(rules.Temperature, "°C")},
		{Factor: "Humidity", Threshold: describeBands(rules.Humidity, "%")},
		{Factor: "Work Duration", Threshold: describeBands(rules.Duration, " hrs")},
		{Factor: "Activity Level", Threshold: strings.Join(activities, ", ")},
		{Factor: "TOTAL", Threshold: describeLevels(rules.Levels)},
	}
}

// describeBands renders scoring bands highest first, e.g. "≥40°C (+3) or 35-39°C (+2)".
// Bands worth no points are left out.
func describeBands(bands []risk.Band, unit string) string {
	parts := make([]string, 0, len(bands))
	for i, b := range bands {
		if b.Points == 0 {
			continue
		}
		var span string
		switch {
		case i == 0:
			span = fmt.Sprintf("≥%d", b.Min)
		case b.Min == bands[i-1].Min-1:
			span = strconv.Itoa(b.Min)
		default:
			span = fmt.Sprintf("%d-%d", b.Min, bands[i-1].Min-1)
		}
		parts = append(parts, fmt.Sprintf("%s%s (+%d)", span, unit, b.Points))
	}
	if len(parts) == 0 {
		return "no points"
	}
	return strings.Join(parts, " or ")
}

// describeLevels renders the breakpoints, e.g. "≥8 High, 5-7 Mod, ≤4 Low".
func describeLevels(levels []risk.Breakpoint) string {
	parts := make([]string, 0, len(levels))
	for i, bp := range levels {
		name := shortName(bp.Level.String())
		var span string
		switch {
		case i == 0:
			span = fmt.Sprintf("≥%d", bp.MinScore)
		case i == len(levels)-1:
			span = fmt.Sprintf("≤%d", levels[i-1].MinScore-1)
		case bp.MinScore == levels[i-1].MinScore-1:
			span = strconv.Itoa(bp.MinScore)
		default:
			span = fmt.Sprintf("%d-%d", bp.MinScore, levels[i-1].MinScore-1)
		}
		parts = append(parts, span+" "+name)
	}
	return strings.Join(parts, ", ")
}
