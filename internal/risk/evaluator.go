// Package risk provides heat-stress risk scoring.
// It sums independent per-factor contributions from a declarative rule table and
// classifies the total into a risk level.
package risk

import (
	"fmt"

	"github.com/isseis/go-heat-risk/internal/risktypes"
)

// Evaluator interface defines methods for scoring an assessment input
type Evaluator interface {
	Evaluate(in risktypes.Input) (risktypes.Result, error)
}

// StandardEvaluator implements risk evaluation using a rule table
type StandardEvaluator struct {
	rules Rules
}

// NewStandardEvaluator creates an evaluator with the default rule table
func NewStandardEvaluator() *StandardEvaluator {
	return &StandardEvaluator{rules: DefaultRules()}
}

// NewEvaluator creates an evaluator with a custom rule table.
// The table is validated before use.
func NewEvaluator(rules Rules) (*StandardEvaluator, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring rules: %w", err)
	}
	return &StandardEvaluator{rules: rules}, nil
}

// Rules returns the rule table in use
func (e *StandardEvaluator) Rules() Rules {
	return e.rules
}

// Breakdown computes the per-factor contributions without validating ranges.
// The activity must be known to the table.
func (e *StandardEvaluator) Breakdown(in risktypes.Input) (risktypes.Breakdown, error) {
	activityPoints, ok := e.rules.Activity[in.Activity]
	if !ok {
		return risktypes.Breakdown{}, &risktypes.ValidationError{
			Field: risktypes.FieldActivity,
			Value: in.Activity.String(),
			Err:   risktypes.ErrUnknownActivity,
		}
	}

	return risktypes.Breakdown{
		Temperature: points(e.rules.Temperature, in.Temperature),
		Humidity:    points(e.rules.Humidity, in.Humidity),
		Duration:    points(e.rules.Duration, in.Duration),
		Activity:    activityPoints,
	}, nil
}

// Evaluate validates the input and returns its score, level and breakdown
func (e *StandardEvaluator) Evaluate(in risktypes.Input) (risktypes.Result, error) {
	if err := in.Validate(); err != nil {
		return risktypes.Result{}, err
	}

	breakdown, err := e.Breakdown(in)
	if err != nil {
		return risktypes.Result{}, err
	}

	score := breakdown.Total()
	return risktypes.Result{
		Score:     score,
		Level:     e.rules.Classify(score),
		Breakdown: breakdown,
	}, nil
}

// Score evaluates raw values with the default rule table. The activity label is
// parsed case-insensitively; unknown labels are rejected.
func Score(temperature, humidity, duration int, activity string) (risktypes.Result, error) {
	a, err := risktypes.ParseActivity(activity)
	if err != nil {
		return risktypes.Result{}, err
	}
	return NewStandardEvaluator().Evaluate(risktypes.Input{
		Temperature: temperature,
		Humidity:    humidity,
		Duration:    duration,
		Activity:    a,
	})
}
