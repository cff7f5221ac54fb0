package risktypes

import (
	"errors"
	"fmt"
)

// Field names reported by validation errors. They match the batch column names.
const (
	FieldTemperature = "temperature"
	FieldHumidity    = "humidity"
	FieldDuration    = "duration"
	FieldActivity    = "activity"
)

// Accepted input ranges (inclusive).
const (
	MinTemperature = 25
	MaxTemperature = 50
	MinHumidity    = 30
	MaxHumidity    = 90
	MinDuration    = 1
	MaxDuration    = 10
)

// Validation errors
var (
	// ErrOutOfRange is returned when a numeric input is outside its accepted range
	ErrOutOfRange = errors.New("value out of range")

	// ErrUnknownActivity is returned when the activity label is not Light, Moderate or Heavy
	ErrUnknownActivity = errors.New("unknown activity (must be one of: Light, Moderate, Heavy)")
)

// ValidationError names the offending input field.
type ValidationError struct {
	Field string
	Value any
	Min   int
	Max   int
	Err   error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if errors.Is(e.Err, ErrOutOfRange) {
		return fmt.Sprintf("%s: %v is out of range [%d, %d]", e.Field, e.Value, e.Min, e.Max)
	}
	return fmt.Sprintf("%s: %q: %v", e.Field, fmt.Sprint(e.Value), e.Err)
}

// Unwrap returns the underlying sentinel error
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func checkRange(field string, value, minValue, maxValue int) error {
	if value < minValue || value > maxValue {
		return &ValidationError{Field: field, Value: value, Min: minValue, Max: maxValue, Err: ErrOutOfRange}
	}
	return nil
}

// Validate checks every field of the input and returns the first violation.
func (in Input) Validate() error {
	if err := checkRange(FieldTemperature, in.Temperature, MinTemperature, MaxTemperature); err != nil {
		return err
	}
	if err := checkRange(FieldHumidity, in.Humidity, MinHumidity, MaxHumidity); err != nil {
		return err
	}
	if err := checkRange(FieldDuration, in.Duration, MinDuration, MaxDuration); err != nil {
		return err
	}
	switch in.Activity {
	case ActivityLight, ActivityModerate, ActivityHeavy:
		return nil
	default:
		return &ValidationError{Field: FieldActivity, Value: in.Activity.String(), Err: ErrUnknownActivity}
	}
}
