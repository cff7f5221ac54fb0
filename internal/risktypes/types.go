// Package risktypes defines the core data structures shared by the heat-stress
// scorer, the history log, the batch processor and the reporting layer.
package risktypes

import (
	"errors"
	"fmt"
	"strings"
)

// Activity represents the intensity of the physical work being assessed
type Activity int

const (
	// ActivityUnknown is the zero value and never a valid input
	ActivityUnknown Activity = iota

	// ActivityLight indicates light work (walking, light assembly)
	ActivityLight

	// ActivityModerate indicates moderate work (sustained lifting, brisk walking)
	ActivityModerate

	// ActivityHeavy indicates heavy work (digging, carrying loads)
	ActivityHeavy
)

// Activity label constants used for string representation and parsing.
const (
	LightActivityString    = "Light"
	ModerateActivityString = "Moderate"
	HeavyActivityString    = "Heavy"
)

// Activities lists the valid activity values in ascending intensity.
var Activities = []Activity{ActivityLight, ActivityModerate, ActivityHeavy}

// String returns the display label of the activity
func (a Activity) String() string {
	switch a {
	case ActivityLight:
		return LightActivityString
	case ActivityModerate:
		return ModerateActivityString
	case ActivityHeavy:
		return HeavyActivityString
	default:
		return "Unknown"
	}
}

// ParseActivity converts a label to an Activity. Matching ignores case and
// surrounding whitespace; anything else is rejected with ErrUnknownActivity.
func ParseActivity(s string) (Activity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return ActivityLight, nil
	case "moderate":
		return ActivityModerate, nil
	case "heavy":
		return ActivityHeavy, nil
	default:
		return ActivityUnknown, &ValidationError{Field: FieldActivity, Value: s, Err: ErrUnknownActivity}
	}
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (a *Activity) UnmarshalText(text []byte) error {
	parsed, err := ParseActivity(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalText implements the encoding.TextMarshaler interface.
func (a Activity) MarshalText() ([]byte, error) {
	if a == ActivityUnknown {
		return nil, ErrUnknownActivity
	}
	return []byte(a.String()), nil
}

// Level represents the heat-stress risk classification
type Level int

const (
	// LevelUnknown indicates a result that has not been classified
	LevelUnknown Level = iota

	// LevelLow indicates normal safety protocols apply
	LevelLow

	// LevelModerate indicates caution is advised
	LevelModerate

	// LevelHigh indicates immediate action is required
	LevelHigh
)

// Level string constants used for string representation and parsing.
const (
	UnknownLevelString  = "Unknown"
	LowLevelString      = "Low"
	ModerateLevelString = "Moderate"
	HighLevelString     = "High"
)

// Levels lists the classified levels in ascending severity.
var Levels = []Level{LevelLow, LevelModerate, LevelHigh}

// String returns a string representation of Level
func (l Level) String() string {
	switch l {
	case LevelLow:
		return LowLevelString
	case LevelModerate:
		return ModerateLevelString
	case LevelHigh:
		return HighLevelString
	default:
		return UnknownLevelString
	}
}

// ErrInvalidLevel is returned when a level label cannot be parsed
var ErrInvalidLevel = errors.New("invalid risk level")

// ParseLevel converts a label (case-insensitive) to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return LevelLow, nil
	case "moderate":
		return LevelModerate, nil
	case "high":
		return LevelHigh, nil
	default:
		return LevelUnknown, fmt.Errorf("%w: %q (must be one of: Low, Moderate, High)", ErrInvalidLevel, s)
	}
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// This enables validation during TOML parsing.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalText implements the encoding.TextMarshaler interface.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Input is a single assessment request.
type Input struct {
	Temperature int      // degrees Celsius
	Humidity    int      // relative humidity, percent
	Duration    int      // exposure, hours
	Activity    Activity // work intensity
}

// Breakdown holds the contribution of each factor to the total score.
type Breakdown struct {
	Temperature int
	Humidity    int
	Duration    int
	Activity    int
}

// Total returns the sum of all contributions.
func (b Breakdown) Total() int {
	return b.Temperature + b.Humidity + b.Duration + b.Activity
}

// Result is the outcome of scoring one Input.
type Result struct {
	Score     int
	Level     Level
	Breakdown Breakdown
}

// Assessment pairs an input with its result.
type Assessment struct {
	Input  Input
	Result Result
}
