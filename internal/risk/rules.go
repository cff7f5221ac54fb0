package risk

import (
	"errors"
	"fmt"

	"github.com/isseis/go-heat-risk/internal/risktypes"
)

// Rule table validation errors
var (
	ErrEmptyBands           = errors.New("factor has no bands")
	ErrBandsNotDescending   = errors.New("band minimums must be strictly descending")
	ErrNegativeContribution = errors.New("contribution must not be negative")
	ErrMissingActivity      = errors.New("activity contribution missing")
	ErrEmptyBreakpoints     = errors.New("level breakpoints are empty")
	ErrBreakpointsOrder     = errors.New("level breakpoints must be strictly descending in score and severity")
	ErrNoFloorBreakpoint    = errors.New("lowest level breakpoint must start at score 0 or below")
)

// Band awards Points when a factor value is at least Min.
type Band struct {
	Min    int
	Points int
}

// Breakpoint assigns Level to every score at least MinScore.
type Breakpoint struct {
	MinScore int
	Level    risktypes.Level
}

// Rules is the declarative scoring table. Bands and breakpoints are evaluated in
// order and the first match wins; a value below every band contributes 0.
type Rules struct {
	Temperature []Band
	Humidity    []Band
	Duration    []Band
	Activity    map[risktypes.Activity]int
	Levels      []Breakpoint
}

// DefaultRules returns the standard heat-stress rule table.
func DefaultRules() Rules {
	return Rules{
		Temperature: []Band{{Min: 40, Points: 3}, {Min: 35, Points: 2}},
		Humidity:    []Band{{Min: 70, Points: 2}},
		Duration:    []Band{{Min: 6, Points: 2}},
		Activity: map[risktypes.Activity]int{
			risktypes.ActivityLight:    1,
			risktypes.ActivityModerate: 2,
			risktypes.ActivityHeavy:    3,
		},
		Levels: []Breakpoint{
			{MinScore: 8, Level: risktypes.LevelHigh},
			{MinScore: 5, Level: risktypes.LevelModerate},
			{MinScore: 0, Level: risktypes.LevelLow},
		},
	}
}

// points returns the contribution of the first band the value reaches.
func points(bands []Band, value int) int {
	for _, b := range bands {
		if value >= b.Min {
			return b.Points
		}
	}
	return 0
}

// Classify maps a score to its level using the breakpoints.
func (r Rules) Classify(score int) risktypes.Level {
	for _, bp := range r.Levels {
		if score >= bp.MinScore {
			return bp.Level
		}
	}
	return risktypes.LevelUnknown
}

// Validate checks the structural constraints of the table.
func (r Rules) Validate() error {
	factors := []struct {
		name  string
		bands []Band
	}{
		{risktypes.FieldTemperature, r.Temperature},
		{risktypes.FieldHumidity, r.Humidity},
		{risktypes.FieldDuration, r.Duration},
	}
	for _, f := range factors {
		if err := validateBands(f.bands); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}

	for _, a := range risktypes.Activities {
		p, ok := r.Activity[a]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingActivity, a)
		}
		if p < 0 {
			return fmt.Errorf("activity %s: %w", a, ErrNegativeContribution)
		}
	}

	return validateBreakpoints(r.Levels)
}

func validateBands(bands []Band) error {
	if len(bands) == 0 {
		return ErrEmptyBands
	}
	for i, b := range bands {
		if b.Points < 0 {
			return fmt.Errorf("band %d: %w", i, ErrNegativeContribution)
		}
		if i > 0 && b.Min >= bands[i-1].Min {
			return fmt.Errorf("band %d (min %d): %w", i, b.Min, ErrBandsNotDescending)
		}
	}
	return nil
}

func validateBreakpoints(levels []Breakpoint) error {
	if len(levels) == 0 {
		return ErrEmptyBreakpoints
	}
	for i, bp := range levels {
		if bp.Level == risktypes.LevelUnknown {
			return fmt.Errorf("breakpoint %d: %w", i, risktypes.ErrInvalidLevel)
		}
		if i > 0 && (bp.MinScore >= levels[i-1].MinScore || bp.Level >= levels[i-1].Level) {
			return fmt.Errorf("breakpoint %d: %w", i, ErrBreakpointsOrder)
		}
	}
	if levels[len(levels)-1].MinScore > 0 {
		return ErrNoFloorBreakpoint
	}
	return nil
}
