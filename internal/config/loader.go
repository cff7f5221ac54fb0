package config

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/isseis/go-heat-risk/internal/risk"
	"github.com/isseis/go-heat-risk/internal/risktypes"
	"github.com/isseis/go-heat-risk/internal/safefileio"
	"github.com/pelletier/go-toml/v2"
)

// Error definitions for the config package
var (
	// ErrInvalidConfigPath is returned when the config file path is invalid
	ErrInvalidConfigPath = errors.New("invalid config file path")

	// ErrInvalidScoring is returned when the scoring section does not form a valid rule table
	ErrInvalidScoring = errors.New("invalid scoring configuration")
)

// Loader handles loading and validating configurations
type Loader struct {
	readFile func(string) ([]byte, error)
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{readFile: safefileio.ReadFile}
}

// LoadConfig reads, parses and validates the file at configPath.
// An empty path yields the default configuration.
func (l *Loader) LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}
	cleanPath := filepath.Clean(configPath)
	if cleanPath == "." || cleanPath == string(filepath.Separator) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidConfigPath, configPath)
	}

	content, err := l.readFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", cleanPath, err)
	}
	return Parse(content)
}

// Parse parses and validates configuration content. Unknown keys are rejected.
func Parse(content []byte) (*Config, error) {
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(content)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return nil, fmt.Errorf("failed to parse config: unknown keys:\n%s", strictErr.String())
		}
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyGlobalDefaults(&cfg.Global)

	if _, err := cfg.Rules(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Rules builds the scoring rule table: defaults with the scoring section
// applied on top, then validated.
func (c *Config) Rules() (risk.Rules, error) {
	rules := risk.DefaultRules()
	spec := c.Scoring
	if spec == nil {
		return rules, nil
	}

	if spec.Temperature != nil {
		rules.Temperature = toBands(spec.Temperature)
	}
	if spec.Humidity != nil {
		rules.Humidity = toBands(spec.Humidity)
	}
	if spec.Duration != nil {
		rules.Duration = toBands(spec.Duration)
	}
	for label, points := range spec.Activity {
		activity, err := risktypes.ParseActivity(label)
		if err != nil {
			return risk.Rules{}, fmt.Errorf("%w: scoring.activity: %w", ErrInvalidScoring, err)
		}
		rules.Activity[activity] = points
	}
	if spec.Levels != nil {
		rules.Levels = make([]risk.Breakpoint, len(spec.Levels))
		for i, bp := range spec.Levels {
			rules.Levels[i] = risk.Breakpoint{MinScore: bp.MinScore, Level: bp.Level}
		}
	}

	if err := rules.Validate(); err != nil {
		return risk.Rules{}, fmt.Errorf("%w: %w", ErrInvalidScoring, err)
	}
	return rules, nil
}

func toBands(specs []BandSpec) []risk.Band {
	bands := make([]risk.Band, len(specs))
	for i, s := range specs {
		bands[i] = risk.Band{Min: s.Min, Points: s.Points}
	}
	return bands
}
