// Package config loads the heatrisk TOML configuration: global settings for
// logging, color and metrics output, and an optional override of the scoring
// rule table.
package config

import (
	"github.com/isseis/go-heat-risk/internal/logging"
	"github.com/isseis/go-heat-risk/internal/risktypes"
	"github.com/isseis/go-heat-risk/internal/terminal"
)

// Config is the root of the configuration file
type Config struct {
	Global  GlobalSpec   `toml:"global"`
	Scoring *ScoringSpec `toml:"scoring"`
}

// GlobalSpec holds process-wide settings
type GlobalSpec struct {
	LogLevel    logging.LogLevel   `toml:"log_level"`
	LogDir      string             `toml:"log_dir"`
	Color       terminal.ColorMode `toml:"color"`
	MetricsFile string             `toml:"metrics_file"`
}

// BandSpec is one temperature, humidity or duration band
type BandSpec struct {
	Min    int `toml:"min"`
	Points int `toml:"points"`
}

// BreakpointSpec maps scores at or above MinScore to Level
type BreakpointSpec struct {
	MinScore int             `toml:"min_score"`
	Level    risktypes.Level `toml:"level"`
}

// ScoringSpec overrides parts of the rule table. Omitted sections keep their
// defaults; activity entries are merged over the default map.
type ScoringSpec struct {
	Temperature []BandSpec       `toml:"temperature"`
	Humidity    []BandSpec       `toml:"humidity"`
	Duration    []BandSpec       `toml:"duration"`
	Activity    map[string]int   `toml:"activity"`
	Levels      []BreakpointSpec `toml:"levels"`
}
