package config

import (
	"github.com/isseis/go-heat-risk/internal/logging"
	"github.com/isseis/go-heat-risk/internal/terminal"
)

// Default values for configuration fields
const (
	DefaultLogLevel  = logging.LogLevelInfo
	DefaultColorMode = terminal.ColorAuto
)

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	ApplyGlobalDefaults(&cfg.Global)
	return cfg
}

// ApplyGlobalDefaults fills unset GlobalSpec fields
func ApplyGlobalDefaults(spec *GlobalSpec) {
	if spec.LogLevel == "" {
		spec.LogLevel = DefaultLogLevel
	}
	if spec.Color == "" {
		spec.Color = DefaultColorMode
	}
}
