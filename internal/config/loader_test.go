package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/isseis/go-heat-risk/internal/logging"
	"github.com/isseis/go-heat-risk/internal/risk"
	"github.com/isseis/go-heat-risk/internal/risktypes"
	"github.com/isseis/go-heat-risk/internal/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Global(t *testing.T) {
	content := `
[global]
log_level = "debug"
log_dir = "/var/log/heatrisk"
color = "never"
metrics_file = "/var/lib/node_exporter/heatrisk.prom"
`
	cfg, err := Parse([]byte(content))
	require.NoError(t, err)

	assert.Equal(t, logging.LogLevelDebug, cfg.Global.LogLevel)
	assert.Equal(t, "/var/log/heatrisk", cfg.Global.LogDir)
	assert.Equal(t, terminal.ColorNever, cfg.Global.Color)
	assert.Equal(t, "/var/lib/node_exporter/heatrisk.prom", cfg.Global.MetricsFile)
	assert.Nil(t, cfg.Scoring)
}

func TestParse_EmptyAppliesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, cfg.Global.LogLevel)
	assert.Equal(t, DefaultColorMode, cfg.Global.Color)

	rules, err := cfg.Rules()
	require.NoError(t, err)
	assert.Equal(t, risk.DefaultRules(), rules)
}

func TestParse_ScoringOverride(t *testing.T) {
	content := `
[scoring]
temperature = [
  { min = 42, points = 4 },
  { min = 36, points = 2 },
]

[scoring.activity]
heavy = 4

[[scoring.levels]]
min_score = 9
level = "High"

[[scoring.levels]]
min_score = 5
level = "Moderate"

[[scoring.levels]]
min_score = 0
level = "Low"
`
	cfg, err := Parse([]byte(content))
	require.NoError(t, err)

	rules, err := cfg.Rules()
	require.NoError(t, err)

	assert.Equal(t, []risk.Band{{Min: 42, Points: 4}, {Min: 36, Points: 2}}, rules.Temperature)
	assert.Equal(t, risk.DefaultRules().Humidity, rules.Humidity)
	assert.Equal(t, 4, rules.Activity[risktypes.ActivityHeavy])
	assert.Equal(t, 1, rules.Activity[risktypes.ActivityLight])
	assert.Equal(t, risktypes.LevelModerate, rules.Classify(8))
	assert.Equal(t, risktypes.LevelHigh, rules.Classify(9))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		wantMsg string
	}{
		{
			name:    "invalid log level",
			content: "[global]\nlog_level = \"loud\"\n",
			wantMsg: "invalid log level",
		},
		{
			name:    "invalid color mode",
			content: "[global]\ncolor = \"rainbow\"\n",
			wantMsg: "invalid color mode",
		},
		{
			name:    "unknown key",
			content: "[global]\nverbose = true\n",
			wantMsg: "unknown keys",
		},
		{
			name:    "unknown activity",
			content: "[scoring.activity]\nextreme = 5\n",
			wantErr: ErrInvalidScoring,
		},
		{
			name:    "ascending bands",
			content: "[scoring]\nhumidity = [{ min = 50, points = 1 }, { min = 70, points = 2 }]\n",
			wantErr: risk.ErrBandsNotDescending,
		},
		{
			name:    "invalid level label",
			content: "[[scoring.levels]]\nmin_score = 0\nlevel = \"Critical\"\n",
			wantMsg: "invalid risk level",
		},
		{
			name:    "malformed toml",
			content: "[global\n",
			wantMsg: "failed to parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.content))
			require.Error(t, err)
			assert.Nil(t, cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoader_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "heatrisk.toml")
	require.NoError(t, os.WriteFile(path, []byte("[global]\nlog_level = \"warn\"\n"), 0o600))

	cfg, err := NewLoader().LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, logging.LogLevelWarn, cfg.Global.LogLevel)
}

func TestLoader_LoadConfigEmptyPath(t *testing.T) {
	cfg, err := NewLoader().LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoader_LoadConfigErrors(t *testing.T) {
	_, err := NewLoader().LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewLoader().LoadConfig(".")
	assert.ErrorIs(t, err, ErrInvalidConfigPath)
}
