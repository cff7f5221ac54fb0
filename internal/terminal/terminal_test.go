package terminal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCapabilities(options Options, tty bool) *DefaultCapabilities {
	c := NewCapabilities(options)
	c.isTTY = func() bool { return tty }
	return c
}

func TestCapabilities_ColorPriority(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		options     Options
		tty         bool
		wantColor   bool
		description string
	}{
		{
			name:        "always overrides NO_COLOR and dumb terminal",
			envVars:     map[string]string{"NO_COLOR": "1", "CI": "true", "TERM": "dumb"},
			options:     Options{ColorMode: ColorAlways},
			wantColor:   true,
			description: "explicit always should win over every other condition",
		},
		{
			name:        "never overrides CLICOLOR_FORCE",
			envVars:     map[string]string{"CLICOLOR_FORCE": "1", "TERM": "xterm"},
			options:     Options{ColorMode: ColorNever},
			tty:         true,
			wantColor:   false,
			description: "explicit never should win over CLICOLOR_FORCE",
		},
		{
			name:        "CLICOLOR_FORCE enables color in CI",
			envVars:     map[string]string{"CLICOLOR_FORCE": "1", "CI": "true", "TERM": "dumb"},
			wantColor:   true,
			description: "CLICOLOR_FORCE=1 should override CI detection",
		},
		{
			name:        "CLICOLOR_FORCE=0 is ignored",
			envVars:     map[string]string{"CLICOLOR_FORCE": "0", "TERM": "xterm"},
			tty:         true,
			wantColor:   true,
			description: "falsy CLICOLOR_FORCE falls through to detection",
		},
		{
			name:        "NO_COLOR disables color on a color terminal",
			envVars:     map[string]string{"NO_COLOR": "", "TERM": "xterm"},
			tty:         true,
			wantColor:   false,
			description: "NO_COLOR applies even when empty",
		},
		{
			name:        "CLICOLOR=0 disables color when interactive",
			envVars:     map[string]string{"CLICOLOR": "0", "TERM": "xterm-256color"},
			tty:         true,
			wantColor:   false,
			description: "CLICOLOR is honored in interactive mode",
		},
		{
			name:        "interactive color terminal",
			envVars:     map[string]string{"TERM": "xterm-256color"},
			tty:         true,
			wantColor:   true,
			description: "auto-detection enables color",
		},
		{
			name:        "pipe disables color",
			envVars:     map[string]string{"TERM": "xterm"},
			tty:         false,
			wantColor:   false,
			description: "non-interactive output is plain",
		},
		{
			name:        "CI disables color",
			envVars:     map[string]string{"TERM": "xterm", "GITHUB_ACTIONS": "true"},
			tty:         true,
			wantColor:   false,
			description: "CI environments are non-interactive",
		},
		{
			name:        "unknown terminal",
			envVars:     map[string]string{"TERM": "mystery"},
			tty:         true,
			wantColor:   false,
			description: "unknown TERM values get no color",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCleanEnv(t, tt.envVars)

			caps := newTestCapabilities(tt.options, tt.tty)
			assert.Equal(t, tt.wantColor, caps.SupportsColor(), tt.description)
		})
	}
}

func TestCapabilities_IsInteractive(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		options Options
		tty     bool
		want    bool
	}{
		{name: "forced", envVars: map[string]string{"CI": "true"}, options: Options{ForceInteractive: true}, want: true},
		{name: "tty", tty: true, want: true},
		{name: "no tty", tty: false, want: false},
		{name: "CI=false is not CI", envVars: map[string]string{"CI": "false"}, tty: true, want: true},
		{name: "CI=true", envVars: map[string]string{"CI": "true"}, tty: true, want: false},
		{name: "jenkins", envVars: map[string]string{"JENKINS_URL": "http://ci"}, tty: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCleanEnv(t, tt.envVars)
			caps := newTestCapabilities(tt.options, tt.tty)
			assert.Equal(t, tt.want, caps.IsInteractive())
		})
	}
}

func TestCapabilities_IsInteractiveInput(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		options Options
		want    bool
	}{
		{name: "reader is not a terminal", want: false},
		{name: "forced", options: Options{ForceInteractive: true}, want: true},
		{name: "forced under CI", envVars: map[string]string{"CI": "true"}, options: Options{ForceInteractive: true}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCleanEnv(t, tt.envVars)
			var caps Capabilities = NewCapabilities(tt.options)
			assert.Equal(t, tt.want, caps.IsInteractiveInput(strings.NewReader("assess\n")))
		})
	}
}

func TestColorMode_UnmarshalText(t *testing.T) {
	tests := []struct {
		input   string
		want    ColorMode
		wantErr bool
	}{
		{input: "auto", want: ColorAuto},
		{input: "ALWAYS", want: ColorAlways},
		{input: " never ", want: ColorNever},
		{input: "", want: ColorAuto},
		{input: "sometimes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var m ColorMode
			err := m.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidColorMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}
}
