// Package terminal decides whether output goes to an interactive terminal and
// whether it should be colored.
//
// Color priority, highest first:
//  1. ColorMode always/never (command line or config file)
//  2. CLICOLOR_FORCE with a truthy value
//  3. NO_COLOR set to any value
//  4. CLICOLOR, only when interactive
//  5. TERM capability when interactive
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ColorMode is the user's explicit color choice
type ColorMode string

const (
	// ColorAuto defers to the environment and terminal detection
	ColorAuto ColorMode = "auto"
	// ColorAlways forces color output
	ColorAlways ColorMode = "always"
	// ColorNever disables color output
	ColorNever ColorMode = "never"
)

// ErrInvalidColorMode is returned when a color mode cannot be parsed
var ErrInvalidColorMode = errors.New("invalid color mode")

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// An empty value means auto.
func (m *ColorMode) UnmarshalText(text []byte) error {
	s := ColorMode(strings.ToLower(strings.TrimSpace(string(text))))
	switch s {
	case ColorAuto, ColorAlways, ColorNever:
		*m = s
		return nil
	case "":
		*m = ColorAuto
		return nil
	default:
		return fmt.Errorf("%w: %q (must be one of: auto, always, never)", ErrInvalidColorMode, string(text))
	}
}

// Options controls detection
type Options struct {
	ColorMode ColorMode
	// ForceInteractive treats both input and output as a terminal, even under CI
	ForceInteractive bool
}

// Capabilities reports what the attached terminal can do
type Capabilities interface {
	IsInteractive() bool
	IsInteractiveInput(r io.Reader) bool
	SupportsColor() bool
}

// DefaultCapabilities combines explicit options with environment detection
type DefaultCapabilities struct {
	options Options
	isTTY   func() bool
}

// NewCapabilities creates capabilities that inspect stdout/stderr and the environment
func NewCapabilities(options Options) *DefaultCapabilities {
	return &DefaultCapabilities{options: options, isTTY: stdStreamsAreTerminals}
}

// IsInteractive returns true if output should be treated as interactive
func (c *DefaultCapabilities) IsInteractive() bool {
	if c.options.ForceInteractive {
		return true
	}
	if isCIEnvironment() {
		return false
	}
	return c.isTTY()
}

// IsInteractiveInput returns true if r is read from a person at a terminal,
// so prompts are worth printing
func (c *DefaultCapabilities) IsInteractiveInput(r io.Reader) bool {
	if c.options.ForceInteractive {
		return true
	}
	if isCIEnvironment() {
		return false
	}
	return isTerminalReader(r)
}

// SupportsColor returns true if color output should be enabled
func (c *DefaultCapabilities) SupportsColor() bool {
	switch c.options.ColorMode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if force := os.Getenv("CLICOLOR_FORCE"); force != "" && isTruthy(force) {
		return true
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}

	if !c.IsInteractive() || !termSupportsColor(os.Getenv("TERM")) {
		return false
	}
	if cliColor := os.Getenv("CLICOLOR"); cliColor != "" {
		return isTruthy(cliColor)
	}
	return true
}

// isTruthy accepts "1", "true" and "yes" in any case
func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
