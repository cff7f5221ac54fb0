// Package color provides small helpers for coloring terminal output using
// ANSI escape sequences, including the colors used for each risk level.
//
//nolint:revive // package name conflicts with standard library
package color

import "github.com/isseis/go-heat-risk/internal/risktypes"

// ANSI color codes
const (
	resetCode  = "\033[0m"
	boldCode   = "\033[1m"
	grayCode   = "\033[90m" // Bright black/gray
	greenCode  = "\033[32m"
	yellowCode = "\033[33m"
	redCode    = "\033[31m"
	cyanCode   = "\033[36m"
)

// Color represents a color function that wraps text with ANSI escape
// sequences.
type Color func(text string) string

// NewColor creates a color function with the specified ANSI code.
func NewColor(ansiCode string) Color {
	return func(text string) string {
		return ansiCode + text + resetCode
	}
}

// Plain returns text unchanged
func Plain(text string) string {
	return text
}

// Predefined color functions
var (
	Bold   = NewColor(boldCode)
	Gray   = NewColor(grayCode)
	Green  = NewColor(greenCode)
	Yellow = NewColor(yellowCode)
	Red    = NewColor(redCode)
	Cyan   = NewColor(cyanCode)
)

// ForLevel returns the display color of a risk level.
// High is red, Moderate yellow, Low green; anything else is gray.
func ForLevel(level risktypes.Level) Color {
	switch level {
	case risktypes.LevelHigh:
		return Red
	case risktypes.LevelModerate:
		return Yellow
	case risktypes.LevelLow:
		return Green
	default:
		return Gray
	}
}

// Palette switches every color off when disabled, so callers never branch on
// color support themselves.
type Palette struct {
	enabled bool
}

// NewPalette creates a palette
func NewPalette(enabled bool) Palette {
	return Palette{enabled: enabled}
}

// Enabled reports whether escape sequences are emitted
func (p Palette) Enabled() bool {
	return p.enabled
}

// Level colors text with the level's color
func (p Palette) Level(level risktypes.Level, text string) string {
	if !p.enabled {
		return text
	}
	return ForLevel(level)(text)
}

// Apply colors text with c when enabled
func (p Palette) Apply(c Color, text string) string {
	if !p.enabled {
		return text
	}
	return c(text)
}
