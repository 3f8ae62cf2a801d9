package ui

import (
	"fmt"

	"github.com/alfredjeanlab/badges/internal/model"
)

// ANSI256 color codes.
const (
	colorAccent = 74  // blue
	colorCmd    = 250 // light gray
	colorMuted  = 245 // medium gray
	colorPass   = 114 // green
	colorWarn   = 179 // amber
	colorFail   = 167 // red
)

var noColor bool

func paint(code int, s string) string {
	if noColor || s == "" {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string { return paint(colorAccent, s) }

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string { return paint(colorMuted, s) }

// RenderCommand returns s styled as a command name.
func RenderCommand(s string) string { return paint(colorCmd, s) }

// RenderStatus colors a catalog status: green when ready, red when failed,
// amber while the load is still outstanding.
func RenderStatus(s model.CatalogStatus) string {
	switch s {
	case model.CatalogReady:
		return paint(colorPass, s.String())
	case model.CatalogFailed:
		return paint(colorFail, s.String())
	default:
		return paint(colorWarn, s.String())
	}
}

// RenderError returns s in the failure color.
func RenderError(s string) string { return paint(colorFail, s) }

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
