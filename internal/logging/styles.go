package logging

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	colorSuccess = lipgloss.Color("34")  // Green
	colorError   = lipgloss.Color("196") // Red
	colorMuted   = lipgloss.Color("240") // Dark gray
	colorPrimary = lipgloss.Color("39")  // Blue
)

// Symbols for per-statement feedback.
const (
	SymbolCheck = "✓"
	SymbolCross = "✗"
)

// palette renders message decorations. The zero value renders plain text.
type palette struct {
	enabled bool
	success lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
	banner  lipgloss.Style
}

func newPalette(enabled bool) palette {
	return palette{
		enabled: enabled,
		success: lipgloss.NewStyle().Foreground(colorSuccess),
		failure: lipgloss.NewStyle().Foreground(colorError).Bold(true),
		muted:   lipgloss.NewStyle().Foreground(colorMuted),
		banner:  lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
	}
}

func (p palette) render(s lipgloss.Style, text string) string {
	if !p.enabled {
		return text
	}
	return s.Render(text)
}

// ColorEnabled reports whether f is a terminal and NO_COLOR is unset.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
