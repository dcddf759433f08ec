package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette values follow the Kanagawa Dragon palette the rest of the Grove
// tooling uses, with a light variant picked off the terminal background.
const (
	darkGreen  = "#98BB6C"
	darkRed    = "#FF5D62"
	darkYellow = "#FF9E3B"
	darkCyan   = "#7E9CD8"
	darkMuted  = "#727169"

	lightGreen  = "#4E7C5A"
	lightRed    = "#C34043"
	lightYellow = "#A68A64"
	lightCyan   = "#5B8BBE"
	lightMuted  = "#6C7086"
)

// Theme holds the lipgloss styles shared by the CLI summary, help output,
// and the live run view.
type Theme struct {
	Title   lipgloss.Style
	Accent  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
}

// New builds a theme for the given background.
func New(dark bool) *Theme {
	green, red, yellow, cyan, muted := lightGreen, lightRed, lightYellow, lightCyan, lightMuted
	if dark {
		green, red, yellow, cyan, muted = darkGreen, darkRed, darkYellow, darkCyan, darkMuted
	}

	return &Theme{
		Title:   lipgloss.NewStyle().Bold(true),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color(cyan)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(green)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(red)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(yellow)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
	}
}

// DefaultTheme matches the terminal the process started on.
var DefaultTheme = New(termenv.HasDarkBackground())
