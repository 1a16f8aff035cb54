// Package themes defines the visual styles for the TUI.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Normal       lipgloss.Style
	Bold         lipgloss.Style
	Muted        lipgloss.Style
	Selected     lipgloss.Style
	TabActive    lipgloss.Style
	TabInactive  lipgloss.Style
	Box          lipgloss.Style
	FieldLabel   lipgloss.Style
	FieldActive  lipgloss.Style
	StatusInfo   lipgloss.Style
	StatusError  lipgloss.Style
	OverBudget   lipgloss.Style
	WithinBudget lipgloss.Style
	Primary      lipgloss.Color
	Accent       lipgloss.Color
	Error        lipgloss.Color
	Success      lipgloss.Color
}

// Default is the default theme.
var Default = Theme{
	Primary: lipgloss.Color("#06b6d4"),
	Accent:  lipgloss.Color("#eab308"),
	Error:   lipgloss.Color("#ef4444"),
	Success: lipgloss.Color("#10b981"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#06b6d4")),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Bold: lipgloss.NewStyle().
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	Selected: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#1a1a1a")).
		Background(lipgloss.Color("#eab308")),
	TabActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#eab308")),
	TabInactive: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#06b6d4")).
		Padding(0, 1),
	FieldLabel: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")).
		Width(12),
	FieldActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#eab308")),
	StatusInfo: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")),
	OverBudget: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ef4444")),
	WithinBudget: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")),
}
