package cmd

import "github.com/charmbracelet/lipgloss"

// Shared lipgloss styles for command summaries.
var (
	styleOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7fd88f"))
	styleDim  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	styleName = lipgloss.NewStyle().Bold(true)
)
