// Package tui renders analysis progress and results in the terminal.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))

	importanceHighStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8"))
	importanceMediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	importanceLowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)
