package tui

import "github.com/charmbracelet/lipgloss"

// Shared terminal styles for command output.
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)
