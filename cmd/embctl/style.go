package main

import "github.com/charmbracelet/lipgloss"

var (
	okStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3FB950"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	skipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
)
