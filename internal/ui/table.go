package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	TableHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent).Align(lipgloss.Center)
	TableWarningStyle = lipgloss.NewStyle().Foreground(ColorWarn)
	TableSuccessStyle = lipgloss.NewStyle().Foreground(ColorPass)
	TableBorderStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
)

// NewTable returns a rounded-border table sized to width
func NewTable(width int) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(TableBorderStyle).
		Width(width)
}
