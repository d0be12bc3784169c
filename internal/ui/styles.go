package ui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	ColorAccent = lipgloss.AdaptiveColor{Light: "#1f6feb", Dark: "#58a6ff"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "#6e7781", Dark: "#8b949e"}
	ColorWarn   = lipgloss.AdaptiveColor{Light: "#9a6700", Dark: "#d29922"}
	ColorPass   = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#3fb950"}
	ColorFail   = lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f85149"}
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(ColorPass)
	warnStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
	failStyle   = lipgloss.NewStyle().Foreground(ColorFail)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	accentStyle = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
)

// RenderPass renders s in the success color
func RenderPass(s string) string { return passStyle.Render(s) }

// RenderWarn renders s in the warning color
func RenderWarn(s string) string { return warnStyle.Render(s) }

// RenderFail renders s in the error color
func RenderFail(s string) string { return failStyle.Render(s) }

// RenderMuted renders s in the muted color
func RenderMuted(s string) string { return mutedStyle.Render(s) }

// RenderAccent renders s bold in the accent color
func RenderAccent(s string) string { return accentStyle.Render(s) }
