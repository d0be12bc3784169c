package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/list"
	"github.com/charmbracelet/lipgloss/table"
)

// RunReport aggregates what a pipeline run did, for the terminal summary
type RunReport struct {
	Input    string        `json:"input"`
	Output   string        `json:"output"`
	DBPath   string        `json:"db,omitempty"`
	Chart    string        `json:"chart,omitempty"`
	Radar    string        `json:"radar,omitempty"`
	Duration time.Duration `json:"duration_ns"`

	// Row accounting from the clean stage
	Read           int `json:"read"`
	Kept           int `json:"kept"`
	DroppedEntity  int `json:"dropped_entity"`
	DroppedOutside int `json:"dropped_year"`

	Warnings []string `json:"warnings,omitempty"`
}

// RenderRunReport renders the completed steps, the file table and any
// warnings of a run.
func RenderRunReport(res RunReport, width int) string {
	var sections []string

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPass).
		Render(fmt.Sprintf("✓ Pipeline finished in %s", res.Duration.Round(time.Millisecond)))
	sections = append(sections, header, "")

	check := func(_ list.Items, i int) string { return RenderPass("✓") }
	l := list.New().
		Enumerator(check).
		EnumeratorStyle(lipgloss.NewStyle().MarginRight(1))

	if res.Output != "" {
		rows := list.New().Enumerator(func(_ list.Items, i int) string {
			return RenderMuted("-")
		}).EnumeratorStyle(lipgloss.NewStyle().MarginRight(1))
		rows.Item(fmt.Sprintf("%d read", res.Read))
		rows.Item(fmt.Sprintf("%d dropped as aggregates", res.DroppedEntity))
		rows.Item(fmt.Sprintf("%d dropped outside the year window", res.DroppedOutside))
		rows.Item(fmt.Sprintf("%d kept", res.Kept))

		l.Item("Cleaned and classified")
		l.Item(rows)
	}
	if res.DBPath != "" {
		l.Item("Saved to SQLite")
	}
	if res.Chart != "" {
		l.Item("Rendered infographic")
	}
	if res.Radar != "" {
		l.Item("Rendered radar plot")
	}
	sections = append(sections, l.String(), "")

	var detailsRows [][]string
	for _, kv := range [][2]string{
		{"Input", res.Input},
		{"Output", res.Output},
		{"Database", res.DBPath},
		{"Infographic", res.Chart},
		{"Radar", res.Radar},
	} {
		if kv[1] != "" {
			detailsRows = append(detailsRows, []string{kv[0], kv[1]})
		}
	}

	summaryTable := table.New().
		Headers("File", "Path").
		Rows(detailsRows...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(TableBorderStyle).
		Width(width).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				if col == 0 {
					return TableHeaderStyle.Width(16)
				}
				return TableHeaderStyle.Width(width - 16 - 3)
			}
			style := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Left)
			if col == 0 {
				style = style.Bold(true).Foreground(ColorAccent)
			}
			return style
		})
	sections = append(sections, summaryTable.String())

	if len(res.Warnings) > 0 {
		warnBox := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorWarn).
			Padding(0, 1).
			Width(width - 2)

		content := []string{lipgloss.NewStyle().Bold(true).Foreground(ColorWarn).Render("⚠ Warnings:")}
		for _, w := range res.Warnings {
			content = append(content, "  • "+w)
		}
		sections = append(sections, "", warnBox.Render(strings.Join(content, "\n")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
