package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/untoldecay/fossiluse/internal/classify"
	"github.com/untoldecay/fossiluse/internal/stats"
	"github.com/untoldecay/fossiluse/internal/types"
)

// FormatNumber renders a statistic with two decimals, NaN as "NaN".
func FormatNumber(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.2f", v)
}

func cellStyle(col int) lipgloss.Style {
	style := lipgloss.NewStyle().Padding(0, 1)
	if col == 0 {
		return style.Align(lipgloss.Left).Bold(true).Foreground(ColorAccent)
	}
	return style.Align(lipgloss.Right)
}

// RenderDescribe renders the record count and one row of summary
// statistics per column.
func RenderDescribe(count int, summaries []stats.Summary, width int) string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Column,
			fmt.Sprintf("%d", s.Count),
			FormatNumber(s.Mean),
			FormatNumber(s.Std),
			FormatNumber(s.Min),
			FormatNumber(s.Q25),
			FormatNumber(s.Q50),
			FormatNumber(s.Q75),
			FormatNumber(s.Max),
		})
	}

	t := NewTable(width).
		Headers("", "count", "mean", "std", "min", "25%", "50%", "75%", "max").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle.Padding(0, 1)
			}
			return cellStyle(col)
		})

	header := TableHeaderStyle.Render(fmt.Sprintf("Data Records Count: %d", count))
	return lipgloss.JoinVertical(lipgloss.Left, header, "", t.String())
}

// labelStyle mutes the Other fallback so real matches stand out
func labelStyle(value string) lipgloss.Style {
	style := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Left)
	if value == "Other" {
		return style.Foreground(ColorMuted)
	}
	return style
}

// RenderLabels renders the three labels of each entity name.
func RenderLabels(names []string, labels []types.Labels, width int) string {
	rows := make([][]string, 0, len(names))
	for i, name := range names {
		l := labels[i]
		rows = append(rows, []string{name, string(l.Organization), string(l.Region), string(l.EuroBloc)})
	}

	return NewTable(width).
		Headers(types.ColEntity, types.ColOrganizations, types.ColRegion, types.ColEURU).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle.Padding(0, 1)
			}
			if col == 0 {
				return cellStyle(0)
			}
			return labelStyle(rows[row][col])
		}).
		String()
}

// RenderOverlaps renders names listed under more than one region together
// with the region that wins.
func RenderOverlaps(overlaps []classify.Overlap, width int) string {
	if len(overlaps) == 0 {
		return TableSuccessStyle.Render("No region overlaps.")
	}

	rows := make([][]string, 0, len(overlaps))
	for _, o := range overlaps {
		shadowed := make([]string, len(o.Shadowed))
		for i, r := range o.Shadowed {
			shadowed[i] = string(r)
		}
		rows = append(rows, []string{o.Name, string(o.Winner), strings.Join(shadowed, ", ")})
	}

	t := NewTable(width).
		Headers("Entity", "Classified as", "Also listed in").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle.Padding(0, 1)
			}
			style := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Left)
			switch col {
			case 0:
				return style.Bold(true)
			case 2:
				return style.Foreground(ColorWarn)
			}
			return style
		})

	header := TableWarningStyle.Render(fmt.Sprintf("%d names appear in more than one region list; the first region in priority order wins.", len(overlaps)))
	return lipgloss.JoinVertical(lipgloss.Left, header, "", t.String())
}
