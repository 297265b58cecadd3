package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Row is a labelled line of a Panel.
type Row struct {
	Label string
	Value string
}

// PanelStyle returns the lipgloss border style matching the current theme.
func PanelStyle() lipgloss.Style {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if GetCurrentTheme().Name == NoColorTheme.Name {
		return style.BorderForeground(lipgloss.NoColor{})
	}
	return style.BorderForeground(lipgloss.Color("39"))
}

// Panel renders rows as an aligned, bordered block with an optional title.
func Panel(title string, rows []Row) string {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.Label))
	}
	labelStyle := lipgloss.NewStyle().Width(width + 2)
	titleStyle := lipgloss.NewStyle().Bold(true)
	if GetCurrentTheme().Name == NoColorTheme.Name {
		titleStyle = lipgloss.NewStyle()
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(titleStyle.Render(title))
		if len(rows) > 0 {
			b.WriteByte('\n')
		}
	}
	for i, r := range rows {
		b.WriteString(labelStyle.Render(r.Label))
		b.WriteString(r.Value)
		if i < len(rows)-1 {
			b.WriteByte('\n')
		}
	}
	return PanelStyle().Render(b.String())
}
