package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/limbcalc/internal/ui"
)

// Style variables for the dashboard, rebuilt from the ui theme by
// initStyles.
var (
	panelStyle      lipgloss.Style
	titleStyle      lipgloss.Style
	labelStyle      lipgloss.Style
	valueStyle      lipgloss.Style
	barStyle        lipgloss.Style
	barEmptyStyle   lipgloss.Style
	bestStyle       lipgloss.Style
	errorStyle      lipgloss.Style
	footerKeyStyle  lipgloss.Style
	footerDescStyle lipgloss.Style
)

func init() {
	initStyles()
}

// initStyles rebuilds the styles from the current ui theme. Run calls it
// again after the theme has been initialized.
func initStyles() {
	plain := ui.GetCurrentTheme().Name == ui.NoColorTheme.Name
	color := func(c string) lipgloss.TerminalColor {
		if plain {
			return lipgloss.NoColor{}
		}
		return lipgloss.Color(c)
	}

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color("39")).
		Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(!plain).Foreground(color("39"))
	labelStyle = lipgloss.NewStyle().Foreground(color("245"))
	valueStyle = lipgloss.NewStyle().Bold(!plain).Foreground(color("252"))
	barStyle = lipgloss.NewStyle().Foreground(color("39"))
	barEmptyStyle = lipgloss.NewStyle().Foreground(color("238"))
	bestStyle = lipgloss.NewStyle().Bold(!plain).Foreground(color("42"))
	errorStyle = lipgloss.NewStyle().Bold(!plain).Foreground(color("196"))
	footerKeyStyle = lipgloss.NewStyle().Bold(!plain).Foreground(color("39"))
	footerDescStyle = lipgloss.NewStyle().Foreground(color("245"))
}
