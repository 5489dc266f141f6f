package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("87")).Padding(0, 1)
var tableCellStyle = lipgloss.NewStyle().Padding(0, 1)

// ScriptsTable renders the saved-scripts listing. Each row is
// name, size, modified.
func ScriptsTable(rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("NAME", "SIZE", "MODIFIED").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Rows(rows...)
	return t.Render()
}
