// Package stats contains statistics calculations and reporting.
package stats

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// formatTable pads rows into aligned columns separated by one space.
func formatTable(rows [][]string, rightAlignCols map[int]bool) []string {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = padCell(cell, widths[i], rightAlignCols[i])
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return lines
}

// padCell ignores ANSI styling so emphasized cells still align.
func padCell(value string, width int, rightAlign bool) string {
	padding := width - lipgloss.Width(value)
	if padding <= 0 {
		return value
	}
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}
