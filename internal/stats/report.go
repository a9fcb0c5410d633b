package stats

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typetrial/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#52C41A"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// RenderReport prints the final scores of a session.
func RenderReport(w io.Writer, r model.Result) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Results (%s)", r.Mode))); err != nil {
		return err
	}
	rows := [][]string{
		{"Time", fmt.Sprintf("%.2f s", r.Elapsed.Seconds())},
		{"Raw WPM", fmt.Sprintf("%d", r.RawWPM)},
		{"Actual WPM", fmt.Sprintf("%d", r.ActualWPM)},
		{"Accuracy", fmt.Sprintf("%d%%", r.Accuracy)},
		{"Consistency", fmt.Sprintf("%.2f%%", r.Consistency*100)},
	}
	for _, row := range rows {
		row[0] = labelStyle.Render(row[0])
		row[1] = valueStyle.Render(row[1])
	}
	for _, line := range formatTable(rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
