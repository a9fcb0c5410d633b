package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typetrial/internal/session"
)

// Palette paints text for one of the three character states.
type Palette interface {
	Paint(text string, state session.CharState) string
}

// StylePalette is a Palette backed by lipgloss styles.
type StylePalette struct {
	Untyped   lipgloss.Style
	Correct   lipgloss.Style
	Incorrect lipgloss.Style
}

// DefaultPalette leaves untyped text in the terminal default color and paints
// correct text green and mistakes red.
func DefaultPalette() StylePalette {
	return StylePalette{
		Untyped:   lipgloss.NewStyle(),
		Correct:   lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")),
		Incorrect: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
	}
}

// Paint implements Palette.
func (p StylePalette) Paint(text string, state session.CharState) string {
	switch state {
	case session.CharCorrect:
		return p.Correct.Render(text)
	case session.CharIncorrect:
		return p.Incorrect.Render(text)
	default:
		return p.Untyped.Render(text)
	}
}
