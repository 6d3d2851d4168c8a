// Package header provides the screen header with the search box.
package header

import (
	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the header component.
type Props struct {
	Title       string
	Search      string
	Width       int
	TitleColor  lipgloss.Color
	BorderColor lipgloss.Color
}

// Render renders the header component.
func Render(p Props) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TitleColor).
		Width(p.Width).
		Align(lipgloss.Center).
		MarginBottom(1).
		Render(p.Title)

	boxWidth := p.Width - 2
	if boxWidth < 1 {
		boxWidth = 1
	}
	search := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.BorderColor).
		Width(boxWidth).
		PaddingLeft(1).
		MarginBottom(1).
		Render(p.Search)

	return lipgloss.JoinVertical(lipgloss.Left, title, search)
}
