// Package status renders the full-screen loading and error states.
package status

import (
	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the status component.
type Props struct {
	Message string
	Color   lipgloss.Color
	Bold    bool
	Width   int
	Height  int
}

// Render centers the message on the screen.
func Render(p Props) string {
	style := lipgloss.NewStyle().Bold(p.Bold)
	if p.Color != "" {
		style = style.Foreground(p.Color)
	}
	return lipgloss.Place(p.Width, p.Height, lipgloss.Center, lipgloss.Center, style.Render(p.Message))
}
