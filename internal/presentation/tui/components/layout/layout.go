// Package layout provides the main layout component.
package layout

import (
	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the layout component.
type Props struct {
	Main   string
	Footer string
}

// Render renders the layout component.
func Render(p Props) string {
	if p.Footer == "" {
		return p.Main
	}
	return lipgloss.JoinVertical(lipgloss.Left, p.Main, p.Footer)
}
