// Package modal provides modal dialog components.
package modal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Kind represents the type of modal.
type Kind int

const (
	// None indicates no modal.
	None Kind = iota
	// Help shows the help dialog.
	Help
	// Quit shows the quit confirmation.
	Quit
)

// Props defines the properties for the modal component.
type Props struct {
	Visible bool
	Kind    Kind
	Body    string
	Width   int
	Height  int
}

// Render renders the modal component centered in its own blank screen.
func Render(p Props) string {
	if !p.Visible {
		return ""
	}
	return lipgloss.Place(p.Width, p.Height, lipgloss.Center, lipgloss.Center, dialog(p))
}

// Overlay draws the dialog over the rows of background it covers. Rows above
// and below the dialog keep the background content.
func Overlay(background string, p Props) string {
	if !p.Visible {
		return background
	}
	rows := strings.Split(dialog(p), "\n")
	lines := strings.Split(background, "\n")
	for len(lines) < p.Height {
		lines = append(lines, "")
	}
	top := (len(lines) - len(rows)) / 2
	if top < 0 {
		top = 0
	}
	width := max(p.Width, lipgloss.Width(rows[0]))
	for i, row := range rows {
		if top+i >= len(lines) {
			lines = append(lines, "")
		}
		lines[top+i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, row)
	}
	return strings.Join(lines, "\n")
}

func dialog(p Props) string {
	borderColor := lipgloss.Color("63")
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2)

	if p.Kind == Quit {
		borderColor = lipgloss.Color("205")
		style = style.Width(40)
	}

	return style.BorderForeground(borderColor).Render(p.Body)
}
