// Package view orchestrates the composition of UI components.
package view

import (
	"github.com/tesso57/postview/internal/application/usecase"
	"github.com/tesso57/postview/internal/presentation/tui/components/header"
	"github.com/tesso57/postview/internal/presentation/tui/components/layout"
	mainview "github.com/tesso57/postview/internal/presentation/tui/components/main"
	"github.com/tesso57/postview/internal/presentation/tui/components/modal"
	"github.com/tesso57/postview/internal/presentation/tui/components/status"
)

// Props aggregates properties for all UI components.
type Props struct {
	Phase  usecase.Phase
	Status status.Props
	Header header.Props
	Main   mainview.Props
	Modal  modal.Props
	Footer string
}

// Render renders the screen for the current phase. Loading, error and list
// presentations never appear together. A visible modal is drawn over the
// phase screen.
func Render(p Props) string {
	var body string
	switch p.Phase {
	case usecase.Ready:
		p.Main.Header = header.Render(p.Header)
		body = mainview.Render(p.Main)
	default:
		body = status.Render(p.Status)
	}

	screen := layout.Render(layout.Props{
		Main:   body,
		Footer: p.Footer,
	})
	return modal.Overlay(screen, p.Modal)
}
