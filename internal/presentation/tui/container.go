// Package tui provides the main user interface model and view components.
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/postview/internal/application/usecase"
	"github.com/tesso57/postview/internal/presentation/tui/components/header"
	mainview "github.com/tesso57/postview/internal/presentation/tui/components/main"
	"github.com/tesso57/postview/internal/presentation/tui/components/modal"
	"github.com/tesso57/postview/internal/presentation/tui/components/status"
	"github.com/tesso57/postview/internal/presentation/tui/metrics"
	"github.com/tesso57/postview/internal/presentation/tui/state"
	"github.com/tesso57/postview/internal/presentation/tui/update"
	"github.com/tesso57/postview/internal/presentation/tui/view"
)

const (
	screenTitle    = "Posts Viewer"
	loadingMessage = "Loading posts..."
	idleBorder     = lipgloss.Color("240")
)

func (m *Model) buildProps() view.Props {
	return view.Props{
		Phase:  m.state.Browser.Phase,
		Status: m.buildStatusProps(),
		Header: m.buildHeaderProps(),
		Main:   m.buildMainProps(),
		Modal:  m.buildModalProps(),
		Footer: m.buildFooterProps(),
	}
}

func (m *Model) buildStatusProps() status.Props {
	props := status.Props{
		Width:  m.state.Width,
		Height: update.BodyHeight(m.state),
	}
	switch m.state.Browser.Phase {
	case usecase.Loading:
		props.Message = fmt.Sprintf("%s %s", m.state.Spinner.View(), loadingMessage)
	case usecase.Error:
		props.Message = m.state.Browser.Err
		props.Color = lipgloss.Color(m.settings.Theme.Error)
		props.Bold = true
	}
	return props
}

func (m *Model) buildHeaderProps() header.Props {
	border := idleBorder
	if m.state.Session == state.SearchView {
		border = lipgloss.Color(m.settings.Theme.Accent)
	}
	return header.Props{
		Title:       screenTitle,
		Search:      m.state.Search.View(),
		Width:       m.state.Width,
		TitleColor:  lipgloss.Color(m.settings.Theme.Header),
		BorderColor: border,
	}
}

func (m *Model) buildMainProps() mainview.Props {
	return mainview.Props{
		Width:  m.state.List.Width(),
		Height: m.state.List.Height() + metrics.HeaderLines,
		Body:   m.state.List.View(),
	}
}

func (m *Model) buildModalProps() modal.Props {
	if m.state.Session == state.QuitView {
		return modal.Props{
			Visible: true,
			Kind:    modal.Quit,
			Body:    "Are you sure you want to quit?\n\n(y/n)",
			Width:   m.state.Width,
			Height:  m.state.Height,
		}
	}
	if m.state.Help.ShowAll {
		return modal.Props{
			Visible: true,
			Kind:    modal.Help,
			Body:    m.state.Help.View(&m.state.Keys),
			Width:   m.state.Width,
			Height:  m.state.Height,
		}
	}
	return modal.Props{Visible: false}
}

func (m *Model) buildFooterProps() string {
	return state.Footer(m.state)
}
