// Package update holds UI update logic for the TUI.
package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/postview/internal/application/usecase"
	"github.com/tesso57/postview/internal/presentation/tui/intent"
	"github.com/tesso57/postview/internal/presentation/tui/metrics"
	"github.com/tesso57/postview/internal/presentation/tui/presenter"
	"github.com/tesso57/postview/internal/presentation/tui/state"
)

// Deps groups external dependencies for updates.
type Deps struct {
	Browser *usecase.Browser
}

// StateChangedMsg is emitted when the browser reports a new state.
type StateChangedMsg struct{}

// InitializeCmd starts the one-time post fetch.
func InitializeCmd(ctx context.Context, browser *usecase.Browser) tea.Cmd {
	return func() tea.Msg {
		browser.Initialize(ctx)
		return nil
	}
}

// WaitForChangeCmd blocks until the browser signals a change or done closes.
func WaitForChangeCmd(changes <-chan struct{}, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-changes:
			return StateChangedMsg{}
		case <-done:
			return nil
		}
	}
}

// Notify returns a browser observer that coalesces notifications into changes.
func Notify(changes chan<- struct{}) func(usecase.State) {
	return func(usecase.State) {
		select {
		case changes <- struct{}{}:
		default:
		}
	}
}

// SyncState re-reads the browser snapshot into the presentation state.
func SyncState(s *state.ModelState, deps Deps) {
	if deps.Browser == nil {
		return
	}
	snap := deps.Browser.Snapshot()
	s.Browser = snap
	presenter.ApplyPostList(&s.List, snap)
	if s.Search.Value() != snap.Query {
		s.Search.SetValue(snap.Query)
	}
	if snap.Phase != usecase.Ready && s.Session == state.SearchView {
		s.Session = state.BrowseView
		s.Search.Blur()
	}
	UpdateListSizes(s)
}

// HandleKeyMsg processes key input based on the current session.
func HandleKeyMsg(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit, true
	}
	if s.Session == state.QuitView {
		return handleQuitView(s, msg)
	}
	if s.Help.ShowAll {
		return handleHelpView(s, msg)
	}
	if s.Session == state.SearchView {
		return handleSearchView(s, msg, deps)
	}

	parsed := intent.FromKeyMsg(msg, s.Keys)
	switch parsed.Type {
	case intent.Quit:
		s.Previous = s.Session
		s.Session = state.QuitView
		return nil, true
	case intent.ToggleHelp:
		s.Help.ShowAll = true
		return nil, true
	case intent.Search:
		if s.Browser.Phase != usecase.Ready {
			return nil, true
		}
		s.Session = state.SearchView
		UpdateListSizes(s)
		return s.Search.Focus(), true
	case intent.Select:
		if s.Browser.Phase != usecase.Ready {
			return nil, true
		}
		if item, ok := presenter.SelectedItem(s.List); ok {
			deps.Browser.SelectPost(item.ID)
			SyncState(s, deps)
		}
		return nil, true
	}
	return nil, false
}

func handleQuitView(s *state.ModelState, msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "y", "Y":
		return tea.Quit, true
	case "n", "N", "esc", "q", "Q":
		s.Session = s.Previous
		return nil, true
	}
	return nil, true
}

func handleHelpView(s *state.ModelState, msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "?", "esc", "q":
		s.Help.ShowAll = false
	}
	return nil, true
}

func handleSearchView(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc, tea.KeyTab:
		s.Search.Blur()
		s.Session = state.BrowseView
		UpdateListSizes(s)
		return nil, true
	}

	before := s.Search.Value()
	var cmd tea.Cmd
	s.Search, cmd = s.Search.Update(msg)
	if value := s.Search.Value(); value != before {
		deps.Browser.SetQuery(value)
		SyncState(s, deps)
	}
	return cmd, true
}

// HandleMouseMsg treats a left click on a row as selecting that post.
func HandleMouseMsg(s *state.ModelState, msg tea.MouseMsg, deps Deps) bool {
	if s.Browser.Phase != usecase.Ready || s.Session == state.QuitView || s.Help.ShowAll {
		return false
	}
	if msg.Action != tea.MouseActionPress {
		return false
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		s.List.CursorUp()
		return true
	case tea.MouseButtonWheelDown:
		s.List.CursorDown()
		return true
	case tea.MouseButtonLeft:
	default:
		return false
	}

	index, ok := rowAt(s, msg.Y-metrics.HeaderLines)
	if !ok {
		return false
	}
	item, ok := s.List.Items()[index].(*presenter.Item)
	if !ok {
		return false
	}
	s.List.Select(index)
	deps.Browser.SelectPost(item.ID)
	SyncState(s, deps)
	return true
}

// rowAt maps a line offset inside the list to an item index.
func rowAt(s *state.ModelState, line int) (int, bool) {
	if line < 0 || line >= s.List.Height() {
		return 0, false
	}
	const rowHeight = 2
	const rowSpacing = 1
	stride := rowHeight + rowSpacing
	if line%stride >= rowHeight {
		return 0, false
	}
	perPage := s.List.Paginator.PerPage
	onPage := line / stride
	if perPage > 0 && onPage >= perPage {
		return 0, false
	}
	index := s.List.Paginator.Page*perPage + onPage
	if index < 0 || index >= len(s.List.Items()) {
		return 0, false
	}
	return index, true
}

// HandleWindowSize updates layout sizing based on terminal size.
func HandleWindowSize(s *state.ModelState, msg tea.WindowSizeMsg) {
	s.Width = msg.Width
	s.Height = msg.Height

	UpdateListSizes(s)
}
