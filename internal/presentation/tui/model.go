package tui

import (
	"context"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/postview/internal/application/settings"
	"github.com/tesso57/postview/internal/application/usecase"
	"github.com/tesso57/postview/internal/presentation/tui/state"
	"github.com/tesso57/postview/internal/presentation/tui/update"
	"github.com/tesso57/postview/internal/presentation/tui/view"
	listview "github.com/tesso57/postview/internal/presentation/tui/view/list"
)

// Model represents the main application state.
type Model struct {
	settings    settings.Settings
	browser     *usecase.Browser
	ctx         context.Context
	state       *state.ModelState
	changes     chan struct{}
	done        chan struct{}
	unsubscribe func()
	closeOnce   sync.Once
}

// NewModel creates a new application model observing browser.
func NewModel(cfg settings.Settings, browser *usecase.Browser) *Model {
	return NewModelWithContext(context.Background(), cfg, browser)
}

// NewModelWithContext creates a model whose fetch derives from ctx.
func NewModelWithContext(ctx context.Context, cfg settings.Settings, browser *usecase.Browser) *Model {
	m := &Model{
		settings: cfg,
		browser:  browser,
		ctx:      ctx,
		state:    newModelState(cfg),
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	m.unsubscribe = browser.Subscribe(update.Notify(m.changes))
	update.SyncState(m.state, m.deps())
	return m
}

// Init starts the spinner, the fetch and the change listener.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.state.Spinner.Tick,
		update.InitializeCmd(m.ctx, m.browser),
		update.WaitForChangeCmd(m.changes, m.done),
	)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := update.HandleKeyMsg(m.state, msg, m.deps())
		if handled {
			update.UpdateListSizes(m.state)
			return m, cmd
		}
	case tea.MouseMsg:
		if update.HandleMouseMsg(m.state, msg, m.deps()) {
			return m, nil
		}
	case tea.WindowSizeMsg:
		update.HandleWindowSize(m.state, msg)
	case update.StateChangedMsg:
		update.SyncState(m.state, m.deps())
		cmds = append(cmds, update.WaitForChangeCmd(m.changes, m.done))
	}

	if m.state.Browser.Phase == usecase.Loading {
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.state.Browser.Phase == usecase.Ready && m.state.Session == state.BrowseView {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.state.List, cmd = m.state.List.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the application view.
func (m *Model) View() string {
	return view.Render(m.buildProps())
}

// Close stops listening to the browser. It is safe to call more than once.
func (m *Model) Close() {
	m.closeOnce.Do(func() {
		m.unsubscribe()
		close(m.done)
	})
}

func (m *Model) deps() update.Deps {
	return update.Deps{Browser: m.browser}
}

func newModelState(cfg settings.Settings) *state.ModelState {
	st := &state.ModelState{
		Session: state.BrowseView,
		List:    newPostList(cfg),
		Search:  newTextInput(),
		Help:    help.New(),
		Spinner: newSpinner(cfg),
		Keys:    state.NewKeyMap(cfg.KeyMap),
	}

	st.List.KeyMap.CursorUp = st.Keys.Up
	st.List.KeyMap.CursorDown = st.Keys.Down
	st.List.KeyMap.PrevPage = st.Keys.UpPage
	st.List.KeyMap.NextPage = st.Keys.DownPage
	st.List.KeyMap.GoToStart = st.Keys.Top
	st.List.KeyMap.GoToEnd = st.Keys.Bottom

	return st
}

func newPostList(cfg settings.Settings) list.Model {
	delegate := listview.NewPostDelegate(listview.Theme{
		Accent:              lipgloss.Color(cfg.Theme.Accent),
		HighlightBackground: lipgloss.Color(cfg.Theme.HighlightBackground),
	})
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Posts"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowFilter(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("post", "posts")
	l.DisableQuitKeybindings()
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)
	return l
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search posts..."
	ti.Prompt = "> "
	ti.Width = 40
	return ti
}

func newSpinner(cfg settings.Settings) spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Accent))
	return s
}
