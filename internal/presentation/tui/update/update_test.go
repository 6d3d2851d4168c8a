package update

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/postview/internal/application/usecase"
	"github.com/tesso57/postview/internal/domain/post"
	"github.com/tesso57/postview/internal/presentation/tui/metrics"
	"github.com/tesso57/postview/internal/presentation/tui/state"
)

type stubFetcher struct {
	posts []post.Post
}

func (s stubFetcher) FetchPosts(_ context.Context) ([]post.Post, error) {
	return s.posts, nil
}

func readyDeps(t *testing.T) Deps {
	t.Helper()
	browser := usecase.NewBrowser(stubFetcher{posts: []post.Post{
		{ID: 1, Title: "Hello World", Body: "lorem ipsum"},
		{ID: 2, Title: "Other", Body: "dolor HELLO"},
		{ID: 3, Title: "Third", Body: "nothing"},
	}})
	t.Cleanup(browser.Close)
	select {
	case <-browser.Initialize(context.Background()).Done():
	case <-time.After(2 * time.Second):
		t.Fatal("fetch did not resolve")
	}
	return Deps{Browser: browser}
}

func TestNotify_Coalesces(t *testing.T) {
	changes := make(chan struct{}, 1)
	notify := Notify(changes)

	notify(usecase.State{})
	notify(usecase.State{})
	notify(usecase.State{})

	assert.Len(t, changes, 1)
}

func TestWaitForChangeCmd(t *testing.T) {
	changes := make(chan struct{}, 1)
	done := make(chan struct{})

	changes <- struct{}{}
	assert.Equal(t, StateChangedMsg{}, WaitForChangeCmd(changes, done)())

	close(done)
	assert.Nil(t, WaitForChangeCmd(changes, done)())
}

func TestInitializeCmd_StartsFetch(t *testing.T) {
	deps := readyDeps(t)

	assert.Nil(t, InitializeCmd(context.Background(), deps.Browser)())
	assert.Equal(t, usecase.Ready, deps.Browser.Snapshot().Phase)
}

func TestSyncState_AppliesSnapshot(t *testing.T) {
	deps := readyDeps(t)
	s := newLayoutTestState()
	deps.Browser.SetQuery("hello")

	SyncState(s, deps)

	assert.Equal(t, usecase.Ready, s.Browser.Phase)
	assert.Len(t, s.List.Items(), 2)
	assert.Equal(t, "hello", s.Search.Value())
}

func TestHandleKeyMsg_SearchLeavesOnEsc(t *testing.T) {
	deps := readyDeps(t)
	s := newLayoutTestState()
	SyncState(s, deps)

	_, handled := HandleKeyMsg(s, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}}, deps)
	require.True(t, handled)
	require.Equal(t, state.SearchView, s.Session)

	HandleKeyMsg(s, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'O'}}, deps)
	assert.Equal(t, "O", deps.Browser.Snapshot().Query)
	assert.Len(t, s.List.Items(), 3)

	HandleKeyMsg(s, tea.KeyMsg{Type: tea.KeyEsc}, deps)
	assert.Equal(t, state.BrowseView, s.Session)
	assert.Equal(t, "O", s.Search.Value())
}

func TestHandleKeyMsg_UnboundKeyNotHandled(t *testing.T) {
	deps := readyDeps(t)
	s := newLayoutTestState()
	SyncState(s, deps)

	_, handled := HandleKeyMsg(s, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, deps)
	assert.False(t, handled)
}

func TestHandleKeyMsg_HelpSwallowsKeys(t *testing.T) {
	deps := readyDeps(t)
	s := newLayoutTestState()
	SyncState(s, deps)

	HandleKeyMsg(s, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}, deps)
	require.True(t, s.Help.ShowAll)

	_, handled := HandleKeyMsg(s, tea.KeyMsg{Type: tea.KeyEnter}, deps)
	assert.True(t, handled)
	assert.False(t, deps.Browser.Snapshot().HasSelection)

	HandleKeyMsg(s, tea.KeyMsg{Type: tea.KeyEsc}, deps)
	assert.False(t, s.Help.ShowAll)
}

func TestRowAt(t *testing.T) {
	deps := readyDeps(t)
	s := newLayoutTestState()
	SyncState(s, deps)

	tests := []struct {
		line  int
		index int
		ok    bool
	}{
		{line: -1, ok: false},
		{line: 0, index: 0, ok: true},
		{line: 1, index: 0, ok: true},
		{line: 2, ok: false},
		{line: 3, index: 1, ok: true},
		{line: 7, index: 2, ok: true},
		{line: 9, ok: false},
	}
	for _, tt := range tests {
		index, ok := rowAt(s, tt.line)
		assert.Equal(t, tt.ok, ok, "line %d", tt.line)
		if tt.ok {
			assert.Equal(t, tt.index, index, "line %d", tt.line)
		}
	}
}

func TestHandleMouseMsg_IgnoredOutsideReady(t *testing.T) {
	s := newLayoutTestState()
	msg := tea.MouseMsg{Y: metrics.HeaderLines, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}

	assert.False(t, HandleMouseMsg(s, msg, Deps{}))
}

func TestHandleWindowSize(t *testing.T) {
	s := newLayoutTestState()

	HandleWindowSize(s, tea.WindowSizeMsg{Width: 70, Height: 20})

	assert.Equal(t, 70, s.Width)
	assert.Equal(t, 20, s.Height)
	assert.Equal(t, 70, s.List.Width())
}
