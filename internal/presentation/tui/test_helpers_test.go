package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/postview/internal/application/settings"
	"github.com/tesso57/postview/internal/application/usecase"
	"github.com/tesso57/postview/internal/domain/post"
	"github.com/tesso57/postview/internal/presentation/tui/update"
)

type stubFetcher struct {
	posts []post.Post
	err   error
}

func (s stubFetcher) FetchPosts(_ context.Context) ([]post.Post, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]post.Post(nil), s.posts...), nil
}

var errOffline = errors.New("offline")

func samplePosts() []post.Post {
	return []post.Post{
		{ID: 1, Title: "Hello World", Body: "lorem ipsum"},
		{ID: 2, Title: "Other", Body: "dolor HELLO"},
		{ID: 3, Title: "Third", Body: "nothing to see"},
	}
}

func testSettings() settings.Settings {
	return settings.Settings{
		Source: settings.SourceConfig{
			URL:            settings.DefaultSourceURL,
			Format:         settings.FormatJSON,
			TimeoutSeconds: 30,
		},
		KeyMap: settings.KeyMapConfig{
			Up: "k", Down: "j",
			UpPage: "ctrl+u", DownPage: "ctrl+d",
			Top: "g", Bottom: "G",
			Select: "enter,space", Search: "/,tab",
			Quit: "q",
		},
		Theme: settings.ThemeConfig{
			Accent:              "#4CAF50",
			HighlightBackground: "#e3fcef",
			Error:               "#D32F2F",
			Header:              "#FFFFFF",
		},
		Log: settings.LogConfig{Level: "info"},
	}
}

// newLoadedModel returns a sized model whose fetch has already resolved.
func newLoadedModel(t *testing.T, fetcher usecase.PostFetcher) *Model {
	t.Helper()
	browser := usecase.NewBrowser(fetcher)
	t.Cleanup(browser.Close)

	m := NewModel(testSettings(), browser)
	t.Cleanup(m.Close)

	task := browser.Initialize(context.Background())
	select {
	case <-task.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("fetch did not resolve")
	}

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.Update(stateChanged(t, m))
	return m
}

// stateChanged waits for the bridge to report a change.
func stateChanged(t *testing.T, m *Model) tea.Msg {
	t.Helper()
	select {
	case <-m.changes:
	case <-time.After(2 * time.Second):
		t.Fatal("no state change reported")
	}
	return update.StateChangedMsg{}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
