// Package state holds UI state types for the TUI.
package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/tesso57/postview/internal/application/settings"
)

// Session represents the current input mode.
type Session int

const (
	BrowseView Session = iota
	SearchView
	QuitView
)

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	UpPage   key.Binding
	DownPage key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Select   key.Binding
	Search   key.Binding
	Done     key.Binding
	Quit     key.Binding
	Help     key.Binding
}

// ShortHelp returns a subset of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit, k.Search, k.Select}
}

// FullHelp returns all keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.UpPage, k.DownPage},
		{k.Top, k.Bottom},
		{k.Select, k.Search, k.Done},
		{k.Quit, k.Help},
	}
}

// SearchHelp returns the bindings active while the search box is focused.
func (k *KeyMap) SearchHelp() []key.Binding {
	return []key.Binding{k.Done}
}

// NewKeyMap creates a new KeyMap from the configuration.
func NewKeyMap(cfg settings.KeyMapConfig) KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys(append(splitKeys(cfg.Up), "up")...),
			key.WithHelp(helpKey(cfg.Up, "↑"), "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(append(splitKeys(cfg.Down), "down")...),
			key.WithHelp(helpKey(cfg.Down, "↓"), "down"),
		),
		UpPage: key.NewBinding(
			key.WithKeys(splitKeys(cfg.UpPage)...),
			key.WithHelp(cfg.UpPage, "pgup"),
		),
		DownPage: key.NewBinding(
			key.WithKeys(splitKeys(cfg.DownPage)...),
			key.WithHelp(cfg.DownPage, "pgdn"),
		),
		Top: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Top)...),
			key.WithHelp(cfg.Top, "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Bottom)...),
			key.WithHelp(cfg.Bottom, "bottom"),
		),
		Select: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Select)...),
			key.WithHelp(cfg.Select, "highlight"),
		),
		Search: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Search)...),
			key.WithHelp(cfg.Search, "search"),
		),
		Done: key.NewBinding(
			key.WithKeys("enter", "esc", "tab"),
			key.WithHelp("enter/esc", "done searching"),
		),
		Quit: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Quit)...),
			key.WithHelp(cfg.Quit, "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

func helpKey(configured, fallback string) string {
	if strings.TrimSpace(configured) == "" {
		return fallback
	}
	return configured + "/" + fallback
}

func splitKeys(keys string) []string {
	parts := strings.Split(keys, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		keyName := strings.TrimSpace(part)
		if keyName == "" {
			continue
		}
		switch keyName {
		case "space":
			out = append(out, " ")
			continue
		case "pgdn":
			out = append(out, "pgdown")
		case "pgdown":
			out = append(out, "pgdn")
		}
		out = append(out, keyName)
	}
	return out
}
