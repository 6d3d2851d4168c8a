package state

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/tesso57/postview/internal/application/usecase"
)

// ModelState holds the presentation state for the TUI.
type ModelState struct {
	Session  Session
	Previous Session
	List     list.Model
	Search   textinput.Model
	Help     help.Model
	Spinner  spinner.Model
	Keys     KeyMap
	Width    int
	Height   int
	// Browser is the last snapshot read from the controller.
	Browser usecase.State
}
