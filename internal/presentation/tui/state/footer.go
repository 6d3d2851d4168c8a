package state

import (
	"fmt"

	"github.com/tesso57/postview/internal/application/usecase"
)

// StatusLine summarises the visible set for the footer.
func StatusLine(s usecase.State) string {
	if s.Phase != usecase.Ready {
		return ""
	}
	if s.Query == "" {
		return fmt.Sprintf("%d posts", len(s.Posts))
	}
	return fmt.Sprintf("%d of %d posts match %q", len(s.Visible), len(s.Posts), s.Query)
}

// FooterText returns the footer content for the current session.
func FooterText(status, helpText string) string {
	if status == "" {
		return helpText
	}
	if helpText == "" {
		return status
	}
	return status + "\n" + helpText
}

// Footer builds the footer for the current model state.
func Footer(s *ModelState) string {
	if s == nil {
		return ""
	}
	s.Help.Width = s.Width
	bindings := s.Keys.ShortHelp()
	if s.Session == SearchView {
		bindings = s.Keys.SearchHelp()
	}
	helpText := s.Help.ShortHelpView(bindings)
	return FooterText(StatusLine(s.Browser), helpText)
}
