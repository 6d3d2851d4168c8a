package update

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/postview/internal/presentation/tui/metrics"
	"github.com/tesso57/postview/internal/presentation/tui/state"
)

type layoutMetrics struct {
	width       int
	listHeight  int
	searchWidth int
	bodyHeight  int
}

// UpdateListSizes fits the list and search box to the terminal.
func UpdateListSizes(s *state.ModelState) {
	if s.Width <= 0 || s.Height <= 0 {
		return
	}

	layout := buildLayoutMetrics(s)
	s.List.SetSize(layout.width, layout.listHeight)
	s.Search.Width = layout.searchWidth
}

func buildLayoutMetrics(s *state.ModelState) layoutMetrics {
	bodyHeight := clampMin(s.Height-footerHeight(s), 1)
	return layoutMetrics{
		width:       clampMin(s.Width, 1),
		listHeight:  clampMin(bodyHeight-metrics.HeaderLines, 1),
		searchWidth: clampMin(s.Width-metrics.SearchBoxPadding-lipgloss.Width(s.Search.Prompt), 1),
		bodyHeight:  bodyHeight,
	}
}

// BodyHeight returns the rows available above the footer.
func BodyHeight(s *state.ModelState) int {
	return buildLayoutMetrics(s).bodyHeight
}

func footerHeight(s *state.ModelState) int {
	footer := state.Footer(s)
	if footer == "" {
		return 0
	}
	return lipgloss.Height(footer)
}

func clampMin(value, min int) int {
	if value < min {
		return min
	}
	return value
}
