// Package listview provides list item delegates for the view layer.
package listview

import (
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PostItem is an item that can be rendered by PostDelegate.
type PostItem interface {
	list.Item
	Title() string
	Description() string
	IsHighlighted() bool
}

// Theme carries the row colors.
type Theme struct {
	Accent              lipgloss.Color
	HighlightBackground lipgloss.Color
}

// PostDelegate renders a post as a title line and a preview line.
type PostDelegate struct {
	Styles      list.DefaultItemStyles
	Highlighted lipgloss.Style
}

// NewPostDelegate creates a new PostDelegate.
func NewPostDelegate(theme Theme) *PostDelegate {
	styles := withItemPadding(list.NewDefaultItemStyles())
	styles.SelectedTitle = styles.SelectedTitle.BorderForeground(theme.Accent).Foreground(theme.Accent)
	styles.SelectedDesc = styles.SelectedDesc.BorderForeground(theme.Accent)

	return &PostDelegate{
		Styles: styles,
		Highlighted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(theme.HighlightBackground),
	}
}

// Height returns the height of the item.
func (d *PostDelegate) Height() int {
	return 2
}

// Spacing returns the spacing between items.
func (d *PostDelegate) Spacing() int {
	return 1
}

// Update handles messages for the delegate.
func (d *PostDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render renders the item.
func (d *PostDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(PostItem)
	if !ok {
		return
	}

	titleStyle, descStyle := rowStyles(d.Styles, m, index)
	title := truncateItemText(m, titleStyle, i.Title())
	desc := truncateItemText(m, descStyle, i.Description())

	if i.IsHighlighted() {
		title = d.Highlighted.Render(title)
		desc = d.Highlighted.Render(desc)
	}

	renderItemText(w, titleStyle, title)
	_, _ = io.WriteString(w, "\n")
	renderItemText(w, descStyle, desc)
}
