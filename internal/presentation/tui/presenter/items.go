// Package presenter builds view models for the TUI.
package presenter

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/tesso57/postview/internal/application/usecase"
	"github.com/tesso57/postview/internal/domain/post"
)

// previewSuffix is appended to every body preview.
const previewSuffix = "..."

// Item is a view model for list rows.
type Item struct {
	ID          int
	TitleText   string
	Body        string
	Highlighted bool
}

// FilterValue implements list.Item.
func (i *Item) FilterValue() string { return i.TitleText }

// Title returns the post title.
func (i *Item) Title() string { return i.TitleText }

// Description returns the truncated body shown under the title.
func (i *Item) Description() string {
	return post.Preview(i.Body, post.PreviewLimit) + previewSuffix
}

// IsHighlighted reports whether the row is the selected post.
func (i *Item) IsHighlighted() bool { return i.Highlighted }

// BuildPostListItems builds list items for the visible posts.
func BuildPostListItems(s usecase.State) []list.Item {
	items := make([]list.Item, len(s.Visible))
	for i, p := range s.Visible {
		items[i] = &Item{
			ID:          p.ID,
			TitleText:   p.Title,
			Body:        p.Body,
			Highlighted: s.IsSelected(p.ID),
		}
	}
	return items
}

// ApplyPostList replaces the list rows, keeping the cursor in range.
func ApplyPostList(model *list.Model, s usecase.State) {
	index := model.Index()
	items := BuildPostListItems(s)
	model.SetItems(items)
	switch {
	case len(items) == 0:
		model.ResetSelected()
	case index >= len(items):
		model.Select(len(items) - 1)
	}
}

// SelectedItem returns the row under the cursor.
func SelectedItem(model list.Model) (*Item, bool) {
	item, ok := model.SelectedItem().(*Item)
	return item, ok && item != nil
}
