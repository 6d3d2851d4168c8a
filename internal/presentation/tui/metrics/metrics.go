// Package metrics centralizes layout constants for the TUI.
package metrics

const (
	// TitleLines is the header title plus its bottom margin.
	TitleLines = 2
	// SearchLines is the bordered search input plus its bottom margin.
	SearchLines = 4
	HeaderLines = TitleLines + SearchLines

	ItemRightPadding  = 1
	ItemSafetyPadding = 1

	SearchBoxPadding = 6
)
