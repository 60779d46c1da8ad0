package domain

// ListItem is a row rendered in the landing history list.
// HistoryEntry implements it.
type ListItem interface {
	// GetID returns the identifier of the row (playlist id)
	GetID() string

	// GetTitle returns the display title
	GetTitle() string

	// GetDescription returns secondary info for display
	GetDescription() string
}
