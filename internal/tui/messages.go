package tui

import (
	"github.com/mmcdole/soundqueue/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// NavigateMsg asks the model to switch to a route
type NavigateMsg struct {
	Route Route
}

// PageLoadedMsg carries one page of playlist items. Seq identifies the
// play session that requested it.
type PageLoadedMsg struct {
	PlaylistID string
	Seq        int
	Page       domain.Page
}

// PageFailedMsg signals that fetching a page failed
type PageFailedMsg struct {
	PlaylistID string
	Seq        int
	Err        error
}

// PlaybackStartedMsg signals that the player was launched
type PlaybackStartedMsg struct {
	Item domain.PlaylistItem
}

// StatusMsg sets a transient footer message
type StatusMsg struct {
	Message string
	IsError bool
}

// TickMsg is sent periodically for spinner animation
type TickMsg struct{}

// ClearStatusMsg clears the status message
type ClearStatusMsg struct{}
