package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/soundqueue/internal/domain"
	"github.com/mmcdole/soundqueue/internal/playlist"
	"github.com/mmcdole/soundqueue/internal/service"
)

// Command factories for async operations

// fetchTimeout bounds a single playlist-items request
const fetchTimeout = 30 * time.Second

// FetchPageCmd runs one page request of a playlist session. seq is echoed
// back so stale results can be dropped.
func FetchPageCmd(pager domain.PlaylistPager, seq int, req playlist.PageRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		page, err := req.Do(ctx, pager)
		if err != nil {
			return PageFailedMsg{PlaylistID: req.PlaylistID, Seq: seq, Err: err}
		}
		return PageLoadedMsg{PlaylistID: req.PlaylistID, Seq: seq, Page: page}
	}
}

// PlayItemCmd launches an item in the external player
func PlayItemCmd(svc *service.PlaybackService, item domain.PlaylistItem) tea.Cmd {
	return func() tea.Msg {
		if err := svc.Play(context.Background(), item); err != nil {
			return ErrMsg{Err: err, Context: "starting playback"}
		}
		return PlaybackStartedMsg{Item: item}
	}
}

// NavigateCmd switches the model to a route
func NavigateCmd(route Route) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Route: route}
	}
}

// StatusCmd shows a transient footer message
func StatusCmd(message string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Message: message, IsError: isErr}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
