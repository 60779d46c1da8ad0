package domain

import "context"

// PlaylistPager fetches one page of playlist items (implemented by the youtube client).
// An empty pageToken requests the first page.
type PlaylistPager interface {
	FetchPage(ctx context.Context, playlistID, pageToken string, pageSize int) (Page, error)
}
