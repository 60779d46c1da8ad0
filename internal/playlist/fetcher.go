package playlist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/soundqueue/internal/domain"
)

// DefaultPageSize is the largest maxResults the Data API accepts
const DefaultPageSize = 50

// PageRequest is a snapshot of the next request a Fetcher wants issued.
// It carries no reference to the fetcher so it can run on another goroutine.
type PageRequest struct {
	PlaylistID string
	PageToken  string // "" asks for the first page
	PageSize   int
}

// Do performs the request
func (r PageRequest) Do(ctx context.Context, pager domain.PlaylistPager) (domain.Page, error) {
	return pager.FetchPage(ctx, r.PlaylistID, r.PageToken, r.PageSize)
}

// Fetcher accumulates a playlist page by page.
//
// The network call and the state mutation are split so the TUI can run
// the request inside a tea.Cmd and apply the result on the update loop:
// NextRequest -> PageRequest.Do -> Apply or Fail. FetchNext and FetchAll
// compose the same steps synchronously.
type Fetcher struct {
	pager      domain.PlaylistPager
	playlistID string
	pageSize   int
	logger     *slog.Logger

	items     []domain.PlaylistItem
	nextToken string
	pages     int
	done      bool
	err       error
}

// NewFetcher creates a fetcher for one playlist
func NewFetcher(pager domain.PlaylistPager, playlistID string, pageSize int, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Fetcher{
		pager:      pager,
		playlistID: playlistID,
		pageSize:   pageSize,
		logger:     logger,
	}
}

// PlaylistID returns the identifier being fetched
func (f *Fetcher) PlaylistID() string { return f.playlistID }

// PageSize returns the maxResults used per request
func (f *Fetcher) PageSize() int { return f.pageSize }

// Items returns the accumulated items in API order. Callers must not modify it.
func (f *Fetcher) Items() []domain.PlaylistItem { return f.items }

// Len returns the number of accumulated items
func (f *Fetcher) Len() int { return len(f.items) }

// Pages returns how many pages were applied
func (f *Fetcher) Pages() int { return f.pages }

// NextPageToken returns the cursor for the next request ("" before the first page)
func (f *Fetcher) NextPageToken() string { return f.nextToken }

// Done reports whether the API announced no further page
func (f *Fetcher) Done() bool { return f.done }

// Err returns the last fetch error, nil after a successful page
func (f *Fetcher) Err() error { return f.err }

// CanFetch reports whether another request should be issued
func (f *Fetcher) CanFetch() bool { return !f.done && f.err == nil }

// NextRequest describes the request for the page after the last applied one
func (f *Fetcher) NextRequest() PageRequest {
	return PageRequest{PlaylistID: f.playlistID, PageToken: f.nextToken, PageSize: f.pageSize}
}

// Apply appends a fetched page and advances the cursor.
// It returns the number of items appended.
func (f *Fetcher) Apply(page domain.Page) int {
	f.items = append(f.items, page.Items...)
	f.nextToken = page.NextPageToken
	f.done = !page.HasMore()
	f.pages++
	f.err = nil

	f.logger.Debug("applied playlist page",
		"playlistID", f.playlistID, "page", f.pages, "items", len(page.Items), "total", len(f.items), "done", f.done)
	return len(page.Items)
}

// Fail records a failed request. Already fetched items are kept and
// fetching stops until Retry is called.
func (f *Fetcher) Fail(err error) {
	f.err = fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	f.logger.Error("failed to fetch playlist page", "error", err, "playlistID", f.playlistID, "pageToken", f.nextToken)
}

// Retry clears the error so fetching resumes from the stored cursor
func (f *Fetcher) Retry() {
	f.err = nil
}

// FetchNext requests and applies one page
func (f *Fetcher) FetchNext(ctx context.Context) (domain.Page, error) {
	if f.done {
		return domain.Page{}, nil
	}
	page, err := f.NextRequest().Do(ctx, f.pager)
	if err != nil {
		f.Fail(err)
		return domain.Page{}, f.err
	}
	f.Apply(page)
	return page, nil
}

// FetchAll loops FetchNext until the API reports no further page or a request fails
func (f *Fetcher) FetchAll(ctx context.Context) error {
	for !f.done {
		if _, err := f.FetchNext(ctx); err != nil {
			return err
		}
	}
	f.logger.Info("fetched playlist", "playlistID", f.playlistID, "items", len(f.items), "pages", f.pages)
	return nil
}
