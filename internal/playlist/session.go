package playlist

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/mmcdole/soundqueue/internal/domain"
)

// Session is the play view state for one playlist: the fetched items and
// the playback navigator over them.
type Session struct {
	*Fetcher
	Nav *Navigator
}

// NewSession creates a session for playlistID. A nil rng seeds from the clock.
func NewSession(pager domain.PlaylistPager, playlistID string, pageSize int, rng *rand.Rand, logger *slog.Logger) *Session {
	return &Session{
		Fetcher: NewFetcher(pager, playlistID, pageSize, logger),
		Nav:     NewNavigator(rng),
	}
}

// Apply appends a page to the item list and grows the navigator with it
func (s *Session) Apply(page domain.Page) int {
	added := s.Fetcher.Apply(page)
	s.Nav.Append(added)
	return added
}

// FetchNext requests one page and applies it to both item list and navigator
func (s *Session) FetchNext(ctx context.Context) (domain.Page, error) {
	before := s.Fetcher.Len()
	page, err := s.Fetcher.FetchNext(ctx)
	s.Nav.Append(s.Fetcher.Len() - before)
	return page, err
}

// FetchAll fetches every remaining page
func (s *Session) FetchAll(ctx context.Context) error {
	for !s.Done() {
		if _, err := s.FetchNext(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ItemAt returns the item at a position of the active ordering
func (s *Session) ItemAt(pos int) (domain.PlaylistItem, bool) {
	idx := s.Nav.IndexAt(pos)
	if idx == NoPosition {
		return domain.PlaylistItem{}, false
	}
	return s.Items()[idx], true
}

// Current returns the selected item
func (s *Session) Current() (domain.PlaylistItem, bool) {
	return s.ItemAt(s.Nav.CurrentPosition())
}

// Active returns the items in active order
func (s *Session) Active() []domain.PlaylistItem {
	items := s.Items()
	if !s.Nav.IsShuffled() {
		return items
	}
	out := make([]domain.PlaylistItem, 0, len(items))
	for _, idx := range s.Nav.Order() {
		out = append(out, items[idx])
	}
	return out
}
