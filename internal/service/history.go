package service

import (
	"log/slog"
	"sort"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/soundqueue/internal/domain"
)

// HistoryService records opened playlists and the last item played in each
type HistoryService struct {
	store  domain.HistoryStore
	limit  int
	now    func() time.Time
	logger *slog.Logger
}

// NewHistoryService creates a history service keeping at most limit entries (0 = unlimited)
func NewHistoryService(store domain.HistoryStore, limit int, logger *slog.Logger) *HistoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryService{
		store:  store,
		limit:  limit,
		now:    time.Now,
		logger: logger,
	}
}

// Opened marks a playlist as opened now, keeping its last played item
func (s *HistoryService) Opened(playlistID string) {
	entry, ok := s.store.GetHistory(playlistID)
	if !ok {
		entry = domain.HistoryEntry{PlaylistID: playlistID, LastPosition: -1}
	}
	entry.OpenedAt = s.now()
	s.save(entry)
	s.prune()
}

// Loaded records the item count once fetching finished
func (s *HistoryService) Loaded(playlistID string, itemCount int) {
	entry, ok := s.store.GetHistory(playlistID)
	if !ok {
		entry = domain.HistoryEntry{PlaylistID: playlistID, OpenedAt: s.now(), LastPosition: -1}
	}
	entry.ItemCount = itemCount
	s.save(entry)
}

// Played records the item at index (API order) as the last one played
func (s *HistoryService) Played(playlistID string, index int, item domain.PlaylistItem) {
	entry, ok := s.store.GetHistory(playlistID)
	if !ok {
		entry = domain.HistoryEntry{PlaylistID: playlistID, OpenedAt: s.now()}
	}
	entry.LastPosition = index
	entry.LastVideoID = item.VideoID
	entry.LastTitle = item.Title
	s.save(entry)
}

// Get returns the entry for a playlist
func (s *HistoryService) Get(playlistID string) (domain.HistoryEntry, error) {
	entry, ok := s.store.GetHistory(playlistID)
	if !ok {
		return domain.HistoryEntry{}, domain.ErrHistoryNotFound
	}
	return entry, nil
}

// Recent returns entries most recent first, capped by the limit
func (s *HistoryService) Recent() []domain.HistoryEntry {
	entries, ok := s.store.ListHistory()
	if !ok {
		return nil
	}
	if s.limit > 0 && len(entries) > s.limit {
		entries = entries[:s.limit]
	}
	return entries
}

// Filter fuzzy-matches query against recent playlist ids and last titles.
// An empty query returns Recent unchanged.
func (s *HistoryService) Filter(query string) []domain.HistoryEntry {
	recent := s.Recent()
	if query == "" {
		return recent
	}

	targets := make([]string, len(recent))
	for i, e := range recent {
		targets[i] = e.PlaylistID + " " + e.LastTitle
	}

	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	sort.Stable(ranks)

	out := make([]domain.HistoryEntry, len(ranks))
	for i, r := range ranks {
		out[i] = recent[r.OriginalIndex]
	}
	return out
}

// Forget removes one playlist from history
func (s *HistoryService) Forget(playlistID string) {
	s.store.DeleteHistory(playlistID)
	s.logger.Info("removed playlist from history", "playlistID", playlistID)
}

// Clear removes all history
func (s *HistoryService) Clear() {
	s.store.InvalidateAll()
	s.logger.Info("cleared history")
}

func (s *HistoryService) save(entry domain.HistoryEntry) {
	if err := s.store.SaveHistory(entry); err != nil {
		s.logger.Error("failed to save history", "error", err, "playlistID", entry.PlaylistID)
	}
}

// prune drops the oldest entries beyond the limit
func (s *HistoryService) prune() {
	if s.limit <= 0 {
		return
	}
	entries, ok := s.store.ListHistory()
	if !ok || len(entries) <= s.limit {
		return
	}
	for _, e := range entries[s.limit:] {
		s.store.DeleteHistory(e.PlaylistID)
	}
	s.logger.Debug("pruned history", "removed", len(entries)-s.limit)
}
