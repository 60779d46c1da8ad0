package domain

// HistoryStore persists recently opened playlists (bbolt + memory).
type HistoryStore interface {
	GetHistory(playlistID string) (HistoryEntry, bool)
	SaveHistory(entry HistoryEntry) error
	ListHistory() ([]HistoryEntry, bool)
	DeleteHistory(playlistID string)
	InvalidateAll()

	Close() error
}
