package domain

import "time"

// PlaceholderThumbnail is used when an item carries no thumbnail at all
const PlaceholderThumbnail = "https://i.ytimg.com/img/no_thumbnail.jpg"

const (
	watchBaseURL = "https://www.youtube.com/watch?v="
	embedBaseURL = "https://www.youtube.com/embed/"
)

// PlaylistItem is a single video entry of a remote playlist.
// Items are immutable once mapped; identity is their position in the fetched list.
type PlaylistItem struct {
	Title        string `json:"title"`
	VideoID      string `json:"video_id"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// WatchURL returns the URL handed to the external player
func (p PlaylistItem) WatchURL() string {
	return watchBaseURL + p.VideoID
}

// EmbedURL returns the embeddable player URL for the item
func (p PlaylistItem) EmbedURL() string {
	return embedBaseURL + p.VideoID
}

// Thumbnails holds the candidate thumbnail URLs returned for an item.
// Empty strings mean the size was absent from the response.
type Thumbnails struct {
	Standard string
	High     string
	Medium   string
	Default  string
}

// Best picks a thumbnail in fixed priority order:
// standard, high, medium, default, then the placeholder.
func (t Thumbnails) Best() string {
	for _, u := range []string{t.Standard, t.High, t.Medium, t.Default} {
		if u != "" {
			return u
		}
	}
	return PlaceholderThumbnail
}

// Page is one batch of playlist items plus the cursor for the next batch
type Page struct {
	Items         []PlaylistItem
	NextPageToken string
}

// HasMore reports whether the API announced a further page
func (p Page) HasMore() bool {
	return p.NextPageToken != ""
}

// HistoryEntry records a playlist the user opened
type HistoryEntry struct {
	PlaylistID   string    `json:"playlist_id"`
	ItemCount    int       `json:"item_count"`
	LastVideoID  string    `json:"last_video_id,omitempty"`
	LastTitle    string    `json:"last_title,omitempty"`
	LastPosition int       `json:"last_position"`
	OpenedAt     time.Time `json:"opened_at"`
}

// GetID implements ListItem
func (h HistoryEntry) GetID() string { return h.PlaylistID }

// GetTitle implements ListItem
func (h HistoryEntry) GetTitle() string { return h.PlaylistID }

// GetDescription implements ListItem
func (h HistoryEntry) GetDescription() string { return h.LastTitle }
