package youtube

import (
	"github.com/mmcdole/soundqueue/internal/domain"
	yt "google.golang.org/api/youtube/v3"
)

// MapPlaylistItems converts API playlist items to domain items.
// Items without a snippet are skipped and counted in skipped.
func MapPlaylistItems(items []*yt.PlaylistItem) (result []domain.PlaylistItem, skipped int) {
	result = make([]domain.PlaylistItem, 0, len(items))
	for _, item := range items {
		mapped, ok := MapPlaylistItem(item)
		if !ok {
			skipped++
			continue
		}
		result = append(result, mapped)
	}
	return result, skipped
}

// MapPlaylistItem converts a single API playlist item
func MapPlaylistItem(item *yt.PlaylistItem) (domain.PlaylistItem, bool) {
	if item == nil || item.Snippet == nil {
		return domain.PlaylistItem{}, false
	}
	s := item.Snippet

	var videoID string
	if s.ResourceId != nil {
		videoID = s.ResourceId.VideoId
	}

	return domain.PlaylistItem{
		Title:        s.Title,
		VideoID:      videoID,
		ThumbnailURL: mapThumbnails(s.Thumbnails).Best(),
	}, true
}

// mapThumbnails flattens the API thumbnail details
func mapThumbnails(d *yt.ThumbnailDetails) domain.Thumbnails {
	if d == nil {
		return domain.Thumbnails{}
	}
	return domain.Thumbnails{
		Standard: thumbnailURL(d.Standard),
		High:     thumbnailURL(d.High),
		Medium:   thumbnailURL(d.Medium),
		Default:  thumbnailURL(d.Default),
	}
}

func thumbnailURL(t *yt.Thumbnail) string {
	if t == nil {
		return ""
	}
	return t.Url
}
