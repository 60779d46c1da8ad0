package youtube

import (
	"testing"

	"github.com/mmcdole/soundqueue/internal/domain"
	yt "google.golang.org/api/youtube/v3"
)

func thumb(u string) *yt.Thumbnail {
	return &yt.Thumbnail{Url: u}
}

func TestMapPlaylistItem_ThumbnailFallback(t *testing.T) {
	tests := []struct {
		name       string
		thumbnails *yt.ThumbnailDetails
		want       string
	}{
		{
			name: "standard first",
			thumbnails: &yt.ThumbnailDetails{
				Standard: thumb("s"), High: thumb("h"), Medium: thumb("m"), Default: thumb("d"),
			},
			want: "s",
		},
		{
			name:       "high when no standard",
			thumbnails: &yt.ThumbnailDetails{High: thumb("h"), Medium: thumb("m"), Default: thumb("d")},
			want:       "h",
		},
		{
			name:       "medium when no high",
			thumbnails: &yt.ThumbnailDetails{Medium: thumb("m"), Default: thumb("d")},
			want:       "m",
		},
		{
			name:       "default last",
			thumbnails: &yt.ThumbnailDetails{Default: thumb("d")},
			want:       "d",
		},
		{
			name:       "maxres is not a candidate",
			thumbnails: &yt.ThumbnailDetails{Maxres: thumb("x")},
			want:       domain.PlaceholderThumbnail,
		},
		{
			name:       "empty url skipped",
			thumbnails: &yt.ThumbnailDetails{Standard: thumb(""), Medium: thumb("m")},
			want:       "m",
		},
		{
			name:       "no thumbnails",
			thumbnails: nil,
			want:       domain.PlaceholderThumbnail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &yt.PlaylistItem{Snippet: &yt.PlaylistItemSnippet{
				Title:      "Song",
				ResourceId: &yt.ResourceId{VideoId: "vid"},
				Thumbnails: tt.thumbnails,
			}}

			got, ok := MapPlaylistItem(item)
			if !ok {
				t.Fatal("MapPlaylistItem() ok = false")
			}
			if got.ThumbnailURL != tt.want {
				t.Errorf("ThumbnailURL = %q, want %q", got.ThumbnailURL, tt.want)
			}
			if got.Title != "Song" || got.VideoID != "vid" {
				t.Errorf("unexpected item %+v", got)
			}
		})
	}
}

func TestMapPlaylistItems_SkipsMissingSnippet(t *testing.T) {
	items := []*yt.PlaylistItem{
		{Snippet: &yt.PlaylistItemSnippet{Title: "a", ResourceId: &yt.ResourceId{VideoId: "1"}}},
		{},
		nil,
		{Snippet: &yt.PlaylistItemSnippet{Title: "b"}},
	}

	got, skipped := MapPlaylistItems(items)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if skipped != 2 {
		t.Errorf("skipped = %d, want 2", skipped)
	}
	if got[0].VideoID != "1" || got[1].Title != "b" || got[1].VideoID != "" {
		t.Errorf("unexpected items %+v", got)
	}
}
