package playlist

import (
	"context"
	"fmt"

	"github.com/mmcdole/soundqueue/internal/domain"
)

// fakePager serves pages keyed by page token ("" is the first page)
type fakePager struct {
	pages    map[string]domain.Page
	errs     map[string]error
	requests []string
	sizes    []int
}

func (p *fakePager) FetchPage(ctx context.Context, playlistID, pageToken string, pageSize int) (domain.Page, error) {
	p.requests = append(p.requests, pageToken)
	p.sizes = append(p.sizes, pageSize)
	if err, ok := p.errs[pageToken]; ok {
		return domain.Page{}, err
	}
	page, ok := p.pages[pageToken]
	if !ok {
		return domain.Page{}, fmt.Errorf("unexpected page token %q", pageToken)
	}
	return page, nil
}

func makeItems(prefix string, n int) []domain.PlaylistItem {
	items := make([]domain.PlaylistItem, n)
	for i := range items {
		id := fmt.Sprintf("%s-%d", prefix, i)
		items[i] = domain.PlaylistItem{Title: "Title " + id, VideoID: id, ThumbnailURL: domain.PlaceholderThumbnail}
	}
	return items
}

// twoPagePager returns 50 then 10 items, like playlist "ABC123"
func twoPagePager() *fakePager {
	return &fakePager{pages: map[string]domain.Page{
		"":     {Items: makeItems("p1", 50), NextPageToken: "next"},
		"next": {Items: makeItems("p2", 10)},
	}}
}
