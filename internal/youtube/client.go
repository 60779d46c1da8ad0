package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmcdole/soundqueue/internal/domain"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// snippetPart is the only resource part the player needs
const snippetPart = "snippet"

// Client implements domain.PlaylistPager on top of the YouTube Data API v3
type Client struct {
	service *yt.Service
	logger  *slog.Logger
}

// NewClient creates a Data API client authenticated with an API key.
// Extra options (e.g. option.WithEndpoint) are passed through to the service.
func NewClient(ctx context.Context, apiKey string, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	return &Client{service: service, logger: logger}, nil
}

// FetchPage returns one page of playlist items.
// An empty pageToken requests the first page.
func (c *Client) FetchPage(ctx context.Context, playlistID, pageToken string, pageSize int) (domain.Page, error) {
	call := c.service.PlaylistItems.List([]string{snippetPart}).
		PlaylistId(playlistID).
		MaxResults(int64(pageSize)).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	c.logger.Debug("youtube request", "playlistID", playlistID, "pageToken", pageToken, "pageSize", pageSize)

	resp, err := call.Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			c.logger.Error("youtube request error", "status", apiErr.Code, "message", apiErr.Message, "playlistID", playlistID)
		} else {
			c.logger.Error("youtube request failed", "error", err, "playlistID", playlistID)
		}
		return domain.Page{}, fmt.Errorf("list playlist items %s: %w", playlistID, err)
	}

	items, skipped := MapPlaylistItems(resp.Items)
	if skipped > 0 {
		c.logger.Warn("skipped playlist items without a snippet", "playlistID", playlistID, "skipped", skipped, "received", len(resp.Items))
	}

	page := domain.Page{
		Items:         items,
		NextPageToken: resp.NextPageToken,
	}
	c.logger.Debug("youtube response", "playlistID", playlistID, "items", len(page.Items), "nextPageToken", page.NextPageToken)
	return page, nil
}
