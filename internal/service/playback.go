package service

import (
	"context"
	"log/slog"

	"github.com/mmcdole/soundqueue/internal/domain"
)

// launcher abstracts media player launching (consumer-defined interface)
type launcher interface {
	Launch(url string) error
}

// PlaybackService hands playlist items to the external player
type PlaybackService struct {
	launcher launcher
	logger   *slog.Logger
}

// NewPlaybackService creates a new playback service
func NewPlaybackService(launcher launcher, logger *slog.Logger) *PlaybackService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaybackService{
		launcher: launcher,
		logger:   logger,
	}
}

// Play opens the item's watch URL in the player
func (s *PlaybackService) Play(ctx context.Context, item domain.PlaylistItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.logger.Info("launching playback", "title", item.Title, "videoID", item.VideoID)

	if err := s.launcher.Launch(item.WatchURL()); err != nil {
		s.logger.Error("failed to launch player", "error", err, "videoID", item.VideoID)
		return err
	}
	return nil
}
