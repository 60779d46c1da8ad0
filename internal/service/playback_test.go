package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mmcdole/soundqueue/internal/domain"
)

type fakeLauncher struct {
	urls []string
	err  error
}

func (f *fakeLauncher) Launch(url string) error {
	f.urls = append(f.urls, url)
	return f.err
}

func TestPlaybackService_Play(t *testing.T) {
	l := &fakeLauncher{}
	svc := NewPlaybackService(l, nil)

	item := domain.PlaylistItem{Title: "Song", VideoID: "dQw4w9WgXcQ"}
	if err := svc.Play(context.Background(), item); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if len(l.urls) != 1 || l.urls[0] != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("launched %v", l.urls)
	}
}

func TestPlaybackService_PlayErrors(t *testing.T) {
	l := &fakeLauncher{err: domain.ErrNoPlayer}
	svc := NewPlaybackService(l, nil)

	err := svc.Play(context.Background(), domain.PlaylistItem{VideoID: "x"})
	if !errors.Is(err, domain.ErrNoPlayer) {
		t.Errorf("err = %v, want ErrNoPlayer", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l.urls = nil
	if err := svc.Play(ctx, domain.PlaylistItem{VideoID: "x"}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(l.urls) != 0 {
		t.Error("launched after cancellation")
	}
}
