package youtube

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mmcdole/soundqueue/internal/domain"
	"google.golang.org/api/option"
)

const pageJSON = `{
  "nextPageToken": "TOKEN2",
  "items": [
    {"snippet": {"title": "First", "resourceId": {"videoId": "v1"},
      "thumbnails": {"high": {"url": "https://img/v1/high.jpg"}, "default": {"url": "https://img/v1/default.jpg"}}}},
    {"snippet": {"title": "Second", "resourceId": {"videoId": "v2"}, "thumbnails": {}}}
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), "test-key", nil, option.WithEndpoint(srv.URL+"/"))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestNewClient_MissingKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", nil)
	if !errors.Is(err, domain.ErrMissingAPIKey) {
		t.Errorf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestFetchPage_QueryAndMapping(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		q := r.URL.Query()
		gotQuery = map[string]string{
			"part":       q.Get("part"),
			"playlistId": q.Get("playlistId"),
			"maxResults": q.Get("maxResults"),
			"pageToken":  q.Get("pageToken"),
			"key":        q.Get("key"),
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, pageJSON)
	})

	page, err := client.FetchPage(context.Background(), "ABC123", "TOKEN1", 50)
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}

	if gotPath != "/youtube/v3/playlistItems" {
		t.Errorf("path = %q", gotPath)
	}
	want := map[string]string{
		"part":       "snippet",
		"playlistId": "ABC123",
		"maxResults": "50",
		"pageToken":  "TOKEN1",
		"key":        "test-key",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}

	if page.NextPageToken != "TOKEN2" || !page.HasMore() {
		t.Errorf("NextPageToken = %q", page.NextPageToken)
	}
	if len(page.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(page.Items))
	}
	if page.Items[0].ThumbnailURL != "https://img/v1/high.jpg" {
		t.Errorf("Items[0].ThumbnailURL = %q", page.Items[0].ThumbnailURL)
	}
	if page.Items[1].ThumbnailURL != domain.PlaceholderThumbnail {
		t.Errorf("Items[1].ThumbnailURL = %q", page.Items[1].ThumbnailURL)
	}
}

func TestFetchPage_FirstPageOmitsToken(t *testing.T) {
	hasToken := true
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hasToken = r.URL.Query()["pageToken"]
		fmt.Fprint(w, `{"items": []}`)
	})

	page, err := client.FetchPage(context.Background(), "ABC123", "", 50)
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}
	if hasToken {
		t.Error("first page request carried a pageToken")
	}
	if page.HasMore() || len(page.Items) != 0 {
		t.Errorf("unexpected page %+v", page)
	}
}

func TestFetchPage_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": {"code": 403, "message": "quotaExceeded"}}`)
	})

	_, err := client.FetchPage(context.Background(), "ABC123", "", 50)
	if err == nil {
		t.Fatal("FetchPage() error = nil, want error")
	}
}

func TestFetchPage_LogsSkippedItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items": [{"snippet": {"title": "Kept"}}, {"id": "no-snippet"}]}`)
	}))
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	client, err := NewClient(context.Background(), "test-key", logger, option.WithEndpoint(srv.URL+"/"))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	page, err := client.FetchPage(context.Background(), "ABC123", "", 50)
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(page.Items))
	}
	if !strings.Contains(buf.String(), `"skipped":1`) {
		t.Errorf("log does not record the skipped item: %s", buf.String())
	}
}
