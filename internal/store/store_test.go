package store

import (
	"testing"
	"time"

	"github.com/mmcdole/soundqueue/internal/domain"
)

func openStores(t *testing.T) map[string]*HistoryStore {
	t.Helper()
	disk, err := NewHistoryStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewHistoryStore() error = %v", err)
	}
	t.Cleanup(func() { disk.Close() })

	mem, err := NewHistoryStore("")
	if err != nil {
		t.Fatalf("NewHistoryStore(\"\") error = %v", err)
	}
	return map[string]*HistoryStore{"bolt": disk, "memory": mem}
}

func TestHistoryStore_SaveGetList(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok := s.ListHistory(); ok {
				t.Error("ListHistory() ok on empty store")
			}

			entries := []domain.HistoryEntry{
				{PlaylistID: "old", ItemCount: 3, OpenedAt: base},
				{PlaylistID: "new", ItemCount: 60, LastVideoID: "v9", LastPosition: 9, OpenedAt: base.Add(2 * time.Hour)},
				{PlaylistID: "mid", OpenedAt: base.Add(time.Hour)},
			}
			for _, e := range entries {
				if err := s.SaveHistory(e); err != nil {
					t.Fatalf("SaveHistory() error = %v", err)
				}
			}

			got, ok := s.GetHistory("new")
			if !ok || got.ItemCount != 60 || got.LastVideoID != "v9" || got.LastPosition != 9 {
				t.Errorf("GetHistory(new) = %+v, %v", got, ok)
			}

			list, ok := s.ListHistory()
			if !ok || len(list) != 3 {
				t.Fatalf("ListHistory() = %d entries, %v", len(list), ok)
			}
			want := []string{"new", "mid", "old"}
			for i, id := range want {
				if list[i].PlaylistID != id {
					t.Errorf("list[%d] = %s, want %s", i, list[i].PlaylistID, id)
				}
			}

			s.DeleteHistory("mid")
			if _, ok := s.GetHistory("mid"); ok {
				t.Error("GetHistory(mid) ok after delete")
			}

			s.InvalidateAll()
			if _, ok := s.ListHistory(); ok {
				t.Error("ListHistory() ok after InvalidateAll")
			}
		})
	}
}

func TestHistoryStore_RejectsEmptyID(t *testing.T) {
	s, _ := NewHistoryStore("")
	if err := s.SaveHistory(domain.HistoryEntry{}); err == nil {
		t.Error("SaveHistory() with empty id = nil error")
	}
}

func TestHistoryStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewHistoryStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveHistory(domain.HistoryEntry{PlaylistID: "PL1", ItemCount: 5, OpenedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewHistoryStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	got, ok := reopened.GetHistory("PL1")
	if !ok || got.ItemCount != 5 {
		t.Errorf("GetHistory(PL1) after reopen = %+v, %v", got, ok)
	}
}
