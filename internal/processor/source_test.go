package processor

import (
	"testing"

	"github.com/clipstream/clipstream/pkg/types"
)

type fakePlaylistLister struct {
	calls   []string
	entries []types.VideoEntry
}

func (l *fakePlaylistLister) ListPlaylistVideos(playlistURL string, limit int) ([]types.VideoEntry, error) {
	l.calls = append(l.calls, playlistURL)
	return l.entries, nil
}

type fakeUploadsLister struct {
	calls   int
	limits  []int64
	entries []types.VideoEntry
}

func (l *fakeUploadsLister) ListUploads(maxResults int64) ([]types.VideoEntry, error) {
	l.calls++
	l.limits = append(l.limits, maxResults)
	return l.entries, nil
}

func TestSourceVideosPrefersPlaylistURL(t *testing.T) {
	playlists := &fakePlaylistLister{entries: []types.VideoEntry{{ID: "pl1", Title: "From playlist"}}}
	uploads := &fakeUploadsLister{entries: []types.VideoEntry{{ID: "up1", Title: "From uploads"}}}

	entries, err := SourceVideos("https://example.com/playlist", 6, playlists, uploads)
	if err != nil {
		t.Fatalf("SourceVideos failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "pl1" {
		t.Errorf("expected playlist entries, got %+v", entries)
	}
	if uploads.calls != 0 {
		t.Errorf("uploads lister called %d times with a playlist URL, expected 0", uploads.calls)
	}
}

func TestSourceVideosFallsBackToUploads(t *testing.T) {
	playlists := &fakePlaylistLister{}
	uploads := &fakeUploadsLister{entries: []types.VideoEntry{
		{ID: "up1", Title: "Latest"},
		{ID: "up2", Title: "Older"},
	}}

	entries, err := SourceVideos("", 6, playlists, uploads)
	if err != nil {
		t.Fatalf("SourceVideos failed: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "up1" {
		t.Errorf("expected upload entries, got %+v", entries)
	}
	if len(playlists.calls) != 0 {
		t.Errorf("playlist lister called %v without a URL, expected no calls", playlists.calls)
	}
	if len(uploads.limits) != 1 || uploads.limits[0] != 6 {
		t.Errorf("uploads lister limits = %v, expected [6]", uploads.limits)
	}
}

func TestSourceVideosUploadsRequireAuth(t *testing.T) {
	if _, err := SourceVideos("", 6, &fakePlaylistLister{}, nil); err == nil {
		t.Error("uploads source without an authenticated lister should error")
	}
}

func TestItemsFromEntries(t *testing.T) {
	items := ItemsFromEntries([]types.VideoEntry{
		{ID: "a", Title: "One", Description: "first"},
		{ID: "b", Title: "Two"},
	})

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "a" || items[0].Description != "first" {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[1].Title != "Two" || items[1].IsShortHint {
		t.Errorf("unexpected second item: %+v", items[1])
	}
}
