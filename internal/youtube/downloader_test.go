package youtube

import (
	"strings"
	"testing"
)

func playlistOutput(blocks ...[3]string) string {
	var sb strings.Builder
	for _, b := range blocks {
		sb.WriteString(b[0] + "\n" + b[1] + "\n" + b[2] + "\n" + entrySeparator + "\n")
	}
	return sb.String()
}

func TestParsePlaylistOutput(t *testing.T) {
	output := playlistOutput(
		[3]string{"abc123", "First Video", "A description"},
		[3]string{"def456", "Second Video", "NA"},
		[3]string{"ghi789", "[Private video]", "hidden"},
		[3]string{"jkl012", "[Unavailable]", "gone"},
		[3]string{"abc123", "First Video again", "duplicate id"},
		[3]string{"mno345", "Third Video", ""},
	)

	entries := parsePlaylistOutput(output, 0)

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(entries), entries)
	}
	if entries[0].ID != "abc123" || entries[0].Description != "A description" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].ID != "def456" || entries[1].Description != "" {
		t.Errorf("NA description should be empty: %+v", entries[1])
	}
	if entries[2].ID != "mno345" {
		t.Errorf("unexpected third entry: %+v", entries[2])
	}
}

func TestParsePlaylistOutputLimit(t *testing.T) {
	output := playlistOutput(
		[3]string{"a", "One", "x"},
		[3]string{"b", "Two", "x"},
		[3]string{"c", "Three", "x"},
	)

	entries := parsePlaylistOutput(output, 2)
	if len(entries) != 2 {
		t.Fatalf("expected limit of 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "a" || entries[1].ID != "b" {
		t.Errorf("limit should keep input order: %+v", entries)
	}
}

func TestParsePlaylistOutputTruncated(t *testing.T) {
	// A trailing partial block (e.g. killed mid-print) is dropped
	output := "abc123\nTitle\nDesc\n" + entrySeparator + "\ndef456\nOrphan"

	entries := parsePlaylistOutput(output, 0)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry from truncated output, got %d", len(entries))
	}
	if entries[0].ID != "abc123" {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
}

func TestDownloadArgs(t *testing.T) {
	args := downloadArgs("abc123", "downloads/abc123.mp4")

	joined := strings.Join(args, " ")
	for _, want := range []string{
		"-f best[height<=1080]",
		"-o downloads/abc123.mp4",
		"--no-playlist",
		"https://www.youtube.com/watch?v=abc123",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("downloadArgs missing %q in %q", want, joined)
		}
	}
}
