package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name     string
		size     int64
		expected string
	}{
		{"Bytes", 512, "512.00 B"},
		{"Kilobytes", 2048, "2.00 KB"},
		{"Megabytes", 5 * 1024 * 1024, "5.00 MB"},
		{"Gigabytes", 3 * 1024 * 1024 * 1024, "3.00 GB"},
		{"Zero", 0, "0.00 B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSize(tt.size); got != tt.expected {
				t.Errorf("FormatSize(%d) = %q, expected %q", tt.size, got, tt.expected)
			}
		})
	}
}

func TestFolderSize(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "a.mp4"), make([]byte, 100), 0644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "b.mp4"), make([]byte, 50), 0644); err != nil {
		t.Fatal(err)
	}

	size, err := FolderSize(dir)
	if err != nil {
		t.Fatalf("FolderSize failed: %v", err)
	}
	if size != 150 {
		t.Errorf("FolderSize = %d, expected 150", size)
	}

	missing, err := FolderSize(filepath.Join(dir, "nope"))
	if err != nil || missing != 0 {
		t.Errorf("missing folder should report 0 bytes, got %d (%v)", missing, err)
	}
}

func TestUsageWarning(t *testing.T) {
	tests := []struct {
		name      string
		size      int64
		threshold int64
		wantWarn  bool
	}{
		{"Well under", 100, 1000, false},
		{"At 80 percent", 800, 1000, true},
		{"Over threshold", 1500, 1000, true},
		{"Exactly at threshold", 1000, 1000, true},
		{"No threshold", 500, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warn := UsageWarning(tt.size, tt.threshold)
			if (warn != "") != tt.wantWarn {
				t.Errorf("UsageWarning(%d, %d) = %q, wantWarn=%v",
					tt.size, tt.threshold, warn, tt.wantWarn)
			}
		})
	}
}

func TestCleanup(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.mp4"), make([]byte, 10), 0644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "b.mp4"), make([]byte, 20), 0644); err != nil {
		t.Fatal(err)
	}

	deleted, freed, err := Cleanup(dir)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, expected 2 top-level entries", deleted)
	}
	if freed != 30 {
		t.Errorf("freed = %d, expected 30", freed)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("folder should be empty after cleanup, has %d entries", len(entries))
	}

	// The folder itself survives and a second cleanup is a no-op
	deleted, freed, err = Cleanup(dir)
	if err != nil || deleted != 0 || freed != 0 {
		t.Errorf("second cleanup = (%d, %d, %v), expected no-op", deleted, freed, err)
	}
}

func TestCleanupMissingFolder(t *testing.T) {
	deleted, freed, err := Cleanup(filepath.Join(t.TempDir(), "nope"))
	if err != nil || deleted != 0 || freed != 0 {
		t.Errorf("cleanup of a missing folder = (%d, %d, %v), expected no-op", deleted, freed, err)
	}
}
