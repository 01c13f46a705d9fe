package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FolderStatus reports one watched directory's disk usage
type FolderStatus struct {
	Path   string
	Exists bool
	Size   int64
}

// FolderSize returns the total size in bytes of all regular files under
// path. A missing folder counts as zero.
func FolderSize(path string) (int64, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, nil
	}

	var total int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("error walking %s: %v", path, err)
	}
	return total, nil
}

// FormatSize renders bytes in human-readable form
func FormatSize(size int64) string {
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if value < 1024 {
			return fmt.Sprintf("%.2f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.2f PB", value)
}

// UsageWarning returns an operator-facing warning when size crosses 80% of
// the threshold, or the empty string while usage is fine
func UsageWarning(size, threshold int64) string {
	if threshold <= 0 {
		return ""
	}
	switch {
	case size >= threshold:
		return fmt.Sprintf("storage exceeded: %s over the %s limit",
			FormatSize(size), FormatSize(threshold))
	case float64(size) >= 0.8*float64(threshold):
		return fmt.Sprintf("storage at %.1f%% of the %s limit",
			100*float64(size)/float64(threshold), FormatSize(threshold))
	}
	return ""
}

// Status collects usage for a set of folders
func Status(paths []string) []FolderStatus {
	statuses := make([]FolderStatus, 0, len(paths))
	for _, path := range paths {
		st := FolderStatus{Path: path}
		if _, err := os.Stat(path); err == nil {
			st.Exists = true
			st.Size, _ = FolderSize(path)
		}
		statuses = append(statuses, st)
	}
	return statuses
}

// Cleanup deletes everything directly under path and reports the number of
// entries removed and the bytes freed. The folder itself stays.
func Cleanup(path string) (int, int64, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return 0, 0, fmt.Errorf("error reading %s: %v", path, err)
	}

	freed, err := FolderSize(path)
	if err != nil {
		return 0, 0, err
	}

	deleted := 0
	for _, entry := range entries {
		target := filepath.Join(path, entry.Name())
		if err := os.RemoveAll(target); err != nil {
			return deleted, freed, fmt.Errorf("failed to delete %s: %v", target, err)
		}
		deleted++
	}
	return deleted, freed, nil
}
