package youtube

import (
	"log"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"github.com/clipstream/clipstream/pkg/types"
)

// entrySeparator terminates one video's print block in yt-dlp output
const entrySeparator = "---END---"

// Downloader fetches videos and playlist listings through yt-dlp
type Downloader struct {
	Binary  string // defaults to "yt-dlp"
	Verbose bool
}

func (d *Downloader) binary() string {
	if d.Binary != "" {
		return d.Binary
	}
	return "yt-dlp"
}

// Download fetches a single video to destPath, capped at 1080p
func (d *Downloader) Download(videoID, destPath string) error {
	args := downloadArgs(videoID, destPath)

	if d.Verbose {
		log.Printf("Running %s %s\n", d.binary(), strings.Join(args, " "))
	}

	out, err := exec.Command(d.binary(), args...).CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "yt-dlp failed: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

func downloadArgs(videoID, destPath string) []string {
	return []string{
		"-f", "best[height<=1080]",
		"-o", destPath,
		"--no-playlist",
		"https://www.youtube.com/watch?v=" + videoID,
	}
}

// ListPlaylistVideos enumerates a playlist without downloading anything.
// Private and unavailable entries are skipped, duplicate IDs dropped, and
// limit caps the result when positive.
func (d *Downloader) ListPlaylistVideos(playlistURL string, limit int) ([]types.VideoEntry, error) {
	args := []string{
		"--flat-playlist",
		"--print", "%(id)s",
		"--print", "%(title)s",
		"--print", "%(description)s",
		"--print", entrySeparator,
		playlistURL,
	}

	if d.Verbose {
		log.Printf("Running %s %s\n", d.binary(), strings.Join(args, " "))
	}

	out, err := exec.Command(d.binary(), args...).Output()
	if err != nil {
		return nil, errors.Wrap(err, "yt-dlp playlist listing failed")
	}

	return parsePlaylistOutput(string(out), limit), nil
}

func parsePlaylistOutput(output string, limit int) []types.VideoEntry {
	lines := strings.Split(strings.TrimSpace(output), "\n")

	var entries []types.VideoEntry
	seen := make(map[string]bool)

	for i := 0; i+4 <= len(lines); i += 4 {
		id := strings.TrimSpace(lines[i])
		title := strings.TrimSpace(lines[i+1])
		description := strings.TrimSpace(lines[i+2])

		if description == "NA" {
			description = ""
		}
		if id == "" || title == "" {
			continue
		}
		if strings.Contains(title, "[Private video]") || strings.Contains(title, "[Unavailable]") {
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true

		entries = append(entries, types.VideoEntry{
			ID:          id,
			Title:       title,
			Description: description,
		})
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
