package processor

import (
	"fmt"

	"github.com/clipstream/clipstream/pkg/types"
)

// Playlist identifies a playlist on the hosting platform
type Playlist struct {
	ID    string
	Title string
}

// BatchItem is one unit of work in a batch run, produced by enumerating a
// playlist or a channel's uploads.
type BatchItem struct {
	ID          string
	Title       string
	Description string
	Playlists   []Playlist
	IsShortHint bool
}

// BatchResult is the immutable per-item terminal record of a batch run.
// Warnings holds non-fatal thumbnail and playlist errors that do not affect
// the terminal status.
type BatchResult struct {
	Item              BatchItem
	Status            types.BatchStatus
	OutputPath        string
	NewID             string
	NewURL            string
	Err               error
	Warnings          []string
	IsShort           bool
	UsedVerticalIntro bool

	// Downloaded reports whether the source video was actually fetched,
	// as opposed to re-used from a previous run
	Downloaded bool
}

// Line renders the one-line operator-facing outcome for this item
func (r BatchResult) Line() string {
	title := r.Item.Title
	if runes := []rune(title); len(runes) > 40 {
		title = string(runes[:40]) + "..."
	}
	switch {
	case r.Status == types.BatchStatusUploaded:
		return fmt.Sprintf("%s -> %s", title, r.NewURL)
	case r.Status == types.BatchStatusProcessed:
		return fmt.Sprintf("%s -> %s", title, r.OutputPath)
	case r.Err != nil:
		return fmt.Sprintf("%s (%s): %v", title, r.Status, r.Err)
	default:
		return fmt.Sprintf("%s (%s)", title, r.Status)
	}
}

// Summary aggregates a run's results into counts by outcome
type Summary struct {
	Total      int
	Successful int
	Failed     int
	ByStatus   map[types.BatchStatus]int
}

// Summarize partitions results into successful and failed and tallies
// per-status counts
func Summarize(results []BatchResult) Summary {
	s := Summary{
		Total:    len(results),
		ByStatus: make(map[types.BatchStatus]int),
	}
	for _, r := range results {
		s.ByStatus[r.Status]++
		if r.Status.Success() {
			s.Successful++
		} else {
			s.Failed++
		}
	}
	return s
}
