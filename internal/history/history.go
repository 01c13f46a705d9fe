package history

import (
	"encoding/json"
	"os"
	"time"

	"github.com/clipstream/clipstream/internal/config"
)

// Event types recorded in the run log
const (
	EventProcess  = "process"
	EventUpload   = "upload"
	EventDownload = "download"
	EventCleanup  = "cleanup"
)

// Event is one entry of the append-only run log
type Event struct {
	Timestamp time.Time              `json:"timestamp"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Log is a flat JSON file of recent events, newest first, capped in length.
// A corrupt or missing file reads as empty history.
type Log struct {
	path string
	max  int
}

// New opens the run log at path
func New(path string) *Log {
	return &Log{path: path, max: config.MaxHistoryEvents}
}

// Events loads the log, newest first
func (l *Log) Events() ([]Event, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var events []Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, nil
	}
	return events, nil
}

// Append inserts an event at the head of the log and trims it to the cap
func (l *Log) Append(eventType, title string, details map[string]interface{}) error {
	events, err := l.Events()
	if err != nil {
		return err
	}

	events = append([]Event{{
		Timestamp: time.Now(),
		Type:      eventType,
		Title:     title,
		Details:   details,
	}}, events...)

	if len(events) > l.max {
		events = events[:l.max]
	}

	raw, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(l.path, raw, 0644)
}

// Stats are aggregate counts derived from the log
type Stats struct {
	TotalProcessed int
	TotalUploaded  int
	TotalShorts    int
	TodayProcessed int
	WeekProcessed  int
}

// Stats derives aggregate counts relative to now
func (l *Log) Stats(now time.Time) (Stats, error) {
	events, err := l.Events()
	if err != nil {
		return Stats{}, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)

	var stats Stats
	for _, e := range events {
		switch e.Type {
		case EventProcess:
			stats.TotalProcessed++
			if !e.Timestamp.Before(today) {
				stats.TodayProcessed++
			}
			if !e.Timestamp.Before(weekAgo) {
				stats.WeekProcessed++
			}
			if isShort, _ := e.Details["is_short"].(bool); isShort {
				stats.TotalShorts++
			}
		case EventUpload:
			stats.TotalUploaded++
		}
	}
	return stats, nil
}
