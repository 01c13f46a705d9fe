package processor

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/clipstream/clipstream/pkg/types"
)

func TestResultLine(t *testing.T) {
	uploaded := BatchResult{
		Item:   BatchItem{Title: "Clip"},
		Status: types.BatchStatusUploaded,
		NewURL: "https://www.youtube.com/watch?v=new1",
	}
	if line := uploaded.Line(); !strings.Contains(line, "watch?v=new1") {
		t.Errorf("uploaded line should show the new URL: %q", line)
	}

	failed := BatchResult{
		Item:   BatchItem{Title: "Clip"},
		Status: types.BatchStatusDownloadFailed,
		Err:    fmt.Errorf("download stage: connection reset"),
	}
	line := failed.Line()
	if !strings.Contains(line, string(types.BatchStatusDownloadFailed)) {
		t.Errorf("failed line should name the failed stage: %q", line)
	}
	if !strings.Contains(line, "connection reset") {
		t.Errorf("failed line should carry the error message: %q", line)
	}

	long := BatchResult{
		Item:   BatchItem{Title: strings.Repeat("x", 60)},
		Status: types.BatchStatusProcessed,
	}
	if line := long.Line(); !strings.Contains(line, "...") {
		t.Errorf("long titles should be truncated: %q", line)
	}

	// Truncation must not split a multi-byte character
	wide := BatchResult{
		Item:   BatchItem{Title: strings.Repeat("動", 60)},
		Status: types.BatchStatusProcessed,
	}
	line = wide.Line()
	if !utf8.ValidString(line) {
		t.Errorf("truncated line is not valid UTF-8: %q", line)
	}
	if !strings.HasPrefix(line, strings.Repeat("動", 40)+"...") {
		t.Errorf("expected 40 characters before the ellipsis: %q", line)
	}
}

func TestSummarize(t *testing.T) {
	results := []BatchResult{
		{Status: types.BatchStatusUploaded},
		{Status: types.BatchStatusProcessed},
		{Status: types.BatchStatusDownloadFailed},
		{Status: types.BatchStatusUploadFailed},
		{Status: types.BatchStatusUploaded},
	}

	s := Summarize(results)
	if s.Total != 5 {
		t.Errorf("Total = %d, expected 5", s.Total)
	}
	if s.Successful != 3 {
		t.Errorf("Successful = %d, expected 3", s.Successful)
	}
	if s.Failed != 2 {
		t.Errorf("Failed = %d, expected 2", s.Failed)
	}
	if s.ByStatus[types.BatchStatusUploaded] != 2 {
		t.Errorf("ByStatus[uploaded] = %d, expected 2", s.ByStatus[types.BatchStatusUploaded])
	}
}
