package processor

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/clipstream/clipstream/internal/config"
	"github.com/clipstream/clipstream/internal/ffmpeg"
	"github.com/clipstream/clipstream/internal/media"
)

func TestStitcherMissingInput(t *testing.T) {
	dir := t.TempDir()
	intros := media.IntroSet{
		Horizontal: media.IntroDefinition{
			VideoPath: writeFile(t, filepath.Join(dir, "intro.mp4")),
		},
	}

	opts := &config.StitchOptions{
		InputPath: filepath.Join(dir, "missing.mp4"),
	}
	_, err := NewStitcher(opts, intros).Process()
	if !errors.Is(err, ffmpeg.ErrSourceNotFound) {
		t.Errorf("expected ErrSourceNotFound for a missing input, got %v", err)
	}
}

func TestStitcherMissingHorizontalIntro(t *testing.T) {
	dir := t.TempDir()
	intros := media.IntroSet{
		Horizontal: media.IntroDefinition{
			VideoPath: filepath.Join(dir, "missing_intro.mp4"),
		},
	}

	opts := &config.StitchOptions{
		InputPath: writeFile(t, filepath.Join(dir, "input.mp4")),
	}
	_, err := NewStitcher(opts, intros).Process()
	if !errors.Is(err, ffmpeg.ErrSourceNotFound) {
		t.Errorf("expected ErrSourceNotFound for a missing horizontal intro, got %v", err)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Simple name", "clip.mp4", filepath.Join("out", "clip_with_intro.mp4")},
		{"Nested input", "/videos/raw/clip.mov", filepath.Join("out", "clip_with_intro.mp4")},
		{"No extension", "clip", filepath.Join("out", "clip_with_intro.mp4")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultOutputPath("out", tt.input); got != tt.expected {
				t.Errorf("DefaultOutputPath(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}
