package media

import (
	"os"

	"github.com/pkg/errors"

	"github.com/clipstream/clipstream/internal/config"
	"github.com/clipstream/clipstream/internal/ffmpeg"
)

// IntroDefinition names the clip prepended to a video and the thumbnail set
// on the re-uploaded result. ThumbnailPath may be empty.
type IntroDefinition struct {
	VideoPath     string
	ThumbnailPath string
}

// IntroSet pairs a 16:9 intro for regular videos with an optional 9:16 intro
// for vertical ones. Read-only at run time.
type IntroSet struct {
	Horizontal IntroDefinition
	Vertical   IntroDefinition
}

// IntroSetFromEnv builds the intro configuration from environment variables,
// falling back to the conventional file names next to the binary.
func IntroSetFromEnv() IntroSet {
	return IntroSet{
		Horizontal: IntroDefinition{
			VideoPath:     config.Getenv(config.EnvIntroVideo, "intro.mp4"),
			ThumbnailPath: config.Getenv(config.EnvIntroThumbnail, "intro.jpg"),
		},
		Vertical: IntroDefinition{
			VideoPath:     config.Getenv(config.EnvIntroVideoShort, "intro_short.mp4"),
			ThumbnailPath: config.Getenv(config.EnvIntroThumbnailShort, "intro_short.jpg"),
		},
	}
}

// Validate checks the hard precondition for any stitching operation: the
// horizontal intro must exist. The vertical intro and both thumbnails are
// optional and degrade to the horizontal fallback.
func (s IntroSet) Validate() error {
	if s.Horizontal.VideoPath == "" {
		return errors.Wrap(ffmpeg.ErrSourceNotFound, "no horizontal intro configured")
	}
	if _, err := os.Stat(s.Horizontal.VideoPath); err != nil {
		return errors.Wrap(ffmpeg.ErrSourceNotFound, s.Horizontal.VideoPath)
	}
	return nil
}

// Select picks the intro matching the main video's orientation. The vertical
// intro is used only when the video is vertical and the intro file actually
// exists; everything else falls back to the horizontal intro. Never fails.
func Select(orientation Orientation, set IntroSet) IntroDefinition {
	if orientation == Vertical && fileExists(set.Vertical.VideoPath) {
		chosen := set.Vertical
		if !fileExists(chosen.ThumbnailPath) {
			chosen.ThumbnailPath = set.Horizontal.ThumbnailPath
		}
		return chosen
	}
	return set.Horizontal
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
