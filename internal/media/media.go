package media

import (
	"github.com/clipstream/clipstream/internal/ffmpeg"
)

// Orientation classifies a video as portrait or landscape based on its
// native pixel dimensions.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// VideoInfo is the result of classifying a local video file.
type VideoInfo struct {
	Width       int
	Height      int
	Orientation Orientation
}

// Classifier inspects video files and reports their orientation
type Classifier struct {
	ffmpeg *ffmpeg.Processor
}

// NewClassifier creates a new orientation classifier
func NewClassifier(verbose bool) *Classifier {
	return &Classifier{
		ffmpeg: ffmpeg.NewProcessor(verbose),
	}
}

// Classify opens the first video stream of the file at path and reports its
// dimensions and orientation. Fails with ffmpeg.ErrAssetUnreadable when the
// file cannot be opened or carries no decodable video stream.
func (c *Classifier) Classify(path string) (*VideoInfo, error) {
	meta, err := c.ffmpeg.GetVideoMetadata(path)
	if err != nil {
		return nil, err
	}

	return &VideoInfo{
		Width:       meta.Width,
		Height:      meta.Height,
		Orientation: OrientationOf(meta.Width, meta.Height),
	}, nil
}

// OrientationOf reports vertical only when height strictly exceeds width;
// square frames count as horizontal, the more common default
func OrientationOf(width, height int) Orientation {
	if height > width {
		return Vertical
	}
	return Horizontal
}
