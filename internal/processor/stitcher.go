package processor

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/clipstream/clipstream/internal/config"
	"github.com/clipstream/clipstream/internal/ffmpeg"
	"github.com/clipstream/clipstream/internal/media"
)

// Stitcher prepends the matching intro to a single video
type Stitcher struct {
	opts       *config.StitchOptions
	intros     media.IntroSet
	ffmpeg     *ffmpeg.Processor
	classifier *media.Classifier
}

// StitchOutcome describes a completed stitch
type StitchOutcome struct {
	OutputPath        string
	Orientation       media.Orientation
	UsedVerticalIntro bool
	Intro             media.IntroDefinition
}

// NewStitcher creates a new intro stitcher
func NewStitcher(opts *config.StitchOptions, intros media.IntroSet) *Stitcher {
	return &Stitcher{
		opts:       opts,
		intros:     intros,
		ffmpeg:     ffmpeg.NewProcessor(opts.Verbose),
		classifier: media.NewClassifier(opts.Verbose),
	}
}

// Process classifies the input video, selects the matching intro and renders
// the stitched output. On success the returned outcome carries the final
// output path.
func (s *Stitcher) Process() (*StitchOutcome, error) {
	if err := s.intros.Validate(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(s.opts.InputPath); err != nil {
		return nil, errors.Wrap(ffmpeg.ErrSourceNotFound, s.opts.InputPath)
	}

	info, err := s.classifier.Classify(s.opts.InputPath)
	if err != nil {
		return nil, err
	}

	intro := media.Select(info.Orientation, s.intros)

	if s.opts.Verbose {
		log.Printf("Input is %s (%dx%d), using intro %s\n",
			info.Orientation, info.Width, info.Height, intro.VideoPath)
	}

	outputPath := s.opts.OutputPath
	if outputPath == "" {
		outputPath = DefaultOutputPath(config.DefaultOutputDir, s.opts.InputPath)
	}
	if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("error creating output directory: %v", err)
		}
	}

	err = s.ffmpeg.Stitch(ffmpeg.StitchJob{
		IntroPath:    intro.VideoPath,
		MainPath:     s.opts.InputPath,
		OutputPath:   outputPath,
		FadeSeconds:  s.opts.FadeSeconds,
		OutputFormat: s.opts.OutputFormat,
	})
	if err != nil {
		return nil, err
	}

	settings := ffmpeg.GetCodecSettings(s.opts.OutputFormat)

	return &StitchOutcome{
		OutputPath:        ffmpeg.EnsureExtension(outputPath, settings.FileExtension),
		Orientation:       info.Orientation,
		UsedVerticalIntro: intro.VideoPath == s.intros.Vertical.VideoPath && info.Orientation == media.Vertical,
		Intro:             intro,
	}, nil
}

// DefaultOutputPath derives the stitched file name from the input file name,
// placed under dir
func DefaultOutputPath(dir, inputPath string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+config.OutputSuffix+".mp4")
}
