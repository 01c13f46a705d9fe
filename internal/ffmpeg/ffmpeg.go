package ffmpeg

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Error kinds surfaced by the media layer. Callers discriminate with
// errors.Is; wrapped messages carry the offending path or detail.
var (
	ErrSourceNotFound    = errors.New("source video not found")
	ErrAssetUnreadable   = errors.New("asset unreadable")
	ErrRenderFailed      = errors.New("render failed")
	ErrFadeOutOfRange    = errors.New("fade duration out of range")
	ErrDimensionMismatch = errors.New("dimension mismatch after resize")
)

type CodecSettings struct {
	VideoCodec      string
	AudioCodec      string
	ContainerFormat string
	FileExtension   string
}

var codecPresets = map[string]CodecSettings{
	"mp4": {
		VideoCodec:      "libx264",
		AudioCodec:      "aac",
		ContainerFormat: "mp4",
		FileExtension:   ".mp4",
	},
	"webm": {
		VideoCodec:      "libvpx-vp9",
		AudioCodec:      "libopus",
		ContainerFormat: "webm",
		FileExtension:   ".webm",
	},
}

func GetCodecSettings(outputFormat string) CodecSettings {
	if settings, ok := codecPresets[outputFormat]; ok {
		return settings
	}
	// Default to MP4 if format not specified or invalid
	return codecPresets["mp4"]
}

// VideoMetadata contains metadata about a video file
type VideoMetadata struct {
	Duration float64
	Width    int
	Height   int
	Codec    string
}

// StitchJob is one request to combine an intro clip with a main clip.
// FadeSeconds of zero degrades to a hard cut.
type StitchJob struct {
	IntroPath    string
	MainPath     string
	OutputPath   string
	FadeSeconds  float64
	OutputFormat string // "mp4" or "webm"
}

// Processor wraps FFmpeg functionality
type Processor struct {
	verbose bool
}

// NewProcessor creates a new FFmpeg processor
func NewProcessor(verbose bool) *Processor {
	return &Processor{
		verbose: verbose,
	}
}

// GetVideoMetadata retrieves metadata about a video file
func (p *Processor) GetVideoMetadata(inputPath string) (*VideoMetadata, error) {
	probe, err := ffmpeg.Probe(inputPath)
	if err != nil {
		return nil, errors.Wrapf(ErrAssetUnreadable, "probe %s: %v", inputPath, err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(probe), &data); err != nil {
		return nil, errors.WithStack(err)
	}

	videoStream, err := firstVideoStream(data)
	if err != nil {
		return nil, errors.Wrapf(ErrAssetUnreadable, "%s: %v", inputPath, err)
	}

	duration := probeDuration(data, videoStream)
	if duration == 0 {
		return nil, errors.Wrapf(ErrAssetUnreadable, "%s: could not determine video duration", inputPath)
	}

	width, wok := videoStream["width"].(float64)
	height, hok := videoStream["height"].(float64)
	if !wok || !hok {
		return nil, errors.Wrapf(ErrAssetUnreadable, "%s: stream has no pixel dimensions", inputPath)
	}

	codec, _ := videoStream["codec_name"].(string)

	return &VideoMetadata{
		Duration: duration,
		Width:    int(width),
		Height:   int(height),
		Codec:    codec,
	}, nil
}

func firstVideoStream(data map[string]interface{}) (map[string]interface{}, error) {
	streams, ok := data["streams"].([]interface{})
	if !ok || len(streams) == 0 {
		return nil, fmt.Errorf("no streams found in video")
	}

	for _, stream := range streams {
		s, ok := stream.(map[string]interface{})
		if !ok {
			continue
		}
		if codecType, _ := s["codec_type"].(string); codecType == "video" {
			return s, nil
		}
	}

	return nil, fmt.Errorf("no video stream found")
}

// probeDuration tries the video stream duration first, then the container
// duration, then falls back to frame count / frame rate.
func probeDuration(data, videoStream map[string]interface{}) float64 {
	if durationStr, ok := videoStream["duration"].(string); ok {
		if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil && d > 0 {
			return d
		}
	}

	if format, ok := data["format"].(map[string]interface{}); ok {
		if durationStr, ok := format["duration"].(string); ok {
			if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil && d > 0 {
				return d
			}
		}
	}

	nbFrames, ok := videoStream["nb_frames"].(string)
	if !ok {
		return 0
	}
	frames, err := strconv.ParseFloat(nbFrames, 64)
	if err != nil {
		return 0
	}
	rFrameRate, ok := videoStream["r_frame_rate"].(string)
	if !ok {
		return 0
	}
	nums := strings.Split(rFrameRate, "/")
	if len(nums) != 2 {
		return 0
	}
	num, err1 := strconv.ParseFloat(nums[0], 64)
	den, err2 := strconv.ParseFloat(nums[1], 64)
	if err1 != nil || err2 != nil || den == 0 || num == 0 {
		return 0
	}
	return frames / (num / den)
}

// Stitch renders the intro followed by the main clip into a single output
// file, normalizing the main clip's dimensions to the intro's and applying a
// symmetric cross-fade over the cut. The render re-encodes both clips, so
// mismatched source codecs are fine.
func (p *Processor) Stitch(job StitchJob) error {
	for _, path := range []string{job.IntroPath, job.MainPath} {
		if _, err := os.Stat(path); err != nil {
			return errors.Wrap(ErrSourceNotFound, path)
		}
	}

	if job.FadeSeconds < 0 {
		return errors.Wrapf(ErrFadeOutOfRange, "%.2fs is negative", job.FadeSeconds)
	}

	introMeta, err := p.GetVideoMetadata(job.IntroPath)
	if err != nil {
		return err
	}
	mainMeta, err := p.GetVideoMetadata(job.MainPath)
	if err != nil {
		return err
	}

	maxFade := math.Min(introMeta.Duration, mainMeta.Duration)
	if job.FadeSeconds > maxFade {
		return errors.Wrapf(ErrFadeOutOfRange, "%.2fs exceeds shortest clip duration %.2fs",
			job.FadeSeconds, maxFade)
	}

	intro := ffmpeg.Input(job.IntroPath)
	main := ffmpeg.Input(job.MainPath)

	introV := intro.Get("v")
	introA := intro.Get("a")
	mainV := main.Get("v")
	mainA := main.Get("a")

	if introMeta.Width <= 0 || introMeta.Height <= 0 {
		return errors.Wrapf(ErrDimensionMismatch, "intro reports %dx%d frames",
			introMeta.Width, introMeta.Height)
	}

	// Force the main clip to the intro's dimensions as two independent
	// passes, height first. The second pass can distort aspect ratio when
	// the clips' ratios differ; the concat step needs pixel-identical
	// frames, so the distortion wins over letterboxing here.
	width := mainMeta.Width
	if mainMeta.Height != introMeta.Height {
		mainV = mainV.Filter("scale", ffmpeg.Args{fmt.Sprintf("-2:%d", introMeta.Height)})
		width = heightFitWidth(mainMeta.Width, mainMeta.Height, introMeta.Height)
	}
	if width != introMeta.Width {
		mainV = mainV.Filter("scale", ffmpeg.Args{
			fmt.Sprintf("%d:%d", introMeta.Width, introMeta.Height),
		})
	}

	if job.FadeSeconds > 0 {
		outStart := introMeta.Duration - job.FadeSeconds
		fadeOut := fmt.Sprintf("t=out:st=%.3f:d=%.3f", outStart, job.FadeSeconds)
		fadeIn := fmt.Sprintf("t=in:st=0:d=%.3f", job.FadeSeconds)

		introV = introV.Filter("fade", ffmpeg.Args{fadeOut})
		introA = introA.Filter("afade", ffmpeg.Args{fadeOut})
		mainV = mainV.Filter("fade", ffmpeg.Args{fadeIn})
		mainA = mainA.Filter("afade", ffmpeg.Args{fadeIn})
	}

	combined := ffmpeg.Concat([]*ffmpeg.Stream{introV, introA, mainV, mainA}, ffmpeg.KwArgs{
		"v": 1,
		"a": 1,
	})

	settings := GetCodecSettings(job.OutputFormat)
	outputKwargs := ffmpeg.KwArgs{
		"c:v":     settings.VideoCodec,
		"c:a":     settings.AudioCodec,
		"pix_fmt": "yuv420p",
		"threads": GetOptimalThreadCount(),
	}
	if settings.ContainerFormat == "mp4" {
		outputKwargs["movflags"] = "+faststart"
	}

	outputPath := EnsureExtension(job.OutputPath, settings.FileExtension)

	if p.verbose {
		log.Printf("Stitching %s + %s -> %s\n", job.IntroPath, job.MainPath, outputPath)
		log.Printf("Intro dimensions: %dx%d, main dimensions: %dx%d\n",
			introMeta.Width, introMeta.Height, mainMeta.Width, mainMeta.Height)
		log.Printf("Fade duration: %.2fs\n", job.FadeSeconds)
	}

	err = combined.Output(outputPath, outputKwargs).
		OverWriteOutput().
		ErrorToStdOut().
		Run()

	if err != nil {
		// A failed render can leave a truncated container behind
		os.Remove(outputPath)
		return errors.Wrap(ErrRenderFailed, err.Error())
	}

	return nil
}

// heightFitWidth returns the width a clip lands on after being scaled to the
// target height with aspect ratio preserved, rounded down to an even value.
func heightFitWidth(srcWidth, srcHeight, targetHeight int) int {
	if srcHeight == 0 {
		return srcWidth
	}
	width := int(float64(srcWidth) * float64(targetHeight) / float64(srcHeight))
	return width - (width % 2)
}

func GetOptimalThreadCount() int {
	cpuCount := runtime.NumCPU()
	// Use 75% of available cores to prevent overload
	return int(math.Max(1, float64(cpuCount)*0.75))
}

// Helper function to ensure correct file extension
func EnsureExtension(filename, extension string) string {
	// Remove any existing video extension
	extensions := []string{".mp4", ".webm", ".mkv", ".avi", ".mov"}
	for _, ext := range extensions {
		filename = strings.TrimSuffix(filename, ext)
	}
	return filename + extension
}
