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
	"github.com/clipstream/clipstream/pkg/types"
)

// Downloader fetches a remote video to a local path
type Downloader interface {
	Download(videoID, destPath string) error
}

// Uploader is the hosting-platform surface the batch needs. Authentication
// is owned entirely by the implementation.
type Uploader interface {
	Upload(localPath, title, description, privacyStatus string) (string, error)
	SetThumbnail(videoID, imagePath string) error
	AddToPlaylist(videoID, playlistID string) error
}

// ClassifyFunc reports a local video's orientation
type ClassifyFunc func(path string) (media.Orientation, error)

// StitchFunc renders one intro-plus-main composition
type StitchFunc func(job ffmpeg.StitchJob) error

// Batcher drives a list of batch items through download, stitch and
// optional re-upload, strictly one item at a time in input order. One item's
// failure never aborts the run.
type Batcher struct {
	Opts   *config.BatchOptions
	Intros media.IntroSet

	Client    Uploader
	Downloads Downloader

	// Seams for the media collaborators; NewBatcher wires the real ones
	Classify ClassifyFunc
	Stitch   StitchFunc

	// Optional progress hook, called after each item completes
	OnItem func(done, total int, result BatchResult)
}

// NewBatcher creates a batch orchestrator backed by the real ffmpeg
// collaborators
func NewBatcher(opts *config.BatchOptions, intros media.IntroSet, client Uploader, downloads Downloader) *Batcher {
	proc := ffmpeg.NewProcessor(opts.Verbose)
	classifier := media.NewClassifier(opts.Verbose)
	return &Batcher{
		Opts:      opts,
		Intros:    intros,
		Client:    client,
		Downloads: downloads,
		Classify: func(path string) (media.Orientation, error) {
			info, err := classifier.Classify(path)
			if err != nil {
				return "", err
			}
			return info.Orientation, nil
		},
		Stitch: proc.Stitch,
	}
}

// Process runs every item to a terminal status and returns the per-item
// results in input order together with the aggregate summary.
func (b *Batcher) Process(items []BatchItem) ([]BatchResult, Summary) {
	results := make([]BatchResult, 0, len(items))

	for i, item := range items {
		result := b.processOne(item)
		results = append(results, result)

		if b.Opts.Verbose {
			log.Printf("Item %d/%d: %s\n", i+1, len(items), result.Line())
		}
		if b.OnItem != nil {
			b.OnItem(i+1, len(items), result)
		}
	}

	return results, Summarize(results)
}

func (b *Batcher) processOne(item BatchItem) BatchResult {
	result := BatchResult{Item: item, IsShort: item.IsShortHint}

	if err := os.MkdirAll(b.Opts.DownloadDir, 0755); err != nil {
		result.Status = types.BatchStatusError
		result.Err = err
		return result
	}
	if err := os.MkdirAll(b.Opts.OutputDir, 0755); err != nil {
		result.Status = types.BatchStatusError
		result.Err = err
		return result
	}

	// Download, unless the policy says an existing file counts. Rerunning
	// a batch after a partial failure re-uses whatever was already
	// fetched; stitching and uploading always repeat.
	downloadPath := filepath.Join(b.Opts.DownloadDir, item.ID+".mp4")
	if !(b.Opts.SkipIfExists && fileExists(downloadPath)) {
		if err := b.Downloads.Download(item.ID, downloadPath); err != nil {
			result.Status = types.BatchStatusDownloadFailed
			result.Err = errors.Wrapf(err, "%s stage", types.StageDownload)
			return result
		}
		result.Downloaded = true
	}

	orientation, err := b.Classify(downloadPath)
	if err != nil {
		result.Status = types.BatchStatusProcessingFailed
		result.Err = errors.Wrapf(err, "%s stage", types.StageProcess)
		return result
	}
	result.IsShort = item.IsShortHint || orientation == media.Vertical

	intro := media.Select(orientation, b.Intros)
	result.UsedVerticalIntro = orientation == media.Vertical &&
		intro.VideoPath == b.Intros.Vertical.VideoPath

	outputPath := filepath.Join(b.Opts.OutputDir, item.ID+config.OutputSuffix+".mp4")
	err = b.Stitch(ffmpeg.StitchJob{
		IntroPath:   intro.VideoPath,
		MainPath:    downloadPath,
		OutputPath:  outputPath,
		FadeSeconds: b.Opts.FadeSeconds,
	})
	if err != nil {
		result.Status = types.BatchStatusProcessingFailed
		result.Err = errors.Wrapf(err, "%s stage", types.StageProcess)
		return result
	}
	result.OutputPath = outputPath

	if !b.Opts.Reupload {
		result.Status = types.BatchStatusProcessed
		return result
	}

	title := item.Title
	if result.IsShort {
		title = TagShortTitle(title)
	}
	description := item.Description
	if description == "" {
		description = fmt.Sprintf("Re-uploaded with intro. Original: https://youtu.be/%s", item.ID)
	}

	newID, err := b.Client.Upload(outputPath, title, description, b.Opts.PrivacyStatus)
	if err != nil {
		result.Status = types.BatchStatusUploadFailed
		result.Err = errors.Wrapf(err, "%s stage", types.StageUpload)
		return result
	}
	result.Status = types.BatchStatusUploaded
	result.NewID = newID
	result.NewURL = "https://www.youtube.com/watch?v=" + newID

	// Thumbnail and playlist replication are cosmetic. Failures land in
	// the warnings list and never downgrade the uploaded status.
	if fileExists(intro.ThumbnailPath) {
		if err := b.Client.SetThumbnail(newID, intro.ThumbnailPath); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("thumbnail not set: %v", err))
		}
	}
	for _, playlist := range item.Playlists {
		if err := b.Client.AddToPlaylist(newID, playlist.ID); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("not added to playlist %q: %v", playlist.Title, err))
		}
	}

	return result
}

// TagShortTitle appends the short-form marker unless the title already
// contains it, matched case-insensitively
func TagShortTitle(title string) string {
	if strings.Contains(strings.ToLower(title), strings.ToLower(config.ShortsMarker)) {
		return title
	}
	return title + " " + config.ShortsMarker
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
