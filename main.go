package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/clipstream/clipstream/internal/config"
	"github.com/clipstream/clipstream/internal/history"
	"github.com/clipstream/clipstream/internal/media"
	"github.com/clipstream/clipstream/internal/processor"
	"github.com/clipstream/clipstream/internal/storage"
	"github.com/clipstream/clipstream/internal/youtube"
	"github.com/clipstream/clipstream/pkg/types"
)

var (
	rootCmd = &cobra.Command{
		Use:   "clipstream",
		Short: "A tool for prepending branded intros to videos",
		Long: `clipstream appends a branded intro clip to videos and optionally
re-uploads the result. The intro matching the video's orientation (16:9 or
9:16) is selected automatically.

Examples:
  # Stitch the intro onto a local video with a half-second cross-fade
  clipstream stitch -i recording.mp4 --fade 0.5

  # Download a playlist, add intros and re-upload everything as private
  clipstream batch https://www.youtube.com/playlist?list=PL... --reupload`,
	}

	stitchCmd = &cobra.Command{
		Use:   "stitch",
		Short: "Prepend the matching intro to a single video",
		Long: `Classify a local video's orientation, select the matching intro
(16:9 or 9:16, falling back to 16:9) and render the stitched result with a
cross-fade transition.

Example:
  clipstream stitch -i recording.mp4 -o output/recording_with_intro.mp4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &config.StitchOptions{}

			opts.InputPath, _ = cmd.Flags().GetString("input")
			opts.OutputPath, _ = cmd.Flags().GetString("output")
			opts.FadeSeconds, _ = cmd.Flags().GetFloat64("fade")
			opts.OutputFormat, _ = cmd.Flags().GetString("output-format")
			opts.Verbose, _ = cmd.Flags().GetBool("verbose")

			if opts.InputPath == "" {
				return fmt.Errorf("input path is required")
			}
			if err := config.ValidateFade(opts.FadeSeconds); err != nil {
				return err
			}

			intros := media.IntroSetFromEnv()
			if err := intros.Validate(); err != nil {
				return err
			}

			outcome, err := processor.NewStitcher(opts, intros).Process()
			if err != nil {
				return err
			}

			run := history.New(config.DefaultHistoryFile)
			run.Append(history.EventProcess, opts.InputPath, map[string]interface{}{
				"is_short": outcome.Orientation == media.Vertical,
				"fade":     opts.FadeSeconds,
			})

			fmt.Printf("Created %s\n", outcome.OutputPath)
			return nil
		},
	}

	batchCmd = &cobra.Command{
		Use:   "batch [playlist-url]",
		Short: "Download videos, stitch intros and optionally re-upload",
		Long: `Enumerate a playlist (or, without a URL, your own channel's recent
uploads), then for each video: download it (skipping videos already on disk),
prepend the matching intro and, with --reupload, publish the result, restore
the thumbnail and replicate playlist membership.

One video's failure never aborts the batch; a per-item report is printed at
the end.

Examples:
  clipstream batch https://www.youtube.com/playlist?list=PL... --limit 6 --reupload
  clipstream batch --limit 3 --reupload`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &config.BatchOptions{}

			limit, _ := cmd.Flags().GetInt("limit")
			opts.PrivacyStatus, _ = cmd.Flags().GetString("privacy")
			opts.Reupload, _ = cmd.Flags().GetBool("reupload")
			opts.SkipIfExists, _ = cmd.Flags().GetBool("skip-existing")
			opts.FadeSeconds, _ = cmd.Flags().GetFloat64("fade")
			opts.DownloadDir, _ = cmd.Flags().GetString("download-dir")
			opts.OutputDir, _ = cmd.Flags().GetString("output-dir")
			opts.Verbose, _ = cmd.Flags().GetBool("verbose")

			if err := config.ValidateFade(opts.FadeSeconds); err != nil {
				return err
			}

			playlistURL := ""
			if len(args) == 1 {
				playlistURL = args[0]
			}
			return runBatch(playlistURL, limit, opts)
		},
	}

	storageCmd = &cobra.Command{
		Use:   "storage",
		Short: "Inspect or clean the download and output folders",
	}

	storageStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "Report disk usage of the working folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			var total int64
			for _, st := range storage.Status(workFolders()) {
				if !st.Exists {
					fmt.Printf("%s/: (not found)\n", st.Path)
					continue
				}
				fmt.Printf("%s/: %s\n", st.Path, storage.FormatSize(st.Size))
				total += st.Size
				if warn := storage.UsageWarning(st.Size, config.StorageWarningThreshold); warn != "" {
					fmt.Printf("  warning: %s\n", warn)
				}
			}
			fmt.Printf("Total: %s\n", storage.FormatSize(total))
			return nil
		},
	}

	storageCleanupCmd = &cobra.Command{
		Use:   "cleanup",
		Short: "Delete everything in the working folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			run := history.New(config.DefaultHistoryFile)
			for _, dir := range workFolders() {
				deleted, freed, err := storage.Cleanup(dir)
				if err != nil {
					return err
				}
				if deleted > 0 {
					fmt.Printf("%s/: deleted %d items, freed %s\n",
						dir, deleted, storage.FormatSize(freed))
					run.Append(history.EventCleanup, dir, map[string]interface{}{
						"deleted": deleted,
						"freed":   freed,
					})
				} else {
					fmt.Printf("%s/: already empty\n", dir)
				}
			}
			return nil
		},
	}

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "Show recent runs and aggregate statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			run := history.New(config.DefaultHistoryFile)
			stats, err := run.Stats(time.Now())
			if err != nil {
				return err
			}
			fmt.Printf("Processed: %d (today %d, last 7 days %d)\n",
				stats.TotalProcessed, stats.TodayProcessed, stats.WeekProcessed)
			fmt.Printf("Uploaded: %d, shorts: %d\n", stats.TotalUploaded, stats.TotalShorts)

			events, err := run.Events()
			if err != nil {
				return err
			}
			if limit > 0 && len(events) > limit {
				events = events[:limit]
			}
			for _, e := range events {
				fmt.Printf("%s  %-8s  %s\n",
					e.Timestamp.Format("2006-01-02 15:04"), e.Type, e.Title)
			}
			return nil
		},
	}

	authCmd = &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to the hosting platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			secrets := config.Getenv(config.EnvClientSecretsFile, config.DefaultClientSecretsFile)
			return youtube.Authorize(secrets, config.DefaultTokenFile)
		},
	}
)

func runBatch(playlistURL string, limit int, opts *config.BatchOptions) error {
	intros := media.IntroSetFromEnv()
	if err := intros.Validate(); err != nil {
		return err
	}

	downloads := &youtube.Downloader{Verbose: opts.Verbose}

	// Listing your own uploads and re-uploading both need the
	// authenticated client; a plain playlist run does not.
	var client *youtube.Client
	if opts.Reupload || playlistURL == "" {
		secrets := config.Getenv(config.EnvClientSecretsFile, config.DefaultClientSecretsFile)
		c, err := youtube.NewClient(secrets, config.DefaultTokenFile)
		if err != nil {
			return err
		}
		client = c
	}
	var uploadsSource processor.UploadsLister
	if client != nil {
		uploadsSource = client
	}

	fmt.Printf("Fetching videos (limit: %d)...\n", limit)
	entries, err := processor.SourceVideos(playlistURL, limit, downloads, uploadsSource)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no videos found to process")
	}
	fmt.Printf("Found %d videos to process\n", len(entries))

	items := processor.ItemsFromEntries(entries)
	if client != nil {
		for i := range items {
			// Membership lookup is advisory only
			playlists, err := client.VideoPlaylists(items[i].ID)
			if err != nil {
				continue
			}
			for _, pl := range playlists {
				items[i].Playlists = append(items[i].Playlists, processor.Playlist{
					ID:    pl.ID,
					Title: pl.Title,
				})
			}
		}
	}

	run := history.New(config.DefaultHistoryFile)
	bar := progressbar.Default(int64(len(items)), "processing")

	batcher := processor.NewBatcher(opts, intros, client, downloads)
	batcher.OnItem = func(done, total int, result processor.BatchResult) {
		bar.Add(1)
		if result.Downloaded {
			run.Append(history.EventDownload, result.Item.Title, map[string]interface{}{
				"video_id": result.Item.ID,
			})
		}
		if result.Status.Success() {
			eventType := history.EventProcess
			if result.Status == types.BatchStatusUploaded {
				eventType = history.EventUpload
			}
			run.Append(eventType, result.Item.Title, map[string]interface{}{
				"is_short": result.IsShort,
				"new_id":   result.NewID,
				"new_url":  result.NewURL,
			})
		}
	}

	results, summary := batcher.Process(items)
	bar.Finish()

	fmt.Printf("\nSuccessful: %d\nFailed: %d\n\n", summary.Successful, summary.Failed)
	for _, result := range results {
		fmt.Printf("  %s\n", result.Line())
		for _, warning := range result.Warnings {
			fmt.Printf("    warning: %s\n", warning)
		}
	}

	if summary.Failed > 0 {
		fmt.Println("\nRerun the same batch to retry failed items; finished downloads are reused.")
	}
	return nil
}

func workFolders() []string {
	return []string{
		config.DefaultDownloadDir,
		config.Getenv(config.EnvOutputDir, config.DefaultOutputDir),
	}
}

func init() {
	// Stitch command flags
	stitchCmd.Flags().StringP("input", "i", "", "Input video file")
	stitchCmd.Flags().StringP("output", "o", "", "Output video path (default: output/<name>_with_intro.mp4)")
	stitchCmd.Flags().Float64P("fade", "f", config.DefaultFadeSeconds, "Cross-fade duration in seconds")
	stitchCmd.Flags().String("output-format", "mp4", "Output format (mp4 or webm)")
	stitchCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	stitchCmd.MarkFlagRequired("input")

	// Batch command flags
	batchCmd.Flags().IntP("limit", "l", config.DefaultBatchLimit, "Number of videos to process")
	batchCmd.Flags().StringP("privacy", "p", config.DefaultPrivacyStatus, "Privacy status for re-uploads (private, unlisted, public)")
	batchCmd.Flags().Bool("reupload", false, "Re-upload stitched videos")
	batchCmd.Flags().Bool("skip-existing", true, "Skip downloads that already exist on disk")
	batchCmd.Flags().Float64P("fade", "f", config.DefaultFadeSeconds, "Cross-fade duration in seconds")
	batchCmd.Flags().String("download-dir", config.DefaultDownloadDir, "Directory for downloaded videos")
	batchCmd.Flags().String("output-dir", config.DefaultOutputDir, "Directory for stitched videos")
	batchCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	// History command flags
	historyCmd.Flags().IntP("limit", "l", 10, "Number of recent events to show")

	storageCmd.AddCommand(storageStatusCmd)
	storageCmd.AddCommand(storageCleanupCmd)

	rootCmd.AddCommand(stitchCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(storageCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(authCmd)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
