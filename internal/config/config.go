package config

import (
	"fmt"
	"os"
)

// StitchOptions defines options for stitching an intro onto a single video
type StitchOptions struct {
	InputPath    string
	OutputPath   string
	FadeSeconds  float64
	OutputFormat string // "mp4" or "webm"
	Verbose      bool
}

// BatchOptions defines options for a batch run over a list of source videos
type BatchOptions struct {
	DownloadDir   string
	OutputDir     string
	PrivacyStatus string
	Reupload      bool
	SkipIfExists  bool
	FadeSeconds   float64
	Verbose       bool
}

const (
	// Marker appended to titles of vertical videos so the platform
	// routes them into short-form discovery
	ShortsMarker = "#Shorts"

	// Fade transition bounds (seconds)
	DefaultFadeSeconds = 0.5
	MaxFadeSeconds     = 2.0

	// Working directories
	DefaultDownloadDir = "downloads"
	DefaultOutputDir   = "output"

	// Suffix for stitched output files
	OutputSuffix = "_with_intro"

	// History log
	DefaultHistoryFile = "clipstream_history.json"
	MaxHistoryEvents   = 200

	// Batch defaults
	DefaultBatchLimit    = 6
	DefaultPrivacyStatus = "private"

	// Storage warning threshold (1 GB)
	StorageWarningThreshold = 1 * 1024 * 1024 * 1024

	// Credential files for the hosting platform
	DefaultClientSecretsFile = "client_secrets.json"
	DefaultTokenFile         = "token.json"
)

// Intro file defaults, overridable via environment
const (
	EnvIntroVideo          = "INTRO_VIDEO"
	EnvIntroThumbnail      = "INTRO_THUMBNAIL"
	EnvIntroVideoShort     = "INTRO_VIDEO_SHORT"
	EnvIntroThumbnailShort = "INTRO_THUMBNAIL_SHORT"
	EnvOutputDir           = "OUTPUT_DIR"
	EnvClientSecretsFile   = "CLIENT_SECRETS_FILE"
)

// ValidateFade checks a cross-fade duration against the bounds every
// command accepts
func ValidateFade(seconds float64) error {
	if seconds < 0 || seconds > MaxFadeSeconds {
		return fmt.Errorf("fade must be between 0 and %.1f seconds", MaxFadeSeconds)
	}
	return nil
}

// Getenv returns the value of an environment variable, or def when unset
func Getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
