// Package probe reads media metadata with ffprobe.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Config holds configuration for the ffprobe-based prober.
type Config struct {
	// Timeout bounds a single ffprobe run. Zero means no limit.
	Timeout time.Duration
}

// DefaultConfig returns a Config with production-ready defaults.
func DefaultConfig() Config {
	return Config{Timeout: 30 * time.Second}
}

// mediaExtensions lists the file types whose duration is probed.
// Everything else (thumbnails) reports zero.
var mediaExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".m4v":  true,
	".mkv":  true,
	".webm": true,
	".avi":  true,
	".mp3":  true,
	".wav":  true,
}

// runFunc runs ffprobe and returns its JSON output.
type runFunc func(path string, timeout time.Duration) (string, error)

// FFprobe extracts durations from local media files.
type FFprobe struct {
	config Config
	run    runFunc
}

// NewFFprobe creates a prober backed by the ffprobe binary on PATH.
func NewFFprobe(cfg Config) *FFprobe {
	return &FFprobe{
		config: cfg,
		run: func(path string, timeout time.Duration) (string, error) {
			return ffmpeg.ProbeWithTimeout(path, timeout, ffmpeg.KwArgs{})
		},
	}
}

// IsMedia reports whether path has a probed media extension.
func IsMedia(path string) bool {
	return mediaExtensions[strings.ToLower(filepath.Ext(path))]
}

// Duration returns the duration of the file at path in seconds.
// Non-media files return zero without running ffprobe.
func (p *FFprobe) Duration(ctx context.Context, path string) (float64, error) {
	if !IsMedia(path) {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("probe cancelled: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("failed to access input file: %w", err)
	}

	out, err := p.run(path, p.config.Timeout)
	if err != nil {
		return 0, fmt.Errorf("ffprobe execution failed: %w", err)
	}

	return parseDuration(out)
}

// probeOutput is the subset of ffprobe's JSON output that is read.
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func parseDuration(out string) (float64, error) {
	var parsed probeOutput
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	if parsed.Format.Duration == "" {
		return 0, fmt.Errorf("ffprobe output has no duration")
	}

	d, err := strconv.ParseFloat(parsed.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", parsed.Format.Duration, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid duration %q", parsed.Format.Duration)
	}
	return d, nil
}
