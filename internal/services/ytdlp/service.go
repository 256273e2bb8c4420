package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// Command is the default yt-dlp binary name.
const Command = "yt-dlp"

// lockRetryDelay is the poll interval while waiting on the staging lock.
const lockRetryDelay = 250 * time.Millisecond

// musicCategory is the category tag that short-circuits transcript
// extraction for music videos.
const musicCategory = "music"

// Track is one caption track variant for a language.
type Track struct {
	URL string `json:"url"`
	Ext string `json:"ext"`
}

// Info is the subset of yt-dlp metadata the pipeline consumes.
type Info struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	Channel           string             `json:"channel"`
	Uploader          string             `json:"uploader"`
	Description       string             `json:"description"`
	Categories        []string           `json:"categories"`
	Subtitles         map[string][]Track `json:"subtitles"`
	AutomaticCaptions map[string][]Track `json:"automatic_captions"`
}

// IsMusic reports whether the video is categorized as music.
func (i *Info) IsMusic() bool {
	for _, category := range i.Categories {
		if strings.EqualFold(strings.TrimSpace(category), musicCategory) {
			return true
		}
	}
	return false
}

// BestTrack picks a caption track from a language map, preferring English,
// then any language, and preferring vtt variants within a language.
func BestTrack(tracks map[string][]Track) (Track, bool) {
	pick := func(variants []Track) (Track, bool) {
		if len(variants) == 0 {
			return Track{}, false
		}
		for _, variant := range variants {
			if strings.EqualFold(variant.Ext, "vtt") {
				return variant, true
			}
		}
		return variants[0], true
	}

	for _, lang := range []string{"en", "en-US", "en-GB", "en-orig"} {
		if variants, ok := tracks[lang]; ok {
			if track, found := pick(variants); found {
				return track, true
			}
		}
	}
	for _, variants := range tracks {
		if track, found := pick(variants); found {
			return track, true
		}
	}
	return Track{}, false
}

// Service wraps yt-dlp invocations.
type Service struct {
	binary       string
	stagingDir   string
	outputRunner func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewService creates a yt-dlp service that stages downloads in stagingDir.
func NewService(binary, stagingDir string) *Service {
	if binary == "" {
		binary = Command
	}
	return &Service{
		binary:     binary,
		stagingDir: stagingDir,
	}
}

// WithOutputRunner sets a custom command runner that returns stdout (for
// testing).
func (s *Service) WithOutputRunner(runner func(ctx context.Context, name string, args ...string) ([]byte, error)) {
	s.outputRunner = runner
}

func (s *Service) runOutput(ctx context.Context, args ...string) ([]byte, error) {
	if s.outputRunner != nil {
		return s.outputRunner(ctx, s.binary, args...)
	}
	cmd := exec.CommandContext(ctx, s.binary, args...) //nolint:gosec
	output, err := cmd.Output()
	if err != nil {
		detail := ""
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail = strings.TrimSpace(string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("%s: %w: %s", s.binary, err, detail)
	}
	return output, nil
}

// FetchInfo resolves video metadata without downloading media.
func (s *Service) FetchInfo(ctx context.Context, url string) (*Info, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("fetch info: url required")
	}

	output, err := s.runOutput(ctx,
		"--dump-json",
		"--skip-download",
		"--no-playlist",
		url,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch info: %w", err)
	}

	var info Info
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("fetch info: parse metadata: %w", err)
	}
	if info.Channel == "" {
		info.Channel = info.Uploader
	}
	return &info, nil
}

// Download fetches the media file for a video into the staging directory and
// returns its path. A previously downloaded file for the same video ID is
// reused without re-downloading. The staging directory is guarded by a file
// lock so concurrent processes do not race on the same download.
func (s *Service) Download(ctx context.Context, url, videoID string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", fmt.Errorf("download: url required")
	}
	if strings.TrimSpace(videoID) == "" {
		return "", fmt.Errorf("download: video id required")
	}
	if err := os.MkdirAll(s.stagingDir, 0o755); err != nil {
		return "", fmt.Errorf("download: ensure staging dir: %w", err)
	}

	target := filepath.Join(s.stagingDir, videoID+".mp4")

	lock := flock.New(filepath.Join(s.stagingDir, ".download.lock"))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return "", fmt.Errorf("download: acquire staging lock: %w", err)
	}
	if !locked {
		return "", fmt.Errorf("download: staging lock unavailable")
	}
	defer func() {
		_ = lock.Unlock()
	}()

	if _, statErr := os.Stat(target); statErr == nil {
		return target, nil
	}

	if _, err := s.runOutput(ctx,
		"-f", "best[height<=480]/best",
		"--no-playlist",
		"-o", target,
		url,
	); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	if _, err := os.Stat(target); err != nil {
		return "", fmt.Errorf("download: media file missing after download: %w", err)
	}
	return target, nil
}
