package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"mediascribe/internal/logging"
	"mediascribe/internal/media"
	"mediascribe/internal/services/ytdlp"
	"mediascribe/internal/subtitles"
)

// noLyricsText is returned for music videos instead of transcribing a song.
const noLyricsText = "No lyrics available."

func (m *Manager) processVideoRef(ctx context.Context, ref media.Ref) media.Record {
	record := m.videoRecord(ctx, ref.URL)
	record.ID = ref.ID
	record.URL = ref.URL
	return record
}

// ProcessVideo converts a hosted-video URL into a record. Unrecognized URLs
// return a placeholder immediately; recognized ones go through the extraction
// queue and the durable video cache.
func (m *Manager) ProcessVideo(ctx context.Context, url string) media.Record {
	record := m.videoRecord(ctx, url)
	if record.ID == "" {
		record.ID = url
	}
	return record
}

func (m *Manager) videoRecord(ctx context.Context, url string) media.Record {
	videoID, ok := media.VideoID(url)
	if !ok {
		return media.Record{
			URL:         url,
			Title:       "Video Attachment",
			Source:      media.SourceVideo,
			Description: "Video content not available",
			Text:        "Video content not available",
		}
	}

	job := m.queue.Submit(url, videoID)
	record, err := job.Wait(ctx)
	if err != nil {
		m.logger.Warn("video extraction failed", logging.Args(
			logging.String("url", url),
			logging.String("video_id", videoID),
			logging.Error(err))...)
		return media.Record{
			ID:          videoID,
			URL:         url,
			Title:       "Video Attachment",
			Source:      media.SourceVideo,
			Description: fmt.Sprintf("Video processing failed: %v", err),
			Text:        "Video content unavailable.",
			Degraded:    true,
		}
	}
	return record
}

// runExtraction is the extraction queue's job body. It runs on the queue's
// single worker goroutine, so at most one download/transcode/transcription is
// in flight at a time.
func (m *Manager) runExtraction(ctx context.Context, url string) (media.Record, error) {
	videoID, ok := media.VideoID(url)
	if !ok {
		return media.Record{}, fmt.Errorf("extract video: no video id in %s", url)
	}

	if m.deps.VideoCache != nil {
		cached, found, err := m.deps.VideoCache.Lookup(ctx, videoID)
		if err != nil {
			m.logger.Warn("video cache lookup failed", logging.Args(
				logging.String("video_id", videoID), logging.Error(err))...)
		} else if found {
			m.logger.Debug("video cache hit", logging.Args(
				logging.String("video_id", videoID))...)
			return cached, nil
		}
	}

	if m.deps.Videos == nil {
		return media.Record{}, errors.New("extract video: video resolver not configured")
	}
	info, err := m.deps.Videos.FetchInfo(ctx, url)
	if err != nil {
		return media.Record{}, fmt.Errorf("extract video: %w", err)
	}

	transcript, err := m.resolveTranscript(ctx, url, videoID, info)
	if err != nil {
		return media.Record{}, fmt.Errorf("extract video: %w", err)
	}

	record := media.Record{
		ID:          videoID,
		URL:         url,
		Title:       strings.TrimSpace(info.Title),
		Source:      media.SourceForVideoURL(url),
		Description: videoDescription(info),
		Text:        transcript,
	}
	if record.Title == "" {
		record.Title = "Video Attachment"
	}

	if m.deps.VideoCache != nil {
		if err := m.deps.VideoCache.Save(ctx, videoID, record); err != nil {
			m.logger.Warn("video cache save failed", logging.Args(
				logging.String("video_id", videoID), logging.Error(err))...)
		}
	}
	return record, nil
}

// resolveTranscript acquires transcript text in cost order: uploader
// subtitles, then auto-generated captions, then a music short-circuit, then
// full download plus audio transcription.
func (m *Manager) resolveTranscript(ctx context.Context, url, videoID string, info *ytdlp.Info) (string, error) {
	if text := m.captionText(ctx, info.Subtitles, videoID, "subtitles"); text != "" {
		return text, nil
	}
	if text := m.captionText(ctx, info.AutomaticCaptions, videoID, "auto captions"); text != "" {
		return text, nil
	}
	if info.IsMusic() {
		return noLyricsText, nil
	}

	if m.deps.Transcriber == nil {
		return "", errors.New("transcription service not configured")
	}
	if m.deps.Transcoder == nil {
		return "", errors.New("transcoder not configured")
	}

	mediaPath, err := m.deps.Videos.Download(ctx, url, videoID)
	if err != nil {
		return "", err
	}
	audio, err := m.deps.Transcoder.ExtractAudioFile(ctx, mediaPath)
	if err != nil {
		return "", err
	}
	transcript, err := m.deps.Transcriber.Transcribe(ctx, audio, filepath.Base(mediaPath))
	if err != nil {
		return "", err
	}
	return transcript, nil
}

// captionText fetches and parses the best caption track from a language map.
// Failures here are soft: the next transcript source is tried instead.
func (m *Manager) captionText(ctx context.Context, tracks map[string][]ytdlp.Track, videoID, kind string) string {
	track, ok := ytdlp.BestTrack(tracks)
	if !ok {
		return ""
	}
	data, err := m.deps.Fetcher.Fetch(ctx, track.URL)
	if err != nil {
		m.logger.Warn("caption fetch failed", logging.Args(
			logging.String("video_id", videoID),
			logging.String("captions", kind),
			logging.Error(err))...)
		return ""
	}
	return strings.TrimSpace(subtitles.Parse(string(data), track.Ext))
}

func videoDescription(info *ytdlp.Info) string {
	if channel := strings.TrimSpace(info.Channel); channel != "" {
		return "Video by " + channel
	}
	return "Video content"
}
