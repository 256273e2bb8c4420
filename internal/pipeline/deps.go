package pipeline

import (
	"context"
	"log/slog"
	"time"

	"mediascribe/internal/media"
	"mediascribe/internal/services/llm"
	"mediascribe/internal/services/vision"
	"mediascribe/internal/services/ytdlp"
)

// Fetcher retrieves raw resource bytes.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// DocumentConverter extracts plain text from document bytes.
type DocumentConverter interface {
	Convert(ctx context.Context, document []byte, contentType string) (string, error)
}

// Summarizer produces a short title and description for text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (llm.Summary, error)
}

// VisionDescriber produces a title and description for an image URL.
type VisionDescriber interface {
	Describe(ctx context.Context, url string) (vision.Description, error)
}

// Transcriber converts audio bytes to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// AudioExtractor strips the audio track out of a media container.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, container []byte) ([]byte, error)
	ExtractAudioFile(ctx context.Context, mediaPath string) ([]byte, error)
}

// VideoResolver resolves hosted-video metadata and downloads media files.
type VideoResolver interface {
	FetchInfo(ctx context.Context, url string) (*ytdlp.Info, error)
	Download(ctx context.Context, url, videoID string) (string, error)
}

// VideoCache is the durable record store keyed by derived video ID.
type VideoCache interface {
	Lookup(ctx context.Context, videoID string) (media.Record, bool, error)
	Save(ctx context.Context, videoID string, record media.Record) error
}

// Deps wires the manager's collaborators. Fetcher is required; the remaining
// services may be nil, in which case the handlers that need them produce
// degraded records or fall back to snippet descriptions.
type Deps struct {
	Fetcher     Fetcher
	Converter   DocumentConverter
	Summarizer  Summarizer
	Vision      VisionDescriber
	Transcriber Transcriber
	Transcoder  AudioExtractor
	Videos      VideoResolver
	VideoCache  VideoCache

	Logger       *slog.Logger
	CacheEntries int
	JobTimeout   time.Duration
}
