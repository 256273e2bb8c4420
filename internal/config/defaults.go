package config

const (
	defaultStagingDir        = "~/.local/share/mediascribe/staging"
	defaultCacheDir          = "~/.local/share/mediascribe/cache"
	defaultLogDir            = "~/.local/share/mediascribe/logs"
	defaultLogLevel          = "info"
	defaultLogFormat         = "console"
	defaultFetchTimeout      = 30
	defaultMaxDownloadMiB    = 100
	defaultSummarizerBaseURL = "https://openrouter.ai/api/v1/chat/completions"
	defaultSummarizerModel   = "google/gemini-3-flash-preview"
	defaultServiceTimeout    = 60
	defaultMaxInputTokens    = 6000
	defaultTokenEncoding     = "cl100k_base"
	defaultVisionModel       = "google/gemini-3-flash-preview"
	defaultWhisperBaseURL    = "https://api.openai.com/v1/audio/transcriptions"
	defaultWhisperModel      = "whisper-1"
	defaultWhisperTimeout    = 300
	defaultDocConvTimeout    = 120
	defaultYTDLPBinary       = "yt-dlp"
	defaultFFmpegBinary      = "ffmpeg"
	defaultJobTimeout        = 900
	defaultResourceEntries   = 256
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			CacheDir:   defaultCacheDir,
			LogDir:     defaultLogDir,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Fetch: Fetch{
			TimeoutSeconds: defaultFetchTimeout,
			MaxDownloadMiB: defaultMaxDownloadMiB,
		},
		Summarizer: Summarizer{
			BaseURL:        defaultSummarizerBaseURL,
			Model:          defaultSummarizerModel,
			TimeoutSeconds: defaultServiceTimeout,
			MaxInputTokens: defaultMaxInputTokens,
			TokenEncoding:  defaultTokenEncoding,
		},
		Vision: Vision{
			BaseURL:        defaultSummarizerBaseURL,
			Model:          defaultVisionModel,
			TimeoutSeconds: defaultServiceTimeout,
		},
		Transcription: Transcription{
			BaseURL:        defaultWhisperBaseURL,
			Model:          defaultWhisperModel,
			TimeoutSeconds: defaultWhisperTimeout,
		},
		DocConv: DocConv{
			TimeoutSeconds: defaultDocConvTimeout,
		},
		Video: Video{
			YTDLPBinary:       defaultYTDLPBinary,
			FFmpegBinary:      defaultFFmpegBinary,
			JobTimeoutSeconds: defaultJobTimeout,
		},
		Cache: Cache{
			ResourceEntries: defaultResourceEntries,
		},
	}
}
