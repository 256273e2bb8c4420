package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"mediascribe/internal/config"
	"mediascribe/internal/fetch"
	"mediascribe/internal/logging"
	"mediascribe/internal/pipeline"
	"mediascribe/internal/services/docconv"
	"mediascribe/internal/services/llm"
	"mediascribe/internal/services/vision"
	"mediascribe/internal/services/whisper"
	"mediascribe/internal/services/ytdlp"
	"mediascribe/internal/transcode"
	"mediascribe/internal/videocache"
)

const mebibyte = 1024 * 1024

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "mediascribe",
		Short:         "Convert media attachments into text-bearing records",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.config/mediascribe/config.toml)")

	root.AddCommand(
		newProcessCommand(&configPath),
		newVideoCommand(&configPath),
		newCacheCommand(&configPath),
		newConfigCommand(&configPath),
	)
	return root
}

func loadConfig(path string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		LogDir: cfg.Paths.LogDir,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("configure logging: %w", err)
	}
	return cfg, logger, nil
}

// buildManager wires the full pipeline from configuration. The returned
// cleanup closes the extraction queue and the durable cache.
func buildManager(cfg *config.Config, logger *slog.Logger) (*pipeline.Manager, func(), error) {
	store, err := videocache.Open(cfg.Paths.CacheDir)
	if err != nil {
		return nil, nil, err
	}

	transcoder := transcode.NewTranscoder(cfg.Video.FFmpegBinary, cfg.Paths.StagingDir)
	videos := ytdlp.NewService(cfg.Video.YTDLPBinary, cfg.Paths.StagingDir)

	manager, err := pipeline.NewManager(pipeline.Deps{
		Fetcher: fetch.NewClient(
			time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second,
			int64(cfg.Fetch.MaxDownloadMiB)*mebibyte,
		),
		Converter: docconv.NewClient(docconv.Config{
			BaseURL:        cfg.DocConv.BaseURL,
			TimeoutSeconds: cfg.DocConv.TimeoutSeconds,
		}),
		Summarizer: llm.NewClient(llm.Config{
			APIKey:         cfg.Summarizer.APIKey,
			BaseURL:        cfg.Summarizer.BaseURL,
			Model:          cfg.Summarizer.Model,
			TimeoutSeconds: cfg.Summarizer.TimeoutSeconds,
			MaxInputTokens: cfg.Summarizer.MaxInputTokens,
			TokenEncoding:  cfg.Summarizer.TokenEncoding,
		}),
		Vision: vision.NewClient(vision.Config{
			APIKey:         cfg.Vision.APIKey,
			BaseURL:        cfg.Vision.BaseURL,
			Model:          cfg.Vision.Model,
			TimeoutSeconds: cfg.Vision.TimeoutSeconds,
		}),
		Transcriber: whisper.NewClient(whisper.Config{
			APIKey:         cfg.Transcription.APIKey,
			BaseURL:        cfg.Transcription.BaseURL,
			Model:          cfg.Transcription.Model,
			TimeoutSeconds: cfg.Transcription.TimeoutSeconds,
		}),
		Transcoder:   transcoder,
		Videos:       videos,
		VideoCache:   store,
		Logger:       logger,
		CacheEntries: cfg.Cache.ResourceEntries,
		JobTimeout:   time.Duration(cfg.Video.JobTimeoutSeconds) * time.Second,
	})
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	cleanup := func() {
		manager.Close()
		_ = store.Close()
	}
	return manager, cleanup, nil
}
