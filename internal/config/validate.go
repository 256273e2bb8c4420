package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the configuration for values that cannot work at runtime.
// It returns all problems at once so users fix the file in one pass.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		problems = append(problems, "paths.staging_dir must not be empty")
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		problems = append(problems, "paths.cache_dir must not be empty")
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		problems = append(problems, "fetch.timeout_seconds must be positive")
	}
	if c.Fetch.MaxDownloadMiB <= 0 {
		problems = append(problems, "fetch.max_download_mib must be positive")
	}
	if c.Summarizer.MaxInputTokens <= 0 {
		problems = append(problems, "summarizer.max_input_tokens must be positive")
	}
	if c.Video.JobTimeoutSeconds <= 0 {
		problems = append(problems, "video.job_timeout_seconds must be positive")
	}
	if c.Cache.ResourceEntries <= 0 {
		problems = append(problems, "cache.resource_entries must be positive")
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q is not one of console, json", c.Logging.Format))
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration:\n  - " + strings.Join(problems, "\n  - "))
	}
	return nil
}
