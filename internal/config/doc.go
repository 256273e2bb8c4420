// Package config loads and validates the TOML configuration for the
// ingestion pipeline.
//
// Configuration is grouped into sections mirroring the components that
// consume them: filesystem paths, logging, resource fetching, the external
// summarizer/vision/transcription/document-converter services, and the video
// extraction subsystem. Load applies defaults first, so a missing file or a
// sparse one still yields a usable configuration; Validate catches the
// combinations that cannot work before anything touches the network.
package config
