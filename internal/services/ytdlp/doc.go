// Package ytdlp shells out to yt-dlp for hosted-video metadata and media
// downloads.
//
// Metadata comes from a single --dump-json invocation and carries the
// uploader subtitles, auto-generated captions, and category tags the
// extraction pipeline uses to pick the cheapest transcript source. Downloads
// land in a staging directory guarded by a file lock so two processes never
// pull the same media concurrently; an already-staged file is reused as-is.
package ytdlp
