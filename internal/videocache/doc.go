// Package videocache persists processed video records in SQLite, keyed by the
// derived video identifier.
//
// The cache survives process restarts so repeated requests for the same video
// skip the download/transcode/transcribe path entirely. Writes are
// last-write-wins upserts; the database is a cache, not an archive, and can
// be cleared at any time.
package videocache
