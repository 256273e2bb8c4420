// Package media defines the data model shared across the ingestion pipeline.
//
// A Ref describes an inbound resource by URL plus an advisory
// content type; a Record is the normalized, always-complete output every
// handler produces. Classification of a reference into a handler Kind is a
// pure function so the dispatch table stays exhaustively checkable.
//
// The content type on a reference is a hint only. Callers routinely omit it
// or get it wrong, so classification falls back to URL heuristics, most
// importantly recognizing video-hosting URLs that arrive with a generic or
// absent content type.
package media
