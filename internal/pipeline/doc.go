// Package pipeline orchestrates attachment ingestion: it classifies an
// inbound reference, dispatches exactly one format handler, and guarantees a
// structurally complete record on every path.
//
// Process never returns an error. Handler failures degrade the record's
// content (title suffixes, placeholder text synthesized from metadata) and
// set its Degraded flag; the record's five string fields are always
// populated. Results are cached per URL in a bounded LRU for the lifetime of
// the Manager, and hosted-video extraction is serialized through a
// single-worker queue with durable caching by video ID.
package pipeline
