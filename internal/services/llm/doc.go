// Package llm wraps an OpenAI-compatible chat completion endpoint for
// title/description summarization.
//
// Requests use JSON response mode and responses are decoded tolerantly
// (code fences stripped, embedded objects extracted) because providers vary
// in how strictly they honor it. Input is truncated to a token budget before
// it is sent so oversized transcripts and documents do not blow upstream
// context limits.
package llm
