// Package whisper wraps an OpenAI-compatible audio transcription endpoint.
package whisper
