package llm

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const (
	defaultEncoding  = "cl100k_base"
	defaultMaxTokens = 6000
	// Rough characters-per-token ratio for the fallback path when the BPE
	// encoding cannot be loaded (e.g. offline).
	fallbackCharsPerToken = 4
)

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// Truncate trims text to at most maxTokens tokens under the named encoding.
// When the encoding cannot be loaded, it falls back to a character-count
// approximation rather than failing the summarization path.
func Truncate(text string, maxTokens int, encodingID string) string {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	if strings.TrimSpace(encodingID) == "" {
		encodingID = defaultEncoding
	}

	enc := loadEncoding(encodingID)
	if enc == nil {
		limit := maxTokens * fallbackCharsPerToken
		runes := []rune(text)
		if len(runes) <= limit {
			return text
		}
		return string(runes[:limit])
	}

	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return enc.Decode(tokens[:maxTokens])
}

// loadEncoding caches the first encoding requested. If later calls ask for a
// different one the cached encoding is reused; all supported encodings
// tokenize closely enough for budget enforcement.
func loadEncoding(encodingID string) *tiktoken.Tiktoken {
	encodingOnce.Do(func() {
		if enc, err := tiktoken.GetEncoding(encodingID); err == nil {
			encoding = enc
		}
	})
	return encoding
}
