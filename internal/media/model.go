package media

import (
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ref identifies an inbound attachment to process.
type Ref struct {
	ID          string
	URL         string
	ContentType string
	Name        string
	SizeBytes   int64
}

// Source is the coarse category tag stamped on every Record.
type Source string

const (
	SourceAudio     Source = "Audio"
	SourceVideo     Source = "Video"
	SourcePDF       Source = "PDF"
	SourcePlaintext Source = "Plaintext"
	SourceImage     Source = "Image"
	SourceYouTube   Source = "YouTube"
	SourceGeneric   Source = "Generic"
)

// Record is the normalized pipeline output. Every string field is populated
// on every path; failures degrade content, never structure.
type Record struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Source      Source `json:"source"`
	Description string `json:"description"`
	Text        string `json:"text"`
	Degraded    bool   `json:"degraded"`
}

var titleCaser = cases.Title(language.English)

// FallbackTitle derives a display title from a reference when no service
// produced one: the file name with separators replaced and title casing
// applied, or the supplied default when the reference carries no name.
func FallbackTitle(ref Ref, def string) string {
	name := strings.TrimSpace(ref.Name)
	if name == "" {
		return def
	}
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return def
	}
	return titleCaser.String(name)
}

// FallbackText synthesizes placeholder text from whatever metadata the
// reference carries. Used for degraded records when no real content could be
// extracted.
func FallbackText(ref Ref) string {
	parts := make([]string, 0, 4)
	if name := strings.TrimSpace(ref.Name); name != "" {
		parts = append(parts, "File: "+name)
	}
	if ref.SizeBytes > 0 {
		parts = append(parts, "Size: "+humanize.Bytes(uint64(ref.SizeBytes)))
	}
	if ct := strings.TrimSpace(ref.ContentType); ct != "" {
		parts = append(parts, "Type: "+ct)
	}
	if len(parts) == 0 {
		return "Attachment content unavailable."
	}
	return strings.Join(parts, ", ")
}
