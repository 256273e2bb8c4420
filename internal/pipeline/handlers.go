package pipeline

import (
	"context"
	"strings"
	"unicode/utf8"

	"mediascribe/internal/logging"
	"mediascribe/internal/media"
)

const descriptionSnippetLen = 160

func (m *Manager) processDocument(ctx context.Context, ref media.Ref) media.Record {
	title := media.FallbackTitle(ref, "Document Attachment")

	data, err := m.deps.Fetcher.Fetch(ctx, ref.URL)
	if err != nil {
		m.logger.Warn("document fetch failed", logging.Args(
			logging.String("url", ref.URL), logging.Error(err))...)
		return degradedRecord(ref, media.SourcePDF, title+" (retrieval failed)", "document could not be retrieved")
	}

	if m.deps.Converter == nil {
		return degradedRecord(ref, media.SourcePDF, title+" (conversion failed)", "document converter not configured")
	}
	text, err := m.deps.Converter.Convert(ctx, data, ref.ContentType)
	if err != nil {
		m.logger.Warn("document conversion failed", logging.Args(
			logging.String("url", ref.URL), logging.Error(err))...)
		return degradedRecord(ref, media.SourcePDF, title+" (conversion failed)", "document could not be converted to text")
	}

	return m.summarized(ctx, ref, media.SourcePDF, title, text)
}

func (m *Manager) processPlaintext(ctx context.Context, ref media.Ref) media.Record {
	title := media.FallbackTitle(ref, "Text Attachment")

	data, err := m.deps.Fetcher.Fetch(ctx, ref.URL)
	if err != nil {
		m.logger.Warn("plaintext fetch failed", logging.Args(
			logging.String("url", ref.URL), logging.Error(err))...)
		return degradedRecord(ref, media.SourcePlaintext, title+" (retrieval failed)", "text could not be retrieved")
	}

	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	return m.summarized(ctx, ref, media.SourcePlaintext, title, text)
}

func (m *Manager) processAudio(ctx context.Context, ref media.Ref) media.Record {
	title := media.FallbackTitle(ref, "Audio Attachment")

	data, err := m.deps.Fetcher.Fetch(ctx, ref.URL)
	if err != nil {
		m.logger.Warn("audio fetch failed", logging.Args(
			logging.String("url", ref.URL), logging.Error(err))...)
		return degradedRecord(ref, media.SourceAudio, title, "audio could not be retrieved (transcription failed)")
	}

	filename := "audio.mp3"
	if strings.HasPrefix(strings.ToLower(ref.ContentType), "video/") {
		// Combined container: strip the video track so the transcriber only
		// sees audio.
		if m.deps.Transcoder == nil {
			return degradedRecord(ref, media.SourceVideo, title, "transcoder not configured (transcription failed)")
		}
		audio, extractErr := m.deps.Transcoder.ExtractAudio(ctx, data)
		if extractErr != nil {
			m.logger.Warn("audio extraction failed", logging.Args(
				logging.String("url", ref.URL), logging.Error(extractErr))...)
			return degradedRecord(ref, media.SourceVideo, title, "audio track could not be extracted (transcription failed)")
		}
		data = audio
	} else if name := strings.TrimSpace(ref.Name); name != "" {
		filename = name
	}

	if m.deps.Transcriber == nil {
		return degradedRecord(ref, media.SourceAudio, title, "transcription service not configured (transcription failed)")
	}
	transcript, err := m.deps.Transcriber.Transcribe(ctx, data, filename)
	if err != nil {
		m.logger.Warn("transcription failed", logging.Args(
			logging.String("url", ref.URL), logging.Error(err))...)
		return degradedRecord(ref, media.SourceAudio, title, "audio could not be transcribed (transcription failed)")
	}

	return m.summarized(ctx, ref, media.SourceAudio, title, transcript)
}

func (m *Manager) processImage(ctx context.Context, ref media.Ref) media.Record {
	if m.deps.Vision == nil {
		return degradedRecord(ref, media.SourceImage, "Image Attachment", "recognition failed")
	}
	described, err := m.deps.Vision.Describe(ctx, ref.URL)
	if err != nil {
		m.logger.Warn("image description failed", logging.Args(
			logging.String("url", ref.URL), logging.Error(err))...)
		return degradedRecord(ref, media.SourceImage, "Image Attachment", "recognition failed")
	}

	title := strings.TrimSpace(described.Title)
	if title == "" {
		title = media.FallbackTitle(ref, "Image Attachment")
	}
	description := strings.TrimSpace(described.Description)
	if description == "" {
		description = "Image attachment"
	}
	return media.Record{
		ID:          ref.ID,
		URL:         ref.URL,
		Title:       title,
		Source:      media.SourceImage,
		Description: description,
		Text:        description,
	}
}

func (m *Manager) processGeneric(ref media.Ref) media.Record {
	description := "Attachment of unknown type"
	if ct := strings.TrimSpace(ref.ContentType); ct != "" {
		description = "Attachment of type " + ct
	}
	return media.Record{
		ID:          ref.ID,
		URL:         ref.URL,
		Title:       media.FallbackTitle(ref, "Attachment"),
		Source:      media.SourceGeneric,
		Description: description,
		Text:        media.FallbackText(ref),
	}
}

// summarized finishes a handler that extracted real text: it asks the
// summarizer for a title/description pair and falls back to a snippet of the
// text when summarization is unavailable. The extracted text survives either
// way, so the record is not marked degraded. An empty extraction result is
// replaced with metadata-built placeholder text so every field stays
// populated.
func (m *Manager) summarized(ctx context.Context, ref media.Ref, source media.Source, fallbackTitle, text string) media.Record {
	if strings.TrimSpace(text) == "" {
		return media.Record{
			ID:          ref.ID,
			URL:         ref.URL,
			Title:       fallbackTitle,
			Source:      source,
			Description: "Attachment has no textual content",
			Text:        media.FallbackText(ref),
		}
	}

	record := media.Record{
		ID:     ref.ID,
		URL:    ref.URL,
		Title:  fallbackTitle,
		Source: source,
		Text:   text,
	}

	if m.deps.Summarizer != nil {
		summary, err := m.deps.Summarizer.Summarize(ctx, text)
		if err == nil {
			if title := strings.TrimSpace(summary.Title); title != "" {
				record.Title = title
			}
			if description := strings.TrimSpace(summary.Description); description != "" {
				record.Description = description
			}
		} else {
			m.logger.Warn("summarization failed", logging.Args(
				logging.String("url", ref.URL), logging.Error(err))...)
		}
	}
	if record.Description == "" {
		record.Description = snippet(text)
	}
	return record
}

func snippet(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return "Attachment content"
	}
	runes := []rune(text)
	if len(runes) <= descriptionSnippetLen {
		return text
	}
	return string(runes[:descriptionSnippetLen]) + "..."
}
