package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mediascribe/internal/media"
	"mediascribe/internal/services/llm"
)

func TestProcessDocument(t *testing.T) {
	env := newTestEnv(t)
	env.fetcher.data["https://example.com/report.pdf"] = []byte("%PDF-1.4")
	env.converter.text = "Quarterly results..."
	env.summarizer.summary = llm.Summary{Title: "Q3 Report", Description: "Summary of results"}

	record := env.manager.Process(context.Background(), media.Ref{
		ID:          "a1",
		URL:         "https://example.com/report.pdf",
		ContentType: "application/pdf",
	})

	want := media.Record{
		ID:          "a1",
		URL:         "https://example.com/report.pdf",
		Title:       "Q3 Report",
		Source:      media.SourcePDF,
		Description: "Summary of results",
		Text:        "Quarterly results...",
	}
	if record != want {
		t.Errorf("Process = %+v, want %+v", record, want)
	}
}

func TestProcessIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.fetcher.data["https://example.com/report.pdf"] = []byte("%PDF-1.4")

	ref := media.Ref{ID: "a1", URL: "https://example.com/report.pdf", ContentType: "application/pdf"}
	first := env.manager.Process(context.Background(), ref)
	second := env.manager.Process(context.Background(), ref)

	if first != second {
		t.Errorf("records differ across identical calls:\n%+v\n%+v", first, second)
	}
	if got := env.fetcher.calls.Load(); got != 1 {
		t.Errorf("fetcher invoked %d times, want 1", got)
	}
	if got := env.converter.calls.Load(); got != 1 {
		t.Errorf("converter invoked %d times, want 1", got)
	}
	if got := env.summarizer.calls.Load(); got != 1 {
		t.Errorf("summarizer invoked %d times, want 1", got)
	}
}

func TestProcessTotalCoverage(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		url         string
		wantSource  media.Source
	}{
		{"pdf", "application/pdf", "https://example.com/a.pdf", media.SourcePDF},
		{"plaintext", "text/plain", "https://example.com/a.txt", media.SourcePlaintext},
		{"audio", "audio/ogg", "https://example.com/a.ogg", media.SourceAudio},
		{"mp4", "video/mp4", "https://example.com/a.mp4", media.SourceAudio},
		{"image", "image/jpeg", "https://example.com/a.jpg", media.SourceImage},
		{"video unrecognized url", "video/webm", "https://example.com/a.webm", media.SourceVideo},
		{"absent", "", "https://example.com/a.bin", media.SourceGeneric},
		{"unrecognized", "application/x-unknown", "https://example.com/a.dat", media.SourceGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.fetcher.data[tt.url] = []byte("payload bytes")

			record := env.manager.Process(context.Background(), media.Ref{
				ID:          "x",
				URL:         tt.url,
				ContentType: tt.contentType,
				Name:        "thing.bin",
				SizeBytes:   42,
			})
			assertComplete(t, record)
			if record.Source != tt.wantSource {
				t.Errorf("Source = %q, want %q", record.Source, tt.wantSource)
			}
		})
	}
}

func TestProcessDispatchesExactlyOneHandler(t *testing.T) {
	env := newTestEnv(t)
	env.fetcher.data["https://example.com/report.pdf"] = []byte("%PDF-1.4")

	env.manager.Process(context.Background(), media.Ref{
		ID: "a1", URL: "https://example.com/report.pdf", ContentType: "application/pdf",
	})

	if env.converter.calls.Load() != 1 {
		t.Error("document converter should have been invoked")
	}
	if env.vision.calls.Load() != 0 {
		t.Error("vision service invoked for a PDF")
	}
	if env.transcriber.calls.Load() != 0 {
		t.Error("transcriber invoked for a PDF")
	}
	if env.resolver.infoCalls.Load() != 0 {
		t.Error("video resolver invoked for a PDF")
	}
}

func TestProcessDocumentRetrievalFailure(t *testing.T) {
	env := newTestEnv(t)
	env.fetcher.err = errors.New("connection refused")

	record := env.manager.Process(context.Background(), media.Ref{
		ID:          "a1",
		URL:         "https://example.com/report.pdf",
		ContentType: "application/pdf",
		Name:        "report.pdf",
		SizeBytes:   1024,
	})
	assertComplete(t, record)
	if !record.Degraded {
		t.Error("record should be degraded after fetch failure")
	}
	if !strings.Contains(record.Title, "(retrieval failed)") {
		t.Errorf("Title = %q, missing retrieval marker", record.Title)
	}
	if !strings.Contains(record.Text, "report.pdf") {
		t.Errorf("Text = %q, should carry metadata placeholder", record.Text)
	}
}

func TestProcessDocumentConversionFailure(t *testing.T) {
	env := newTestEnv(t)
	env.fetcher.data["https://example.com/report.pdf"] = []byte("%PDF-1.4")
	env.converter.err = errors.New("unsupported layout")

	record := env.manager.Process(context.Background(), media.Ref{
		ID: "a1", URL: "https://example.com/report.pdf", ContentType: "application/pdf",
	})
	assertComplete(t, record)
	if !record.Degraded {
		t.Error("record should be degraded after conversion failure")
	}
	if !strings.Contains(record.Title, "(conversion failed)") {
		t.Errorf("Title = %q, missing conversion marker", record.Title)
	}
}

func TestProcessPlaintextSummarizerFailureKeepsText(t *testing.T) {
	env := newTestEnv(t)
	env.fetcher.data["https://example.com/notes.txt"] = []byte("meeting notes content")
	env.summarizer.err = errors.New("rate limited")

	record := env.manager.Process(context.Background(), media.Ref{
		ID: "a1", URL: "https://example.com/notes.txt", ContentType: "text/plain",
	})
	assertComplete(t, record)
	if record.Degraded {
		t.Error("summarizer failure should not degrade a record with real text")
	}
	if record.Text != "meeting notes content" {
		t.Errorf("Text = %q, extracted content lost", record.Text)
	}
}

func TestProcessPlaintextEmptyPayload(t *testing.T) {
	env := newTestEnv(t)
	env.fetcher.data["https://example.com/empty.txt"] = []byte("")

	record := env.manager.Process(context.Background(), media.Ref{
		ID:          "a1",
		URL:         "https://example.com/empty.txt",
		ContentType: "text/plain",
		Name:        "empty.txt",
	})
	assertComplete(t, record)
	if !strings.Contains(record.Text, "empty.txt") {
		t.Errorf("Text = %q, should carry metadata placeholder", record.Text)
	}
	if env.summarizer.calls.Load() != 0 {
		t.Error("summarizer invoked for empty content")
	}
}

func TestProcessAudioTranscriptionFailure(t *testing.T) {
	env := newTestEnv(t)
	env.fetcher.data["https://example.com/talk.mp3"] = []byte("mp3 bytes")
	env.transcriber.err = errors.New("service down")

	record := env.manager.Process(context.Background(), media.Ref{
		ID: "a1", URL: "https://example.com/talk.mp3", ContentType: "audio/mpeg", Name: "talk.mp3",
	})
	assertComplete(t, record)
	if !record.Degraded {
		t.Error("record should be degraded after transcription failure")
	}
	if !strings.Contains(record.Description, "(transcription failed)") {
		t.Errorf("Description = %q, missing transcription marker", record.Description)
	}
}

func TestProcessMP4ExtractsAudioFirst(t *testing.T) {
	env := newTestEnv(t)
	env.fetcher.data["https://example.com/clip.mp4"] = []byte("mp4 container")
	env.transcriber.text = "what was said in the clip"

	record := env.manager.Process(context.Background(), media.Ref{
		ID: "a1", URL: "https://example.com/clip.mp4", ContentType: "video/mp4",
	})
	if record.Text != "what was said in the clip" {
		t.Errorf("Text = %q", record.Text)
	}
	if env.transcriber.calls.Load() != 1 {
		t.Error("transcriber should have been invoked once")
	}
}

func TestProcessImage(t *testing.T) {
	env := newTestEnv(t)

	record := env.manager.Process(context.Background(), media.Ref{
		ID: "a1", URL: "https://example.com/shot.png", ContentType: "image/png",
	})
	assertComplete(t, record)
	if record.Title != "A Photo" || record.Description != "A sunny day" {
		t.Errorf("record = %+v", record)
	}
	if record.Text != record.Description {
		t.Error("image Text should mirror the description")
	}
}

func TestProcessImageRecognitionFailure(t *testing.T) {
	env := newTestEnv(t)
	env.vision.err = errors.New("model unavailable")

	record := env.manager.Process(context.Background(), media.Ref{
		ID: "a1", URL: "https://example.com/shot.png", ContentType: "image/png", Name: "shot.png",
	})
	assertComplete(t, record)
	if record.Title != "Image Attachment" {
		t.Errorf("Title = %q", record.Title)
	}
	if record.Description != "recognition failed" {
		t.Errorf("Description = %q", record.Description)
	}
	if !record.Degraded {
		t.Error("record should be degraded")
	}
}

func TestProcessEmptyURL(t *testing.T) {
	env := newTestEnv(t)
	record := env.manager.Process(context.Background(), media.Ref{ID: "a1"})
	if record.Title == "" || record.Description == "" || record.Text == "" {
		t.Errorf("record not structurally complete: %+v", record)
	}
	if !record.Degraded {
		t.Error("record should be degraded")
	}
}
