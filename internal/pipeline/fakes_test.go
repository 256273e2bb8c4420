package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"mediascribe/internal/media"
	"mediascribe/internal/services/llm"
	"mediascribe/internal/services/vision"
	"mediascribe/internal/services/ytdlp"
)

type fakeFetcher struct {
	data  map[string][]byte
	err   error
	calls atomic.Int32
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	if data, ok := f.data[url]; ok {
		return data, nil
	}
	return nil, errors.New("fetch: not found")
}

type fakeConverter struct {
	text  string
	err   error
	calls atomic.Int32
}

func (f *fakeConverter) Convert(ctx context.Context, document []byte, contentType string) (string, error) {
	f.calls.Add(1)
	return f.text, f.err
}

type fakeSummarizer struct {
	summary llm.Summary
	err     error
	calls   atomic.Int32
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string) (llm.Summary, error) {
	f.calls.Add(1)
	return f.summary, f.err
}

type fakeVision struct {
	description vision.Description
	err         error
	calls       atomic.Int32
}

func (f *fakeVision) Describe(ctx context.Context, url string) (vision.Description, error) {
	f.calls.Add(1)
	return f.description, f.err
}

type fakeTranscriber struct {
	text  string
	err   error
	calls atomic.Int32
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	f.calls.Add(1)
	return f.text, f.err
}

type fakeTranscoder struct {
	audio []byte
	err   error
}

func (f *fakeTranscoder) ExtractAudio(ctx context.Context, container []byte) ([]byte, error) {
	return f.audio, f.err
}

func (f *fakeTranscoder) ExtractAudioFile(ctx context.Context, mediaPath string) ([]byte, error) {
	return f.audio, f.err
}

type fakeResolver struct {
	info      *ytdlp.Info
	infoErr   error
	path      string
	dlErr     error
	infoCalls atomic.Int32
	dlCalls   atomic.Int32
}

func (f *fakeResolver) FetchInfo(ctx context.Context, url string) (*ytdlp.Info, error) {
	f.infoCalls.Add(1)
	return f.info, f.infoErr
}

func (f *fakeResolver) Download(ctx context.Context, url, videoID string) (string, error) {
	f.dlCalls.Add(1)
	return f.path, f.dlErr
}

type fakeVideoCache struct {
	mu      sync.Mutex
	records map[string]media.Record
}

func newFakeVideoCache() *fakeVideoCache {
	return &fakeVideoCache{records: make(map[string]media.Record)}
}

func (f *fakeVideoCache) Lookup(ctx context.Context, videoID string) (media.Record, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[videoID]
	return record, ok, nil
}

func (f *fakeVideoCache) Save(ctx context.Context, videoID string, record media.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[videoID] = record
	return nil
}

// testEnv bundles the fakes wired into a Manager for one test.
type testEnv struct {
	fetcher     *fakeFetcher
	converter   *fakeConverter
	summarizer  *fakeSummarizer
	vision      *fakeVision
	transcriber *fakeTranscriber
	transcoder  *fakeTranscoder
	resolver    *fakeResolver
	videoCache  *fakeVideoCache
	manager     *Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		fetcher:     &fakeFetcher{data: make(map[string][]byte)},
		converter:   &fakeConverter{text: "converted text"},
		summarizer:  &fakeSummarizer{summary: llm.Summary{Title: "A Title", Description: "A description"}},
		vision:      &fakeVision{description: vision.Description{Title: "A Photo", Description: "A sunny day"}},
		transcriber: &fakeTranscriber{text: "spoken words"},
		transcoder:  &fakeTranscoder{audio: []byte("audio")},
		resolver:    &fakeResolver{},
		videoCache:  newFakeVideoCache(),
	}
	manager, err := NewManager(Deps{
		Fetcher:     env.fetcher,
		Converter:   env.converter,
		Summarizer:  env.summarizer,
		Vision:      env.vision,
		Transcriber: env.transcriber,
		Transcoder:  env.transcoder,
		Videos:      env.resolver,
		VideoCache:  env.videoCache,
		JobTimeout:  5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(manager.Close)
	env.manager = manager
	return env
}

func assertComplete(t *testing.T, record media.Record) {
	t.Helper()
	if record.Title == "" {
		t.Error("record Title is empty")
	}
	if record.Source == "" {
		t.Error("record Source is empty")
	}
	if record.Description == "" {
		t.Error("record Description is empty")
	}
	if record.Text == "" {
		t.Error("record Text is empty")
	}
	if record.URL == "" {
		t.Error("record URL is empty")
	}
}
