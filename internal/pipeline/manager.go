package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"mediascribe/internal/extractq"
	"mediascribe/internal/logging"
	"mediascribe/internal/media"
)

const defaultCacheEntries = 256

// Manager is the public entry point of the ingestion pipeline.
type Manager struct {
	deps   Deps
	logger *slog.Logger
	cache  *lru.Cache[string, media.Record]
	queue  *extractq.Queue
}

// NewManager constructs a Manager and starts its extraction queue worker.
func NewManager(deps Deps) (*Manager, error) {
	if deps.Fetcher == nil {
		return nil, errors.New("pipeline: fetcher required")
	}
	entries := deps.CacheEntries
	if entries <= 0 {
		entries = defaultCacheEntries
	}
	cache, err := lru.New[string, media.Record](entries)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		deps:   deps,
		logger: logging.NewComponentLogger(deps.Logger, "pipeline"),
		cache:  cache,
	}
	m.queue = extractq.New(m.runExtraction,
		extractq.WithJobTimeout(deps.JobTimeout),
		extractq.WithLogger(deps.Logger))
	return m, nil
}

// Close stops the extraction queue worker. Pending video jobs fail with a
// queue-closed error and surface as degraded records to their waiters.
func (m *Manager) Close() {
	m.queue.Close()
}

// Process converts an attachment reference into a record. It never fails:
// handler errors degrade the record's content, not its structure. Records are
// cached by URL, so a repeated reference returns the prior result without
// re-invoking any handler or external service.
func (m *Manager) Process(ctx context.Context, ref media.Ref) media.Record {
	if strings.TrimSpace(ref.URL) == "" {
		return degradedRecord(ref, media.SourceGeneric, "Attachment", "no URL supplied")
	}

	if cached, ok := m.cache.Get(ref.URL); ok {
		m.logger.Debug("cache hit", logging.Args(logging.String("url", ref.URL))...)
		cached.ID = ref.ID
		return cached
	}

	kind := media.Classify(ref.ContentType, ref.URL)
	m.logger.Debug("dispatching handler", logging.Args(
		logging.String("url", ref.URL),
		logging.String("content_type", ref.ContentType),
		logging.String("handler", kind.String()))...)

	record := m.dispatch(ctx, kind, ref)
	m.cache.Add(ref.URL, record)
	return record
}

func (m *Manager) dispatch(ctx context.Context, kind media.Kind, ref media.Ref) media.Record {
	switch kind {
	case media.KindDocument:
		return m.processDocument(ctx, ref)
	case media.KindPlaintext:
		return m.processPlaintext(ctx, ref)
	case media.KindAudio:
		return m.processAudio(ctx, ref)
	case media.KindImage:
		return m.processImage(ctx, ref)
	case media.KindVideo:
		return m.processVideoRef(ctx, ref)
	default:
		return m.processGeneric(ref)
	}
}

// degradedRecord builds a structurally complete record for a failure,
// synthesizing text from whatever metadata the reference carries.
func degradedRecord(ref media.Ref, source media.Source, title, reason string) media.Record {
	return media.Record{
		ID:          ref.ID,
		URL:         ref.URL,
		Title:       title,
		Source:      source,
		Description: reason,
		Text:        media.FallbackText(ref),
		Degraded:    true,
	}
}
