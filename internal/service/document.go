package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"docqa/internal/extract"
	"docqa/internal/llm"
	"docqa/internal/model"
	"docqa/internal/repository"
	"docqa/internal/storage"
)

const auditTimeout = 5 * time.Second

var tracer = otel.Tracer("docqa/internal/service")

// DocumentService defines the use cases for uploading documents and asking questions about them.
type DocumentService interface {
	// Upload extracts text from the payload and stores it under a newly generated ID.
	// Nothing is stored when extraction fails.
	Upload(ctx context.Context, r io.Reader, filename string, contentType string, size int64) (*model.Document, error)

	// Ask answers question from the text of document docID using the completion service.
	Ask(ctx context.Context, docID, question string) (string, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)
}

// Option configures optional collaborators of the document service.
type Option func(*documentService)

// WithArchive copies every successfully extracted upload to object storage.
func WithArchive(s storage.Storage) Option {
	return func(d *documentService) { d.archive = s }
}

// WithAuditLog records every completion attempt.
func WithAuditLog(r repository.AskEventRepository) Option {
	return func(d *documentService) { d.audit = r }
}

// WithMetrics enables the service counters.
func WithMetrics(m *Metrics) Option {
	return func(d *documentService) { d.metrics = m }
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *documentService) { d.log = l }
}

// WithIDGenerator replaces NewDocumentID. Used by tests.
func WithIDGenerator(gen func() string) Option {
	return func(d *documentService) { d.newID = gen }
}

type documentService struct {
	docs      repository.DocumentRepository
	extractor extract.Extractor
	completer llm.Completer
	archive   storage.Storage
	audit     repository.AskEventRepository
	metrics   *Metrics
	log       *slog.Logger
	newID     func() string
	now       func() time.Time
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(docs repository.DocumentRepository, extractor extract.Extractor, completer llm.Completer, opts ...Option) DocumentService {
	s := &documentService{
		docs:      docs,
		extractor: extractor,
		completer: completer,
		log:       slog.Default(),
		newID:     NewDocumentID,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewDocumentID returns "doc_" followed by a UUIDv7: time-ordered and unique even for
// calls in the same millisecond.
func NewDocumentID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return "doc_" + id.String()
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, filename string, contentType string, size int64) (*model.Document, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: file is required", ErrValidation)
	}
	ctx, span := tracer.Start(ctx, "DocumentService.Upload")
	defer span.End()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read upload: %w", ErrExtraction, err)
	}
	contentType = extract.ResolveContentType(contentType, data)
	span.SetAttributes(attribute.String("document.content_type", contentType), attribute.Int("document.bytes", len(data)))

	text, err := s.extractor.Extract(ctx, data, contentType)
	if err != nil {
		s.log.WarnContext(ctx, "extraction_failed", "filename", filename, "content_type", contentType, "error", err.Error())
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	doc := &model.Document{
		ID:          s.newID(),
		Text:        text,
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}
	s.metrics.documentStored()
	span.SetAttributes(attribute.String("document.id", doc.ID))
	s.log.InfoContext(ctx, "document_stored",
		"doc_id", doc.ID,
		"content_type", contentType,
		"bytes", doc.Size,
		"text_chars", len(text),
	)

	s.archiveOriginal(ctx, doc, data)
	return doc, nil
}

// archiveOriginal is best-effort: the document is already stored and the upload succeeds
// regardless of the outcome.
func (s *documentService) archiveOriginal(ctx context.Context, doc *model.Document, data []byte) {
	if s.archive == nil {
		return
	}
	key := "uploads/" + doc.ID + strings.ToLower(filepath.Ext(doc.Filename))
	_, err := s.archive.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: doc.ContentType,
		Metadata:    map[string]string{"original-filename": doc.Filename, "doc-id": doc.ID},
	})
	if err != nil {
		s.log.WarnContext(ctx, "archive_failed", "doc_id", doc.ID, "key", key, "error", err.Error())
	}
}

func (s *documentService) Ask(ctx context.Context, docID, question string) (string, error) {
	if strings.TrimSpace(docID) == "" || strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("%w: docId and question are required", ErrValidation)
	}
	ctx, span := tracer.Start(ctx, "DocumentService.Ask")
	defer span.End()
	span.SetAttributes(attribute.String("document.id", docID))

	doc, err := s.docs.FindByID(ctx, docID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, docID)
		}
		return "", fmt.Errorf("find document: %w", err)
	}

	start := s.now()
	answer, err := s.completer.Complete(ctx, BuildPrompt(doc.Text, question))
	latency := s.now().Sub(start)

	outcome := model.AskOutcomeAnswered
	if err != nil {
		outcome = model.AskOutcomeUpstreamError
	}
	s.metrics.completion(outcome)
	s.recordAsk(ctx, &model.AskEvent{
		DocID:         docID,
		QuestionChars: len([]rune(question)),
		AnswerChars:   len([]rune(answer)),
		Outcome:       outcome,
		LatencyMS:     latency.Milliseconds(),
		CreatedAt:     start.UTC(),
	})

	if err != nil {
		s.log.ErrorContext(ctx, "completion_failed", "doc_id", docID, "latency_ms", latency.Milliseconds(), "error", err.Error())
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	s.log.InfoContext(ctx, "question_answered", "doc_id", docID, "latency_ms", latency.Milliseconds(), "answer_chars", len(answer))
	return answer, nil
}

// recordAsk is best-effort and survives cancellation of the request context.
func (s *documentService) recordAsk(ctx context.Context, ev *model.AskEvent) {
	if s.audit == nil {
		return
	}
	ev.ID = uuid.NewString()
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
	defer cancel()
	if err := s.audit.Record(ctx, ev); err != nil {
		s.log.WarnContext(ctx, "audit_record_failed", "doc_id", ev.DocID, "error", err.Error())
	}
}

func (s *documentService) Count(ctx context.Context) (int, error) {
	return s.docs.Count(ctx)
}
