package memory

import (
	"context"
	"sync"

	"docqa/internal/model"
	"docqa/internal/repository"
)

// DocumentMemory is a process-local implementation of repository.DocumentRepository.
// Documents live until the process exits; there is no eviction.
// It is safe for concurrent use by multiple goroutines.
type DocumentMemory struct {
	mu   sync.RWMutex
	docs map[string]model.Document
}

// NewDocumentMemory creates an empty store.
func NewDocumentMemory() *DocumentMemory {
	return &DocumentMemory{docs: make(map[string]model.Document)}
}

var _ repository.DocumentRepository = (*DocumentMemory)(nil)

// Create stores a copy of doc under doc.ID.
func (r *DocumentMemory) Create(ctx context.Context, doc *model.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.docs[doc.ID]; exists {
		return repository.ErrDuplicateID
	}
	r.docs[doc.ID] = *doc
	return nil
}

// FindByID returns a copy of the stored document so callers cannot mutate the store.
func (r *DocumentMemory) FindByID(ctx context.Context, id string) (*model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	doc, ok := r.docs[id]
	r.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &doc, nil
}

// Count returns the number of stored documents.
func (r *DocumentMemory) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs), nil
}
