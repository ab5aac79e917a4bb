package repository

import (
	"context"

	"docqa/internal/model"
)

// DocumentRepository defines data access for extracted documents.
type DocumentRepository interface {
	// Create stores a new document. The caller supplies the ID; storing an ID that
	// already exists fails with ErrDuplicateID and leaves the existing document untouched.
	Create(ctx context.Context, doc *model.Document) error

	// FindByID returns a document by its ID, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)
}

// AskEventRepository persists completion attempts for auditing.
type AskEventRepository interface {
	// Record inserts a single ask event.
	Record(ctx context.Context, ev *model.AskEvent) error
}
