package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"docqa/internal/model"
	"docqa/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentMemory_CreateAndFind(t *testing.T) {
	repo := NewDocumentMemory()
	ctx := context.Background()

	doc := &model.Document{ID: "doc_1", Text: "Hello world", Filename: "a.txt"}
	require.NoError(t, repo.Create(ctx, doc))

	got, err := repo.FindByID(ctx, "doc_1")
	require.NoError(t, err)
	assert.Equal(t, "Hello world", got.Text)

	// The store keeps its own copy.
	doc.Text = "changed"
	got.Text = "changed too"
	again, err := repo.FindByID(ctx, "doc_1")
	require.NoError(t, err)
	assert.Equal(t, "Hello world", again.Text)
}

func TestDocumentMemory_NotFound(t *testing.T) {
	repo := NewDocumentMemory()

	got, err := repo.FindByID(context.Background(), "doc_nonexistent")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, got)
}

func TestDocumentMemory_DuplicateID(t *testing.T) {
	repo := NewDocumentMemory()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Document{ID: "doc_1", Text: "first"}))
	err := repo.Create(ctx, &model.Document{ID: "doc_1", Text: "second"})
	assert.ErrorIs(t, err, repository.ErrDuplicateID)

	got, err := repo.FindByID(ctx, "doc_1")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Text)
}

func TestDocumentMemory_EmptyText(t *testing.T) {
	repo := NewDocumentMemory()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Document{ID: "doc_empty"}))
	got, err := repo.FindByID(ctx, "doc_empty")
	require.NoError(t, err)
	assert.Equal(t, "", got.Text)
}

func TestDocumentMemory_ConcurrentCreate(t *testing.T) {
	repo := NewDocumentMemory()
	ctx := context.Background()

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("doc_%d", i)
			assert.NoError(t, repo.Create(ctx, &model.Document{ID: id, Text: id}))
		}(i)
	}
	wg.Wait()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, n, count)
}

func TestDocumentMemory_CanceledContext(t *testing.T) {
	repo := NewDocumentMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, repo.Create(ctx, &model.Document{ID: "doc_1"}), context.Canceled)
	_, err := repo.FindByID(ctx, "doc_1")
	assert.ErrorIs(t, err, context.Canceled)
}
