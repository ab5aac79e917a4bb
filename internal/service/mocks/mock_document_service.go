package mocks

import (
	"context"
	"io"

	"docqa/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, r io.Reader, filename string, contentType string, size int64) (*model.Document, error) {
	args := m.Called(ctx, r, filename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Ask(ctx context.Context, docID, question string) (string, error) {
	args := m.Called(ctx, docID, question)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
