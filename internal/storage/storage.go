// Package storage contains the object storage used to archive original uploads.
// Archived objects are write-only from the application's point of view.
package storage

import (
	"context"
	"io"
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known, otherwise -1.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key         string
	Size        int64
	ETag        string
	ContentType string
}

// Storage is an S3-compatible object storage client.
type Storage interface {
	// Put uploads an object under the given key.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Ping verifies that the backend and bucket are reachable.
	Ping(ctx context.Context) error
}
