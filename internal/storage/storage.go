package storage

import (
	"context"
	"errors"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

var (
	ErrObjectNotFound = errors.New("object not found in storage")
	ErrObjectTooLarge = errors.New("object exceeds size limit")
)

// FileStorage defines the object storage operations used for schedule documents.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows PUT requests
	// for uploading an object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GetObject reads a whole object. Objects larger than maxBytes fail with ErrObjectTooLarge.
	GetObject(ctx context.Context, objectKey string, maxBytes int64) ([]byte, error)
}
