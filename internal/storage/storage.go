package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage defines the interface for media file storage operations.
// Implementations are the app's "media port": the rest of the code
// only ever sees opaque object keys and URLs.
type Storage interface {
	// Save stores a file at the given key
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Get retrieves a file by key
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file by key
	Delete(ctx context.Context, key string) error

	// Exists checks if a file exists at the given key
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns a public URL for the file
	GetURL(ctx context.Context, key string) (string, error)

	// GetSize returns the size of a file in bytes
	GetSize(ctx context.Context, key string) (int64, error)
}

// Config holds storage configuration
type Config struct {
	Type      string // local, s3
	BasePath  string // for local storage
	BaseURL   string // public URL base
	Bucket    string // for s3
	Region    string // for s3
	AccessKey string // for s3
	SecretKey string // for s3
	Endpoint  string // for R2/MinIO or custom S3
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
