package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrObjectNotFound is returned by Open when nothing is stored under the key
var ErrObjectNotFound = errors.New("object not found")

// Storage is a raw key/value backend for file bytes
type Storage interface {
	// Save stores the full content of reader under key. A failed Save must not
	// leave a readable object behind.
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Open returns the stored content, ErrObjectNotFound when absent
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object; deleting an absent key is not an error
	Delete(ctx context.Context, key string) error

	Exists(ctx context.Context, key string) (bool, error)

	// URL derives the public URL for key without touching the backend
	URL(key string) string
}

// Config holds storage configuration
type Config struct {
	Type      string // local, s3, cloudflare_r2
	BasePath  string // For local storage
	BaseURL   string // Public URL base
	Bucket    string // For S3/R2
	Region    string // For S3
	AccessKey string // For S3/R2
	SecretKey string // For S3/R2
	Endpoint  string // For R2 or custom S3
	UseSSL    bool   // scheme for an Endpoint given without one
}

// NewStorage creates a new storage backend based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// contextReader stops a long copy once the request is gone
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
