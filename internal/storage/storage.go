package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Storage abstracts where artifacts (profile photos, identity documents)
// physically live. Documents are private and served through signed URLs;
// photos are public.
type Storage interface {
	// Save stores a file at the given path
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Get retrieves a file from the given path
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file at the given path
	Delete(ctx context.Context, path string) error

	// Exists checks if a file exists at the given path
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL returns a public URL for the file
	GetURL(ctx context.Context, path string) (string, error)

	// GetSignedURL returns a temporary signed URL for private files
	GetSignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

// SignedPathVerifier is implemented by backends whose signed URLs point
// back at this server instead of an external bucket. The file handler
// uses it to admit private paths.
type SignedPathVerifier interface {
	VerifySignedPath(path, exp, sig string) bool
}

// Config holds storage configuration
type Config struct {
	Type       string // local, s3, cloudflare_r2
	BasePath   string // for local storage
	BaseURL    string // public URL base
	Bucket     string
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string // for R2 or custom S3
	UseSSL     bool
	PublicRead bool
}

// NewStorage creates a storage instance based on configuration.
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3", "cloudflare_r2":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// DocumentPath builds the private path for an identity document, keyed by
// user id with a random component so resubmissions never collide.
func DocumentPath(userID, filename string) string {
	return fmt.Sprintf("documents/%s/%s%s", userID, uuid.New().String(), filepath.Ext(filename))
}

// PhotoPath builds the public path for a profile photo.
func PhotoPath(userID, filename string) string {
	return fmt.Sprintf("photos/%s/%s%s", userID, uuid.New().String(), filepath.Ext(filename))
}
