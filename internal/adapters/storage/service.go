// Package storage provides a domain-agnostic interface for
// S3-compatible object storage, used for receipt files.
package storage

import (
	"context"
	"time"
)

// PresignedURL contains the URL and metadata for a presigned operation.
type PresignedURL struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// StorageService defines the object storage operations modules need.
type StorageService interface {
	// GenerateUploadURL creates a presigned PUT URL. The folder defines
	// the key prefix (e.g. "{tenant}/{expense}").
	GenerateUploadURL(ctx context.Context, bucket, folder, fileName, contentType string) (*PresignedURL, error)

	// GenerateDownloadURL creates a presigned GET URL for a stored object.
	GenerateDownloadURL(ctx context.Context, bucket, fileKey string) (*PresignedURL, error)

	// DeleteObject removes an object from storage.
	DeleteObject(ctx context.Context, bucket, fileKey string) error

	// EnsureBucketExists creates the bucket if it doesn't exist.
	EnsureBucketExists(ctx context.Context, bucket string) error
}

// Config defines the configuration interface for storage.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	IsMinIOEnabled() bool
}
