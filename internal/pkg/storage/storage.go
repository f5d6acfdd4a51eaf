package storage

import (
	"context"
	"io"
)

// Folder names accepted as upload destinations.
const (
	FolderTransactions = "transactions"
	FolderUsers        = "users"
	FolderWallets      = "wallets"
)

// Storage defines the minimal interface for file storage backends.
// Intentionally simple: Put a file, Delete a file, get its URL.
type Storage interface {
	// Put stores a file under the given key.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes a file by key. Returns nil if the file doesn't exist.
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for a stored key.
	GetURL(key string) string
}

// Config holds S3/MinIO connection settings
type Config struct {
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string
}

// AllowedMimeTypes maps upload folders to accepted content types.
// Receipts and icons are images only.
var AllowedMimeTypes = map[string][]string{
	FolderTransactions: {"image/jpeg", "image/png", "image/webp"},
	FolderUsers:        {"image/jpeg", "image/png", "image/webp"},
	FolderWallets:      {"image/jpeg", "image/png", "image/webp"},
}

// MaxFileSizes maps upload folders to size limits in bytes
var MaxFileSizes = map[string]int64{
	FolderTransactions: 10 * 1024 * 1024,
	FolderUsers:        5 * 1024 * 1024,
	FolderWallets:      5 * 1024 * 1024,
}

// IsValidFolder reports whether folder is a known upload destination
func IsValidFolder(folder string) bool {
	_, ok := AllowedMimeTypes[folder]
	return ok
}
