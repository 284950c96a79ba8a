package domain

//go:generate mockgen -destination=../mocks/domain.go -package=mocks . FileSystem,Cache

import (
	"context"
	"io/fs"
	"time"
)

// FileSystem is the filesystem capability the collector needs from its host
type FileSystem interface {
	// Stat returns file info for an absolute path
	Stat(path string) (fs.FileInfo, error)
	// ReadFile reads a whole file
	ReadFile(path string) ([]byte, error)
}

// Cache defines the interface for encoded asset caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Has checks if a key exists in cache
	Has(ctx context.Context, key string) bool
	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error
	// Close releases cache resources
	Close() error
}
