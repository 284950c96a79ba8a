package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// KeyPrefix constants for different cache entry types
const (
	PrefixDataURI = "datauri"
)

// GenerateKey generates a cache key from its parts.
// The key is a SHA256 hash of the parts joined with NUL bytes.
func GenerateKey(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(hash[:])
}

// GenerateKeyWithPrefix generates a cache key with a prefix
func GenerateKeyWithPrefix(prefix string, parts ...string) string {
	return prefix + ":" + GenerateKey(parts...)
}

// DataURIKey generates the cache key of an encoded asset. Any change to the
// file's size or modification time produces a different key.
func DataURIKey(path string, size int64, modTime time.Time, mimeType string) string {
	return GenerateKeyWithPrefix(PrefixDataURI,
		filepath.Clean(path),
		strconv.FormatInt(size, 10),
		strconv.FormatInt(modTime.UnixNano(), 10),
		mimeType,
	)
}
