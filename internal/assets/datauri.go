package assets

import (
	"context"
	"encoding/base64"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/quantmind-br/deckpack/internal/cache"
	"github.com/quantmind-br/deckpack/internal/domain"
	"github.com/quantmind-br/deckpack/internal/utils"
)

const upperHex = "0123456789ABCDEF"

// Encoder reads assets and turns them into data URIs.
// When a cache is configured, encoded results are stored keyed by path,
// size, modification time and MIME type.
type Encoder struct {
	fs       domain.FileSystem
	cache    domain.Cache
	cacheTTL time.Duration
	logger   *utils.Logger
}

// EncoderOptions contains options for the encoder
type EncoderOptions struct {
	FS       domain.FileSystem
	Cache    domain.Cache
	CacheTTL time.Duration
	Logger   *utils.Logger
}

// NewEncoder creates a new data URI encoder
func NewEncoder(opts EncoderOptions) *Encoder {
	fsys := opts.FS
	if fsys == nil {
		fsys = utils.OSFileSystem{}
	}
	return &Encoder{
		fs:       fsys,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		logger:   opts.Logger,
	}
}

// Encode reads the file at path and returns its data URI.
// info is the result of the earlier stat; it enables caching and may be nil.
func (e *Encoder) Encode(ctx context.Context, path, mimeType string, info fs.FileInfo) (string, error) {
	key := ""
	if e.cache != nil && info != nil {
		key = cache.DataURIKey(path, info.Size(), info.ModTime(), mimeType)
		if cached, err := e.cache.Get(ctx, key); err == nil {
			// Entries that no longer decode are re-encoded
			if cachedType, _, err := DecodeDataURI(string(cached)); err == nil && cachedType == mimeType {
				return string(cached), nil
			}
			if e.logger != nil {
				e.logger.Debug().Str("path", path).Msg("Discarding malformed cached data URI")
			}
		}
	}

	data, err := e.fs.ReadFile(path)
	if err != nil {
		return "", &domain.AssetReadError{Path: path, Err: err}
	}
	uri := EncodeDataURI(data, path, mimeType)

	if key != "" {
		if err := e.cache.Set(ctx, key, []byte(uri), e.cacheTTL); err != nil && e.logger != nil {
			e.logger.Debug().Err(err).Str("path", path).Msg("Failed to cache data URI")
		}
	}
	return uri, nil
}

// EncodeDataURI builds a data URI for file content. SVG files are
// percent-encoded as text; everything else is base64-encoded.
func EncodeDataURI(data []byte, path, mimeType string) string {
	if IsSVG(path) {
		return "data:" + mimeType + "," + PercentEncode(string(data))
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// IsSVG reports whether path names a vector markup file
func IsSVG(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".svg")
}

// PercentEncode applies URI component encoding and also escapes quote
// characters, so the result is safe inside quoted HTML and CSS values.
func PercentEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0F])
	}
	return b.String()
}

// isUnreserved reports the bytes left alone by URI component encoding,
// minus the single quote.
func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '(', ')':
		return true
	}
	return false
}

// DecodeDataURI returns the MIME type and payload of a data URI produced by EncodeDataURI
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URI")
	}
	if mimeType, isBase64 := strings.CutSuffix(meta, ";base64"); isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		return mimeType, data, err
	}
	decoded, err := url.PathUnescape(payload)
	return meta, []byte(decoded), err
}
