package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors
var (
	// ErrAssetNotFound indicates a resolved local reference does not exist
	ErrAssetNotFound = errors.New("asset not found")

	// ErrStylesheetRead indicates an input stylesheet could not be read
	ErrStylesheetRead = errors.New("stylesheet read failed")

	// ErrAssetRead indicates an asset passed stat but could not be read
	ErrAssetRead = errors.New("asset read failed")

	// ErrLayoutIncomplete indicates only one of layout template and base path was given
	ErrLayoutIncomplete = errors.New("layout template and layout base path must be provided together")

	// ErrCacheMiss indicates a cache miss
	ErrCacheMiss = errors.New("cache miss")

	// ErrWriteFailed indicates writing output failed
	ErrWriteFailed = errors.New("write failed")

	// ErrOutputConflict indicates an output path holds a file no earlier bundle wrote
	ErrOutputConflict = errors.New("output file exists with different content")
)

// ErrorKind identifies which collection failure occurred
type ErrorKind int

const (
	KindAssetNotFound ErrorKind = iota + 1
	KindStylesheetRead
	KindAssetRead
)

func (k ErrorKind) String() string {
	switch k {
	case KindAssetNotFound:
		return "asset-not-found"
	case KindStylesheetRead:
		return "stylesheet-read"
	case KindAssetRead:
		return "asset-read"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// CollectError is implemented only by the error types in this file.
// Use errors.As with a CollectError to get the kind of any collection failure.
type CollectError interface {
	error
	Kind() ErrorKind
	collectError()
}

// AssetNotFoundError reports a local reference that does not exist on disk
type AssetNotFoundError struct {
	Path       string // resolved absolute path
	Reference  string // reference text as written in the source
	Origin     string // referencing file, or OriginConfiguration / OriginLayoutTemplate
	SourceKind SourceKind
	Line       int // 1-indexed, 0 when unknown
	Column     int // 1-indexed, 0 when unknown
	Err        error
}

func (e *AssetNotFoundError) Error() string {
	msg := fmt.Sprintf("asset not found: %s (referenced as %q)", e.Path, e.Reference)
	if e.Err != nil && !errors.Is(e.Err, ErrAssetNotFound) {
		msg += ": " + e.Err.Error()
	}
	return location(e.Origin, e.Line, e.Column) + msg
}

func (e *AssetNotFoundError) Unwrap() error   { return e.Err }
func (e *AssetNotFoundError) Kind() ErrorKind { return KindAssetNotFound }
func (e *AssetNotFoundError) Is(t error) bool { return t == ErrAssetNotFound }
func (e *AssetNotFoundError) collectError()   {}

// StylesheetReadError reports an input stylesheet that could not be read
type StylesheetReadError struct {
	Path string
	Err  error
}

func (e *StylesheetReadError) Error() string {
	return fmt.Sprintf("failed to read stylesheet %s: %v", e.Path, e.Err)
}

func (e *StylesheetReadError) Unwrap() error   { return e.Err }
func (e *StylesheetReadError) Kind() ErrorKind { return KindStylesheetRead }
func (e *StylesheetReadError) Is(t error) bool { return t == ErrStylesheetRead }
func (e *StylesheetReadError) collectError()   {}

// AssetReadError reports an asset that existed but could not be read for encoding
type AssetReadError struct {
	Path string
	Err  error
}

func (e *AssetReadError) Error() string {
	return fmt.Sprintf("failed to read asset %s: %v", e.Path, e.Err)
}

func (e *AssetReadError) Unwrap() error   { return e.Err }
func (e *AssetReadError) Kind() ErrorKind { return KindAssetRead }
func (e *AssetReadError) Is(t error) bool { return t == ErrAssetRead }
func (e *AssetReadError) collectError()   {}

// NewAssetNotFoundError creates a new AssetNotFoundError
func NewAssetNotFoundError(path, reference, origin string, kind SourceKind, line, column int, err error) *AssetNotFoundError {
	return &AssetNotFoundError{
		Path:       path,
		Reference:  reference,
		Origin:     origin,
		SourceKind: kind,
		Line:       line,
		Column:     column,
		Err:        err,
	}
}

// KindOf returns the collection failure kind of err, or 0 if err is not one
func KindOf(err error) ErrorKind {
	var ce CollectError
	if errors.As(err, &ce) {
		return ce.Kind()
	}
	return 0
}

// Location returns "origin:line:col" with the parts that are known
func (e *AssetNotFoundError) Location() string {
	return strings.TrimSuffix(location(e.Origin, e.Line, e.Column), ": ")
}

func location(origin string, line, column int) string {
	switch {
	case origin == "":
		return ""
	case line > 0 && column > 0:
		return fmt.Sprintf("%s:%d:%d: ", origin, line, column)
	case line > 0:
		return fmt.Sprintf("%s:%d: ", origin, line)
	default:
		return origin + ": "
	}
}
