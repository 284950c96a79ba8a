package utils

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// OSFileSystem implements domain.FileSystem on the local disk
type OSFileSystem struct{}

// Stat returns file info for path
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads the whole file at path
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DecodeUTF8 decodes UTF-8 text, dropping a leading byte order mark.
// Invalid sequences are replaced with U+FFFD.
func DecodeUTF8(data []byte) (string, error) {
	decoder := unicode.UTF8BOM.NewDecoder()
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("decode utf-8: %w", err)
	}
	return string(out), nil
}

// ReadText reads a UTF-8 text file through the given reader function
func ReadText(read func(string) ([]byte, error), path string) (string, error) {
	data, err := read(path)
	if err != nil {
		return "", err
	}
	return DecodeUTF8(data)
}

// CopyFile copies src to dst, creating parent directories of dst.
// Both handles are closed on every return path.
func CopyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := EnsureDir(dst); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}

// SameContent reports whether two files have identical bytes
func SameContent(a, b string) (bool, error) {
	da, err := os.ReadFile(a)
	if err != nil {
		return false, err
	}
	db, err := os.ReadFile(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(da, db), nil
}

// EnsureDir ensures the parent directory of path exists, creating it if necessary
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}
