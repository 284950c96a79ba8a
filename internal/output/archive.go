package output

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/quantmind-br/deckpack/internal/domain"
	"github.com/quantmind-br/deckpack/internal/utils"
)

// archiveEpoch is the modification time stored for every archive entry
var archiveEpoch = time.Unix(0, 0).UTC()

// Archive writes dir as a gzip-compressed tarball at dest. Entries are
// stored in lexical order with fixed ownership and timestamps, so the same
// directory contents always produce the same bytes. dest is skipped if it
// lies inside dir.
func Archive(ctx context.Context, dir, dest string) (err error) {
	absDest, err := filepath.Abs(dest)
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(dest); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrWriteFailed, dest, err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrWriteFailed, dest, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	gz, err := gzip.NewWriterLevel(f, gzip.BestCompression)
	if err != nil {
		return err
	}
	tw := tar.NewWriter(gz)

	// WalkDir visits entries in lexical order
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil || rel == "." {
			return err
		}
		if abs, _ := filepath.Abs(path); abs == absDest {
			return nil
		}
		return addToArchive(tw, path, filepath.ToSlash(rel), d)
	})
	if walkErr != nil {
		return walkErr
	}

	if err := tw.Close(); err != nil {
		return err
	}
	return gz.Close()
}

func addToArchive(tw *tar.Writer, path, name string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}

	hdr := &tar.Header{
		Name:    name,
		ModTime: archiveEpoch,
	}
	switch {
	case info.IsDir():
		hdr.Typeflag = tar.TypeDir
		hdr.Name += "/"
		hdr.Mode = 0755
		return tw.WriteHeader(hdr)
	case info.Mode().IsRegular():
		hdr.Typeflag = tar.TypeReg
		hdr.Mode = 0644
		hdr.Size = info.Size()
	default:
		// Symlinks and devices are not part of a bundle
		return nil
	}

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = io.Copy(tw, src)
	return err
}
