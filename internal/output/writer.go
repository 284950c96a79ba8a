package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/quantmind-br/deckpack/internal/domain"
	"github.com/quantmind-br/deckpack/internal/utils"
	"golang.org/x/sync/errgroup"
)

// File names written at the root of the bundle directory
const (
	ManifestFileName    = "manifest.json"
	CombinedCSSFileName = "bundle.css"
)

// DefaultWorkers is the number of assets copied concurrently
const DefaultWorkers = 4

// Writer handles writing bundle files to the output directory
type Writer struct {
	baseDir  string
	force    bool
	dryRun   bool
	workers  int
	progress io.Writer
	logger   *utils.Logger
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	BaseDir string
	Force   bool
	DryRun  bool
	Workers int
	// Progress receives the copy progress bar. Nil disables it.
	Progress io.Writer
	Logger   *utils.Logger
}

// WriteResult counts what WriteAssets did
type WriteResult struct {
	Copied  int
	Skipped int
	// Removed counts files of the previous bundle that the manifest no longer lists
	Removed int
	Bytes   int64
}

// NewWriter creates a new output writer
func NewWriter(opts WriterOptions) *Writer {
	if opts.BaseDir == "" {
		opts.BaseDir = "./dist"
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}

	return &Writer{
		baseDir:  opts.BaseDir,
		force:    opts.Force,
		dryRun:   opts.DryRun,
		workers:  opts.Workers,
		progress: opts.Progress,
		logger:   logger.WithComponent("output"),
	}
}

// BaseDir returns the output directory
func (w *Writer) BaseDir() string {
	return w.baseDir
}

// GetPath returns the destination of a manifest output path
func (w *Writer) GetPath(outputPath string) string {
	return filepath.Join(w.baseDir, filepath.FromSlash(outputPath))
}

// WriteAssets copies every non-inline asset of the manifest into the
// output directory and removes the assets of the previous bundle that m no
// longer lists. A file that already holds the same bytes is skipped. Files
// listed by the previous manifest.json are replaced; any other existing file
// is an ErrOutputConflict unless the writer was created with Force.
func (w *Writer) WriteAssets(ctx context.Context, m *domain.Manifest) (WriteResult, error) {
	previous := w.previousOutputs()

	copies := make([]*domain.AssetEntry, 0, m.Len())
	current := make(map[string]bool)
	for _, entry := range m.Entries() {
		if !entry.Inline {
			copies = append(copies, entry)
			current[entry.OutputPath] = true
		}
	}

	var (
		mu     sync.Mutex
		result WriteResult
	)

	if len(copies) > 0 {
		bar := utils.NewSilentProgressBar(len(copies))
		if w.progress != nil {
			bar = utils.NewProgressBarTo(w.progress, len(copies), utils.DescCopying)
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(w.workers)

		for _, entry := range copies {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				copied, err := w.copyAsset(entry, previous[entry.OutputPath])
				if err != nil {
					return err
				}

				mu.Lock()
				if copied {
					result.Copied++
					result.Bytes += entry.Size
				} else {
					result.Skipped++
				}
				mu.Unlock()

				_ = bar.Add(1)
				return nil
			})
		}

		err := g.Wait()
		_ = bar.Finish()
		if err != nil {
			return result, err
		}
	}

	removed, err := w.prune(previous, current)
	result.Removed = removed
	if err != nil {
		return result, err
	}

	w.logger.Info().
		Int("copied", result.Copied).
		Int("skipped", result.Skipped).
		Int("removed", result.Removed).
		Bool("dry_run", w.dryRun).
		Msg("Assets written")
	return result, nil
}

// copyAsset copies one entry and reports whether it was written. owned is
// true when the previous bundle wrote the destination.
func (w *Writer) copyAsset(entry *domain.AssetEntry, owned bool) (bool, error) {
	dst := w.GetPath(entry.OutputPath)

	if w.Exists(entry.OutputPath) {
		if same, err := utils.SameContent(entry.SourcePath, dst); err == nil && same {
			w.logger.WithFile(dst).Debug().Msg("Destination up to date, skipping")
			return false, nil
		}
		if !owned && !w.force {
			return false, fmt.Errorf("%w: %s (use --force to replace it)", domain.ErrOutputConflict, dst)
		}
	}

	if w.dryRun {
		w.logger.Debug().Str("source", entry.SourcePath).Str("dest", dst).Msg("Would copy asset")
		return true, nil
	}

	if err := utils.CopyFile(entry.SourcePath, dst); err != nil {
		return false, fmt.Errorf("%w: %s: %w", domain.ErrWriteFailed, dst, err)
	}
	return true, nil
}

// previousOutputs returns the copied output paths listed by the manifest.json
// already in the output directory. A missing or unreadable manifest lists none.
func (w *Writer) previousOutputs() map[string]bool {
	owned := make(map[string]bool)

	data, err := os.ReadFile(w.GetPath(ManifestFileName))
	if err != nil {
		return owned
	}
	var previous domain.Manifest
	if err := json.Unmarshal(data, &previous); err != nil {
		w.logger.Warn().Err(err).Msg("Ignoring unreadable previous manifest")
		return owned
	}
	for _, entry := range previous.Entries() {
		if !entry.Inline && filepath.IsLocal(filepath.FromSlash(entry.OutputPath)) {
			owned[entry.OutputPath] = true
		}
	}
	return owned
}

// prune removes the previous bundle's assets that are not in current
func (w *Writer) prune(previous, current map[string]bool) (int, error) {
	stale := make([]string, 0, len(previous))
	for outputPath := range previous {
		if !current[outputPath] && w.Exists(outputPath) {
			stale = append(stale, outputPath)
		}
	}
	sort.Strings(stale)

	for _, outputPath := range stale {
		if w.dryRun {
			w.logger.Debug().Str("dest", outputPath).Msg("Would remove stale asset")
			continue
		}
		if err := os.Remove(w.GetPath(outputPath)); err != nil {
			return 0, fmt.Errorf("%w: %s: %w", domain.ErrWriteFailed, outputPath, err)
		}
		w.logger.WithFile(outputPath).Debug().Msg("Removed stale asset")
	}
	return len(stale), nil
}

// WriteManifest writes the manifest as indented JSON and returns its path
func (w *Writer) WriteManifest(m *domain.Manifest) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", err
	}
	return w.WriteFile(ManifestFileName, append(data, '\n'))
}

// WriteFile writes data to name relative to the output directory, replacing
// any existing file. Nothing is written on a dry run.
func (w *Writer) WriteFile(name string, data []byte) (string, error) {
	path := w.GetPath(name)

	if w.dryRun {
		return path, nil
	}

	if err := utils.EnsureDir(path); err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrWriteFailed, path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrWriteFailed, path, err)
	}
	return path, nil
}

// Exists checks if an output path already exists
func (w *Writer) Exists(outputPath string) bool {
	_, err := os.Stat(w.GetPath(outputPath))
	return err == nil
}

// EnsureBaseDir creates the base directory if it doesn't exist
func (w *Writer) EnsureBaseDir() error {
	if w.dryRun {
		return nil
	}
	return os.MkdirAll(w.baseDir, 0755)
}

// Stats returns the number and total size of files in the output directory
func (w *Writer) Stats() (int, int64, error) {
	var count int
	var size int64

	err := filepath.Walk(w.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			count++
			size += info.Size()
		}
		return nil
	})

	return count, size, err
}
