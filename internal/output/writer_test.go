package output

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/quantmind-br/deckpack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSource creates a source file under dir and returns its path
func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// testManifest builds a manifest with one copied and one inlined asset
func testManifest(t *testing.T, srcDir string) *domain.Manifest {
	t.Helper()
	m := domain.NewManifest(nil)
	m.Add(&domain.AssetEntry{
		Reference:  "img/photo.jpg",
		SourcePath: writeSource(t, srcDir, "img/photo.jpg", "jpeg-bytes"),
		OutputPath: "assets/photo.jpg",
		Size:       10,
		MIMEType:   "image/jpeg",
		Sources:    []domain.AssetSource{{File: "theme.css", Kind: domain.SourceStylesheetURL, Line: 1, Column: 1}},
	})
	m.Add(&domain.AssetEntry{
		Reference:  "icon.png",
		SourcePath: writeSource(t, srcDir, "icon.png", "png"),
		OutputPath: "assets/icon.png",
		Size:       3,
		Inline:     true,
		DataURI:    "data:image/png;base64,cG5n",
		MIMEType:   "image/png",
		Sources:    []domain.AssetSource{{File: "theme.css", Kind: domain.SourceStylesheetURL, Line: 2, Column: 1}},
	})
	return m
}

func TestNewWriter(t *testing.T) {
	tests := []struct {
		name  string
		opts  WriterOptions
		check func(t *testing.T, w *Writer)
	}{
		{
			name: "with all options",
			opts: WriterOptions{
				BaseDir: "./bundle",
				Force:   true,
				DryRun:  true,
				Workers: 8,
			},
			check: func(t *testing.T, w *Writer) {
				assert.Equal(t, "./bundle", w.BaseDir())
				assert.True(t, w.force)
				assert.True(t, w.dryRun)
				assert.Equal(t, 8, w.workers)
				assert.NotNil(t, w.logger)
			},
		},
		{
			name: "defaults",
			opts: WriterOptions{},
			check: func(t *testing.T, w *Writer) {
				assert.Equal(t, "./dist", w.BaseDir())
				assert.Equal(t, DefaultWorkers, w.workers)
				assert.Nil(t, w.progress)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NewWriter(tt.opts))
		})
	}
}

func TestWriter_GetPath(t *testing.T) {
	w := NewWriter(WriterOptions{BaseDir: "/out"})
	assert.Equal(t, filepath.Join("/out", "assets", "logo.png"), w.GetPath("assets/logo.png"))
}

func TestWriter_WriteAssets(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "dist")
	m := testManifest(t, srcDir)

	var progress bytes.Buffer
	w := NewWriter(WriterOptions{BaseDir: outDir, Progress: &progress})

	result, err := w.WriteAssets(context.Background(), m)
	require.NoError(t, err)

	assert.Equal(t, WriteResult{Copied: 1, Bytes: 10}, result)

	data, err := os.ReadFile(filepath.Join(outDir, "assets", "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	// Inlined assets are not copied
	assert.NoFileExists(t, filepath.Join(outDir, "assets", "icon.png"))
	assert.True(t, w.Exists("assets/photo.jpg"))
	assert.False(t, w.Exists("assets/icon.png"))
}

func TestWriter_WriteAssets_ForeignFileConflicts(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	m := testManifest(t, srcDir)
	writeSource(t, outDir, "assets/photo.jpg", "old")

	w := NewWriter(WriterOptions{BaseDir: outDir})
	_, err := w.WriteAssets(context.Background(), m)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOutputConflict)
	assert.Contains(t, err.Error(), "--force")

	data, err := os.ReadFile(filepath.Join(outDir, "assets", "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

// writePreviousManifest records outputPaths as copied assets of an earlier bundle
func writePreviousManifest(t *testing.T, outDir string, outputPaths ...string) {
	t.Helper()
	previous := domain.NewManifest(nil)
	for _, outputPath := range outputPaths {
		previous.Add(&domain.AssetEntry{
			SourcePath: filepath.Join("/old", outputPath),
			OutputPath: outputPath,
			Sources:    []domain.AssetSource{{File: "theme.css", Kind: domain.SourceStylesheetURL, Line: 1, Column: 1}},
		})
	}
	_, err := NewWriter(WriterOptions{BaseDir: outDir}).WriteManifest(previous)
	require.NoError(t, err)
}

func TestWriter_WriteAssets_Rebuild(t *testing.T) {
	t.Run("replaces changed assets of the previous bundle", func(t *testing.T) {
		outDir := t.TempDir()
		m := testManifest(t, t.TempDir())
		writeSource(t, outDir, "assets/photo.jpg", "old")
		writePreviousManifest(t, outDir, "assets/photo.jpg")

		result, err := NewWriter(WriterOptions{BaseDir: outDir}).WriteAssets(context.Background(), m)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Copied)

		data, err := os.ReadFile(filepath.Join(outDir, "assets", "photo.jpg"))
		require.NoError(t, err)
		assert.Equal(t, "jpeg-bytes", string(data))
	})

	t.Run("skips identical files", func(t *testing.T) {
		outDir := t.TempDir()
		m := testManifest(t, t.TempDir())
		writeSource(t, outDir, "assets/photo.jpg", "jpeg-bytes")

		result, err := NewWriter(WriterOptions{BaseDir: outDir}).WriteAssets(context.Background(), m)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Copied)
		assert.Equal(t, 1, result.Skipped)
	})

	t.Run("removes assets the manifest no longer lists", func(t *testing.T) {
		outDir := t.TempDir()
		m := testManifest(t, t.TempDir())
		writeSource(t, outDir, "assets/gone.png", "stale")
		writeSource(t, outDir, "assets/icon.png", "now inlined")
		writeSource(t, outDir, "notes.txt", "not ours")
		writePreviousManifest(t, outDir, "assets/gone.png", "assets/icon.png")

		result, err := NewWriter(WriterOptions{BaseDir: outDir}).WriteAssets(context.Background(), m)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Removed)
		assert.NoFileExists(t, filepath.Join(outDir, "assets", "gone.png"))
		assert.NoFileExists(t, filepath.Join(outDir, "assets", "icon.png"))
		assert.FileExists(t, filepath.Join(outDir, "notes.txt"))
	})

	t.Run("dry run keeps stale assets", func(t *testing.T) {
		outDir := t.TempDir()
		writeSource(t, outDir, "assets/gone.png", "stale")
		writePreviousManifest(t, outDir, "assets/gone.png")

		result, err := NewWriter(WriterOptions{BaseDir: outDir, DryRun: true}).WriteAssets(context.Background(), domain.NewManifest(nil))
		require.NoError(t, err)
		assert.Equal(t, 1, result.Removed)
		assert.FileExists(t, filepath.Join(outDir, "assets", "gone.png"))
	})
}

func TestWriter_WriteAssets_Force(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	m := testManifest(t, srcDir)
	writeSource(t, outDir, "assets/photo.jpg", "old")

	w := NewWriter(WriterOptions{BaseDir: outDir, Force: true})
	result, err := w.WriteAssets(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Copied)

	data, err := os.ReadFile(filepath.Join(outDir, "assets", "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestWriter_WriteAssets_DryRun(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "dist")
	m := testManifest(t, srcDir)

	w := NewWriter(WriterOptions{BaseDir: outDir, DryRun: true})
	require.NoError(t, w.EnsureBaseDir())

	result, err := w.WriteAssets(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Copied)
	assert.NoDirExists(t, outDir)
}

func TestWriter_WriteAssets_MissingSource(t *testing.T) {
	m := domain.NewManifest(nil)
	m.Add(&domain.AssetEntry{
		SourcePath: filepath.Join(t.TempDir(), "gone.png"),
		OutputPath: "assets/gone.png",
		Sources:    []domain.AssetSource{{File: "a.css"}},
	})

	w := NewWriter(WriterOptions{BaseDir: t.TempDir()})
	_, err := w.WriteAssets(context.Background(), m)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWriteFailed)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriter_WriteAssets_Cancelled(t *testing.T) {
	m := testManifest(t, t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewWriter(WriterOptions{BaseDir: t.TempDir()})
	_, err := w.WriteAssets(ctx, m)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriter_WriteAssets_Empty(t *testing.T) {
	w := NewWriter(WriterOptions{BaseDir: t.TempDir()})
	result, err := w.WriteAssets(context.Background(), domain.NewManifest(nil))
	require.NoError(t, err)
	assert.Equal(t, WriteResult{}, result)
}

func TestWriter_WriteManifest(t *testing.T) {
	outDir := t.TempDir()
	m := testManifest(t, t.TempDir())
	m.CombinedCSS = "body{}"

	w := NewWriter(WriterOptions{BaseDir: outDir})
	path, err := w.WriteManifest(m)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, ManifestFileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded domain.Manifest
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 2, decoded.Len())
	assert.Equal(t, "body{}", decoded.CombinedCSS)
	assert.Equal(t, "assets/photo.jpg", decoded.Entries()[0].OutputPath)
}

func TestWriter_WriteFile(t *testing.T) {
	t.Run("writes nested file", func(t *testing.T) {
		outDir := t.TempDir()
		w := NewWriter(WriterOptions{BaseDir: outDir})

		path, err := w.WriteFile("css/bundle.css", []byte("a{}"))
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "a{}", string(data))
	})

	t.Run("replaces existing file", func(t *testing.T) {
		outDir := t.TempDir()
		writeSource(t, outDir, CombinedCSSFileName, "old")
		w := NewWriter(WriterOptions{BaseDir: outDir})

		_, err := w.WriteFile(CombinedCSSFileName, []byte("new"))
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(outDir, CombinedCSSFileName))
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		outDir := t.TempDir()
		w := NewWriter(WriterOptions{BaseDir: outDir, DryRun: true})

		path, err := w.WriteFile(CombinedCSSFileName, []byte("new"))
		require.NoError(t, err)
		assert.NoFileExists(t, path)
	})
}

func TestWriter_Stats(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "dist")
	writeSource(t, outDir, "manifest.json", "{}")
	writeSource(t, outDir, "assets/a.png", "12345")

	w := NewWriter(WriterOptions{BaseDir: outDir})
	count, size, err := w.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, int64(7), size)
}

func TestWriter_WriteAssets_ForceSkipsIdentical(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	m := testManifest(t, srcDir)
	writeSource(t, outDir, "assets/photo.jpg", "jpeg-bytes")

	w := NewWriter(WriterOptions{BaseDir: outDir, Force: true})
	result, err := w.WriteAssets(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Copied)
	assert.Equal(t, 1, result.Skipped)
}
