package program

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/quantmind-br/deckpack/internal/domain"
	"github.com/quantmind-br/deckpack/internal/utils"
)

// Loader loads program files and the files they name
type Loader struct{}

// NewLoader creates a new program loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads a program file, its compiled configuration and layout, and
// expands its stylesheet patterns
func (l *Loader) Load(path string) (*Bundle, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve program path: %w", err)
	}

	data, err := readFile(abs)
	if err != nil {
		return nil, err
	}

	prog, err := l.LoadFromBytes(data, filepath.Ext(abs))
	if err != nil {
		return nil, err
	}

	return l.Resolve(prog, abs)
}

// LoadFromBytes parses a program from raw bytes
func (l *Loader) LoadFromBytes(data []byte, ext string) (*Program, error) {
	var prog Program
	if err := decode(data, ext, &prog); err != nil {
		return nil, err
	}
	if err := prog.Validate(); err != nil {
		return nil, err
	}
	return &prog, nil
}

// Resolve turns a parsed program into a bundle. programPath is the absolute
// path of the program file.
func (l *Loader) Resolve(prog *Program, programPath string) (*Bundle, error) {
	base := filepath.Dir(programPath)
	if prog.BasePath != "" {
		base = resolvePath(base, prog.BasePath)
	}

	bundle := &Bundle{
		Path:            programPath,
		BasePath:        base,
		InlineThreshold: prog.InlineThreshold,
	}
	if prog.Output != "" {
		bundle.Output = resolvePath(base, prog.Output)
	}

	cfg, err := l.LoadConfiguration(resolvePath(base, prog.Configuration))
	if err != nil {
		return nil, err
	}
	bundle.Configuration = cfg

	bundle.Stylesheets, err = ExpandStylesheets(base, prog.Stylesheets)
	if err != nil {
		return nil, err
	}

	if prog.Layout != "" {
		bundle.LayoutPath = resolvePath(base, prog.Layout)
		text, err := utils.ReadText(readFile, bundle.LayoutPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read layout: %w", err)
		}
		bundle.LayoutTemplate = text
	}

	return bundle, nil
}

// LoadConfiguration reads a compiled presentation configuration
func (l *Loader) LoadConfiguration(path string) (*domain.Configuration, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var cfg domain.Configuration
	if err := decode(data, filepath.Ext(path), &cfg); err != nil {
		return nil, fmt.Errorf("configuration %s: %w", path, err)
	}
	return &cfg, nil
}

// ExpandStylesheets resolves stylesheet entries against base. Entries with
// glob syntax are expanded with doublestar and must match at least one file;
// plain entries are kept even if missing so the collector reports them.
func ExpandStylesheets(base string, patterns []string) ([]string, error) {
	files := []string{}
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, pattern := range patterns {
		abs := resolvePath(base, pattern)
		if !isGlob(pattern) {
			add(abs)
			continue
		}

		matches, err := doublestar.FilepathGlob(abs, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid stylesheet pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoMatch, pattern)
		}
		sort.Strings(matches)
		for _, match := range matches {
			add(filepath.Clean(match))
		}
	}
	return files, nil
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

func resolvePath(base, path string) string {
	path = utils.ExpandPath(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, filepath.FromSlash(path))
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// decode unmarshals YAML, JSON or TOML selected by file extension
func decode(data []byte, ext string, v any) error {
	var err error
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	case ".json":
		err = json.Unmarshal(data, v)
	case ".toml":
		err = toml.NewDecoder(bytes.NewReader(data)).Decode(v)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedExt, ext)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return nil
}
