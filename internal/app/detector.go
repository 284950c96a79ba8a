package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/deckpack/internal/program"
)

// ProgramFileNames are the program files looked up, in order, when a
// directory is given instead of a file
var ProgramFileNames = []string{
	"deckpack.yaml",
	"deckpack.yml",
	"deckpack.json",
	"deckpack.toml",
}

// ProgramFormat identifies the encoding of a program file
type ProgramFormat string

const (
	FormatYAML    ProgramFormat = "yaml"
	FormatJSON    ProgramFormat = "json"
	FormatTOML    ProgramFormat = "toml"
	FormatUnknown ProgramFormat = "unknown"
)

// DetectFormat determines the program format from the file extension
func DetectFormat(path string) ProgramFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatUnknown
	}
}

// FindProgram returns the program file for path. A file is returned as is
// when its format is known; a directory is searched for ProgramFileNames.
func FindProgram(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", program.ErrFileNotFound, path)
		}
		return "", err
	}

	if !info.IsDir() {
		if DetectFormat(path) == FormatUnknown {
			return "", fmt.Errorf("%w: %s", program.ErrUnsupportedExt, filepath.Ext(path))
		}
		return path, nil
	}

	for _, name := range ProgramFileNames {
		candidate := filepath.Join(path, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: no %s in %s", program.ErrFileNotFound, strings.Join(ProgramFileNames, ", "), path)
}
