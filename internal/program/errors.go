package program

import "errors"

// Sentinel errors for the program package
var (
	// ErrFileNotFound indicates the program or a file it names does not exist
	ErrFileNotFound = errors.New("program file not found")

	// ErrInvalidFormat indicates the file is not valid YAML, JSON or TOML
	ErrInvalidFormat = errors.New("file must be valid YAML, JSON or TOML")

	// ErrUnsupportedExt indicates an unsupported file extension
	ErrUnsupportedExt = errors.New("unsupported file extension (use .yaml, .yml, .json or .toml)")

	// ErrNoConfiguration indicates the program does not name a configuration file
	ErrNoConfiguration = errors.New("program must name a configuration file")

	// ErrNoMatch indicates a stylesheet pattern matched nothing
	ErrNoMatch = errors.New("stylesheet pattern matched no files")

	// ErrInvalidThreshold indicates a negative inline threshold
	ErrInvalidThreshold = errors.New("inline_threshold cannot be negative")
)
