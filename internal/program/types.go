package program

import (
	"fmt"

	"github.com/quantmind-br/deckpack/internal/domain"
)

// Program is the content of a program file as written
type Program struct {
	BasePath        string   `yaml:"base_path,omitempty" json:"base_path,omitempty" toml:"base_path,omitempty"`
	Configuration   string   `yaml:"configuration" json:"configuration" toml:"configuration"`
	Stylesheets     []string `yaml:"stylesheets,omitempty" json:"stylesheets,omitempty" toml:"stylesheets,omitempty"`
	Layout          string   `yaml:"layout,omitempty" json:"layout,omitempty" toml:"layout,omitempty"`
	Output          string   `yaml:"output,omitempty" json:"output,omitempty" toml:"output,omitempty"`
	InlineThreshold *int64   `yaml:"inline_threshold,omitempty" json:"inline_threshold,omitempty" toml:"inline_threshold,omitempty"`
}

// Validate validates the program
func (p *Program) Validate() error {
	if p.Configuration == "" {
		return ErrNoConfiguration
	}
	if p.InlineThreshold != nil && *p.InlineThreshold < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidThreshold, *p.InlineThreshold)
	}
	return nil
}

// Bundle is a loaded program with every path made absolute and every
// referenced file read
type Bundle struct {
	// Path is the program file
	Path string
	// BasePath is the directory configuration references resolve against
	BasePath      string
	Configuration *domain.Configuration
	// Stylesheets are absolute paths after glob expansion, in program order
	Stylesheets []string
	// LayoutPath is empty when the program has no layout
	LayoutPath     string
	LayoutTemplate string
	// Output is the output directory named by the program, if any
	Output string
	// InlineThreshold is nil when the program does not set one
	InlineThreshold *int64
}

// CollectOptions returns collection options for the bundle, using
// defaultThreshold when the program does not set a threshold
func (b *Bundle) CollectOptions(defaultThreshold int64) domain.CollectOptions {
	threshold := defaultThreshold
	if b.InlineThreshold != nil {
		threshold = *b.InlineThreshold
	}
	opts := domain.DefaultCollectOptions()
	opts.InlineThreshold = threshold
	// An empty layout file has nothing to scan
	if b.LayoutPath != "" && b.LayoutTemplate != "" {
		opts.LayoutTemplate = b.LayoutTemplate
		opts.LayoutBasePath = b.LayoutPath
	}
	return opts
}
