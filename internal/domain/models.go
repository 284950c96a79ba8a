package domain

import (
	"encoding/json"
	"fmt"
)

// Sentinel origins used for references that do not come from a stylesheet file
const (
	OriginConfiguration  = "configuration"
	OriginLayoutTemplate = "layoutTemplate"
)

// SourceKind tags where a reference to an asset was found
type SourceKind int

const (
	// SourceStylesheetURL is a url() reference inside a stylesheet file
	SourceStylesheetURL SourceKind = iota + 1
	// SourceLayoutURL is a url() reference inside layout markup (style blocks and attributes)
	SourceLayoutURL
	// SourceLayoutSrc is a src, srcset or poster attribute in layout markup
	SourceLayoutSrc
	// SourceConfiguration is a provider setting in the compiled configuration
	SourceConfiguration
)

var sourceKindNames = map[SourceKind]string{
	SourceStylesheetURL: "stylesheet-url",
	SourceLayoutURL:     "layout-html-url",
	SourceLayoutSrc:     "layout-html-src",
	SourceConfiguration: "configuration",
}

// String returns the wire name of the kind
func (k SourceKind) String() string {
	if name, ok := sourceKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SourceKind(%d)", int(k))
}

// Valid reports whether k is one of the known kinds
func (k SourceKind) Valid() bool {
	_, ok := sourceKindNames[k]
	return ok
}

// MarshalText implements encoding.TextMarshaler
func (k SourceKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid source kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *SourceKind) UnmarshalText(text []byte) error {
	for kind, name := range sourceKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown source kind %q", string(text))
}

// AssetSource records one place that referenced an asset
type AssetSource struct {
	File   string     `json:"file"`
	Kind   SourceKind `json:"type"`
	Line   int        `json:"line,omitempty"`
	Column int        `json:"column,omitempty"`
}

// AssetEntry describes one physical file collected into the bundle
type AssetEntry struct {
	Reference  string        `json:"originalUrl"`
	SourcePath string        `json:"sourcePath"`
	OutputPath string        `json:"outputPath"`
	Size       int64         `json:"size"`
	Inline     bool          `json:"inline"`
	DataURI    string        `json:"dataUri,omitempty"`
	MIMEType   string        `json:"mimeType"`
	Sources    []AssetSource `json:"sources"`
}

// Collision records two distinct sources that wanted the same output filename
type Collision struct {
	Filename       string `json:"filename"`
	ExistingSource string `json:"existingSource"`
	IncomingSource string `json:"incomingSource"`
	ResolvedPath   string `json:"resolvedPath"`
}

// Manifest is the result of one asset collection run.
// Entries are kept in discovery order; the manifest is not modified after
// the collector returns it, except for CombinedCSS which is filled by the
// output stage.
type Manifest struct {
	Assets         map[string]*AssetEntry
	CSSSourceFiles []string
	CombinedCSS    string

	order []string
}

// NewManifest creates an empty manifest for the given stylesheet list
func NewManifest(cssSourceFiles []string) *Manifest {
	files := make([]string, len(cssSourceFiles))
	copy(files, cssSourceFiles)
	return &Manifest{
		Assets:         make(map[string]*AssetEntry),
		CSSSourceFiles: files,
	}
}

// Add registers a new entry. It returns false if the source path is already present.
func (m *Manifest) Add(entry *AssetEntry) bool {
	if _, exists := m.Assets[entry.SourcePath]; exists {
		return false
	}
	m.Assets[entry.SourcePath] = entry
	m.order = append(m.order, entry.SourcePath)
	return true
}

// Get returns the entry for an absolute source path
func (m *Manifest) Get(sourcePath string) (*AssetEntry, bool) {
	entry, ok := m.Assets[sourcePath]
	return entry, ok
}

// Len returns the number of collected assets
func (m *Manifest) Len() int {
	return len(m.order)
}

// Entries returns the entries in discovery order
func (m *Manifest) Entries() []*AssetEntry {
	entries := make([]*AssetEntry, 0, len(m.order))
	for _, path := range m.order {
		entries = append(entries, m.Assets[path])
	}
	return entries
}

// manifestJSON is the serialized form of a Manifest
type manifestJSON struct {
	Assets         []*AssetEntry `json:"assets"`
	CSSSourceFiles []string      `json:"cssSourceFiles"`
	CombinedCSS    string        `json:"combinedCSS"`
}

// MarshalJSON encodes entries as an ordered list so output is reproducible
func (m *Manifest) MarshalJSON() ([]byte, error) {
	files := m.CSSSourceFiles
	if files == nil {
		files = []string{}
	}
	return json.Marshal(manifestJSON{
		Assets:         m.Entries(),
		CSSSourceFiles: files,
		CombinedCSS:    m.CombinedCSS,
	})
}

// UnmarshalJSON decodes the ordered list form produced by MarshalJSON
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var raw manifestJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = *NewManifest(raw.CSSSourceFiles)
	m.CombinedCSS = raw.CombinedCSS
	for _, entry := range raw.Assets {
		if !m.Add(entry) {
			return fmt.Errorf("duplicate asset %s", entry.SourcePath)
		}
	}
	return nil
}

// BundleStats summarizes inlining decisions for reporting
type BundleStats struct {
	TotalAssets   int   `json:"total_assets"`
	InlinedAssets int   `json:"inlined_assets"`
	CopiedAssets  int   `json:"copied_assets"`
	InlinedBytes  int64 `json:"inlined_bytes"`
	CopiedBytes   int64 `json:"copied_bytes"`
	DataURIBytes  int64 `json:"data_uri_bytes"`
}

// InlineOverhead returns the bytes added to the output by inlining
// (data URI length minus the size of the files it replaced).
// A negative value means inlining saved bytes.
func (s BundleStats) InlineOverhead() int64 {
	return s.DataURIBytes - s.InlinedBytes
}

// Stats computes bundle statistics for the manifest
func (m *Manifest) Stats() BundleStats {
	var stats BundleStats
	for _, entry := range m.Entries() {
		stats.TotalAssets++
		if entry.Inline {
			stats.InlinedAssets++
			stats.InlinedBytes += entry.Size
			stats.DataURIBytes += int64(len(entry.DataURI))
			continue
		}
		stats.CopiedAssets++
		stats.CopiedBytes += entry.Size
	}
	return stats
}

// Configuration is the part of the compiled presentation configuration
// that the bundler reads. Other keys are ignored.
type Configuration struct {
	Title            string                      `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	ProviderSettings map[string]ProviderSettings `json:"providerSettings,omitempty" yaml:"providerSettings,omitempty" toml:"providerSettings,omitempty"`
}

// ProviderSettings holds the provider specific options of one provider
type ProviderSettings map[string]any
