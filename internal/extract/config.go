package extract

import (
	"sort"
	"strings"

	"github.com/quantmind-br/deckpack/internal/domain"
)

// ConfigAsset is a file reference taken from provider settings
type ConfigAsset struct {
	Path      string // absolute, resolved against the base path
	Reference string // value as written in the configuration
	Provider  string
	Field     string
}

// Resolver turns a reference into an absolute path relative to a directory
type Resolver func(ref, dir string) string

// ConfigAssets collects the local src and path fields of every provider in
// cfg.ProviderSettings. Providers and fields are visited in sorted order so
// that results do not depend on map iteration. Nested values are not searched.
func ConfigAssets(cfg *domain.Configuration, basePath string, resolve Resolver) []ConfigAsset {
	if cfg == nil || len(cfg.ProviderSettings) == 0 {
		return nil
	}

	var out []ConfigAsset
	for _, provider := range sortedKeys(cfg.ProviderSettings) {
		settings := cfg.ProviderSettings[provider]
		for _, field := range sortedKeys(settings) {
			if !IsAssetField(field) {
				continue
			}
			ref, ok := settings[field].(string)
			if !ok || !IsLocalReference(ref) {
				continue
			}
			ref = strings.TrimSpace(ref)
			out = append(out, ConfigAsset{
				Path:      resolve(StripQueryAndFragment(ref), basePath),
				Reference: ref,
				Provider:  provider,
				Field:     field,
			})
		}
	}
	return out
}

// IsAssetField reports whether a provider setting name holds a file reference
func IsAssetField(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, "src") || strings.HasSuffix(lower, "path")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
