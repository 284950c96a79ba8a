// Package assets implements the per-asset decisions of the bundler: path
// resolution, MIME lookup, the inlining policy, data URI encoding and
// output path allocation.
package assets

import "path/filepath"

// Resolve resolves ref against the directory containing originFile.
// It does not check that the result exists.
func Resolve(ref, originFile string) string {
	return ResolveFromDir(ref, filepath.Dir(originFile))
}

// ResolveFromDir resolves ref against dir, applying . and .. segments.
// Absolute references are only cleaned.
func ResolveFromDir(ref, dir string) string {
	ref = filepath.FromSlash(ref)
	if filepath.IsAbs(ref) {
		return filepath.Clean(ref)
	}
	resolved := filepath.Join(dir, ref)
	if abs, err := filepath.Abs(resolved); err == nil {
		return abs
	}
	return resolved
}
