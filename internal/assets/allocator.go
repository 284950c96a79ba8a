package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/deckpack/internal/domain"
)

// OutputDir is the bundle directory every allocated path is rooted at
const OutputDir = "assets"

// suffixLengths are the hash prefix lengths tried when disambiguating a name.
// Only the first is used unless two sources share an 8 character prefix.
var suffixLengths = []int{8, 16, sha256.Size * 2}

// Tracker allocates bundle-relative output paths for source files.
//
// Allocation is order sensitive: the first source to claim a basename keeps
// the plain name and later sources with the same basename get a suffix
// derived from their own path. A Tracker is not safe for concurrent use;
// callers must allocate in input order from a single goroutine.
type Tracker struct {
	claims     map[string]string // output path -> source path
	collisions []domain.Collision
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{claims: make(map[string]string)}
}

// Allocate returns the output path for sourcePath, claiming it if new
func (t *Tracker) Allocate(sourcePath string) string {
	base := filepath.Base(sourcePath)
	candidate := path.Join(OutputDir, base)

	owner, claimed := t.claims[candidate]
	if !claimed {
		t.claims[candidate] = sourcePath
		return candidate
	}
	if owner == sourcePath {
		return candidate
	}

	hash := PathHash(sourcePath)
	for _, n := range suffixLengths {
		resolved := path.Join(OutputDir, SuffixedName(base, hash[:n]))
		current, taken := t.claims[resolved]
		if taken && current == sourcePath {
			return resolved
		}
		if taken {
			continue
		}
		t.claims[resolved] = sourcePath
		t.collisions = append(t.collisions, domain.Collision{
			Filename:       base,
			ExistingSource: owner,
			IncomingSource: sourcePath,
			ResolvedPath:   resolved,
		})
		return resolved
	}

	// Two different paths with the same full digest
	panic(fmt.Sprintf("assets: cannot allocate output path for %s", sourcePath))
}

// Len returns the number of claimed output paths
func (t *Tracker) Len() int {
	return len(t.claims)
}

// Collisions returns the recorded collisions in the order they happened
func (t *Tracker) Collisions() []domain.Collision {
	out := make([]domain.Collision, len(t.collisions))
	copy(out, t.collisions)
	return out
}

// PathHash returns the hex encoded sha256 of an absolute source path
func PathHash(sourcePath string) string {
	sum := sha256.Sum256([]byte(sourcePath))
	return hex.EncodeToString(sum[:])
}

// SuffixedName inserts "-suffix" before the extension of name
func SuffixedName(name, suffix string) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if ext == "" || stem == "" {
		return name + "-" + suffix
	}
	return stem + "-" + suffix + ext
}

// FormatCollision renders a collision as a single log line
func FormatCollision(c domain.Collision) string {
	return fmt.Sprintf("filename collision for %q: %s already uses it, %s renamed to %s",
		c.Filename, c.ExistingSource, c.IncomingSource, c.ResolvedPath)
}
