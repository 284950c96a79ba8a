package output

import (
	"testing"

	"github.com/quantmind-br/deckpack/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatStats(t *testing.T) {
	tests := []struct {
		name       string
		stats      domain.BundleStats
		collisions int
		contains   []string
		excludes   []string
	}{
		{
			name: "inlining overhead",
			stats: domain.BundleStats{
				TotalAssets:   3,
				InlinedAssets: 1,
				CopiedAssets:  2,
				InlinedBytes:  3072,
				CopiedBytes:   2 * 1024 * 1024,
				DataURIBytes:  4096,
			},
			contains: []string{
				"Assets:     3",
				"Inlined:    1 (3.0 KiB source, 4.0 KiB as data URIs)",
				"Copied:     2 (2.0 MiB)",
				"Overhead:   +1.0 KiB from inlining",
			},
			excludes: []string{"Collisions"},
		},
		{
			name: "inlining saved bytes",
			stats: domain.BundleStats{
				TotalAssets:   1,
				InlinedAssets: 1,
				InlinedBytes:  500,
				DataURIBytes:  400,
			},
			contains: []string{"Overhead:   -100 B from inlining"},
		},
		{
			name:       "collisions",
			stats:      domain.BundleStats{TotalAssets: 2, CopiedAssets: 2},
			collisions: 1200,
			contains:   []string{"Collisions: 1,200 renamed"},
			excludes:   []string{"Overhead"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FormatStats(tt.stats, tt.collisions)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}
