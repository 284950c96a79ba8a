package output

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/quantmind-br/deckpack/internal/domain"
)

// FormatStats renders bundle statistics for terminal output
func FormatStats(stats domain.BundleStats, collisions int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Assets:     %d\n", stats.TotalAssets)
	fmt.Fprintf(&b, "Inlined:    %d (%s source, %s as data URIs)\n",
		stats.InlinedAssets,
		humanize.IBytes(uint64(stats.InlinedBytes)),
		humanize.IBytes(uint64(stats.DataURIBytes)))
	fmt.Fprintf(&b, "Copied:     %d (%s)\n", stats.CopiedAssets, humanize.IBytes(uint64(stats.CopiedBytes)))

	overhead := stats.InlineOverhead()
	switch {
	case overhead > 0:
		fmt.Fprintf(&b, "Overhead:   +%s from inlining\n", humanize.IBytes(uint64(overhead)))
	case overhead < 0:
		fmt.Fprintf(&b, "Overhead:   -%s from inlining\n", humanize.IBytes(uint64(-overhead)))
	}

	if collisions > 0 {
		fmt.Fprintf(&b, "Collisions: %s renamed\n", humanize.Comma(int64(collisions)))
	}
	return b.String()
}
