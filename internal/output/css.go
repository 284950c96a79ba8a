package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/deckpack/internal/assets"
	"github.com/quantmind-br/deckpack/internal/domain"
	"github.com/quantmind-br/deckpack/internal/extract"
	"github.com/quantmind-br/deckpack/internal/utils"
)

// RewriteCSS points the local url() references of a stylesheet at their
// bundled form: the data URI of inlined assets, or the output path of copied
// ones. origin is the stylesheet path the references resolve against.
// References missing from the manifest are left as written.
func RewriteCSS(css, origin string, m *domain.Manifest) string {
	return extract.RewriteCSSReferences(css, func(ref string) (string, bool) {
		stripped := extract.StripQueryAndFragment(ref)
		entry, ok := m.Get(assets.Resolve(stripped, origin))
		if !ok {
			return "", false
		}
		if entry.Inline {
			return entry.DataURI, true
		}
		// Keep ?#iefix style suffixes on copied files
		return entry.OutputPath + ref[len(stripped):], true
	})
}

// CombineCSS rewrites each stylesheet of the manifest and concatenates them
// in input order into m.CombinedCSS. read is used to load the stylesheets.
func CombineCSS(read func(string) ([]byte, error), m *domain.Manifest) error {
	var b strings.Builder
	for i, sheet := range m.CSSSourceFiles {
		text, err := utils.ReadText(read, sheet)
		if err != nil {
			return &domain.StylesheetReadError{Path: sheet, Err: err}
		}
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "/* %s */\n", filepath.Base(sheet))
		b.WriteString(RewriteCSS(text, sheet, m))
		if !strings.HasSuffix(text, "\n") {
			b.WriteString("\n")
		}
	}
	m.CombinedCSS = b.String()
	return nil
}
