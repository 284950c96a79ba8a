package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/atom"
)

// srcElements are elements whose src attribute loads a media file
var srcElements = map[atom.Atom]bool{
	atom.Img:    true,
	atom.Source: true,
	atom.Video:  true,
	atom.Audio:  true,
	atom.Track:  true,
	atom.Embed:  true,
	atom.Input:  true,
}

// layoutSelector selects every element that may carry a media reference
const layoutSelector = "[src], [srcset], video[poster], style, [style]"

// LayoutRefs holds the local references found in layout markup
type LayoutRefs struct {
	// Attributes are src, srcset and poster references
	Attributes []string
	// Styles are url() references in <style> blocks and style attributes
	Styles []string
}

// ScanLayout parses layout markup and returns its local references,
// deduplicated, in document order. For each element src comes first, then
// poster, then the srcset candidates.
func ScanLayout(markup string) (*LayoutRefs, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout markup: %w", err)
	}

	attrs := newOrderedSet()
	styles := newOrderedSet()

	doc.Find(layoutSelector).Each(func(_ int, s *goquery.Selection) {
		name := s.Get(0).DataAtom

		if name == atom.Style {
			for _, ref := range CSSReferences(s.Text()) {
				styles.add(ref)
			}
		}
		if style, ok := s.Attr("style"); ok {
			for _, ref := range CSSReferences(style) {
				styles.add(ref)
			}
		}

		if src, ok := s.Attr("src"); ok && srcElements[name] {
			if name != atom.Input || strings.EqualFold(s.AttrOr("type", ""), "image") {
				addLocal(attrs, src)
			}
		}
		if poster, ok := s.Attr("poster"); ok && name == atom.Video {
			addLocal(attrs, poster)
		}
		if srcset, ok := s.Attr("srcset"); ok {
			for _, candidate := range ParseSrcset(srcset) {
				addLocal(attrs, candidate)
			}
		}
	})

	return &LayoutRefs{
		Attributes: attrs.list(),
		Styles:     styles.list(),
	}, nil
}

// ParseSrcset returns the URLs of a srcset attribute value.
// Each comma separated candidate is "url [descriptor]"; only the url is kept.
func ParseSrcset(srcset string) []string {
	var urls []string
	for _, candidate := range strings.Split(srcset, ",") {
		fields := strings.Fields(candidate)
		if len(fields) == 0 {
			continue
		}
		urls = append(urls, fields[0])
	}
	return urls
}

func addLocal(set *orderedSet, ref string) {
	ref = strings.TrimSpace(ref)
	if IsLocalReference(ref) {
		set.add(ref)
	}
}
