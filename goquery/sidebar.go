// Package goquery provides CSS-selector based extraction of page
// references from rendered navigation markup.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docharvest"
	"github.com/fwojciec/docharvest/bloom"
)

// DefaultNavSelectors locate the sidebar navigation region across
// common documentation layouts. The first selector with at least one
// anchor wins; later selectors only contribute if nothing matched yet.
var DefaultNavSelectors = []string{
	".theme-doc-sidebar-container",
	".md-nav--primary",
	".sidebar",
	"nav",
	"aside",
}

// Expected reference count and false positive rate for the
// deduplication filter. Sidebar trees are small; the filter is sized
// generously so false positives never drop a real link.
const (
	expectedRefs = 4096
	dedupFPRate  = 0.001
)

// Ensure SidebarExtractor implements docharvest.LinkExtractor at compile time.
var _ docharvest.LinkExtractor = (*SidebarExtractor)(nil)

// SidebarExtractor extracts page references from the navigation
// region of rendered HTML.
type SidebarExtractor struct {
	selectors []string
}

// NewSidebarExtractor creates a SidebarExtractor. With no arguments
// the default navigation selectors are used.
func NewSidebarExtractor(selectors ...string) *SidebarExtractor {
	if len(selectors) == 0 {
		selectors = DefaultNavSelectors
	}
	return &SidebarExtractor{selectors: selectors}
}

// ExtractPageReferences parses HTML and returns the distinct
// references found in the navigation region, in document order.
//
// Anchors with an empty href or empty display text are filtered out;
// non-HTTP schemes (javascript:, mailto:, ...) are skipped; relative
// hrefs are resolved against baseURL. Returns ENOTFOUND when none of
// the navigation selectors match anything with links in it - for
// client-rendered navigation trees this usually means the page was
// captured before rendering completed.
func (e *SidebarExtractor) ExtractPageReferences(html string, baseURL string) ([]docharvest.PageReference, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docharvest.Errorf(docharvest.EINVALID, "failed to parse HTML: %v", err)
	}

	region := e.findNavRegion(doc)
	if region == nil {
		return nil, docharvest.Errorf(docharvest.ENOTFOUND, "navigation region not found")
	}

	seen := bloom.NewFilter(expectedRefs, dedupFPRate)
	var refs []docharvest.PageReference

	region.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}

		href = stripFragment(href)
		if href == "" {
			// Anchor-only link pointing back into the same page.
			return
		}

		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}

		ref := docharvest.PageReference{
			Href:    href,
			Title:   strings.TrimSpace(sel.AttrOr("title", "")),
			Text:    text,
			FullURL: docharvest.ResolveFullURL(baseURL, href),
		}

		if seen.Test(ref.Key()) {
			return
		}
		seen.Add(ref.Key())
		refs = append(refs, ref)
	})

	if len(refs) == 0 {
		return nil, docharvest.Errorf(docharvest.ENOTFOUND, "navigation region contains no links")
	}

	return refs, nil
}

// findNavRegion returns the first selection with at least one anchor
// among the configured selectors, or nil when no selector matches.
func (e *SidebarExtractor) findNavRegion(doc *goquery.Document) *goquery.Selection {
	for _, selector := range e.selectors {
		region := doc.Find(selector)
		if region.Length() > 0 && region.Find("a[href]").Length() > 0 {
			return region
		}
	}
	return nil
}

// stripFragment removes the #fragment part of an href so that URLs
// differing only by fragment dedupe to the same reference.
func stripFragment(href string) string {
	if idx := strings.Index(href, "#"); idx != -1 {
		return href[:idx]
	}
	return href
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
