package docharvest

import (
	"context"
	"net/url"
	"strings"
)

// PageReference is a link discovered in a site's sidebar navigation:
// the raw href, the page title attribute, the display text, and the
// absolute URL resolved against the site origin.
//
// Identity is the (Href, Text) pair. References are created during
// discovery and immutable afterwards; a full discovery run re-derives
// the whole set.
type PageReference struct {
	Href    string `json:"href"`
	Title   string `json:"title"`
	Text    string `json:"text"`
	FullURL string `json:"fullUrl"`
}

// Key returns the identity key for deduplication.
func (r PageReference) Key() string {
	return r.Href + "|" + r.Text
}

// Validate returns an error if the reference contains invalid fields.
func (r PageReference) Validate() error {
	if r.Href == "" {
		return Errorf(EINVALID, "page reference href required")
	}
	if r.Text == "" {
		return Errorf(EINVALID, "page reference display text required")
	}
	return nil
}

// ResolveFullURL derives the absolute URL for href against the site
// origin. Absolute hrefs are returned unchanged.
func ResolveFullURL(origin, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}

	base, err := url.Parse(origin)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// LinkExtractor extracts page references from the navigation region
// of rendered HTML.
type LinkExtractor interface {
	// ExtractPageReferences parses HTML and returns the references
	// found in the navigation region, in document order. Anchors with
	// an empty href or empty display text are filtered out; relative
	// hrefs are resolved against baseURL's origin.
	//
	// Returns ENOTFOUND if no navigation region can be located.
	ExtractPageReferences(html string, baseURL string) ([]PageReference, error)
}

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle
// JavaScript-rendered content.
type Fetcher interface {
	// Fetch navigates to the URL, waits for rendering to complete,
	// and returns the rendered HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
