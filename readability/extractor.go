// Package readability provides a fallback readable-content extractor
// used when trafilatura finds no content region in a page.
package readability

import (
	"strings"

	"github.com/fwojciec/docharvest"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements docharvest.Extractor at compile time.
var _ docharvest.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*docharvest.ExtractResult, error) {
	if rawHTML == "" {
		return nil, docharvest.Errorf(docharvest.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, docharvest.Errorf(docharvest.ENOTFOUND, "no readable content region: %v", err)
	}

	if strings.TrimSpace(article.Content) == "" {
		return nil, docharvest.Errorf(docharvest.ENOTFOUND, "no readable content region")
	}

	return &docharvest.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
