// Package trafilatura provides the primary readable-content extractor.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/docharvest"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docharvest.Extractor at compile time.
var _ docharvest.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
// Returns ENOTFOUND when no readable content region can be identified.
func (e *Extractor) Extract(rawHTML string) (*docharvest.ExtractResult, error) {
	if rawHTML == "" {
		return nil, docharvest.Errorf(docharvest.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, docharvest.Errorf(docharvest.ENOTFOUND, "no readable content region: %v", err)
	}

	if result.ContentNode == nil {
		return nil, docharvest.Errorf(docharvest.ENOTFOUND, "no readable content region")
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}

	return &docharvest.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
