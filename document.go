package docharvest

import (
	"strings"
	"time"
)

// Document is the cleaned, converted markdown artifact for one page.
// The metadata fields are persisted as frontmatter ahead of the body.
type Document struct {
	Filename    string    `json:"filename"`
	Title       string    `json:"title"`
	SourceURL   string    `json:"sourceUrl"`
	Path        string    `json:"path"`
	Excerpt     string    `json:"excerpt"`
	Length      int       `json:"length"`
	ContentHash string    `json:"contentHash"`
	ConvertedAt time.Time `json:"convertedAt"`
	Body        string    `json:"-"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.Filename == "" {
		return Errorf(EINVALID, "document filename required")
	}
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	return nil
}

// WordCount returns the number of whitespace-separated words in the body.
func (d *Document) WordCount() int {
	return len(strings.Fields(d.Body))
}

// ConvertRecord is the outcome of converting one raw document.
type ConvertRecord struct {
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Words    int    `json:"words"`

	// Skipped reports that the converted artifact was already newer
	// than its raw source, so no extraction work was done.
	Skipped bool `json:"skipped"`
}

// MakeExcerpt returns the first maxLen characters of the markdown
// body, flattened to a single line and cut at a word boundary.
func MakeExcerpt(markdown string, maxLen int) string {
	flat := strings.Join(strings.Fields(markdown), " ")
	if len(flat) <= maxLen {
		return flat
	}

	cut := flat[:maxLen]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
