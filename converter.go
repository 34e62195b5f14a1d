package docharvest

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from an Extractor).
	// Headings, emphasis, links, and fenced code blocks are
	// preserved; code fence language tags are recovered from class
	// hints on the code element when present.
	Convert(html string) (string, error)
}
