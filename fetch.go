package docharvest

// FetchRecord is the outcome of fetching one page's rendered content.
type FetchRecord struct {
	Filename    string `json:"filename"`
	SourceURL   string `json:"sourceUrl"`
	Title       string `json:"title"`
	ByteSize    int    `json:"byteSize"`
	ContentHash string `json:"contentHash"`

	// Skipped reports that the stored raw document's hash already
	// matched the freshly fetched content, so nothing was rewritten.
	Skipped bool `json:"skipped"`
}
