package mock

import "github.com/fwojciec/docharvest"

var _ docharvest.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of docharvest.LinkExtractor.
type LinkExtractor struct {
	ExtractPageReferencesFn func(html string, baseURL string) ([]docharvest.PageReference, error)
}

func (e *LinkExtractor) ExtractPageReferences(html string, baseURL string) ([]docharvest.PageReference, error) {
	return e.ExtractPageReferencesFn(html, baseURL)
}
