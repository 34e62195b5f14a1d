package harvest

import (
	"context"
	"fmt"

	"github.com/fwojciec/docharvest"
)

// Discoverer visits a target's navigation root and extracts the set
// of page references it links to.
type Discoverer struct {
	Fetcher  docharvest.Fetcher
	Links    docharvest.LinkExtractor
	Reporter docharvest.Reporter
}

// Discover fetches the rendered navigation root and returns its
// distinct page references in document order.
//
// There is no retry here: a navigation timeout on the root aborts
// discovery, and without a catalog nothing downstream can proceed.
func (d *Discoverer) Discover(ctx context.Context, target docharvest.Target) ([]docharvest.PageReference, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	html, err := d.Fetcher.Fetch(ctx, target.RootURL)
	if err != nil {
		return nil, fmt.Errorf("fetching navigation root %s: %w", target.RootURL, err)
	}

	refs, err := d.Links.ExtractPageReferences(html, target.RootURL)
	if err != nil {
		return nil, err
	}

	if d.Reporter != nil {
		for i, ref := range refs {
			d.Reporter.Report(docharvest.Event{
				Type:      docharvest.EventItemCompleted,
				Phase:     PhaseDiscover,
				Target:    target.Name,
				URL:       ref.FullURL,
				Completed: i + 1,
				Total:     len(refs),
			})
		}
	}

	return refs, nil
}
