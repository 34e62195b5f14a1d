// Package rod provides a browser-based implementation of
// docharvest.Fetcher using Chrome automation. Documentation sites
// render their sidebar trees client-side, so raw markup is not
// guaranteed to contain the content this pipeline needs.
package rod

import (
	"context"
	"time"

	"github.com/fwojciec/docharvest"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single navigation. A timeout fails
// that one fetch; it never aborts sibling fetches in the same batch.
const DefaultFetchTimeout = 10 * time.Second

// DefaultSettleDelay is the pause after load before capturing HTML,
// giving SPA frameworks time to finish async rendering.
const DefaultSettleDelay = 500 * time.Millisecond

// Ensure Fetcher implements docharvest.Fetcher at compile time.
var _ docharvest.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser
// automation. Fetcher is safe for concurrent use by multiple
// goroutines.
type Fetcher struct {
	manager     *BrowserManager
	timeout     time.Duration
	settleDelay time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-navigation timeout.
// Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithSettleDelay sets the post-load settle delay.
// Defaults to DefaultSettleDelay.
func WithSettleDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settleDelay = d
	}
}

// WithMaxPagesPerBrowser sets the browser recycling threshold.
func WithMaxPagesPerBrowser(n int64) Option {
	return func(f *Fetcher) {
		f.manager.maxPages = n
	}
}

// NewFetcher creates a new Fetcher backed by a managed headless
// Chrome browser. Close must be called when the Fetcher is no longer
// needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}

	f := &Fetcher{
		manager:     manager,
		timeout:     DefaultFetchTimeout,
		settleDelay: DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// Fetch navigates to the URL, waits for the page to load plus the
// settle delay, and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}

	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	// Client-side navigation trees often populate after load.
	if f.settleDelay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.settleDelay):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()

	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
