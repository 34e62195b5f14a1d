package harvest

import (
	"context"
	"net/url"
	"time"

	"github.com/fwojciec/docharvest"
	"github.com/fwojciec/docharvest/fs"
	"golang.org/x/sync/errgroup"
)

// DefaultMinContentBytes is the floor below which fetched content is
// rejected as implausibly small (an error page or an empty shell).
const DefaultMinContentBytes = 512

// DefaultBatchDelay is the politeness pause between batches so the
// origin never sees more than one burst of PoolSize connections at a
// time.
const DefaultBatchDelay = 1 * time.Second

// BatchFetcher retrieves rendered content for many pages
// concurrently, bounded by a fixed worker pool, with content-hash
// deduplication against previously stored raw documents.
type BatchFetcher struct {
	Fetcher  docharvest.Fetcher
	Raw      *fs.RawStore
	Limiter  *DomainLimiter
	Reporter docharvest.Reporter

	// PoolSize is the worker pool size and therefore also the batch
	// size; a batch is fully drained before the next one starts.
	PoolSize int

	// BatchDelay is the pause between batches.
	BatchDelay time.Duration

	// RetryDelays configures per-item fetch retries.
	RetryDelays []time.Duration

	// MinContentBytes rejects implausibly small rendered content.
	MinContentBytes int
}

// fetchResult holds the outcome of fetching a single section.
type fetchResult struct {
	position int
	record   docharvest.FetchRecord
	err      error
}

// FetchAll fetches every section's rendered content, one record per
// successful section in input order. A single page's failure never
// aborts its siblings: failures are reported, counted, and excluded
// from the returned records.
func (f *BatchFetcher) FetchAll(ctx context.Context, target docharvest.Target, sections []docharvest.Section) ([]docharvest.FetchRecord, int, error) {
	poolSize := f.PoolSize
	if poolSize <= 0 {
		poolSize = 3
	}
	minBytes := f.MinContentBytes
	if minBytes <= 0 {
		minBytes = DefaultMinContentBytes
	}
	delays := f.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	var records []docharvest.FetchRecord
	var failed int
	completed := 0
	total := len(sections)

	for start := 0; start < len(sections); start += poolSize {
		end := min(start+poolSize, len(sections))
		batch := sections[start:end]

		results := make([]fetchResult, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(poolSize)
		for i, section := range batch {
			g.Go(func() error {
				results[i] = f.fetchOne(gctx, i, section, minBytes, delays)
				return nil
			})
		}
		// Workers never return errors; per-item failures live in
		// their result slots.
		_ = g.Wait()
		if err := ctx.Err(); err != nil {
			return records, failed, err
		}

		for _, result := range results {
			completed++
			if result.err != nil {
				failed++
				f.report(docharvest.Event{
					Type:      docharvest.EventItemFailed,
					Phase:     PhaseFetch,
					Target:    target.Name,
					URL:       batch[result.position].FullURL,
					Filename:  batch[result.position].Filename,
					Completed: completed,
					Total:     total,
					Err:       result.err,
				})
				continue
			}

			records = append(records, result.record)
			eventType := docharvest.EventItemCompleted
			if result.record.Skipped {
				eventType = docharvest.EventItemSkipped
			}
			f.report(docharvest.Event{
				Type:      eventType,
				Phase:     PhaseFetch,
				Target:    target.Name,
				URL:       result.record.SourceURL,
				Filename:  result.record.Filename,
				Completed: completed,
				Total:     total,
			})
		}

		// Politeness pause between batches, not after the last one.
		if end < len(sections) && f.BatchDelay > 0 {
			select {
			case <-ctx.Done():
				return records, failed, ctx.Err()
			case <-time.After(f.BatchDelay):
			}
		}
	}

	return records, failed, nil
}

// fetchOne renders a single page and persists it unless the stored
// content hash already matches.
func (f *BatchFetcher) fetchOne(ctx context.Context, position int, section docharvest.Section, minBytes int, delays []time.Duration) fetchResult {
	result := fetchResult{position: position}

	if f.Limiter != nil {
		if u, err := url.Parse(section.FullURL); err == nil {
			if err := f.Limiter.Wait(ctx, u.Host); err != nil {
				result.err = err
				return result
			}
		}
	}

	html, err := FetchWithRetryDelays(ctx, section.FullURL, f.Fetcher.Fetch, delays)
	if err != nil {
		result.err = err
		return result
	}

	if len(html) < minBytes {
		result.err = docharvest.Errorf(docharvest.EINVALID,
			"content too short: %d bytes for %s", len(html), section.FullURL)
		return result
	}

	hash, skipped, err := f.Raw.Write(section.Filename, []byte(html))
	if err != nil {
		result.err = err
		return result
	}

	title := section.Title
	if title == "" {
		title = section.Text
	}

	result.record = docharvest.FetchRecord{
		Filename:    section.Filename,
		SourceURL:   section.FullURL,
		Title:       title,
		ByteSize:    len(html),
		ContentHash: hash,
		Skipped:     skipped,
	}
	return result
}

func (f *BatchFetcher) report(event docharvest.Event) {
	if f.Reporter != nil {
		f.Reporter.Report(event)
	}
}
