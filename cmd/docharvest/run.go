package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fwojciec/docharvest"
	"github.com/fwojciec/docharvest/fs"
	"github.com/fwojciec/docharvest/goquery"
	"github.com/fwojciec/docharvest/harvest"
	"github.com/fwojciec/docharvest/htmltomarkdown"
	"github.com/fwojciec/docharvest/readability"
	"github.com/fwojciec/docharvest/trafilatura"
)

// Run harvests the selected targets sequentially. A target failure
// does not stop the remaining targets; any failure makes the overall
// run fail.
func (c *RunCmd) Run(deps *Dependencies) error {
	var errs []error
	for _, target := range deps.Targets {
		if err := c.runTarget(deps, target); err != nil {
			fmt.Fprintf(deps.Stdout, "Target %s failed: %v\n", target.Name, err)
			errs = append(errs, fmt.Errorf("%s: %w", target.Name, err))
		}
		if deps.Ctx.Err() != nil {
			return deps.Ctx.Err()
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d targets failed: %w", len(errs), len(deps.Targets), errors.Join(errs...))
	}
	return nil
}

func (c *RunCmd) runTarget(deps *Dependencies, target docharvest.Target) error {
	targetDir := filepath.Join(c.Out, target.Name)

	pipeline := &harvest.Pipeline{
		Target:     target,
		Fetcher:    deps.Fetcher,
		Links:      goquery.NewSidebarExtractor(target.NavSelectors...),
		Extractors: []docharvest.Extractor{trafilatura.NewExtractor(), readability.NewExtractor()},
		Converter:  htmltomarkdown.NewConverter(),
		Reporter:   deps.Reporter,

		Catalogs: fs.NewCatalogStore(filepath.Join(targetDir, "links")),
		Raw:      fs.NewRawStore(filepath.Join(targetDir, "raw-pages")),
		Docs:     fs.NewDocStore(filepath.Join(targetDir, "documents")),

		Limiter: harvest.NewDomainLimiter(1.0),

		Concurrency: c.Concurrency,
		BatchDelay:  c.BatchDelay,
		CleanFirst:  c.Clean,
	}

	var runID string
	if deps.Ledger != nil {
		id, err := deps.Ledger.CreateRun(deps.Ctx, target.Name)
		if err != nil {
			return fmt.Errorf("failed to create run record: %w", err)
		}
		runID = id
		pipeline.OnFetchRecords = func(ctx context.Context, records []docharvest.FetchRecord) error {
			return deps.Ledger.RecordFetches(ctx, runID, records)
		}
	}

	summary, runErr := pipeline.Run(deps.Ctx)

	if deps.Ledger != nil {
		if err := deps.Ledger.FinishRun(deps.Ctx, runID, summary, runErr); err != nil {
			fmt.Fprintf(deps.Stderr, "Warning: failed to record run outcome: %v\n", err)
		}
	}

	if runErr != nil {
		return runErr
	}

	printSummary(deps.Stdout, summary)
	return nil
}

func printSummary(w io.Writer, s *harvest.Summary) {
	fmt.Fprintf(w, "Target %s: %d pages discovered\n", s.Target, s.Discovered)
	fmt.Fprintf(w, "  Fetched:   %d new, %d unchanged, %d failed\n", s.Fetched, s.FetchSkipped, s.FetchFailed)
	fmt.Fprintf(w, "  Converted: %d new, %d unchanged, %d failed\n", s.Converted, s.ConvertSkipped, s.ConvertFailed)
	fmt.Fprintf(w, "  Indexed:   %d documents, %d categories, %d headers, %d words\n",
		s.Documents, s.Categories, s.Headers, s.Words)
}
