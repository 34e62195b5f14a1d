// Package harvest orchestrates the documentation-harvesting pipeline.
// It coordinates sidebar link discovery, classification, concurrent
// content-addressed fetching, markdown conversion, and index
// generation for one target at a time.
package harvest

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/docharvest"
	"github.com/fwojciec/docharvest/fs"
)

// Pipeline phase names, in execution order.
const (
	PhaseDiscover = "discover"
	PhaseClassify = "classify"
	PhaseFetch    = "fetch"
	PhaseConvert  = "convert"
	PhaseIndex    = "index"
)

// Summary is the outcome of one pipeline run. Nonzero failure counts
// are degraded success, not an error; a phase-level error means the
// run was halted.
type Summary struct {
	Target string

	Discovered int

	Fetched      int
	FetchSkipped int
	FetchFailed  int

	Converted      int
	ConvertSkipped int
	ConvertFailed  int

	Documents  int
	Categories int
	Headers    int
	Words      int
}

// Pipeline runs the five harvest phases strictly in order; a phase
// only starts after its predecessor completes. A phase-level fatal
// error halts the remaining phases; partial outputs from completed
// phases are left in place.
type Pipeline struct {
	Target     docharvest.Target
	Fetcher    docharvest.Fetcher
	Links      docharvest.LinkExtractor
	Extractors []docharvest.Extractor
	Converter  docharvest.Converter
	Reporter   docharvest.Reporter

	Catalogs *fs.CatalogStore
	Raw      *fs.RawStore
	Docs     *fs.DocStore

	Limiter *DomainLimiter

	// Concurrency is the fetch worker pool size (and batch size).
	Concurrency int

	// BatchDelay is the politeness pause between fetch batches.
	BatchDelay time.Duration

	// RetryDelays configures per-item fetch retries.
	RetryDelays []time.Duration

	// MinContentBytes rejects implausibly small rendered content.
	MinContentBytes int

	// CleanFirst wipes the raw and document stores before discovery.
	CleanFirst bool

	// OnFetchRecords, when set, receives the fetch phase's successful
	// records once the phase drains (e.g. to persist them in a run
	// ledger).
	OnFetchRecords func(ctx context.Context, records []docharvest.FetchRecord) error
}

// Run executes the pipeline for the configured target.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{Target: p.Target.Name}

	if p.CleanFirst {
		if err := p.Raw.Clean(); err != nil {
			return summary, err
		}
		if err := p.Docs.Clean(); err != nil {
			return summary, err
		}
	}
	if err := p.Raw.Init(); err != nil {
		return summary, err
	}
	if err := p.Docs.Init(); err != nil {
		return summary, err
	}

	// Phase 1: discover.
	p.phaseStarted(PhaseDiscover, 0)
	discoverer := &Discoverer{Fetcher: p.Fetcher, Links: p.Links, Reporter: p.Reporter}
	refs, err := discoverer.Discover(ctx, p.Target)
	if err != nil {
		return summary, fmt.Errorf("discover: %w", err)
	}
	if err := p.Catalogs.Write(refs); err != nil {
		return summary, fmt.Errorf("discover: %w", err)
	}
	summary.Discovered = len(refs)
	p.phaseCompleted(PhaseDiscover, len(refs))

	// Phase 2: classify. The catalog is read back from its well-known
	// path, which is what the fetch and convert phases consume; a
	// missing catalog here is fatal.
	p.phaseStarted(PhaseClassify, 0)
	stored, err := p.Catalogs.Read()
	if err != nil {
		return summary, fmt.Errorf("classify: %w", err)
	}
	catalog := docharvest.Classify(stored, p.Target.Classify)
	sections := catalog.Sections()
	p.phaseCompleted(PhaseClassify, len(sections))

	// Phase 3: fetch.
	p.phaseStarted(PhaseFetch, len(sections))
	fetcher := &BatchFetcher{
		Fetcher:         p.Fetcher,
		Raw:             p.Raw,
		Limiter:         p.Limiter,
		Reporter:        p.Reporter,
		PoolSize:        p.Concurrency,
		BatchDelay:      p.BatchDelay,
		RetryDelays:     p.RetryDelays,
		MinContentBytes: p.MinContentBytes,
	}
	fetchRecords, fetchFailed, err := fetcher.FetchAll(ctx, p.Target, sections)
	if err != nil {
		return summary, fmt.Errorf("fetch: %w", err)
	}
	summary.FetchFailed = fetchFailed
	for _, record := range fetchRecords {
		if record.Skipped {
			summary.FetchSkipped++
		} else {
			summary.Fetched++
		}
	}
	if p.OnFetchRecords != nil {
		if err := p.OnFetchRecords(ctx, fetchRecords); err != nil {
			return summary, fmt.Errorf("fetch: recording: %w", err)
		}
	}
	p.phaseCompleted(PhaseFetch, len(fetchRecords))

	// Phase 4: convert.
	p.phaseStarted(PhaseConvert, len(sections))
	converter := &DocConverter{
		Raw:        p.Raw,
		Docs:       p.Docs,
		Extractors: p.Extractors,
		Converter:  p.Converter,
		Reporter:   p.Reporter,
	}
	convertRecords, convertFailed, err := converter.ConvertAll(ctx, p.Target, sections)
	if err != nil {
		return summary, fmt.Errorf("convert: %w", err)
	}
	summary.ConvertFailed = convertFailed
	for _, record := range convertRecords {
		if record.Skipped {
			summary.ConvertSkipped++
		} else {
			summary.Converted++
		}
	}
	p.phaseCompleted(PhaseConvert, len(convertRecords))

	// Phase 5: index.
	p.phaseStarted(PhaseIndex, 0)
	builder := &IndexBuilder{Docs: p.Docs, Filter: docharvest.DefaultHeaderFilter()}
	stats, err := builder.Build()
	if err != nil {
		return summary, fmt.Errorf("index: %w", err)
	}
	summary.Documents = stats.Documents
	summary.Categories = stats.Categories
	summary.Headers = stats.Headers
	summary.Words = stats.Words
	p.phaseCompleted(PhaseIndex, stats.Documents)

	return summary, nil
}

func (p *Pipeline) phaseStarted(phase string, total int) {
	if p.Reporter != nil {
		p.Reporter.Report(docharvest.Event{
			Type:   docharvest.EventPhaseStarted,
			Phase:  phase,
			Target: p.Target.Name,
			Total:  total,
		})
	}
}

func (p *Pipeline) phaseCompleted(phase string, completed int) {
	if p.Reporter != nil {
		p.Reporter.Report(docharvest.Event{
			Type:      docharvest.EventPhaseCompleted,
			Phase:     phase,
			Target:    p.Target.Name,
			Completed: completed,
		})
	}
}
