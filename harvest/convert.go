package harvest

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docharvest"
	"github.com/fwojciec/docharvest/fs"
)

// ExcerptLen is the maximum excerpt length stored in frontmatter.
const ExcerptLen = 200

// DocConverter transforms stored raw documents into clean markdown
// documents with frontmatter, skipping work when the raw source has
// not changed since the last conversion.
type DocConverter struct {
	Raw        *fs.RawStore
	Docs       *fs.DocStore
	Extractors []docharvest.Extractor
	Converter  docharvest.Converter
	Reporter   docharvest.Reporter
}

// ConvertAll converts the raw document of every section that has one.
// Sections without a stored raw document (their fetch failed) are
// passed over without counting as conversion failures. Extraction
// failures are reported, counted, and excluded from the returned
// records.
func (c *DocConverter) ConvertAll(ctx context.Context, target docharvest.Target, sections []docharvest.Section) ([]docharvest.ConvertRecord, int, error) {
	var records []docharvest.ConvertRecord
	var failed int
	completed := 0
	total := len(sections)

	for _, section := range sections {
		if err := ctx.Err(); err != nil {
			return records, failed, err
		}
		completed++

		rawMtime, ok := c.Raw.ModTime(section.Filename)
		if !ok {
			continue
		}

		record, err := c.convertOne(section, rawMtime)
		if err != nil {
			failed++
			c.report(docharvest.Event{
				Type:      docharvest.EventItemFailed,
				Phase:     PhaseConvert,
				Target:    target.Name,
				URL:       section.FullURL,
				Filename:  section.Filename,
				Completed: completed,
				Total:     total,
				Err:       err,
			})
			continue
		}

		records = append(records, record)
		eventType := docharvest.EventItemCompleted
		if record.Skipped {
			eventType = docharvest.EventItemSkipped
		}
		c.report(docharvest.Event{
			Type:      eventType,
			Phase:     PhaseConvert,
			Target:    target.Name,
			URL:       section.FullURL,
			Filename:  section.Filename,
			Completed: completed,
			Total:     total,
		})
	}

	return records, failed, nil
}

// convertOne converts one raw document, or reconstructs a lightweight
// record from the existing artifact when the raw source is not newer.
func (c *DocConverter) convertOne(section docharvest.Section, rawMtime time.Time) (docharvest.ConvertRecord, error) {
	if docMtime, ok := c.Docs.ModTime(section.Filename); ok && !docMtime.Before(rawMtime) {
		existing, err := c.Docs.ReadDocument(section.Filename)
		if err != nil {
			return docharvest.ConvertRecord{}, err
		}
		return docharvest.ConvertRecord{
			Filename: section.Filename,
			Title:    existing.Title,
			Words:    existing.WordCount(),
			Skipped:  true,
		}, nil
	}

	rawHTML, err := c.Raw.Read(section.Filename)
	if err != nil {
		return docharvest.ConvertRecord{}, err
	}

	extracted, err := c.extract(string(rawHTML))
	if err != nil {
		return docharvest.ConvertRecord{}, err
	}

	markdown, err := c.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return docharvest.ConvertRecord{}, err
	}

	title := extracted.Title
	if title == "" {
		title = section.Title
	}
	if title == "" {
		title = section.Text
	}

	doc := &docharvest.Document{
		Filename:    section.Filename,
		Title:       title,
		SourceURL:   section.FullURL,
		Path:        section.Href,
		Excerpt:     docharvest.MakeExcerpt(markdown, ExcerptLen),
		Length:      len(markdown),
		ContentHash: hashMarkdown(markdown),
		ConvertedAt: time.Now().UTC(),
		Body:        markdown,
	}

	if err := c.Docs.WriteDocument(doc); err != nil {
		return docharvest.ConvertRecord{}, err
	}

	return docharvest.ConvertRecord{
		Filename: section.Filename,
		Title:    title,
		Words:    doc.WordCount(),
	}, nil
}

// extract runs the extractor chain and returns the first result with
// content. When every extractor comes up empty the page's markup has
// deviated from the expected article shape; the caller records that
// as a per-item failure.
func (c *DocConverter) extract(html string) (*docharvest.ExtractResult, error) {
	var lastErr error
	for _, extractor := range c.Extractors {
		result, err := extractor.Extract(html)
		if err != nil {
			lastErr = err
			continue
		}
		if result.ContentHTML != "" {
			return result, nil
		}
		lastErr = docharvest.Errorf(docharvest.ENOTFOUND, "no readable content region")
	}
	if lastErr == nil {
		lastErr = docharvest.Errorf(docharvest.EINTERNAL, "no extractors configured")
	}
	return nil, lastErr
}

func (c *DocConverter) report(event docharvest.Event) {
	if c.Reporter != nil {
		c.Reporter.Report(event)
	}
}

// hashMarkdown computes a fast (non-cryptographic) content hash of
// the markdown body for the run ledger.
func hashMarkdown(markdown string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(markdown))
	return hex.EncodeToString(b[:])
}
