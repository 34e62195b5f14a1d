package harvest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fwojciec/docharvest"
	"github.com/fwojciec/docharvest/fs"
)

// OverflowCategory collects documents whose path is too shallow to
// carry a category segment.
const OverflowCategory = "general"

// IndexBuilder scans all converted documents and regenerates the flat
// category index and the hierarchical table of contents. Both are
// rebuilt wholesale on every run; their cost is proportional to the
// already-materialized documents, not to network I/O.
type IndexBuilder struct {
	Docs   *fs.DocStore
	Filter docharvest.HeaderFilter
}

// IndexStats aggregates what the index builder saw.
type IndexStats struct {
	Documents  int
	Categories int
	Headers    int
	Words      int
}

// Build reads every stored document, writes INDEX.md and TOC.md into
// the documents root, and returns aggregate statistics.
func (b *IndexBuilder) Build() (*IndexStats, error) {
	names, err := b.Docs.List()
	if err != nil {
		return nil, err
	}

	docs := make([]*docharvest.Document, 0, len(names))
	for _, name := range names {
		doc, err := b.Docs.ReadDocument(name)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	stats := &IndexStats{Documents: len(docs)}

	index, categories := b.buildCategoryIndex(docs)
	stats.Categories = categories
	if err := b.Docs.WriteArtifact(fs.IndexFile, index); err != nil {
		return nil, err
	}

	toc := b.buildTOC(docs, stats)
	if err := b.Docs.WriteArtifact(fs.TOCFile, toc); err != nil {
		return nil, err
	}

	return stats, nil
}

// buildCategoryIndex groups documents by path-derived category and
// lists each document's title and excerpt under its category,
// alphabetically by category name.
func (b *IndexBuilder) buildCategoryIndex(docs []*docharvest.Document) (string, int) {
	groups := make(map[string][]*docharvest.Document)
	for _, doc := range docs {
		category := CategoryForPath(doc.Path)
		groups[category] = append(groups[category], doc)
	}

	categories := make([]string, 0, len(groups))
	for category := range groups {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var sb strings.Builder
	sb.WriteString("# Category Index\n")
	for _, category := range categories {
		sb.WriteString("\n## " + category + "\n\n")
		for _, doc := range groups[category] {
			sb.WriteString("- **" + doc.Title + "**")
			if doc.Excerpt != "" {
				sb.WriteString(" - " + doc.Excerpt)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String(), len(categories)
}

// buildTOC renders one section per document, sorted by filename, with
// the document's filtered headers as a nested list indented by level.
func (b *IndexBuilder) buildTOC(docs []*docharvest.Document, stats *IndexStats) string {
	var sb strings.Builder
	sb.WriteString("# Table of Contents\n")

	for _, doc := range docs {
		headers := docharvest.ExtractHeaders(doc.Body, b.Filter)
		stats.Headers += len(headers)
		stats.Words += doc.WordCount()

		sb.WriteString(fmt.Sprintf("\n## %s - %s (%d headers)\n", doc.Filename, doc.Title, len(headers)))
		if len(headers) > 0 {
			sb.WriteString("\n")
		}
		for _, header := range headers {
			sb.WriteString(strings.Repeat("  ", header.Level-1))
			sb.WriteString("- " + header.Text + "\n")
		}
	}

	sb.WriteString(fmt.Sprintf("\n---\n\nDocuments: %d | Headers: %d | Words: %d\n",
		stats.Documents, stats.Headers, stats.Words))
	return sb.String()
}

// CategoryForPath derives a document's index category from its
// logical path: the third path segment, or the overflow category for
// shallower paths.
func CategoryForPath(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return OverflowCategory
	}
	segments := strings.Split(trimmed, "/")
	if len(segments) < 3 {
		return OverflowCategory
	}
	return segments[2]
}
