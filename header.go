package docharvest

import (
	"regexp"
	"strings"
)

// HeaderEntry is one structural heading extracted from a document body.
type HeaderEntry struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// DefaultMetaLabels are heading texts that annotate content rather
// than structure it (admonition labels and similar) and are excluded
// from the table of contents.
var DefaultMetaLabels = []string{
	"note", "warning", "tip", "caution", "info", "important",
	"deprecated", "pitfall",
}

// DefaultMinHeaderLen is the minimum heading text length for
// inclusion in the table of contents.
const DefaultMinHeaderLen = 3

// HeaderFilter controls which extracted headings survive filtering.
type HeaderFilter struct {
	// MetaLabels are excluded case-insensitively by exact match.
	MetaLabels []string

	// MinLen excludes headings with shorter text.
	MinLen int
}

// DefaultHeaderFilter returns the filter used by the index builder.
func DefaultHeaderFilter() HeaderFilter {
	return HeaderFilter{
		MetaLabels: DefaultMetaLabels,
		MinLen:     DefaultMinHeaderLen,
	}
}

var headingRe = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)

var codeBlockRe = regexp.MustCompile("(?s)```.*?```")

// ExtractHeaders parses markdown and returns all headings (H1-H6)
// that pass the filter, in source order. Fenced code blocks are
// removed first so that # inside code is not mistaken for a heading.
func ExtractHeaders(markdown string, filter HeaderFilter) []HeaderEntry {
	if markdown == "" {
		return nil
	}

	cleaned := codeBlockRe.ReplaceAllString(markdown, "")
	matches := headingRe.FindAllStringSubmatch(cleaned, -1)
	if len(matches) == 0 {
		return nil
	}

	denied := make(map[string]bool, len(filter.MetaLabels))
	for _, label := range filter.MetaLabels {
		denied[strings.ToLower(label)] = true
	}

	var headers []HeaderEntry
	for _, match := range matches {
		text := strings.TrimSpace(match[2])
		if len(text) < filter.MinLen {
			continue
		}
		if denied[strings.ToLower(text)] {
			continue
		}
		headers = append(headers, HeaderEntry{
			Level: len(match[1]),
			Text:  text,
		})
	}

	return headers
}
