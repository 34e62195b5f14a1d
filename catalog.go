package docharvest

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// OverflowChapterName is the name of the sentinel chapter that
// collects references whose href matches no configured prefix.
const OverflowChapterName = "Other"

// PriorityUnmatched marks a section whose reference matched no
// priority keyword. Unmatched sections sort after all matched ones.
const PriorityUnmatched = -1

// Chapter identifies a group of related pages.
type Chapter struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// Section is a page reference annotated with its in-chapter ordering
// priority and the canonical filename assigned during classification.
type Section struct {
	PageReference
	Priority int    `json:"priority"`
	Filename string `json:"filename"`
}

// ChapterGroup holds a chapter and its ordered sections.
type ChapterGroup struct {
	Info     Chapter   `json:"info"`
	Sections []Section `json:"sections"`
}

// Catalog is the classified, chaptered view of all page references
// for one run, keyed by chapter number. It is rebuilt from scratch on
// every pipeline invocation so that filenames stay stable across runs.
type Catalog map[int]*ChapterGroup

// ClassifyConfig holds the per-target mapping tables that drive
// classification. One instance per target; never shared mutable state.
type ClassifyConfig struct {
	// Chapters maps an href prefix to a chapter. The longest matching
	// prefix wins. References matching no prefix fall into the
	// overflow chapter.
	Chapters map[string]Chapter `yaml:"chapters"`

	// Priorities maps a keyword to an ordering priority. The lowest
	// priority among keywords contained in the reference's href or
	// display text wins.
	Priorities map[string]int `yaml:"priorities"`
}

// Classify assigns each reference a chapter and an in-chapter
// priority, sorts sections within each chapter, and assigns canonical
// filenames. It is a pure function of its inputs: identical reference
// sets and mapping tables always produce identical catalogs, which is
// what keeps content-hash deduplication meaningful across runs.
func Classify(refs []PageReference, cfg ClassifyConfig) Catalog {
	overflow := overflowChapter(cfg.Chapters)

	catalog := make(Catalog)
	for _, ref := range refs {
		ch, ok := matchChapter(ref.Href, cfg.Chapters)
		if !ok {
			ch = overflow
		}

		group := catalog[ch.Number]
		if group == nil {
			group = &ChapterGroup{Info: ch}
			catalog[ch.Number] = group
		}
		group.Sections = append(group.Sections, Section{
			PageReference: ref,
			Priority:      matchPriority(ref, cfg.Priorities),
		})
	}

	for _, group := range catalog {
		sortSections(group.Sections)
		for i := range group.Sections {
			group.Sections[i].Filename = CanonicalFilename(group.Info.Number, i+1, group.Sections[i].Text)
		}
	}

	return catalog
}

// ChapterNumbers returns the catalog's chapter numbers in ascending order.
func (c Catalog) ChapterNumbers() []int {
	numbers := make([]int, 0, len(c))
	for n := range c {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

// Filename returns the canonical filename assigned to ref, or false
// if the reference is not part of the catalog.
func (c Catalog) Filename(ref PageReference) (string, bool) {
	for _, group := range c {
		for _, section := range group.Sections {
			if section.Key() == ref.Key() {
				return section.Filename, true
			}
		}
	}
	return "", false
}

// Sections returns all sections in catalog order: chapters ascending,
// sections in their assigned in-chapter order.
func (c Catalog) Sections() []Section {
	var sections []Section
	for _, n := range c.ChapterNumbers() {
		sections = append(sections, c[n].Sections...)
	}
	return sections
}

// CanonicalFilename derives the deterministic base filename for a
// page: "{chapter:02d}-{section:02d}-{slug}". For a fixed catalog the
// mapping from reference to filename is pure and injective; a
// collision indicates a broken mapping table, not a runtime condition.
func CanonicalFilename(chapter, section int, text string) string {
	return fmt.Sprintf("%02d-%02d-%s", chapter, section, Slug(text))
}

// Slug converts display text into a filename-safe slug: lowercase,
// non-alphanumerics stripped, whitespace and hyphen runs collapsed to
// a single hyphen.
func Slug(text string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}

// matchChapter finds the chapter whose prefix is the longest match
// for href.
func matchChapter(href string, chapters map[string]Chapter) (Chapter, bool) {
	var best string
	var found bool
	for prefix := range chapters {
		if strings.HasPrefix(href, prefix) && len(prefix) > len(best) {
			best = prefix
			found = true
		}
	}
	if !found {
		return Chapter{}, false
	}
	return chapters[best], true
}

// overflowChapter derives the sentinel chapter for unmapped
// references: one number above the highest configured chapter.
func overflowChapter(chapters map[string]Chapter) Chapter {
	max := 0
	for _, ch := range chapters {
		if ch.Number > max {
			max = ch.Number
		}
	}
	return Chapter{Number: max + 1, Name: OverflowChapterName}
}

// matchPriority returns the lowest priority among keywords contained
// in the reference's href or display text, or PriorityUnmatched when
// no keyword matches.
func matchPriority(ref PageReference, priorities map[string]int) int {
	href := strings.ToLower(ref.Href)
	text := strings.ToLower(ref.Text)

	best := PriorityUnmatched
	for keyword, priority := range priorities {
		kw := strings.ToLower(keyword)
		if !strings.Contains(href, kw) && !strings.Contains(text, kw) {
			continue
		}
		if best == PriorityUnmatched || priority < best {
			best = priority
		}
	}
	return best
}

// sortSections orders sections within a chapter: matched sections by
// (priority, display text), then all unmatched sections by display
// text.
func sortSections(sections []Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		a, b := sections[i], sections[j]
		am, bm := a.Priority != PriorityUnmatched, b.Priority != PriorityUnmatched
		if am != bm {
			return am
		}
		if am && a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.Text < b.Text
	})
}
