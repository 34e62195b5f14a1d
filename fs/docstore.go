package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fwojciec/docharvest"
	"gopkg.in/yaml.v3"
)

// DocExt is the extension for converted documents.
const DocExt = ".md"

// Index artifact names written into the documents root.
const (
	IndexFile = "INDEX.md"
	TOCFile   = "TOC.md"
)

const frontmatterDelim = "---\n"

// frontmatter is the YAML metadata block at the top of every
// converted document.
type frontmatter struct {
	Title       string `yaml:"title"`
	URL         string `yaml:"url"`
	Path        string `yaml:"path"`
	Excerpt     string `yaml:"excerpt"`
	Length      int    `yaml:"length"`
	ContentHash string `yaml:"contentHash,omitempty"`
	ConvertedAt string `yaml:"convertedAt"`
}

// DocStore persists converted markdown documents under a documents
// root, one file per page named by its canonical filename. The same
// root also holds the generated index artifacts.
type DocStore struct {
	dir string
}

// NewDocStore creates a DocStore rooted at dir.
func NewDocStore(dir string) *DocStore {
	return &DocStore{dir: dir}
}

// Dir returns the store's root directory.
func (s *DocStore) Dir() string {
	return s.dir
}

// Init creates the store directory if needed.
func (s *DocStore) Init() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating document store %s: %w", s.dir, err)
	}
	return nil
}

// Path returns the on-disk path for a canonical filename.
func (s *DocStore) Path(filename string) string {
	return filepath.Join(s.dir, filename+DocExt)
}

// WriteDocument formats doc with YAML frontmatter and writes it.
func (s *DocStore) WriteDocument(doc *docharvest.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	content, err := FormatDocument(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.Path(doc.Filename), []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing document %s: %w", doc.Filename, err)
	}
	return nil
}

// ReadDocument reads a stored document back, parsing its frontmatter.
func (s *DocStore) ReadDocument(filename string) (*docharvest.Document, error) {
	raw, err := os.ReadFile(s.Path(filename))
	if err != nil {
		return nil, err
	}

	doc, err := ParseDocument(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing document %s: %w", filename, err)
	}
	doc.Filename = filename
	return doc, nil
}

// ModTime returns the stored document's modification time, or
// ok=false when no document exists for filename.
func (s *DocStore) ModTime(filename string) (mtime time.Time, ok bool) {
	info, err := os.Stat(s.Path(filename))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// List returns the canonical filenames of all stored documents,
// sorted, excluding the generated index artifacts.
func (s *DocStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, DocExt) {
			continue
		}
		if name == IndexFile || name == TOCFile {
			continue
		}
		names = append(names, strings.TrimSuffix(name, DocExt))
	}
	sort.Strings(names)
	return names, nil
}

// WriteArtifact writes a generated index artifact (INDEX.md, TOC.md)
// into the documents root.
func (s *DocStore) WriteArtifact(name, content string) error {
	if err := os.WriteFile(filepath.Join(s.dir, name), []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// Clean removes the store directory and everything in it, then
// recreates it empty.
func (s *DocStore) Clean() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("cleaning document store %s: %w", s.dir, err)
	}
	return s.Init()
}

// FormatDocument renders a document as YAML frontmatter followed by
// the markdown body.
func FormatDocument(doc *docharvest.Document) (string, error) {
	fm := frontmatter{
		Title:       doc.Title,
		URL:         doc.SourceURL,
		Path:        doc.Path,
		Excerpt:     doc.Excerpt,
		Length:      doc.Length,
		ContentHash: doc.ContentHash,
		ConvertedAt: doc.ConvertedAt.UTC().Format(time.RFC3339),
	}

	meta, err := yaml.Marshal(&fm)
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString(frontmatterDelim)
	b.Write(meta)
	b.WriteString(frontmatterDelim)
	b.WriteString("\n")
	b.WriteString(doc.Body)
	return b.String(), nil
}

// ParseDocument splits a stored file into frontmatter and body.
func ParseDocument(raw string) (*docharvest.Document, error) {
	rest, ok := strings.CutPrefix(raw, frontmatterDelim)
	if !ok {
		return nil, docharvest.Errorf(docharvest.EINVALID, "missing frontmatter")
	}

	meta, body, ok := strings.Cut(rest, frontmatterDelim)
	if !ok {
		return nil, docharvest.Errorf(docharvest.EINVALID, "unterminated frontmatter")
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
		return nil, fmt.Errorf("unmarshaling frontmatter: %w", err)
	}

	doc := &docharvest.Document{
		Title:       fm.Title,
		SourceURL:   fm.URL,
		Path:        fm.Path,
		Excerpt:     fm.Excerpt,
		Length:      fm.Length,
		ContentHash: fm.ContentHash,
		Body:        strings.TrimPrefix(body, "\n"),
	}
	if fm.ConvertedAt != "" {
		t, err := time.Parse(time.RFC3339, fm.ConvertedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing convertedAt: %w", err)
		}
		doc.ConvertedAt = t
	}
	return doc, nil
}
