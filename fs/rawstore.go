// Package fs provides file-based storage for the harvest pipeline:
// the raw-pages store, the converted documents store, and the
// discovery catalog.
package fs

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// RawExt is the extension for stored raw documents.
const RawExt = ".html"

// HashBytes returns the hex-encoded sha256 digest of b. The digest is
// what makes re-runs cheap: content is only rewritten when the digest
// of a fresh fetch differs from the stored one.
func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// RawStore persists as-rendered page markup under a raw-pages root,
// one file per page named by its canonical filename.
type RawStore struct {
	dir string
}

// NewRawStore creates a RawStore rooted at dir.
func NewRawStore(dir string) *RawStore {
	return &RawStore{dir: dir}
}

// Dir returns the store's root directory.
func (s *RawStore) Dir() string {
	return s.dir
}

// Init creates the store directory if needed.
func (s *RawStore) Init() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating raw store %s: %w", s.dir, err)
	}
	return nil
}

// Path returns the on-disk path for a canonical filename.
func (s *RawStore) Path(filename string) string {
	return filepath.Join(s.dir, filename+RawExt)
}

// Write persists content under filename unless the stored file's
// content hash already equals the hash of content. It returns the
// content hash and whether the write was skipped.
func (s *RawStore) Write(filename string, content []byte) (hash string, skipped bool, err error) {
	hash = HashBytes(content)

	existing, err := os.ReadFile(s.Path(filename))
	if err == nil && HashBytes(existing) == hash {
		return hash, true, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", false, fmt.Errorf("reading stored raw document: %w", err)
	}

	if err := os.WriteFile(s.Path(filename), content, 0o644); err != nil {
		return "", false, fmt.Errorf("writing raw document: %w", err)
	}
	return hash, false, nil
}

// Read returns the stored raw content for filename.
func (s *RawStore) Read(filename string) ([]byte, error) {
	return os.ReadFile(s.Path(filename))
}

// ModTime returns the stored file's modification time, or ok=false
// when no raw document exists for filename.
func (s *RawStore) ModTime(filename string) (mtime time.Time, ok bool) {
	info, err := os.Stat(s.Path(filename))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// List returns the canonical filenames of all stored raw documents,
// sorted.
func (s *RawStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), RawExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), RawExt))
	}
	sort.Strings(names)
	return names, nil
}

// Clean removes the store directory and everything in it, then
// recreates it empty.
func (s *RawStore) Clean() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("cleaning raw store %s: %w", s.dir, err)
	}
	return s.Init()
}
