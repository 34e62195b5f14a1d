package fs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/docharvest"
)

// CatalogFile is the well-known catalog name inside the links root.
// One fixed path per target; the fetch and convert phases never
// guess at "the newest" catalog file.
const CatalogFile = "catalog.json"

// CatalogStore persists the discovered page references for one
// target as a JSON array under the links root.
type CatalogStore struct {
	dir string
}

// NewCatalogStore creates a CatalogStore rooted at dir.
func NewCatalogStore(dir string) *CatalogStore {
	return &CatalogStore{dir: dir}
}

// Path returns the catalog file path.
func (s *CatalogStore) Path() string {
	return filepath.Join(s.dir, CatalogFile)
}

// Write persists refs, creating the links root if needed.
func (s *CatalogStore) Write(refs []docharvest.PageReference) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating links root %s: %w", s.dir, err)
	}

	data, err := json.MarshalIndent(refs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}
	if err := os.WriteFile(s.Path(), data, 0o644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}

// Read loads the stored references. Returns ENOTFOUND when no
// catalog has been written yet; the fetch and convert phases treat
// that as fatal.
func (s *CatalogStore) Read() ([]docharvest.PageReference, error) {
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, docharvest.Errorf(docharvest.ENOTFOUND, "catalog not found at %s", s.Path())
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var refs []docharvest.PageReference
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, fmt.Errorf("unmarshaling catalog: %w", err)
	}
	return refs, nil
}
