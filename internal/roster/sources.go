package roster

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rubika-tools/aocomp/internal/aodb"
	"github.com/rubika-tools/aocomp/internal/game/item"
)

// Source yields the candidate items for a roster build.
type Source interface {
	Fetch(ctx context.Context) ([]*item.Item, error)
}

// APISource fetches every item matching a search query from the remote
// item database.
type APISource struct {
	client *aodb.Client
	query  aodb.ItemQuery
}

// NewAPISource creates an APISource.
// Precondition: client must be non-nil.
func NewAPISource(client *aodb.Client, query aodb.ItemQuery) *APISource {
	return &APISource{client: client, query: query}
}

// Fetch returns all items matching the source query.
func (s *APISource) Fetch(ctx context.Context) ([]*item.Item, error) {
	return s.client.SearchItemsAll(ctx, s.query)
}

// DirSource loads item documents from a local directory of YAML files, one
// item per file.
type DirSource struct {
	dir string
}

// NewDirSource creates a DirSource over dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Fetch reads all *.yaml files from the source directory, parses each as an
// item, validates it, and returns the collected slice.
// Precondition: the source directory must be readable.
// Postcondition: returns all valid items or the first encountered error.
func (s *DirSource) Fetch(_ context.Context) ([]*item.Item, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("roster: cannot read directory %q: %w", s.dir, err)
	}

	var items []*item.Item
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("roster: cannot read file %q: %w", path, err)
		}
		var it item.Item
		if err := yaml.Unmarshal(data, &it); err != nil {
			return nil, fmt.Errorf("roster: cannot parse file %q: %w", path, err)
		}
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("roster: invalid item in %q: %w", path, err)
		}
		items = append(items, &it)
	}
	return items, nil
}
