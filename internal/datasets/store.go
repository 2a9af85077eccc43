package datasets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/raccoonWhisperer/civicsentinel-server/internal/cache"
	"github.com/raccoonWhisperer/civicsentinel-server/internal/model"
)

// Snapshot is one government-dataset JSON file as written by the scraper:
// filtered records plus counts for the unfiltered statewide set
type Snapshot struct {
	Records         []map[string]any `json:"records"`
	LastUpdated     string           `json:"last_updated"`
	TotalCount      int              `json:"total_count"`
	AllStateRecords int              `json:"all_state_records"`
}

// SearchHit is one record matched by a keyword search
type SearchHit struct {
	File   string         `json:"file"`
	Record map[string]any `json:"record"`
}

// Store serves dataset snapshots from a data directory. Snapshot reads go
// through a TTL cache so repeated queries do not re-read disk.
type Store struct {
	dir   string
	cache cache.Cache
	cfg   model.DatasetsConfig
}

// NewStore creates a snapshot store over the configured data directory
func NewStore(cfg model.DatasetsConfig) *Store {
	return &Store{
		dir:   cfg.Dir,
		cache: cache.NewMemoryCache(cfg.CacheTTL, 2*cfg.CacheTTL),
		cfg:   cfg,
	}
}

// List returns the names of the available snapshots, sorted
func (s *Store) List() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(m), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Get loads one snapshot by name
func (s *Store) Get(name string) (*Snapshot, error) {
	if name != filepath.Base(name) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("invalid snapshot name: %q", name)
	}

	data, err := s.read(name)
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", name, err)
	}
	return &snap, nil
}

// Search returns every record, across all snapshots, whose serialized form
// contains the keyword (case-insensitive)
func (s *Store) Search(keyword string) ([]SearchHit, error) {
	names, err := s.List()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(keyword)
	hits := []SearchHit{}
	for _, name := range names {
		snap, err := s.Get(name)
		if err != nil {
			continue
		}
		for _, rec := range snap.Records {
			serialized, err := json.Marshal(rec)
			if err != nil {
				continue
			}
			if strings.Contains(strings.ToLower(string(serialized)), needle) {
				hits = append(hits, SearchHit{File: name + ".json", Record: rec})
			}
		}
	}
	return hits, nil
}

// read returns the raw snapshot bytes, caching them under the store TTL
func (s *Store) read(name string) ([]byte, error) {
	key := cache.Key("dataset:" + name)
	if data, found := s.cache.Get(key); found {
		return data, nil
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name+".json"))
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", name, err)
	}

	_ = s.cache.Set(key, data, s.cfg.CacheTTL)
	return data, nil
}

// Invalidate drops a snapshot from the cache (used after a refresh)
func (s *Store) Invalidate(name string) {
	_ = s.cache.Delete(cache.Key("dataset:" + name))
}
