package published

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DateLayout is the format of stored publish dates
const DateLayout = "2006-01-02"

// Store remembers the first date each page was generated.
// Entries are never overwritten once present.
type Store struct {
	dates map[string]string
}

// New returns an empty store
func New() *Store {
	return &Store{dates: make(map[string]string)}
}

// Load reads outputs/published_dates.json.
// A missing file yields an empty store and no error. An unreadable or
// corrupt file yields an empty store and the error, so the run can go on
// with a fresh registry.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return New(), fmt.Errorf("failed to read published dates: %w", err)
	}

	var dates map[string]string
	if err := json.Unmarshal(data, &dates); err != nil {
		return New(), fmt.Errorf("published dates file is corrupt: %w", err)
	}
	if dates == nil {
		dates = make(map[string]string)
	}

	return &Store{dates: dates}, nil
}

// Publish records today as the publish date of key unless one exists,
// and returns the stored date.
func (s *Store) Publish(key, today string) string {
	if d, ok := s.dates[key]; ok {
		return d
	}
	s.dates[key] = today
	return today
}

// Get returns the publish date of key
func (s *Store) Get(key string) (string, bool) {
	d, ok := s.dates[key]
	return d, ok
}

// Len is the number of known pages
func (s *Store) Len() int {
	return len(s.dates)
}

// Clone returns an independent copy
func (s *Store) Clone() *Store {
	c := New()
	for k, v := range s.dates {
		c.dates[k] = v
	}
	return c
}

// Save writes the registry as indented JSON with sorted keys.
func (s *Store) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create registry directory: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(s.dates); err != nil {
		return fmt.Errorf("failed to serialize published dates: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write published dates: %w", err)
	}

	return nil
}
