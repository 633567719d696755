// Package history persists the bounded, most-recent-first clipboard history
// as a single JSON document.
//
// Concurrency: Get, Search and Find take the read lock and may run together.
// Add takes the write lock for the whole mutation including the disk write,
// so a slow disk stalls readers until the write finishes or fails.
//
// Separate processes (the monitor daemon and one-shot commands) each hold
// their own in-memory copy; the file is the only thing they share.
package history

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hpungsan/clipmesh/internal/clip"
	"github.com/hpungsan/clipmesh/internal/errors"
)

const (
	// MaxItems is the retention cap. Oldest items are evicted past it.
	MaxItems = 1000

	// FileName is the history document's name inside the base directory.
	FileName = "clipboard_history.json"
)

// Document is the persisted shape of the history file.
type Document struct {
	Items       []clip.Item `json:"items"`
	LastUpdated time.Time   `json:"last_updated"`
}

// Store is the in-memory history backed by one JSON file.
type Store struct {
	path string
	now  func() time.Time

	mu  sync.RWMutex
	doc Document
}

// PathIn returns the history file path inside baseDir.
func PathIn(baseDir string) string {
	return filepath.Join(baseDir, FileName)
}

// Open loads the history at path, creating its directory if needed.
// A missing file yields an empty history. A file that exists but cannot be
// parsed is a CORRUPT_HISTORY error; there is no recovery path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	// Best-effort, may not work on all platforms
	_ = os.Chmod(dir, 0700)

	s := &Store{
		path: path,
		now:  func() time.Time { return time.Now().UTC() },
	}

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	s.doc = doc
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// load reads and validates the document on disk.
func (s *Store) load() (Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return Document{Items: []clip.Item{}, LastUpdated: s.now()}, nil
		}
		return Document{}, errors.NewInternal(fmt.Errorf("read history: %w", err))
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return Document{}, errors.NewCorruptHistory(s.path, err)
	}
	return doc, nil
}

// Add prepends item, evicts past MaxItems, stamps last_updated and rewrites
// the file. The in-memory history is updated before the write, so a failed
// write leaves memory ahead of disk until the next successful Add.
// An item that could not be loaded back is rejected before any mutation.
func (s *Store) Add(item clip.Item) error {
	if err := validateItem(item); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.doc.Items {
		if existing.ID == item.ID {
			return errors.NewConflict(fmt.Sprintf("item %s already exists", item.ID))
		}
	}

	s.doc.Items = slices.Insert(s.doc.Items, 0, item.Clone())
	if len(s.doc.Items) > MaxItems {
		clear(s.doc.Items[MaxItems:])
		s.doc.Items = s.doc.Items[:MaxItems]
	}
	s.doc.LastUpdated = s.now()

	if err := writeAtomic(s.path, s.doc); err != nil {
		return errors.NewInternal(fmt.Errorf("persist history: %w", err))
	}
	return nil
}

// validateItem rejects an item that would not survive a reload of the file.
func validateItem(item clip.Item) error {
	data, err := json.Marshal(item)
	if err == nil {
		var back clip.Item
		err = json.Unmarshal(data, &back)
	}
	if err != nil {
		return errors.NewInvalidRequest(fmt.Sprintf("item %q cannot be stored: %v", item.ID, err))
	}
	return nil
}

// Get returns up to limit items, most recent first. limit <= 0 returns all.
func (s *Store) Get(limit int) []clip.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.doc.Items)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]clip.Item, n)
	for i := range n {
		out[i] = s.doc.Items[i].Clone()
	}
	return out
}

// Search returns every item whose content contains query, ignoring case,
// in history order.
func (s *Store) Search(query string) []clip.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	out := make([]clip.Item, 0)
	for _, item := range s.doc.Items {
		if strings.Contains(strings.ToLower(item.Content), needle) {
			out = append(out, item.Clone())
		}
	}
	return out
}

// Find returns the item with the given id.
func (s *Store) Find(id string) (clip.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.doc.Items {
		if item.ID == id {
			return item.Clone(), true
		}
	}
	return clip.Item{}, false
}

// Len returns the number of items held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.doc.Items)
}

// LastUpdated returns the time of the last successful or attempted Add, or
// the value loaded from disk.
func (s *Store) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.LastUpdated
}

// Reload replaces the in-memory history with the file's current contents.
// On error the current state is kept.
func (s *Store) Reload() error {
	doc, err := s.load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return nil
}
