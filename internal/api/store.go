package api

import (
	"sync"
	"time"

	"github.com/dgallion1/docmodel/internal/document"
)

// ErrStoreFull is returned when the registry is at capacity.
type storeFullError struct{}

func (storeFullError) Error() string { return "document store is full" }

// ErrStoreFull reports that Put was refused because the registry holds the
// configured maximum number of documents.
var ErrStoreFull error = storeFullError{}

type entry struct {
	doc      *document.Document
	lastUsed time.Time
}

// DocStore is a thread-safe in-memory document registry with TTL eviction.
type DocStore struct {
	mu   sync.Mutex
	docs map[string]*entry
	ttl  time.Duration
	max  int
}

func NewDocStore(max int, ttl time.Duration) *DocStore {
	return &DocStore{
		docs: make(map[string]*entry),
		ttl:  ttl,
		max:  max,
	}
}

// Put registers a document under its ID, replacing any previous one.
func (s *DocStore) Put(d *document.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[d.ID]; !exists && len(s.docs) >= s.max {
		return ErrStoreFull
	}
	s.docs[d.ID] = &entry{doc: d, lastUsed: time.Now()}
	return nil
}

// Get returns the document for an ID, or nil. Access refreshes the TTL.
func (s *DocStore) Get(id string) *document.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.docs[id]
	if e == nil {
		return nil
	}
	e.lastUsed = time.Now()
	return e.doc
}

// Delete removes a document; reports whether it was present.
func (s *DocStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return false
	}
	delete(s.docs, id)
	return true
}

// DocInfo is the listing view of a stored document.
type DocInfo struct {
	ID       string `json:"id"`
	Filename string `json:"filename,omitempty"`
}

// List returns the stored documents, unordered.
func (s *DocStore) List() []DocInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]DocInfo, 0, len(s.docs))
	for _, e := range s.docs {
		out = append(out, DocInfo{ID: e.doc.ID, Filename: e.doc.Filename})
	}
	return out
}

// Cleanup removes documents idle longer than the TTL.
func (s *DocStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, e := range s.docs {
		if now.Sub(e.lastUsed) > s.ttl {
			delete(s.docs, id)
		}
	}
}

// StartCleanup runs Cleanup on a ticker until stop is closed.
func (s *DocStore) StartCleanup(interval time.Duration, stop <-chan struct{}) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				s.Cleanup()
			case <-stop:
				return
			}
		}
	}()
}
