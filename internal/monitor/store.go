package monitor

import (
	"image"
	"sync"
)

// BaselineStore holds the last known capture per monitored location. The
// store is owned by the monitoring layer and injected into the watcher;
// the analysis core never sees it.
type BaselineStore interface {
	Baseline(locationID string) (image.Image, bool)
	SetBaseline(locationID string, img image.Image)
}

// MemStore is an in-memory BaselineStore, safe for concurrent use.
type MemStore struct {
	mu sync.RWMutex
	m  map[string]image.Image
}

// NewMemStore creates an empty in-memory baseline store.
func NewMemStore() *MemStore {
	return &MemStore{m: make(map[string]image.Image)}
}

func (s *MemStore) Baseline(locationID string) (image.Image, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.m[locationID]
	return img, ok
}

func (s *MemStore) SetBaseline(locationID string, img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[locationID] = img
}
