package books

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemStore serves the catalog without a database.
type MemStore struct {
	mu    sync.RWMutex
	books map[string]Book
}

func NewMemStore(seed ...Book) *MemStore {
	s := &MemStore{books: map[string]Book{}}
	for _, b := range seed {
		s.books[b.ID] = b
	}
	return s
}

func (s *MemStore) List(_ context.Context, category string) ([]Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Book{}
	for _, b := range s.books {
		if category == "" || strings.EqualFold(b.Category, strings.TrimSpace(category)) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

func (s *MemStore) Get(_ context.Context, id string) (Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (s *MemStore) Upsert(_ context.Context, b Book) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.books[b.ID] = b
	s.mu.Unlock()
	return nil
}
